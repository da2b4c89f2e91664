package repository

import (
	"context"

	"github.com/Legend-Systems/service-media/service/storage/models"
	"github.com/pitabwire/frame"
)

type MediaAuditRepository interface {
	GetByFileID(ctx context.Context, fileID string) ([]*models.MediaAudit, error)
	Save(ctx context.Context, audit *models.MediaAudit) error
}

func NewMediaAuditRepository(service *frame.Service) MediaAuditRepository {
	auditRepo := mediaAuditRepository{
		service: service,
	}
	return &auditRepo
}

type mediaAuditRepository struct {
	service *frame.Service
}

func (mar *mediaAuditRepository) GetByFileID(ctx context.Context, fileID string) ([]*models.MediaAudit, error) {
	var audits []*models.MediaAudit
	err := mar.service.DB(ctx, true).
		Where("file_id = ?", fileID).
		Order("created_at").
		Find(&audits).Error
	if err != nil {
		return nil, err
	}

	return audits, nil
}

func (mar *mediaAuditRepository) Save(ctx context.Context, audit *models.MediaAudit) error {
	return mar.service.DB(ctx, false).Save(audit).Error
}
