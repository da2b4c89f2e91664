package events

import (
	"context"
	"errors"

	"github.com/Legend-Systems/service-media/service/storage/models"
	"github.com/Legend-Systems/service-media/service/storage/repository"
	"github.com/pitabwire/frame"
	frameevents "github.com/pitabwire/frame/events"
)

// MediaAuditSaveEvent persists lifecycle audits off the request hot
// path.
type MediaAuditSaveEvent struct {
	Service         *frame.Service
	AuditRepository repository.MediaAuditRepository
}

func (mas *MediaAuditSaveEvent) Name() string {
	return "media.audit.save.event"
}

func (mas *MediaAuditSaveEvent) PayloadType() any {
	return models.MediaAudit{}
}

func (mas *MediaAuditSaveEvent) Validate(_ context.Context, payload any) error {
	if _, ok := payload.(*models.MediaAudit); !ok {
		return errors.New("payload is not of type Media Audit")
	}

	return nil
}

func (mas *MediaAuditSaveEvent) Execute(ctx context.Context, payload any) error {
	audit := payload.(*models.MediaAudit)

	logger := mas.Service.Log(ctx).WithField("payload", audit).
		WithField("type", mas.Name())
	logger.Debug("handling media audit save event")

	return mas.AuditRepository.Save(ctx, audit)
}

func NewAuditSaveHandler(service *frame.Service) frameevents.EventI {
	auditRepository := repository.NewMediaAuditRepository(service)
	return &MediaAuditSaveEvent{Service: service, AuditRepository: auditRepository}
}
