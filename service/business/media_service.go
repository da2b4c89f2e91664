package business

import (
	"context"
	"path"

	"github.com/Legend-Systems/service-media/service/storage"
	"github.com/Legend-Systems/service-media/service/storage/models"
	"github.com/Legend-Systems/service-media/service/types"
	"github.com/pitabwire/frame"
	data "github.com/pitabwire/frame"
	"github.com/pitabwire/util"
)

// AuditEventName routes lifecycle audits to their save handler.
const AuditEventName = "media.audit.save.event"

// mediaService implements the MediaService interface
type mediaService struct {
	service  *frame.Service
	db       storage.Database
	provider storage.Provider
}

// NewMediaService creates a new instance of the media service
func NewMediaService(service *frame.Service, db storage.Database, provider storage.Provider) MediaService {
	return &mediaService{
		service:  service,
		db:       db,
		provider: provider,
	}
}

// audit emits a lifecycle audit event. Audits are advisory, a failed
// emission is logged and never fails the operation it describes.
func (s *mediaService) audit(ctx context.Context, scope types.AccessScope, fileID types.FileID, action string, detail map[string]any) {
	payload := &models.MediaAudit{
		FileID:  string(fileID),
		OwnerID: string(scope.OwnerID),
		Action:  action,
	}
	if detail != nil {
		payload.Detail = data.JSONMap(detail)
	}

	if err := s.service.Emit(ctx, AuditEventName, payload); err != nil {
		util.Log(ctx).WithError(err).WithField("action", action).Warn("could not emit audit event")
	}
}

// validateUpload rejects a unit before any I/O happens.
func (s *mediaService) validateUpload(req *UploadRequest) error {
	if req == nil || len(req.Data) == 0 {
		return ValidationErrorf("file is empty")
	}
	if types.FileSizeBytes(len(req.Data)) > types.MaxFileSizeBytes {
		return ValidationErrorf("file exceeds the maximum allowed upload size (%d bytes)", types.MaxFileSizeBytes)
	}
	if req.FileName == "" {
		return ValidationErrorf("file name is required")
	}
	if path.Base(req.FileName) != req.FileName {
		return ValidationErrorf("file name must not contain path separators")
	}
	return nil
}
