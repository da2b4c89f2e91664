package business

import (
	"context"
	"time"

	"github.com/Legend-Systems/service-media/service/transcoder"
	"github.com/Legend-Systems/service-media/service/types"
	"github.com/pitabwire/util"
)

// UploadFile ingests one file: classify, store the original, persist
// its row, then derive whatever variants the planner decided on.
// Variant failures are recorded but never fail the original upload.
func (s *mediaService) UploadFile(ctx context.Context, scope types.AccessScope, req *UploadRequest) (*UploadResult, error) {
	if err := s.validateUpload(req); err != nil {
		return nil, err
	}

	kind, detectedMime, err := ClassifyMedia(req.ContentType, req.Data)
	if err != nil {
		return nil, err
	}

	logger := util.Log(ctx).With(
		"fileName", req.FileName,
		"mimeType", detectedMime,
		"kind", kind,
		"size", len(req.Data),
	)

	if req.Options.KindHint != "" && req.Options.KindHint != kind {
		// Content inspection wins over the caller's claim.
		logger.WithField("kindHint", req.Options.KindHint).Debug("ignoring conflicting kind hint")
	}

	key := BuildStorageKey(scope, req.FileName, types.VariantOriginal, time.Now())

	url, err := s.provider.Put(ctx, key, req.Data, detectedMime)
	if err != nil {
		return nil, StorageError(err, "storing original failed")
	}

	original := &types.MediaFile{
		OriginalName: req.FileName,
		StorageKey:   key,
		URL:          url,
		MimeType:     detectedMime,
		Size:         types.FileSizeBytes(len(req.Data)),
		Kind:         kind,
		VariantKind:  types.VariantOriginal,
		IsActive:     true,
		Status:       types.StatusActive,
		AltText:      req.Options.AltText,
		Description:  req.Options.Description,
		OwnerID:      scope.OwnerID,
	}

	if kind == types.KindImage {
		if w, h, dimErr := transcoder.Dimensions(req.Data); dimErr == nil {
			original.Width = w
			original.Height = h
		} else {
			logger.WithError(dimErr).Debug("could not extract image dimensions")
		}
	}

	created, err := s.db.Create(ctx, scope, original)
	if err != nil {
		// The bytes are already durable, roll them back so a failed
		// upload leaves nothing behind.
		s.provider.DeleteBestEffort(ctx, key)
		return nil, PersistenceError(err, "persisting original metadata failed")
	}

	logger.WithField("fileId", created.ID).Info("file uploaded")

	result := &UploadResult{
		Original: created,
		Variants: make([]*types.MediaFile, 0),
	}

	for _, spec := range PlanVariants(kind, req.Options.GenerateThumbnails, req.Options.RequestedVariants) {
		variant, vErr := s.generateVariant(ctx, scope, created, req.Data, spec)
		if vErr != nil {
			logger.WithError(vErr).WithField("variant", spec.Kind).Warn("variant generation failed")
			result.VariantErrors = append(result.VariantErrors, VariantFailure{
				Variant: spec.Kind,
				Error:   vErr.Error(),
			})
			continue
		}
		result.Variants = append(result.Variants, variant)
	}

	s.audit(ctx, scope, created.ID, "upload", map[string]any{
		"variants": len(result.Variants),
	})

	return result, nil
}

// generateVariant resizes, stores and persists one derivative of an
// already persisted original.
func (s *mediaService) generateVariant(ctx context.Context, scope types.AccessScope, original *types.MediaFile, srcData []byte, spec VariantSpec) (*types.MediaFile, error) {
	resized, err := transcoder.Resize(srcData, spec.Box)
	if err != nil {
		return nil, StorageError(err, "transcoding %s variant failed", spec.Kind)
	}

	key := BuildStorageKey(scope, original.OriginalName, spec.Kind, time.Now())

	url, err := s.provider.Put(ctx, key, resized.Data, "image/jpeg")
	if err != nil {
		return nil, StorageError(err, "storing %s variant failed", spec.Kind)
	}

	variant := &types.MediaFile{
		OriginalName: original.OriginalName,
		StorageKey:   key,
		URL:          url,
		MimeType:     "image/jpeg",
		Size:         types.FileSizeBytes(len(resized.Data)),
		Kind:         original.Kind,
		VariantKind:  spec.Kind,
		ParentID:     original.ID,
		Width:        resized.Width,
		Height:       resized.Height,
		IsActive:     true,
		Status:       types.StatusActive,
		OwnerID:      original.OwnerID,
	}

	created, err := s.db.Create(ctx, scope, variant)
	if err != nil {
		s.provider.DeleteBestEffort(ctx, key)
		return nil, PersistenceError(err, "persisting %s variant metadata failed", spec.Kind)
	}

	return created, nil
}
