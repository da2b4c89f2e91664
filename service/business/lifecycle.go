package business

import (
	"context"

	"github.com/Legend-Systems/service-media/service/storage"
	"github.com/Legend-Systems/service-media/service/types"
	"github.com/pitabwire/util"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// GetFile fetches one active row by id. Soft deleted rows are still
// retrievable by id, hard deleted rows behave as absent.
func (s *mediaService) GetFile(ctx context.Context, scope types.AccessScope, id types.FileID) (*types.MediaFile, error) {
	if id == "" {
		return nil, ValidationErrorf("file id is required")
	}

	file, err := s.db.GetByID(ctx, scope, id)
	if err != nil {
		return nil, PersistenceError(err, "fetching file %s failed", id)
	}
	if file == nil || !file.IsActive {
		return nil, NotFoundErrorf("file %s not found", id)
	}
	return file, nil
}

// ListFiles pages over the scope's rows after normalising the
// pagination and sort parameters.
func (s *mediaService) ListFiles(ctx context.Context, scope types.AccessScope, filters storage.ListFilters) (*storage.ListResult, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = defaultPageLimit
	}
	if filters.Limit > maxPageLimit {
		filters.Limit = maxPageLimit
	}

	switch filters.SortBy {
	case "":
		filters.SortBy = storage.SortByCreatedAt
	case storage.SortByCreatedAt, storage.SortByOriginalName, storage.SortBySize, storage.SortByKind:
	default:
		return nil, ValidationErrorf("unsupported sort field %q", filters.SortBy)
	}

	switch filters.Order {
	case "":
		filters.Order = storage.SortDescending
	case storage.SortAscending, storage.SortDescending:
	default:
		return nil, ValidationErrorf("unsupported sort order %q", filters.Order)
	}

	result, err := s.db.List(ctx, scope, filters)
	if err != nil {
		return nil, PersistenceError(err, "listing files failed")
	}
	return result, nil
}

// Stats aggregates the scope's visible rows.
func (s *mediaService) Stats(ctx context.Context, scope types.AccessScope) (*storage.Stats, error) {
	stats, err := s.db.Aggregate(ctx, scope)
	if err != nil {
		return nil, PersistenceError(err, "aggregating files failed")
	}
	return stats, nil
}

// EditFile patches the mutable annotation fields of one row. Only the
// uploading owner may edit.
func (s *mediaService) EditFile(ctx context.Context, scope types.AccessScope, id types.FileID, patch *EditRequest) (*types.MediaFile, error) {
	if patch == nil {
		return nil, ValidationErrorf("edit request is empty")
	}

	file, err := s.GetFile(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if file.OwnerID != scope.OwnerID {
		return nil, ForbiddenErrorf("file %s belongs to another owner", id)
	}

	if patch.AltText != nil {
		file.AltText = *patch.AltText
	}
	if patch.Description != nil {
		file.Description = *patch.Description
	}
	if patch.Designation != nil {
		file.Designation = *patch.Designation
	}
	if patch.Metadata != nil {
		if file.Metadata == nil {
			file.Metadata = make(map[string]any)
		}
		for k, v := range patch.Metadata {
			file.Metadata[k] = v
		}
	}

	updated, err := s.db.Update(ctx, scope, file)
	if err != nil {
		return nil, PersistenceError(err, "updating file %s failed", id)
	}

	s.audit(ctx, scope, id, "edit", nil)
	return updated, nil
}

// BulkEdit applies the same patch to several rows. Items succeed or
// fail independently.
func (s *mediaService) BulkEdit(ctx context.Context, scope types.AccessScope, ids []types.FileID, patch *EditRequest) (*BulkEditResult, error) {
	if len(ids) == 0 {
		return nil, ValidationErrorf("bulk edit requires at least one file id")
	}
	if patch == nil {
		return nil, ValidationErrorf("edit request is empty")
	}

	result := &BulkEditResult{Total: len(ids)}
	for _, id := range ids {
		updated, err := s.EditFile(ctx, scope, id, patch)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkEditError{FileID: id, Error: err.Error()})
			continue
		}
		result.Successful++
		result.Updated = append(result.Updated, updated)
	}

	util.Log(ctx).With(
		"total", result.Total,
		"successful", result.Successful,
		"failed", result.Failed,
	).Info("bulk edit done")

	return result, nil
}

// DeleteFile permanently removes a row and its variants from all
// default listings by flipping is_active. Irreversible.
func (s *mediaService) DeleteFile(ctx context.Context, scope types.AccessScope, id types.FileID) error {
	file, err := s.GetFile(ctx, scope, id)
	if err != nil {
		return err
	}
	if file.OwnerID != scope.OwnerID {
		return ForbiddenErrorf("file %s belongs to another owner", id)
	}

	affected, err := s.db.CascadeState(ctx, scope, id, storage.StateChange{Deactivate: true})
	if err != nil {
		return PersistenceError(err, "deleting file %s failed", id)
	}

	s.audit(ctx, scope, id, "delete", map[string]any{"affected": len(affected)})
	return nil
}

// SoftDeleteFile reversibly hides a row and its variants from default
// listings. The bytes and the row stay untouched otherwise.
func (s *mediaService) SoftDeleteFile(ctx context.Context, scope types.AccessScope, id types.FileID) error {
	file, err := s.GetFile(ctx, scope, id)
	if err != nil {
		return err
	}
	if file.OwnerID != scope.OwnerID {
		return ForbiddenErrorf("file %s belongs to another owner", id)
	}
	if file.Status == types.StatusDeleted {
		return NotFoundErrorf("file %s is already deleted", id)
	}

	affected, err := s.db.CascadeState(ctx, scope, id, storage.StateChange{SetStatus: types.StatusDeleted})
	if err != nil {
		return PersistenceError(err, "soft deleting file %s failed", id)
	}

	s.audit(ctx, scope, id, "soft_delete", map[string]any{"affected": len(affected)})
	return nil
}

// RestoreFile reverses a soft delete on a row and its variants.
func (s *mediaService) RestoreFile(ctx context.Context, scope types.AccessScope, id types.FileID) error {
	file, err := s.GetFile(ctx, scope, id)
	if err != nil {
		return err
	}
	if file.OwnerID != scope.OwnerID {
		return ForbiddenErrorf("file %s belongs to another owner", id)
	}
	if file.Status != types.StatusDeleted {
		return NotFoundErrorf("file %s is not deleted", id)
	}

	affected, err := s.db.CascadeState(ctx, scope, id, storage.StateChange{SetStatus: types.StatusActive})
	if err != nil {
		return PersistenceError(err, "restoring file %s failed", id)
	}

	s.audit(ctx, scope, id, "restore", map[string]any{"affected": len(affected)})
	return nil
}
