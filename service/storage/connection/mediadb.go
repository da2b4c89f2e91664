package connection

import (
	"context"
	"time"

	"github.com/Legend-Systems/service-media/service/storage"
	"github.com/Legend-Systems/service-media/service/storage/models"
	"github.com/Legend-Systems/service-media/service/storage/repository"
	"github.com/Legend-Systems/service-media/service/types"
	"github.com/pitabwire/frame"
)

// Database implements storage.Database over the gorm repositories.
type Database struct {
	Svc             *frame.Service
	MediaRepository repository.MediaRepository
}

func NewMediaDatabase(svc *frame.Service) (*Database, error) {
	return &Database{
		Svc:             svc,
		MediaRepository: repository.NewMediaRepository(svc),
	}, nil
}

// Create persists a new row, assigning its identifier. The tenant scope
// on the row is always taken from the caller's access scope, never from
// the payload.
func (d *Database) Create(ctx context.Context, scope types.AccessScope, file *types.MediaFile) (*types.MediaFile, error) {
	row := models.MediaFile{}
	row.Fill(file)
	row.OrgID = scope.OrgID
	row.BranchID = scope.BranchID

	if row.GetID() == "" {
		row.GenID(ctx)
	}

	if err := d.MediaRepository.Save(ctx, &row); err != nil {
		return nil, err
	}

	return row.ToApi(), nil
}

func (d *Database) Update(ctx context.Context, scope types.AccessScope, file *types.MediaFile) (*types.MediaFile, error) {
	existing, err := d.MediaRepository.GetByID(ctx, scope, file.ID)
	if err != nil {
		return nil, err
	}

	existing.Fill(file)
	// Scope and identity are immutable whatever the payload says.
	existing.ID = string(file.ID)
	existing.OrgID = scope.OrgID
	if scope.BranchID != "" {
		existing.BranchID = scope.BranchID
	}

	if err = d.MediaRepository.Save(ctx, existing); err != nil {
		return nil, err
	}

	return existing.ToApi(), nil
}

// GetByID returns nil metadata when there is no row with this id inside
// the caller's scope. A scope mismatch is indistinguishable from absence.
func (d *Database) GetByID(ctx context.Context, scope types.AccessScope, id types.FileID) (*types.MediaFile, error) {
	row, err := d.MediaRepository.GetByID(ctx, scope, id)
	if frame.ErrorIsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.ToApi(), nil
}

func (d *Database) GetByParentID(ctx context.Context, scope types.AccessScope, parentID types.FileID) ([]*types.MediaFile, error) {
	rows, err := d.MediaRepository.GetByParentID(ctx, scope, parentID)
	if err != nil {
		if frame.ErrorIsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	files := make([]*types.MediaFile, len(rows))
	for i, row := range rows {
		files[i] = row.ToApi()
	}
	return files, nil
}

func (d *Database) List(ctx context.Context, scope types.AccessScope, filters storage.ListFilters) (*storage.ListResult, error) {
	rows, total, err := d.MediaRepository.List(ctx, scope, filters)
	if err != nil {
		return nil, err
	}

	files := make([]*types.MediaFile, len(rows))
	for i, row := range rows {
		files[i] = row.ToApi()
	}

	totalPages := 0
	if filters.Limit > 0 {
		totalPages = int((total + int64(filters.Limit) - 1) / int64(filters.Limit))
	}

	return &storage.ListResult{
		Files:      files,
		Total:      total,
		Page:       filters.Page,
		Limit:      filters.Limit,
		TotalPages: totalPages,
	}, nil
}

func (d *Database) Aggregate(ctx context.Context, scope types.AccessScope) (*storage.Stats, error) {
	kinds, lastUpload, err := d.MediaRepository.Aggregate(ctx, scope)
	if err != nil {
		return nil, err
	}

	stats := &storage.Stats{
		ByKind: make(map[types.MediaKind]storage.KindStats, len(kinds)),
	}
	for _, k := range kinds {
		stats.TotalFiles += k.Count
		stats.TotalSize += k.TotalSize
		stats.ByKind[types.MediaKind(k.Kind)] = storage.KindStats{
			Count:     k.Count,
			TotalSize: k.TotalSize,
		}
	}

	if stats.TotalFiles > 0 {
		stats.AverageSize = stats.TotalSize / stats.TotalFiles
	}
	if lastUpload != nil && !lastUpload.IsZero() {
		ts := lastUpload.In(time.UTC)
		stats.LastUpload = &ts
	}

	return stats, nil
}

func (d *Database) CascadeState(ctx context.Context, scope types.AccessScope, id types.FileID, change storage.StateChange) ([]*types.MediaFile, error) {
	rows, err := d.MediaRepository.CascadeState(ctx, scope, id, change)
	if err != nil {
		if frame.ErrorIsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	files := make([]*types.MediaFile, len(rows))
	for i, row := range rows {
		files[i] = row.ToApi()
	}
	return files, nil
}
