package repository

import (
	"context"
	"time"

	"github.com/Legend-Systems/service-media/service/storage"
	"github.com/Legend-Systems/service-media/service/storage/models"
	"github.com/Legend-Systems/service-media/service/types"
	"github.com/pitabwire/frame"
	"gorm.io/gorm"
)

type MediaRepository interface {
	GetByID(ctx context.Context, scope types.AccessScope, id types.FileID) (*models.MediaFile, error)
	GetByParentID(ctx context.Context, scope types.AccessScope, parentID types.FileID) ([]*models.MediaFile, error)
	List(ctx context.Context, scope types.AccessScope, filters storage.ListFilters) ([]*models.MediaFile, int64, error)
	Aggregate(ctx context.Context, scope types.AccessScope) ([]*KindAggregate, *time.Time, error)
	Save(ctx context.Context, file *models.MediaFile) error
	CascadeState(ctx context.Context, scope types.AccessScope, id types.FileID, change storage.StateChange) ([]*models.MediaFile, error)
}

// KindAggregate is one row of the per kind statistics query.
type KindAggregate struct {
	Kind      string
	Count     int64
	TotalSize int64
}

func NewMediaRepository(service *frame.Service) MediaRepository {
	fileRepo := mediaRepository{
		service: service,
	}
	return &fileRepo
}

type mediaRepository struct {
	service *frame.Service
}

// scoped narrows a query to the caller's tenant. An empty branch means
// the whole organisation.
func scoped(tx *gorm.DB, scope types.AccessScope) *gorm.DB {
	tx = tx.Where("org_id = ?", scope.OrgID)
	if scope.BranchID != "" {
		tx = tx.Where("branch_id = ?", scope.BranchID)
	}
	return tx
}

func (mr *mediaRepository) GetByID(ctx context.Context, scope types.AccessScope, id types.FileID) (*models.MediaFile, error) {
	file := &models.MediaFile{}
	err := scoped(mr.service.DB(ctx, true), scope).First(file, "id = ?", string(id)).Error
	if err != nil {
		return nil, err
	}

	return file, nil
}

func (mr *mediaRepository) GetByParentID(ctx context.Context, scope types.AccessScope, parentID types.FileID) ([]*models.MediaFile, error) {
	var media []*models.MediaFile
	err := scoped(mr.service.DB(ctx, true), scope).
		Where("parent_id = ?", string(parentID)).Find(&media).Error
	if err != nil {
		return nil, err
	}

	return media, nil
}

func (mr *mediaRepository) List(ctx context.Context, scope types.AccessScope, filters storage.ListFilters) ([]*models.MediaFile, int64, error) {
	tx := scoped(mr.service.DB(ctx, true).Model(&models.MediaFile{}), scope)

	if filters.Deleted {
		tx = tx.Where("is_active = ? AND status = ?", true, string(types.StatusDeleted))
	} else {
		tx = tx.Where("is_active = ? AND status = ?", true, string(types.StatusActive))
	}

	if filters.Kind != "" {
		tx = tx.Where("kind = ?", string(filters.Kind))
	}
	if filters.VariantKind != "" {
		tx = tx.Where("variant_kind = ?", string(filters.VariantKind))
	}
	if filters.OwnerID != "" {
		tx = tx.Where("owner_id = ?", string(filters.OwnerID))
	}
	if filters.Search != "" {
		searchTerm := "%" + filters.Search + "%"
		tx = tx.Where("original_name LIKE ? OR storage_key LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = storage.SortByCreatedAt
	}
	order := filters.Order
	if order == "" {
		order = storage.SortDescending
	}
	tx = tx.Order(string(sortBy) + " " + string(order))

	// Pages are 1 based, page 1 is the first page.
	offset := (filters.Page - 1) * filters.Limit
	tx = tx.Offset(offset).Limit(filters.Limit)

	fileList := make([]*models.MediaFile, 0)
	if err := tx.Find(&fileList).Error; err != nil {
		return nil, 0, err
	}

	return fileList, total, nil
}

func (mr *mediaRepository) Aggregate(ctx context.Context, scope types.AccessScope) ([]*KindAggregate, *time.Time, error) {
	visible := scoped(mr.service.DB(ctx, true).Model(&models.MediaFile{}), scope).
		Where("is_active = ? AND status = ?", true, string(types.StatusActive))

	var kinds []*KindAggregate
	err := visible.Session(&gorm.Session{}).
		Select("kind, COUNT(*) AS count, COALESCE(SUM(size), 0) AS total_size").
		Group("kind").
		Scan(&kinds).Error
	if err != nil {
		return nil, nil, err
	}

	var lastUpload struct {
		Last *time.Time
	}
	err = visible.Session(&gorm.Session{}).
		Select("MAX(created_at) AS last").
		Scan(&lastUpload).Error
	if err != nil {
		return nil, nil, err
	}

	return kinds, lastUpload.Last, nil
}

func (mr *mediaRepository) Save(ctx context.Context, file *models.MediaFile) error {
	return mr.service.DB(ctx, false).Save(file).Error
}

// CascadeState flips lifecycle fields on the target row and all rows
// whose parent_id references it inside one transaction, so readers
// never observe a parent and its variants in diverging states.
func (mr *mediaRepository) CascadeState(ctx context.Context, scope types.AccessScope, id types.FileID, change storage.StateChange) ([]*models.MediaFile, error) {
	updates := map[string]any{}
	if change.Deactivate {
		updates["is_active"] = false
	}
	if change.SetStatus != "" {
		updates["status"] = string(change.SetStatus)
	}

	var affected []*models.MediaFile
	err := mr.service.DB(ctx, false).Transaction(func(tx *gorm.DB) error {
		target := &models.MediaFile{}
		err := scoped(tx, scope).First(target, "id = ?", string(id)).Error
		if err != nil {
			return err
		}

		err = tx.Model(&models.MediaFile{}).
			Where("id = ? OR parent_id = ?", string(id), string(id)).
			Updates(updates).Error
		if err != nil {
			return err
		}

		return tx.Where("id = ? OR parent_id = ?", string(id), string(id)).
			Order("parent_id").
			Find(&affected).Error
	})
	if err != nil {
		return nil, err
	}

	return affected, nil
}
