package storage

import (
	"context"
	"io"
	"time"

	"github.com/Legend-Systems/service-media/service/types"
)

// Provider abstracts the durable blob store. Implementations are safe
// for concurrent use by independent callers.
type Provider interface {
	Name() string
	Setup(ctx context.Context) error

	// Put writes bytes under key and returns the publicly resolvable
	// address of the object.
	Put(ctx context.Context, key types.StorageKey, data []byte, mimeType string) (string, error)

	// Open reads back the object stored under key.
	Open(ctx context.Context, key types.StorageKey) (io.ReadCloser, error)

	// DeleteBestEffort removes the object under key if possible.
	// Used for rollback, failure is logged and never propagated.
	DeleteBestEffort(ctx context.Context, key types.StorageKey)
}

// SortField is a column the list operation can order by.
type SortField string

const (
	SortByCreatedAt    SortField = "created_at"
	SortByOriginalName SortField = "original_name"
	SortBySize         SortField = "size"
	SortByKind         SortField = "kind"
)

// SortOrder is the direction of a sorted listing.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ListFilters narrows a listing. Zero values mean no constraint.
// Deleted switches the listing from the default visible set
// (is_active AND status=active) to the soft deleted set.
type ListFilters struct {
	Kind        types.MediaKind
	VariantKind types.VariantKind
	OwnerID     types.OwnerID
	Search      string
	Deleted     bool

	Page  int
	Limit int

	SortBy SortField
	Order  SortOrder
}

// ListResult is one page of rows with its pagination envelope.
type ListResult struct {
	Files      []*types.MediaFile `json:"files"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
}

// KindStats aggregates the rows of one media kind.
type KindStats struct {
	Count     int64 `json:"count"`
	TotalSize int64 `json:"totalSize"`
}

// Stats aggregates the caller's visible rows.
type Stats struct {
	TotalFiles  int64                         `json:"totalFiles"`
	TotalSize   int64                         `json:"totalSize"`
	AverageSize int64                         `json:"averageSize"`
	LastUpload  *time.Time                    `json:"lastUpload,omitempty"`
	ByKind      map[types.MediaKind]KindStats `json:"byKind"`
}

// StateChange describes a lifecycle transition applied to a row and
// cascaded to its derivative rows as one unit.
type StateChange struct {
	// Deactivate flips is_active to false. Irreversible in this service.
	Deactivate bool
	// SetStatus moves the soft delete axis when non empty.
	SetStatus types.FileStatus
}

// Database abstracts the metadata persistence layer. Every call is
// parameterised by the caller's tenant scope and rows outside that
// scope behave as if absent.
type Database interface {
	Create(ctx context.Context, scope types.AccessScope, file *types.MediaFile) (*types.MediaFile, error)
	Update(ctx context.Context, scope types.AccessScope, file *types.MediaFile) (*types.MediaFile, error)

	// GetByID returns nil without error when the row does not exist in
	// the given scope.
	GetByID(ctx context.Context, scope types.AccessScope, id types.FileID) (*types.MediaFile, error)
	GetByParentID(ctx context.Context, scope types.AccessScope, parentID types.FileID) ([]*types.MediaFile, error)

	List(ctx context.Context, scope types.AccessScope, filters ListFilters) (*ListResult, error)
	Aggregate(ctx context.Context, scope types.AccessScope) (*Stats, error)

	// CascadeState applies change to the row and every row whose
	// parent_id references it, inside one transaction. Returns the
	// affected rows in their new state, parent first.
	CascadeState(ctx context.Context, scope types.AccessScope, id types.FileID, change StateChange) ([]*types.MediaFile, error)
}
