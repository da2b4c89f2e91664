package business

import (
	"context"

	"github.com/Legend-Systems/service-media/service/storage"
	"github.com/Legend-Systems/service-media/service/types"
)

// MediaService defines the business logic interface for media
// ingestion and lifecycle operations. Every call is parameterised by
// the caller's access scope.
type MediaService interface {
	// UploadFile ingests one file, storing the original and whatever
	// variants the planner decided on.
	UploadFile(ctx context.Context, scope types.AccessScope, req *UploadRequest) (*UploadResult, error)

	// UploadBatch drives UploadFile over up to ten independent units.
	UploadBatch(ctx context.Context, scope types.AccessScope, req *BatchUploadRequest) (*BatchUploadResult, error)

	// GetFile fetches one row by id within scope.
	GetFile(ctx context.Context, scope types.AccessScope, id types.FileID) (*types.MediaFile, error)

	// ListFiles pages over the scope's rows.
	ListFiles(ctx context.Context, scope types.AccessScope, filters storage.ListFilters) (*storage.ListResult, error)

	// Stats aggregates the scope's visible rows.
	Stats(ctx context.Context, scope types.AccessScope) (*storage.Stats, error)

	// EditFile updates the mutable annotation fields of one row.
	EditFile(ctx context.Context, scope types.AccessScope, id types.FileID, patch *EditRequest) (*types.MediaFile, error)

	// BulkEdit applies the same patch to several rows independently.
	BulkEdit(ctx context.Context, scope types.AccessScope, ids []types.FileID, patch *EditRequest) (*BulkEditResult, error)

	// DeleteFile permanently removes a row and its variants from all
	// default listings. Irreversible.
	DeleteFile(ctx context.Context, scope types.AccessScope, id types.FileID) error

	// SoftDeleteFile reversibly hides a row and its variants.
	SoftDeleteFile(ctx context.Context, scope types.AccessScope, id types.FileID) error

	// RestoreFile reverses a soft delete.
	RestoreFile(ctx context.Context, scope types.AccessScope, id types.FileID) error
}

// UploadOptions carries the caller's tuning for one upload.
type UploadOptions struct {
	AltText     string
	Description string

	// KindHint is advisory only, content inspection wins on conflict.
	KindHint types.MediaKind

	GenerateThumbnails bool
	RequestedVariants  []types.VariantKind
}

// UploadRequest is one file to ingest.
type UploadRequest struct {
	FileName    string
	ContentType string
	Data        []byte
	Options     UploadOptions
}

// VariantFailure records one derivative that could not be produced.
// Variant failures never fail the original upload.
type VariantFailure struct {
	Variant types.VariantKind `json:"variant"`
	Error   string            `json:"error"`
}

// UploadResult is the outcome of one successful ingestion.
type UploadResult struct {
	Original      *types.MediaFile   `json:"original"`
	Variants      []*types.MediaFile `json:"variants"`
	VariantErrors []VariantFailure   `json:"variantErrors,omitempty"`
}

// BatchUploadRequest is an ordered list of independent upload units.
type BatchUploadRequest struct {
	Units []*UploadRequest
}

// UnitError ties a failed batch unit back to its source file. Units
// are identified by filename, not index.
type UnitError struct {
	FileName string `json:"fileName"`
	Error    string `json:"error"`
}

// BatchUploadResult reports partial success over a batch.
type BatchUploadResult struct {
	Uploaded   []*UploadResult `json:"uploaded"`
	Errors     []UnitError     `json:"errors"`
	Total      int             `json:"total"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
}

// EditRequest patches the mutable annotation fields of a row. Nil
// fields are left untouched.
type EditRequest struct {
	AltText     *string        `json:"altText,omitempty"`
	Description *string        `json:"description,omitempty"`
	Designation *string        `json:"designation,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// BulkEditError ties a failed bulk edit item back to its row.
type BulkEditError struct {
	FileID types.FileID `json:"fileId"`
	Error  string       `json:"error"`
}

// BulkEditResult reports partial success over a bulk edit.
type BulkEditResult struct {
	Updated    []*types.MediaFile `json:"updated"`
	Errors     []BulkEditError    `json:"errors"`
	Total      int                `json:"total"`
	Successful int                `json:"successful"`
	Failed     int                `json:"failed"`
}
