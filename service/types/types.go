package types

import (
	"time"
)

// FileID is the opaque unique identifier of a stored media row.
type FileID string

// OwnerID identifies the principal that uploaded a file.
type OwnerID string

// StorageKey is the collision resistant key under which bytes live in the blob store.
type StorageKey string

// FileSizeBytes is a file size in bytes.
type FileSizeBytes int64

// MaxFileSizeBytes is the hard per file upload limit enforced before any I/O.
const MaxFileSizeBytes FileSizeBytes = 50 << 20

// MediaKind classifies a stored artifact by its content.
type MediaKind string

const (
	KindImage    MediaKind = "image"
	KindDocument MediaKind = "document"
	KindVideo    MediaKind = "video"
	KindAudio    MediaKind = "audio"
	KindOther    MediaKind = "other"
)

// VariantKind distinguishes an original upload from its derived representations.
type VariantKind string

const (
	VariantOriginal  VariantKind = "original"
	VariantThumbnail VariantKind = "thumbnail"
	VariantMedium    VariantKind = "medium"
	VariantLarge     VariantKind = "large"
)

// FileStatus is the soft delete axis of a file's lifecycle, independent
// of the hard delete IsActive flag.
type FileStatus string

const (
	StatusActive  FileStatus = "active"
	StatusDeleted FileStatus = "deleted"
)

// BoundingBox is the maximum extent a variant must fit within,
// preserving the source aspect ratio.
type BoundingBox struct {
	Width  int
	Height int
}

// VariantBounds maps each derivable variant to its bounding box.
var VariantBounds = map[VariantKind]BoundingBox{
	VariantThumbnail: {Width: 150, Height: 150},
	VariantMedium:    {Width: 500, Height: 500},
	VariantLarge:     {Width: 1200, Height: 1200},
}

// AccessScope is the tenant context every read and write is parameterised by.
// BranchID may be empty to mean the whole organisation.
type AccessScope struct {
	OwnerID  OwnerID
	OrgID    string
	BranchID string
}

// MediaFile is the API representation of one stored artifact. Originals
// and each generated variant are separate rows sharing this shape.
type MediaFile struct {
	ID           FileID         `json:"id"`
	OriginalName string         `json:"originalName"`
	StorageKey   StorageKey     `json:"storageKey"`
	URL          string         `json:"url"`
	MimeType     string         `json:"mimeType"`
	Size         FileSizeBytes  `json:"size"`
	Kind         MediaKind      `json:"kind"`
	VariantKind  VariantKind    `json:"variantKind"`
	ParentID     FileID         `json:"parentId,omitempty"`
	Width        int            `json:"width,omitempty"`
	Height       int            `json:"height,omitempty"`
	IsActive     bool           `json:"isActive"`
	Status       FileStatus     `json:"status"`
	AltText      string         `json:"altText,omitempty"`
	Description  string         `json:"description,omitempty"`
	Designation  string         `json:"designation,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	OwnerID      OwnerID        `json:"ownerId"`
	OrgID        string         `json:"orgId"`
	BranchID     string         `json:"branchId,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// IsVisible reports whether the row appears in default listings.
func (mf *MediaFile) IsVisible() bool {
	return mf.IsActive && mf.Status == StatusActive
}
