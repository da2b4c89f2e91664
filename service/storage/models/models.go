package models

import (
	"github.com/Legend-Systems/service-media/service/types"
	data "github.com/pitabwire/frame"
)

// MediaFile is the row stored for every artifact, originals and each
// generated variant alike. Derivative rows point at their original via
// ParentID and always share its kind and tenant scope.
type MediaFile struct {
	data.BaseModel

	OriginalName string `gorm:"type:TEXT"`
	StorageKey   string `gorm:"type:TEXT;uniqueIndex"`
	URL          string `gorm:"type:TEXT"`
	Mimetype     string `gorm:"type:TEXT"`
	Size         int64

	Kind        string `gorm:"type:TEXT;index"`
	VariantKind string `gorm:"type:TEXT"`
	ParentID    string `gorm:"type:TEXT;index"`

	Width  int
	Height int

	// IsActive is the hard delete flag, Status the soft delete axis.
	// The two are independent, see the lifecycle business rules.
	IsActive bool   `gorm:"default:true"`
	Status   string `gorm:"type:TEXT;default:active"`

	AltText     string `gorm:"type:TEXT"`
	Description string `gorm:"type:TEXT"`
	Designation string `gorm:"type:TEXT"`
	Properties  data.JSONMap

	OwnerID  string `gorm:"type:TEXT;index"`
	OrgID    string `gorm:"type:TEXT;index"`
	BranchID string `gorm:"type:TEXT;index"`
}

func (mf *MediaFile) ToApi() *types.MediaFile {
	api := &types.MediaFile{
		ID:           types.FileID(mf.GetID()),
		OriginalName: mf.OriginalName,
		StorageKey:   types.StorageKey(mf.StorageKey),
		URL:          mf.URL,
		MimeType:     mf.Mimetype,
		Size:         types.FileSizeBytes(mf.Size),
		Kind:         types.MediaKind(mf.Kind),
		VariantKind:  types.VariantKind(mf.VariantKind),
		ParentID:     types.FileID(mf.ParentID),
		Width:        mf.Width,
		Height:       mf.Height,
		IsActive:     mf.IsActive,
		Status:       types.FileStatus(mf.Status),
		AltText:      mf.AltText,
		Description:  mf.Description,
		Designation:  mf.Designation,
		OwnerID:      types.OwnerID(mf.OwnerID),
		OrgID:        mf.OrgID,
		BranchID:     mf.BranchID,
		CreatedAt:    mf.CreatedAt,
		UpdatedAt:    mf.ModifiedAt,
	}

	if len(mf.Properties) > 0 {
		api.Metadata = map[string]any(mf.Properties)
	}

	return api
}

func (mf *MediaFile) Fill(api *types.MediaFile) {
	mf.ID = string(api.ID)
	mf.OriginalName = api.OriginalName
	mf.StorageKey = string(api.StorageKey)
	mf.URL = api.URL
	mf.Mimetype = api.MimeType
	mf.Size = int64(api.Size)
	mf.Kind = string(api.Kind)
	mf.VariantKind = string(api.VariantKind)
	mf.ParentID = string(api.ParentID)
	mf.Width = api.Width
	mf.Height = api.Height
	mf.IsActive = api.IsActive
	mf.Status = string(api.Status)
	mf.AltText = api.AltText
	mf.Description = api.Description
	mf.Designation = api.Designation
	mf.OwnerID = string(api.OwnerID)
	mf.OrgID = api.OrgID
	mf.BranchID = api.BranchID

	if api.Metadata != nil {
		mf.Properties = data.JSONMap(api.Metadata)
	}
}

// MediaAudit holds one lifecycle event on a file, written off the hot
// path by the audit save event handler.
type MediaAudit struct {
	data.BaseModel

	FileID  string `gorm:"type:TEXT;index"`
	OwnerID string `gorm:"type:TEXT"`
	Action  string `gorm:"type:TEXT"`
	Detail  data.JSONMap
}
