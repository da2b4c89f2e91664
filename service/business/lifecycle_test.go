package business

import (
	"testing"

	"github.com/Legend-Systems/service-media/service/storage"
	"github.com/Legend-Systems/service-media/service/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadTestFile(t *testing.T, ms MediaService, scope types.AccessScope, name string) *UploadResult {
	t.Helper()

	result, err := ms.UploadFile(t.Context(), scope, &UploadRequest{
		FileName:    name,
		ContentType: "image/png",
		Data:        pngBytes(t, 200, 200),
		Options:     UploadOptions{GenerateThumbnails: true},
	})
	require.NoError(t, err)
	return result
}

func TestGetFile(t *testing.T) {
	ms, _, _ := newTestMediaService(t)
	ctx := t.Context()

	uploaded := uploadTestFile(t, ms, testScope, "photo.png")

	file, err := ms.GetFile(ctx, testScope, uploaded.Original.ID)
	require.NoError(t, err)
	assert.Equal(t, uploaded.Original.ID, file.ID)

	_, err = ms.GetFile(ctx, testScope, "no-such-id")
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeNotFound))

	_, err = ms.GetFile(ctx, testScope, "")
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeValidation))
}

func TestGetFile_ScopeMissBehavesAsAbsent(t *testing.T) {
	ms, _, _ := newTestMediaService(t)
	ctx := t.Context()

	uploaded := uploadTestFile(t, ms, testScope, "photo.png")

	otherOrg := types.AccessScope{OwnerID: "owner-2", OrgID: "org-2"}
	_, err := ms.GetFile(ctx, otherOrg, uploaded.Original.ID)
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeNotFound))

	otherBranch := types.AccessScope{OwnerID: testScope.OwnerID, OrgID: testScope.OrgID, BranchID: "branch-9"}
	_, err = ms.GetFile(ctx, otherBranch, uploaded.Original.ID)
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeNotFound))
}

func TestListFiles_ParameterNormalisation(t *testing.T) {
	ms, _, _ := newTestMediaService(t)
	ctx := t.Context()

	result, err := ms.ListFiles(ctx, testScope, storage.ListFilters{Page: -3, Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 100, result.Limit)

	_, err = ms.ListFiles(ctx, testScope, storage.ListFilters{SortBy: "owner_id"})
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeValidation))

	_, err = ms.ListFiles(ctx, testScope, storage.ListFilters{Order: "sideways"})
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeValidation))
}

func TestEditFile(t *testing.T) {
	ms, _, _ := newTestMediaService(t)
	ctx := t.Context()

	uploaded := uploadTestFile(t, ms, testScope, "photo.png")

	alt := "new alt text"
	designation := "hero-banner"
	updated, err := ms.EditFile(ctx, testScope, uploaded.Original.ID, &EditRequest{
		AltText:     &alt,
		Designation: &designation,
		Metadata:    map[string]any{"campaign": "spring"},
	})
	require.NoError(t, err)

	assert.Equal(t, "new alt text", updated.AltText)
	assert.Equal(t, "hero-banner", updated.Designation)
	assert.Equal(t, "spring", updated.Metadata["campaign"])
	// Untouched fields survive the patch.
	assert.Equal(t, uploaded.Original.Description, updated.Description)
	assert.Equal(t, uploaded.Original.StorageKey, updated.StorageKey)
}

func TestEditFile_ForbiddenForOtherOwner(t *testing.T) {
	ms, _, _ := newTestMediaService(t)
	ctx := t.Context()

	uploaded := uploadTestFile(t, ms, testScope, "photo.png")

	intruder := types.AccessScope{OwnerID: "owner-2", OrgID: testScope.OrgID, BranchID: testScope.BranchID}
	alt := "defaced"
	_, err := ms.EditFile(ctx, intruder, uploaded.Original.ID, &EditRequest{AltText: &alt})
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeForbidden))
}

func TestBulkEdit_PartialFailure(t *testing.T) {
	ms, _, _ := newTestMediaService(t)
	ctx := t.Context()

	first := uploadTestFile(t, ms, testScope, "one.png")
	second := uploadTestFile(t, ms, testScope, "two.png")

	alt := "shared alt"
	result, err := ms.BulkEdit(ctx, testScope,
		[]types.FileID{first.Original.ID, "missing-id", second.Original.ID},
		&EditRequest{AltText: &alt})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 1, result.Failed)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, types.FileID("missing-id"), result.Errors[0].FileID)

	for _, updated := range result.Updated {
		assert.Equal(t, "shared alt", updated.AltText)
	}
}

func TestDeleteFile_CascadesToVariants(t *testing.T) {
	ms, db, _ := newTestMediaService(t)
	ctx := t.Context()

	uploaded := uploadTestFile(t, ms, testScope, "photo.png")
	require.NotEmpty(t, uploaded.Variants)

	err := ms.DeleteFile(ctx, testScope, uploaded.Original.ID)
	require.NoError(t, err)

	_, err = ms.GetFile(ctx, testScope, uploaded.Original.ID)
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeNotFound))

	// Variant rows followed the original.
	row, err := db.GetByID(ctx, testScope, uploaded.Variants[0].ID)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.False(t, row.IsActive)

	// A second delete behaves as absent.
	err = ms.DeleteFile(ctx, testScope, uploaded.Original.ID)
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeNotFound))
}

func TestDeleteFile_ForbiddenForOtherOwner(t *testing.T) {
	ms, _, _ := newTestMediaService(t)
	ctx := t.Context()

	uploaded := uploadTestFile(t, ms, testScope, "photo.png")

	intruder := types.AccessScope{OwnerID: "owner-2", OrgID: testScope.OrgID, BranchID: testScope.BranchID}
	err := ms.DeleteFile(ctx, intruder, uploaded.Original.ID)
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeForbidden))
}

func TestSoftDeleteFile_ForbiddenForOtherOwner(t *testing.T) {
	ms, _, _ := newTestMediaService(t)
	ctx := t.Context()

	uploaded := uploadTestFile(t, ms, testScope, "photo.png")

	intruder := types.AccessScope{OwnerID: "owner-2", OrgID: testScope.OrgID, BranchID: testScope.BranchID}
	err := ms.SoftDeleteFile(ctx, intruder, uploaded.Original.ID)
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeForbidden))

	// The row is untouched and still visible to its owner.
	file, err := ms.GetFile(ctx, testScope, uploaded.Original.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusActive, file.Status)
}

func TestRestoreFile_ForbiddenForOtherOwner(t *testing.T) {
	ms, _, _ := newTestMediaService(t)
	ctx := t.Context()

	uploaded := uploadTestFile(t, ms, testScope, "photo.png")
	require.NoError(t, ms.SoftDeleteFile(ctx, testScope, uploaded.Original.ID))

	intruder := types.AccessScope{OwnerID: "owner-2", OrgID: testScope.OrgID, BranchID: testScope.BranchID}
	err := ms.RestoreFile(ctx, intruder, uploaded.Original.ID)
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeForbidden))

	// Still soft deleted.
	file, err := ms.GetFile(ctx, testScope, uploaded.Original.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusDeleted, file.Status)
}

func TestSoftDeleteAndRestore(t *testing.T) {
	ms, db, _ := newTestMediaService(t)
	ctx := t.Context()

	uploaded := uploadTestFile(t, ms, testScope, "photo.png")
	fileID := uploaded.Original.ID

	require.NoError(t, ms.SoftDeleteFile(ctx, testScope, fileID))

	// Still retrievable by id, only hidden from default listings.
	file, err := ms.GetFile(ctx, testScope, fileID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusDeleted, file.Status)
	assert.True(t, file.IsActive)
	assert.False(t, file.IsVisible())

	// Variants followed.
	row, err := db.GetByID(ctx, testScope, uploaded.Variants[0].ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusDeleted, row.Status)

	// A repeated soft delete reports not found.
	err = ms.SoftDeleteFile(ctx, testScope, fileID)
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeNotFound))

	require.NoError(t, ms.RestoreFile(ctx, testScope, fileID))

	file, err = ms.GetFile(ctx, testScope, fileID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusActive, file.Status)
	assert.True(t, file.IsVisible())

	// Restoring an already active file reports not found.
	err = ms.RestoreFile(ctx, testScope, fileID)
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeNotFound))
}

func TestStats(t *testing.T) {
	ms, _, _ := newTestMediaService(t)
	ctx := t.Context()

	uploadTestFile(t, ms, testScope, "one.png")
	uploadTestFile(t, ms, testScope, "two.png")

	stats, err := ms.Stats(ctx, testScope)
	require.NoError(t, err)

	// Two originals plus their thumbnails.
	assert.Equal(t, int64(4), stats.TotalFiles)
	assert.Positive(t, stats.TotalSize)
	assert.Positive(t, stats.AverageSize)
	assert.Equal(t, int64(4), stats.ByKind[types.KindImage].Count)
}
