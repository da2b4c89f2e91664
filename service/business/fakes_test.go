package business

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/Legend-Systems/service-media/config"
	"github.com/Legend-Systems/service-media/service/storage"
	"github.com/Legend-Systems/service-media/service/types"
	"github.com/pitabwire/frame"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *frame.Service {
	t.Helper()

	cfg := config.MediaConfig{
		BatchWorkerCount:   2,
		MaxBulkUploadUnits: 10,
	}

	_, svc := frame.NewServiceWithContext(t.Context(), "media tests",
		frame.WithConfig(&cfg),
		frame.WithNoopDriver())
	return svc
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// fakeProvider is an in memory blob store. Puts whose key contains a
// configured fragment fail, which simulates partial variant failures.
type fakeProvider struct {
	mu sync.Mutex

	objects     map[types.StorageKey][]byte
	deletedKeys []types.StorageKey

	failPutContaining string
	failAllPuts       bool
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{objects: make(map[types.StorageKey][]byte)}
}

func (fp *fakeProvider) Name() string { return "fake" }

func (fp *fakeProvider) Setup(_ context.Context) error { return nil }

func (fp *fakeProvider) Put(_ context.Context, key types.StorageKey, data []byte, _ string) (string, error) {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	if fp.failAllPuts {
		return "", fmt.Errorf("put refused")
	}
	if fp.failPutContaining != "" && strings.Contains(string(key), fp.failPutContaining) {
		return "", fmt.Errorf("put refused for %s", key)
	}

	fp.objects[key] = append([]byte(nil), data...)
	return "http://blobs.test/" + string(key), nil
}

func (fp *fakeProvider) Open(_ context.Context, key types.StorageKey) (io.ReadCloser, error) {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	data, ok := fp.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (fp *fakeProvider) DeleteBestEffort(_ context.Context, key types.StorageKey) {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	delete(fp.objects, key)
	fp.deletedKeys = append(fp.deletedKeys, key)
}

func (fp *fakeProvider) objectCount() int {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return len(fp.objects)
}

// fakeDatabase is an in memory metadata store honouring tenant scope.
type fakeDatabase struct {
	mu sync.Mutex

	rows   map[types.FileID]*types.MediaFile
	nextID int

	failCreateAfter int
	createCalls     int
}

func newFakeDatabase() *fakeDatabase {
	return &fakeDatabase{rows: make(map[types.FileID]*types.MediaFile), failCreateAfter: -1}
}

func (fd *fakeDatabase) inScope(row *types.MediaFile, scope types.AccessScope) bool {
	if row.OrgID != scope.OrgID {
		return false
	}
	if scope.BranchID != "" && row.BranchID != scope.BranchID {
		return false
	}
	return true
}

func (fd *fakeDatabase) Create(_ context.Context, scope types.AccessScope, file *types.MediaFile) (*types.MediaFile, error) {
	fd.mu.Lock()
	defer fd.mu.Unlock()

	fd.createCalls++
	if fd.failCreateAfter >= 0 && fd.createCalls > fd.failCreateAfter {
		return nil, fmt.Errorf("create refused")
	}

	fd.nextID++
	stored := *file
	stored.ID = types.FileID(fmt.Sprintf("file-%d", fd.nextID))
	stored.OrgID = scope.OrgID
	stored.BranchID = scope.BranchID
	fd.rows[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (fd *fakeDatabase) Update(_ context.Context, scope types.AccessScope, file *types.MediaFile) (*types.MediaFile, error) {
	fd.mu.Lock()
	defer fd.mu.Unlock()

	existing, ok := fd.rows[file.ID]
	if !ok || !fd.inScope(existing, scope) {
		return nil, fmt.Errorf("row %s not found", file.ID)
	}

	stored := *file
	stored.OrgID = existing.OrgID
	stored.BranchID = existing.BranchID
	fd.rows[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (fd *fakeDatabase) GetByID(_ context.Context, scope types.AccessScope, id types.FileID) (*types.MediaFile, error) {
	fd.mu.Lock()
	defer fd.mu.Unlock()

	row, ok := fd.rows[id]
	if !ok || !fd.inScope(row, scope) {
		return nil, nil
	}

	result := *row
	return &result, nil
}

func (fd *fakeDatabase) GetByParentID(_ context.Context, scope types.AccessScope, parentID types.FileID) ([]*types.MediaFile, error) {
	fd.mu.Lock()
	defer fd.mu.Unlock()

	var children []*types.MediaFile
	for _, row := range fd.rows {
		if row.ParentID == parentID && fd.inScope(row, scope) {
			result := *row
			children = append(children, &result)
		}
	}
	return children, nil
}

func (fd *fakeDatabase) List(_ context.Context, scope types.AccessScope, filters storage.ListFilters) (*storage.ListResult, error) {
	fd.mu.Lock()
	defer fd.mu.Unlock()

	var files []*types.MediaFile
	for _, row := range fd.rows {
		if !fd.inScope(row, scope) {
			continue
		}
		if filters.Deleted != (row.Status == types.StatusDeleted) || !row.IsActive {
			continue
		}
		result := *row
		files = append(files, &result)
	}

	return &storage.ListResult{
		Files: files,
		Total: int64(len(files)),
		Page:  filters.Page,
		Limit: filters.Limit,
	}, nil
}

func (fd *fakeDatabase) Aggregate(_ context.Context, scope types.AccessScope) (*storage.Stats, error) {
	fd.mu.Lock()
	defer fd.mu.Unlock()

	stats := &storage.Stats{ByKind: make(map[types.MediaKind]storage.KindStats)}
	for _, row := range fd.rows {
		if !fd.inScope(row, scope) || !row.IsVisible() {
			continue
		}
		stats.TotalFiles++
		stats.TotalSize += int64(row.Size)

		ks := stats.ByKind[row.Kind]
		ks.Count++
		ks.TotalSize += int64(row.Size)
		stats.ByKind[row.Kind] = ks
	}
	if stats.TotalFiles > 0 {
		stats.AverageSize = stats.TotalSize / stats.TotalFiles
	}
	return stats, nil
}

func (fd *fakeDatabase) CascadeState(_ context.Context, scope types.AccessScope, id types.FileID, change storage.StateChange) ([]*types.MediaFile, error) {
	fd.mu.Lock()
	defer fd.mu.Unlock()

	target, ok := fd.rows[id]
	if !ok || !fd.inScope(target, scope) {
		return nil, fmt.Errorf("row %s not found", id)
	}

	var affected []*types.MediaFile
	for _, row := range fd.rows {
		if row.ID != id && row.ParentID != id {
			continue
		}
		if change.Deactivate {
			row.IsActive = false
		}
		if change.SetStatus != "" {
			row.Status = change.SetStatus
		}
		result := *row
		affected = append(affected, &result)
	}
	return affected, nil
}
