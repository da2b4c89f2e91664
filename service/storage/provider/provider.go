package provider

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/Legend-Systems/service-media/service/storage"
	"github.com/Legend-Systems/service-media/service/types"
	"github.com/pitabwire/util"
	"github.com/pkg/errors"
	"gocloud.dev/blob"
)

// BucketOpener yields the blob bucket a provider writes into. Each
// backend (local, s3, gcs) supplies one.
type BucketOpener interface {
	Setup(ctx context.Context) error
	OpenBucket(ctx context.Context) (*blob.Bucket, error)
}

// blobProvider implements storage.Provider over a gocloud bucket. The
// bucket is opened once during Setup and shared, gocloud buckets are
// safe for concurrent use.
type blobProvider struct {
	name    string
	baseURL string
	opener  BucketOpener
	bucket  *blob.Bucket
}

// New builds a provider with the given name over an opener. Object
// addresses resolve under baseURL so a backend move only needs a new
// base, never a rewrite of stored keys.
func New(name, baseURL string, opener BucketOpener) storage.Provider {
	return &blobProvider{
		name:    name,
		baseURL: baseURL,
		opener:  opener,
	}
}

func (p *blobProvider) Name() string {
	return p.name
}

func (p *blobProvider) Setup(ctx context.Context) error {
	if err := p.opener.Setup(ctx); err != nil {
		return errors.Wrapf(err, "preparing %s storage backend", p.name)
	}

	bucket, err := p.opener.OpenBucket(ctx)
	if err != nil {
		return errors.Wrapf(err, "opening %s bucket", p.name)
	}
	p.bucket = bucket
	return nil
}

func (p *blobProvider) resolveURL(key types.StorageKey) string {
	return strings.TrimSuffix(p.baseURL, "/") + "/" + string(key)
}

func (p *blobProvider) Put(ctx context.Context, key types.StorageKey, data []byte, mimeType string) (string, error) {
	writeCtx, cancelWrite := context.WithCancel(ctx)
	defer cancelWrite()

	w, err := p.bucket.NewWriter(writeCtx, string(key), &blob.WriterOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", err
	}

	if _, err = w.ReadFrom(bytes.NewReader(data)); err != nil {
		util.CloseAndLogOnError(ctx, w)
		return "", err
	}

	if err = w.Close(); err != nil {
		return "", err
	}

	return p.resolveURL(key), nil
}

func (p *blobProvider) Open(ctx context.Context, key types.StorageKey) (io.ReadCloser, error) {
	return p.bucket.NewReader(ctx, string(key), nil)
}

func (p *blobProvider) DeleteBestEffort(ctx context.Context, key types.StorageKey) {
	if err := p.bucket.Delete(ctx, string(key)); err != nil {
		util.Log(ctx).WithError(err).
			WithField("key", key).
			Warn("best effort delete failed, orphan left for reconciliation")
	}
}
