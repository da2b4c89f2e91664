package gcs

import (
	"context"

	"gocloud.dev/blob"
	"gocloud.dev/blob/gcsblob"
	"gocloud.dev/gcp"
)

// Opener provides buckets on google cloud storage using application
// default credentials.
type Opener struct {
	bucket string
	client *gcp.HTTPClient
}

func NewOpener(bucket string) *Opener {
	return &Opener{bucket: bucket}
}

func (o *Opener) Setup(ctx context.Context) error {
	creds, err := gcp.DefaultCredentials(ctx)
	if err != nil {
		return err
	}

	o.client, err = gcp.NewHTTPClient(
		gcp.DefaultTransport(),
		gcp.CredentialsTokenSource(creds))

	return err
}

func (o *Opener) OpenBucket(ctx context.Context) (*blob.Bucket, error) {
	return gcsblob.OpenBucket(ctx, o.client, o.bucket, nil)
}
