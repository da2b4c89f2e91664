package local

import (
	"context"
	"fmt"
	"os"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
)

// Opener provides buckets backed by a local filesystem directory
// through the gocloud fileblob driver.
type Opener struct {
	directory string
}

func NewOpener(directory string) *Opener {
	return &Opener{directory: directory}
}

func (o *Opener) Setup(_ context.Context) error {
	return os.MkdirAll(o.directory, 0755)
}

func (o *Opener) OpenBucket(ctx context.Context) (*blob.Bucket, error) {
	return blob.OpenBucket(ctx, fmt.Sprintf("file://%s", o.directory))
}
