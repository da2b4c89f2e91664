package s3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gocloud.dev/blob"
	"gocloud.dev/blob/s3blob"
)

// Opener provides buckets on any s3 compatible store.
type Opener struct {
	bucket        string
	s3Endpoint    string
	s3Region      string
	s3AccessKeyID string
	s3Secret      string
	s3Token       string

	client *s3.Client
}

func NewOpener(bucket, s3Endpoint, s3Region, s3Secret, s3Token, s3AccessKeyID string) *Opener {
	return &Opener{
		bucket:        bucket,
		s3Endpoint:    s3Endpoint,
		s3Region:      s3Region,
		s3Secret:      s3Secret,
		s3Token:       s3Token,
		s3AccessKeyID: s3AccessKeyID,
	}
}

func (o *Opener) Setup(_ context.Context) error {
	s3Config := aws.Config{
		Credentials:  credentials.NewStaticCredentialsProvider(o.s3AccessKeyID, o.s3Secret, o.s3Token),
		BaseEndpoint: aws.String(o.s3Endpoint),
		Region:       o.s3Region,
	}

	o.client = s3.NewFromConfig(s3Config, func(opts *s3.Options) {
		opts.UsePathStyle = true
	})

	return nil
}

func (o *Opener) OpenBucket(ctx context.Context) (*blob.Bucket, error) {
	return s3blob.OpenBucketV2(ctx, o.client, o.bucket, nil)
}
