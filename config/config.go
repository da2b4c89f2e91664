package config

import (
	"github.com/pitabwire/frame/config"
)

// MediaConfig carries the environment driven configuration for the
// media service on top of the frame defaults.
type MediaConfig struct {
	config.ConfigurationDefault

	StorageProvider string `envDefault:"LOCAL" env:"STORAGE_PROVIDER"`

	ProviderLocalDirectory string `envDefault:"/tmp/media_store" env:"LOCAL_DIRECTORY"`

	ProviderGcsBucket string `envDefault:"" env:"GCS_BUCKET"`

	ProviderS3Bucket          string `envDefault:"" env:"S3_BUCKET"`
	ProviderS3Endpoint        string `envDefault:"" env:"S3_ENDPOINT"`
	ProviderS3Region          string `envDefault:"" env:"S3_REGION"`
	ProviderS3AccessKeyId     string `envDefault:"" env:"S3_ACCESS_KEY_ID"`
	ProviderS3AccessKeySecret string `envDefault:"" env:"S3_ACCESS_KEY_SECRET"`
	ProviderS3SessionToken    string `envDefault:"" env:"S3_SESSION_TOKEN"`

	// PublicBaseURL is the address prefix under which stored objects
	// resolve. The url of a row is derived from this and its storage
	// key so a bucket move does not require rewriting rows.
	PublicBaseURL string `envDefault:"http://localhost:8080/media/raw" env:"PUBLIC_BASE_URL"`

	// BatchWorkerCount bounds the upload fan out of one bulk request.
	// Any value from 1 upwards is correct, it only tunes throughput.
	BatchWorkerCount int `envDefault:"4" env:"BATCH_WORKER_COUNT"`

	// MaxBulkUploadUnits caps the number of files in one bulk upload.
	// Deployments may lower the cap, never raise it past the hard
	// protocol limit of 10.
	MaxBulkUploadUnits int `envDefault:"10" env:"MAX_BULK_UPLOAD_UNITS"`
}

// BulkUploadUnitsCeiling is the hard upper bound on files per bulk
// upload regardless of configuration.
const BulkUploadUnitsCeiling = 10

// BulkUploadUnits returns the effective per request file cap, clamped
// to [1, BulkUploadUnitsCeiling].
func (c *MediaConfig) BulkUploadUnits() int {
	if c.MaxBulkUploadUnits < 1 || c.MaxBulkUploadUnits > BulkUploadUnitsCeiling {
		return BulkUploadUnitsCeiling
	}
	return c.MaxBulkUploadUnits
}
