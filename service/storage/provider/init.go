package provider

import (
	"context"

	"github.com/Legend-Systems/service-media/config"
	"github.com/Legend-Systems/service-media/service/storage"
	"github.com/Legend-Systems/service-media/service/storage/provider/gcs"
	"github.com/Legend-Systems/service-media/service/storage/provider/local"
	"github.com/Legend-Systems/service-media/service/storage/provider/s3"
)

func GetStorageProvider(ctx context.Context, cfg *config.MediaConfig) (storage.Provider, error) {
	var p storage.Provider
	switch cfg.StorageProvider {
	case "GCS":
		p = New("GCS", cfg.PublicBaseURL, gcs.NewOpener(cfg.ProviderGcsBucket))

	case "S3":
		p = New("S3", cfg.PublicBaseURL, s3.NewOpener(
			cfg.ProviderS3Bucket, cfg.ProviderS3Endpoint, cfg.ProviderS3Region,
			cfg.ProviderS3AccessKeySecret, cfg.ProviderS3SessionToken, cfg.ProviderS3AccessKeyId))

	default:
		p = New("LOCAL", cfg.PublicBaseURL, local.NewOpener(cfg.ProviderLocalDirectory))
	}

	err := p.Setup(ctx)
	return p, err
}
