package repository

import (
	"context"

	"github.com/Legend-Systems/service-media/service/storage/models"
	"github.com/pitabwire/frame"
)

func Migrate(ctx context.Context, svc *frame.Service, migrationPath string) error {
	return svc.MigrateDatastore(ctx, migrationPath,
		&models.MediaFile{}, &models.MediaAudit{})
}
