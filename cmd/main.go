package main

import (
	"context"

	"github.com/Legend-Systems/service-media/config"
	"github.com/Legend-Systems/service-media/service/business"
	"github.com/Legend-Systems/service-media/service/events"
	"github.com/Legend-Systems/service-media/service/handler/routing"
	"github.com/Legend-Systems/service-media/service/storage/connection"
	"github.com/Legend-Systems/service-media/service/storage/provider"
	"github.com/Legend-Systems/service-media/service/storage/repository"
	"github.com/gorilla/handlers"
	"github.com/pitabwire/frame"
	"github.com/pitabwire/util"
)

func main() {

	serviceName := "service_media"
	ctx := context.Background()

	cfg, err := frame.ConfigFromEnv[config.MediaConfig]()
	if err != nil {
		util.Log(ctx).With("err", err).Error("could not process configs")
		return
	}

	ctx, svc := frame.NewService(serviceName, frame.WithConfig(&cfg))

	log := svc.Log(ctx)

	serviceOptions := []frame.Option{frame.WithDatastore()}

	// Handle database migration if requested
	if handleDatabaseMigration(ctx, svc, cfg, log) {
		return
	}

	storageProvider, err := provider.GetStorageProvider(ctx, &cfg)
	if err != nil {
		log.WithError(err).Fatal("main -- Could not setup or access storage")
	}

	jwtAudience := cfg.Oauth2JwtVerifyAudience
	if jwtAudience == "" {
		jwtAudience = serviceName
	}

	mediaStore, err := connection.NewMediaDatabase(svc)
	if err != nil {
		log.WithError(err).Fatal("main -- failed to setup storage")
	}

	mediaService := business.NewMediaService(svc, mediaStore, storageProvider)

	router := routing.SetupMediaRoutes(svc, mediaService, storageProvider)

	authServiceHandlers := handlers.RecoveryHandler(
		handlers.PrintRecoveryStack(true))(
		svc.AuthenticationMiddleware(router, jwtAudience, cfg.Oauth2JwtVerifyIssuer))

	serviceOptions = append(serviceOptions, frame.WithHTTPHandler(authServiceHandlers))

	serviceOptions = append(serviceOptions, frame.WithRegisterEvents(
		events.NewAuditSaveHandler(svc),
	))

	svc.Init(ctx, serviceOptions...)

	log.WithField("server http port", cfg.HTTPPort()).
		Info(" Initiating server operations")

	err = svc.Run(ctx, "")
	if err != nil {
		log.WithError(err).Fatal("main -- Could not run Server : %v", err)
	}

}

// handleDatabaseMigration performs database migration if configured to do so.
func handleDatabaseMigration(
	ctx context.Context,
	svc *frame.Service,
	cfg config.MediaConfig,
	log *util.LogEntry,
) bool {
	serviceOptions := []frame.Option{frame.WithDatastore()}

	if cfg.DoDatabaseMigrate() {
		svc.Init(ctx, serviceOptions...)

		err := repository.Migrate(ctx, svc, cfg.GetDatabaseMigrationPath())
		if err != nil {
			log.WithError(err).Fatal("main -- Could not migrate successfully")
		}
		return true
	}
	return false
}
