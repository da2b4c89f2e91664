package tests

import (
	"context"
	"testing"

	"github.com/Legend-Systems/service-media/config"
	internaltests "github.com/Legend-Systems/service-media/internal/tests"
	"github.com/Legend-Systems/service-media/service/events"
	"github.com/Legend-Systems/service-media/service/storage/repository"
	"github.com/pitabwire/frame"
	"github.com/pitabwire/frame/frametests"
	"github.com/pitabwire/frame/frametests/definition"
	"github.com/stretchr/testify/require"
)

type BaseTestSuite struct {
	internaltests.BaseTestSuite
}

func (bs *BaseTestSuite) CreateService(
	t *testing.T,
	depOpts *definition.DependancyOption,
) (*frame.Service, context.Context) {

	ctx := t.Context()
	mediaConfig, err := frame.ConfigFromEnv[config.MediaConfig]()
	require.NoError(t, err)

	mediaConfig.LogLevel = "debug"
	mediaConfig.RunServiceSecurely = false
	mediaConfig.ServerPort = ""
	mediaConfig.ProviderLocalDirectory = t.TempDir()

	res := depOpts.ByIsDatabase(ctx)
	testDS, cleanup, err0 := res.GetRandomisedDS(ctx, depOpts.Prefix())
	require.NoError(t, err0)

	t.Cleanup(func() {
		cleanup(ctx)
	})

	mediaConfig.DatabasePrimaryURL = []string{testDS.String()}
	mediaConfig.DatabaseReplicaURL = []string{testDS.String()}

	ctx, svc := frame.NewServiceWithContext(ctx, "media tests",
		frame.WithConfig(&mediaConfig),
		frame.WithDatastore(),
		frametests.WithNoopDriver())

	svc.Init(ctx, frame.WithRegisterEvents(
		events.NewAuditSaveHandler(svc)))

	err = repository.Migrate(ctx, svc, "../../migrations/0001")
	require.NoError(t, err)

	err = svc.Run(ctx, "")
	require.NoError(t, err)

	return svc, ctx
}
