package business

import (
	"testing"

	"github.com/Legend-Systems/service-media/config"
	"github.com/Legend-Systems/service-media/service/storage/connection"
	"github.com/Legend-Systems/service-media/service/storage/provider"
	"github.com/Legend-Systems/service-media/service/tests"
	"github.com/Legend-Systems/service-media/service/types"
	"github.com/pitabwire/frame/frametests/definition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// MediaServiceTestSuite runs the service against a real database and a
// local blob directory instead of the in package fakes.
type MediaServiceTestSuite struct {
	tests.BaseTestSuite
}

func TestMediaServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MediaServiceTestSuite))
}

func (suite *MediaServiceTestSuite) newIntegrationService(t *testing.T, dep *definition.DependancyOption) MediaService {
	svc, ctx := suite.CreateService(t, dep)

	db, err := connection.NewMediaDatabase(svc)
	require.NoError(t, err)

	cfg, ok := svc.Config().(*config.MediaConfig)
	require.True(t, ok)

	prov, err := provider.GetStorageProvider(ctx, cfg)
	require.NoError(t, err)

	return NewMediaService(svc, db, prov)
}

func (suite *MediaServiceTestSuite) Test_NewMediaService() {
	suite.WithTestDependancies(suite.T(), func(t *testing.T, dep *definition.DependancyOption) {
		ms := suite.newIntegrationService(t, dep)
		assert.Implements(t, (*MediaService)(nil), ms)
	})
}

func (suite *MediaServiceTestSuite) Test_UploadAndFetchRoundTrip() {
	suite.WithTestDependancies(suite.T(), func(t *testing.T, dep *definition.DependancyOption) {
		ctx := t.Context()
		ms := suite.newIntegrationService(t, dep)

		scope := types.AccessScope{OwnerID: "owner-1", OrgID: "org-1", BranchID: "branch-1"}
		data := pngBytes(t, 600, 300)

		result, err := ms.UploadFile(ctx, scope, &UploadRequest{
			FileName:    "round-trip.png",
			ContentType: "image/png",
			Data:        data,
			Options: UploadOptions{
				GenerateThumbnails: true,
			},
		})
		require.NoError(t, err)
		require.NotNil(t, result.Original)
		assert.Empty(t, result.VariantErrors)
		require.Len(t, result.Variants, 1)

		fetched, err := ms.GetFile(ctx, scope, result.Original.ID)
		require.NoError(t, err)
		assert.Equal(t, "round-trip.png", fetched.OriginalName)
		assert.Equal(t, 600, fetched.Width)
		assert.Equal(t, 300, fetched.Height)

		// The stored thumbnail is fetchable under the same scope.
		thumb, err := ms.GetFile(ctx, scope, result.Variants[0].ID)
		require.NoError(t, err)
		assert.Equal(t, result.Original.ID, thumb.ParentID)
		assert.Equal(t, "image/jpeg", thumb.MimeType)
	})
}

func (suite *MediaServiceTestSuite) Test_DeleteRemovesTree() {
	suite.WithTestDependancies(suite.T(), func(t *testing.T, dep *definition.DependancyOption) {
		ctx := t.Context()
		ms := suite.newIntegrationService(t, dep)

		scope := types.AccessScope{OwnerID: "owner-1", OrgID: "org-1"}
		result, err := ms.UploadFile(ctx, scope, &UploadRequest{
			FileName:    "short-lived.png",
			ContentType: "image/png",
			Data:        pngBytes(t, 400, 400),
			Options:     UploadOptions{GenerateThumbnails: true},
		})
		require.NoError(t, err)

		require.NoError(t, ms.DeleteFile(ctx, scope, result.Original.ID))

		_, err = ms.GetFile(ctx, scope, result.Original.ID)
		require.Error(t, err)
		assert.True(t, HasCode(err, CodeNotFound))

		_, err = ms.GetFile(ctx, scope, result.Variants[0].ID)
		require.Error(t, err)
		assert.True(t, HasCode(err, CodeNotFound))
	})
}
