package routing

import (
	"net/http"
	"strconv"

	"github.com/Legend-Systems/service-media/service/business"
	"github.com/Legend-Systems/service-media/service/storage"
	"github.com/Legend-Systems/service-media/service/types"
	"github.com/gorilla/mux"
	"github.com/pitabwire/util"
)

// GetFile implements GET /media/{fileId}.
func GetFile(req *http.Request, mediaService business.MediaService) util.JSONResponse {
	ctx := req.Context()

	scope, resErr := scopeFromRequest(req)
	if resErr != nil {
		return *resErr
	}

	fileID := types.FileID(mux.Vars(req)["fileId"])

	file, err := mediaService.GetFile(ctx, scope, fileID)
	if err != nil {
		return errorResponse(err)
	}

	return util.JSONResponse{
		Code: http.StatusOK,
		JSON: file,
	}
}

// List implements GET /media over the visible set.
func List(req *http.Request, mediaService business.MediaService) util.JSONResponse {
	return listFiles(req, mediaService, false)
}

// ListDeleted implements GET /media/deleted over the soft deleted set.
func ListDeleted(req *http.Request, mediaService business.MediaService) util.JSONResponse {
	return listFiles(req, mediaService, true)
}

func listFiles(req *http.Request, mediaService business.MediaService, deleted bool) util.JSONResponse {
	ctx := req.Context()
	logger := util.Log(ctx)

	scope, resErr := scopeFromRequest(req)
	if resErr != nil {
		return *resErr
	}

	filters := storage.ListFilters{
		Kind:        types.MediaKind(req.FormValue("kind")),
		VariantKind: types.VariantKind(req.FormValue("variant")),
		Search:      req.FormValue("search"),
		Deleted:     deleted,
		SortBy:      storage.SortField(req.FormValue("sortBy")),
		Order:       storage.SortOrder(req.FormValue("order")),
	}

	if owner := req.FormValue("ownerId"); owner != "" {
		filters.OwnerID = types.OwnerID(owner)
	}

	if pageStr := req.FormValue("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p >= 1 {
			filters.Page = p
		} else {
			logger.WithField("page", pageStr).Warn("Invalid page parameter, using default")
		}
	}

	if limitStr := req.FormValue("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			filters.Limit = l
		} else {
			logger.WithField("limit", limitStr).Warn("Invalid limit parameter, using default")
		}
	}

	result, err := mediaService.ListFiles(ctx, scope, filters)
	if err != nil {
		return errorResponse(err)
	}

	return util.JSONResponse{
		Code: http.StatusOK,
		JSON: result,
	}
}

// Stats implements GET /media/stats.
func Stats(req *http.Request, mediaService business.MediaService) util.JSONResponse {
	ctx := req.Context()

	scope, resErr := scopeFromRequest(req)
	if resErr != nil {
		return *resErr
	}

	stats, err := mediaService.Stats(ctx, scope)
	if err != nil {
		return errorResponse(err)
	}

	return util.JSONResponse{
		Code: http.StatusOK,
		JSON: stats,
	}
}
