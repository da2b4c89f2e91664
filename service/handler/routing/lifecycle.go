package routing

import (
	"encoding/json"
	"net/http"

	"github.com/Legend-Systems/service-media/service/business"
	"github.com/Legend-Systems/service-media/service/types"
	"github.com/gorilla/mux"
	"github.com/pitabwire/util"
)

// bulkEditRequest is the body of PATCH /media/bulk.
type bulkEditRequest struct {
	FileIDs []types.FileID        `json:"fileIds"`
	Patch   *business.EditRequest `json:"patch"`
}

// Edit implements PATCH /media/{fileId}.
func Edit(req *http.Request, mediaService business.MediaService) util.JSONResponse {
	ctx := req.Context()

	scope, resErr := scopeFromRequest(req)
	if resErr != nil {
		return *resErr
	}

	fileID := types.FileID(mux.Vars(req)["fileId"])

	var patch business.EditRequest
	if err := json.NewDecoder(req.Body).Decode(&patch); err != nil {
		return errorJSONResponse(http.StatusBadRequest, string(business.CodeValidation), "could not parse edit request body")
	}

	updated, err := mediaService.EditFile(ctx, scope, fileID, &patch)
	if err != nil {
		return errorResponse(err)
	}

	return util.JSONResponse{
		Code: http.StatusOK,
		JSON: updated,
	}
}

// BulkEdit implements PATCH /media/bulk.
func BulkEdit(req *http.Request, mediaService business.MediaService) util.JSONResponse {
	ctx := req.Context()

	scope, resErr := scopeFromRequest(req)
	if resErr != nil {
		return *resErr
	}

	var body bulkEditRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return errorJSONResponse(http.StatusBadRequest, string(business.CodeValidation), "could not parse bulk edit request body")
	}

	result, err := mediaService.BulkEdit(ctx, scope, body.FileIDs, body.Patch)
	if err != nil {
		return errorResponse(err)
	}

	status := http.StatusOK
	if result.Failed > 0 {
		status = http.StatusMultiStatus
	}

	return util.JSONResponse{
		Code: status,
		JSON: result,
	}
}

// DeleteFile implements DELETE /media/{fileId}.
func DeleteFile(req *http.Request, mediaService business.MediaService) util.JSONResponse {
	ctx := req.Context()

	scope, resErr := scopeFromRequest(req)
	if resErr != nil {
		return *resErr
	}

	fileID := types.FileID(mux.Vars(req)["fileId"])

	if err := mediaService.DeleteFile(ctx, scope, fileID); err != nil {
		return errorResponse(err)
	}

	return util.JSONResponse{
		Code: http.StatusOK,
		JSON: map[string]interface{}{"deleted": string(fileID)},
	}
}

// SoftDelete implements POST /media/{fileId}/soft-delete.
func SoftDelete(req *http.Request, mediaService business.MediaService) util.JSONResponse {
	ctx := req.Context()

	scope, resErr := scopeFromRequest(req)
	if resErr != nil {
		return *resErr
	}

	fileID := types.FileID(mux.Vars(req)["fileId"])

	if err := mediaService.SoftDeleteFile(ctx, scope, fileID); err != nil {
		return errorResponse(err)
	}

	return util.JSONResponse{
		Code: http.StatusOK,
		JSON: map[string]interface{}{"softDeleted": string(fileID)},
	}
}

// Restore implements POST /media/{fileId}/restore.
func Restore(req *http.Request, mediaService business.MediaService) util.JSONResponse {
	ctx := req.Context()

	scope, resErr := scopeFromRequest(req)
	if resErr != nil {
		return *resErr
	}

	fileID := types.FileID(mux.Vars(req)["fileId"])

	if err := mediaService.RestoreFile(ctx, scope, fileID); err != nil {
		return errorResponse(err)
	}

	return util.JSONResponse{
		Code: http.StatusOK,
		JSON: map[string]interface{}{"restored": string(fileID)},
	}
}
