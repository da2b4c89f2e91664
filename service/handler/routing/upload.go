package routing

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Legend-Systems/service-media/config"
	"github.com/Legend-Systems/service-media/service/business"
	"github.com/Legend-Systems/service-media/service/types"
	"github.com/pitabwire/frame"
	"github.com/pitabwire/util"
)

// multipartMemoryBytes bounds what ParseMultipartForm keeps in memory,
// larger parts spill to disk.
const multipartMemoryBytes = 10 << 20

// Upload implements POST /media/upload.
// Accepts one multipart file part named "file" plus optional form
// fields tuning the ingestion.
func Upload(req *http.Request, service *frame.Service, mediaService business.MediaService) util.JSONResponse {
	ctx := req.Context()

	scope, resErr := scopeFromRequest(req)
	if resErr != nil {
		return *resErr
	}

	if err := req.ParseMultipartForm(multipartMemoryBytes); err != nil {
		return errorJSONResponse(http.StatusBadRequest, string(business.CodeValidation), "could not parse multipart form")
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		return errorJSONResponse(http.StatusBadRequest, string(business.CodeValidation), "missing file part")
	}
	defer util.CloseAndLogOnError(ctx, file)

	uploadReq, resErr := buildUploadRequest(req, file, header)
	if resErr != nil {
		return *resErr
	}

	result, err := mediaService.UploadFile(ctx, scope, uploadReq)
	if err != nil {
		return errorResponse(err)
	}

	return util.JSONResponse{
		Code: http.StatusCreated,
		JSON: result,
	}
}

// BulkUpload implements POST /media/upload/bulk.
// Accepts up to the configured number of "files" parts, shared form
// fields apply to every unit.
func BulkUpload(req *http.Request, service *frame.Service, mediaService business.MediaService) util.JSONResponse {
	ctx := req.Context()

	scope, resErr := scopeFromRequest(req)
	if resErr != nil {
		return *resErr
	}

	cfg, _ := service.Config().(*config.MediaConfig)
	maxUnits := config.BulkUploadUnitsCeiling
	if cfg != nil {
		maxUnits = cfg.BulkUploadUnits()
	}

	if err := req.ParseMultipartForm(multipartMemoryBytes); err != nil {
		return errorJSONResponse(http.StatusBadRequest, string(business.CodeValidation), "could not parse multipart form")
	}

	if req.MultipartForm == nil || len(req.MultipartForm.File["files"]) == 0 {
		return errorJSONResponse(http.StatusBadRequest, string(business.CodeValidation), "missing files parts")
	}

	headers := req.MultipartForm.File["files"]
	if len(headers) > maxUnits {
		return errorJSONResponse(http.StatusBadRequest, string(business.CodeValidation), "too many files in bulk upload")
	}

	batchReq := &business.BatchUploadRequest{}
	for _, header := range headers {
		part, err := header.Open()
		if err != nil {
			return errorJSONResponse(http.StatusBadRequest, string(business.CodeValidation), "could not open file part")
		}

		uploadReq, resErr := buildUploadRequest(req, part, header)
		util.CloseAndLogOnError(ctx, part)
		if resErr != nil {
			return *resErr
		}

		batchReq.Units = append(batchReq.Units, uploadReq)
	}

	result, err := mediaService.UploadBatch(ctx, scope, batchReq)
	if err != nil {
		return errorResponse(err)
	}

	status := http.StatusCreated
	if result.Failed > 0 {
		status = http.StatusMultiStatus
	}

	return util.JSONResponse{
		Code: status,
		JSON: result,
	}
}

// buildUploadRequest assembles one business upload unit from a
// multipart file part and the shared form fields.
func buildUploadRequest(req *http.Request, part multipart.File, header *multipart.FileHeader) (*business.UploadRequest, *util.JSONResponse) {
	// Reject oversized parts before buffering the whole body.
	if header.Size > int64(types.MaxFileSizeBytes) {
		resp := errorJSONResponse(http.StatusRequestEntityTooLarge, string(business.CodeValidation),
			"file is greater than the maximum allowed upload size")
		return nil, &resp
	}

	data, err := io.ReadAll(io.LimitReader(part, int64(types.MaxFileSizeBytes)+1))
	if err != nil {
		resp := errorJSONResponse(http.StatusBadRequest, string(business.CodeValidation), "could not read file part")
		return nil, &resp
	}
	if types.FileSizeBytes(len(data)) > types.MaxFileSizeBytes {
		resp := errorJSONResponse(http.StatusRequestEntityTooLarge, string(business.CodeValidation),
			"file is greater than the maximum allowed upload size")
		return nil, &resp
	}

	options := business.UploadOptions{
		AltText:            req.FormValue("altText"),
		Description:        req.FormValue("description"),
		KindHint:           types.MediaKind(req.FormValue("kind")),
		GenerateThumbnails: parseBoolDefault(req.FormValue("generateThumbnails"), true),
	}

	if variants := req.FormValue("variants"); variants != "" {
		for _, v := range strings.Split(variants, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				options.RequestedVariants = append(options.RequestedVariants, types.VariantKind(v))
			}
		}
	}

	return &business.UploadRequest{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
		Options:     options,
	}, nil
}

func parseBoolDefault(value string, fallback bool) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return fallback
	}
}
