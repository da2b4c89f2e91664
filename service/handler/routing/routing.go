package routing

import (
	"encoding/json"
	"net/http"

	"github.com/Legend-Systems/service-media/service/business"
	"github.com/Legend-Systems/service-media/service/storage"
	"github.com/Legend-Systems/service-media/service/types"
	"github.com/gorilla/mux"
	"github.com/pitabwire/frame"
	"github.com/pitabwire/frame/security"
	"github.com/pitabwire/util"
)

const (
	// HeaderOrgID and HeaderBranchID scope every call to a tenant.
	// BranchID may be absent to address the whole organisation.
	HeaderOrgID    = "X-Org-ID"
	HeaderBranchID = "X-Branch-ID"
)

// SetupMediaRoutes wires the media API onto a mux router.
func SetupMediaRoutes(service *frame.Service, mediaService business.MediaService, provider storage.Provider) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/media/raw/{key:.+}", func(w http.ResponseWriter, req *http.Request) {
		Download(w, req, provider)
	}).Methods(http.MethodGet, http.MethodOptions)

	v1 := router.PathPrefix("/media").Subrouter()

	v1.Handle("/upload", CreateHandler(func(req *http.Request) util.JSONResponse {
		return Upload(req, service, mediaService)
	})).Methods(http.MethodPost, http.MethodOptions)

	v1.Handle("/upload/bulk", CreateHandler(func(req *http.Request) util.JSONResponse {
		return BulkUpload(req, service, mediaService)
	})).Methods(http.MethodPost, http.MethodOptions)

	v1.Handle("/deleted", CreateHandler(func(req *http.Request) util.JSONResponse {
		return ListDeleted(req, mediaService)
	})).Methods(http.MethodGet, http.MethodOptions)

	v1.Handle("/stats", CreateHandler(func(req *http.Request) util.JSONResponse {
		return Stats(req, mediaService)
	})).Methods(http.MethodGet, http.MethodOptions)

	v1.Handle("/bulk", CreateHandler(func(req *http.Request) util.JSONResponse {
		return BulkEdit(req, mediaService)
	})).Methods(http.MethodPatch, http.MethodOptions)

	v1.Handle("/{fileId}/soft-delete", CreateHandler(func(req *http.Request) util.JSONResponse {
		return SoftDelete(req, mediaService)
	})).Methods(http.MethodPost, http.MethodOptions)

	v1.Handle("/{fileId}/restore", CreateHandler(func(req *http.Request) util.JSONResponse {
		return Restore(req, mediaService)
	})).Methods(http.MethodPost, http.MethodOptions)

	v1.Handle("/{fileId}", CreateHandler(func(req *http.Request) util.JSONResponse {
		return GetFile(req, mediaService)
	})).Methods(http.MethodGet, http.MethodOptions)

	v1.Handle("/{fileId}", CreateHandler(func(req *http.Request) util.JSONResponse {
		return Edit(req, mediaService)
	})).Methods(http.MethodPatch, http.MethodOptions)

	v1.Handle("/{fileId}", CreateHandler(func(req *http.Request) util.JSONResponse {
		return DeleteFile(req, mediaService)
	})).Methods(http.MethodDelete, http.MethodOptions)

	v1.Handle("", CreateHandler(func(req *http.Request) util.JSONResponse {
		return List(req, mediaService)
	})).Methods(http.MethodGet, http.MethodOptions)

	return router
}

// CreateHandler creates an HTTP handler from a JSON response function
func CreateHandler(f func(*http.Request) util.JSONResponse) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		util.SetCORSHeaders(w)
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		response := f(req)

		if response.Headers != nil {
			for key, value := range response.Headers {
				if values, ok := value.([]string); ok {
					for _, v := range values {
						w.Header().Add(key, v)
					}
				} else if str, ok := value.(string); ok {
					w.Header().Add(key, str)
				}
			}
		}

		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}

		w.WriteHeader(response.Code)
		if response.JSON != nil {
			encoder := json.NewEncoder(w)
			encoder.SetEscapeHTML(false)
			if err := encoder.Encode(response.JSON); err != nil {
				util.Log(req.Context()).WithError(err).Error("Failed to write JSON response")
			}
		}
	})
}

// scopeFromRequest resolves the caller's tenant scope. The owner comes
// from the verified token subject, the tenant from request headers.
func scopeFromRequest(req *http.Request) (types.AccessScope, *util.JSONResponse) {
	ctx := req.Context()

	authClaims := security.ClaimsFromContext(ctx)
	if authClaims == nil {
		return types.AccessScope{}, unauthorisedResponse()
	}

	sub, err := authClaims.GetSubject()
	if err != nil {
		return types.AccessScope{}, unauthorisedResponse()
	}

	orgID := req.Header.Get(HeaderOrgID)
	if orgID == "" {
		resp := errorJSONResponse(http.StatusBadRequest, string(business.CodeValidation), "missing "+HeaderOrgID+" header")
		return types.AccessScope{}, &resp
	}

	return types.AccessScope{
		OwnerID:  types.OwnerID(sub),
		OrgID:    orgID,
		BranchID: req.Header.Get(HeaderBranchID),
	}, nil
}

func unauthorisedResponse() *util.JSONResponse {
	return &util.JSONResponse{
		Code: http.StatusUnauthorized,
		JSON: map[string]interface{}{
			"errcode": "UNAUTHORISED",
			"error":   "Unauthorised",
		},
	}
}

func errorJSONResponse(code int, errcode, message string) util.JSONResponse {
	return util.JSONResponse{
		Code: code,
		JSON: map[string]interface{}{
			"errcode": errcode,
			"error":   message,
		},
	}
}

// errorResponse maps a business failure onto its HTTP status.
func errorResponse(err error) util.JSONResponse {
	code := business.CodeOf(err)

	status := http.StatusInternalServerError
	switch code {
	case business.CodeValidation:
		status = http.StatusBadRequest
	case business.CodeNotFound:
		status = http.StatusNotFound
	case business.CodeForbidden:
		status = http.StatusForbidden
	case business.CodeCancelled:
		// Client closed request.
		status = 499
	case business.CodeStorage, business.CodePersistence:
		status = http.StatusInternalServerError
	}

	return errorJSONResponse(status, string(code), err.Error())
}
