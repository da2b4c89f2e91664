package routing

import (
	"io"
	"net/http"
	"strconv"

	"github.com/Legend-Systems/service-media/service/storage"
	"github.com/Legend-Systems/service-media/service/types"
	"github.com/gorilla/mux"
	"github.com/pitabwire/util"
)

// Download implements GET /media/raw/{key}.
// Serves the stored bytes directly from the blob provider. The key is
// the full storage key of an original or a variant, as carried in a
// row's url.
func Download(w http.ResponseWriter, req *http.Request, provider storage.Provider) {
	ctx := req.Context()

	util.SetCORSHeaders(w)
	w.Header().Set("Cross-Origin-Resource-Policy", "cross-origin")

	key := types.StorageKey(mux.Vars(req)["key"])
	if key == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"missing storage key"}`))
		return
	}

	reader, err := provider.Open(ctx, key)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"object not found"}`))
		return
	}
	defer util.CloseAndLogOnError(ctx, reader)

	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(86400))

	if _, err = io.Copy(w, reader); err != nil {
		util.Log(ctx).WithError(err).Error("Failed to stream file content")
	}
}
