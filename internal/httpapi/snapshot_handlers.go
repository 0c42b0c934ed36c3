package httpapi

import (
	"net/http"
	"strconv"

	"github.com/posventa-ciel/planificacion-taller-chapa/internal/store"
)

type SnapshotsHandler struct {
	Store *store.DB
}

// List serves the recent ingest-run history from the snapshot store.
func (h SnapshotsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeJSON(w, []store.Snapshot{})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	snaps, err := store.ListSnapshots(r.Context(), h.Store.Pool, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, snaps)
}
