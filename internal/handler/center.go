package handler

import (
	"log/slog"
	"net/http"

	"github.com/ecoscan/ecoscan/internal/store"
)

type CenterHandler struct {
	centerStore *store.CenterStore
	logger      *slog.Logger
}

func NewCenterHandler(cs *store.CenterStore, logger *slog.Logger) *CenterHandler {
	return &CenterHandler{centerStore: cs, logger: logger}
}

// List handles GET /api/centers
func (h *CenterHandler) List(w http.ResponseWriter, r *http.Request) {
	centers, err := h.centerStore.List()
	if err != nil {
		h.logger.Error("list centers", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list centers")
		return
	}
	if centers == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, centers)
}
