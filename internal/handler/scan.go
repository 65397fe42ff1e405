package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ecoscan/ecoscan/internal/auth"
	"github.com/ecoscan/ecoscan/internal/classify"
	"github.com/ecoscan/ecoscan/internal/ledger"
	"github.com/ecoscan/ecoscan/internal/model"
	"github.com/ecoscan/ecoscan/internal/push"
	"github.com/ecoscan/ecoscan/internal/store"
	"github.com/ecoscan/ecoscan/internal/waste"
	"github.com/ecoscan/ecoscan/internal/websocket"
)

// maxImageSize caps uploaded scan images at 10 MB.
const maxImageSize = 10 << 20

type ScanHandler struct {
	source    *classify.Source
	scanStore *store.ScanEventStore
	ledger    *ledger.Service
	hub       *websocket.Hub
	notifier  *push.Notifier
	logger    *slog.Logger
}

func NewScanHandler(
	source *classify.Source,
	ss *store.ScanEventStore,
	ls *ledger.Service,
	hub *websocket.Hub,
	notifier *push.Notifier,
	logger *slog.Logger,
) *ScanHandler {
	return &ScanHandler{
		source:    source,
		scanStore: ss,
		ledger:    ls,
		hub:       hub,
		notifier:  notifier,
		logger:    logger,
	}
}

type scanRequest struct {
	Label string `json:"label"`
}

// Create handles POST /api/scans. The request carries either a JSON body
// with a label the user typed or picked, or a multipart image that is
// classified first.
func (h *ScanHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	label, err := h.resolveLabel(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if label == "" {
		writeError(w, http.StatusBadRequest, "label or image is required")
		return
	}

	c := waste.Interpret(label)

	event, err := h.scanStore.Create(ac.UserID, c)
	if err != nil {
		h.logger.Error("record scan event", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record scan")
		return
	}

	state, earned, err := h.ledger.RecordScan(ac.Email, c)
	if err != nil {
		h.logger.Error("apply scan to ledger", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record scan")
		return
	}

	h.hub.SendToUser(ac.UserID, websocket.NewMessage("scan", "recorded", map[string]any{
		"id":     event.PublicID,
		"points": c.Points,
	}))
	if c.Recognized {
		h.hub.Broadcast(websocket.NewMessage("leaderboard", "updated", nil))
	}

	for _, name := range earned {
		h.hub.SendToUser(ac.UserID, websocket.NewMessage("badge", "earned", map[string]any{"name": name}))
		h.notifier.NotifyUser(ac.UserID, push.Payload{
			Title: "New badge earned",
			Body:  fmt.Sprintf("You earned the %s badge!", name),
			URL:   "/badges",
			Tag:   "badge",
		})
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"scan":           event,
		"classification": c,
		"state":          state,
		"badges_earned":  earned,
	})
}

// resolveLabel extracts a raw label from the request, running image uploads
// through the classification source.
func (h *ScanHandler) resolveLabel(r *http.Request) (string, error) {
	ct := r.Header.Get("Content-Type")

	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImageSize); err != nil {
			return "", fmt.Errorf("invalid multipart form")
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			return "", fmt.Errorf("image file is required")
		}
		defer file.Close()

		image, err := io.ReadAll(io.LimitReader(file, maxImageSize))
		if err != nil {
			return "", fmt.Errorf("read image")
		}

		label, err := h.source.Classify(r.Context(), image)
		if err != nil {
			return "", fmt.Errorf("classification cancelled")
		}
		return label, nil
	}

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", fmt.Errorf("invalid JSON")
	}
	return strings.TrimSpace(req.Label), nil
}

// List handles GET /api/scans
func (h *ScanHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		limit, _ = strconv.Atoi(s)
	}

	events, err := h.scanStore.ListByUser(ac.UserID, limit)
	if err != nil {
		h.logger.Error("list scans", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list scans")
		return
	}
	if events == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// Summary handles GET /api/stats/summary
func (h *ScanHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	breakdown, err := h.scanStore.CategoryBreakdown(ac.UserID)
	if err != nil {
		h.logger.Error("category breakdown", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	if breakdown == nil {
		breakdown = []model.CategoryCount{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"state":      h.ledger.LoadState(ac.Email),
		"categories": breakdown,
	})
}
