package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ecoscan/ecoscan/internal/auth"
	"github.com/ecoscan/ecoscan/internal/email"
	"github.com/ecoscan/ecoscan/internal/ledger"
	"github.com/ecoscan/ecoscan/internal/push"
	"github.com/ecoscan/ecoscan/internal/rewards"
	"github.com/ecoscan/ecoscan/internal/store"
	"github.com/ecoscan/ecoscan/internal/websocket"
)

type RewardHandler struct {
	engine      *rewards.Engine
	stateStore  *store.UserStateStore
	emailClient *email.Client
	hub         *websocket.Hub
	notifier    *push.Notifier
	logger      *slog.Logger
}

func NewRewardHandler(
	engine *rewards.Engine,
	us *store.UserStateStore,
	ec *email.Client,
	hub *websocket.Hub,
	notifier *push.Notifier,
	logger *slog.Logger,
) *RewardHandler {
	return &RewardHandler{
		engine:      engine,
		stateStore:  us,
		emailClient: ec,
		hub:         hub,
		notifier:    notifier,
		logger:      logger,
	}
}

// Catalog handles GET /api/rewards
func (h *RewardHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rewards.Catalog)
}

// Badges handles GET /api/badges
func (h *RewardHandler) Badges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ledger.Badges)
}

type redeemRequest struct {
	RewardID string `json:"reward_id"`
}

// Redeem handles POST /api/rewards/redeem
func (h *RewardHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.RewardID == "" {
		writeError(w, http.StatusBadRequest, "reward_id is required")
		return
	}

	record, state, err := h.engine.Redeem(ac.Email, req.RewardID)
	if errors.Is(err, rewards.ErrUnknownReward) {
		writeError(w, http.StatusNotFound, "unknown reward")
		return
	}
	if errors.Is(err, ledger.ErrInsufficientPoints) {
		writeError(w, http.StatusConflict, "not enough points for this reward")
		return
	}
	if err != nil {
		h.logger.Error("redeem reward", "reward_id", req.RewardID, "error", err)
		writeError(w, http.StatusInternalServerError, "redemption failed")
		return
	}

	h.hub.SendToUser(ac.UserID, websocket.NewMessage("reward", "redeemed", map[string]any{
		"id":    record.ID,
		"title": record.Title,
	}))
	h.notifier.NotifyUser(ac.UserID, push.Payload{
		Title: "Reward redeemed",
		Body:  record.Title,
		URL:   "/rewards",
		Tag:   "redemption",
	})

	if h.emailClient.Configured() {
		if err := h.emailClient.SendRedemptionReceipt(ac.Email, record); err != nil {
			h.logger.Warn("send redemption receipt", "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"redemption": record,
		"state":      state,
	})
}

// History handles GET /api/redemptions
func (h *RewardHandler) History(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	records, err := h.engine.History(ac.Email)
	if err != nil {
		h.logger.Error("redemption history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	if records == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Leaderboard handles GET /api/leaderboard
func (h *RewardHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.stateStore.Leaderboard()
	if err != nil {
		h.logger.Error("leaderboard", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	if entries == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
