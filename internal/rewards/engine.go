// Package rewards validates and executes redemptions against the fixed reward
// catalog, debiting the ledger and recording a permanent history.
package rewards

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecoscan/ecoscan/internal/ledger"
	"github.com/ecoscan/ecoscan/internal/model"
)

// ErrUnknownReward is returned for a reward id absent from the catalog. With a
// well-formed client this indicates a configuration error.
var ErrUnknownReward = errors.New("unknown reward")

// HistoryStore persists redemption records per identity, most-recent-first.
type HistoryStore interface {
	Append(identity string, record *model.RedemptionRecord) error
	List(identity string) ([]model.RedemptionRecord, error)
}

type Engine struct {
	catalog []model.RewardCatalogItem
	ledger  *ledger.Service
	history HistoryStore
	now     func() time.Time
	logger  *slog.Logger
}

func NewEngine(ledgerSvc *ledger.Service, history HistoryStore, logger *slog.Logger) *Engine {
	return &Engine{
		catalog: Catalog,
		ledger:  ledgerSvc,
		history: history,
		now:     time.Now,
		logger:  logger,
	}
}

// Redeem debits the catalog item's cost from the identity's balance and
// records the redemption. Returns ErrUnknownReward for an id not in the
// catalog and ledger.ErrInsufficientPoints when the balance is too low; in
// both cases no state changes.
func (e *Engine) Redeem(identity, rewardID string) (*model.RedemptionRecord, *model.UserRewardState, error) {
	item := Lookup(rewardID)
	if item == nil {
		return nil, nil, ErrUnknownReward
	}

	state, err := e.ledger.RecordRedemption(identity, item.PointsCost)
	if err != nil {
		return nil, nil, err
	}

	ts := e.now().UnixMilli()
	record := &model.RedemptionRecord{
		ID:         fmt.Sprintf("%s-%d", item.ID, ts),
		RewardID:   item.ID,
		Title:      item.Title,
		PointsCost: item.PointsCost,
		ImageRef:   item.ImageRef,
		Timestamp:  ts,
	}

	if err := e.history.Append(identity, record); err != nil {
		// The debit already happened; the history write is best-effort and
		// must not fail the redemption.
		e.logger.Warn("append redemption history", "identity", identity, "error", err)
	}

	return record, state, nil
}

// History returns the identity's redemption records, most-recent-first.
func (e *Engine) History(identity string) ([]model.RedemptionRecord, error) {
	records, err := e.history.List(identity)
	if err != nil {
		return nil, fmt.Errorf("list redemption history: %w", err)
	}
	return records, nil
}
