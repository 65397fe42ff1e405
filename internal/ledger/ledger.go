// Package ledger maintains per-identity point balances, scan counts, and badge
// sets. State is read-modify-write against a pluggable store; the design
// assumes a single active session per identity.
package ledger

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ecoscan/ecoscan/internal/model"
)

// ErrInsufficientPoints is returned when a redemption exceeds the balance.
var ErrInsufficientPoints = errors.New("insufficient points")

// Store persists reward state keyed by identity. Get returns nil when no state
// exists for the identity.
type Store interface {
	Get(identity string) (*model.UserRewardState, error)
	Put(state *model.UserRewardState) error
}

type Service struct {
	store  Store
	badges []model.BadgeDefinition
	logger *slog.Logger
}

func NewService(store Store, badges []model.BadgeDefinition, logger *slog.Logger) *Service {
	return &Service{store: store, badges: badges, logger: logger}
}

// LoadState returns the persisted state for an identity, or a zero-valued
// state when none exists. A failing or corrupt store degrades to the zero
// state instead of surfacing an error.
func (s *Service) LoadState(identity string) *model.UserRewardState {
	state, err := s.store.Get(identity)
	if err != nil {
		s.logger.Warn("load reward state, using zero state", "identity", identity, "error", err)
		return zeroState(identity)
	}
	if state == nil {
		return zeroState(identity)
	}
	return state
}

// RecordScan applies a classification to the identity's state. Unrecognized
// classifications leave points, scans, and badges untouched. Newly crossed
// badge thresholds are awarded against the full current badge set, so no badge
// is ever added twice. State is persisted before returning.
func (s *Service) RecordScan(identity string, c model.Classification) (*model.UserRewardState, []string, error) {
	state := s.LoadState(identity)
	if !c.Recognized {
		return state, nil, nil
	}

	state.Points += c.Points
	state.Scans++

	var earned []string
	for _, def := range s.badges {
		if state.Scans >= def.Threshold && !hasBadge(state.Badges, def.Name) {
			state.Badges = append(state.Badges, def.Name)
			earned = append(earned, def.Name)
		}
	}

	if err := s.store.Put(state); err != nil {
		return nil, nil, fmt.Errorf("persist reward state: %w", err)
	}
	return state, earned, nil
}

// RecordRedemption debits cost from the identity's balance. The state is
// unchanged when the balance is too low.
func (s *Service) RecordRedemption(identity string, cost int) (*model.UserRewardState, error) {
	state := s.LoadState(identity)
	if state.Points < cost {
		return nil, ErrInsufficientPoints
	}

	state.Points -= cost
	if err := s.store.Put(state); err != nil {
		return nil, fmt.Errorf("persist reward state: %w", err)
	}
	return state, nil
}

func zeroState(identity string) *model.UserRewardState {
	return &model.UserRewardState{Identity: identity, Badges: []string{}}
}

func hasBadge(badges []string, name string) bool {
	for _, b := range badges {
		if b == name {
			return true
		}
	}
	return false
}
