package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ecoscan/ecoscan/internal/model"
)

// UserStateStore is the SQLite implementation of the ledger's store contract.
// Badges are kept as a JSON array in a text column; a row with badge JSON that
// fails to parse is reported as an error so the ledger can degrade to the zero
// state.
type UserStateStore struct {
	db *sql.DB
}

func NewUserStateStore(db *sql.DB) *UserStateStore {
	return &UserStateStore{db: db}
}

func (s *UserStateStore) Get(identity string) (*model.UserRewardState, error) {
	var state model.UserRewardState
	var badgesJSON string

	err := s.db.QueryRow(
		`SELECT identity, points, scans, badges FROM user_reward_states WHERE identity = ?`,
		identity,
	).Scan(&state.Identity, &state.Points, &state.Scans, &badgesJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reward state: %w", err)
	}

	if err := json.Unmarshal([]byte(badgesJSON), &state.Badges); err != nil {
		return nil, fmt.Errorf("decode badges: %w", err)
	}
	if state.Badges == nil {
		state.Badges = []string{}
	}
	return &state, nil
}

func (s *UserStateStore) Put(state *model.UserRewardState) error {
	badges := state.Badges
	if badges == nil {
		badges = []string{}
	}
	badgesJSON, err := json.Marshal(badges)
	if err != nil {
		return fmt.Errorf("encode badges: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO user_reward_states (identity, points, scans, badges, updated_at)
		 VALUES (?, ?, ?, ?, datetime('now'))
		 ON CONFLICT(identity) DO UPDATE SET
		   points = excluded.points, scans = excluded.scans,
		   badges = excluded.badges, updated_at = excluded.updated_at`,
		state.Identity, state.Points, state.Scans, string(badgesJSON),
	)
	if err != nil {
		return fmt.Errorf("put reward state: %w", err)
	}
	return nil
}

// LeaderboardEntry is one ranked row of the points leaderboard.
type LeaderboardEntry struct {
	Rank   int      `json:"rank"`
	Name   string   `json:"name"`
	Points int      `json:"points"`
	Scans  int      `json:"scans"`
	Badges []string `json:"badges"`
}

// Leaderboard returns all users with reward state ordered by points DESC,
// then scans DESC, then name ASC.
func (s *UserStateStore) Leaderboard() ([]LeaderboardEntry, error) {
	rows, err := s.db.Query(
		`SELECT u.name, u.email, r.points, r.scans, r.badges
		 FROM user_reward_states r
		 JOIN users u ON u.email = r.identity
		 ORDER BY r.points DESC, r.scans DESC, u.name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard query: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var email, badgesJSON string
		if err := rows.Scan(&e.Name, &email, &e.Points, &e.Scans, &badgesJSON); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		if e.Name == "" {
			e.Name = email
		}
		if err := json.Unmarshal([]byte(badgesJSON), &e.Badges); err != nil {
			e.Badges = []string{}
		}
		if e.Badges == nil {
			e.Badges = []string{}
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
