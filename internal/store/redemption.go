package store

import (
	"database/sql"
	"fmt"

	"github.com/ecoscan/ecoscan/internal/model"
)

// RedemptionStore persists redemption history per identity.
type RedemptionStore struct {
	db *sql.DB
}

func NewRedemptionStore(db *sql.DB) *RedemptionStore {
	return &RedemptionStore{db: db}
}

func (s *RedemptionStore) Append(identity string, r *model.RedemptionRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO redemptions (id, identity, reward_id, title, points_cost, image_ref, redeemed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, identity, r.RewardID, r.Title, r.PointsCost, r.ImageRef, r.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert redemption: %w", err)
	}
	return nil
}

// List returns the identity's redemptions, most-recent-first.
func (s *RedemptionStore) List(identity string) ([]model.RedemptionRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, reward_id, title, points_cost, image_ref, redeemed_at
		 FROM redemptions WHERE identity = ? ORDER BY redeemed_at DESC`,
		identity,
	)
	if err != nil {
		return nil, fmt.Errorf("list redemptions: %w", err)
	}
	defer rows.Close()

	var records []model.RedemptionRecord
	for rows.Next() {
		var r model.RedemptionRecord
		if err := rows.Scan(&r.ID, &r.RewardID, &r.Title, &r.PointsCost, &r.ImageRef, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan redemption: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
