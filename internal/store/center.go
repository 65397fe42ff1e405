package store

import (
	"database/sql"
	"fmt"

	"github.com/ecoscan/ecoscan/internal/model"
)

type CenterStore struct {
	db *sql.DB
}

func NewCenterStore(db *sql.DB) *CenterStore {
	return &CenterStore{db: db}
}

// List returns all recycling centers in display order.
func (s *CenterStore) List() ([]model.RecyclingCenter, error) {
	rows, err := s.db.Query(
		`SELECT id, name, services, address, sort_order, created_at
		 FROM recycling_centers ORDER BY sort_order ASC, name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list centers: %w", err)
	}
	defer rows.Close()

	var centers []model.RecyclingCenter
	for rows.Next() {
		var c model.RecyclingCenter
		if err := rows.Scan(&c.ID, &c.Name, &c.Services, &c.Address, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan center: %w", err)
		}
		centers = append(centers, c)
	}
	return centers, rows.Err()
}
