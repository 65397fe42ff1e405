package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecoscan/ecoscan/internal/model"
)

type ScanEventStore struct {
	db *sql.DB
}

func NewScanEventStore(db *sql.DB) *ScanEventStore {
	return &ScanEventStore{db: db}
}

func scanEvent(scanner interface{ Scan(...any) error }) (*model.ScanEvent, error) {
	var e model.ScanEvent
	var recognized int

	err := scanner.Scan(&e.ID, &e.PublicID, &e.UserID, &e.RawLabel, &e.DisplayType, &e.Category, &e.Points, &recognized, &e.CreatedAt)
	if err != nil {
		return nil, err
	}

	e.Recognized = recognized != 0
	return &e, nil
}

const scanEventCols = `id, public_id, user_id, raw_label, display_type, category, points, recognized, created_at`

// Create records one classification run for a user.
func (s *ScanEventStore) Create(userID int64, c model.Classification) (*model.ScanEvent, error) {
	var recognized int
	if c.Recognized {
		recognized = 1
	}

	publicID := uuid.NewString()
	result, err := s.db.Exec(
		`INSERT INTO scan_events (public_id, user_id, raw_label, display_type, category, points, recognized)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		publicID, userID, c.RawLabel, c.DisplayType, string(c.Category), c.Points, recognized,
	)
	if err != nil {
		return nil, fmt.Errorf("insert scan event: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+scanEventCols+` FROM scan_events WHERE id = ?`, id)
	return scanEvent(row)
}

// ListByUser returns up to limit of the user's scan events, newest first.
func (s *ScanEventStore) ListByUser(userID int64, limit int) ([]model.ScanEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT `+scanEventCols+` FROM scan_events WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list scan events: %w", err)
	}
	defer rows.Close()

	var events []model.ScanEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// CategoryBreakdown aggregates the user's recognized scans per category.
func (s *ScanEventStore) CategoryBreakdown(userID int64) ([]model.CategoryCount, error) {
	rows, err := s.db.Query(
		`SELECT category, COUNT(*), COALESCE(SUM(points), 0)
		 FROM scan_events WHERE user_id = ? AND recognized = 1
		 GROUP BY category ORDER BY COUNT(*) DESC, category ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	defer rows.Close()

	var counts []model.CategoryCount
	for rows.Next() {
		var c model.CategoryCount
		var category string
		if err := rows.Scan(&category, &c.Count, &c.Points); err != nil {
			return nil, fmt.Errorf("scan breakdown row: %w", err)
		}
		c.Category = model.Category(category)
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
