package model

import "time"

// ScanEvent records one classification run for a user, recognized or not.
type ScanEvent struct {
	ID          int64     `json:"-"`
	PublicID    string    `json:"id"`
	UserID      int64     `json:"-"`
	RawLabel    string    `json:"raw_label"`
	DisplayType string    `json:"display_type"`
	Category    Category  `json:"category"`
	Points      int       `json:"points"`
	Recognized  bool      `json:"recognized"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryCount is one slice of the per-category scan breakdown.
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
	Points   int      `json:"points"`
}
