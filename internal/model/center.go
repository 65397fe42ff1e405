package model

import "time"

// RecyclingCenter is a drop-off location shown on the map view.
type RecyclingCenter struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Services  string    `json:"services"`
	Address   string    `json:"address"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}
