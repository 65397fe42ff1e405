package model

// UserRewardState is the per-identity accumulator the ledger maintains.
// Points never goes negative; Scans and Badges only grow.
type UserRewardState struct {
	Identity string   `json:"identity"`
	Points   int      `json:"points"`
	Scans    int      `json:"scans"`
	Badges   []string `json:"badges"`
}

// RewardCatalogItem is a fixed catalog entry points can be redeemed against.
type RewardCatalogItem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	PointsCost int    `json:"points_cost"`
	ImageRef   string `json:"image_ref"`
}

// RedemptionRecord is the permanent trace of a successful redemption.
type RedemptionRecord struct {
	ID         string `json:"id"`
	RewardID   string `json:"reward_id"`
	Title      string `json:"title"`
	PointsCost int    `json:"points_cost"`
	ImageRef   string `json:"image_ref"`
	Timestamp  int64  `json:"timestamp"`
}
