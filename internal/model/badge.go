package model

// BadgeDefinition maps a badge name to the scan-count threshold that unlocks it.
type BadgeDefinition struct {
	Name      string `json:"name"`
	Threshold int    `json:"threshold"`
	Icon      string `json:"icon"`
}
