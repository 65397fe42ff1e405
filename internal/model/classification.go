package model

// Category is the disposal stream an item belongs to.
type Category string

const (
	CategoryRecyclable      Category = "Recyclable"
	CategoryCompostable     Category = "Compostable"
	CategorySpecialDisposal Category = "Special Disposal"
	CategoryLandfill        Category = "Landfill"
	CategoryUncategorized   Category = "Uncategorized"
)

// Classification is the structured result of interpreting a raw label.
// When Recognized is false, Points is 0 and Category is Uncategorized.
type Classification struct {
	RawLabel    string   `json:"raw_label"`
	Recognized  bool     `json:"recognized"`
	Category    Category `json:"category"`
	DisplayType string   `json:"display_type"`
	Icon        string   `json:"icon"`
	Points      int      `json:"points"`
	Guidance    string   `json:"guidance"`
}
