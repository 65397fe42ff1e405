package ledger

import "github.com/ecoscan/ecoscan/internal/model"

// Badges is the static badge catalog, ordered by threshold. Evaluation checks
// every definition on each scan, so awards stay correct even if scan counts
// ever jump by more than one.
var Badges = []model.BadgeDefinition{
	{Name: "Eco Starter", Threshold: 1, Icon: "🌱"},
	{Name: "Plastic Buster", Threshold: 10, Icon: "♻️"},
	{Name: "Eco Hero", Threshold: 50, Icon: "🌍"},
	{Name: "Waste Warrior", Threshold: 100, Icon: "🏆"},
}
