package waste

import (
	"strings"

	"github.com/ecoscan/ecoscan/internal/model"
)

// Interpret resolves a raw classification label to a structured waste record.
// Matching is case-insensitive substring matching against an ordered rule table;
// the first rule with a matching keyword wins. Falls back to an unrecognized
// result if nothing matches.
func Interpret(label string) model.Classification {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return unrecognized(label)
	}

	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				return model.Classification{
					RawLabel:    label,
					Recognized:  true,
					Category:    rule.category,
					DisplayType: rule.displayType,
					Icon:        rule.icon,
					Points:      rule.points,
					Guidance:    rule.guidance,
				}
			}
		}
	}

	return unrecognized(label)
}

func unrecognized(label string) model.Classification {
	return model.Classification{
		RawLabel:    label,
		Recognized:  false,
		Category:    model.CategoryUncategorized,
		DisplayType: "Unknown Item",
		Icon:        "❓",
		Points:      0,
		Guidance:    "",
	}
}

type rule struct {
	displayType string
	category    model.Category
	points      int
	icon        string
	guidance    string
	keywords    []string
}

// Rule order is the priority order. Keyword overlaps across rules (e.g. "bottle"
// appears for both plastic and glass) are resolved by this order alone: an
// earlier rule wins even when a later one is the better semantic fit.
var rules = []rule{
	{
		displayType: "Plastic",
		category:    model.CategoryRecyclable,
		points:      10,
		icon:        "🧴",
		guidance:    "Rinse if needed. Remove caps/labels where required. Place in plastic recycling. Soft films/bags may require store drop-off.",
		keywords:    []string{"plastic", "pet", "hdpe", "bottle", "bag", "wrapper", "film"},
	},
	{
		displayType: "Paper & Cardboard",
		category:    model.CategoryRecyclable,
		points:      10,
		icon:        "📦",
		guidance:    "Keep clean and dry. Flatten cartons and cardboard. Place in paper/cardboard recycling.",
		keywords:    []string{"paper", "cardboard", "carton", "newspaper", "office"},
	},
	{
		displayType: "Glass",
		category:    model.CategoryRecyclable,
		points:      10,
		icon:        "🫙",
		guidance:    "Rinse and place in glass recycling/bank. Do not mix ceramics or mirrors.",
		keywords:    []string{"glass", "jar", "shard", "bottle"},
	},
	{
		displayType: "Metal",
		category:    model.CategoryRecyclable,
		points:      10,
		icon:        "🥫",
		guidance:    "Rinse cans/foil. Crush to save space. Place in metal recycling.",
		keywords:    []string{"metal", "aluminum", "steel", "can", "foil", "scrap"},
	},
	{
		displayType: "Organic / Food Waste",
		category:    model.CategoryCompostable,
		points:      6,
		icon:        "🥬",
		guidance:    "Place in food/organic bin or compost. Drain liquids; avoid packaging.",
		keywords:    []string{"organic", "food", "vegetable", "fruit", "leftover", "compost"},
	},
	{
		displayType: "E-waste",
		category:    model.CategorySpecialDisposal,
		points:      15,
		icon:        "📱",
		guidance:    "Never bin. Take to certified e-waste collection. Remove batteries and data wipe devices.",
		keywords:    []string{"e-waste", "ewaste", "battery", "batteries", "phone", "charger", "cable", "electronic", "laptop", "device"},
	},
	{
		displayType: "Textiles",
		category:    model.CategoryRecyclable,
		points:      10,
		icon:        "👕",
		guidance:    "Donate if reusable. Otherwise take to textile recycling points; avoid general trash.",
		keywords:    []string{"textile", "clothes", "clothing", "fabric", "garment", "shoe", "footwear"},
	},
	{
		displayType: "Hazardous Waste",
		category:    model.CategorySpecialDisposal,
		points:      20,
		icon:        "☣️",
		guidance:    "Do not bin. Take to municipal hazardous waste facility. Handle carefully.",
		keywords:    []string{"hazardous", "paint", "chemical", "solvent", "acid", "alkali", "sharps", "syringe", "medical", "biohazard"},
	},
	{
		displayType: "Mixed Waste / General Trash",
		category:    model.CategoryLandfill,
		points:      2,
		icon:        "🗑️",
		guidance:    "Non-recyclable or contaminated. Place in general trash, or separate/clean to recycle.",
		keywords:    []string{"mixed", "general", "trash", "garbage", "contaminated", "residual"},
	},
}
