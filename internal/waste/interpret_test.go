package waste

import (
	"reflect"
	"testing"

	"github.com/ecoscan/ecoscan/internal/model"
)

func TestInterpretPlastic(t *testing.T) {
	for _, label := range []string{"plastic", "Plastic Bottle", "PET container", "shopping bag", "candy wrapper", "cling film"} {
		c := Interpret(label)
		if !c.Recognized {
			t.Errorf("Interpret(%q) not recognized", label)
		}
		if c.Category != model.CategoryRecyclable {
			t.Errorf("Interpret(%q).Category = %q, want Recyclable", label, c.Category)
		}
		if c.DisplayType != "Plastic" {
			t.Errorf("Interpret(%q).DisplayType = %q, want Plastic", label, c.DisplayType)
		}
		if c.Points != 10 {
			t.Errorf("Interpret(%q).Points = %d, want 10", label, c.Points)
		}
		if c.Guidance == "" {
			t.Errorf("Interpret(%q) has empty guidance", label)
		}
	}
}

func TestInterpretTable(t *testing.T) {
	tests := []struct {
		label       string
		displayType string
		category    model.Category
		points      int
	}{
		{"cardboard box", "Paper & Cardboard", model.CategoryRecyclable, 10},
		{"newspaper", "Paper & Cardboard", model.CategoryRecyclable, 10},
		{"glass jar", "Glass", model.CategoryRecyclable, 10},
		{"aluminum foil", "Metal", model.CategoryRecyclable, 10},
		{"food waste", "Organic / Food Waste", model.CategoryCompostable, 6},
		{"leftover vegetables", "Organic / Food Waste", model.CategoryCompostable, 6},
		{"ewaste battery", "E-waste", model.CategorySpecialDisposal, 15},
		{"old laptop charger", "E-waste", model.CategorySpecialDisposal, 15},
		{"worn clothing", "Textiles", model.CategoryRecyclable, 10},
		{"paint solvent", "Hazardous Waste", model.CategorySpecialDisposal, 20},
		{"general trash", "Mixed Waste / General Trash", model.CategoryLandfill, 2},
	}

	for _, tt := range tests {
		c := Interpret(tt.label)
		if !c.Recognized {
			t.Errorf("Interpret(%q) not recognized", tt.label)
			continue
		}
		if c.DisplayType != tt.displayType {
			t.Errorf("Interpret(%q).DisplayType = %q, want %q", tt.label, c.DisplayType, tt.displayType)
		}
		if c.Category != tt.category {
			t.Errorf("Interpret(%q).Category = %q, want %q", tt.label, c.Category, tt.category)
		}
		if c.Points != tt.points {
			t.Errorf("Interpret(%q).Points = %d, want %d", tt.label, c.Points, tt.points)
		}
	}
}

func TestInterpretUnrecognized(t *testing.T) {
	for _, label := range []string{"", "   ", "quantum flux capacitor"} {
		c := Interpret(label)
		if c.Recognized {
			t.Errorf("Interpret(%q) recognized, want unrecognized", label)
		}
		if c.Points != 0 {
			t.Errorf("Interpret(%q).Points = %d, want 0", label, c.Points)
		}
		if c.Category != model.CategoryUncategorized {
			t.Errorf("Interpret(%q).Category = %q, want Uncategorized", label, c.Category)
		}
		if c.Guidance != "" {
			t.Errorf("Interpret(%q).Guidance = %q, want empty", label, c.Guidance)
		}
	}
}

// "bottle" appears in both the plastic and glass keyword sets; rule order
// decides, so a bare "bottle" resolves to Plastic even when the item is glass.
func TestInterpretKeywordPriority(t *testing.T) {
	c := Interpret("bottle")
	if c.DisplayType != "Plastic" {
		t.Errorf("Interpret(\"bottle\").DisplayType = %q, want Plastic", c.DisplayType)
	}

	// An explicit glass mention still loses to the earlier plastic rule
	// when a plastic keyword is also present.
	c = Interpret("plastic and glass mix")
	if c.DisplayType != "Plastic" {
		t.Errorf("priority: DisplayType = %q, want Plastic", c.DisplayType)
	}

	// "glass" alone reaches the glass rule.
	c = Interpret("glass")
	if c.DisplayType != "Glass" {
		t.Errorf("Interpret(\"glass\").DisplayType = %q, want Glass", c.DisplayType)
	}
}

func TestInterpretIdempotent(t *testing.T) {
	for _, label := range []string{"plastic bottle", "ewaste battery", "", "mystery object"} {
		first := Interpret(label)
		second := Interpret(label)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Interpret(%q) not deterministic: %+v vs %+v", label, first, second)
		}
	}
}
