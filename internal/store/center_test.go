package store

import "testing"

func TestCenterList(t *testing.T) {
	db := setupTestDB(t)
	s := NewCenterStore(db)

	centers, err := s.List()
	if err != nil {
		t.Fatalf("list centers: %v", err)
	}
	if len(centers) != 4 {
		t.Fatalf("got %d centers, want 4 seeded", len(centers))
	}
	// Seeded in sort_order, so the first entry is stable.
	if centers[0].Name != "Crapbin" {
		t.Errorf("first center = %q", centers[0].Name)
	}
	for _, c := range centers {
		if c.Services == "" || c.Address == "" {
			t.Errorf("center %q has empty fields", c.Name)
		}
	}
}
