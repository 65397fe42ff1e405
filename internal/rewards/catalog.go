package rewards

import "github.com/ecoscan/ecoscan/internal/model"

// Catalog is the fixed reward list. Not user-editable.
var Catalog = []model.RewardCatalogItem{
	{ID: "bread", Title: "Homemade Bread", PointsCost: 400, ImageRef: "/img/rewards/bread.jpg"},
	{ID: "cookies", Title: "Chocolate Chip Cookies", PointsCost: 450, ImageRef: "/img/rewards/cookies.jpg"},
	{ID: "pie", Title: "Apple Pie", PointsCost: 500, ImageRef: "/img/rewards/pie.jpg"},
	{ID: "jam", Title: "Berry Jam", PointsCost: 600, ImageRef: "/img/rewards/jam.jpg"},
	{ID: "pasta", Title: "Fresh Pasta", PointsCost: 650, ImageRef: "/img/rewards/pasta.jpg"},
	{ID: "salad", Title: "Garden Salad", PointsCost: 700, ImageRef: "/img/rewards/salad.jpg"},
	{ID: "soup", Title: "Tomato Soup", PointsCost: 750, ImageRef: "/img/rewards/soup.jpg"},
	{ID: "pancakes", Title: "Pancakes", PointsCost: 800, ImageRef: "/img/rewards/pancakes.jpg"},
	{ID: "pickles", Title: "Cucumber Pickles", PointsCost: 1000, ImageRef: "/img/rewards/pickles.jpg"},
}

// Lookup returns the catalog item for id, or nil if there is none.
func Lookup(id string) *model.RewardCatalogItem {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}
