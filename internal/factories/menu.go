package factories

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/restodata/restogen/internal/models"
)

type catalogEntry struct {
	Name  string
	Price float64
	Cost  float64
}

type catalogCategory struct {
	Name    string
	Entries []catalogEntry
}

// menuCatalog is a fixed, ordered table. Iteration order is part of the
// determinism contract: reordering entries changes variant selection
// under the same seed.
var menuCatalog = []catalogCategory{
	{Name: "Starters", Entries: []catalogEntry{
		{"Garlic Bread", 6.5, 2.1},
		{"Bruschetta", 7.2, 2.6},
		{"Stuffed Mushrooms", 8.0, 3.0},
		{"Loaded Nachos", 9.5, 3.8},
	}},
	{Name: "Mains", Entries: []catalogEntry{
		{"Margherita Pizza", 14.0, 5.2},
		{"BBQ Chicken Pizza", 16.5, 6.1},
		{"Penne Alfredo", 15.0, 4.9},
		{"Veggie Burger", 12.5, 4.1},
		{"Grilled Salmon", 21.0, 9.0},
		{"Ribeye Steak", 28.0, 12.2},
	}},
	{Name: "Desserts", Entries: []catalogEntry{
		{"Tiramisu", 7.0, 2.5},
		{"Cheesecake", 7.5, 2.8},
		{"Chocolate Lava Cake", 8.5, 3.3},
	}},
	{Name: "Beverages", Entries: []catalogEntry{
		{"Fresh Lime Soda", 4.5, 1.0},
		{"Iced Tea", 4.0, 1.2},
		{"Craft Coffee", 5.5, 1.6},
		{"Orange Juice", 4.8, 1.3},
		{"Mocktail", 6.5, 2.0},
	}},
}

var (
	allergenVocabulary = []string{"gluten", "dairy", "nuts", "soy"}
	variantSuffixes    = []string{"Chef Special", "XL", "Seasonal"}
)

type MenuFactory struct {
	rng *rand.Rand
}

func NewMenuFactory(rng *rand.Rand) *MenuFactory {
	return &MenuFactory{rng: rng}
}

// BuildCatalog expands the static catalog into menu item records. When
// count exceeds the catalog, extra "variant" items are synthesized from
// randomly chosen bases with bounded price/cost jitter. The result has
// exactly max(count, catalog size) items.
func (mf *MenuFactory) BuildCatalog(count int) []*models.MenuItem {
	items := make([]*models.MenuItem, 0, count)
	itemID := 1
	for _, category := range menuCatalog {
		for _, entry := range category.Entries {
			items = append(items, mf.makeMenuItem(itemID, entry.Name, category.Name, entry.Price, entry.Cost))
			itemID++
		}
	}

	for len(items) < count {
		base := items[mf.rng.Intn(len(items))]
		suffix := variantSuffixes[mf.rng.Intn(len(variantSuffixes))]
		variantName := fmt.Sprintf("%s (%s)", base.Name, suffix)
		price := math.Max(base.Price+floatBetween(mf.rng, -1.5, 2.5), 1.0)
		cost := math.Max(base.Cost+floatBetween(mf.rng, -1.0, 1.5), 0.5)
		items = append(items, mf.makeMenuItem(len(items)+1, variantName, base.Category, price, cost))
	}
	return items
}

func (mf *MenuFactory) makeMenuItem(itemID int, name, category string, price, cost float64) *models.MenuItem {
	id := fmt.Sprintf("menu_%03d", itemID)
	return &models.MenuItem{
		ID:              id,
		ItemID:          id,
		Name:            name,
		Category:        strings.ToLower(category),
		Price:           round2(price),
		Cost:            round2(cost),
		Description:     fmt.Sprintf("Signature %s prepared daily.", strings.ToLower(name)),
		Availability:    mf.rng.Float64() > 0.05,
		Allergens:       sampleStrings(mf.rng, allergenVocabulary, intBetween(mf.rng, 0, 2)),
		PreparationTime: intBetween(mf.rng, 8, 30),
	}
}
