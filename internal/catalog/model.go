package catalog

import (
	"time"

	"github.com/nirajd/backend-pasal/internal/pricing"
)

// Item kinds sold on the marketplace.
const (
	KindPackage = "package"
	KindPlugin  = "plugin"
)

// Item is a sellable catalog entry: a site package or a WordPress plugin.
// BasePrice and option prices are free-form display strings; the pricing
// engine extracts their numeric effect.
type Item struct {
	ID          string             `json:"id"`
	Slug        string             `json:"slug"`
	Kind        string             `json:"kind"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	BasePrice   string             `json:"basePrice,omitempty"`
	Categories  []pricing.Category `json:"pricingCategories"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// PricedItem returns the pricing engine's view of the item.
func (i Item) PricedItem() pricing.Item {
	return pricing.Item{BasePrice: i.BasePrice, Categories: i.Categories}
}

// ListParams captures filters for catalog listing.
type ListParams struct {
	Query string
	Kind  string
	Page  int
	Limit int
}
