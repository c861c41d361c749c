// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// StorefrontTab is a product grouping on the public home page.
type StorefrontTab string

const (
	TabSupplements StorefrontTab = "supplements"
	TabActive      StorefrontTab = "active"
	TabHealthy     StorefrontTab = "healthy"
)

// ItemType is the card type used for fallback imagery and the cart.
type ItemType string

const (
	ItemProduct ItemType = "product"
	ItemApparel ItemType = "apparel"
	ItemFood    ItemType = "food"
)

// TabInfo describes a storefront tab for display.
type TabInfo struct {
	Key   StorefrontTab
	Label string
}

// HomeTabs lists the storefront tabs in display order.
var HomeTabs = []TabInfo{
	{Key: TabSupplements, Label: "Proteins & Supplements"},
	{Key: TabActive, Label: "Active Wear"},
	{Key: TabHealthy, Label: "Healthy Eats"},
}

// Grouping is the storefront placement of one product category.
type Grouping struct {
	Tab  StorefrontTab
	Type ItemType
}

// StorefrontTabs is the single mapping from product category to storefront
// tab and card type. Every page that groups products reads from here.
var StorefrontTabs = map[ProductCategory]Grouping{
	CategoryProtein:     {Tab: TabSupplements, Type: ItemProduct},
	CategoryVitamins:    {Tab: TabSupplements, Type: ItemProduct},
	CategoryApparel:     {Tab: TabActive, Type: ItemApparel},
	CategoryHealthyEats: {Tab: TabHealthy, Type: ItemFood},
	CategoryAccessories: {Tab: TabActive, Type: ItemApparel},
}

// defaultGrouping places categories unknown to this build.
var defaultGrouping = Grouping{Tab: TabSupplements, Type: ItemProduct}

// GroupingFor returns the storefront placement for c.
func GroupingFor(c ProductCategory) Grouping {
	if g, ok := StorefrontTabs[c]; ok {
		return g
	}
	return defaultGrouping
}

// ParseTab returns the tab named s, or TabSupplements when s is unknown.
func ParseTab(s string) StorefrontTab {
	for _, t := range HomeTabs {
		if string(t.Key) == s {
			return t.Key
		}
	}
	return TabSupplements
}

// FallbackImages is the stock image per card type for products without one.
var FallbackImages = map[ItemType]string{
	ItemProduct: "https://images.unsplash.com/photo-1579722821273-0f6c5f31b2a3?q=80&w=1200&auto=format&fit=crop",
	ItemApparel: "https://images.unsplash.com/photo-1520975922321-16b5f2f65c7d?q=80&w=1200&auto=format&fit=crop",
	ItemFood:    "https://images.unsplash.com/photo-1540189549336-e6e99c3679fe?q=80&w=1200&auto=format&fit=crop",
}
