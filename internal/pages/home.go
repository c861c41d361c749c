// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pages

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"wellnesshub/internal/api"
	"wellnesshub/internal/listing"
	"wellnesshub/internal/loader"
	"wellnesshub/internal/models"
)

// Home page windowing: the grid shows HomeWindow cards and each "load
// more" adds another HomeWindow.
const HomeWindow = 9

// ComboCount is the number of featured bundle cards.
const ComboCount = 3

// HomeSort is a storefront grid ordering.
type HomeSort string

const (
	SortFeatured HomeSort = "featured"
	SortNewest   HomeSort = "newest"
	SortAZ       HomeSort = "a-z"
	SortZA       HomeSort = "z-a"
)

// HomeSorts lists the orderings in menu order.
var HomeSorts = []HomeSort{SortFeatured, SortNewest, SortAZ, SortZA}

// ParseHomeSort returns the ordering named s, or SortFeatured.
func ParseHomeSort(s string) HomeSort {
	for _, k := range HomeSorts {
		if string(k) == s {
			return k
		}
	}
	return SortFeatured
}

// Card is a product as the storefront shows it: placed on a tab, typed for
// the cart and never without an image.
type Card struct {
	models.ProductView
	Tab   models.StorefrontTab
	Type  models.ItemType
	Image string
}

// NewCard places p through the storefront tab table.
func NewCard(p models.ProductView) Card {
	g := models.GroupingFor(p.Category)
	img := p.ImageURL
	if img == "" {
		img = models.FallbackImages[g.Type]
	}
	return Card{ProductView: p, Tab: g.Tab, Type: g.Type, Image: img}
}

// CartItem is the cart line added by the card's button.
func (c Card) CartItem() models.CartItem {
	return models.CartItem{ID: c.ID, Name: c.Name, Image: c.Image, Type: c.Type, Qty: 1}
}

// HomeOptions is the storefront grid state carried in the query string.
type HomeOptions struct {
	Tab     models.StorefrontTab
	Sort    HomeSort
	OnlyNew bool
	Limit   int
}

// HomeView is everything the home page renders.
type HomeView struct {
	Config    models.StorefrontConfig
	Options   HomeOptions
	Cards     []Card
	Total     int
	HasMore   bool
	NextLimit int
	Combos    []Card
	Err       error
}

// Home is the public landing page.
type Home struct {
	products   *loader.Query[[]models.ProductView]
	storefront *loader.Query[models.StorefrontConfig]
}

func NewHome(products api.ProductService, storefront StorefrontService) *Home {
	return &Home{
		products: loader.NewList(products.List, models.NewProductView),
		storefront: loader.New(func(ctx context.Context) (models.StorefrontConfig, error) {
			return storefront.GetOrDefault(ctx), nil
		}, models.DefaultStorefront()),
	}
}

// Load fetches the configuration and the products concurrently. A product
// failure is reported in the view; the configuration always has a value.
func (h *Home) Load(ctx context.Context, opts HomeOptions) HomeView {
	if err := loader.Group(ctx, h.products, h.storefront); err != nil {
		slog.Warn("home page load incomplete", "error", err)
	}
	if opts.Limit < HomeWindow {
		opts.Limit = HomeWindow
	}
	if opts.Tab == "" {
		opts.Tab = models.TabSupplements
	}
	if opts.Sort == "" {
		opts.Sort = SortFeatured
	}

	snap := h.products.Snapshot()
	all := make([]Card, 0, len(snap.Data))
	for _, p := range snap.Data {
		all = append(all, NewCard(p))
	}

	var cards []Card
	for _, c := range all {
		if c.Tab != opts.Tab || (opts.OnlyNew && !c.IsNew) {
			continue
		}
		cards = append(cards, c)
	}
	sortCards(cards, opts.Sort)
	// Limits past the list are clamped so NextLimit cannot overflow.
	if opts.Limit > len(cards) {
		opts.Limit = max(len(cards), HomeWindow)
	}

	v := HomeView{
		Config:  h.storefront.Snapshot().Data,
		Options: opts,
		Total:   len(cards),
		Err:     snap.Err,
	}
	if v.Config.SectionEnabled(models.SectionCombos) {
		v.Combos = featuredCombos(all)
	}
	v.Cards = cards[:min(opts.Limit, len(cards))]
	v.HasMore = len(cards) > opts.Limit
	v.NextLimit = opts.Limit + HomeWindow
	return v
}

// sortCards orders cards in place. Featured keeps the backend order.
func sortCards(cards []Card, by HomeSort) {
	switch by {
	case SortNewest:
		sort.SliceStable(cards, func(i, j int) bool { return cards[i].CreatedAt.After(cards[j].CreatedAt) })
	case SortAZ:
		sort.SliceStable(cards, func(i, j int) bool { return strings.ToLower(cards[i].Name) < strings.ToLower(cards[j].Name) })
	case SortZA:
		sort.SliceStable(cards, func(i, j int) bool { return strings.ToLower(cards[i].Name) > strings.ToLower(cards[j].Name) })
	}
}

// featuredCombos picks the first ComboCount product-type cards.
func featuredCombos(all []Card) []Card {
	var out []Card
	for _, c := range all {
		if c.Type != models.ItemProduct {
			continue
		}
		out = append(out, c)
		if len(out) == ComboCount {
			break
		}
	}
	return out
}

// CatalogTab is a tab of the public categories page.
type CatalogTab string

const (
	CatalogAll         CatalogTab = "all"
	CatalogSupplements CatalogTab = "supplements"
	CatalogApparel     CatalogTab = "apparel"
	CatalogDiet        CatalogTab = "diet"
)

// CatalogTabs lists the categories page tabs in display order.
var CatalogTabs = []struct {
	Key   CatalogTab
	Label string
}{
	{CatalogAll, "All"},
	{CatalogSupplements, "Supplements"},
	{CatalogApparel, "Apparel"},
	{CatalogDiet, "Diet Food"},
}

// catalogStorefrontTab maps a catalog tab onto the storefront tab table.
var catalogStorefrontTab = map[CatalogTab]models.StorefrontTab{
	CatalogSupplements: models.TabSupplements,
	CatalogApparel:     models.TabActive,
	CatalogDiet:        models.TabHealthy,
}

// ParseCatalogTab returns the tab named s, or CatalogAll.
func ParseCatalogTab(s string) CatalogTab {
	t := CatalogTab(s)
	if _, ok := catalogStorefrontTab[t]; ok {
		return t
	}
	return CatalogAll
}

// CatalogView is what the categories page renders.
type CatalogView struct {
	Tab   CatalogTab
	Query string
	Cards []Card
	Err   error
}

// Catalog is the public categories page.
type Catalog struct {
	products *loader.Query[[]models.ProductView]
}

func NewCatalog(products api.ProductService) *Catalog {
	return &Catalog{products: loader.NewList(products.List, models.NewProductView)}
}

// Load fetches the products and keeps those on tab matching q by name,
// description or category label.
func (c *Catalog) Load(ctx context.Context, tab CatalogTab, q string) CatalogView {
	snap := c.products.Load(ctx)
	want, filtered := catalogStorefrontTab[tab]

	v := CatalogView{Tab: tab, Query: q, Cards: []Card{}, Err: snap.Err}
	for _, p := range snap.Data {
		card := NewCard(p)
		if filtered && card.Tab != want {
			continue
		}
		if !listing.Contains(q, p.Name, p.Description, p.CategoryLabel) {
			continue
		}
		v.Cards = append(v.Cards, card)
	}
	return v
}

// ProductDetail loads a single product for its public page.
func ProductDetail(ctx context.Context, svc api.ProductService, id string) (Card, error) {
	p, err := svc.Get(ctx, id)
	if err != nil {
		return Card{}, err
	}
	return NewCard(models.NewProductView(p)), nil
}
