package pages

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"wellnesshub/internal/api"
	"wellnesshub/internal/models"
	"wellnesshub/internal/persist"
)

func cardIDs(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func sameIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func demoHome() *Home {
	return NewHome(api.NewMockProducts(persist.NewMemory(), 0), &fakeStorefront{})
}

func TestHomeGroupsByTab(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		opts HomeOptions
		want []string
	}{
		{"default tab is supplements", HomeOptions{}, []string{"1", "2", "4", "6"}},
		{"active wear", HomeOptions{Tab: models.TabActive}, []string{"3"}},
		{"healthy eats", HomeOptions{Tab: models.TabHealthy}, []string{"5"}},
		{"only new", HomeOptions{Tab: models.TabSupplements, OnlyNew: true}, []string{"1"}},
		{"a-z", HomeOptions{Sort: SortAZ}, []string{"4", "6", "2", "1"}},
		{"z-a", HomeOptions{Sort: SortZA}, []string{"1", "2", "6", "4"}},
		{"newest", HomeOptions{Sort: SortNewest}, []string{"1", "2", "4", "6"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := demoHome().Load(ctx, tt.opts)
			if got := cardIDs(v.Cards); !sameIDs(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHomeUsesDefaultConfigAndCombos(t *testing.T) {
	v := demoHome().Load(context.Background(), HomeOptions{})

	if v.Config.Hero.Title != models.DefaultStorefront().Hero.Title {
		t.Errorf("hero: got %q", v.Config.Hero.Title)
	}
	if got := cardIDs(v.Combos); !sameIDs(got, []string{"1", "2", "4"}) {
		t.Errorf("combos: got %v", got)
	}
	for _, c := range v.Combos {
		if c.Type != models.ItemProduct {
			t.Errorf("combo %s has type %q", c.ID, c.Type)
		}
	}
}

func TestHomeLoadMoreWindow(t *testing.T) {
	list := make([]string, 0, 20)
	body := "["
	for i := 0; i < 20; i++ {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"id":"%d","name":"P%02d","category":0}`, i, i)
		list = append(list, fmt.Sprint(i))
	}
	body += "]"
	svc := api.NewProducts(&doer{response: body})
	ctx := context.Background()

	v := NewHome(svc, &fakeStorefront{}).Load(ctx, HomeOptions{})
	if len(v.Cards) != HomeWindow || !v.HasMore || v.NextLimit != 2*HomeWindow {
		t.Errorf("first window: %d cards, more=%v next=%d", len(v.Cards), v.HasMore, v.NextLimit)
	}

	v = NewHome(svc, &fakeStorefront{}).Load(ctx, HomeOptions{Limit: 27})
	if len(v.Cards) != 20 || v.HasMore {
		t.Errorf("last window: %d cards, more=%v", len(v.Cards), v.HasMore)
	}
	if v.Total != len(list) {
		t.Errorf("total: got %d, want %d", v.Total, len(list))
	}

	v = NewHome(svc, &fakeStorefront{}).Load(ctx, HomeOptions{Limit: math.MaxInt})
	if len(v.Cards) != 20 || v.HasMore || v.NextLimit <= 0 {
		t.Errorf("huge limit: %d cards, more=%v next=%d", len(v.Cards), v.HasMore, v.NextLimit)
	}
}

func TestHomeProductFailureKeepsConfig(t *testing.T) {
	svc := api.NewProducts(&doer{err: fmt.Errorf("down")})
	v := NewHome(svc, &fakeStorefront{}).Load(context.Background(), HomeOptions{})
	if v.Err == nil {
		t.Error("expected product error in view")
	}
	if len(v.Cards) != 0 || v.Config.Hero.Title == "" {
		t.Errorf("view: %d cards, hero %q", len(v.Cards), v.Config.Hero.Title)
	}
}

func TestNewCardFallbackImage(t *testing.T) {
	c := NewCard(models.ProductView{ID: "x", Category: models.CategoryHealthyEats})
	if c.Image != models.FallbackImages[models.ItemFood] {
		t.Errorf("image: got %q", c.Image)
	}
	item := c.CartItem()
	if item.Type != models.ItemFood || item.Qty != 1 {
		t.Errorf("cart item: got %+v", item)
	}
}

func TestParseHomeSort(t *testing.T) {
	if ParseHomeSort("z-a") != SortZA || ParseHomeSort("price") != SortFeatured {
		t.Error("ParseHomeSort mismatch")
	}
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	mock := api.NewMockProducts(persist.NewMemory(), 0)

	tests := []struct {
		tab  CatalogTab
		q    string
		want []string
	}{
		{CatalogAll, "", []string{"1", "2", "3", "4", "5", "6"}},
		{CatalogSupplements, "", []string{"1", "2", "4", "6"}},
		{CatalogApparel, "", []string{"3"}},
		{CatalogDiet, "", []string{"5"}},
		{CatalogAll, "immune", []string{"6"}},
		{CatalogApparel, "whey", []string{}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.tab, tt.q), func(t *testing.T) {
			v := NewCatalog(mock).Load(ctx, tt.tab, tt.q)
			if got := cardIDs(v.Cards); !sameIDs(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if ParseCatalogTab("diet") != CatalogDiet || ParseCatalogTab("shoes") != CatalogAll {
		t.Error("ParseCatalogTab mismatch")
	}
}

func TestProductDetail(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	mock := api.NewMockProducts(persist.NewMemory(), 0)

	c, err := ProductDetail(ctx, mock, "3")
	if err != nil {
		t.Fatalf("ProductDetail: %v", err)
	}
	if c.Tab != models.TabActive || c.Type != models.ItemApparel {
		t.Errorf("placement: got %s/%s", c.Tab, c.Type)
	}
	if _, err := ProductDetail(ctx, mock, "nope"); err == nil {
		t.Error("expected error for unknown product")
	}
}
