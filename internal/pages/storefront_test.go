package pages

import (
	"context"
	"errors"
	"testing"

	"wellnesshub/internal/models"
)

func sectionIDs(cfg models.StorefrontConfig) []string {
	var out []string
	for _, s := range cfg.SortedSections() {
		out = append(out, s.ID)
	}
	return out
}

func TestStorefrontEditorMoveSection(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		delta int
		want  []string
	}{
		{"move down", "products", 1, []string{"combos", "products", "brands"}},
		{"move up", "brands", -1, []string{"products", "brands", "combos"}},
		{"past the top stays first", "products", -1, []string{"products", "combos", "brands"}},
		{"past the bottom stays last", "combos", 5, []string{"products", "brands", "combos"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewStorefrontEditor(&fakeStorefront{})
			e.Load(context.Background())
			if err := e.MoveSection(tt.id, tt.delta); err != nil {
				t.Fatalf("MoveSection: %v", err)
			}
			got := sectionIDs(e.Config)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
			for i, s := range e.Config.Sections {
				if s.Order != i+1 {
					t.Errorf("section %s order: got %d, want %d", s.ID, s.Order, i+1)
				}
			}
		})
	}
}

func TestStorefrontEditorLoadNormalizesOrder(t *testing.T) {
	svc := &fakeStorefront{cfg: models.StorefrontConfig{
		Hero: models.Hero{Title: "Hi"},
		Sections: []models.Section{
			{ID: "b", Order: 30},
			{ID: "a", Order: 10},
		},
	}}
	e := NewStorefrontEditor(svc)
	e.Load(context.Background())

	if e.Config.Sections[0].ID != "a" || e.Config.Sections[0].Order != 1 || e.Config.Sections[1].Order != 2 {
		t.Errorf("sections: got %+v", e.Config.Sections)
	}
}

func TestStorefrontEditorEditAndSave(t *testing.T) {
	svc := &fakeStorefront{}
	e := NewStorefrontEditor(svc)
	ctx := context.Background()
	e.Load(ctx)

	if err := e.ToggleSection("brands"); err != nil {
		t.Fatalf("ToggleSection: %v", err)
	}
	if e.Config.SectionEnabled(models.SectionBrands) {
		t.Error("brands should be disabled after toggle")
	}
	if err := e.ToggleSection("nope"); !errors.Is(err, ErrUnknownSection) {
		t.Errorf("ToggleSection(nope): got %v", err)
	}

	if err := e.SetHero(models.Hero{Title: ""}); err == nil {
		t.Error("empty hero title should be rejected")
	}
	if err := e.SetHero(models.Hero{Title: " Summer sale ", ImageURL: "https://img.example/h.jpg"}); err != nil {
		t.Fatalf("SetHero: %v", err)
	}
	e.SetFeatures(true, []models.Feature{{Title: "Fast"}, {Title: " "}})

	if err := e.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(svc.saved) != 1 {
		t.Fatalf("saves: got %d, want 1", len(svc.saved))
	}
	saved := svc.saved[0]
	if saved.Hero.Title != "Summer sale" {
		t.Errorf("hero title: got %q", saved.Hero.Title)
	}
	if len(saved.Features.Items) != 1 {
		t.Errorf("features: got %d, want 1", len(saved.Features.Items))
	}
	if saved.SectionEnabled(models.SectionBrands) {
		t.Error("saved config should keep brands disabled")
	}
}

func TestStorefrontEditorOpenFailsOnBackendError(t *testing.T) {
	stored := models.StorefrontConfig{
		Hero:     models.Hero{Title: "Autumn"},
		Sections: []models.Section{{ID: "products", Order: 1, Enabled: true}},
	}
	svc := &fakeStorefront{cfg: stored, err: errors.New("HTTP 500")}
	e := NewStorefrontEditor(svc)

	if err := e.Open(context.Background()); err == nil {
		t.Fatal("Open should fail when the configuration cannot be read")
	}

	svc.err = nil
	if err := e.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if e.Config.Hero.Title != "Autumn" {
		t.Errorf("hero: got %q, want the stored one", e.Config.Hero.Title)
	}
}
