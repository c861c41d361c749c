package pages

import (
	"context"
	"testing"

	"wellnesshub/internal/listing"
	"wellnesshub/internal/models"
)

func TestCategoryBoardCreateDerivesSlug(t *testing.T) {
	svc := &fakeCategories{}
	b := NewCategoryBoard(svc)
	ctx := context.Background()

	if _, err := b.Create(ctx, models.CategoryInput{Name: " Protein Powder!! "}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := svc.created[0]; got.Slug != "protein-powder" || got.Name != "Protein Powder!!" {
		t.Errorf("created: got %+v", got)
	}
	if got := b.Snapshot().Count; got != 1 {
		t.Errorf("count after create: got %d, want 1", got)
	}
	if svc.lists != 1 {
		t.Errorf("lists: got %d, want 1 refetch", svc.lists)
	}
}

func TestCategoryBoardKeepsExplicitSlug(t *testing.T) {
	in := NormalizeCategory(models.CategoryInput{Name: "Vitamins", Slug: "Daily Vitamins"})
	if in.Slug != "daily-vitamins" {
		t.Errorf("slug: got %q, want %q", in.Slug, "daily-vitamins")
	}
}

func TestCategoryBoardValidation(t *testing.T) {
	svc := &fakeCategories{}
	b := NewCategoryBoard(svc)

	tests := []struct {
		name  string
		in    models.CategoryInput
		field string
	}{
		{"name required", models.CategoryInput{Slug: "x"}, "name"},
		{"slug cannot be derived", models.CategoryInput{Name: "!!!"}, "slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Create(context.Background(), tt.in)
			v, ok := AsValidation(err)
			if !ok || v.Field != tt.field {
				t.Errorf("got %v, want ValidationError on %q", err, tt.field)
			}
		})
	}
	if len(svc.created) != 0 {
		t.Errorf("created: got %d, want 0", len(svc.created))
	}
}

func TestCategoryBoardDeleteAndFilter(t *testing.T) {
	svc := &fakeCategories{list: []models.Category{
		{ID: "1", Name: "Vitamins", Slug: "vitamins"},
		{ID: "2", Name: "apparel", Slug: "apparel"},
		{ID: "3", Name: "Protein", Slug: "protein"},
	}}
	b := NewCategoryBoard(svc)
	ctx := context.Background()
	if err := b.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	page := b.Filtered("")
	if len(page.Items) != 3 || page.Items[0].ID != "2" || page.Items[2].ID != "1" {
		t.Errorf("sorted: got %+v", page.Items)
	}
	if got := b.Filtered("prot").Items; len(got) != 1 || got[0].ID != "3" {
		t.Errorf("filtered: got %+v", got)
	}

	if err := b.Delete(ctx, "1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := b.Snapshot().Count; got != 2 {
		t.Errorf("count after delete: got %d, want 2", got)
	}
}

func TestArticleBoard(t *testing.T) {
	svc := &fakeArticles{list: []models.Article{
		{ID: "1", Title: "Protein timing", Category: models.ArticleNutrition, CreatedAt: "2026-01-03T10:00:00Z"},
		{ID: "2", Title: "Mobility drills", Category: models.ArticleWorkouts, CreatedAt: "2026-01-02T10:00:00Z"},
		{ID: "3", Title: "Sleep and protein", Category: models.ArticleLifestyle, CreatedAt: "2026-01-04T10:00:00Z"},
	}}
	b := NewArticleBoard(svc)
	ctx := context.Background()
	if err := b.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	t.Run("search on title, newest first", func(t *testing.T) {
		items := b.View(listing.State{Query: "protein", Sort: DefaultArticleState.Sort}).Page.Items
		if len(items) != 2 || items[0].ID != "3" || items[1].ID != "1" {
			t.Errorf("got %+v", items)
		}
	})

	t.Run("filter by category", func(t *testing.T) {
		items := b.View(listing.State{Category: "Workouts", Sort: DefaultArticleState.Sort}).Page.Items
		if len(items) != 1 || items[0].ID != "2" {
			t.Errorf("got %+v", items)
		}
	})

	t.Run("create requires title", func(t *testing.T) {
		_, err := b.Create(ctx, models.ArticleInput{Category: models.ArticleNutrition})
		if v, ok := AsValidation(err); !ok || v.Field != "title" {
			t.Errorf("got %v, want title validation", err)
		}
	})

	t.Run("create fills defaults and refetches", func(t *testing.T) {
		before := svc.lists
		a, err := b.Create(ctx, models.ArticleInput{Title: "Breathing"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if a.Category != models.ArticleNutrition || a.ReadTime != "5 min read" {
			t.Errorf("defaults: got category %q read time %q", a.Category, a.ReadTime)
		}
		if a.Tags == nil {
			t.Error("tags should be an empty list, not nil")
		}
		if svc.lists != before+1 {
			t.Errorf("lists: got %d, want %d", svc.lists, before+1)
		}
	})

	t.Run("create estimates read time from content", func(t *testing.T) {
		in := NormalizeArticle(models.ArticleInput{Title: "Short", Content: "just a few words"})
		if in.ReadTime != "1 min read" {
			t.Errorf("read time: got %q", in.ReadTime)
		}
	})

	t.Run("update sends every field", func(t *testing.T) {
		in := models.ArticleInput{Title: "Mobility", Category: models.ArticleWorkouts, Tags: []string{"hips"}}
		if err := b.Update(ctx, "2", in); err != nil {
			t.Fatalf("Update: %v", err)
		}
		p := svc.patches["2"]
		if p.Title == nil || *p.Title != "Mobility" || p.Category == nil || *p.Category != models.ArticleWorkouts {
			t.Errorf("patch: got %+v", p)
		}
		if len(p.Tags) != 1 || p.Tags[0] != "hips" {
			t.Errorf("tags: got %v", p.Tags)
		}
	})

	t.Run("delete refetches", func(t *testing.T) {
		if err := b.Delete(ctx, "1"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		for _, a := range b.View(DefaultArticleState).Page.Items {
			if a.ID == "1" {
				t.Error("deleted article still listed")
			}
		}
	})
}

func TestAdminUsers(t *testing.T) {
	svc := &fakeAdmins{list: []models.AdminUser{
		{ID: "1", Username: "zoe", Email: "zoe@example.com", Role: models.RoleEditor},
		{ID: "2", Username: "adam", Email: "adam@example.com", Role: models.RoleSuperAdmin},
	}}
	a := NewAdminUsers(svc)
	ctx := context.Background()
	if err := a.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	t.Run("sorted by username", func(t *testing.T) {
		items := a.View(DefaultAdminState).Page.Items
		if len(items) != 2 || items[0].Username != "adam" {
			t.Errorf("got %+v", items)
		}
	})

	t.Run("sort by role descending", func(t *testing.T) {
		items := a.View(listing.State{Sort: listing.Sort{Column: SortRole, Dir: listing.Desc}}).Page.Items
		if items[0].Role != models.RoleSuperAdmin {
			t.Errorf("got %+v", items)
		}
	})

	t.Run("search on email", func(t *testing.T) {
		items := a.View(listing.State{Query: "zoe@", Sort: DefaultAdminState.Sort}).Page.Items
		if len(items) != 1 || items[0].ID != "1" {
			t.Errorf("got %+v", items)
		}
	})

	t.Run("create requires password", func(t *testing.T) {
		in := NewAdminInput()
		in.Username, in.Email = "eve", "eve@example.com"
		err := a.Create(ctx, in)
		if v, ok := AsValidation(err); !ok || v.Field != "password" {
			t.Errorf("got %v, want password validation", err)
		}
		if len(svc.created) != 0 {
			t.Error("invalid account should not be sent")
		}
	})

	t.Run("create with defaults", func(t *testing.T) {
		in := NewAdminInput()
		in.Username, in.Email, in.Password = "eve", "eve@example.com", "long-enough"
		if err := a.Create(ctx, in); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if svc.created[0].Role != models.RoleEditor {
			t.Errorf("role: got %q, want Editor", svc.created[0].Role)
		}
		if got := a.View(DefaultAdminState).Page.Total; got != 3 {
			t.Errorf("total after create: got %d, want 3", got)
		}
	})

	t.Run("update keeps password optional", func(t *testing.T) {
		in := models.AdminUpdateInput{Username: "zoe", Email: "zoe@example.com", Role: models.RoleAdmin}
		if err := a.Update(ctx, "1", in); err != nil {
			t.Fatalf("Update: %v", err)
		}
		in.Password = "short"
		if err := a.Update(ctx, "1", in); err == nil {
			t.Error("short password should be rejected")
		}
		if len(svc.updated) != 1 {
			t.Errorf("updates: got %d, want 1", len(svc.updated))
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		err := ValidateAdminUpdate(models.AdminUpdateInput{Username: "x", Email: "not-an-email", Role: models.RoleAdmin})
		if v, ok := AsValidation(err); !ok || v.Field != "email" {
			t.Errorf("got %v, want email validation", err)
		}
	})
}
