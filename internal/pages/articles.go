// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/creasty/defaults"

	"wellnesshub/internal/listing"
	"wellnesshub/internal/loader"
	"wellnesshub/internal/markdown"
	"wellnesshub/internal/models"
)

// ArticlePageSize is the number of rows per back office article page.
const ArticlePageSize = 10

// Article list sort columns.
const (
	SortTitle = "title"
)

// DefaultArticleState shows every category, newest first.
var DefaultArticleState = listing.State{
	Category: AllCategories,
	Sort:     listing.Sort{Column: SortCreated, Dir: listing.Desc},
	Page:     1,
}

var articleLess = map[string]func(a, b models.Article) bool{
	SortTitle: func(a, b models.Article) bool {
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	},
	SortCreated: func(a, b models.Article) bool {
		return a.Published().Before(b.Published())
	},
}

// matchArticle filters on the title and an optional category label.
func matchArticle(st listing.State) func(models.Article) bool {
	return func(a models.Article) bool {
		if st.Category != "" && st.Category != AllCategories && string(a.Category) != st.Category {
			return false
		}
		return listing.Contains(st.Query, a.Title)
	}
}

// ArticleBoard is the back office article list and editor.
type ArticleBoard struct {
	svc   ArticleService
	query *loader.Query[[]models.Article]
}

// ArticleListView is what the article table renders.
type ArticleListView struct {
	State   listing.State
	Page    listing.Page[models.Article]
	Loading bool
	Err     error
}

func NewArticleBoard(svc ArticleService) *ArticleBoard {
	return &ArticleBoard{
		svc:   svc,
		query: loader.NewList(svc.List, loader.Identity[models.Article]),
	}
}

func (b *ArticleBoard) Load(ctx context.Context) error {
	return b.query.Load(ctx).Err
}

// View applies the title search, category filter, sort and pagination.
func (b *ArticleBoard) View(st listing.State) ArticleListView {
	snap := b.query.Snapshot()
	less, ok := articleLess[st.Sort.Column]
	if !ok {
		st.Sort = DefaultArticleState.Sort
		less = articleLess[st.Sort.Column]
	}
	page := listing.Apply(snap.Data, matchArticle(st), less, st.Sort.Dir, st.Page, ArticlePageSize)
	st.Page = page.Page
	return ArticleListView{State: st, Page: page, Loading: snap.IsLoading, Err: snap.Err}
}

// NewArticleInput returns an empty article form with its defaults applied.
func NewArticleInput() models.ArticleInput {
	var in models.ArticleInput
	_ = defaults.Set(&in)
	in.Tags = []string{}
	return in
}

// NormalizeArticle trims the payload, fills in the defaults for blank
// fields and estimates the read time when none was given.
func NormalizeArticle(in models.ArticleInput) models.ArticleInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.ReadTime = strings.TrimSpace(in.ReadTime)
	if in.ReadTime == "" && strings.TrimSpace(in.Content) != "" {
		in.ReadTime = markdown.EstimateReadTime(in.Content)
	}
	_ = defaults.Set(&in)
	if in.Tags == nil {
		in.Tags = []string{}
	}
	return in
}

// ValidateArticle checks an article payload.
func ValidateArticle(in models.ArticleInput) error {
	if err := required("title", "Title", in.Title); err != nil {
		return err
	}
	if !in.Category.Valid() {
		return invalid("category", "Choose a category.")
	}
	if in.ImageURL != "" && !absoluteURL(in.ImageURL) {
		return invalid("image_url", "Image URL must be an absolute http(s) address.")
	}
	return nil
}

// Get fetches one article for the edit form.
func (b *ArticleBoard) Get(ctx context.Context, id string) (models.Article, error) {
	a, err := b.svc.Get(ctx, id)
	if err != nil {
		return models.Article{}, fmt.Errorf("load article %s: %w", id, err)
	}
	return a, nil
}

// Create validates and creates an article, then refetches the list.
func (b *ArticleBoard) Create(ctx context.Context, in models.ArticleInput) (models.Article, error) {
	in = NormalizeArticle(in)
	if err := ValidateArticle(in); err != nil {
		return models.Article{}, err
	}
	a, err := b.svc.Create(ctx, in)
	if err != nil {
		return models.Article{}, fmt.Errorf("create article: %w", err)
	}
	b.query.Invalidate(ctx)
	return a, nil
}

// Update validates and saves every field of in, then refetches.
func (b *ArticleBoard) Update(ctx context.Context, id string, in models.ArticleInput) error {
	in = NormalizeArticle(in)
	if err := ValidateArticle(in); err != nil {
		return err
	}
	if err := b.svc.Update(ctx, id, in.Patch()); err != nil {
		return fmt.Errorf("update article %s: %w", id, err)
	}
	b.query.Invalidate(ctx)
	return nil
}

// Delete removes an article and refetches.
func (b *ArticleBoard) Delete(ctx context.Context, id string) error {
	if err := b.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article %s: %w", id, err)
	}
	b.query.Invalidate(ctx)
	return nil
}
