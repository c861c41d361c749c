// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pages

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"wellnesshub/internal/listing"
	"wellnesshub/internal/loader"
	"wellnesshub/internal/markdown"
	"wellnesshub/internal/models"
)

// HubPageSize is the number of article cards per wellness hub page.
const HubPageSize = 6

// relatedCount is the number of related articles under an article.
const relatedCount = 3

// HubView is what the wellness hub list renders.
type HubView struct {
	State      listing.State
	Categories []models.ArticleCategory
	Page       listing.Page[models.Article]
	Err        error
}

// ArticleView is a single rendered article.
type ArticleView struct {
	Article models.Article
	HTML    template.HTML
	Related []models.Article
}

// WellnessHub is the public article section.
type WellnessHub struct {
	svc      ArticleService
	renderer *markdown.Renderer
	query    *loader.Query[[]models.Article]
}

func NewWellnessHub(svc ArticleService, renderer *markdown.Renderer) *WellnessHub {
	return &WellnessHub{
		svc:      svc,
		renderer: renderer,
		query:    loader.NewList(svc.List, loader.Identity[models.Article]),
	}
}

// List loads the articles and returns the page for st: filtered by
// category label and title search, newest first.
func (h *WellnessHub) List(ctx context.Context, st listing.State) HubView {
	snap := h.query.Load(ctx)
	page := listing.Apply(snap.Data, matchArticle(st), articleLess[SortCreated], listing.Desc, st.Page, HubPageSize)
	st.Page = page.Page
	return HubView{State: st, Categories: models.ArticleCategories, Page: page, Err: snap.Err}
}

// Article loads one article, renders its Markdown and picks related
// articles from the same category.
func (h *WellnessHub) Article(ctx context.Context, id string) (ArticleView, error) {
	a, err := h.svc.Get(ctx, id)
	if err != nil {
		return ArticleView{}, fmt.Errorf("load article %s: %w", id, err)
	}
	if a.ReadTime == "" {
		a.ReadTime = markdown.EstimateReadTime(a.Content)
	}
	out, err := h.renderer.Render(ctx, a.Content)
	if err != nil {
		return ArticleView{}, fmt.Errorf("render article %s: %w", id, err)
	}
	v := ArticleView{Article: a, HTML: template.HTML(out)}

	snap := h.query.Load(ctx)
	if snap.Err != nil {
		slog.Warn("related articles unavailable", "article", id, "error", snap.Err)
		return v, nil
	}
	for _, other := range snap.Data {
		if other.ID != a.ID && other.Category == a.Category {
			v.Related = append(v.Related, other)
			if len(v.Related) == relatedCount {
				break
			}
		}
	}
	return v, nil
}
