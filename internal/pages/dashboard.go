// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pages

import (
	"context"
	"log/slog"

	"wellnesshub/internal/api"
	"wellnesshub/internal/loader"
	"wellnesshub/internal/models"
)

// DashboardView holds the back office counters. Failed counters are
// listed in Unavailable and shown as zero.
type DashboardView struct {
	Products     int
	Categories   int
	Articles     int
	NewInquiries int
	Admins       int
	Unavailable  []string
	Err          error
}

// DashboardServices are the list endpoints the dashboard counts.
type DashboardServices struct {
	Products   api.ProductService
	Categories CategoryService
	Articles   ArticleService
	Inquiries  InquiryService
	Admins     AdminService
}

// Dashboard loads every counter concurrently.
func Dashboard(ctx context.Context, s DashboardServices) DashboardView {
	products := loader.NewList(s.Products.List, loader.Identity[models.Product])
	categories := loader.NewList(s.Categories.List, loader.Identity[models.Category])
	articles := loader.NewList(s.Articles.List, loader.Identity[models.Article])
	inquiries := loader.NewList(s.Inquiries.List, loader.Identity[models.Inquiry])
	admins := loader.NewList(s.Admins.List, loader.Identity[models.AdminUser])

	err := loader.Group(ctx, products, categories, articles, inquiries, admins)
	if err != nil {
		slog.Warn("dashboard load incomplete", "error", err)
	}

	v := DashboardView{Err: err}
	count := func(name string, n int, failed error) int {
		if failed != nil {
			v.Unavailable = append(v.Unavailable, name)
		}
		return n
	}
	ps, cs, as, is, us := products.Snapshot(), categories.Snapshot(), articles.Snapshot(), inquiries.Snapshot(), admins.Snapshot()
	v.Products = count("products", ps.Count, ps.Err)
	v.Categories = count("categories", cs.Count, cs.Err)
	v.Articles = count("articles", as.Count, as.Err)
	v.Admins = count("admins", us.Count, us.Err)

	newCount := 0
	for _, q := range is.Data {
		if q.Status == models.InquiryNew {
			newCount++
		}
	}
	v.NewInquiries = count("inquiries", newCount, is.Err)
	return v
}
