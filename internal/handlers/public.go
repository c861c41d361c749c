// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"wellnesshub/internal/api"
	"wellnesshub/internal/listing"
	"wellnesshub/internal/markdown"
	"wellnesshub/internal/middleware"
	"wellnesshub/internal/models"
	"wellnesshub/internal/pages"
	"wellnesshub/internal/render"
)

// Public groups the storefront handlers.
type Public struct {
	base
	markdown *markdown.Renderer
}

// NewPublic creates the storefront handler group.
func NewPublic(renderer *render.Renderer, backend *Backend, md *markdown.Renderer) *Public {
	return &Public{base: newBase(renderer, backend), markdown: md}
}

type homePage struct {
	pages.HomeView
	Tabs  []models.TabInfo
	Sorts []pages.HomeSort
}

// Home renders the landing page built from the storefront configuration.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	d := p.backend.client
	home := pages.NewHome(p.backend.products(d), api.NewStorefront(d))
	v := home.Load(r.Context(), pages.HomeOptions{
		Tab:     models.ParseTab(q.Get("tab")),
		Sort:    pages.ParseHomeSort(q.Get("sort")),
		OnlyNew: q.Get("new") == "1",
		Limit:   limit,
	})

	p.page(w, r, "home", &render.PageData{
		Title:   v.Config.Hero.Title,
		Section: "home",
		Data:    homePage{HomeView: v, Tabs: models.HomeTabs, Sorts: pages.HomeSorts},
	})
}

type catalogPage struct {
	pages.CatalogView
	Tabs any
}

// Catalog renders the categories page.
func (p *Public) Catalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	catalog := pages.NewCatalog(p.backend.products(p.backend.client))
	v := catalog.Load(r.Context(), pages.ParseCatalogTab(q.Get("tab")), strings.TrimSpace(q.Get("q")))

	p.page(w, r, "catalog", &render.PageData{
		Title:   "Shop by Category",
		Section: "categories",
		Data:    catalogPage{CatalogView: v, Tabs: pages.CatalogTabs},
	})
}

// Product renders a product detail page.
func (p *Public) Product(w http.ResponseWriter, r *http.Request) {
	card, err := pages.ProductDetail(r.Context(), p.backend.products(p.backend.client), chi.URLParam(r, "id"))
	if err != nil {
		p.fail(w, r, err)
		return
	}
	p.page(w, r, "product", &render.PageData{
		Title:   card.Name,
		Section: "categories",
		Data:    card,
	})
}

// Hub renders the wellness hub article list.
func (p *Public) Hub(w http.ResponseWriter, r *http.Request) {
	st := listing.ParseState(r.URL.Query(), listing.State{Page: 1})
	hub := pages.NewWellnessHub(api.NewArticles(p.backend.client), p.markdown)

	p.page(w, r, "hub", &render.PageData{
		Title:   "Wellness Hub",
		Section: "hub",
		Data:    hub.List(r.Context(), st),
	})
}

// Article renders one wellness hub article.
func (p *Public) Article(w http.ResponseWriter, r *http.Request) {
	hub := pages.NewWellnessHub(api.NewArticles(p.backend.client), p.markdown)
	v, err := hub.Article(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		p.fail(w, r, err)
		return
	}
	p.page(w, r, "article", &render.PageData{
		Title:   v.Article.Title,
		Section: "hub",
		Data:    v,
	})
}

// CartAdd puts a product in the visitor's cart.
func (p *Public) CartAdd(w http.ResponseWriter, r *http.Request) {
	visit := middleware.VisitFromCtx(r.Context())
	if visit == nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	qty := 1
	if s := r.PostForm.Get("qty"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		qty = n
	}

	card, err := pages.ProductDetail(r.Context(), p.backend.products(p.backend.client), r.PostForm.Get("id"))
	if err != nil {
		p.fail(w, r, err)
		return
	}
	if err := visit.Cart.Add(r.Context(), card.CartItem(), qty); err != nil {
		slog.Warn("cart add failed", "product", card.ID, "error", err)
		p.failBack(w, r, backTo(r, "/checkout"), err)
		return
	}
	setFlash(r, "success", card.Name+" added to your cart.")
	http.Redirect(w, r, backTo(r, "/checkout"), http.StatusSeeOther)
}

// CartRemove drops a line from the visitor's cart.
func (p *Public) CartRemove(w http.ResponseWriter, r *http.Request) {
	visit := middleware.VisitFromCtx(r.Context())
	if visit == nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := visit.Cart.Remove(r.Context(), r.FormValue("id")); err != nil {
		p.failBack(w, r, "/checkout", err)
		return
	}
	http.Redirect(w, r, "/checkout", http.StatusSeeOther)
}

type checkoutPage struct {
	Items   []models.CartItem
	Contact models.Contact
	Message string
}

func (p *Public) checkoutData(r *http.Request, form models.CartLead) *render.PageData {
	var items []models.CartItem
	if visit := middleware.VisitFromCtx(r.Context()); visit != nil {
		items = visit.Cart.Items()
	}
	return &render.PageData{
		Title:   "Checkout",
		Section: "cart",
		Data:    checkoutPage{Items: items, Contact: form.Contact, Message: form.Message},
	}
}

// CheckoutPage renders the cart with the order request form.
func (p *Public) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	p.page(w, r, "checkout", p.checkoutData(r, models.CartLead{}))
}

// CheckoutSubmit sends the cart as a lead.
func (p *Public) CheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	visit := middleware.VisitFromCtx(r.Context())
	if visit == nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	var form models.CartLead
	if err := p.decode(r, &form); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	err := pages.NewCheckout(api.NewLeads(p.backend.client)).Submit(r.Context(), visit.Cart, form.Contact, form.Message)
	if err != nil {
		p.formError(w, r, "checkout", p.checkoutData(r, form), err)
		return
	}
	setFlash(r, "success", "Thank you! We will contact you to confirm your order.")
	http.Redirect(w, r, "/checkout", http.StatusSeeOther)
}

type contactPage struct {
	Trainer models.TrainerLead
	Diet    models.DietPlanLead
}

func contactData(v contactPage) *render.PageData {
	return &render.PageData{Title: "Contact", Section: "contact", Data: v}
}

// ContactPage renders the trainer and diet plan request forms.
func (p *Public) ContactPage(w http.ResponseWriter, r *http.Request) {
	p.page(w, r, "contact", contactData(contactPage{}))
}

// ContactTrainer submits a personal trainer request.
func (p *Public) ContactTrainer(w http.ResponseWriter, r *http.Request) {
	var lead models.TrainerLead
	if err := p.decode(r, &lead); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	err := pages.NewContact(api.NewLeads(p.backend.client)).SubmitTrainer(r.Context(), lead)
	p.contactResult(w, r, err, contactPage{Trainer: lead})
}

// ContactDietPlan submits a diet plan request.
func (p *Public) ContactDietPlan(w http.ResponseWriter, r *http.Request) {
	var lead models.DietPlanLead
	if err := p.decode(r, &lead); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	err := pages.NewContact(api.NewLeads(p.backend.client)).SubmitDietPlan(r.Context(), lead)
	p.contactResult(w, r, err, contactPage{Diet: lead})
}

func (p *Public) contactResult(w http.ResponseWriter, r *http.Request, err error, v contactPage) {
	if err == nil {
		setFlash(r, "success", "Thanks! Our team will get back to you shortly.")
		http.Redirect(w, r, "/contact", http.StatusSeeOther)
		return
	}
	p.formError(w, r, "contact", contactData(v), err)
}

// NotFound renders the 404 page for unknown routes.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.notFound(w, r)
}

// backTo returns the local page the form was posted from, or fallback.
func backTo(r *http.Request, fallback string) string {
	ref := r.Referer()
	if ref == "" {
		return fallback
	}
	i := strings.Index(ref, "://")
	if i < 0 {
		return fallback
	}
	rest := ref[i+3:]
	host, path, _ := strings.Cut(rest, "/")
	if host != r.Host {
		return fallback
	}
	return "/" + path
}
