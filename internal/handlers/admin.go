// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"wellnesshub/internal/api"
	"wellnesshub/internal/apiclient"
	"wellnesshub/internal/listing"
	"wellnesshub/internal/models"
	"wellnesshub/internal/pages"
	"wellnesshub/internal/render"
	"wellnesshub/internal/storage"
)

// Admin groups all back office HTTP handlers and their dependencies.
type Admin struct {
	base
	uploader storage.Uploader
}

// NewAdmin creates a new Admin handler group. uploader may be nil when no
// media storage is configured; image fields then only accept URLs.
func NewAdmin(renderer *render.Renderer, backend *Backend, uploader storage.Uploader) *Admin {
	return &Admin{base: newBase(renderer, backend), uploader: uploader}
}

// expired reports a rejected token and sends the visitor to the login page.
func (a *Admin) expired(w http.ResponseWriter, r *http.Request, err error) bool {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		a.toLogin(w, r)
		return true
	}
	return false
}

// upload stores the image posted in the multipart field "image" and returns
// its public URL, or "" when nothing was posted.
func (a *Admin) upload(r *http.Request, folder string) (string, error) {
	if a.uploader == nil || r.MultipartForm == nil {
		return "", nil
	}
	file, _, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	img, err := storage.PrepareImage(folder, file, time.Now())
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		return "", &pages.ValidationError{Field: "image_url", Message: "Image must be 5 MB or smaller."}
	case errors.Is(err, storage.ErrUnsupportedType):
		return "", &pages.ValidationError{Field: "image_url", Message: "Image must be a JPEG, PNG, GIF or WebP file."}
	case err != nil:
		return "", err
	}
	url, err := a.uploader.Upload(r.Context(), img)
	if err != nil {
		return "", err
	}
	slog.Info("image uploaded", "key", img.Key, "url", url)
	return url, nil
}

// discard removes an uploaded image whose record could not be saved.
func (a *Admin) discard(ctx context.Context, url string) {
	if url == "" || a.uploader == nil {
		return
	}
	if err := a.uploader.Delete(ctx, url); err != nil {
		slog.Warn("orphaned upload cleanup failed", "url", url, "error", err)
	}
}

// Dashboard renders the back office counters.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	d := a.backend.admin(r)
	v := pages.Dashboard(r.Context(), pages.DashboardServices{
		Products:   a.backend.products(d),
		Categories: api.NewCategories(d),
		Articles:   api.NewArticles(d),
		Inquiries:  api.NewInquiries(d),
		Admins:     api.NewAdmins(d),
	})
	if a.expired(w, r, v.Err) {
		return
	}

	a.page(w, r, "admin_dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data:    v,
	})
}

// --- Products ---

type productListPage struct {
	pages.ProductListView
	Categories []models.ProductCategory
}

func (a *Admin) renderProducts(w http.ResponseWriter, r *http.Request, list *pages.ProductList) {
	st := listing.ParseState(r.URL.Query(), pages.DefaultProductState)
	a.page(w, r, "admin_products", &render.PageData{
		Title:   "Products",
		Section: "products",
		Data:    productListPage{ProductListView: list.View(st), Categories: models.ProductCategories},
	})
}

// Products renders the product table.
func (a *Admin) Products(w http.ResponseWriter, r *http.Request) {
	list := pages.NewProductList(a.backend.products(a.backend.admin(r)))
	if err := list.Load(r.Context()); a.expired(w, r, err) {
		return
	}
	a.renderProducts(w, r, list)
}

// ProductDelete removes a product.
func (a *Admin) ProductDelete(w http.ResponseWriter, r *http.Request) {
	list := pages.NewProductList(a.backend.products(a.backend.admin(r)))
	if err := list.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.failBack(w, r, pages.ProductsPath, err)
		return
	}
	a.done(w, r, pages.ProductsPath, "Product deleted.", func() { a.renderProducts(w, r, list) })
}

type productFormPage struct {
	ID         string
	Input      models.ProductInput
	Categories []models.ProductCategory
	Upload     bool
}

func (a *Admin) productData(form *pages.ProductForm) *render.PageData {
	title := "New Product"
	if form.ID != "" {
		title = "Edit Product"
	}
	return &render.PageData{
		Title:   title,
		Section: "products",
		Data: productFormPage{
			ID:         form.ID,
			Input:      form.Input,
			Categories: models.ProductCategories,
			Upload:     a.uploader != nil,
		},
	}
}

// ProductNew renders the create form with its defaults.
func (a *Admin) ProductNew(w http.ResponseWriter, r *http.Request) {
	form := pages.NewProductForm(a.backend.products(a.backend.admin(r)))
	a.page(w, r, "admin_product_form", a.productData(form))
}

// ProductCreate validates and creates a product.
func (a *Admin) ProductCreate(w http.ResponseWriter, r *http.Request) {
	form := pages.NewProductForm(a.backend.products(a.backend.admin(r)))
	a.saveProduct(w, r, form, "", "Product created.")
}

// ProductEdit renders the edit form seeded from the backend.
func (a *Admin) ProductEdit(w http.ResponseWriter, r *http.Request) {
	form := pages.NewProductForm(a.backend.products(a.backend.admin(r)))
	if err := form.Seed(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	a.page(w, r, "admin_product_form", a.productData(form))
}

// ProductUpdate validates and saves a product.
func (a *Admin) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	form := pages.NewProductForm(a.backend.products(a.backend.admin(r)))
	a.saveProduct(w, r, form, chi.URLParam(r, "id"), "Product saved.")
}

func (a *Admin) saveProduct(w http.ResponseWriter, r *http.Request, form *pages.ProductForm, id, msg string) {
	var in models.ProductInput
	if err := a.decodeMultipart(r, &in); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form.ID, form.Input = id, in

	url, err := a.upload(r, "products")
	if err != nil {
		a.formError(w, r, "admin_product_form", a.productData(form), err)
		return
	}
	if url != "" {
		in.ImageURL = url
	}

	var next string
	if id == "" {
		next, err = form.Create(r.Context(), in)
	} else {
		next, err = form.Update(r.Context(), id, in)
	}
	if err != nil {
		a.discard(r.Context(), url)
		form.Input.ImageURL = r.PostForm.Get("image_url")
		a.formError(w, r, "admin_product_form", a.productData(form), err)
		return
	}
	a.done(w, r, next, msg, nil)
}

// --- Categories ---

type categoriesPage struct {
	Page  listing.Page[models.Category]
	Query string
	Input models.CategoryInput
	Err   error
}

func (a *Admin) categoriesData(r *http.Request, board *pages.CategoryBoard, in models.CategoryInput) *render.PageData {
	q := r.URL.Query().Get("q")
	return &render.PageData{
		Title:   "Categories",
		Section: "categories",
		Data: categoriesPage{
			Page:  board.Filtered(q),
			Query: q,
			Input: in,
			Err:   board.Snapshot().Err,
		},
	}
}

// Categories renders the category list and the create form.
func (a *Admin) Categories(w http.ResponseWriter, r *http.Request) {
	board := pages.NewCategoryBoard(api.NewCategories(a.backend.admin(r)))
	if err := board.Load(r.Context()); a.expired(w, r, err) {
		return
	}
	a.page(w, r, "admin_categories", a.categoriesData(r, board, models.CategoryInput{}))
}

// CategoryCreate adds a category. The slug is derived from the name when
// left blank.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if err := a.decode(r, &in); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	board := pages.NewCategoryBoard(api.NewCategories(a.backend.admin(r)))
	if _, err := board.Create(r.Context(), in); err != nil {
		if err := board.Load(r.Context()); a.expired(w, r, err) {
			return
		}
		a.formError(w, r, "admin_categories", a.categoriesData(r, board, in), err)
		return
	}
	a.done(w, r, pages.CategoriesPath, "Category created.", func() {
		a.page(w, r, "admin_categories", a.categoriesData(r, board, models.CategoryInput{}))
	})
}

// CategoryDelete removes a category.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	board := pages.NewCategoryBoard(api.NewCategories(a.backend.admin(r)))
	if err := board.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.failBack(w, r, pages.CategoriesPath, err)
		return
	}
	a.done(w, r, pages.CategoriesPath, "Category deleted.", func() {
		a.page(w, r, "admin_categories", a.categoriesData(r, board, models.CategoryInput{}))
	})
}
