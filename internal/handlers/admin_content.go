// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"wellnesshub/internal/api"
	"wellnesshub/internal/listing"
	"wellnesshub/internal/models"
	"wellnesshub/internal/pages"
	"wellnesshub/internal/render"
)

// --- Articles ---

type articleListPage struct {
	pages.ArticleListView
	Categories []models.ArticleCategory
}

func (a *Admin) renderArticles(w http.ResponseWriter, r *http.Request, board *pages.ArticleBoard) {
	st := listing.ParseState(r.URL.Query(), pages.DefaultArticleState)
	a.page(w, r, "admin_articles", &render.PageData{
		Title:   "Articles",
		Section: "articles",
		Data:    articleListPage{ArticleListView: board.View(st), Categories: models.ArticleCategories},
	})
}

// Articles renders the article table.
func (a *Admin) Articles(w http.ResponseWriter, r *http.Request) {
	board := pages.NewArticleBoard(api.NewArticles(a.backend.admin(r)))
	if err := board.Load(r.Context()); a.expired(w, r, err) {
		return
	}
	a.renderArticles(w, r, board)
}

type articleFormPage struct {
	ID         string
	Input      models.ArticleInput
	Tags       string
	Categories []models.ArticleCategory
	Upload     bool
}

func (a *Admin) articleData(id string, in models.ArticleInput) *render.PageData {
	title := "New Article"
	if id != "" {
		title = "Edit Article"
	}
	return &render.PageData{
		Title:   title,
		Section: "articles",
		Data: articleFormPage{
			ID:         id,
			Input:      in,
			Tags:       strings.Join(in.Tags, ", "),
			Categories: models.ArticleCategories,
			Upload:     a.uploader != nil,
		},
	}
}

// ArticleNew renders the create form with its defaults.
func (a *Admin) ArticleNew(w http.ResponseWriter, r *http.Request) {
	a.page(w, r, "admin_article_form", a.articleData("", pages.NewArticleInput()))
}

// ArticleCreate publishes a new article.
func (a *Admin) ArticleCreate(w http.ResponseWriter, r *http.Request) {
	a.saveArticle(w, r, "", "Article published.")
}

// ArticleEdit renders the edit form seeded from the backend.
func (a *Admin) ArticleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	art, err := pages.NewArticleBoard(api.NewArticles(a.backend.admin(r))).Get(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.page(w, r, "admin_article_form", a.articleData(art.ID, art.Input()))
}

// ArticleUpdate saves every field of an article.
func (a *Admin) ArticleUpdate(w http.ResponseWriter, r *http.Request) {
	a.saveArticle(w, r, chi.URLParam(r, "id"), "Article saved.")
}

func (a *Admin) saveArticle(w http.ResponseWriter, r *http.Request, id, msg string) {
	var in models.ArticleInput
	if err := a.decodeMultipart(r, &in); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	in.Tags = models.ParseTags(r.PostForm.Get("tags"))

	url, err := a.upload(r, "articles")
	if err != nil {
		a.formError(w, r, "admin_article_form", a.articleData(id, in), err)
		return
	}
	saved := in
	if url != "" {
		saved.ImageURL = url
	}

	board := pages.NewArticleBoard(api.NewArticles(a.backend.admin(r)))
	if id == "" {
		_, err = board.Create(r.Context(), saved)
	} else {
		err = board.Update(r.Context(), id, saved)
	}
	if err != nil {
		a.discard(r.Context(), url)
		a.formError(w, r, "admin_article_form", a.articleData(id, in), err)
		return
	}
	a.done(w, r, pages.ArticlesPath, msg, nil)
}

// ArticleDelete removes an article.
func (a *Admin) ArticleDelete(w http.ResponseWriter, r *http.Request) {
	board := pages.NewArticleBoard(api.NewArticles(a.backend.admin(r)))
	if err := board.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.failBack(w, r, pages.ArticlesPath, err)
		return
	}
	a.done(w, r, pages.ArticlesPath, "Article deleted.", func() { a.renderArticles(w, r, board) })
}

// --- Admin users ---

func (a *Admin) renderAdmins(w http.ResponseWriter, r *http.Request, users *pages.AdminUsers) {
	st := listing.ParseState(r.URL.Query(), pages.DefaultAdminState)
	a.page(w, r, "admin_admins", &render.PageData{
		Title:   "Admins",
		Section: "admins",
		Data:    users.View(st),
	})
}

// Admins renders the back office account table.
func (a *Admin) Admins(w http.ResponseWriter, r *http.Request) {
	users := pages.NewAdminUsers(api.NewAdmins(a.backend.admin(r)))
	if err := users.Load(r.Context()); a.expired(w, r, err) {
		return
	}
	a.renderAdmins(w, r, users)
}

type adminFormPage struct {
	ID       string
	Username string
	Email    string
	Role     models.Role
	Roles    []models.Role
}

func adminData(v adminFormPage) *render.PageData {
	title := "New Admin"
	if v.ID != "" {
		title = "Edit Admin"
	}
	v.Roles = models.Roles
	return &render.PageData{Title: title, Section: "admins", Data: v}
}

// AdminNew renders the account create form.
func (a *Admin) AdminNew(w http.ResponseWriter, r *http.Request) {
	in := pages.NewAdminInput()
	a.page(w, r, "admin_admin_form", adminData(adminFormPage{Role: in.Role}))
}

// AdminCreate creates an account.
func (a *Admin) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var in models.AdminCreateInput
	if err := a.decode(r, &in); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	users := pages.NewAdminUsers(api.NewAdmins(a.backend.admin(r)))
	if err := users.Create(r.Context(), in); err != nil {
		v := adminFormPage{Username: in.Username, Email: in.Email, Role: in.Role}
		a.formError(w, r, "admin_admin_form", adminData(v), err)
		return
	}
	a.done(w, r, pages.AdminsPath, "Account created.", func() { a.renderAdmins(w, r, users) })
}

// AdminEdit renders the account edit form.
func (a *Admin) AdminEdit(w http.ResponseWriter, r *http.Request) {
	users := pages.NewAdminUsers(api.NewAdmins(a.backend.admin(r)))
	u, err := users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.page(w, r, "admin_admin_form", adminData(adminFormPage{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}))
}

// AdminUpdate saves an account. A blank password keeps the current one.
func (a *Admin) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in models.AdminUpdateInput
	if err := a.decode(r, &in); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	users := pages.NewAdminUsers(api.NewAdmins(a.backend.admin(r)))
	if err := users.Update(r.Context(), id, in); err != nil {
		v := adminFormPage{ID: id, Username: in.Username, Email: in.Email, Role: in.Role}
		a.formError(w, r, "admin_admin_form", adminData(v), err)
		return
	}
	a.done(w, r, pages.AdminsPath, "Account saved.", func() { a.renderAdmins(w, r, users) })
}

// AdminDelete removes an account.
func (a *Admin) AdminDelete(w http.ResponseWriter, r *http.Request) {
	users := pages.NewAdminUsers(api.NewAdmins(a.backend.admin(r)))
	if err := users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.failBack(w, r, pages.AdminsPath, err)
		return
	}
	a.done(w, r, pages.AdminsPath, "Account deleted.", func() { a.renderAdmins(w, r, users) })
}
