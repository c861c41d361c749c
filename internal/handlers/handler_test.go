// handler_test.go provides shared test infrastructure for the handler
// tests: an in-process fake of the backend REST API and a router wired
// the way the server wires it, minus CSRF.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"wellnesshub/internal/apiclient"
	"wellnesshub/internal/auth"
	"wellnesshub/internal/cart"
	"wellnesshub/internal/markdown"
	"wellnesshub/internal/middleware"
	"wellnesshub/internal/models"
	"wellnesshub/internal/persist"
	"wellnesshub/internal/render"
	"wellnesshub/internal/session"
)

// call is one request received by the fake backend.
type call struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

// fakeAPI is a small in-memory stand-in for the backend REST API.
type fakeAPI struct {
	mu             sync.Mutex
	calls          []call
	products       []models.Product
	categories     []models.Category
	inquiries      []models.Inquiry
	storefront     *models.StorefrontConfig
	profile        models.Profile
	unauthorized   bool
	storefrontDown bool
}

func newFakeAPI() *fakeAPI {
	price := 49.99
	return &fakeAPI{
		products: []models.Product{
			{ID: "p1", Name: "Whey Protein", Category: models.CategoryProtein, Price: &price, IsNew: true, CreatedAt: "2026-01-02T10:00:00Z"},
			{ID: "p2", Name: "Yoga Mat", Category: models.CategoryAccessories, CreatedAt: "2026-01-01T10:00:00Z"},
		},
		inquiries: []models.Inquiry{
			{ID: "q1", Name: "Ana", Email: "ana@example.com", Subject: "Shipping", Status: models.InquiryNew, CreatedAt: "2026-02-01T09:00:00Z"},
			{ID: "q2", Name: "Ben", Email: "ben@example.com", Subject: "Refund", Status: models.InquiryRead, CreatedAt: "2026-02-02T09:00:00Z"},
		},
		profile: models.Profile{FullName: "Alice Admin", Email: "alice@example.com"},
	}
}

func (f *fakeAPI) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/public/wellness/products", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.writeJSON(w, http.StatusOK, f.products)
	})
	mux.HandleFunc("GET /api/v1/public/wellness/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, p := range f.products {
			if p.ID == r.PathValue("id") {
				f.writeJSON(w, http.StatusOK, p)
				return
			}
		}
		f.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
	})
	mux.HandleFunc("POST /api/v1/admin/wellness/products", func(w http.ResponseWriter, r *http.Request) {
		f.writeJSON(w, http.StatusCreated, models.CreatedID{ID: "p9"})
	})
	mux.HandleFunc("DELETE /api/v1/admin/wellness/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		kept := f.products[:0]
		for _, p := range f.products {
			if p.ID != r.PathValue("id") {
				kept = append(kept, p)
			}
		}
		f.products = kept
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /api/v1/public/wellness/categories", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.writeJSON(w, http.StatusOK, f.categories)
	})
	mux.HandleFunc("POST /api/v1/admin/wellness/categories", func(w http.ResponseWriter, r *http.Request) {
		var in models.CategoryInput
		json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		c := models.Category{ID: "c" + string(rune('1'+len(f.categories))), Name: in.Name, Slug: in.Slug}
		f.categories = append(f.categories, c)
		f.mu.Unlock()
		f.writeJSON(w, http.StatusCreated, c)
	})

	mux.HandleFunc("GET /api/v1/admin/support/inquiries", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.writeJSON(w, http.StatusOK, f.inquiries)
	})
	mux.HandleFunc("PUT /api/v1/admin/support/inquiries/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status models.InquiryStatus `json:"status"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		for i := range f.inquiries {
			if f.inquiries[i].ID == r.PathValue("id") {
				f.inquiries[i].Status = body.Status
			}
		}
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /api/v1/public/storefront", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.storefrontDown {
			f.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "database unavailable"})
			return
		}
		if f.storefront == nil {
			f.writeJSON(w, http.StatusNotFound, map[string]string{"message": "not configured"})
			return
		}
		f.writeJSON(w, http.StatusOK, f.storefront)
	})
	mux.HandleFunc("PUT /api/v1/admin/storefront", func(w http.ResponseWriter, r *http.Request) {
		var cfg models.StorefrontConfig
		json.NewDecoder(r.Body).Decode(&cfg)
		f.mu.Lock()
		f.storefront = &cfg
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /api/v1/admin/wellness/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Username, Password string }
		json.NewDecoder(r.Body).Decode(&body)
		if body.Username != "alice" || body.Password != "secret-pass" {
			f.writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		f.writeJSON(w, http.StatusOK, models.LoginResponse{Token: "tok-alice", Username: "alice", Role: models.RoleSuperAdmin})
	})
	mux.HandleFunc("GET /api/v1/admin/wellness/profile", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.writeJSON(w, http.StatusOK, f.profile)
	})
	mux.HandleFunc("PUT /api/v1/admin/wellness/profile/password", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /api/v1/public/wellness/leads/{kind}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		f.mu.Lock()
		f.calls = append(f.calls, call{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization"), Body: string(body)})
		denied := f.unauthorized && strings.HasPrefix(r.URL.Path, "/api/v1/admin/")
		f.mu.Unlock()
		if denied {
			f.writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// find returns the calls made to method and path.
func (f *fakeAPI) find(method, path string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// testEnv is a wired handler stack over a fake backend.
type testEnv struct {
	API     *fakeAPI
	Store   *persist.Memory
	Router  http.Handler
	Visitor string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fake := newFakeAPI()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	store := persist.NewMemory()
	backend := NewBackend(apiclient.New(srv.URL), nil)
	public := NewPublic(renderer, backend, markdown.NewRenderer(nil))
	authH := NewAuth(renderer, backend)
	admin := NewAdmin(renderer, backend, nil)

	r := chi.NewRouter()
	r.Use(middleware.LoadVisitor(session.NewManager(store, false)))
	r.Get("/", public.Home)
	r.Get("/categories", public.Catalog)
	r.Get("/products/{id}", public.Product)
	r.Post("/cart/add", public.CartAdd)
	r.Post("/cart/remove", public.CartRemove)
	r.Get("/checkout", public.CheckoutPage)
	r.Post("/checkout", public.CheckoutSubmit)
	r.Get("/contact", public.ContactPage)
	r.Post("/contact/trainer", public.ContactTrainer)
	r.Post("/contact/diet-plan", public.ContactDietPlan)
	r.Get("/login", authH.LoginPage)
	r.Post("/login", authH.LoginSubmit)
	r.Post("/logout", authH.Logout)
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", admin.Dashboard)
		r.Get("/products", admin.Products)
		r.Get("/products/new", admin.ProductNew)
		r.Post("/products/new", admin.ProductCreate)
		r.Post("/products/{id}/delete", admin.ProductDelete)
		r.Get("/categories", admin.Categories)
		r.Post("/categories", admin.CategoryCreate)
		r.Get("/support", admin.Support)
		r.Post("/support/{id}/status", admin.SupportStatus)
		r.Get("/storefront", admin.Storefront)
		r.Post("/storefront/hero", admin.StorefrontHero)
		r.Post("/storefront/sections/{id}/move", admin.StorefrontMove)
		r.Post("/storefront/sections/{id}/toggle", admin.StorefrontToggle)
		r.Get("/profile", admin.Profile)
		r.Post("/profile/password", admin.ProfilePassword)
	})

	return &testEnv{API: fake, Store: store, Router: r, Visitor: uuid.NewString()}
}

// visitorStore is the private namespace of the env's visitor.
func (e *testEnv) visitorStore() persist.Store {
	return session.NewManager(e.Store, false).For(e.Visitor)
}

// signIn stores an admin session for the env's visitor.
func (e *testEnv) signIn(t *testing.T) {
	t.Helper()
	s := auth.NewSession(e.visitorStore(), e.Visitor)
	if err := s.Login(context.Background(), "tok-alice", models.AuthUser{Username: "alice", Role: models.RoleSuperAdmin}); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

// cart returns the env visitor's persisted cart.
func (e *testEnv) cart(t *testing.T) *cart.Store {
	t.Helper()
	c := cart.New(e.visitorStore())
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("cart Load: %v", err)
	}
	return c
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.send(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.send(req)
}

func (e *testEnv) send(req *http.Request) *httptest.ResponseRecorder {
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: e.Visitor})
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d (body: %s)", w.Code, http.StatusSeeOther, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != want {
		t.Errorf("Location: got %q, want %q", got, want)
	}
}
