// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the storefront and
// the back office. It supports full-page and HTMX partial rendering,
// automatically detecting the request type via the HX-Request header, and
// tags cacheable pages with a weak ETag.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"

	"wellnesshub/internal/listing"
	"wellnesshub/internal/middleware"
	"wellnesshub/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string           // Page title for <title> tag
	Section   string           // Active navigation section
	CSRFToken string           // CSRF token for forms and HTMX headers
	CartCount int              // Items in the visitor's cart
	User      *models.AuthUser // Signed-in admin, nil for visitors
	Data      any              // Page-specific data
	Flashes   []Flash          // One-time notification messages
	// Error is an inline form error and Field the input it belongs to.
	Error string
	Field string
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "info"
	Message string
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// Layouts. Page files prefixed with "admin_" use the back office layout;
// standalone pages carry their own <html> root. Shared blocks live in
// partials and are available to every layout.
const (
	publicLayout = "base.html"
	adminLayout  = "admin.html"
	partials     = "partials.html"
)

var standaloneTemplates = map[string]bool{
	"login": true,
}

// New parses every page template from the embedded filesystem, each paired
// with its layout.
func New() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"activeClass": func(current, target string) string {
				if current == target {
					return "active"
				}
				return ""
			},
			"money": func(d decimal.Decimal) string {
				return "$" + d.StringFixed(2)
			},
			"pct": func(v float64) string {
				return strconv.FormatFloat(v, 'f', -1, 64) + "%"
			},
			"rating": func(v float64) string {
				return strconv.FormatFloat(v, 'f', 1, 64)
			},
			"date": func(t time.Time) string {
				if t.IsZero() {
					return ""
				}
				return t.Format("Jan 2, 2006")
			},
			"sortHref": func(st listing.State, path, col string) string {
				return st.WithSort(col).Href(path)
			},
			"pageHref": func(st listing.State, path string, page int) string {
				return st.WithPage(page).Href(path)
			},
			"indicator": func(st listing.State, col string) string {
				return st.Sort.Indicator(col)
			},
			"join": strings.Join,
			"add": func(a, b int) int {
				return a + b
			},
			"dict": func(kv ...any) (map[string]any, error) {
				if len(kv)%2 != 0 {
					return nil, fmt.Errorf("dict: odd number of arguments")
				}
				m := make(map[string]any, len(kv)/2)
				for i := 0; i < len(kv); i += 2 {
					k, ok := kv[i].(string)
					if !ok {
						return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
					}
					m[k] = kv[i+1]
				}
				return m, nil
			},
		},
	}

	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == publicLayout || name == adminLayout || name == partials {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		var files []string
		switch {
		case standaloneTemplates[tmplName]:
			files = []string{"templates/" + name}
		case strings.HasPrefix(tmplName, "admin_"):
			files = []string{"templates/" + adminLayout, "templates/" + partials, "templates/" + name}
		default:
			files = []string{"templates/" + publicLayout, "templates/" + partials, "templates/" + name}
		}

		tmpl, err := template.New(name).Funcs(r.funcMap).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a page with status 200.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, http.StatusOK, name, data)
}

// PageStatus renders a full page or an HTMX partial with the given status.
// For HTMX requests only the "content" block is sent. Successful GETs of
// cacheable pages get a weak ETag and answer 304 when the client already
// has that version.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if visit := middleware.VisitFromCtx(r.Context()); visit != nil {
		data.CartCount = visit.Cart.Count()
		if u, ok := visit.Auth.User(); ok && data.User == nil {
			data.User = &u
		}
	}

	execName := layoutFor(name)
	if IsHTMX(r) {
		execName = "content"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, execName, data); err != nil {
		slog.Error("template execution failed", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	if status == http.StatusOK && r.Method == http.MethodGet && h.Get("Cache-Control") != "no-store" {
		etag := ETag(buf.Bytes())
		h.Set("ETag", etag)
		if Matches(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// ETag returns the weak entity tag of body.
func ETag(body []byte) string {
	return `W/"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
}

// Matches reports whether an If-None-Match header value names etag. Weak
// comparison applies, so W/ prefixes are ignored.
func Matches(header, etag string) bool {
	if header == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "*" || strings.TrimPrefix(part, "W/") == want {
			return true
		}
	}
	return false
}

func layoutFor(name string) string {
	switch {
	case standaloneTemplates[name]:
		return name + ".html"
	case strings.HasPrefix(name, "admin_"):
		return adminLayout
	}
	return publicLayout
}

// IsHTMX returns true if the request was made by HTMX (has HX-Request header).
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
