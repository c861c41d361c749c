package pages

import (
	"context"
	"encoding/json"
	"sync"

	"wellnesshub/internal/models"
)

// call is one request seen by the recording doer.
type call struct {
	method string
	path   string
	body   string
}

// doer is an apiclient.Doer that records calls and answers with a canned
// JSON response.
type doer struct {
	mu       sync.Mutex
	calls    []call
	response string
	err      error
}

func (d *doer) Do(_ context.Context, method, path string, body, out any) error {
	c := call{method: method, path: path}
	if body != nil {
		b, _ := json.Marshal(body)
		c.body = string(b)
	}
	d.mu.Lock()
	d.calls = append(d.calls, c)
	d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	if out != nil && d.response != "" {
		return json.Unmarshal([]byte(d.response), out)
	}
	return nil
}

// fakeCategories is an in-memory CategoryService.
type fakeCategories struct {
	mu      sync.Mutex
	list    []models.Category
	created []models.CategoryInput
	lists   int
	err     error
}

func (f *fakeCategories) List(context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Category(nil), f.list...), nil
}

func (f *fakeCategories) Create(_ context.Context, in models.CategoryInput) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	c := models.Category{ID: "c" + in.Slug, Name: in.Name, Slug: in.Slug, Description: in.Description}
	f.list = append(f.list, c)
	return c, nil
}

func (f *fakeCategories) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.list[:0]
	for _, c := range f.list {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	f.list = kept
	return nil
}

// fakeArticles is an in-memory ArticleService.
type fakeArticles struct {
	mu      sync.Mutex
	list    []models.Article
	patches map[string]models.ArticlePatch
	lists   int
	err     error
}

func (f *fakeArticles) List(context.Context) ([]models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Article(nil), f.list...), nil
}

func (f *fakeArticles) Get(_ context.Context, id string) (models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.list {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Article{}, errNotFound
}

func (f *fakeArticles) Create(_ context.Context, in models.ArticleInput) (models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := models.Article{ID: "a" + in.Title, Title: in.Title, Category: in.Category, ReadTime: in.ReadTime, Tags: in.Tags}
	f.list = append(f.list, a)
	return a, nil
}

func (f *fakeArticles) Update(_ context.Context, id string, p models.ArticlePatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.patches == nil {
		f.patches = map[string]models.ArticlePatch{}
	}
	f.patches[id] = p
	return nil
}

func (f *fakeArticles) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.list[:0]
	for _, a := range f.list {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	f.list = kept
	return nil
}

// fakeAdmins is an in-memory AdminService.
type fakeAdmins struct {
	mu      sync.Mutex
	list    []models.AdminUser
	created []models.AdminCreateInput
	updated []models.AdminUpdateInput
	err     error
}

func (f *fakeAdmins) List(context.Context) ([]models.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.AdminUser(nil), f.list...), nil
}

func (f *fakeAdmins) Get(_ context.Context, id string) (models.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.list {
		if u.ID == id {
			return u, nil
		}
	}
	return models.AdminUser{}, errNotFound
}

func (f *fakeAdmins) Create(_ context.Context, in models.AdminCreateInput) (models.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	u := models.AdminUser{ID: "u" + in.Username, Username: in.Username, Email: in.Email, Role: in.Role}
	f.list = append(f.list, u)
	return u, nil
}

func (f *fakeAdmins) Update(_ context.Context, id string, in models.AdminUpdateInput) (models.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, in)
	return models.AdminUser{ID: id, Username: in.Username, Email: in.Email, Role: in.Role}, nil
}

func (f *fakeAdmins) Delete(context.Context, string) error { return nil }

// fakeInquiries is an in-memory InquiryService.
type fakeInquiries struct {
	mu      sync.Mutex
	list    []models.Inquiry
	updates int
	err     error
}

func (f *fakeInquiries) List(context.Context) ([]models.Inquiry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Inquiry(nil), f.list...), nil
}

func (f *fakeInquiries) UpdateStatus(_ context.Context, id string, s models.InquiryStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	return f.err
}

// fakeStorefront is an in-memory StorefrontService.
type fakeStorefront struct {
	cfg   models.StorefrontConfig
	saved []models.StorefrontConfig
	err   error
}

func (f *fakeStorefront) GetOrDefault(ctx context.Context) models.StorefrontConfig {
	cfg, err := f.Current(ctx)
	if err != nil {
		return models.DefaultStorefront()
	}
	return cfg
}

func (f *fakeStorefront) Current(context.Context) (models.StorefrontConfig, error) {
	if f.err != nil {
		return models.StorefrontConfig{}, f.err
	}
	if len(f.cfg.Sections) == 0 {
		return models.DefaultStorefront(), nil
	}
	return f.cfg, nil
}

func (f *fakeStorefront) Update(_ context.Context, cfg models.StorefrontConfig) error {
	f.saved = append(f.saved, cfg)
	f.cfg = cfg
	return nil
}

// fakeLeads records lead submissions.
type fakeLeads struct {
	carts    []models.CartLead
	trainers []models.TrainerLead
	diets    []models.DietPlanLead
	err      error
}

func (f *fakeLeads) SubmitCart(_ context.Context, l models.CartLead) error {
	if f.err != nil {
		return f.err
	}
	f.carts = append(f.carts, l)
	return nil
}

func (f *fakeLeads) SubmitTrainer(_ context.Context, l models.TrainerLead) error {
	if f.err != nil {
		return f.err
	}
	f.trainers = append(f.trainers, l)
	return nil
}

func (f *fakeLeads) SubmitDietPlan(_ context.Context, l models.DietPlanLead) error {
	if f.err != nil {
		return f.err
	}
	f.diets = append(f.diets, l)
	return nil
}
