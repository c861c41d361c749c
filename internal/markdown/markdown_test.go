package markdown

import (
	"context"
	"strings"
	"sync"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{name: "heading with id", input: "# Eat Well", contains: []string{`<h1 id="eat-well">Eat Well</h1>`}},
		{name: "emphasis", input: "**protein** first", contains: []string{"<strong>protein</strong>"}},
		{name: "table", input: "| a | b |\n|---|---|\n| 1 | 2 |", contains: []string{"<table>", "<td>1</td>"}},
		{name: "raw html passes through", input: `<div class="tip">Hydrate</div>`, contains: []string{`<div class="tip">Hydrate</div>`}},
		{name: "fenced code highlighted", input: "```go\nfunc main() {}\n```", contains: []string{"<pre", "main"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.input)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.input, got, want)
				}
			}
		})
	}
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if ok {
		m.hits++
	}
	return b, ok
}

func (m *memCache) Set(_ context.Context, key string, html []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = html
}

func TestRendererCachesByContent(t *testing.T) {
	c := &memCache{data: map[string][]byte{}}
	r := NewRenderer(c)
	ctx := context.Background()

	first, err := r.Render(ctx, "*hi*")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, _ := r.Render(ctx, "*hi*")
	if first != second {
		t.Errorf("cached render differs: %q vs %q", first, second)
	}
	if c.hits != 1 {
		t.Errorf("cache hits = %d, want 1", c.hits)
	}

	if _, err := r.Render(ctx, "*bye*"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(c.data) != 2 {
		t.Errorf("cache entries = %d, want 2", len(c.data))
	}
}

func TestRendererWithoutCache(t *testing.T) {
	got, err := NewRenderer(nil).Render(context.Background(), "plain")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, "<p>plain</p>") {
		t.Errorf("Render = %q", got)
	}
}

func TestEstimateReadTime(t *testing.T) {
	tests := []struct {
		words int
		want  string
	}{
		{words: 0, want: "1 min read"},
		{words: 150, want: "1 min read"},
		{words: 200, want: "1 min read"},
		{words: 201, want: "2 min read"},
		{words: 1000, want: "5 min read"},
	}
	for _, tt := range tests {
		src := strings.Repeat("word ", tt.words)
		if got := EstimateReadTime(src); got != tt.want {
			t.Errorf("EstimateReadTime(%d words) = %q, want %q", tt.words, got, tt.want)
		}
	}
}
