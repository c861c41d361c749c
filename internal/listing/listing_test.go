package listing

import (
	"net/url"
	"reflect"
	"testing"
)

func TestSortToggle(t *testing.T) {
	tests := []struct {
		name string
		from Sort
		col  string
		want Sort
	}{
		{name: "same column asc flips", from: Sort{"name", Asc}, col: "name", want: Sort{"name", Desc}},
		{name: "same column desc flips", from: Sort{"name", Desc}, col: "name", want: Sort{"name", Asc}},
		{name: "new column resets", from: Sort{"name", Desc}, col: "category", want: Sort{"category", Asc}},
		{name: "from zero value", from: Sort{}, col: "created", want: Sort{"created", Asc}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.Toggle(tt.col); got != tt.want {
				t.Errorf("%+v.Toggle(%q) = %+v, want %+v", tt.from, tt.col, got, tt.want)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name               string
		n, page, size      int
		wantPage, wantPags int
	}{
		{name: "empty list", n: 0, page: 1, size: 10, wantPage: 1, wantPags: 1},
		{name: "empty list high page", n: 0, page: 4, size: 10, wantPage: 1, wantPags: 1},
		{name: "exact fit", n: 20, page: 2, size: 10, wantPage: 2, wantPags: 2},
		{name: "partial last page", n: 21, page: 3, size: 10, wantPage: 3, wantPags: 3},
		{name: "page above clamps", n: 21, page: 9, size: 10, wantPage: 3, wantPags: 3},
		{name: "page zero clamps", n: 21, page: 0, size: 10, wantPage: 1, wantPags: 3},
		{name: "negative page clamps", n: 5, page: -2, size: 10, wantPage: 1, wantPags: 1},
		{name: "zero size treated as one", n: 3, page: 2, size: 0, wantPage: 2, wantPags: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pages := Paginate(tt.n, tt.page, tt.size)
			if page != tt.wantPage || pages != tt.wantPags {
				t.Errorf("Paginate(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.n, tt.page, tt.size, page, pages, tt.wantPage, tt.wantPags)
			}
		})
	}
}

type row struct {
	Name string
	Cat  int
}

func byName(a, b row) bool { return a.Name < b.Name }

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{Name: string(rune('a' + i)), Cat: i % 2}
	}
	return out
}

func TestApplyPagesThroughSortedItems(t *testing.T) {
	items := rows(12)
	p := Apply(items, nil, byName, Desc, 2, 5)

	if p.Total != 12 || p.Pages != 3 || p.Page != 2 {
		t.Fatalf("page = %+v", p)
	}
	if p.From != 6 || p.To != 10 {
		t.Errorf("From-To = %d-%d, want 6-10", p.From, p.To)
	}
	if p.Items[0].Name != "g" || p.Items[4].Name != "c" {
		t.Errorf("items = %+v, want g..c descending", p.Items)
	}
	if items[0].Name != "a" {
		t.Error("Apply reordered the input slice")
	}
}

func TestApplyFilterClampsPage(t *testing.T) {
	// Filtering shrinks the list below the requested page: the page
	// clamps to the last one rather than showing nothing.
	p := Apply(rows(12), func(r row) bool { return r.Cat == 1 }, byName, Asc, 5, 5)
	if p.Total != 6 || p.Pages != 2 || p.Page != 2 {
		t.Fatalf("page = %+v, want page 2 of 2 with 6 items", p)
	}
	if len(p.Items) != 1 || p.Items[0].Name != "l" {
		t.Errorf("items = %+v", p.Items)
	}
}

func TestApplyEmpty(t *testing.T) {
	p := Apply(rows(3), func(row) bool { return false }, nil, Asc, 1, 10)
	if !p.Empty || p.Total != 0 || p.Pages != 1 || p.Page != 1 {
		t.Errorf("page = %+v, want empty single page", p)
	}
	if p.From != 0 || p.To != 0 || len(p.Items) != 0 {
		t.Errorf("From/To/Items = %d/%d/%v", p.From, p.To, p.Items)
	}
	if p.HasPrev() || p.HasNext() {
		t.Error("empty page claims neighbours")
	}
}

func TestPageNavigation(t *testing.T) {
	p := Apply(rows(25), nil, nil, Asc, 2, 10)
	if !p.HasPrev() || !p.HasNext() || p.Prev() != 1 || p.Next() != 3 {
		t.Errorf("navigation on %+v", p)
	}
	if got := p.Numbers(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("Numbers = %v", got)
	}
	last := Apply(rows(25), nil, nil, Asc, 3, 10)
	if last.HasNext() || last.Next() != 3 {
		t.Errorf("last page next = %d", last.Next())
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		q      string
		fields []string
		want   bool
	}{
		{q: "", fields: []string{"Whey"}, want: true},
		{q: "   ", fields: []string{"Whey"}, want: true},
		{q: "whey", fields: []string{"Premium WHEY Isolate"}, want: true},
		{q: "eats", fields: []string{"Keto Guide", "Healthy Eats"}, want: true},
		{q: "hoodie", fields: []string{"Whey", "Protein"}, want: false},
	}
	for _, tt := range tests {
		if got := Contains(tt.q, tt.fields...); got != tt.want {
			t.Errorf("Contains(%q, %v) = %v, want %v", tt.q, tt.fields, got, tt.want)
		}
	}
}

func TestStateRoundTrip(t *testing.T) {
	def := State{Category: "all", Sort: Sort{"created", Desc}, Page: 1}

	s := State{Query: "whey", Category: "2", Sort: Sort{"name", Asc}, Page: 3}
	got := ParseState(s.Values(), def)
	if got != s {
		t.Errorf("round trip = %+v, want %+v", got, s)
	}

	if got := ParseState(url.Values{}, def); got != def {
		t.Errorf("defaults = %+v, want %+v", got, def)
	}

	bad := url.Values{"page": {"-4"}, "dir": {"sideways"}}
	if got := ParseState(bad, def); got.Page != 1 || got.Sort.Dir != Desc {
		t.Errorf("malformed = %+v", got)
	}
}

func TestStateLinks(t *testing.T) {
	s := State{Query: "bcaa", Sort: Sort{"name", Asc}, Page: 2}

	if got := s.WithSort("name"); got.Sort.Dir != Desc || got.Page != 1 {
		t.Errorf("WithSort same column = %+v", got)
	}
	if got := s.WithPage(1).Href("/admin/products"); got != "/admin/products?dir=asc&q=bcaa&sort=name" {
		t.Errorf("Href = %q", got)
	}
	if got := (State{}).Href("/admin/products"); got != "/admin/products" {
		t.Errorf("Href of zero state = %q", got)
	}
}

func TestIndicator(t *testing.T) {
	s := Sort{"name", Desc}
	if s.Indicator("name") != "↓" || s.Indicator("category") != "" {
		t.Errorf("Indicator = %q / %q", s.Indicator("name"), s.Indicator("category"))
	}
}
