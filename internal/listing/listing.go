// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package listing implements the filter, sort and paginate pipeline shared
// by every back office list and the public catalogue pages.
package listing

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is the active sort column and direction.
type Sort struct {
	Column string
	Dir    Direction
}

// Toggle returns the sort after a click on col: the same column flips
// direction, a different column starts ascending.
func (s Sort) Toggle(col string) Sort {
	if s.Column == col {
		if s.Dir == Asc {
			return Sort{Column: col, Dir: Desc}
		}
		return Sort{Column: col, Dir: Asc}
	}
	return Sort{Column: col, Dir: Asc}
}

// Indicator returns the arrow shown next to col in a table header.
func (s Sort) Indicator(col string) string {
	if s.Column != col {
		return ""
	}
	if s.Dir == Desc {
		return "↓"
	}
	return "↑"
}

// Paginate clamps page into [1, pages] for n items at size per page and
// returns both. There is always at least one page.
func Paginate(n, page, size int) (clamped, pages int) {
	if size < 1 {
		size = 1
	}
	pages = (n + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	switch {
	case page < 1:
		page = 1
	case page > pages:
		page = pages
	}
	return page, pages
}

// Page is one page of a filtered and sorted list.
type Page[T any] struct {
	Items []T
	Total int
	Page  int
	Pages int
	// From and To are the 1-based positions shown as "From-To of Total";
	// both are 0 when the list is empty.
	From  int
	To    int
	Empty bool
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool { return p.Page < p.Pages }

// Prev returns the previous page number, clamped.
func (p Page[T]) Prev() int {
	if p.Page > 1 {
		return p.Page - 1
	}
	return 1
}

// Next returns the next page number, clamped.
func (p Page[T]) Next() int {
	if p.Page < p.Pages {
		return p.Page + 1
	}
	return p.Pages
}

// Numbers lists every page number, for pagers.
func (p Page[T]) Numbers() []int {
	out := make([]int, p.Pages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Apply filters items with match (nil keeps all), sorts the survivors with
// less (nil keeps input order) in ascending terms, reverses for Desc, and
// slices out the clamped page. The input slice is not modified.
func Apply[T any](items []T, match func(T) bool, less func(a, b T) bool, dir Direction, page, size int) Page[T] {
	filtered := make([]T, 0, len(items))
	for _, it := range items {
		if match == nil || match(it) {
			filtered = append(filtered, it)
		}
	}

	if less != nil {
		if dir == Desc {
			sort.SliceStable(filtered, func(i, j int) bool { return less(filtered[j], filtered[i]) })
		} else {
			sort.SliceStable(filtered, func(i, j int) bool { return less(filtered[i], filtered[j]) })
		}
	}

	if size < 1 {
		size = 1
	}
	n := len(filtered)
	page, pages := Paginate(n, page, size)
	start := (page - 1) * size
	end := min(start+size, n)

	p := Page[T]{
		Items: filtered[start:end],
		Total: n,
		Page:  page,
		Pages: pages,
		Empty: n == 0,
	}
	if n > 0 {
		p.From = start + 1
		p.To = end
	}
	return p
}

// Contains reports whether any field contains q, case-insensitively. An
// empty or blank q matches everything.
func Contains(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// State is the list state carried in the query string so that links,
// reloads and back navigation reproduce the same view.
type State struct {
	Query    string
	Category string
	Sort     Sort
	Page     int
}

// ParseState reads q, cat, sort, dir and page from v, applying def for
// anything missing or malformed.
func ParseState(v url.Values, def State) State {
	s := def
	if q := v.Get("q"); q != "" {
		s.Query = q
	}
	if c := v.Get("cat"); c != "" {
		s.Category = c
	}
	if col := v.Get("sort"); col != "" {
		s.Sort.Column = col
	}
	switch Direction(v.Get("dir")) {
	case Asc:
		s.Sort.Dir = Asc
	case Desc:
		s.Sort.Dir = Desc
	}
	if p, err := strconv.Atoi(v.Get("page")); err == nil {
		s.Page = p
	}
	if s.Page < 1 {
		s.Page = 1
	}
	if s.Sort.Dir == "" {
		s.Sort.Dir = Asc
	}
	return s
}

// Values encodes s; empty fields are omitted and page 1 is implied.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Query != "" {
		v.Set("q", s.Query)
	}
	if s.Category != "" {
		v.Set("cat", s.Category)
	}
	if s.Sort.Column != "" {
		v.Set("sort", s.Sort.Column)
		v.Set("dir", string(s.Sort.Dir))
	}
	if s.Page > 1 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	return v
}

// WithPage returns a copy of s on page p.
func (s State) WithPage(p int) State {
	s.Page = p
	return s
}

// WithSort returns a copy of s after a header click on col. Sorting
// returns to the first page.
func (s State) WithSort(col string) State {
	s.Sort = s.Sort.Toggle(col)
	s.Page = 1
	return s
}

// Href renders s as a link to path.
func (s State) Href(path string) string {
	q := s.Values().Encode()
	if q == "" {
		return path
	}
	return path + "?" + q
}
