// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts wellness hub article bodies from Markdown into
// HTML using goldmark. Raw HTML in an article passes through unchanged, as
// articles authored in the back office may mix both.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
			highlighting.WithFormatOptions(),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(), // articles may embed raw HTML
	),
)

// ToHTML converts Markdown source into HTML.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return buf.String(), nil
}

// Cache stores rendered fragments by key. cache.FragmentCache satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, html []byte)
}

// Renderer converts Markdown with an optional fragment cache in front.
type Renderer struct {
	cache Cache
}

// NewRenderer creates a renderer. A nil cache renders every call.
func NewRenderer(c Cache) *Renderer {
	return &Renderer{cache: c}
}

// Render returns the HTML for source, consulting the cache first. The key
// is the xxhash of the source, so edited articles always miss.
func (r *Renderer) Render(ctx context.Context, source string) (string, error) {
	if r == nil || r.cache == nil {
		return ToHTML(source)
	}
	key := "md:" + strconv.FormatUint(xxhash.Sum64String(source), 16)
	if b, ok := r.cache.Get(ctx, key); ok {
		return string(b), nil
	}
	out, err := ToHTML(source)
	if err != nil {
		return "", err
	}
	r.cache.Set(ctx, key, []byte(out))
	return out, nil
}

// wordsPerMinute is the reading speed used for read time estimates.
const wordsPerMinute = 200

// EstimateReadTime returns a label such as "5 min read" for source. Short
// texts never report less than one minute.
func EstimateReadTime(source string) string {
	words := len(strings.Fields(source))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
