// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// ArticleCategory is one of the fixed wellness hub labels.
type ArticleCategory string

const (
	ArticleNutrition    ArticleCategory = "Nutrition"
	ArticleWorkouts     ArticleCategory = "Workouts"
	ArticleMentalHealth ArticleCategory = "Mental Health"
	ArticleLifestyle    ArticleCategory = "Lifestyle"
)

// ArticleCategories lists the labels in display order.
var ArticleCategories = []ArticleCategory{
	ArticleNutrition,
	ArticleWorkouts,
	ArticleMentalHealth,
	ArticleLifestyle,
}

// Valid reports whether c is one of the four labels.
func (c ArticleCategory) Valid() bool {
	for _, k := range ArticleCategories {
		if k == c {
			return true
		}
	}
	return false
}

// Article is a wellness hub article. Content is Markdown; raw HTML passes
// through when rendered.
type Article struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Excerpt   string          `json:"excerpt"`
	Content   string          `json:"content"`
	ImageURL  string          `json:"imageUrl"`
	Category  ArticleCategory `json:"category"`
	Author    string          `json:"author"`
	ReadTime  string          `json:"readTime"`
	CreatedAt string          `json:"createdAt,omitempty"`
	Tags      []string        `json:"tags"`
}

// Published returns the parsed creation time, zero when absent.
func (a Article) Published() time.Time {
	t, err := time.Parse(time.RFC3339, a.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ArticleInput is the create/update payload.
type ArticleInput struct {
	Title    string          `json:"title" schema:"title"`
	Excerpt  string          `json:"excerpt" schema:"excerpt"`
	Content  string          `json:"content" schema:"content"`
	ImageURL string          `json:"imageUrl" schema:"image_url"`
	Category ArticleCategory `json:"category" schema:"category" default:"Nutrition"`
	Author   string          `json:"author" schema:"author"`
	ReadTime string          `json:"readTime" schema:"read_time" default:"5 min read"`
	Tags     []string        `json:"tags" schema:"-"`
}

// Input converts an article back into an update payload.
func (a Article) Input() ArticleInput {
	return ArticleInput{
		Title:    a.Title,
		Excerpt:  a.Excerpt,
		Content:  a.Content,
		ImageURL: a.ImageURL,
		Category: a.Category,
		Author:   a.Author,
		ReadTime: a.ReadTime,
		Tags:     append([]string(nil), a.Tags...),
	}
}

// ParseTags splits a comma-separated tag list into a de-duplicated set,
// preserving first-seen order.
func ParseTags(s string) []string {
	seen := make(map[string]bool)
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" || seen[strings.ToLower(tag)] {
			continue
		}
		seen[strings.ToLower(tag)] = true
		tags = append(tags, tag)
	}
	return tags
}

// ArticlePatch is a partial update; nil fields are left unchanged.
type ArticlePatch struct {
	Title    *string          `json:"title,omitempty"`
	Excerpt  *string          `json:"excerpt,omitempty"`
	Content  *string          `json:"content,omitempty"`
	ImageURL *string          `json:"imageUrl,omitempty"`
	Category *ArticleCategory `json:"category,omitempty"`
	Author   *string          `json:"author,omitempty"`
	ReadTime *string          `json:"readTime,omitempty"`
	Tags     []string         `json:"tags,omitempty"`
}

// Patch returns a patch that sets every field of in.
func (in ArticleInput) Patch() ArticlePatch {
	return ArticlePatch{
		Title:    &in.Title,
		Excerpt:  &in.Excerpt,
		Content:  &in.Content,
		ImageURL: &in.ImageURL,
		Category: &in.Category,
		Author:   &in.Author,
		ReadTime: &in.ReadTime,
		Tags:     in.Tags,
	}
}
