// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/olegiv/ngl-guild/internal/content"
)

// Blog categories.
const (
	CategoryBuild      = "Build"
	CategoryLeveling   = "Leveling"
	CategoryPvP        = "PvP"
	CategoryPvE        = "PvE"
	CategoryGuide      = "Guide"
	CategoryNews       = "News"
	CategoryEvent      = "Event"
	CategoryDiscussion = "Discussion"
)

// DefaultCategory is used for posts saved without a category.
const DefaultCategory = CategoryGuide

// Categories lists every blog category in display order.
var Categories = []string{
	CategoryBuild, CategoryLeveling, CategoryPvP, CategoryPvE,
	CategoryGuide, CategoryNews, CategoryEvent, CategoryDiscussion,
}

// ValidCategory reports whether c is a known blog category.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Post is a blog post. Body is the structured document; Content is the
// plain-text fallback shown when Body is absent or empty.
type Post struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Content    string           `json:"content"`
	Category   string           `json:"category"`
	Body       content.Document `json:"content_json"`
	ImageURL   string           `json:"image_url"`
	YoutubeURL string           `json:"youtube_url"`
	Published  bool             `json:"published"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// HasBody reports whether the post carries a non-empty block document.
func (p *Post) HasBody() bool {
	return !p.Body.IsEmpty()
}

// Excerpt returns the first n runes of the post's plain text.
func (p *Post) Excerpt(n int) string {
	text := content.Render(p.Body, p.Content).PlainText()
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + "…"
}
