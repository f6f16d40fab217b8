// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds robots.txt and the sitemap of the public site.
package seo

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/ngl-guild/internal/model"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq is the change frequency hint of a URL.
type ChangeFreq string

// Change frequencies used by the portal.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// URL is a single sitemap entry.
type URL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// staticPages are the public pages listed ahead of blog posts.
var staticPages = []struct {
	path     string
	freq     ChangeFreq
	priority string
}{
	{"/", ChangeFreqDaily, "1.0"},
	{"/blog", ChangeFreqDaily, "0.9"},
	{"/players", ChangeFreqDaily, "0.7"},
	{"/register", ChangeFreqMonthly, "0.6"},
	{"/map", ChangeFreqMonthly, "0.5"},
}

// Sitemap lists the public pages and every given post. Callers pass
// published posts only.
func Sitemap(siteURL string, posts []model.Post) ([]byte, error) {
	base := strings.TrimSuffix(siteURL, "/")

	set := urlSet{XMLNS: XMLNamespace, URLs: make([]URL, 0, len(staticPages)+len(posts))}
	for _, p := range staticPages {
		set.URLs = append(set.URLs, URL{Loc: base + p.path, ChangeFreq: p.freq, Priority: p.priority})
	}
	for _, p := range posts {
		u := URL{
			Loc:        base + "/blog/" + p.ID,
			ChangeFreq: ChangeFreqWeekly,
			Priority:   "0.8",
		}
		if !p.UpdatedAt.IsZero() {
			u.LastMod = p.UpdatedAt.UTC().Format(time.RFC3339)
		}
		set.URLs = append(set.URLs, u)
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
