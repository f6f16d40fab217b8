// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// ElementKind identifies a rendered element.
type ElementKind string

// Rendered element kinds.
const (
	ElementPlain     ElementKind = "plain"
	ElementHeading   ElementKind = "heading"
	ElementImage     ElementKind = "image"
	ElementParagraph ElementKind = "paragraph"
)

// Element is one top-level item of rendered output.
type Element struct {
	Kind     ElementKind
	Text     string
	Src      string
	Alt      string
	FontSize string
	Color    string
}

// Empty reports whether the element produces no markup (image without a source).
func (e Element) Empty() bool {
	return e.Kind == ElementImage && e.Src == ""
}

// Output is the rendered form of a document.
type Output struct {
	Elements []Element
}

// Fallback reports whether the output is the plain-text fallback.
func (o Output) Fallback() bool {
	return len(o.Elements) == 1 && o.Elements[0].Kind == ElementPlain
}

// Render projects a document into rendered elements, one per block and in
// block order. An absent or empty document renders fallbackText as a single
// plain paragraph.
func Render(doc Document, fallbackText string) Output {
	if doc.IsEmpty() {
		return Output{Elements: []Element{{Kind: ElementPlain, Text: fallbackText}}}
	}

	elements := make([]Element, 0, len(doc))
	for _, b := range doc {
		elements = append(elements, renderBlock(b))
	}
	return Output{Elements: elements}
}

func renderBlock(b Block) Element {
	switch v := b.(type) {
	case HeadingBlock:
		return Element{Kind: ElementHeading, Text: v.Text, Color: orDefault(v.Color, DefaultColor)}
	case ImageBlock:
		return Element{Kind: ElementImage, Src: strings.TrimSpace(v.URL), Alt: v.Alt}
	case TextBlock:
		return Element{
			Kind:     ElementParagraph,
			Text:     v.Text,
			FontSize: orDefault(v.FontSize, RenderFontSize),
			Color:    orDefault(v.Color, DefaultColor),
		}
	default:
		// Unreachable with the sealed Block set; degrade to an empty paragraph.
		text := ""
		if b != nil {
			text = b.BlockText()
		}
		return Element{Kind: ElementParagraph, Text: text, FontSize: RenderFontSize, Color: DefaultColor}
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

var outputTemplate = template.Must(template.New("content").Parse(
	`{{range .}}{{if eq .Kind "plain"}}<p class="content-plain" style="white-space: pre-wrap">{{.Text}}</p>
{{else if eq .Kind "heading"}}<h2 class="content-heading" style="color: {{.Color}}">{{.Text}}</h2>
{{else if eq .Kind "image"}}{{if .Src}}<figure class="content-image"><img src="{{.Src}}" alt="{{.Alt}}" loading="lazy"></figure>
{{end}}{{else}}<p class="content-text" style="font-size: {{.FontSize}}; color: {{.Color}}; white-space: pre-wrap">{{.Text}}</p>
{{end}}{{end}}`))

// HTML renders the output as escaped HTML.
func (o Output) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := outputTemplate.Execute(&buf, o.Elements); err != nil {
		return "", fmt.Errorf("rendering content: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// PlainText returns the text of all elements separated by blank lines.
func (o Output) PlainText() string {
	parts := make([]string, 0, len(o.Elements))
	for _, e := range o.Elements {
		text := e.Text
		if e.Kind == ElementImage {
			text = e.Alt
		}
		if strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}
