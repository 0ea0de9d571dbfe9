package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// SuccessCard renders a title with a check mark and detail lines inside a
// bordered card.
func (t *Theme) SuccessCard(title string, details ...string) string {
	var b strings.Builder
	b.WriteString(t.Success.Render("✓"))
	b.WriteString(" ")
	b.WriteString(t.Title.Render(title))
	if len(details) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(details, "\n"))
	}
	return t.Card.Render(b.String())
}

// ErrorCard renders a failure title and detail lines inside a bordered card.
func (t *Theme) ErrorCard(title string, details ...string) string {
	var b strings.Builder
	b.WriteString(t.Error.Render("✗"))
	b.WriteString(" ")
	b.WriteString(t.Title.Render(title))
	if len(details) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(details, "\n"))
	}
	return t.Card.Render(b.String())
}

// KeyValue renders "key  value" with a muted key.
func (t *Theme) KeyValue(key, value string) string {
	return t.Muted.Render(key) + "  " + value
}

// RenderMarkdown renders md for the terminal, wrapped at width. With
// NoColor, or when rendering fails, md is returned unchanged.
func (t *Theme) RenderMarkdown(md string, width int) string {
	if t.NoColor {
		return md
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
