package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bamsammich/hedu/internal/config"
	"github.com/bamsammich/hedu/internal/dump"
)

var _ dump.Style = (*Theme)(nil)

// Catppuccin Mocha palette, overridable from the config file.
const (
	defaultOffset  = "#89b4fa" // blue
	defaultRule    = "#5a6278" // muted
	defaultHex     = "#cdd6f4" // bright
	defaultChars   = "#94e2d5" // teal
	defaultSummary = "#f9e2af" // yellow
)

// Theme colors the fields of a dump with lipgloss.
type Theme struct {
	offset  lipgloss.Style
	rule    lipgloss.Style
	hex     lipgloss.Style
	chars   lipgloss.Style
	summary lipgloss.Style
}

// NewTheme builds a Theme rendering for w. When force is set, colors are
// emitted even if w is not a terminal.
func NewTheme(w io.Writer, cfg config.ThemeConfig, force bool) *Theme {
	r := lipgloss.NewRenderer(w)
	if force {
		r.SetColorProfile(termenv.ANSI256)
	}
	color := func(override *string, def string) lipgloss.Color {
		if override != nil && *override != "" {
			return lipgloss.Color(*override)
		}
		return lipgloss.Color(def)
	}
	return &Theme{
		offset:  r.NewStyle().Foreground(color(cfg.Offset, defaultOffset)),
		rule:    r.NewStyle().Foreground(color(cfg.Rule, defaultRule)),
		hex:     r.NewStyle().Foreground(color(cfg.Hex, defaultHex)),
		chars:   r.NewStyle().Foreground(color(cfg.Chars, defaultChars)),
		summary: r.NewStyle().Foreground(color(cfg.Summary, defaultSummary)).Italic(true),
	}
}

func (t *Theme) Offset(s string) string  { return t.offset.Render(s) }
func (t *Theme) Rule(s string) string    { return t.rule.Render(s) }
func (t *Theme) Hex(s string) string     { return t.hex.Render(s) }
func (t *Theme) Chars(s string) string   { return t.chars.Render(s) }
func (t *Theme) Summary(s string) string { return t.summary.Render(s) }
