package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles are the text-mode styles. Off a terminal they render plain text.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
}

// NewStyles builds styles bound to w. Colors are disabled unless isTTY.
func NewStyles(w io.Writer, isTTY bool) *Styles {
	lr := lipgloss.NewRenderer(w)
	if !isTTY {
		lr.SetColorProfile(termenv.Ascii)
	}

	green := lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
	red := lipgloss.AdaptiveColor{Light: "160", Dark: "203"}

	return &Styles{
		Header1: lr.NewStyle().Bold(true).Underline(true),
		Header2: lr.NewStyle().Bold(true),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "243"}),
		Success: lr.NewStyle().Foreground(green),
		Warning: lr.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "136", Dark: "221"}),
		Error:   lr.NewStyle().Foreground(red),
		Info:    lr.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "75"}),

		StatusSuccess: lr.NewStyle().Foreground(green).SetString("✓"),
		StatusFailed:  lr.NewStyle().Foreground(red).SetString("✗"),
	}
}

// Styles returns the renderer's styles, creating them on first use.
func (r *Renderer) Styles() *Styles {
	if r.styles == nil {
		r.styles = NewStyles(r.out, r.isTTY)
	}
	return r.styles
}
