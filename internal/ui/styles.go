package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskdash/internal/todo"
	"github.com/nibzard/taskdash/internal/uistate"
)

type palette struct {
	fg, muted, accent, border, selected lipgloss.Color
	pending, inProgress, completed      lipgloss.Color
	success, danger, warning, info      lipgloss.Color
}

var (
	lightPalette = palette{
		fg:         "#1F2937",
		muted:      "#6B7280",
		accent:     "#4F46E5",
		border:     "#D1D5DB",
		selected:   "#E0E7FF",
		pending:    "#B45309",
		inProgress: "#1D4ED8",
		completed:  "#047857",
		success:    "#047857",
		danger:     "#B91C1C",
		warning:    "#B45309",
		info:       "#1D4ED8",
	}
	darkPalette = palette{
		fg:         "#E5E7EB",
		muted:      "#9CA3AF",
		accent:     "#A5B4FC",
		border:     "#4B5563",
		selected:   "#312E81",
		pending:    "#FBBF24",
		inProgress: "#60A5FA",
		completed:  "#34D399",
		success:    "#34D399",
		danger:     "#F87171",
		warning:    "#FBBF24",
		info:       "#60A5FA",
	}
)

// styles holds every lipgloss style the dashboard renders with. It is
// rebuilt whenever the resolved theme changes.
type styles struct {
	theme uistate.Theme

	Title     lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
	Card      lipgloss.Style
	CardFocus lipgloss.Style
	Row       lipgloss.Style
	RowFocus  lipgloss.Style
	Modal     lipgloss.Style
	Label     lipgloss.Style
	FieldErr  lipgloss.Style

	status map[todo.Status]lipgloss.Style
	toast  map[uistate.Kind]lipgloss.Style
}

func newStyles(theme uistate.Theme) styles {
	p := darkPalette
	if theme == uistate.ThemeLight {
		p = lightPalette
	}
	base := lipgloss.NewStyle().Foreground(p.fg)
	card := base.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(0, 1).
		Width(cardWidth - 2)
	toast := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		PaddingLeft(1)

	return styles{
		theme:     theme,
		Title:     base.Bold(true).Foreground(p.accent),
		Muted:     lipgloss.NewStyle().Foreground(p.muted),
		Accent:    lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(p.danger).Bold(true),
		Card:      card,
		CardFocus: card.BorderForeground(p.accent).Background(p.selected),
		Row:       base.PaddingLeft(1),
		RowFocus:  base.PaddingLeft(1).Background(p.selected).Bold(true),
		Modal: base.
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.accent).
			Padding(1, 2),
		Label:    lipgloss.NewStyle().Foreground(p.muted).Bold(true),
		FieldErr: lipgloss.NewStyle().Foreground(p.danger),
		status: map[todo.Status]lipgloss.Style{
			todo.StatusPending:    lipgloss.NewStyle().Foreground(p.pending),
			todo.StatusInProgress: lipgloss.NewStyle().Foreground(p.inProgress),
			todo.StatusCompleted:  lipgloss.NewStyle().Foreground(p.completed),
		},
		toast: map[uistate.Kind]lipgloss.Style{
			uistate.KindSuccess: toast.BorderForeground(p.success).Foreground(p.success),
			uistate.KindError:   toast.BorderForeground(p.danger).Foreground(p.danger),
			uistate.KindWarning: toast.BorderForeground(p.warning).Foreground(p.warning),
			uistate.KindInfo:    toast.BorderForeground(p.info).Foreground(p.info),
		},
	}
}

func (s styles) Status(st todo.Status) lipgloss.Style {
	return s.status[st]
}

func (s styles) Toast(k uistate.Kind) lipgloss.Style {
	return s.toast[k]
}
