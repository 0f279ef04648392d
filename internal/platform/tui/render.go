package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-hacker/internal/core"
)

// Theme maps each cell role to a terminal style.
type Theme map[core.Color]lipgloss.Style

// DefaultTheme returns the 256-colour theme.
func DefaultTheme() Theme {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Theme{
		core.ColorDefault: lipgloss.NewStyle(),
		core.ColorMuted:   fg("240"),
		core.ColorTitle:   fg("6").Bold(true),
		core.ColorStat:    fg("7"),
		core.ColorNotice:  fg("229"),
		core.ColorPlayer:  fg("11").Bold(true),
		core.ColorThreat:  fg("9").Bold(true),
		core.ColorLoot:    fg("10").Bold(true),
		core.ColorShield:  fg("12").Bold(true),
	}
}

var defaultTheme = DefaultTheme()

// Style returns the style for a role, falling back to the default role.
func (t Theme) Style(c core.Color) lipgloss.Style {
	if s, ok := t[c]; ok {
		return s
	}
	return t[core.ColorDefault]
}

// RenderScreen converts a Screen to a styled string with the default theme.
func RenderScreen(s *core.Screen) string {
	return defaultTheme.Render(s)
}

// Render converts a Screen to a styled string. Runs of cells sharing a
// role are styled together to keep escape sequences short.
func (t Theme) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		row := s.Row(y)
		for start := 0; start < len(row); {
			role := row[start].Color
			run.Reset()
			end := start
			for ; end < len(row) && row[end].Color == role; end++ {
				run.WriteRune(row[end].Rune)
			}
			sb.WriteString(t.Style(role).Render(run.String()))
			start = end
		}
	}
	return sb.String()
}
