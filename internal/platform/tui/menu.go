package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-hacker/internal/core"
	"github.com/vovakirdan/tui-hacker/internal/registry"
)

// MenuItem represents a selectable play mode in the menu.
type MenuItem struct {
	ModeID  string
	Title   string
	Summary string
}

// MenuModel is the Bubble Tea model for the mode picker menu.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	width      int
	height     int
	config     core.RuntimeConfig
	keys       MenuKeyMap
	help       help.Model
	quitting   bool
	selected   *MenuItem // Set when user selects a mode
	openRounds bool      // True if user asked for the rounds view
}

// NewMenuModel creates a new menu model listing every registered mode.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	modes := registry.List()
	items := make([]MenuItem, 0, len(modes))
	for _, g := range modes {
		items = append(items, MenuItem{ModeID: g.ID, Title: g.Title, Summary: g.Summary})
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   h,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case key.Matches(msg, m.keys.Rounds):
		m.openRounds = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  H A C K E R  "), m.width))
	b.WriteString("\n\n")

	subtitle := fmt.Sprintf("Select a mode  (grid %dx%d, collect %d)", m.config.Size, m.config.Size, m.config.Target)
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = selectedStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		summaryStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
		b.WriteString("\n")
		b.WriteString(centerText(summaryStyle.Render(m.items[m.cursor].Summary), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRounds returns true if user requested the rounds view.
func (m MenuModel) WantsRounds() bool {
	return m.openRounds
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}
