package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-hacker/internal/storage"
)

// Rounds view layout constants
const (
	maxRounds     = 100 // Max rounds to load
	roundsChrome  = 9   // Rows taken by title, stats, borders and help
	minTableRows  = 3
	modeColWidth  = 9
	countColWidth = 7
)

// RoundsKeyMap defines the key bindings for the rounds view.
type RoundsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RoundsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RoundsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultRoundsKeyMap returns default key bindings.
func DefaultRoundsKeyMap() RoundsKeyMap {
	return RoundsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "t", "tab"),
			key.WithHelp("esc/t", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RoundsModel shows the rounds played in this session.
// It is embedded by the game and session models rather than run on its own.
type RoundsModel struct {
	store     *storage.Store
	rounds    []storage.Round
	stats     storage.Stats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      RoundsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewRoundsModel creates a rounds view and loads the ledger.
func NewRoundsModel(store *storage.Store, width, height int) RoundsModel {
	m := RoundsModel{
		store:  store,
		keys:   DefaultRoundsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.createTable()
	m.Reload()
	return m
}

// createTable creates a new table sized for the current window.
func (m *RoundsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Mode", Width: modeColWidth},
		{Title: "Result", Width: 10},
		{Title: "Coll", Width: countColWidth},
		{Title: "Dest", Width: countColWidth},
		{Title: "Shots", Width: countColWidth},
		{Title: "Ticks", Width: countColWidth},
		{Title: "Seed", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-roundsChrome, minTableRows)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Reload re-reads rounds and stats from the store.
func (m *RoundsModel) Reload() {
	m.rounds, m.loadErr = nil, nil
	m.stats = storage.Stats{}

	if m.store != nil {
		if m.rounds, m.loadErr = m.store.Rounds(maxRounds); m.loadErr == nil {
			m.stats, m.loadErr = m.store.Stats()
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded rounds.
func (m *RoundsModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		rows[i] = table.Row{
			fmt.Sprintf("%d", len(m.rounds)-i),
			r.Mode,
			string(r.Outcome),
			fmt.Sprintf("%d/%d", r.Collected, r.Target),
			fmt.Sprintf("%d", r.Destroyed),
			fmt.Sprintf("%d", r.Shots),
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.Seed),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Update handles messages for the rounds view.
func (m RoundsModel) Update(msg tea.Msg) (RoundsModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the rounds view.
func (m RoundsModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("ROUNDS THIS SESSION", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.tableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RoundsModel) statsLine() string {
	st := m.stats
	line := fmt.Sprintf("Rounds %d  Won %d  Lost %d  Abandoned %d  Accuracy %.0f%%",
		st.Rounds, st.Wins, st.Losses, st.Abandoned, st.Accuracy()*100)
	if st.BestTicks > 0 {
		line += fmt.Sprintf("  Fastest win %d ticks", st.BestTicks)
	}
	return line
}

// tableContent renders the table, an error, or an empty message.
func (m RoundsModel) tableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load rounds: " + m.loadErr.Error())
	case len(m.rounds) == 0:
		return emptyStyle.Render("No rounds played yet.\nFinish a round to see it here!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to leave the rounds view.
func (m RoundsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RoundsModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
