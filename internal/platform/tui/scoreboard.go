package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wordris/internal/core"
	"github.com/vovakirdan/wordris/internal/registry"
	"github.com/vovakirdan/wordris/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the board list sidebar
	sidebarWidth       = 20  // Width of board list sidebar
	maxScores          = 100 // Max scores to load
	maxRaces           = 50  // Max race results to load
	maxTopWords        = 8   // Words listed under the board list
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next board"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// leaderboard is one selectable list: a game mode's scores or the race log.
type leaderboard struct {
	id    string // Game ID; empty for races
	title string
}

func (l leaderboard) races() bool { return l.id == "" }

// ScoreboardModel shows high scores per game mode plus recent races.
type ScoreboardModel struct {
	boards   []leaderboard
	cursor   int
	store    *storage.Store
	scores   []storage.ScoreEntry
	races    []storage.RaceResult
	topWords []storage.WordCount

	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	showSidebar bool
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	var boards []leaderboard
	for _, g := range registry.List() {
		boards = append(boards, leaderboard{id: g.ID, title: g.Title})
	}
	boards = append(boards, leaderboard{title: "Races"})

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		boards:      boards,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	return m
}

func (m ScoreboardModel) current() leaderboard {
	return m.boards[m.cursor]
}

// columns returns the table layout for the selected board.
func (m ScoreboardModel) columns() []table.Column {
	if m.current().races() {
		return []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Pack", Width: 10},
			{Title: "Score", Width: 11},
			{Title: "Result", Width: 8},
			{Title: "Reason", Width: 10},
			{Title: "Time", Width: 6},
		}
	}

	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Words", Width: 6},
		{Title: "Pack", Width: 10},
		{Title: "Date", Width: 14},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	if tableWidth > 60 {
		columns[3].Width = core.Min(tableWidth-48, 16)
	}
	return columns
}

// rebuildTable recreates the table for the current size and board.
func (m *ScoreboardModel) rebuildTable() {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(m.height-8), // Leave room for header, help, and margins
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

	t.SetRows(m.rows())
	m.table = t
}

// load reads the selected board from storage.
func (m *ScoreboardModel) load() {
	m.scores, m.races, m.topWords = nil, nil, nil

	if m.store != nil {
		b := m.current()
		if b.races() {
			if races, err := m.store.RecentRaces(maxRaces); err == nil {
				m.races = races
			}
		} else {
			if scores, err := m.store.TopScores(b.id, maxScores); err == nil {
				m.scores = scores
			}
			if words, err := m.store.TopWords(b.id, maxTopWords); err == nil {
				m.topWords = words
			}
		}
	}
	m.rebuildTable()
}

func (m ScoreboardModel) rows() []table.Row {
	if m.current().races() {
		rows := make([]table.Row, len(m.races))
		for i, r := range m.races {
			rows[i] = table.Row{
				r.CreatedAt.Format("Jan 02 15:04"),
				r.PackID,
				fmt.Sprintf("%d : %d", r.Score1, r.Score2),
				raceOutcome(r),
				r.EndReason,
				r.Duration.Round(time.Second).String(),
			}
		}
		return rows
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Words),
			s.PackID,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// raceOutcome names the winner by seat; sessions carry no stable name.
func raceOutcome(r storage.RaceResult) string {
	switch r.WinnerSession {
	case "":
		return "Draw"
	case r.Player1:
		return "P1 won"
	case r.Player2:
		return "P2 won"
	}
	return "?"
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.cursor = (m.cursor + 1) % len(m.boards)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.cursor = (m.cursor + len(m.boards) - 1) % len(m.boards)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.help.Width = msg.Width
		m.rebuildTable()
		return m, nil
	}

	// Up/Down and the rest go to the table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES - " + m.current().title
	if m.current().races() {
		title = "RECENT RACES"
	}
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// renderWideLayout puts the board list and top words beside the table.
func (m ScoreboardModel) renderWideLayout() string {
	var side strings.Builder
	rule := strings.Repeat("-", sidebarWidth-4)

	side.WriteString("Boards\n" + rule + "\n")
	for i, l := range m.boards {
		name := truncateTitle(l.title, sidebarWidth-6)
		if i == m.cursor {
			side.WriteString(selectedStyle.Render("> " + name))
		} else {
			side.WriteString("  " + name)
		}
		side.WriteString("\n")
	}

	if len(m.topWords) > 0 {
		side.WriteString("\nTop words\n" + rule + "\n")
		for _, w := range m.topWords {
			fmt.Fprintf(&side, "%-10s %4d\n", w.Word, w.Count)
		}
	}

	sidebar := panelStyle.Width(sidebarWidth).Render(side.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", panelStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout shows the selected board name above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	tab := dimStyle.Render(fmt.Sprintf("< %s >", m.current().title))
	return centerText(tab, m.width) + "\n\n" +
		centerText(panelStyle.Render(m.renderTableContent()), m.width)
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	empty := "No scores recorded yet.\nSpell a few words to set a high score!"
	if m.current().races() {
		if len(m.races) > 0 {
			return m.table.View()
		}
		empty = "No races yet.\nPick Race in the menu while a friend is online."
	} else if len(m.scores) > 0 {
		return m.table.View()
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4).
		Render(empty)
}

func truncateTitle(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
