package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wordris/internal/core"
	"github.com/vovakirdan/wordris/internal/games/wordris/words"
	"github.com/vovakirdan/wordris/internal/registry"
)

// ItemKind is what a menu entry starts.
type ItemKind int

const (
	ItemGame ItemKind = iota
	ItemRace
	ItemScores
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Kind        ItemKind
	GameID      string
	Title       string
	Description string
	NeedsPack   bool // Selecting it opens the pack list
}

// MenuModel is the Bubble Tea model for the main menu and pack picker.
type MenuModel struct {
	items      []MenuItem
	packs      []words.Pack
	cursor     int
	packCursor int
	inPacks    bool
	width      int
	height     int
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	quitting   bool
	selected   *MenuItem
	pack       string
}

// NewMenuModel creates a new menu model. The race entry is only offered
// when a matchmaker is available.
func NewMenuModel(cfg core.RuntimeConfig, packs []words.Pack, withRace bool) MenuModel {
	var items []MenuItem
	for _, g := range registry.List() {
		items = append(items, MenuItem{
			Kind:        ItemGame,
			GameID:      g.ID,
			Title:       g.Title,
			Description: g.Description,
			NeedsPack:   strings.HasSuffix(g.ID, "_endless"),
		})
	}
	if withRace {
		items = append(items, MenuItem{
			Kind:        ItemRace,
			Title:       "Race",
			Description: "Race another player on the same letters",
			NeedsPack:   true,
		})
	}
	items = append(items, MenuItem{
		Kind:        ItemScores,
		Title:       "High Scores",
		Description: "Best games and most matched words",
	})

	return MenuModel{
		items:     items,
		packs:     packs,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
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
		if m.inPacks {
			return m.handlePackKey(m.keyMapper.MapKeyToMenuAction(msg))
		}
		return m.handleKey(m.keyMapper.MapKeyToMenuAction(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		if item.NeedsPack && len(m.packs) > 0 {
			m.inPacks = true
			m.packCursor = 0
			return m, nil
		}
		m.selected = &item
		return m, tea.Quit

	case MenuActionScoreboard:
		for _, item := range m.items {
			if item.Kind == ItemScores {
				m.selected = &item
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

func (m MenuModel) handlePackKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.packCursor > 0 {
			m.packCursor--
		}
	case MenuActionDown:
		if m.packCursor < len(m.packs)-1 {
			m.packCursor++
		}
	case MenuActionSelect:
		item := m.items[m.cursor]
		m.selected = &item
		m.pack = m.packs[m.packCursor].ID
		return m, tea.Quit
	case MenuActionBack:
		m.inPacks = false
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inPacks {
		return m.viewPacks()
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("W O R D R I S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Spell the words with falling letters", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = selectedStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(dimStyle.Render(m.items[m.cursor].Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewPacks() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SELECT PACK"), m.width))
	b.WriteString("\n\n")

	for i, p := range m.packs {
		line := fmt.Sprintf("%-14s %d words", p.Name, len(p.Words))
		if i == m.packCursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.packs) > 0 {
		b.WriteString("\n")
		preview := strings.Join(m.packs[m.packCursor].Words, "  ")
		b.WriteString(centerText(dimStyle.Render(preview), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Pack returns the chosen pack ID, empty for items without a pack list.
func (m MenuModel) Pack() string {
	return m.pack
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	PackID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the local menu and returns the selection result. Races
// need a matchmaker, so the local menu doesn't offer them.
func RunMenu(cfg core.RuntimeConfig, packs []words.Pack) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg, packs, false),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	sel := m.Selected()
	switch {
	case m.IsQuitting() || sel == nil:
		result.Quit = true
	case sel.Kind == ItemScores:
		result.WantsScoreboard = true
	default:
		result.GameID = sel.GameID
		result.PackID = m.Pack()
	}
	return result, nil
}
