package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/coil/internal/config"
	"github.com/vovakirdan/coil/internal/core"
	"github.com/vovakirdan/coil/internal/registry"
	"github.com/vovakirdan/coil/internal/storage"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	LastRun     *storage.RunRecord // nil when never played or no store
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuItemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items     []MenuItem
	presets   []config.Preset
	cursor    int
	preset    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem // Set when user selects a game
	openRuns  bool      // True if user pressed Tab for the run board
}

// NewMenuModel creates a new menu model. store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, preset config.Preset) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	for _, g := range games {
		item := MenuItem{
			GameID:      g.ID,
			Title:       g.Title,
			Description: g.Description,
		}
		if store != nil {
			if runs, err := store.RunsForGame(g.ID, 1); err == nil && len(runs) > 0 {
				item.LastRun = &runs[0]
			}
		}
		items = append(items, item)
	}

	presets := append([]config.Preset{config.PresetDefault}, config.Presets()...)
	presetIdx := 0
	for i, p := range presets {
		if p == preset {
			presetIdx = i
		}
	}

	return MenuModel{
		items:     items,
		presets:   presets,
		preset:    presetIdx,
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
		return m.handleKey(msg)

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
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
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

	case MenuActionPrevPreset:
		m.preset = (m.preset + len(m.presets) - 1) % len(m.presets)

	case MenuActionNextPreset:
		m.preset = (m.preset + 1) % len(m.presets)

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionRuns:
		m.openRuns = true
		return m, tea.Quit // Exit menu to show run board
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  C O I L  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render("Select a game"), m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(menuDimStyle.Render("No games registered"), m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		line := fmt.Sprintf("  %-16s %s", item.Title, item.Description)
		if i == m.cursor {
			line = menuCursor.Render(fmt.Sprintf("> %-16s %s", item.Title, item.Description))
		} else {
			line = menuItemStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	// Last run of the highlighted game
	b.WriteString("\n")
	if len(m.items) > 0 {
		if last := m.items[m.cursor].LastRun; last != nil {
			info := fmt.Sprintf("Last run: %s, %.1f ups, %s",
				last.Duration.Round(time.Millisecond), last.UpdatesPerSecond(), last.CreatedAt.Format("Jan 02 15:04"))
			b.WriteString(centerText(menuDimStyle.Render(info), m.width))
		} else {
			b.WriteString(centerText(menuDimStyle.Render("Never played"), m.width))
		}
		b.WriteString("\n")
	}

	preset := m.Preset()
	name := string(preset)
	if name == "" {
		name = "config"
	}
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Preset: < %s >  %s", name, menuDimStyle.Render(preset.Describe())), m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Left/Right: Preset  |  Enter: Play  |  Tab: Runs  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Preset returns the highlighted runtime preset.
func (m MenuModel) Preset() config.Preset {
	return m.presets[m.preset]
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRuns returns true if user requested the run board.
func (m MenuModel) WantsRuns() bool {
	return m.openRuns
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID    string
	Preset    config.Preset
	Config    core.RuntimeConfig
	WantsRuns bool
	Quit      bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, preset config.Preset) (MenuResult, error) {
	model := NewMenuModel(store, cfg, preset)

	p := tea.NewProgram(
		model,
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

	return m.Result(), nil
}

// Result summarizes the final state of the menu.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{
		Config: m.Config(),
		Preset: m.Preset(),
	}

	switch {
	case m.WantsRuns():
		result.WantsRuns = true
	case m.IsQuitting():
		result.Quit = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}

	return result
}
