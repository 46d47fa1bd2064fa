package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/coil/internal/registry"
	"github.com/vovakirdan/coil/internal/storage"
)

const maxRuns = 100 // Runs loaded when a game is opened

// boardView is the screen the run board shows.
type boardView int

const (
	viewTotals boardView = iota // One row of aggregates per game
	viewRuns                    // Runs of one game plus the highlighted run
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardPaneStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	boardErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// RunBoardKeyMap defines the key bindings for the run board.
type RunBoardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunBoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunBoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Open}, {k.Back, k.Quit}}
}

// DefaultRunBoardKeyMap returns default key bindings.
func DefaultRunBoardKeyMap() RunBoardKeyMap {
	return RunBoardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "down")),
		Open: key.NewBinding(key.WithKeys("enter", "right", "l"), key.WithHelp("enter", "open runs")),
		Back: key.NewBinding(key.WithKeys("esc", "b", "left", "h"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// GameTotals is one row of the totals view.
type GameTotals struct {
	GameID string
	Title  string
	Stats  storage.GameStats
}

// RunBoardModel is the Bubble Tea model for the run history screen. It
// opens on per-game totals; Enter drills into the runs of one game.
type RunBoardModel struct {
	store   *storage.Store
	keys    RunBoardKeyMap
	help    help.Model
	view    boardView
	totals  []GameTotals
	overall table.Model
	runs    []storage.RunRecord
	runList table.Model
	open    int // Index into totals of the game whose runs are shown
	width   int
	height  int

	quitting  bool
	goingBack bool // True if user left the totals view (not quit)
}

// NewRunBoardModel creates a new run board model. store may be nil.
func NewRunBoardModel(store *storage.Store, width, height int) RunBoardModel {
	m := RunBoardModel{
		store:  store,
		keys:   DefaultRunBoardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.totals = loadTotals(store)
	m.layout()
	return m
}

// loadTotals returns aggregates for every registered game, followed by
// games that only exist in the history.
func loadTotals(store *storage.Store) []GameTotals {
	var stored map[string]*storage.GameStats
	if store != nil {
		stored, _ = store.GetAllGamesStats()
	}

	var totals []GameTotals
	seen := make(map[string]bool)
	for _, g := range registry.List() {
		t := GameTotals{GameID: g.ID, Title: g.Title, Stats: storage.GameStats{GameID: g.ID}}
		if st := stored[g.ID]; st != nil {
			t.Stats = *st
		}
		totals = append(totals, t)
		seen[g.ID] = true
	}

	var extra []string
	for id := range stored {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		totals = append(totals, GameTotals{GameID: id, Title: id, Stats: *stored[id]})
	}
	return totals
}

func newBoardTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// layout rebuilds both tables for the current size, keeping cursors.
func (m *RunBoardModel) layout() {
	totalsCursor, runCursor := m.overall.Cursor(), m.runList.Cursor()

	m.overall = newBoardTable([]table.Column{
		{Title: "Game", Width: 16},
		{Title: "Runs", Width: 5},
		{Title: "Failed", Width: 6},
		{Title: "Played", Width: 9},
		{Title: "Longest", Width: 9},
		{Title: "Avg UPS", Width: 8},
		{Title: "Clamped", Width: 8},
		{Title: "Last played", Width: 13},
	}, max(m.height-8, 3))
	rows := make([]table.Row, len(m.totals))
	for i, t := range m.totals {
		rows[i] = TotalsRow(t)
	}
	m.overall.SetRows(rows)
	m.overall.SetCursor(totalsCursor)

	// The inspector pane takes about ten rows below the run list.
	m.runList = newBoardTable([]table.Column{
		{Title: "Date", Width: 13},
		{Title: "Time", Width: 9},
		{Title: "UPS", Width: 7},
		{Title: "Frames", Width: 8},
		{Title: "Clamped", Width: 8},
		{Title: "Exit", Width: 6},
	}, max(m.height-18, 3))
	rows = make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = RunRow(r)
	}
	m.runList.SetRows(rows)
	m.runList.SetCursor(runCursor)

	m.help.Width = m.width
}

// TotalsRow formats one game's aggregates for the totals table.
func TotalsRow(t GameTotals) table.Row {
	st := t.Stats
	last := "never"
	if !st.LastPlayed.IsZero() {
		last = st.LastPlayed.Format("Jan 02 15:04")
	}
	return table.Row{
		t.Title,
		fmt.Sprintf("%d", st.RunsCount),
		fmt.Sprintf("%d", st.FailedRuns),
		st.TotalPlayTime.Round(time.Second).String(),
		st.LongestRun.Round(time.Second).String(),
		fmt.Sprintf("%.1f", st.AvgUPS),
		fmt.Sprintf("%d", st.ClampedFrames),
		last,
	}
}

// RunRow formats one run for the run list.
func RunRow(r storage.RunRecord) table.Row {
	exit := r.ExitReason
	if r.Error != "" {
		exit = storage.ExitError
	}
	return table.Row{
		r.CreatedAt.Format("Jan 02 15:04"),
		r.Duration.Round(100 * time.Millisecond).String(),
		fmt.Sprintf("%.1f", r.UpdatesPerSecond()),
		fmt.Sprintf("%d", r.Frames),
		fmt.Sprintf("%d", r.ClampedFrames),
		exit,
	}
}

// openGame switches to the run list of the highlighted game.
func (m *RunBoardModel) openGame() {
	if len(m.totals) == 0 {
		return
	}
	m.open = m.overall.Cursor()
	m.runs = nil
	if m.store != nil {
		if runs, err := m.store.RunsForGame(m.totals[m.open].GameID, maxRuns); err == nil {
			m.runs = runs
		}
	}
	m.runList.SetCursor(0)
	m.layout()
	m.runList.GotoTop()
	m.view = viewRuns
}

// Init initializes the run board model.
func (m RunBoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run board.
func (m RunBoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.view == viewRuns {
				m.view = viewTotals
				return m, nil
			}
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Open):
			if m.view == viewTotals {
				m.openGame()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	if m.view == viewRuns {
		m.runList, cmd = m.runList.Update(msg)
	} else {
		m.overall, cmd = m.overall.Update(msg)
	}
	return m, cmd
}

// View renders the run board.
func (m RunBoardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	if m.view == viewRuns {
		t := m.totals[m.open]
		b.WriteString(centerText(boardTitleStyle.Render("RUNS - "+t.Title), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(m.runsPane(), m.width))
	} else {
		b.WriteString(centerText(boardTitleStyle.Render("RUN HISTORY"), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(boardPaneStyle.Render(m.overall.View()), m.width))
	}

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// runsPane renders the run list above the highlighted run's counters.
func (m RunBoardModel) runsPane() string {
	if len(m.runs) == 0 {
		return boardPaneStyle.Render(boardDimStyle.Italic(true).Padding(1, 4).Render("No runs recorded yet."))
	}
	list := boardPaneStyle.Render(m.runList.View())
	r := m.runs[min(max(m.runList.Cursor(), 0), len(m.runs)-1)]
	return lipgloss.JoinVertical(lipgloss.Left, list, boardPaneStyle.Render(runDetail(r)))
}

// runDetail lists the counters of one run that the table has no room for.
func runDetail(r storage.RunRecord) string {
	field := func(label, value string) string {
		return boardLabelStyle.Render(label) + value
	}
	lines := []string{
		field("Run", r.RunID),
		field("Target", fmt.Sprintf("%d fps", r.TargetFPS)),
		field("Updates", fmt.Sprintf("%d (%.1f per second)", r.Updates, r.UpdatesPerSecond())),
		field("Renders", fmt.Sprintf("%d", r.Renders)),
		field("Events", fmt.Sprintf("%d", r.Events)),
		field("Dropped lag", fmt.Sprintf("%s over %d frames", r.DroppedLag, r.ClampedFrames)),
	}
	if r.Error != "" {
		lines = append(lines, field("Error", boardErrStyle.Render(r.Error)))
	}
	return strings.Join(lines, "\n")
}

// SelectedGame returns the ID of the highlighted or opened game.
func (m RunBoardModel) SelectedGame() string {
	if len(m.totals) == 0 {
		return ""
	}
	if m.view == viewRuns {
		return m.totals[m.open].GameID
	}
	return m.totals[m.overall.Cursor()].GameID
}

// Totals returns the rows of the totals view.
func (m RunBoardModel) Totals() []GameTotals {
	return m.totals
}

// Runs returns the runs of the opened game.
func (m RunBoardModel) Runs() []storage.RunRecord {
	return m.runs
}

// ShowingRuns reports whether a game's run list is open.
func (m RunBoardModel) ShowingRuns() bool {
	return m.view == viewRuns
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunBoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunBoardModel) IsQuitting() bool {
	return m.quitting
}

// ShowRunBoard runs the run history screen.
// Returns true if user wants to go back to menu, false if quitting.
func ShowRunBoard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewRunBoardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunBoardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
