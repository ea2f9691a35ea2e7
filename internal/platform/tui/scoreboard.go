package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-crush/internal/registry"
	"github.com/vovakirdan/tui-crush/internal/storage"
)

const (
	scoreRows      = 100 // Runs loaded per mode
	scoreChrome    = 11  // Lines taken by title, mode line, stats, borders and help
	playedColWidth = 14
)

var (
	scoreTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	scoreModeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	scoreDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	scoreBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// scoreKeys are the scoreboard bindings.
type scoreKeys struct {
	Up      key.Binding
	Down    key.Binding
	PrevMod key.Binding
	NextMod key.Binding
	Detail  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func (k scoreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevMod, k.NextMod, k.Detail, k.Back, k.Quit}
}

func (k scoreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevMod, k.NextMod},
		{k.Detail, k.Back, k.Quit},
	}
}

func newScoreKeys() scoreKeys {
	return scoreKeys{
		Up:      key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑", "better")),
		Down:    key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓", "worse")),
		PrevMod: key.NewBinding(key.WithKeys("left", "h", "a", "shift+tab"), key.WithHelp("←", "mode")),
		NextMod: key.NewBinding(key.WithKeys("right", "l", "d", "tab"), key.WithHelp("→/tab", "mode")),
		Detail:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "run info")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel browses saved runs per mode, best first, with a
// summary of every run of the current mode.
type ScoreboardModel struct {
	modes     []registry.GameInfo
	mode      int
	store     *storage.Store
	runs      []storage.ScoreEntry
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      scoreKeys
	width     int
	height    int
	showRun   bool
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over every registered mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	return newScoreboardModel(store, registry.List(), width, height)
}

func newScoreboardModel(store *storage.Store, modes []registry.GameInfo, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  modes,
		store:  store,
		help:   help.New(),
		keys:   newScoreKeys(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

// newTable sizes the runs table to the current window.
func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Moves", Width: 6},
		{Title: "Per move", Width: 8},
	}
	if m.wide() {
		columns = append(columns, table.Column{Title: "Played", Width: playedColWidth})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-scoreChrome, 3)),
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

// wide reports whether the window has room for the Played column.
func (m ScoreboardModel) wide() bool {
	return m.width >= 50
}

// currentMode returns the mode being shown, if any.
func (m ScoreboardModel) currentMode() (registry.GameInfo, bool) {
	if len(m.modes) == 0 {
		return registry.GameInfo{}, false
	}
	return m.modes[m.mode], true
}

// load reads runs and stats for the current mode.
func (m *ScoreboardModel) load() {
	m.runs, m.stats = nil, nil
	mode, ok := m.currentMode()
	if ok && m.store != nil {
		runs, err := m.store.TopScores(mode.ID, scoreRows)
		if err != nil {
			logger.Warn("loading scores", "game", mode.ID, "err", err)
		}
		m.runs = runs

		stats, err := m.store.GetGameStats(mode.ID)
		if err != nil {
			logger.Warn("loading stats", "game", mode.ID, "err", err)
		}
		m.stats = stats
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		row := table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Moves),
			perMove(r.Score, r.Moves),
		}
		if m.wide() {
			row = append(row, r.CreatedAt.Local().Format("Jan 02 15:04"))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func perMove(score, moves int) string {
	if moves == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", float64(score)/float64(moves))
}

// step moves to the neighbouring mode, wrapping at both ends.
func (m *ScoreboardModel) step(delta int) {
	n := len(m.modes)
	if n == 0 {
		return
	}
	m.mode = ((m.mode+delta)%n + n) % n
	m.showRun = false
	m.load()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMod):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMod):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.Detail):
			m.showRun = !m.showRun && len(m.runs) > 0
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.table.MoveUp(1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.table.MoveDown(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(scoreTitleStyle.Render("CANDY CRUSH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.modeLine(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(scoreDimStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n")

	var body string
	if len(m.runs) == 0 {
		body = scoreDimStyle.Italic(true).Padding(1, 2).
			Render("No runs saved for this mode yet.")
	} else {
		body = m.table.View()
	}
	b.WriteString(centerText(scoreBoxStyle.Render(body), m.width))
	b.WriteString("\n")

	if line := m.runLine(); line != "" {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString(scoreDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// modeLine renders "◀ Title ▶" with the mode's position.
func (m ScoreboardModel) modeLine() string {
	mode, ok := m.currentMode()
	if !ok {
		return scoreDimStyle.Render("no modes")
	}
	pos := scoreDimStyle.Render(fmt.Sprintf("%d/%d", m.mode+1, len(m.modes)))
	return fmt.Sprintf("◀ %s ▶  %s", scoreModeStyle.Render(mode.Title), pos)
}

func (m ScoreboardModel) statsLine() string {
	s := m.stats
	if s == nil || s.GamesCount == 0 {
		return "no games played"
	}
	line := fmt.Sprintf("%d games  best %d  avg %.0f  %d moves",
		s.GamesCount, s.HighScore, s.AvgScore, s.TotalMoves)
	if !s.LastPlayed.IsZero() {
		line += "  last " + s.LastPlayed.Local().Format("Jan 02 15:04")
	}
	return line
}

// runLine describes the highlighted run when run info is shown.
func (m ScoreboardModel) runLine() string {
	if !m.showRun {
		return ""
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return ""
	}
	r := m.runs[i]
	return fmt.Sprintf("run %s  %d points in %d moves", r.RunID, r.Score, r.Moves)
}

// IsGoingBack reports whether the player asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// SelectGame switches to the mode with gameID. Unknown ids are ignored.
func (m *ScoreboardModel) SelectGame(gameID string) {
	for i, g := range m.modes {
		if g.ID == gameID {
			m.mode = i
			m.showRun = false
			m.load()
			return
		}
	}
}

// RunScoreboard shows the scoreboard, opened on gameID when set.
// It reports whether the player went back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, gameID string, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)
	if gameID != "" {
		model.SelectGame(gameID)
	}

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
