package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	scoreboardRows = 100 // Scores loaded per preset
	scoreDateFmt   = "Jan 02 15:04"
)

var (
	scoreTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	presetTabStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	presetOnStyle   = presetTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("130"))
	scoreBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type scoreboardKeys struct {
	Scroll key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Switch, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "k", "j"),
			key.WithHelp("↑/↓", "scroll"),
		),
		Switch: key.NewBinding(
			key.WithKeys("left", "right", "h", "l", "tab", "shift+tab"),
			key.WithHelp("←/→/tab", "board"),
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

// ScoreboardModel lists the best finished games of one preset at a time.
type ScoreboardModel struct {
	presets []t2048.Preset
	cursor  int
	store   *storage.Store
	totals  map[string]*storage.GameStats // Preset id -> totals
	scores  []storage.ScoreEntry
	table   table.Model
	help    help.Model
	keys    scoreboardKeys

	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens on the preset played most recently.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		presets: t2048.Presets,
		store:   store,
		help:    help.New(),
		keys:    newScoreboardKeys(),
		width:   width,
		height:  height,
	}
	m.help.Width = width

	if store != nil {
		if totals, err := store.GetAllGamesStats(); err == nil {
			m.totals = totals
		}
	}
	m.cursor = m.latestPreset()
	m.table = newScoreTable(height)
	m.load()
	return m
}

func (m ScoreboardModel) latestPreset() int {
	latest := 0
	for i, p := range m.presets {
		st, ok := m.totals[p.ID]
		if !ok {
			continue
		}
		if cur, ok := m.totals[m.presets[latest].ID]; !ok || st.LastPlayed.After(cur.LastPlayed) {
			latest = i
		}
	}
	return latest
}

func newScoreTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 9},
			{Title: "Max Tile", Width: 9},
			{Title: "Played", Width: 13},
		}),
		table.WithFocused(true),
		table.WithHeight(scoreTableHeight(height)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("130")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// scoreTableHeight leaves room for the title, preset strip, totals and help.
func scoreTableHeight(screenH int) int {
	return max(screenH-11, 3)
}

// load fetches the top scores of the selected preset.
func (m *ScoreboardModel) load() {
	m.scores = nil
	if m.store != nil {
		if scores, err := m.store.TopScores(m.presets[m.cursor].ID, scoreboardRows); err == nil {
			m.scores = scores
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.MaxTile),
			s.CreatedAt.Local().Format(scoreDateFmt),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// selectPreset moves the selection by delta, wrapping around.
func (m *ScoreboardModel) selectPreset(delta int) {
	n := len(m.presets)
	m.cursor = ((m.cursor+delta)%n + n) % n
	m.load()
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
		case key.Matches(msg, m.keys.Switch):
			switch msg.String() {
			case "left", "h", "shift+tab":
				m.selectPreset(-1)
			default:
				m.selectPreset(1)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(scoreTableHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(scoreTitleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.presetStrip()))
	b.WriteString("\n\n")

	if len(m.scores) == 0 {
		empty := dimStyle.Italic(true).Padding(1, 2).
			Render(fmt.Sprintf("No finished games on %s yet.", m.presets[m.cursor].Title))
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, scoreBoxStyle.Render(empty)))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, scoreBoxStyle.Render(m.table.View())))
	}
	b.WriteString("\n")

	if line := m.totalsLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// presetStrip names every preset with its game count, or only the
// selected one when the strip does not fit.
func (m ScoreboardModel) presetStrip() string {
	tabs := make([]string, len(m.presets))
	plain := 0
	for i, p := range m.presets {
		label := p.Name
		if st, ok := m.totals[p.ID]; ok {
			label += " " + strconv.Itoa(st.GamesCount)
		}
		plain += len(label) + 3
		if i == m.cursor {
			tabs[i] = presetOnStyle.Render(label)
		} else {
			tabs[i] = presetTabStyle.Render(label)
		}
	}
	if plain > m.width-4 {
		return fmt.Sprintf("< %s >", m.presets[m.cursor].Title)
	}
	return strings.Join(tabs, " ")
}

// totalsLine summarizes every recorded game of the selected preset.
func (m ScoreboardModel) totalsLine() string {
	st, ok := m.totals[m.presets[m.cursor].ID]
	if !ok || st.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%s  |  %d games  |  best tile %d  |  average %.0f  |  last %s",
		m.presets[m.cursor].Title, st.GamesCount, st.BestTile, st.AvgScore,
		st.LastPlayed.Local().Format(scoreDateFmt))
}

// Selected returns the preset whose scores are shown.
func (m ScoreboardModel) Selected() t2048.Preset {
	return m.presets[m.cursor]
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
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
