package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vburojevic/rlc/internal/caller"
	"github.com/vburojevic/rlc/internal/domain"
	"github.com/vburojevic/rlc/internal/output"
)

// Service is the orchestrator surface the panel drives. Calls can block for
// seconds, so the model always dispatches them from tea commands and never
// from Update itself.
type Service interface {
	Levels() []domain.Level
	NodeNames(ctx context.Context) ([]string, error)
	Loggers(ctx context.Context, node string) ([]caller.LoggerState, error)
	CurrentLevel(scope domain.Scope) (domain.Level, bool)
	SetLevel(ctx context.Context, scope domain.Scope, level domain.Level) (bool, error)
}

const (
	colNodes = iota
	colLoggers
	colLevels
)

var (
	columnStyle  = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("239"))
	focusedStyle = columnStyle.BorderForeground(lipgloss.Color("39"))
)

// Model represents the panel state
type Model struct {
	svc Service

	nodes   []string
	loggers []caller.LoggerState
	levels  []domain.Level

	nodeIdx   int
	loggerIdx int
	levelIdx  int
	focus     int

	spinner spinner.Model
	busy    bool
	status  string
	width   int
	height  int
}

type nodesMsg struct {
	nodes []string
	err   error
}

type loggersMsg struct {
	node    string
	loggers []caller.LoggerState
	err     error
}

type setResultMsg struct {
	scope   domain.Scope
	level   domain.Level
	changed bool
	err     error
}

// New creates a new panel model
func New(svc Service) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		svc:     svc,
		levels:  svc.Levels(),
		spinner: sp,
		status:  "loading nodes...",
		busy:    true,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadNodes())
}

func (m Model) loadNodes() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		nodes, err := svc.NodeNames(context.Background())
		return nodesMsg{nodes: nodes, err: err}
	}
}

func (m Model) loadLoggers(node string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		loggers, err := svc.Loggers(context.Background(), node)
		return loggersMsg{node: node, loggers: loggers, err: err}
	}
}

func (m Model) applyLevel(scope domain.Scope, level domain.Level) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		changed, err := svc.SetLevel(context.Background(), scope, level)
		return setResultMsg{scope: scope, level: level, changed: changed, err: err}
	}
}

// selectedScope is the scope addressed by the node and logger cursors.
func (m Model) selectedScope() (domain.Scope, bool) {
	if m.nodeIdx >= len(m.nodes) {
		return domain.Scope{}, false
	}
	node := m.nodes[m.nodeIdx]
	if m.loggerIdx < len(m.loggers) {
		return domain.LoggerScope(node, m.loggers[m.loggerIdx].Name), true
	}
	return domain.NodeScope(node), true
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case nodesMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "discovery failed: " + msg.err.Error()
			return m, nil
		}
		m.nodes = msg.nodes
		m.nodeIdx = 0
		m.loggers = nil
		m.loggerIdx = 0
		if len(m.nodes) == 0 {
			m.status = "no nodes with logger-level control"
			return m, nil
		}
		m.status = fmt.Sprintf("%d node(s)", len(m.nodes))
		m.busy = true
		return m, m.loadLoggers(m.nodes[0])

	case loggersMsg:
		m.busy = false
		if msg.err != nil {
			m.loggers = nil
			m.status = "loggers query failed: " + msg.err.Error()
			return m, nil
		}
		m.loggers = msg.loggers
		m.loggerIdx = 0
		m.status = fmt.Sprintf("%s: %d logger(s)", msg.node, len(msg.loggers))
		return m, nil

	case setResultMsg:
		m.busy = false
		switch {
		case msg.err != nil:
			m.status = fmt.Sprintf("set %s failed: %s", msg.scope, msg.err)
		case msg.changed:
			m.status = fmt.Sprintf("%s -> %s", msg.scope, msg.level)
		default:
			m.status = fmt.Sprintf("%s already at %s", msg.scope, msg.level)
		}
		// Re-read the node so displayed levels track what was applied.
		if m.nodeIdx < len(m.nodes) {
			m.busy = true
			return m, m.loadLoggers(m.nodes[m.nodeIdx])
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "r":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "refreshing nodes..."
		return m, m.loadNodes()

	case "tab", "right":
		m.focus = (m.focus + 1) % 3
		return m, nil

	case "shift+tab", "left":
		m.focus = (m.focus + 2) % 3
		return m, nil

	case "up":
		return m.moveCursor(-1)

	case "down":
		return m.moveCursor(1)

	case "enter":
		if m.focus != colLevels || m.busy {
			return m, nil
		}
		scope, ok := m.selectedScope()
		if !ok || m.levelIdx >= len(m.levels) {
			return m, nil
		}
		m.busy = true
		level := m.levels[m.levelIdx]
		m.status = fmt.Sprintf("setting %s -> %s...", scope, level)
		return m, m.applyLevel(scope, level)
	}

	return m, nil
}

func (m Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	switch m.focus {
	case colNodes:
		next := clamp(m.nodeIdx+delta, len(m.nodes))
		if next == m.nodeIdx || m.busy {
			return m, nil
		}
		m.nodeIdx = next
		m.busy = true
		return m, m.loadLoggers(m.nodes[m.nodeIdx])
	case colLoggers:
		m.loggerIdx = clamp(m.loggerIdx+delta, len(m.loggers))
	case colLevels:
		m.levelIdx = clamp(m.levelIdx+delta, len(m.levels))
	}
	return m, nil
}

func clamp(idx, length int) int {
	if length == 0 {
		return 0
	}
	if idx < 0 {
		return 0
	}
	if idx >= length {
		return length - 1
	}
	return idx
}

// View renders the panel
func (m Model) View() string {
	title := output.Styles.Title.Render("rlc — logger levels")

	nodeLines := make([]string, 0, len(m.nodes))
	for i, node := range m.nodes {
		nodeLines = append(nodeLines, m.renderRow(node, i == m.nodeIdx, m.focus == colNodes))
	}
	loggerLines := make([]string, 0, len(m.loggers))
	for i, lg := range m.loggers {
		label := fmt.Sprintf("%s  %s", lg.Name, output.LevelStyle(string(lg.Level)).Render(string(lg.Level)))
		loggerLines = append(loggerLines, m.renderRow(label, i == m.loggerIdx, m.focus == colLoggers))
	}
	levelLines := make([]string, 0, len(m.levels))
	for i, level := range m.levels {
		label := output.LevelStyle(string(level)).Render(string(level))
		levelLines = append(levelLines, m.renderRow(label, i == m.levelIdx, m.focus == colLevels))
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderColumn("Nodes", nodeLines, m.focus == colNodes),
		m.renderColumn("Loggers", loggerLines, m.focus == colLoggers),
		m.renderColumn("Levels", levelLines, m.focus == colLevels),
	)

	status := m.status
	if m.busy {
		status = m.spinner.View() + " " + status
	}
	statusBar := output.Styles.StatusBar.Render(status)
	help := output.Styles.Help.Render("tab: switch column  enter: apply level  r: refresh  q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, columns, statusBar, help)
}

func (m Model) renderColumn(name string, lines []string, focused bool) string {
	style := columnStyle
	if focused {
		style = focusedStyle
	}
	body := output.Styles.Header.Render(name)
	for _, line := range lines {
		body += "\n" + line
	}
	if len(lines) == 0 {
		body += "\n" + output.Styles.Help.Render("(empty)")
	}
	return style.Render(body)
}

func (m Model) renderRow(label string, selected, focused bool) string {
	if selected && focused {
		return output.Styles.Selected.Render("> " + label)
	}
	if selected {
		return "> " + label
	}
	return "  " + label
}
