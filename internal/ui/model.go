package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"groupfold/internal/config"
	"groupfold/internal/groups"
)

// ReadyMarker is rendered in the status line when Options.ShowReadyMarker is
// set, so terminal-driven tests know the first frame is up.
const ReadyMarker = "__READY__"

// chromeLines is the number of lines taken by everything except the list:
// padding, title, status line and help.
const chromeLines = 8

// indicatorLines is reserved for the "↑ N more" and "↓ N more" lines
const indicatorLines = 2

// Options configures the UI model
type Options struct {
	Settings        config.UISettings
	Logger          zerolog.Logger
	ShowReadyMarker bool
}

// Model is the bubbletea model rendering a grouped list source. It is the
// consumer of every group's notifications and the caller of Toggle.
type Model struct {
	source *groups.Source
	views  []*groupView
	log    *notificationLog
	nav    *navigator

	keys   keyMap
	help   help.Model
	styles *Styles
	opts   Options
	logger zerolog.Logger

	width  int
	height int
	status string
}

// NewModel creates a UI model and subscribes it to every group of source
func NewModel(source *groups.Source, opts Options) *Model {
	m := &Model{
		source: source,
		log:    newNotificationLog(),
		nav:    newNavigator(),
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: NewStyles(),
		opts:   opts,
		logger: opts.Logger.With().Str("component", "ui").Logger(),
	}

	for _, g := range source.Groups() {
		m.views = append(m.views, newGroupView(g, m.log))
	}

	return m
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.nav.setHeight(m.listHeight(), len(m.rows()))

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pagerClosedMsg:
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("pager failed")
			m.status = fmt.Sprintf("Pager failed: %v", msg.err)
		}
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.nav.move(-1, len(rows))

	case key.Matches(msg, m.keys.Down):
		m.nav.move(1, len(rows))

	case key.Matches(msg, m.keys.Top):
		m.nav.jump(0, len(rows))

	case key.Matches(msg, m.keys.Bottom):
		m.nav.jump(len(rows)-1, len(rows))

	case key.Matches(msg, m.keys.Toggle):
		if v := m.viewAtCursor(rows); v != nil {
			v.group.Toggle()
			m.status = fmt.Sprintf("Group %s %s", v.group.Title(), v.group.State())
			m.anchorCursor(v)
		}

	case key.Matches(msg, m.keys.ExpandAll):
		v := m.viewAtCursor(rows)
		m.source.ExpandAll()
		m.status = "All groups expanded"
		m.anchorCursor(v)

	case key.Matches(msg, m.keys.CollapseAll):
		v := m.viewAtCursor(rows)
		m.source.CollapseAll()
		m.status = "All groups collapsed"
		m.anchorCursor(v)

	case key.Matches(msg, m.keys.Log):
		return m, showInPager(m.log.String())

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.nav.setHeight(m.listHeight(), len(rows))
	}

	return m, nil
}

// viewAtCursor returns the group owning the row under the cursor. A member
// row belongs to the group it is listed under.
func (m *Model) viewAtCursor(rows []row) *groupView {
	if m.nav.cursor < 0 || m.nav.cursor >= len(rows) {
		return nil
	}
	return rows[m.nav.cursor].view
}

// anchorCursor puts the cursor on the header of v after the rows changed.
// Member rows under the cursor may have disappeared.
func (m *Model) anchorCursor(v *groupView) {
	rows := m.rows()
	if v == nil {
		m.nav.clamp(len(rows))
		return
	}
	m.nav.jump(headerIndex(rows, v), len(rows))
}

func (m *Model) rows() []row {
	return buildRows(m.views)
}

func (m *Model) listHeight() int {
	if m.height == 0 {
		return 0
	}
	height := m.height - chromeLines - indicatorLines
	if m.help.ShowAll {
		height -= 4
	}
	return max(height, 1)
}

// Cursor returns the index of the row under the cursor
func (m *Model) Cursor() int {
	return m.nav.cursor
}

// View renders the UI
func (m *Model) View() string {
	var b strings.Builder

	title := m.styles.Title.Render("groupfold")
	if m.opts.Settings.ShowCounts {
		title = fmt.Sprintf("%s  %s", title, m.styles.Dim.Render(fmt.Sprintf(
			"%d groups · %d visible", m.source.Len(), m.source.VisibleCount())))
	}
	b.WriteString(title)
	b.WriteString("\n")

	rows := m.rows()
	start, end := m.nav.window(len(rows))
	if start > 0 {
		b.WriteString(m.styles.Dim.Render(fmt.Sprintf("  ↑ %d more", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(rows[i], i == m.nav.cursor))
		b.WriteString("\n")
	}
	if end < len(rows) {
		b.WriteString(m.styles.Dim.Render(fmt.Sprintf("  ↓ %d more", len(rows)-end)))
		b.WriteString("\n")
	}

	status := m.status
	if m.opts.ShowReadyMarker {
		status = strings.TrimSpace(status + " " + ReadyMarker)
	}
	if status != "" {
		style := m.styles.Status
		if strings.HasPrefix(status, "Pager failed") {
			style = m.styles.Error
		}
		b.WriteString(style.Render(status))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))

	return m.styles.Main.Render(b.String())
}

func (m *Model) renderRow(r row, selected bool) string {
	var line string
	switch r.kind {
	case headerRow:
		line = m.renderHeader(r.view)
	case memberRow:
		line = m.styles.Member.Render("    " + r.member.Code)
	}

	if selected {
		return m.styles.Cursor.Render("> " + line)
	}
	return "  " + line
}

func (m *Model) renderHeader(v *groupView) string {
	arrow := "▼"
	style := m.styles.Header
	if v.group.Collapsed() {
		arrow = "▶"
		style = m.styles.Collapsed
	}

	line := style.Render(fmt.Sprintf("%s %s (%d)", arrow, v.group.Title(), len(v.group.Members())))
	if m.opts.Settings.ShowNotifications {
		line += "  " + m.styles.Counter.Render(fmt.Sprintf("[resets %d · inserts %d]", v.resets, v.inserts))
	}
	return line
}
