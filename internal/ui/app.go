package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/searchbox/internal/prefs"
	"github.com/five82/searchbox/internal/search"
)

// Layout rows. The dropdown starts directly below the input line.
const (
	inputRow   = 1
	resultsRow = 2
)

const rowIcon = "🔍"

// Options configures the UI.
type Options struct {
	Context   context.Context
	Box       *search.Box
	Events    *Events
	ItemCount int
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	box       *search.Box
	events    *Events
	keys      keyMap
	prefsPath string

	// UI state
	theme    Theme
	input    textinput.Model
	width    int
	height   int
	hover    int // index into the displayed rows, -1 for none
	showHelp bool

	// Data state
	itemCount int
	lastQuery string
	lastErr   error
}

// New creates a new Bubble Tea model. AutoFocus is applied here, which is
// the model's mount point.
func New(opts Options) Model {
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = ThemeNames()[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	events := opts.Events
	if events == nil {
		events = NewEvents()
	}

	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = opts.Box.Options().Placeholder

	m := Model{
		box:       opts.Box,
		events:    events,
		keys:      DefaultKeyMap(),
		prefsPath: prefsPath,
		theme:     GetTheme(themeName),
		input:     in,
		width:     80,
		height:    24,
		hover:     -1,
		itemCount: opts.ItemCount,
	}
	if opts.Box.Options().AutoFocus {
		m.input.Focus()
		opts.Box.Mount()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.events.wait())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case searchedMsg:
		m.lastQuery = msg.query
		m.lastErr = nil
		m.clampHover()
		return m, m.events.wait()

	case searchErrorMsg:
		m.lastErr = msg.err
		return m, m.events.wait()

	case itemsMsg:
		m.itemCount = msg.count
		return m, m.events.wait()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	if rows := m.renderDropdown(); rows != "" {
		b.WriteString(rows)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// handleKey processes keyboard input. Command keys are matched first; every
// other key goes to the text input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.events.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.saveTheme()
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		if m.input.Focused() {
			m.input.Blur()
			m.box.Blur()
			return m, nil
		}
		m.box.Focus()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Clear):
		m.box.Clear()
		m.input.SetValue("")
		m.hover = -1
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.hover > 0 {
			m.hover--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.hover < len(m.box.Displayed())-1 {
			m.hover++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		m.selectRow(m.hover)
		return m, nil
	}

	if !m.input.Focused() {
		return m, nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.hover = -1
		m.box.Input(value)
	}
	return m, cmd
}

// handleMouse moves the hover highlight and selects clicked rows.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	rows := len(m.box.Displayed())
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.hover > 0 {
			m.hover--
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if m.hover < rows-1 {
			m.hover++
		}
		return m, nil
	}

	row := msg.Y - resultsRow
	if row < 0 || row >= rows {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == inputRow && !m.input.Focused() {
			m.box.Focus()
			return m, m.input.Focus()
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		m.hover = row
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.selectRow(row)
		}
	}
	return m, nil
}

// selectRow commits the displayed row at i, if any.
func (m *Model) selectRow(i int) {
	rows := m.box.Displayed()
	if i < 0 || i >= len(rows) {
		return
	}
	item := rows[i]
	m.box.Select(item)
	m.input.SetValue(m.box.DisplayString(item))
	m.input.CursorEnd()
	m.hover = -1
}

func (m *Model) clampHover() {
	if n := len(m.box.Displayed()); m.hover >= n {
		m.hover = n - 1
	}
}

func (m Model) saveTheme() {
	if m.prefsPath == "" {
		return
	}
	p, _ := prefs.Load(m.prefsPath)
	p.Theme = m.theme.Name
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save theme: %v", err)
	}
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := lipgloss.Color(m.theme.Surface)

	left := styles.Logo.Background(bg).Render("searchbox") +
		styles.MutedText.Background(bg).Render(fmt.Sprintf("  %d items", m.itemCount))
	return styles.Header.Width(m.width).Render(left)
}

func (m Model) renderInput() string {
	styles := m.theme.Styles()
	if m.input.Focused() {
		return styles.InputFocused.MaxWidth(m.width).Render(m.input.View())
	}
	return styles.Input.MaxWidth(m.width).Render(m.input.View())
}

// renderDropdown renders one line per displayed result. Nothing is rendered
// when there are no results.
func (m Model) renderDropdown() string {
	snap := m.box.Snapshot()
	if !snap.HasResults() {
		return ""
	}
	styles := m.theme.Styles()
	rows := m.box.Displayed()
	lines := make([]string, len(rows))
	for i, item := range rows {
		style := styles.Row
		if i == m.hover {
			style = styles.Hovered
		}
		lines[i] = style.MaxWidth(m.width).Render(rowIcon + " " + m.box.DisplayString(item))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	var status string
	snap := m.box.Snapshot()
	switch {
	case m.lastErr != nil:
		status = styles.DangerText.Render("error: " + m.lastErr.Error())
	case snap.Query != "" && snap.Stale():
		status = styles.FaintText.Render("searching…")
	case snap.HasResults():
		status = styles.MutedText.Render(fmt.Sprintf("%d of %d results", len(m.box.Displayed()), len(snap.Results)))
	case m.lastQuery != "" && snap.Query == m.lastQuery:
		status = styles.MutedText.Render("no results")
	}
	if status != "" {
		status += styles.FaintText.Render(" · ")
	}
	return status + m.renderShortHelp()
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	m.events.Close()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
