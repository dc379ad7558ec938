// Package tui provides a Bubble Tea terminal user interface for csv-image-downloader.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/handiism/csv-image-downloader/internal/config"
	"github.com/handiism/csv-image-downloader/internal/download"
	ioutils "github.com/handiism/csv-image-downloader/internal/io"
	"github.com/handiism/csv-image-downloader/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxShownFailures is how many failure lines the running view keeps.
const maxShownFailures = 10

// State represents the current UI state.
type State int

const (
	StateSource State = iota
	StateDestination
	StateSelect
	StateRunning
	StateComplete
	StateError
)

// columnChoice is one CSV column in the selection list.
type columnChoice struct {
	Name     string
	Template string
	Selected bool
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state       State
	sourceInput textinput.Model
	destInput   textinput.Model
	tmplInput   textinput.Model
	spinner     spinner.Model
	progress    progress.Model
	table       table.Model
	settings    *config.Settings
	logger      logrus.FieldLogger

	// Column selection
	preview *model.Preview
	columns []columnChoice
	cursor  int
	editing bool
	warning string
	loading bool

	// Run progress
	events    <-chan download.Event
	processed int
	total     int
	failures  []string
	failed    int
	runDone   bool
	drained   bool
	result    model.RunResult
	logPath   string
	err       error

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	src := textinput.New()
	src.Placeholder = "products.csv"
	src.Focus()
	src.CharLimit = 500
	src.Width = 60

	dst := textinput.New()
	dst.Placeholder = "images"
	dst.CharLimit = 500
	dst.Width = 60

	tmpl := textinput.New()
	tmpl.Placeholder = "{produkt_ean}-1"
	tmpl.CharLimit = 200
	tmpl.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	// The TUI owns the terminal, diagnostics would corrupt the screen.
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return Model{
		state:       StateSource,
		sourceInput: src,
		destInput:   dst,
		tmplInput:   tmpl,
		spinner:     sp,
		progress:    prog,
		settings:    settings,
		logger:      logger,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// PreviewMsg is sent when the CSV preview has been read.
	PreviewMsg struct {
		Preview *model.Preview
		Err     error
	}

	// EventMsg carries one observer event from the running pipeline.
	EventMsg struct {
		Event download.Event
	}

	// EventsClosedMsg is sent once the observer channel has been drained.
	EventsClosedMsg struct{}

	// RunDoneMsg is sent when the pipeline returns.
	RunDoneMsg struct {
		Result model.RunResult
		Err    error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case PreviewMsg:
		m.loading = false
		if msg.Err != nil {
			m.warning = fmt.Sprintf("Cannot read %s: %v", m.sourceInput.Value(), msg.Err)
			return m, nil
		}
		m.setPreview(msg.Preview)
		m.warning = ""
		m.state = StateDestination
		m.sourceInput.Blur()
		m.destInput.Focus()
		return m, textinput.Blink

	case EventMsg:
		m.applyEvent(msg.Event)
		cmds = append(cmds, waitForEvent(m.events))

	case EventsClosedMsg:
		m.drained = true
		m.finishRun()

	case RunDoneMsg:
		m.runDone = true
		m.result = msg.Result
		m.err = msg.Err
		m.finishRun()
	}

	switch m.state {
	case StateSource:
		var cmd tea.Cmd
		m.sourceInput, cmd = m.sourceInput.Update(msg)
		cmds = append(cmds, cmd)
	case StateDestination:
		var cmd tea.Cmd
		m.destInput, cmd = m.destInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.state {
	case StateSource:
		switch key {
		case "esc":
			return m, tea.Quit
		case "enter":
			path := strings.TrimSpace(m.sourceInput.Value())
			if path == "" {
				m.warning = "Choose a CSV file"
				return m, nil
			}
			m.loading = true
			return m, tea.Batch(loadPreview(path, m.settings.PreviewRows), m.spinner.Tick)
		}
		var cmd tea.Cmd
		m.sourceInput, cmd = m.sourceInput.Update(msg)
		return m, cmd

	case StateDestination:
		switch key {
		case "esc":
			m.state = StateSource
			m.destInput.Blur()
			m.sourceInput.Focus()
			return m, textinput.Blink
		case "enter":
			if strings.TrimSpace(m.destInput.Value()) == "" {
				m.warning = "Choose a destination folder"
				return m, nil
			}
			m.warning = ""
			m.state = StateSelect
			m.destInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.destInput, cmd = m.destInput.Update(msg)
		return m, cmd

	case StateSelect:
		if m.editing {
			return m.handleTemplateKey(msg)
		}
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.columns)-1 {
				m.cursor++
			}
		case " ", "space":
			if len(m.columns) > 0 {
				m.columns[m.cursor].Selected = !m.columns[m.cursor].Selected
				m.warning = ""
			}
		case "e":
			if len(m.columns) > 0 {
				m.editing = true
				m.tmplInput.SetValue(m.columns[m.cursor].Template)
				m.tmplInput.CursorEnd()
				m.tmplInput.Focus()
				return m, textinput.Blink
			}
		case "esc":
			m.state = StateDestination
			m.destInput.Focus()
			return m, textinput.Blink
		case "enter":
			columns, templates := m.selection()
			if len(columns) == 0 {
				m.warning = "Select at least one image column"
				return m, nil
			}
			return m.startRun(columns, templates)
		}
		return m, nil

	case StateComplete, StateError:
		switch key {
		case "q":
			return m, tea.Quit
		case "r":
			fresh := NewModel(m.settings)
			fresh.width, fresh.height = m.width, m.height
			fresh.progress.Width = m.progress.Width
			return fresh, tea.Batch(textinput.Blink, fresh.spinner.Tick)
		}
	}

	return m, nil
}

func (m Model) handleTemplateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if v := strings.TrimSpace(m.tmplInput.Value()); v != "" {
			m.columns[m.cursor].Template = v
		}
		m.editing = false
		m.tmplInput.Blur()
		return m, nil
	case "esc":
		m.editing = false
		m.tmplInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.tmplInput, cmd = m.tmplInput.Update(msg)
	return m, cmd
}

// setPreview builds the preview table and the column list with the
// default selection applied.
func (m *Model) setPreview(p *model.Preview) {
	m.preview = p

	selected := make(map[string]bool)
	defaults, _ := m.settings.DefaultSelection(p.Header)
	for _, col := range defaults {
		selected[col] = true
	}

	m.columns = make([]columnChoice, len(p.Header))
	cols := make([]table.Column, len(p.Header))
	for i, name := range p.Header {
		m.columns[i] = columnChoice{
			Name:     name,
			Template: m.settings.SelectionTemplateFor(i),
			Selected: selected[name],
		}
		width := len(name)
		if width < 8 {
			width = 8
		}
		if width > 20 {
			width = 20
		}
		cols[i] = table.Column{Title: name, Width: width}
	}

	rows := make([]table.Row, len(p.Records))
	for i, record := range p.Records {
		row := make(table.Row, len(p.Header))
		copy(row, record)
		rows[i] = row
	}

	m.table = table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	m.cursor = 0
}

func (m Model) selection() (columns, templates []string) {
	for _, c := range m.columns {
		if c.Selected {
			columns = append(columns, c.Name)
			templates = append(templates, c.Template)
		}
	}
	return columns, templates
}

func (m Model) startRun(columns, templates []string) (tea.Model, tea.Cmd) {
	dest := strings.TrimSpace(m.destInput.Value())
	params := download.Params{
		SourcePath: strings.TrimSpace(m.sourceInput.Value()),
		DestDir:    dest,
		LogPath:    m.settings.LogPath(dest),
		Columns:    columns,
		Templates:  templates,
	}

	obs := download.NewChannelObserver(16)
	manager := download.NewManager(m.settings, obs, m.logger)

	m.state = StateRunning
	m.warning = ""
	m.events = obs.Events()
	m.logPath = params.LogPath
	m.processed, m.total, m.failed = 0, 0, 0
	m.failures = nil
	m.runDone, m.drained = false, false

	run := func() tea.Msg {
		defer obs.Close()
		result, err := manager.Run(context.Background(), params)
		return RunDoneMsg{Result: result, Err: err}
	}

	return m, tea.Batch(run, waitForEvent(m.events), m.spinner.Tick)
}

func (m *Model) applyEvent(ev download.Event) {
	switch ev.Type {
	case download.EventProgress:
		m.processed = ev.Processed
		m.total = ev.Total
	case download.EventFailure:
		m.failed++
		m.failures = append(m.failures, ev.Failure.Message)
		if len(m.failures) > maxShownFailures {
			m.failures = m.failures[len(m.failures)-maxShownFailures:]
		}
	}
}

// finishRun leaves the running state once the pipeline has returned and
// every event it emitted has been applied.
func (m *Model) finishRun() {
	if !m.runDone || !m.drained {
		return
	}
	if m.err != nil {
		m.state = StateError
		return
	}
	m.state = StateComplete
}

func loadPreview(path string, rows int) tea.Cmd {
	return func() tea.Msg {
		p, err := ioutils.ReadPreview(path, rows)
		return PreviewMsg{Preview: p, Err: err}
	}
}

func waitForEvent(events <-chan download.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return EventsClosedMsg{}
		}
		return EventMsg{Event: ev}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("CSV Image Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download product images listed in a CSV file"))
	b.WriteString("\n\n")

	switch m.state {
	case StateSource:
		b.WriteString(m.viewSource())
	case StateDestination:
		b.WriteString(m.viewDestination())
	case StateSelect:
		b.WriteString(m.viewSelect())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	if m.warning != "" {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("! " + m.warning))
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewSource() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("CSV file:"))
	b.WriteString("\n\n")
	b.WriteString(m.sourceInput.View())
	b.WriteString("\n")
	if m.loading {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(infoStyle.Render("Reading preview..."))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewDestination() string {
	var b strings.Builder

	b.WriteString(dimStyle.Render(fmt.Sprintf("CSV file: %s", m.sourceInput.Value())))
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("Destination folder:"))
	b.WriteString("\n\n")
	b.WriteString(m.destInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Failures are appended to <destination>/%s", m.settings.LogFileName)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewSelect() string {
	var b strings.Builder

	if m.preview != nil && len(m.preview.Records) > 0 {
		b.WriteString(infoStyle.Render(fmt.Sprintf("Preview (first %d rows):", len(m.preview.Records))))
		b.WriteString("\n")
		b.WriteString(m.table.View())
		b.WriteString("\n\n")
	}

	b.WriteString(subtitleStyle.Render("Image columns:"))
	b.WriteString("\n")
	for i, c := range m.columns {
		check := "[ ]"
		if c.Selected {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s", check, c.Name)
		if c.Selected {
			line += dimStyle.Render("  → " + c.Template)
		}
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("› ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf("Template for %s:", m.columns[m.cursor].Name)))
		b.WriteString("\n")
		b.WriteString(m.tmplInput.View())
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	var percent float64
	if m.total > 0 {
		percent = float64(m.processed) / float64(m.total)
	}

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Downloading..."))
	b.WriteString("\n\n")
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Processed: %d / %d | Errors: %d", m.processed, m.total, m.failed)))
	b.WriteString("\n\n")

	b.WriteString(m.renderFailures())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"Download Complete!\n\n"+
			"Downloaded: %d images\n"+
			"Errors: %d\n"+
			"Size: %.2f MB\n"+
			"Log: %s",
		m.result.Downloaded,
		m.result.Failed,
		float64(m.result.Bytes)/1024/1024,
		m.logPath,
	))
	b.WriteString(box)
	b.WriteString("\n")
	if m.failed == 0 {
		b.WriteString(successStyle.Render("✓ No errors"))
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
		b.WriteString(m.renderFailures())
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderFailures() string {
	var b strings.Builder

	for _, msg := range m.failures {
		b.WriteString(errorStyle.Render("✗ " + msg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateSource:
		return "enter: preview • esc: quit"
	case StateDestination:
		return "enter: continue • esc: back"
	case StateSelect:
		if m.editing {
			return "enter: save template • esc: cancel"
		}
		return "space: toggle • ↑/↓: move • e: edit template • enter: start • esc: back"
	case StateRunning:
		return "ctrl+c: quit"
	case StateComplete, StateError:
		return "r: new download • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
