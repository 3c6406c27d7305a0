// Package tui renders live stage progress for CLI pipeline runs.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/alkime/stylepost/internal/pipeline"
	"github.com/alkime/stylepost/internal/tui/components/labeledspinner"
	"github.com/alkime/stylepost/internal/tui/style"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressMsg carries one runner progress event into the program.
type ProgressMsg pipeline.Progress

// DoneMsg ends the program once the run has returned.
type DoneMsg struct {
	Elapsed time.Duration
	Err     error
}

// Progress returns a callback that forwards runner events to send,
// typically (*tea.Program).Send.
func Progress(send func(tea.Msg)) pipeline.ProgressCallback {
	return func(p pipeline.Progress) {
		send(ProgressMsg(p))
	}
}

type stageRow struct {
	name    pipeline.StageName
	status  pipeline.ProgressStatus
	started time.Duration
	elapsed time.Duration
}

// Model is the stage checklist.
type Model struct {
	title   string
	rows    []stageRow
	current int
	percent int

	spinner labeledspinner.Model
	keys    KeyMap
	help    help.Model

	done      bool
	cancelled bool
	elapsed   time.Duration
	err       error
}

// New creates a progress view for the given stages, in run order.
func New(title string, stages []pipeline.StageName) Model {
	rows := make([]stageRow, len(stages))
	for i, name := range stages {
		rows[i] = stageRow{name: name}
	}

	return Model{
		title:   title,
		rows:    rows,
		current: -1,
		spinner: labeledspinner.New(spinner.MiniDot, "", ""),
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles progress, completion, and key messages.
func (m Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && !m.done {
			m.cancelled = true
			return m, tea.Quit
		}

	case ProgressMsg:
		m.apply(pipeline.Progress(msg))
		return m, nil

	case DoneMsg:
		m.done = true
		m.elapsed = msg.Elapsed
		if msg.Err != nil && m.err == nil {
			m.err = msg.Err
		}
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) apply(p pipeline.Progress) {
	i := m.index(p.Stage)
	if i < 0 {
		return
	}

	row := &m.rows[i]
	row.status = p.Status
	m.percent = p.Percent

	switch p.Status {
	case pipeline.StatusStarted:
		row.started = p.Elapsed
		m.current = i
		m.spinner.Label = StageLabel(p.Stage)
	case pipeline.StatusCompleted:
		row.elapsed = p.Elapsed - row.started
	case pipeline.StatusFailed:
		row.elapsed = p.Elapsed - row.started
		m.err = p.Err
	}
}

func (m Model) index(name pipeline.StageName) int {
	for i, row := range m.rows {
		if row.name == name {
			return i
		}
	}
	return -1
}

// Cancelled reports whether the user quit before the run finished.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Err returns the failure shown by the view, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the checklist.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(style.Title.Render(m.title))
	sb.WriteString("\n\n")

	for i, row := range m.rows {
		sb.WriteString("  ")
		sb.WriteString(m.renderRow(i, row))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	switch {
	case m.err != nil:
		sb.WriteString(style.Error.Render("✗ " + m.err.Error()))
	case m.done:
		sb.WriteString(style.Success.Render("✓ Done in " + pipeline.FormatElapsed(m.elapsed)))
	case m.cancelled:
		sb.WriteString(style.Error.Render("Cancelled"))
	default:
		sb.WriteString(style.Progress.Render(fmt.Sprintf("%d%%", m.percent)))
		sb.WriteString("  ")
		sb.WriteString(m.help.View(m.keys))
	}
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) renderRow(i int, row stageRow) string {
	label := StageLabel(row.name)

	switch row.status {
	case pipeline.StatusCompleted:
		return style.Success.Render("✓ "+label) + "  " + style.Muted.Render(pipeline.FormatElapsed(row.elapsed))
	case pipeline.StatusFailed:
		return style.Error.Render("✗ " + label)
	case pipeline.StatusStarted:
		if i == m.current && !m.done && !m.cancelled {
			return m.spinner.ViewWithDetail("running")
		}
	}

	return style.Muted.Render("· " + label)
}

// StageLabel is the human-readable name of a stage.
func StageLabel(name pipeline.StageName) string {
	switch name {
	case pipeline.StageStyle:
		return "Analyzing writing style"
	case pipeline.StageResearch:
		return "Researching topic"
	case pipeline.StageWrite:
		return "Writing draft"
	case pipeline.StageSEO:
		return "Analyzing SEO"
	case pipeline.StageLinks:
		return "Adding internal links"
	case pipeline.StageEdit:
		return "Editing final post"
	default:
		return string(name)
	}
}
