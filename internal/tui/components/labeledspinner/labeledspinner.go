// Package labeledspinner renders a spinner followed by a label on one line.
package labeledspinner

import (
	"strings"

	"github.com/alkime/stylepost/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model displays a spinner with a label and a muted detail.
// The stage list uses it for the row of the running stage.
type Model struct {
	Spinner spinner.Model
	Label   string
	Detail  string
}

// New creates a new labeled spinner.
func New(s spinner.Spinner, label, detail string) Model {
	sp := spinner.New()
	sp.Spinner = s

	return Model{
		Spinner: sp,
		Label:   label,
		Detail:  detail,
	}
}

// Init returns the initial command for the spinner.
func (ls Model) Init() tea.Cmd {
	return ls.Spinner.Tick
}

// Update handles spinner tick messages.
func (ls Model) Update(teaMsg tea.Msg) (Model, tea.Cmd) {
	if tickMsg, ok := teaMsg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		ls.Spinner, cmd = ls.Spinner.Update(tickMsg)

		return ls, cmd
	}

	return ls, nil
}

// View renders the spinner row.
func (ls Model) View() string {
	return ls.ViewWithDetail(ls.Detail)
}

// ViewWithDetail renders the row with a detail computed at render time.
func (ls Model) ViewWithDetail(detail string) string {
	var sb strings.Builder

	sb.WriteString(ls.Spinner.View())
	sb.WriteString(" ")
	sb.WriteString(style.Title.Render(ls.Label))

	if detail != "" {
		sb.WriteString("  ")
		sb.WriteString(style.Muted.Render(detail))
	}

	return sb.String()
}
