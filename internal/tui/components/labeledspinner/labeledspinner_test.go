package labeledspinner_test

import (
	"testing"

	"github.com/alkime/stylepost/internal/tui/components/labeledspinner"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

//nolint:gochecknoinits // recommend for CI by bubbletea folks
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestLabeledSpinner(t *testing.T) {
	m := labeledspinner.New(spinner.Dot, "Researching topic", "running")
	t.Run("initial state", func(t *testing.T) {
		assert.Equal(t, "Researching topic", m.Label)
		assert.Equal(t, "running", m.Detail)
		assert.Equal(t, spinner.Dot, m.Spinner.Spinner)
	})

	v0 := m.View()
	t.Run("view output", func(t *testing.T) {
		assert.Contains(t, v0, "Researching topic")
		assert.Contains(t, v0, "running")
		assert.Contains(t, v0, spinner.Dot.Frames[0])
	})

	t.Run("dynamic detail", func(t *testing.T) {
		v := m.ViewWithDetail("00:00:12")
		assert.Contains(t, v, "00:00:12")
		assert.NotContains(t, v, "running")
	})

	t.Run("check updates", func(t *testing.T) {
		m, _ = m.Update(spinner.TickMsg{})
		assert.Contains(t, m.View(), spinner.Dot.Frames[1])
		m, _ = m.Update(spinner.TickMsg{})
		assert.Contains(t, m.View(), spinner.Dot.Frames[2])
	})
}
