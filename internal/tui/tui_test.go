package tui

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/csv-image-downloader/internal/config"
	"github.com/handiism/csv-image-downloader/internal/download"
	"github.com/handiism/csv-image-downloader/internal/model"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func selectState(t *testing.T) Model {
	t.Helper()
	m := NewModel(config.DefaultSettings())
	m.sourceInput.SetValue("products.csv")
	m = update(t, m, PreviewMsg{Preview: &model.Preview{
		Header: []string{"produkt_ean", "zdjecie", "nazwa", "zdjecie_opakowania"},
		Records: [][]string{
			{"590", "http://x/a.png", "Mleko", "http://x/b.png"},
			{"591", "#N/A"},
		},
	}})
	require.Equal(t, StateDestination, m.state)

	m.destInput.SetValue("images")
	m = update(t, m, key("enter"))
	require.Equal(t, StateSelect, m.state)
	return m
}

func TestModel_DefaultSelection(t *testing.T) {
	m := selectState(t)

	cols, tmpls := m.selection()
	assert.Equal(t, []string{"zdjecie", "zdjecie_opakowania"}, cols)
	assert.Equal(t, []string{"{produkt_ean}-2", "{produkt_ean}-4"}, tmpls)
	assert.Contains(t, m.View(), "Mleko")

	// Columns that are not preselected still get a positional template.
	assert.False(t, m.columns[2].Selected)
	assert.Equal(t, "{produkt_ean}-3", m.columns[2].Template)
}

func TestModel_ToggleAndEdit(t *testing.T) {
	m := selectState(t)

	// cursor on produkt_ean -> move to zdjecie and deselect it
	m = update(t, m, key("down"))
	m = update(t, m, key("space"))
	cols, _ := m.selection()
	assert.Equal(t, []string{"zdjecie_opakowania"}, cols)

	// edit the template of nazwa after selecting it
	m = update(t, m, key("j"))
	m = update(t, m, key("space"))
	m = update(t, m, key("e"))
	require.True(t, m.editing)
	m.tmplInput.SetValue("{nazwa}-x")
	m = update(t, m, key("enter"))
	assert.False(t, m.editing)

	cols, tmpls := m.selection()
	assert.Equal(t, []string{"nazwa", "zdjecie_opakowania"}, cols)
	assert.Equal(t, []string{"{nazwa}-x", "{produkt_ean}-4"}, tmpls)
}

func TestModel_EnterWithoutSelectionWarns(t *testing.T) {
	m := selectState(t)
	for i := range m.columns {
		m.columns[i].Selected = false
	}

	m = update(t, m, key("enter"))
	assert.Equal(t, StateSelect, m.state)
	assert.NotEmpty(t, m.warning)
}

func TestModel_PreviewError(t *testing.T) {
	m := NewModel(nil)
	m = update(t, m, PreviewMsg{Err: errors.New("boom")})

	assert.Equal(t, StateSource, m.state)
	assert.Contains(t, m.warning, "boom")
}

func TestModel_RunEvents(t *testing.T) {
	m := NewModel(nil)
	m.state = StateRunning

	for i := 0; i < maxShownFailures+2; i++ {
		m = update(t, m, EventMsg{Event: download.Event{
			Type:    download.EventFailure,
			Failure: model.Failure{Message: fmt.Sprintf("failure %d", i)},
		}})
	}
	m = update(t, m, EventMsg{Event: download.Event{Type: download.EventProgress, Processed: 4, Total: 5}})

	assert.Equal(t, maxShownFailures+2, m.failed)
	assert.Len(t, m.failures, maxShownFailures)
	assert.Equal(t, "failure 2", m.failures[0])
	assert.Contains(t, m.View(), "Processed: 4 / 5")

	// Both the result and the end of the event stream are needed.
	m = update(t, m, RunDoneMsg{Result: model.RunResult{Downloaded: 3, Failed: 12}})
	assert.Equal(t, StateRunning, m.state)
	m = update(t, m, EventsClosedMsg{})
	assert.Equal(t, StateComplete, m.state)
	assert.Contains(t, m.View(), "Downloaded: 3 images")

	m = update(t, m, key("r"))
	assert.Equal(t, StateSource, m.state)
	assert.Zero(t, m.failed)
}

func TestModel_RunSetupError(t *testing.T) {
	m := NewModel(nil)
	m.state = StateRunning

	m = update(t, m, EventsClosedMsg{})
	m = update(t, m, RunDoneMsg{Err: download.ErrNoColumns})

	assert.Equal(t, StateError, m.state)
	assert.Contains(t, m.View(), "no image columns selected")
}
