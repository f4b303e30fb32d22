package tui

import (
	"fmt"

	"mailchips/internal/emails"
	"mailchips/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type focus int

const (
	focusInput focus = iota
	focusTags
)

const maxEventLog = 5

// Options configures the widget's presentation. List behavior lives in the
// controller's store.
type Options struct {
	ShowInvalidContainer bool
	DisplayOnly          bool
	// HelpMarkdown is rendered in the help overlay.
	HelpMarkdown string
	Theme        string
}

// eventLog is shared between copies of the model; the store appends to it
// synchronously from inside Update.
type eventLog struct {
	events []emails.Event
}

func (l *eventLog) record(ev emails.Event) {
	l.events = append(l.events, ev)
	if len(l.events) > maxEventLog {
		l.events = l.events[len(l.events)-maxEventLog:]
	}
}

func (l *eventLog) last() (emails.Event, bool) {
	if len(l.events) == 0 {
		return emails.Event{}, false
	}
	return l.events[len(l.events)-1], true
}

// Model is the interactive chips widget.
type Model struct {
	ctl   *emails.Controller
	store *emails.Store
	opts  Options

	input textinput.Model
	keys  keyMap
	help  help.Model
	log   *eventLog

	focus    focus
	selected int
	showHelp bool
	status   string

	width  int
	height int
}

func New(ctl *emails.Controller, opts Options) Model {
	in := textinput.New()
	in.Prompt = glyphPrompt()
	in.Placeholder = "name@example.com"
	in.CharLimit = 320

	m := Model{
		ctl:   ctl,
		store: ctl.Store(),
		opts:  opts,
		input: in,
		keys:  defaultKeyMap(),
		help:  help.New(),
		log:   &eventLog{},
		focus: focusInput,
	}
	m.store.OnEvent(m.log.record)
	if opts.DisplayOnly {
		m.focus = focusTags
	} else {
		m.input.Focus()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.opts.DisplayOnly {
		return nil
	}
	return textinput.Blink
}

// Entries returns the current canonical list.
func (m Model) Entries() []model.Address { return m.store.Entries() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-6)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.showHelp {
			if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.QuitTags) {
				m.showHelp = false
			}
			return m, nil
		}
		if m.focus == focusTags {
			return m.updateTags(msg)
		}
		return m.updateInput(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.ctl.Editing() {
			m.ctl.Cancel()
			m.input.SetValue("")
			return m, nil
		}
		m.input.SetValue("")
		m.ctl.Keystroke("")
		return m, nil
	case key.Matches(msg, m.keys.FocusTags):
		if len(m.chips()) > 0 {
			m.focus = focusTags
			m.input.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	raw := m.input.Value()

	d := emails.DelimiterForKey(msg.String())
	if d == emails.NoDelimiter || msg.Paste {
		m.ctl.Keystroke(raw)
		return m, cmd
	}
	if err := m.ctl.Submit(d, raw); err != nil {
		m.status = err.Error()
	}
	m.input.SetValue(m.ctl.Buffer())
	m.clampSelection()
	return m, cmd
}

func (m Model) updateTags(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	chips := m.chips()
	switch {
	case key.Matches(msg, m.keys.QuitTags):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.More):
		e := m.store.Expanded()
		all := !(e.All || e.Valid || e.Invalid)
		m.store.SetExpanded(emails.Expanded{All: all, Valid: all, Invalid: all})
		m.clampSelection()
		return m, nil
	case key.Matches(msg, m.keys.FocusInput), key.Matches(msg, m.keys.Cancel):
		if m.opts.DisplayOnly {
			return m, nil
		}
		m.focus = focusInput
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Prev):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.Next):
		if m.selected < len(chips)-1 {
			m.selected++
		}
		return m, nil
	}

	if len(chips) == 0 {
		return m, nil
	}
	idx := chips[m.selected].index

	switch {
	case key.Matches(msg, m.keys.Edit):
		if m.opts.DisplayOnly {
			return m, nil
		}
		buf, err := m.ctl.Select(idx)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.input.SetValue(buf)
		m.input.CursorEnd()
		m.focus = focusInput
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Delete):
		if _, err := m.ctl.Delete(idx); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.clampSelection()
		if len(m.chips()) == 0 && !m.opts.DisplayOnly {
			m.focus = focusInput
			return m, m.input.Focus()
		}
	}
	return m, nil
}

// chip is an on-screen address and its position in the store.
type chip struct {
	model.Address
	index int
}

func windowChips(out []chip, w emails.Window) []chip {
	for i, a := range w.Entries {
		out = append(out, chip{Address: a, index: w.Indexes[i]})
	}
	return out
}

// chips returns the chips currently on screen, in selection order.
func (m Model) chips() []chip {
	v := m.store.View()
	if m.opts.ShowInvalidContainer {
		out := make([]chip, 0, len(v.Valid.Entries)+len(v.Invalid.Entries))
		out = windowChips(out, v.Valid)
		return windowChips(out, v.Invalid)
	}
	return windowChips(nil, v.All)
}

func (m *Model) clampSelection() {
	n := len(m.chips())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func describeEvent(ev emails.Event) string {
	return fmt.Sprintf("%s: %s", ev.Kind, ev.Email)
}
