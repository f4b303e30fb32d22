package tui

import (
	"strings"
	"testing"

	"mailchips/internal/emails"
	"mailchips/internal/form"
	"mailchips/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRune(r rune) tea.KeyMsg {
	if r == ' ' {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		mm, _ := m.Update(msg)
		m = mm.(Model)
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m = send(m, keyRune(r))
	}
	return m
}

func newTestModel(t *testing.T, storeOpts emails.Options, opts Options, seed ...string) Model {
	t.Helper()
	s := emails.New(storeOpts)
	var list []model.Address
	for _, e := range seed {
		list = append(list, model.Address{Email: e})
	}
	s.Initialize(list)
	t.Cleanup(s.Close)
	m := New(emails.NewController(s), opts)
	return send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func emailsOf(m Model) []string { return model.Emails(m.Entries()) }

func TestInput_DelimitersAddAddresses(t *testing.T) {
	m := newTestModel(t, emails.Options{}, Options{})

	m = typeText(m, "iron.man@avengers.net,")
	m = typeText(m, "black.widow ")
	m = typeText(m, "hulk@avengers")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	got := emailsOf(m)
	want := []string{"iron.man@avengers.net", "black.widow", "hulk@avengers"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("entries: got %v want %v", got, want)
	}
	if v := m.input.Value(); v != "" {
		t.Fatalf("expected input cleared after dispatch, got %q", v)
	}
	if inv := m.store.View().All.Entries; !inv[1].Invalid || !inv[2].Invalid || inv[0].Invalid {
		t.Fatalf("unexpected validity flags: %#v", inv)
	}
}

func TestInput_DuplicateMessageShownThenClearedOnTyping(t *testing.T) {
	m := newTestModel(t, emails.Options{PreventDuplicates: true}, Options{}, "a@x.com")

	m = typeText(m, "a@x.com,")
	if len(m.Entries()) != 1 {
		t.Fatalf("expected duplicate to be rejected, got %v", emailsOf(m))
	}
	if !strings.Contains(m.View(), "a@x.com is a duplicate and was not added!") {
		t.Fatalf("expected duplicate message in view:\n%s", m.View())
	}

	m = typeText(m, "b")
	if strings.Contains(m.View(), "is a duplicate") {
		t.Fatalf("expected duplicate message to clear on keystroke")
	}
}

func TestTags_EditSelectedChip(t *testing.T) {
	m := newTestModel(t, emails.Options{}, Options{}, "a@x.com", "b@x.com")

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusTags {
		t.Fatalf("expected tags focus")
	}
	m = send(m, keyRune('l'), tea.KeyMsg{Type: tea.KeyEnter})
	if m.focus != focusInput || !m.ctl.Editing() {
		t.Fatalf("expected edit mode with input focus; focus=%v editing=%v", m.focus, m.ctl.Editing())
	}
	if got := m.input.Value(); got != "b@x.com" {
		t.Fatalf("expected input prefilled with b@x.com, got %q", got)
	}

	m.input.SetValue("")
	m = typeText(m, "not-an-email")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.ctl.Editing() {
		t.Fatalf("expected edit mode to end after dispatch")
	}
	e := m.Entries()
	if len(e) != 2 || e[1].Email != "not-an-email" || !e[1].Invalid {
		t.Fatalf("unexpected entries after edit: %#v", e)
	}
}

func TestTags_EscCancelsEdit(t *testing.T) {
	m := newTestModel(t, emails.Options{}, Options{}, "a@x.com")
	m = send(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEsc})

	if m.ctl.Editing() || m.input.Value() != "" {
		t.Fatalf("expected esc to cancel editing; editing=%v input=%q", m.ctl.Editing(), m.input.Value())
	}
	if got := emailsOf(m); len(got) != 1 || got[0] != "a@x.com" {
		t.Fatalf("expected list unchanged, got %v", got)
	}
}

func TestTags_DeleteSelectedChip(t *testing.T) {
	m := newTestModel(t, emails.Options{}, Options{}, "a@x.com", "b@x.com")
	m = send(m, tea.KeyMsg{Type: tea.KeyTab}, keyRune('x'))

	if got := emailsOf(m); len(got) != 1 || got[0] != "b@x.com" {
		t.Fatalf("expected a@x.com deleted, got %v", got)
	}
	if ev, ok := m.log.last(); !ok || ev.Kind != emails.EventDeleted || ev.Email != "a@x.com" {
		t.Fatalf("expected delete event, got %#v", ev)
	}

	m = send(m, keyRune('x'))
	if len(m.Entries()) != 0 {
		t.Fatalf("expected empty list")
	}
	if m.focus != focusInput {
		t.Fatalf("expected focus to return to input when no chips remain")
	}
}

func TestTags_InvalidContainerSelectionOrder(t *testing.T) {
	m := newTestModel(t, emails.Options{Labels: emails.DefaultLabels()}, Options{ShowInvalidContainer: true}, "bad", "a@x.com")

	view := m.View()
	if !strings.Contains(view, "Valid Email Addresses (1)") || !strings.Contains(view, "Invalid Email Addresses (1)") {
		t.Fatalf("expected both containers in view:\n%s", view)
	}

	// Valid chips come first, so the second chip is the invalid one.
	m = send(m, tea.KeyMsg{Type: tea.KeyTab}, keyRune('l'), keyRune('x'))
	if got := emailsOf(m); len(got) != 1 || got[0] != "a@x.com" {
		t.Fatalf("expected invalid chip deleted, got %v", got)
	}
}

func TestTags_ShowMoreToggle(t *testing.T) {
	m := newTestModel(t, emails.Options{DisplayLimit: 2}, Options{}, "a@x.com", "b@x.com", "c@x.com")

	if !strings.Contains(m.View(), "1 more") {
		t.Fatalf("expected show-more hint:\n%s", m.View())
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyTab}, keyRune('m'))
	if n := len(m.chips()); n != 3 {
		t.Fatalf("expected 3 chips after expanding, got %d", n)
	}
	if !strings.Contains(m.View(), "show less") {
		t.Fatalf("expected show-less hint")
	}
}

func TestDisplayOnly_HidesInputAndBlocksEdit(t *testing.T) {
	m := newTestModel(t, emails.Options{}, Options{DisplayOnly: true}, "a@x.com")

	if m.focus != focusTags {
		t.Fatalf("expected tags focus in display-only mode")
	}
	if strings.Contains(m.View(), glyphPrompt()) {
		t.Fatalf("expected no input line in display-only mode")
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter}, keyRune('i'))
	if m.ctl.Editing() || m.focus != focusTags {
		t.Fatalf("expected edit and input focus to be disabled")
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, emails.Options{}, Options{HelpMarkdown: "# Keys\n\nPress **x** to delete."}, "a@x.com")
	m = send(m, tea.KeyMsg{Type: tea.KeyTab}, keyRune('?'))
	if !m.showHelp || !strings.Contains(m.View(), "Keys") {
		t.Fatalf("expected help overlay:\n%s", m.View())
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Fatalf("expected esc to close help")
	}
}

func TestBoundForm_TUIMutatesHostArray(t *testing.T) {
	arr := form.FromEmails([]string{"a@x.com"}, form.Email)
	s := emails.New(emails.Options{External: arr})
	s.Initialize(nil)
	m := send(New(emails.NewController(s), Options{}), tea.WindowSizeMsg{Width: 80, Height: 20})

	m = typeText(m, "bad,")
	if arr.Len() != 2 || !arr.Invalid(1) {
		t.Fatalf("expected host array to receive invalid address; len=%d", arr.Len())
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyTab}, keyRune('x'))
	if arr.Len() != 1 || arr.At(0).Value() != "bad" {
		t.Fatalf("expected first host control removed, got %v", model.Emails(arr.Value()))
	}

	s.Close()
	if arr.Subscribers() != 0 {
		t.Fatalf("expected subscription released")
	}
}

func TestFlowChips_Wraps(t *testing.T) {
	rows := flowChips([]string{"aaaa", "bbbb", "cccc"}, 9, " ")
	if len(rows) != 2 || rows[0] != "aaaa bbbb" || rows[1] != "cccc" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
	if rows := flowChips(nil, 10, " "); len(rows) != 0 {
		t.Fatalf("expected no rows for no chips, got %#v", rows)
	}
}

func TestInput_CommaAtCharLimitKeepsAddress(t *testing.T) {
	m := newTestModel(t, emails.Options{}, Options{})
	addr := strings.Repeat("a", m.input.CharLimit-len("@x.com")) + "@x.com"

	m = typeText(m, addr)
	m = send(m, keyRune(','))

	got := emailsOf(m)
	if len(got) != 1 || got[0] != addr {
		t.Fatalf("expected the full %d-char address stored, got %v", len(addr), got)
	}
}

func TestTags_EditSecondOfTwoDuplicates(t *testing.T) {
	setGlyphs(glyphSetUnicode)
	m := newTestModel(t, emails.Options{}, Options{}, "a@x.com", "a@x.com")

	m = send(m, tea.KeyMsg{Type: tea.KeyTab}, keyRune('l'), tea.KeyMsg{Type: tea.KeyEnter})
	if c := m.ctl.Cursor(); !c.Active || c.Index != 1 {
		t.Fatalf("expected the second entry under edit, got %+v", c)
	}
	if n := strings.Count(m.View(), glyphDelete()); n != 1 {
		t.Fatalf("expected exactly one chip marked as editing, got %d delete glyphs:\n%s", n, m.View())
	}
	if !strings.Contains(m.View(), "edit #2") {
		t.Fatalf("expected the input row to name the edited entry:\n%s", m.View())
	}

	m.input.SetValue("")
	m = typeText(m, "b@x.com")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := emailsOf(m); strings.Join(got, "|") != "a@x.com|b@x.com" {
		t.Fatalf("expected only the second entry edited, got %v", got)
	}
}
