package tui

import (
	"fmt"
	"strings"

	"mailchips/internal/emails"
	"mailchips/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func chipStyle(a model.Address, selected bool) lipgloss.Style {
	st := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	if a.Invalid {
		st = st.Foreground(colorError)
	}
	if selected {
		st = st.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
		if a.Invalid {
			st = st.Foreground(colorError)
		}
	}
	return st
}

func renderChip(a model.Address, selected, editing bool) string {
	text := a.Email
	if a.Invalid {
		text = glyphInvalid() + " " + text
	}
	if editing {
		text += " " + glyphEllipsis()
	} else {
		text += " " + glyphDelete()
	}
	return chipStyle(a, selected).Render(text)
}

// renderWindow draws one container. offset is the selection index of the
// window's first chip.
func (m Model) renderWindow(w emails.Window, offset int) []string {
	var lines []string
	if w.Label != "" {
		lines = append(lines, styleLabel().Render(fmt.Sprintf("%s (%d)", w.Label, w.Total)))
	}

	editing := m.ctl.Cursor()
	chips := make([]string, 0, len(w.Entries))
	for i, a := range w.Entries {
		selected := m.focus == focusTags && offset+i == m.selected
		isEditing := editing.Active && w.Indexes[i] == editing.Index
		chips = append(chips, renderChip(a, selected, isEditing))
	}
	if len(chips) == 0 {
		lines = append(lines, styleMuted().Render("(none)"))
	} else {
		lines = append(lines, flowChips(chips, m.bodyWidth(), " ")...)
	}

	if w.ShowMore {
		if w.Expanded {
			lines = append(lines, styleMuted().Render("m: show less"))
		} else {
			lines = append(lines, styleMuted().Render(fmt.Sprintf("%s %d more (m: show more)", glyphEllipsis(), w.Hidden())))
		}
	}
	return lines
}

// inputRow is the single-line input under the chips, tagged with what the
// next delimiter will do (add, or edit the Nth entry).
func (m Model) inputRow() string {
	w := max(10, m.bodyWidth())
	mode := "add"
	if c := m.ctl.Cursor(); c.Active {
		mode = fmt.Sprintf("edit #%d", c.Index+1)
	}
	in := strings.NewReplacer("\n", " ", "\r", " ").Replace(m.input.View())
	row := styleLabel().Render(mode) + " " + in
	if xansi.StringWidth(row) > w {
		row = xansi.Truncate(row, w, "")
	}
	return lipgloss.NewStyle().Background(colorInputBg).Width(w).Render(row)
}

func (m Model) bodyWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m Model) View() string {
	if m.showHelp {
		return RenderMarkdown(m.opts.HelpMarkdown, m.bodyWidth()) + "\n\n" +
			styleMuted().Render("?/esc: close help")
	}

	v := m.store.View()
	var lines []string
	if m.opts.ShowInvalidContainer {
		lines = append(lines, m.renderWindow(v.Valid, 0)...)
		lines = append(lines, "")
		lines = append(lines, m.renderWindow(v.Invalid, len(v.Valid.Entries))...)
	} else {
		lines = append(lines, m.renderWindow(v.All, 0)...)
	}

	if !m.opts.DisplayOnly {
		lines = append(lines, "")
		lines = append(lines, m.inputRow())
		if m.ctl.Editing() {
			lines = append(lines, styleMuted().Render("editing: enter/,/space to save, esc to cancel"))
		}
	}

	if msg := m.store.DuplicateMessage(); msg != "" {
		lines = append(lines, styleError().Render(msg))
	}
	if m.status != "" {
		lines = append(lines, styleError().Render(m.status))
	}
	if ev, ok := m.log.last(); ok {
		lines = append(lines, styleMuted().Render(describeEvent(ev)))
	}

	bindings := m.keys.inputHelp()
	if m.focus == focusTags {
		bindings = m.keys.tagsHelp(m.opts.DisplayOnly)
	}
	lines = append(lines, "", m.help.ShortHelpView(bindings))

	return strings.Join(lines, "\n")
}
