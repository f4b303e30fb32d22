package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the widget's bindings. The delimiter keys (comma, space,
// enter) are not listed here: they are interpreted by the address controller.
type keyMap struct {
	FocusTags  key.Binding
	FocusInput key.Binding
	Prev       key.Binding
	Next       key.Binding
	Edit       key.Binding
	Delete     key.Binding
	More       key.Binding
	Cancel     key.Binding
	Help       key.Binding
	Quit       key.Binding
	QuitTags   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		FocusTags: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "tags"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "i"),
			key.WithHelp("tab/i", "input"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "up", "k"),
			key.WithHelp("←/h", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "down", "j"),
			key.WithHelp("→/l", "next"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter/e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete", "backspace"),
			key.WithHelp("x", "delete"),
		),
		More: key.NewBinding(
			key.WithKeys("m", "+"),
			key.WithHelp("m", "more/less"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "done"),
		),
		QuitTags: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "done"),
		),
	}
}

// inputHelp is shown while the text input has focus.
func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(","), key.WithHelp(", ␣ enter", "add")),
		k.FocusTags, k.Cancel, k.Quit,
	}
}

// tagsHelp is shown while the chips have focus.
func (k keyMap) tagsHelp(displayOnly bool) []key.Binding {
	if displayOnly {
		return []key.Binding{k.Prev, k.Next, k.Delete, k.More, k.Help, k.QuitTags}
	}
	return []key.Binding{k.Prev, k.Next, k.Edit, k.Delete, k.More, k.FocusInput, k.Help, k.QuitTags}
}
