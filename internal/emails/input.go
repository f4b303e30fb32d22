package emails

import (
	"unicode/utf8"

	"mailchips/internal/model"
)

// Delimiter is a keystroke that terminates an address.
type Delimiter int

const (
	NoDelimiter Delimiter = iota
	Comma
	Space
	Enter
)

// char is the character the delimiter leaves in the input, or 0 for Enter.
func (d Delimiter) char() rune {
	switch d {
	case Comma:
		return ','
	case Space:
		return ' '
	default:
		return 0
	}
}

// DelimiterForKey maps a key name (as produced by the terminal event loop)
// to a Delimiter.
func DelimiterForKey(k string) Delimiter {
	switch k {
	case ",":
		return Comma
	case " ", "space":
		return Space
	case "enter":
		return Enter
	default:
		return NoDelimiter
	}
}

// Cursor is the edit-mode cursor. Index is -1 when inactive.
type Cursor struct {
	Active bool
	Index  int
}

var idleCursor = Cursor{Index: -1}

// Controller turns delimiter-terminated input into store mutations.
//
// It is Idle until a tag is selected, then Editing(index) until the next
// delimiter or Cancel.
type Controller struct {
	store  *Store
	cursor Cursor
	buffer string
}

func NewController(s *Store) *Controller {
	c := &Controller{store: s, cursor: idleCursor}
	s.watch(c.reconcile)
	return c
}

func (c *Controller) Store() *Store { return c.store }

func (c *Controller) Cursor() Cursor { return c.cursor }

func (c *Controller) Editing() bool { return c.cursor.Active }

// Buffer is the raw-input text the view should show.
func (c *Controller) Buffer() string { return c.buffer }

// Keystroke records a non-delimiter keystroke into the input.
func (c *Controller) Keystroke(raw string) {
	c.store.ClearDuplicateMessage()
	c.buffer = raw
}

// Submit dispatches raw, which still carries the delimiter typed last, to
// add or edit. A trailing comma or space is stripped from raw when it is the
// delimiter that fired; the input may have dropped it at its length limit.
// The buffer is cleared on every dispatch.
func (c *Controller) Submit(d Delimiter, raw string) error {
	c.store.ClearDuplicateMessage()
	if d == NoDelimiter {
		c.buffer = raw
		return nil
	}
	text := raw
	if r, size := utf8.DecodeLastRuneInString(text); size > 0 && r == d.char() {
		text = text[:len(text)-size]
	}
	c.buffer = ""

	if !c.cursor.Active {
		c.store.Add(text)
		return nil
	}
	idx := c.cursor.Index
	c.cursor = idleCursor
	if text == "" {
		return nil
	}
	return c.store.EditAt(idx, text)
}

// Select enters edit mode for the entry at index i and pre-fills the buffer
// with its email.
func (c *Controller) Select(i int) (string, error) {
	a, ok := c.store.At(i)
	if !ok {
		return "", &IndexError{Op: "select", Index: i, Len: c.store.Len()}
	}
	c.cursor = Cursor{Active: true, Index: i}
	c.buffer = a.Email
	return c.buffer, nil
}

// Cancel leaves edit mode without mutating and clears the buffer.
func (c *Controller) Cancel() {
	c.cursor = idleCursor
	c.buffer = ""
}

// Delete removes the entry at index i, shifting or dropping the edit cursor
// so it keeps pointing at the same entry.
func (c *Controller) Delete(i int) (model.Address, error) {
	editing, buf := c.cursor, c.buffer
	removed, err := c.store.DeleteAt(i)
	if err != nil {
		return removed, err
	}
	switch {
	case !editing.Active:
	case editing.Index == i:
		c.Cancel()
	case editing.Index > i:
		c.cursor = Cursor{Active: true, Index: editing.Index - 1}
		c.buffer = buf
	}
	return removed, nil
}

// reconcile drops an edit cursor that no longer points inside the list,
// which can happen when the host shrinks a bound list.
func (c *Controller) reconcile() {
	if c.cursor.Active && c.cursor.Index >= c.store.Len() {
		c.cursor = idleCursor
		c.buffer = ""
	}
}
