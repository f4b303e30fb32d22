package emails

import (
	"testing"

	"mailchips/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelimiterForKey(t *testing.T) {
	assert.Equal(t, Comma, DelimiterForKey(","))
	assert.Equal(t, Space, DelimiterForKey(" "))
	assert.Equal(t, Space, DelimiterForKey("space"))
	assert.Equal(t, Enter, DelimiterForKey("enter"))
	assert.Equal(t, NoDelimiter, DelimiterForKey("a"))
}

func TestController_SubmitStripsTrailingDelimiter(t *testing.T) {
	tests := []struct {
		name string
		d    Delimiter
		raw  string
		want string
	}{
		{"comma", Comma, "a@x.com,", "a@x.com"},
		{"space", Space, "a@x.com ", "a@x.com"},
		{"enter keeps text", Enter, "a@x.com", "a@x.com"},
		{"comma dropped by the input", Comma, "a@x.com", "a@x.com"},
		{"space dropped by the input", Space, "a@x.com", "a@x.com"},
		{"comma does not strip a space", Comma, "a@x.com ", "a@x.com "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t, Options{})
			c := NewController(s)
			require.NoError(t, c.Submit(tt.d, tt.raw))
			assert.Equal(t, []string{tt.want}, model.Emails(s.Entries()))
			assert.Empty(t, c.Buffer())
		})
	}
}

func TestController_LoneDelimiterAddsNothing(t *testing.T) {
	s, rec := newTestStore(t, Options{})
	c := NewController(s)
	require.NoError(t, c.Submit(Space, " "))
	require.NoError(t, c.Submit(Comma, ""))
	assert.Zero(t, s.Len())
	assert.Empty(t, rec.Events)
}

func TestController_EditCycle(t *testing.T) {
	s, rec := newTestStore(t, Options{}, addrs("a@x.com", false, "b@x.com", false)...)
	c := NewController(s)

	prefill, err := c.Select(1)
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", prefill)
	assert.Equal(t, Cursor{Active: true, Index: 1}, c.Cursor())

	require.NoError(t, c.Submit(Enter, "bee@x.com"))
	assert.Equal(t, []string{"a@x.com", "bee@x.com"}, model.Emails(s.Entries()))
	assert.Equal(t, Cursor{Index: -1}, c.Cursor())
	assert.Empty(t, c.Buffer())
	assert.Equal(t, []EventKind{EventEdited}, rec.Kinds())

	// Back in Idle, the next submission adds.
	require.NoError(t, c.Submit(Comma, "c@x.com,"))
	assert.Equal(t, 3, s.Len())
}

func TestController_EmptyEditCancels(t *testing.T) {
	s, rec := newTestStore(t, Options{}, addrs("a@x.com", false)...)
	c := NewController(s)
	_, err := c.Select(0)
	require.NoError(t, err)

	require.NoError(t, c.Submit(Comma, ","))
	assert.False(t, c.Editing())
	assert.Equal(t, addrs("a@x.com", false), s.Entries())
	assert.Empty(t, rec.Events)
}

func TestController_SelectOutOfRange(t *testing.T) {
	s, _ := newTestStore(t, Options{})
	c := NewController(s)
	_, err := c.Select(0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.False(t, c.Editing())
}

func TestController_DeleteKeepsCursorOnSameEntry(t *testing.T) {
	s, _ := newTestStore(t, Options{}, addrs("a@x.com", false, "b@x.com", false, "c@x.com", false)...)
	c := NewController(s)

	_, err := c.Select(2)
	require.NoError(t, err)
	_, err = c.Delete(0)
	require.NoError(t, err)
	assert.Equal(t, Cursor{Active: true, Index: 1}, c.Cursor())
	assert.Equal(t, "c@x.com", c.Buffer())

	_, err = c.Delete(1)
	require.NoError(t, err)
	assert.False(t, c.Editing())
	assert.Empty(t, c.Buffer())
}

func TestController_HostShrinkCancelsEdit(t *testing.T) {
	ext := newFakeList("a@x.org", "b@x.org")
	s, _ := newTestStore(t, Options{External: ext})
	c := NewController(s)
	_, err := c.Select(1)
	require.NoError(t, err)

	require.NoError(t, ext.RemoveAt(1))
	assert.False(t, c.Editing())
	assert.Equal(t, Cursor{Index: -1}, c.Cursor())
}

func TestController_KeystrokeClearsDuplicateMessage(t *testing.T) {
	s, _ := newTestStore(t, Options{PreventDuplicates: true}, addrs("a@x.com", false)...)
	c := NewController(s)
	require.NoError(t, c.Submit(Enter, "a@x.com"))
	require.NotEmpty(t, s.DuplicateMessage())

	c.Keystroke("b")
	assert.Empty(t, s.DuplicateMessage())
	assert.Equal(t, "b", c.Buffer())
}
