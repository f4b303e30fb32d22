package form

import (
	"testing"

	"mailchips/internal/emails"
	"mailchips/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailValidator(t *testing.T) {
	assert.NoError(t, Email(""))
	assert.NoError(t, Email("iron.man@avengers.net"))
	assert.NoError(t, Email("hulk@avengers"))
	assert.ErrorIs(t, Email("black.widow"), ErrEmail)
	assert.ErrorIs(t, Required("  "), ErrRequired)
}

func TestControl_RevalidatesOnSetValue(t *testing.T) {
	c := NewControl("black.widow", Required, Email)
	require.True(t, c.Invalid())
	require.ErrorIs(t, c.Err(), ErrEmail)

	c.SetValue("iron.man@avengers.net")
	assert.False(t, c.Invalid())
	assert.NoError(t, c.Err())
}

func TestArray_NotifiesOnEveryMutation(t *testing.T) {
	a := FromEmails([]string{"a@x.com"}, Email)
	var got [][]model.Address
	cancel := a.Subscribe(func(v []model.Address) { got = append(got, v) })

	a.Append("bad")
	require.NoError(t, a.Replace(0, "b@x.com"))
	require.NoError(t, a.RemoveAt(1))

	require.Len(t, got, 3)
	assert.Equal(t, []model.Address{{Email: "a@x.com"}, {Email: "bad", Invalid: true}}, got[0])
	assert.Equal(t, []model.Address{{Email: "b@x.com"}, {Email: "bad", Invalid: true}}, got[1])
	assert.Equal(t, []model.Address{{Email: "b@x.com"}}, got[2])

	cancel()
	assert.Zero(t, a.Subscribers())
	a.Append("c@x.com")
	assert.Len(t, got, 3)
}

func TestArray_IndexErrors(t *testing.T) {
	a := NewArray(Email)
	assert.ErrorIs(t, a.Replace(0, "x"), emails.ErrIndexOutOfRange)
	assert.ErrorIs(t, a.RemoveAt(-1), emails.ErrIndexOutOfRange)
	assert.False(t, a.Invalid(5))
	assert.Nil(t, a.At(0))
}

// The store mirrors the form: the form's own validators decide each entry's
// validity, and the form outlives the store.
func TestArray_BoundStore(t *testing.T) {
	a := FromEmails([]string{"iron.man@avengers.net", "hulk@avengers", "black.widow"}, Required, Email)
	s := emails.New(emails.Options{External: a, PreventDuplicates: true})
	var rec emails.Recorder
	s.OnEvent(rec.Listen)

	got := s.Initialize(nil)
	assert.Equal(t, []model.Address{
		{Email: "iron.man@avengers.net"},
		{Email: "hulk@avengers"},
		{Email: "black.widow", Invalid: true},
	}, got)
	assert.Equal(t, 1, a.Subscribers())

	c := emails.NewController(s)
	require.NoError(t, c.Submit(emails.Comma, "thor@asgard.com,"))
	require.NoError(t, c.Submit(emails.Enter, "thor@asgard.com"))
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, "thor@asgard.com is a duplicate and was not added!", s.DuplicateMessage())

	_, err := c.Select(2)
	require.NoError(t, err)
	require.NoError(t, c.Submit(emails.Space, "natasha@avengers.net "))
	assert.Equal(t, "natasha@avengers.net", a.At(2).Value())
	assert.False(t, a.Invalid(2))

	_, err = c.Delete(0)
	require.NoError(t, err)
	assert.Equal(t, model.Emails(a.Value()), model.Emails(s.Entries()))

	s.Close()
	assert.Zero(t, a.Subscribers())
	assert.Equal(t, 3, a.Len())
}
