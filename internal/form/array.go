package form

import (
	"slices"

	"mailchips/internal/emails"
	"mailchips/internal/model"
)

type subscriber struct {
	id int
	fn func([]model.Address)
}

// Array is an ordered list of email controls. Every mutation notifies
// subscribers synchronously with the new value.
type Array struct {
	controls   []*Control
	validators []ValidatorFn
	subs       []subscriber
	nextID     int
}

var _ emails.ExternalList = (*Array)(nil)

// NewArray returns an empty array whose appended controls use validators.
func NewArray(validators ...ValidatorFn) *Array {
	return &Array{validators: validators}
}

// FromEmails builds an array with one control per email.
func FromEmails(list []string, validators ...ValidatorFn) *Array {
	a := NewArray(validators...)
	for _, e := range list {
		a.controls = append(a.controls, NewControl(e, validators...))
	}
	return a
}

func (a *Array) Len() int { return len(a.controls) }

// At returns the control at index i, or nil.
func (a *Array) At(i int) *Control {
	if i < 0 || i >= len(a.controls) {
		return nil
	}
	return a.controls[i]
}

// Push appends an existing control.
func (a *Array) Push(c *Control) {
	a.controls = append(a.controls, c)
	a.notify()
}

func (a *Array) Append(email string) {
	a.Push(NewControl(email, a.validators...))
}

func (a *Array) Replace(i int, email string) error {
	if i < 0 || i >= len(a.controls) {
		return &emails.IndexError{Op: "replace", Index: i, Len: len(a.controls)}
	}
	a.controls[i].SetValue(email)
	a.notify()
	return nil
}

func (a *Array) RemoveAt(i int) error {
	if i < 0 || i >= len(a.controls) {
		return &emails.IndexError{Op: "remove", Index: i, Len: len(a.controls)}
	}
	a.controls = slices.Delete(a.controls, i, i+1)
	a.notify()
	return nil
}

// Invalid reports whether the control at i fails validation. Out-of-range
// indexes report false.
func (a *Array) Invalid(i int) bool {
	c := a.At(i)
	return c != nil && c.Invalid()
}

func (a *Array) Value() []model.Address {
	out := make([]model.Address, len(a.controls))
	for i, c := range a.controls {
		out[i] = model.Address{Email: c.Value(), Invalid: c.Invalid()}
	}
	return out
}

func (a *Array) Subscribe(fn func([]model.Address)) (cancel func()) {
	id := a.nextID
	a.nextID++
	a.subs = append(a.subs, subscriber{id: id, fn: fn})
	return func() {
		a.subs = slices.DeleteFunc(a.subs, func(s subscriber) bool { return s.id == id })
	}
}

// Subscribers is the number of live subscriptions.
func (a *Array) Subscribers() int { return len(a.subs) }

func (a *Array) notify() {
	v := a.Value()
	for _, s := range slices.Clone(a.subs) {
		s.fn(v)
	}
}
