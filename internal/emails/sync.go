package emails

import "mailchips/internal/model"

// ExternalList is a host-owned address list that acts as the source of truth
// when bound to a Store.
//
// Change notifications must be delivered synchronously from inside the
// mutating call, so the mirrored copy never lags behind the host.
type ExternalList interface {
	// Value returns the current addresses.
	Value() []model.Address
	// Invalid reports the host's own validity state for index i.
	Invalid(i int) bool
	// Subscribe registers fn for value changes and returns a func that
	// releases the subscription.
	Subscribe(fn func([]model.Address)) (cancel func())

	Append(email string)
	Replace(i int, email string) error
	RemoveAt(i int) error
}

// binding tracks the single subscription held on an ExternalList.
type binding struct {
	list   ExternalList
	cancel func()
}

func (b *binding) bind(onChange func([]model.Address)) {
	if b == nil || b.list == nil || b.cancel != nil {
		return
	}
	b.cancel = b.list.Subscribe(onChange)
	if b.cancel == nil {
		b.cancel = func() {}
	}
}

// release drops the subscription. Safe to call more than once and before
// bind.
func (b *binding) release() bool {
	if b == nil || b.cancel == nil {
		return false
	}
	cancel := b.cancel
	b.cancel = nil
	cancel()
	return true
}

// mirror copies the external value, taking validity from the host.
func mirror(list ExternalList, value []model.Address) []model.Address {
	out := make([]model.Address, len(value))
	for i, a := range value {
		out[i] = model.Address{Email: a.Email, Invalid: list.Invalid(i)}
	}
	return out
}
