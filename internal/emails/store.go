package emails

import (
	"fmt"
	"slices"

	"mailchips/internal/model"

	"go.uber.org/zap"
)

// DefaultDisplayLimit is the per-window truncation threshold used when none
// is configured.
const DefaultDisplayLimit = 15

type Options struct {
	// Validator replaces the default syntax check when set.
	Validator ValidatorFunc
	// DisplayLimit truncates each window; <= 0 disables truncation.
	DisplayLimit      int
	PreventDuplicates bool
	Comparator        model.Comparator
	Labels            Labels
	// External, when set, becomes the authoritative list.
	External ExternalList
	Logger   *zap.Logger
}

// Store is the canonical ordered address list and its derived windows.
//
// Every mutation runs validation, updates the list, recomputes the windows
// and only then emits events. All calls are expected from a single goroutine.
type Store struct {
	validator   Validator
	limit       int
	preventDups bool
	cmp         model.Comparator
	labels      Labels
	log         *zap.Logger

	entries  []model.Address
	view     Partitions
	expanded Expanded
	dupeMsg  string

	ext       *binding
	listeners []Listener
	watchers  []func()
	pending   []Event
}

func New(opts Options) *Store {
	s := &Store{
		limit:       opts.DisplayLimit,
		preventDups: opts.PreventDuplicates,
		cmp:         opts.Comparator,
		labels:      opts.Labels,
		log:         opts.Logger,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if opts.External != nil {
		s.ext = &binding{list: opts.External}
	}
	s.validator = NewValidator(opts.Validator, s.queue)
	s.recompute()
	return s
}

// OnEvent registers a listener for every notification.
func (s *Store) OnEvent(l Listener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// Bound reports whether an external list is authoritative.
func (s *Store) Bound() bool { return s.ext != nil }

// Initialize builds the canonical list. When bound, src is ignored: the
// external value is mirrored with the host's validity flags and the change
// subscription is taken. Otherwise every entry is revalidated.
func (s *Store) Initialize(src []model.Address) []model.Address {
	if s.ext != nil {
		s.ext.bind(s.onExternalChange)
		s.entries = mirror(s.ext.list, s.ext.list.Value())
	} else {
		s.entries = make([]model.Address, 0, len(src))
		for _, a := range src {
			s.entries = append(s.entries, model.Address{Email: a.Email, Invalid: s.validator.Invalid(a.Email)})
		}
	}
	s.recompute()
	s.flush()
	return s.Entries()
}

// Close releases the external subscription. It is a no-op when nothing is
// bound or when already closed.
func (s *Store) Close() {
	if s.ext.release() {
		s.log.Debug("released external list subscription")
	}
}

// Add appends email unless duplicates are prevented and an exact match
// exists. Every non-empty submission is validated, blocked or not.
// EventDuplicate fires whenever an exact match exists; EventAdded
// fires for every non-empty submission.
func (s *Store) Add(email string) (added, duplicate bool) {
	if email == "" {
		return false, false
	}
	idx, _ := s.Find(email)
	duplicate = idx >= 0
	invalid := s.validator.Invalid(email)

	if duplicate && s.preventDups {
		s.dupeMsg = fmt.Sprintf("%s is a duplicate and was not added!", email)
	} else {
		if s.ext != nil {
			s.ext.list.Append(email)
		} else {
			s.entries = append(s.entries, model.Address{Email: email, Invalid: invalid})
			s.recompute()
		}
		added = true
	}

	if duplicate {
		s.queue(Event{Kind: EventDuplicate, Email: email})
	}
	s.queue(Event{Kind: EventAdded, Email: email})
	s.flush()
	return added, duplicate
}

// EditAt replaces the email at index i and revalidates that entry only.
func (s *Store) EditAt(i int, email string) error {
	if err := checkIndex("edit", i, len(s.entries)); err != nil {
		s.log.Warn("edit rejected", zap.Int("index", i), zap.Int("len", len(s.entries)))
		return err
	}
	invalid := s.validator.Invalid(email)
	if s.ext != nil {
		if err := s.ext.list.Replace(i, email); err != nil {
			s.pending = nil
			return err
		}
	} else {
		s.entries[i] = model.Address{Email: email, Invalid: invalid}
		s.recompute()
	}
	s.queue(Event{Kind: EventEdited, Email: email})
	s.flush()
	return nil
}

// DeleteAt removes and returns the entry at index i.
func (s *Store) DeleteAt(i int) (model.Address, error) {
	if err := checkIndex("delete", i, len(s.entries)); err != nil {
		s.log.Warn("delete rejected", zap.Int("index", i), zap.Int("len", len(s.entries)))
		return model.Address{}, err
	}
	removed := s.entries[i]
	if s.ext != nil {
		if err := s.ext.list.RemoveAt(i); err != nil {
			return model.Address{}, err
		}
	} else {
		s.entries = slices.Delete(s.entries, i, i+1)
		s.recompute()
	}
	s.queue(Event{Kind: EventDeleted, Email: removed.Email})
	s.flush()
	return removed, nil
}

// DeleteEntry deletes the first entry whose email matches a.Email.
func (s *Store) DeleteEntry(a model.Address) (model.Address, bool) {
	idx, _ := s.Find(a.Email)
	if idx < 0 {
		return model.Address{}, false
	}
	removed, err := s.DeleteAt(idx)
	return removed, err == nil
}

// Find returns the index of the first exact match and a copy of the entry,
// or (-1, nil).
func (s *Store) Find(email string) (int, *model.Address) {
	for i, a := range s.entries {
		if a.Email == email {
			found := a
			return i, &found
		}
	}
	return -1, nil
}

// At returns the entry at index i.
func (s *Store) At(i int) (model.Address, bool) {
	if i < 0 || i >= len(s.entries) {
		return model.Address{}, false
	}
	return s.entries[i], true
}

func (s *Store) Len() int { return len(s.entries) }

// Entries returns a copy of the canonical list in storage order.
func (s *Store) Entries() []model.Address { return slices.Clone(s.entries) }

// View returns the derived windows as of the last mutation.
func (s *Store) View() Partitions { return s.view }

func (s *Store) Expanded() Expanded { return s.expanded }

// SetExpanded changes which windows ignore the display limit.
func (s *Store) SetExpanded(e Expanded) {
	s.expanded = e
	s.recompute()
}

// DuplicateMessage is the user-facing message from the last blocked
// duplicate, or "".
func (s *Store) DuplicateMessage() string { return s.dupeMsg }

func (s *Store) ClearDuplicateMessage() { s.dupeMsg = "" }

func (s *Store) onExternalChange(value []model.Address) {
	s.entries = mirror(s.ext.list, value)
	s.recompute()
}

// watch registers fn to run after every recompute.
func (s *Store) watch(fn func()) { s.watchers = append(s.watchers, fn) }

func (s *Store) recompute() {
	s.view = Partition(s.entries, s.limit, s.expanded, s.labels, s.cmp)
	for _, fn := range s.watchers {
		fn()
	}
}

func (s *Store) queue(ev Event) { s.pending = append(s.pending, ev) }

func (s *Store) flush() {
	pending := s.pending
	s.pending = nil
	for _, ev := range pending {
		s.log.Debug("address event", zap.String("event", ev.Kind.String()), zap.String("email", ev.Email))
		for _, l := range s.listeners {
			l(ev)
		}
	}
}
