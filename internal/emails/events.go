package emails

// EventKind identifies a notification emitted by the store.
type EventKind int

const (
	EventAdded EventKind = iota
	EventDeleted
	EventEdited
	EventInvalid
	EventDuplicate
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "address-added"
	case EventDeleted:
		return "address-deleted"
	case EventEdited:
		return "address-edited"
	case EventInvalid:
		return "address-invalid"
	case EventDuplicate:
		return "duplicate-detected"
	default:
		return "unknown"
	}
}

// Event is a notification observed by the host.
type Event struct {
	Kind  EventKind `json:"-"`
	Email string    `json:"email"`
}

// Listener receives events synchronously, after the mutation and the
// derived-state recompute that caused them.
type Listener func(Event)

// Recorder is a Listener that keeps every event it receives.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Listen(ev Event) { r.Events = append(r.Events, ev) }

// Kinds returns the kinds of the recorded events in order.
func (r *Recorder) Kinds() []EventKind {
	out := make([]EventKind, 0, len(r.Events))
	for _, ev := range r.Events {
		out = append(out, ev.Kind)
	}
	return out
}

// Reset drops all recorded events.
func (r *Recorder) Reset() { r.Events = nil }
