package grove

// Propagation selects which entities an event visits. It is a bit set; the
// stages run in the order down, direct, up, fall.
type Propagation uint8

const (
	Direct Propagation = 1 << iota // the target itself
	Up                             // target's ancestors, parent first, up to root; target excluded
	Down                           // root down to the target, target excluded
	Fall                           // target's descendants in pre-order, target excluded

	// DownUp is full capture-then-bubble: root down to the target, the
	// target, then back up to the root.
	DownUp = Down | Direct | Up
)

// Has reports whether all bits of flag are set in p.
func (p Propagation) Has(flag Propagation) bool {
	return p&flag == flag
}

func (p Propagation) String() string {
	s := ""
	add := func(name string) {
		if s != "" {
			s += "|"
		}
		s += name
	}
	if p.Has(Down) {
		add("down")
	}
	if p.Has(Direct) {
		add("direct")
	}
	if p.Has(Up) {
		add("up")
	}
	if p.Has(Fall) {
		add("fall")
	}
	if s == "" {
		return "none"
	}
	return s
}

// eventOrderCounter is a plain counter (no atomic, grove is single-threaded).
var eventOrderCounter uint32

func nextEventOrder() uint32 {
	eventOrderCounter++
	return eventOrderCounter
}

// Event is a message routed through the entity tree. Target, origin and
// propagation are set by the builders before the event is inserted; the
// builders must not be called on a queued event. During dispatch only the
// consumed flag changes, and InsertEvent clears it again.
type Event struct {
	payload     any
	target      Entity
	origin      Entity
	propagation Propagation
	order       uint32
	consumed    bool
}

// NewEvent creates a broadcast event that bubbles up, with a fresh order key.
func NewEvent(payload any) *Event {
	return &Event{
		payload:     payload,
		target:      Null,
		origin:      Null,
		propagation: Up,
		order:       nextEventOrder(),
	}
}

// WithTarget sets the target entity. Null means broadcast.
func (ev *Event) WithTarget(e Entity) *Event {
	ev.target = e
	return ev
}

// WithOrigin records the entity that raised the event.
func (ev *Event) WithOrigin(e Entity) *Event {
	ev.origin = e
	return ev
}

// Propagate sets the propagation direction.
func (ev *Event) Propagate(p Propagation) *Event {
	ev.propagation = p
	return ev
}

// Direct targets e and restricts delivery to e alone.
func (ev *Event) Direct(e Entity) *Event {
	ev.target = e
	ev.propagation = Direct
	return ev
}

// Target returns the target entity, or Null for a broadcast.
func (ev *Event) Target() Entity { return ev.target }

// Origin returns the entity that raised the event, or Null.
func (ev *Event) Origin() Entity { return ev.origin }

// Propagation returns the propagation direction.
func (ev *Event) Propagation() Propagation { return ev.propagation }

// Order returns the creation order key used to sequence a frame's events.
func (ev *Event) Order() uint32 { return ev.order }

// Payload returns the raw payload.
func (ev *Event) Payload() any { return ev.payload }

// Consumed reports whether a handler has consumed the event.
func (ev *Event) Consumed() bool { return ev.consumed }

// Consume stops the event from travelling further along its current path.
func (ev *Event) Consume() {
	ev.consumed = true
}

// PayloadAs returns the payload as T. A payload of another type yields the
// zero T and false.
func PayloadAs[T any](ev *Event) (T, bool) {
	v, ok := ev.payload.(T)
	return v, ok
}
