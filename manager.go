package grove

import (
	"cmp"
	"slices"
	"time"
)

// Layouter recomputes entity bounds. The EventManager runs it when a
// Relayout event is dispatched, right before re-resolving hover.
type Layouter interface {
	Layout(st *State)
}

// LayoutFunc adapts a plain function to Layouter.
type LayoutFunc func(st *State)

// Layout calls f.
func (f LayoutFunc) Layout(st *State) { f(st) }

// DispatchRecord describes one routed event. It is a copy: events themselves
// do not outlive the flush that dispatched them.
type DispatchRecord struct {
	Payload     any
	Target      Entity
	Origin      Entity
	Propagation Propagation
	Order       uint32
	Consumed    bool
	Invocations int
}

// EventSink receives a record of every event after it has been routed.
type EventSink interface {
	EmitEvent(rec DispatchRecord)
}

// TraceFunc observes each handler invocation, just before it happens.
type TraceFunc func(ev *Event, e Entity)

// ManagerOption configures an EventManager.
type ManagerOption func(*EventManager)

// WithLayouter sets the layout pass run on Relayout.
func WithLayouter(l Layouter) ManagerOption {
	return func(m *EventManager) { m.layouter = l }
}

// WithStopOnConsume makes a consumption end the whole event. By default it
// only ends the current stage (down, direct, up or fall); the next flagged
// stage still starts and delivers to its first handler before it notices
// the consumed flag.
func WithStopOnConsume(stop bool) ManagerOption {
	return func(m *EventManager) { m.stopOnConsume = stop }
}

// WithEventSink forwards a record of every dispatched event to sink.
func WithEventSink(sink EventSink) ManagerOption {
	return func(m *EventManager) { m.sink = sink }
}

// WithTracer installs a per-invocation trace hook.
func WithTracer(fn TraceFunc) ManagerOption {
	return func(m *EventManager) { m.trace = fn }
}

// EventManager drains a State's event queue once per frame and routes each
// event through the tree to the registered handlers.
type EventManager struct {
	handlers map[Entity]Handler
	queue    []*Event
	snapshot *Tree

	layouter      Layouter
	stopOnConsume bool
	sink          EventSink
	trace         TraceFunc

	invocations int
	stats       flushStats
}

// NewEventManager creates a manager with the given options.
func NewEventManager(opts ...ManagerOption) *EventManager {
	m := &EventManager{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Flush dispatches every event queued on st and reports whether any of them
// requested a redraw. Events posted by handlers during the flush are left
// queued for the next one.
func (m *EventManager) Flush(st *State) bool {
	var t0 time.Time
	if st.debug {
		t0 = time.Now()
	}
	m.stats = flushStats{}

	// Handlers may mutate the live tree; routing walks this snapshot.
	m.snapshot = st.Tree.Clone()

	m.handlers = st.checkoutHandlers()
	m.queue = append(m.queue[:0], st.events...)
	clear(st.events)
	st.events = st.events[:0]

	// Order keys are unique and increasing, so a stable sort keeps the
	// insertion order among equal keys anyway.
	slices.SortStableFunc(m.queue, func(a, b *Event) int {
		return cmp.Compare(a.order, b.order)
	})

	redraw := false
	for _, ev := range m.queue {
		if m.inspect(st, ev) {
			redraw = true
		}
		m.invocations = 0
		m.route(st, ev)

		m.stats.events++
		m.stats.invocations += m.invocations
		if ev.consumed {
			m.stats.consumed++
		}
		if m.sink != nil {
			m.sink.EmitEvent(DispatchRecord{
				Payload:     ev.payload,
				Target:      ev.target,
				Origin:      ev.origin,
				Propagation: ev.propagation,
				Order:       ev.order,
				Consumed:    ev.consumed,
				Invocations: m.invocations,
			})
		}
	}

	st.checkinHandlers(m.handlers)
	m.handlers = nil
	m.snapshot = nil
	clear(m.queue)
	m.queue = m.queue[:0]

	if st.debug {
		m.stats.took = time.Since(t0)
		st.debugLogFlush(m.stats)
	}
	return redraw
}

// inspect applies the manager's own reaction to privileged payloads. It runs
// whether or not the event is later consumed.
func (m *EventManager) inspect(st *State, ev *Event) (redraw bool) {
	switch p := ev.payload.(type) {
	case WindowEvent:
		switch p {
		case WindowRedraw:
			redraw = true
		case WindowRestyle:
			st.needsRestyle = true
		case WindowRelayout:
			if m.layouter != nil {
				m.layouter.Layout(st)
			}
			st.ResolveHover()
		}
	case SetCursor:
		st.cursorIcon = p.Icon
	}
	return redraw
}

// route delivers ev along its propagation path over the snapshot.
func (m *EventManager) route(st *State, ev *Event) {
	tree := m.snapshot
	target := ev.target

	if target.IsNull() {
		it := tree.Iter()
		for e, ok := it.Next(); ok; e, ok = it.Next() {
			if m.invoke(st, e, ev) && ev.consumed {
				return
			}
		}
		return
	}

	if ev.propagation.Has(Down) && tree.Contains(target) {
		it := tree.Iter()
		for e, ok := it.Next(); ok && e != target; e, ok = it.Next() {
			// A consumption on the way down ends the event outright.
			if m.invoke(st, e, ev) && ev.consumed {
				return
			}
		}
	}

	if ev.propagation.Has(Direct) {
		m.invoke(st, target, ev)
		if m.stopOnConsume && ev.consumed {
			return
		}
	}

	if ev.propagation.Has(Up) {
		it := tree.Ancestors(tree.Parent(target))
		for e, ok := it.Next(); ok; e, ok = it.Next() {
			if m.invoke(st, e, ev) && ev.consumed {
				break
			}
		}
		if m.stopOnConsume && ev.consumed {
			return
		}
	}

	if ev.propagation.Has(Fall) {
		it := tree.Branch(target)
		it.Next() // the target itself
		for e, ok := it.Next(); ok; e, ok = it.Next() {
			if m.invoke(st, e, ev) && ev.consumed {
				break
			}
		}
	}
}

// invoke calls e's handler, if it has one and is still live. A handler
// installed with SetHandler during this flush wins over the checked-out one.
// It reports whether a handler ran.
func (m *EventManager) invoke(st *State, e Entity, ev *Event) bool {
	h, ok := st.handlers[e]
	if !ok {
		h, ok = m.handlers[e]
	}
	if !ok || st.skipDispatch(e) {
		return false
	}
	if m.trace != nil {
		m.trace(ev, e)
	}
	m.invocations++
	h.OnEvent(st, e, ev)
	return true
}
