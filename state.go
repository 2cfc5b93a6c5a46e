package grove

import (
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// RemovePolicy selects what happens to an entity's descendants when it is
// removed through State.Remove.
type RemovePolicy uint8

const (
	// RemoveSubtree deletes the entity and all of its descendants.
	RemoveSubtree RemovePolicy = iota
	// ReparentChildren deletes only the entity; its children move up to
	// its parent, in its place.
	ReparentChildren
)

// State is the shared mutable state handed to every handler. It owns the
// live tree, the handler registry, the outgoing event queue, the props
// store, and the capture, focus and hover bookkeeping.
//
// State is not safe for concurrent use; everything runs on the UI thread.
type State struct {
	// Tree is the live entity tree. Mutate it through Add and Remove so
	// handlers and props stay in sync.
	Tree *Tree

	entities EntityAllocator

	// handlers is the registry. During EventManager.Flush it is checked out
	// to the manager; handlers registered mid-flush land in a fresh map and
	// removals are remembered in removed until check-in.
	handlers   map[Entity]Handler
	removed    map[Entity]struct{}
	checkedOut bool

	events []*Event

	props []Props
	over  []bool

	captured Entity
	focused  Entity
	hovered  Entity

	pointer      Vec2
	cursorIcon   CursorIcon
	needsRestyle bool

	tweens      []*TweenGroup
	injectQueue []syntheticInput
	runner      *ScriptRunner

	debug    bool
	debugOut io.Writer

	worldBuf []ebiten.GeoM
	orderBuf []Entity
}

// NewState creates a state whose tree holds only Root. Root starts focused
// and hovered.
func NewState() *State {
	st := &State{
		Tree:     NewTree(),
		handlers: make(map[Entity]Handler),
		captured: Null,
		focused:  Root,
		hovered:  Root,
		debugOut: os.Stderr,
	}
	st.growProps(Root)
	st.props[Root.idx].Name = "root"
	return st
}

// Add allocates a new entity, attaches it as the last child of parent and
// registers h (which may be nil for pure layout containers). If h
// implements Builder, OnBuild runs before Add returns.
func (st *State) Add(parent Entity, h Handler) (Entity, error) {
	if !st.Tree.Contains(parent) {
		return Null, ErrParentNotFound
	}
	e := st.entities.Create()
	if err := st.Tree.Add(e, parent); err != nil {
		return Null, err
	}
	st.growProps(e)
	st.props[e.idx] = DefaultProps()
	if h != nil {
		st.handlers[e] = h
	}
	if st.debug {
		st.debugAfterMutation(e, parent)
	}
	if b, ok := h.(Builder); ok {
		b.OnBuild(st, e)
	}
	return e, nil
}

// Remove takes e out of the tree according to policy, dropping the handlers
// and props of every removed entity. Capture, focus and hover that pointed
// at a removed entity are reset.
func (st *State) Remove(e Entity, policy RemovePolicy) error {
	var removed []Entity
	parent := st.Tree.Parent(e)
	switch policy {
	case ReparentChildren:
		if err := st.Tree.Unwrap(e); err != nil {
			return err
		}
		removed = []Entity{e}
	default:
		var err error
		removed, err = st.Tree.Delete(e)
		if err != nil {
			return err
		}
	}
	for _, x := range removed {
		st.dropEntity(x)
	}
	if st.debug {
		st.debugAfterMutation(Null, parent)
	}
	return nil
}

func (st *State) dropEntity(e Entity) {
	if _, ok := st.handlers[e]; ok {
		delete(st.handlers, e)
	}
	if st.checkedOut {
		st.removed[e] = struct{}{}
	}
	if e.Index() < len(st.props) {
		st.props[e.idx] = DefaultProps()
		st.over[e.idx] = false
	}
	if st.captured == e {
		st.captured = Null
	}
	if st.focused == e {
		st.focused = Root
	}
	if st.hovered == e {
		st.hovered = Root
	}
}

// SetHandler installs h on an attached entity, replacing any previous
// handler. A nil h removes the handler.
func (st *State) SetHandler(e Entity, h Handler) error {
	if !st.Tree.Contains(e) {
		return ErrNotFound
	}
	if h == nil {
		delete(st.handlers, e)
		if st.checkedOut {
			st.removed[e] = struct{}{}
		}
		return nil
	}
	st.handlers[e] = h
	if st.checkedOut {
		delete(st.removed, e)
	}
	return nil
}

// Handler returns the handler registered on e. While an EventManager is
// flushing, the registry is checked out and only handlers registered during
// that flush are visible here.
func (st *State) Handler(e Entity) (Handler, bool) {
	h, ok := st.handlers[e]
	return h, ok
}

// --- Check-out / check-in ---

// checkoutHandlers moves the registry out of the state so the manager can
// invoke handlers while they mutate the state.
func (st *State) checkoutHandlers() map[Entity]Handler {
	reg := st.handlers
	st.handlers = make(map[Entity]Handler)
	st.removed = make(map[Entity]struct{})
	st.checkedOut = true
	return reg
}

// checkinHandlers moves the registry back, applying removals and additions
// made while it was checked out.
func (st *State) checkinHandlers(reg map[Entity]Handler) {
	for e := range st.removed {
		delete(reg, e)
	}
	for e, h := range st.handlers {
		reg[e] = h
	}
	st.handlers = reg
	st.removed = nil
	st.checkedOut = false
}

// skipDispatch reports whether e left the tree or lost its handler since the
// current flush began.
func (st *State) skipDispatch(e Entity) bool {
	if !st.Tree.Contains(e) {
		return true
	}
	_, gone := st.removed[e]
	return gone
}

// --- Events ---

// InsertEvent queues ev for the next EventManager.Flush. Re-inserting a
// dispatched event clears its consumed flag; its order is kept.
func (st *State) InsertEvent(ev *Event) {
	if ev == nil {
		panic("grove: cannot insert nil event")
	}
	ev.consumed = false
	st.events = append(st.events, ev)
}

// PendingEvents returns the number of queued events.
func (st *State) PendingEvents() int {
	return len(st.events)
}

// --- Capture, focus, hover ---

// Capture routes pointer input to e regardless of hit testing until it is
// released. The previous holder receives a capture-out event.
func (st *State) Capture(e Entity) {
	if st.captured == e {
		return
	}
	if !st.captured.IsNull() {
		st.InsertEvent(NewEvent(WindowMouseCaptureOutEvent).Direct(st.captured))
	}
	st.captured = e
	if !e.IsNull() {
		st.InsertEvent(NewEvent(WindowMouseCaptureEvent).Direct(e))
	}
}

// Release clears the capture if e holds it.
func (st *State) Release(e Entity) {
	if e.IsNull() || st.captured != e {
		return
	}
	st.captured = Null
	st.InsertEvent(NewEvent(WindowMouseCaptureOutEvent).Direct(e))
}

// Captured returns the entity holding input capture, or Null.
func (st *State) Captured() Entity {
	return st.captured
}

// SetFocus moves keyboard focus to e, notifying both sides.
func (st *State) SetFocus(e Entity) {
	if st.focused == e {
		return
	}
	if !st.focused.IsNull() {
		st.InsertEvent(NewEvent(WindowFocusOut).Direct(st.focused))
	}
	st.focused = e
	if !e.IsNull() {
		st.InsertEvent(NewEvent(WindowFocusIn).Direct(e))
	}
}

// Focused returns the entity with keyboard focus.
func (st *State) Focused() Entity {
	return st.focused
}

// Hovered returns the topmost entity under the pointer as of the last hover
// pass.
func (st *State) Hovered() Entity {
	return st.hovered
}

// SetPointer records the pointer position. Hover is not recomputed until
// the next Relayout is dispatched.
func (st *State) SetPointer(x, y float64) {
	st.pointer = Vec2{X: x, Y: y}
}

// Pointer returns the last recorded pointer position.
func (st *State) Pointer() Vec2 {
	return st.pointer
}

// CursorIcon returns the icon most recently requested by a SetCursor event.
func (st *State) CursorIcon() CursorIcon {
	return st.cursorIcon
}

// NeedsRestyle reports whether a Restyle was dispatched since the last call,
// and clears the flag.
func (st *State) NeedsRestyle() bool {
	r := st.needsRestyle
	st.needsRestyle = false
	return r
}
