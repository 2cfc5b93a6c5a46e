package grove

import "github.com/hajimehoshi/ebiten/v2"

type inputKind uint8

const (
	inputMove inputKind = iota
	inputPress
	inputRelease
	inputKeyDown
	inputKeyUp
)

// syntheticInput is one queued input event. Pointer coordinates are in
// root space, the same space as props Bounds.
type syntheticInput struct {
	kind   inputKind
	x, y   float64
	button MouseButton
	key    ebiten.Key
	mods   KeyModifiers
}

// InjectMove queues a pointer move to (x, y).
func (st *State) InjectMove(x, y float64) {
	st.injectQueue = append(st.injectQueue, syntheticInput{kind: inputMove, x: x, y: y})
}

// InjectPress queues a left-button press at (x, y). The pointer moves there
// first.
func (st *State) InjectPress(x, y float64) {
	st.injectQueue = append(st.injectQueue, syntheticInput{
		kind: inputPress, x: x, y: y, button: MouseButtonLeft,
	})
}

// InjectRelease queues a left-button release at (x, y).
func (st *State) InjectRelease(x, y float64) {
	st.injectQueue = append(st.injectQueue, syntheticInput{
		kind: inputRelease, x: x, y: y, button: MouseButtonLeft,
	})
}

// InjectClick queues a move, press and release at the same point. Consumes
// three frames.
func (st *State) InjectClick(x, y float64) {
	st.InjectMove(x, y)
	st.InjectPress(x, y)
	st.InjectRelease(x, y)
}

// InjectKey queues a key press followed by its release.
func (st *State) InjectKey(key ebiten.Key, mods KeyModifiers) {
	st.injectQueue = append(st.injectQueue,
		syntheticInput{kind: inputKeyDown, key: key, mods: mods},
		syntheticInput{kind: inputKeyUp, key: key, mods: mods},
	)
}

// PendingInput returns the number of queued synthetic inputs.
func (st *State) PendingInput() int {
	return len(st.injectQueue)
}

// ProcessInput pops one queued input and turns it into events for the next
// flush. It reports whether an input was consumed, in which case the host
// skips real device input for this frame.
func (st *State) ProcessInput() bool {
	if st.runner != nil {
		st.runner.Step(st)
	}
	if len(st.injectQueue) == 0 {
		return false
	}
	in := st.injectQueue[0]
	copy(st.injectQueue, st.injectQueue[1:])
	st.injectQueue = st.injectQueue[:len(st.injectQueue)-1]

	st.applyInput(in)
	return true
}

func (st *State) applyInput(in syntheticInput) {
	switch in.kind {
	case inputMove:
		st.movePointer(in.x, in.y)
	case inputPress:
		st.movePointer(in.x, in.y)
		st.InsertEvent(NewEvent(MouseDown{Button: in.button, X: in.x, Y: in.y, Mods: in.mods}).
			WithTarget(st.pointerTarget()).Propagate(Direct | Up))
	case inputRelease:
		st.movePointer(in.x, in.y)
		st.InsertEvent(NewEvent(MouseUp{Button: in.button, X: in.x, Y: in.y, Mods: in.mods}).
			WithTarget(st.pointerTarget()).Propagate(Direct | Up))
	case inputKeyDown:
		st.InsertEvent(NewEvent(KeyDown{Key: in.key, Mods: in.mods}).
			WithTarget(st.focused).Propagate(Direct | Up))
	case inputKeyUp:
		st.InsertEvent(NewEvent(KeyUp{Key: in.key, Mods: in.mods}).
			WithTarget(st.focused).Propagate(Direct | Up))
	}
}

// movePointer records the position and asks for a relayout so hover is
// recomputed on the next flush. Repeated positions post nothing.
func (st *State) movePointer(x, y float64) {
	if st.pointer.X == x && st.pointer.Y == y {
		return
	}
	st.pointer = Vec2{X: x, Y: y}
	st.InsertEvent(NewEvent(MouseMove{X: x, Y: y}).WithTarget(st.pointerTarget()).Propagate(Direct | Up))
	st.InsertEvent(NewEvent(WindowRelayout).Direct(Root))
}

// pointerTarget is the captured entity, or the hovered one when nothing
// holds capture.
func (st *State) pointerTarget() Entity {
	if !st.captured.IsNull() {
		return st.captured
	}
	return st.hovered
}
