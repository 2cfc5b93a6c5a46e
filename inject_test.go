package grove

import (
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// frame runs one host tick without a window.
func frame(st *State, mgr *EventManager) {
	st.ProcessInput()
	mgr.Flush(st)
}

// inputState puts a 100x100 button under a root that covers the surface and
// records the mouse and key payloads it receives.
func inputState(t *testing.T) (st *State, btn Entity, got *[]string) {
	t.Helper()
	var log []string
	st = NewState()
	st.Props(Root).Bounds = Rect{Width: 400, Height: 400}
	btn = mustStateAdd(t, st, Root, HandlerFunc(func(_ *State, _ Entity, ev *Event) {
		switch p := ev.Payload().(type) {
		case MouseDown:
			log = append(log, "down")
		case MouseUp:
			log = append(log, "up")
		case KeyDown:
			log = append(log, "keydown:"+p.Key.String())
		case KeyUp:
			log = append(log, "keyup:"+p.Key.String())
		}
	}))
	st.Props(btn).Bounds = Rect{Width: 100, Height: 100}
	return st, btn, &log
}

func TestInjectClick(t *testing.T) {
	st, btn, log := inputState(t)
	mgr := NewEventManager()

	st.InjectClick(50, 50)
	if st.PendingInput() != 3 {
		t.Fatalf("expected 3 queued inputs, got %d", st.PendingInput())
	}

	// Frame 1: move, hover resolves during the flush.
	frame(st, mgr)
	if st.Hovered() != btn {
		t.Fatalf("hovered = %v, want button", st.Hovered())
	}
	if len(*log) != 0 {
		t.Errorf("button saw %v before the press", *log)
	}

	// Frame 2: press lands on the hovered button.
	frame(st, mgr)
	// Frame 3: release.
	frame(st, mgr)

	if st.PendingInput() != 0 {
		t.Errorf("expected 0 remaining inputs, got %d", st.PendingInput())
	}
	if want := []string{"down", "up"}; !slices.Equal(*log, want) {
		t.Errorf("button saw %v, want %v", *log, want)
	}
}

func TestInjectPressBubbles(t *testing.T) {
	st, btn, _ := inputState(t)
	var rootSaw []string
	if err := st.SetHandler(Root, HandlerFunc(func(_ *State, _ Entity, ev *Event) {
		if _, ok := PayloadAs[MouseDown](ev); ok {
			rootSaw = append(rootSaw, "down")
		}
	})); err != nil {
		t.Fatal(err)
	}
	mgr := NewEventManager()

	st.InjectMove(10, 10)
	st.InjectPress(10, 10)
	frame(st, mgr)
	frame(st, mgr)

	if st.Hovered() != btn {
		t.Fatalf("hovered = %v, want button", st.Hovered())
	}
	if !slices.Equal(rootSaw, []string{"down"}) {
		t.Errorf("root saw %v, want the bubbled press", rootSaw)
	}
}

func TestInjectPressGoesToCapture(t *testing.T) {
	st, btn, log := inputState(t)
	other := mustStateAdd(t, st, Root, nil)
	st.Props(other).Bounds = Rect{X: 200, Y: 200, Width: 50, Height: 50}
	mgr := NewEventManager()

	st.Capture(btn)
	st.InjectPress(220, 220)
	frame(st, mgr)
	st.InjectRelease(220, 220)
	frame(st, mgr)

	if st.Hovered() != other {
		t.Errorf("hovered = %v, want the other entity", st.Hovered())
	}
	if want := []string{"down", "up"}; !slices.Equal(*log, want) {
		t.Errorf("captured button saw %v, want %v", *log, want)
	}
}

func TestInjectKeyGoesToFocus(t *testing.T) {
	st, btn, log := inputState(t)
	mgr := NewEventManager()

	st.SetFocus(btn)
	st.InjectKey(ebiten.KeyEnter, ModShift)
	frame(st, mgr)
	frame(st, mgr)

	want := []string{"keydown:Enter", "keyup:Enter"}
	if !slices.Equal(*log, want) {
		t.Errorf("focused button saw %v, want %v", *log, want)
	}
}

func TestProcessInputEmptyQueue(t *testing.T) {
	st := NewState()
	if st.ProcessInput() {
		t.Error("ProcessInput reported work on an empty queue")
	}
	if st.PendingEvents() != 0 {
		t.Errorf("pending events = %d, want 0", st.PendingEvents())
	}
}

func TestInjectMoveSamePointIsQuiet(t *testing.T) {
	st := NewState()
	st.InjectMove(5, 5)
	st.InjectMove(5, 5)
	st.ProcessInput()
	n := st.PendingEvents()
	st.ProcessInput()
	if st.PendingEvents() != n {
		t.Errorf("repeated move posted %d more events", st.PendingEvents()-n)
	}
	if p := st.Pointer(); p.X != 5 || p.Y != 5 {
		t.Errorf("pointer = %+v", p)
	}
}
