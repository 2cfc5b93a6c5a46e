package grove

import "testing"

func TestNewEventDefaults(t *testing.T) {
	ev := NewEvent("hello")
	if !ev.Target().IsNull() {
		t.Errorf("Target = %v, want Null", ev.Target())
	}
	if !ev.Origin().IsNull() {
		t.Errorf("Origin = %v, want Null", ev.Origin())
	}
	if ev.Propagation() != Up {
		t.Errorf("Propagation = %v, want up", ev.Propagation())
	}
	if ev.Consumed() {
		t.Error("new event already consumed")
	}
}

func TestEventOrderIncreases(t *testing.T) {
	a := NewEvent(1)
	b := NewEvent(2)
	c := NewEvent(3)
	if !(a.Order() < b.Order() && b.Order() < c.Order()) {
		t.Errorf("orders not increasing: %d %d %d", a.Order(), b.Order(), c.Order())
	}
}

func TestEventBuilders(t *testing.T) {
	ev := NewEvent(WindowRedraw).WithTarget(ent(3)).WithOrigin(ent(1)).Propagate(DownUp)
	if ev.Target() != ent(3) || ev.Origin() != ent(1) || ev.Propagation() != DownUp {
		t.Errorf("builder result: target %v origin %v prop %v", ev.Target(), ev.Origin(), ev.Propagation())
	}

	d := NewEvent(WindowRedraw).Direct(ent(5))
	if d.Target() != ent(5) || d.Propagation() != Direct {
		t.Errorf("Direct: target %v prop %v", d.Target(), d.Propagation())
	}
}

func TestEventConsume(t *testing.T) {
	ev := NewEvent(nil)
	ev.Consume()
	if !ev.Consumed() {
		t.Error("Consume did not set the flag")
	}
}

func TestPayloadAs(t *testing.T) {
	ev := NewEvent(MouseMove{X: 1, Y: 2})
	mv, ok := PayloadAs[MouseMove](ev)
	if !ok || mv.X != 1 || mv.Y != 2 {
		t.Errorf("PayloadAs[MouseMove] = %+v, %v", mv, ok)
	}
	if _, ok := PayloadAs[KeyDown](ev); ok {
		t.Error("PayloadAs[KeyDown] matched a MouseMove")
	}
	if _, ok := PayloadAs[WindowEvent](NewEvent(nil)); ok {
		t.Error("PayloadAs matched a nil payload")
	}
}

func TestPropagationString(t *testing.T) {
	tests := []struct {
		p    Propagation
		want string
	}{
		{0, "none"},
		{Direct, "direct"},
		{Up, "up"},
		{Fall, "fall"},
		{DownUp, "down|direct|up"},
		{Direct | Fall, "direct|fall"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.p, got, tt.want)
		}
	}
	if !DownUp.Has(Up) || !DownUp.Has(Down) || DownUp.Has(Fall) {
		t.Error("DownUp bits wrong")
	}
}

func TestWindowEventString(t *testing.T) {
	if got := WindowMouseEnter.String(); got == "" {
		t.Error("empty name for WindowMouseEnter")
	}
	if WindowRedraw.String() == WindowRestyle.String() {
		t.Error("distinct window events share a name")
	}
}
