package grove

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenTranslateReachesTarget(t *testing.T) {
	st := NewState()
	e := mustStateAdd(t, st, Root, nil)
	st.Props(e).Bounds = Rect{X: 10, Y: 20, Width: 5, Height: 5}

	g := TweenTranslate(st, e, 100, 200, 1.0, ease.Linear)

	// Run for full duration using exact halves to avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	b := st.Props(e).Bounds
	if math.Abs(b.X-100) > 0.5 || math.Abs(b.Y-200) > 0.5 {
		t.Errorf("origin = (%f, %f), want ~(100, 200)", b.X, b.Y)
	}
	if b.Width != 5 || b.Height != 5 {
		t.Errorf("size changed to %fx%f", b.Width, b.Height)
	}
}

func TestTweenBoundsAllComponents(t *testing.T) {
	st := NewState()
	e := mustStateAdd(t, st, Root, nil)
	target := Rect{X: 4, Y: 8, Width: 40, Height: 80}

	g := TweenBounds(st, e, target, 1.0, ease.Linear)
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	b := st.Props(e).Bounds
	for _, c := range []struct {
		name      string
		got, want float64
	}{
		{"X", b.X, target.X},
		{"Y", b.Y, target.Y},
		{"Width", b.Width, target.Width},
		{"Height", b.Height, target.Height},
	} {
		if math.Abs(c.got-c.want) > 0.01 {
			t.Errorf("%s = %f, want %f", c.name, c.got, c.want)
		}
	}
}

func TestTweenOpacityInterpolates(t *testing.T) {
	st := NewState()
	e := mustStateAdd(t, st, Root, nil)

	g := TweenOpacity(st, e, 0, 1.0, ease.Linear)
	g.Update(0.5)

	if g.Done {
		t.Fatal("should not be Done at half duration")
	}
	if op := st.Props(e).Opacity; math.Abs(op-0.5) > 0.05 {
		t.Errorf("Opacity = %f at midpoint, want ~0.5", op)
	}
}

func TestTweenPostsRedrawAndRelayout(t *testing.T) {
	st := NewState()
	e := mustStateAdd(t, st, Root, nil)

	TweenOpacity(st, e, 0, 1.0, ease.Linear).Update(0.1)
	got := drainEvents(st)
	if len(got) != 1 || got[0] != at(WindowRedraw, e) {
		t.Errorf("opacity tween events = %v", got)
	}

	TweenTranslate(st, e, 5, 5, 1.0, ease.Linear).Update(0.1)
	got = drainEvents(st)
	want := []string{at(WindowRedraw, e), at(WindowRelayout, Root)}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("translate tween events = %v, want %v", got, want)
	}
}

func TestTweenStopsWhenEntityRemoved(t *testing.T) {
	st := NewState()
	e := mustStateAdd(t, st, Root, nil)
	g := TweenOpacity(st, e, 0, 1.0, ease.Linear)

	if err := st.Remove(e, RemoveSubtree); err != nil {
		t.Fatal(err)
	}
	g.Update(0.5)

	if !g.Done {
		t.Error("expected Done once the entity left the tree")
	}
	if st.PendingEvents() != 0 {
		t.Errorf("pending = %d, want 0", st.PendingEvents())
	}
	if st.Props(e).Opacity != 1 {
		t.Errorf("Opacity = %f, want the untouched default", st.Props(e).Opacity)
	}
}

func TestAnimateAdvancesInUpdate(t *testing.T) {
	st := NewState()
	e := mustStateAdd(t, st, Root, nil)
	g := TweenOpacity(st, e, 0, 0.5, ease.Linear)
	st.Animate(g)

	st.Update(0.25)
	if len(st.tweens) != 1 {
		t.Fatalf("running tweens = %d, want 1", len(st.tweens))
	}
	st.Update(0.25)
	if !g.Done {
		t.Error("group not done after its duration")
	}
	if len(st.tweens) != 0 {
		t.Errorf("finished group still registered (%d)", len(st.tweens))
	}
	if op := st.Props(e).Opacity; math.Abs(op) > 0.01 {
		t.Errorf("Opacity = %f, want ~0", op)
	}
}

func TestAnimateIgnoresNilAndDone(t *testing.T) {
	st := NewState()
	st.Animate(nil)
	st.Animate(&TweenGroup{Done: true})
	if len(st.tweens) != 0 {
		t.Errorf("registered %d groups, want 0", len(st.tweens))
	}
}

type updateRecorder struct {
	log *[]Entity
	dt  float64
}

func (u *updateRecorder) OnEvent(*State, Entity, *Event) {}

func (u *updateRecorder) OnUpdate(_ *State, self Entity, dt float64) {
	*u.log = append(*u.log, self)
	u.dt = dt
}

func TestUpdateCallsUpdatersInPreOrder(t *testing.T) {
	st := NewState()
	var log []Entity
	rec := &updateRecorder{log: &log}
	a := mustStateAdd(t, st, Root, rec)
	b := mustStateAdd(t, st, Root, rec)
	c := mustStateAdd(t, st, a, rec)
	mustStateAdd(t, st, Root, HandlerFunc(func(*State, Entity, *Event) {}))

	st.Update(0.016)

	want := []Entity{a, c, b}
	if len(log) != len(want) {
		t.Fatalf("updated %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("update %d = %v, want %v", i, log[i], want[i])
		}
	}
	if rec.dt != 0.016 {
		t.Errorf("dt = %v", rec.dt)
	}
}
