package grove

import (
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

type drawRecorder struct {
	log *[]Entity
}

func (d drawRecorder) OnEvent(*State, Entity, *Event) {}

func (d drawRecorder) OnDraw(_ *State, self Entity, _ *ebiten.Image) {
	*d.log = append(*d.log, self)
}

func TestDrawFollowsPaintOrder(t *testing.T) {
	st := NewState()
	var log []Entity
	rec := drawRecorder{log: &log}

	a := mustStateAdd(t, st, Root, rec)
	b := mustStateAdd(t, st, Root, rec)
	hidden := mustStateAdd(t, st, Root, rec)
	under := mustStateAdd(t, st, hidden, rec)
	st.Props(a).ZIndex = 1
	st.Props(hidden).Display = false

	// Drawers here never touch the canvas, so no image is needed.
	st.Draw(nil)

	if want := []Entity{b, a}; !slices.Equal(log, want) {
		t.Errorf("drawn %v, want %v", log, want)
	}
	if slices.Contains(log, under) {
		t.Error("child of an undisplayed entity was drawn")
	}
}
