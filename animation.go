package grove

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 props fields of one entity at once.
// Create one with TweenOpacity, TweenTranslate or TweenBounds and either
// call Update(dt) yourself or hand it to State.Animate. Each step posts a
// Redraw to the entity; geometry tweens also post a Relayout so hover
// follows the moving rect. If the entity leaves the tree, the group stops.
type TweenGroup struct {
	tweens   [4]*gween.Tween
	count    int
	fields   [4]func(p *Props) *float64
	st       *State
	target   Entity
	relayout bool
	Done     bool
}

func newTweenGroup(st *State, e Entity, relayout bool) *TweenGroup {
	return &TweenGroup{st: st, target: e, relayout: relayout}
}

func (g *TweenGroup) add(field func(p *Props) *float64, to float64, duration float32, fn ease.TweenFunc) {
	from := *field(g.st.Props(g.target))
	g.tweens[g.count] = gween.New(float32(from), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// Update advances all tweens by dt seconds and writes the values into the
// entity's props. Once the entity is gone, Done is set and nothing is
// written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if !g.st.Tree.Contains(g.target) {
		g.Done = true
		return
	}

	p := g.st.Props(g.target)
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i](p) = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	g.st.InsertEvent(NewEvent(WindowRedraw).Direct(g.target))
	if g.relayout {
		g.st.InsertEvent(NewEvent(WindowRelayout).Direct(Root))
	}
}

// Target returns the animated entity.
func (g *TweenGroup) Target() Entity { return g.target }

// TweenOpacity animates e's Opacity to the given value.
func TweenOpacity(st *State, e Entity, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(st, e, false)
	g.add(func(p *Props) *float64 { return &p.Opacity }, to, duration, fn)
	return g
}

// TweenTranslate moves e's Bounds origin to (toX, toY), keeping its size.
func TweenTranslate(st *State, e Entity, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(st, e, true)
	g.add(func(p *Props) *float64 { return &p.Bounds.X }, toX, duration, fn)
	g.add(func(p *Props) *float64 { return &p.Bounds.Y }, toY, duration, fn)
	return g
}

// TweenBounds animates all four components of e's Bounds.
func TweenBounds(st *State, e Entity, to Rect, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(st, e, true)
	g.add(func(p *Props) *float64 { return &p.Bounds.X }, to.X, duration, fn)
	g.add(func(p *Props) *float64 { return &p.Bounds.Y }, to.Y, duration, fn)
	g.add(func(p *Props) *float64 { return &p.Bounds.Width }, to.Width, duration, fn)
	g.add(func(p *Props) *float64 { return &p.Bounds.Height }, to.Height, duration, fn)
	return g
}

// Animate registers g to be advanced by State.Update until it is done.
func (st *State) Animate(g *TweenGroup) {
	if g == nil || g.Done {
		return
	}
	st.tweens = append(st.tweens, g)
}

// updateTweens advances registered groups and drops finished ones.
func (st *State) updateTweens(dt float32) {
	live := st.tweens[:0]
	for _, g := range st.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(st.tweens[len(live):])
	st.tweens = live
}
