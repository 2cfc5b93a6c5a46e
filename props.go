package grove

import "github.com/hajimehoshi/ebiten/v2"

// Props holds the per-entity values an external layout or styling pass
// writes and the hover and draw passes read.
type Props struct {
	// Name is a debugging label; the tracer and debug output print it.
	Name string

	// Bounds is the entity's layout rectangle in root coordinates.
	Bounds Rect
	// BorderWidth inflates the hit area by half its value on every side.
	BorderWidth float64
	// Clip restricts hit testing. The zero Rect means unclipped.
	Clip Rect
	// Transform is the local transform relative to the parent. The zero
	// GeoM is the identity.
	Transform ebiten.GeoM

	Visible   bool
	Display   bool
	Opacity   float64
	Hoverable bool

	// ZIndex reorders the draw and hit-test order; ties keep tree order.
	ZIndex int
	// Window marks the entity as the root of a nested window. See
	// State.WindowEntities and State.FocusNext.
	Window bool
	// Cursor is requested while the entity is hovered.
	Cursor CursorIcon
}

// DefaultProps returns the props a freshly added entity starts with.
func DefaultProps() Props {
	return Props{
		Visible:   true,
		Display:   true,
		Opacity:   1,
		Hoverable: true,
	}
}

// hitRect returns the bounds inflated by half the border width.
func (p *Props) hitRect() Rect {
	if p.BorderWidth == 0 {
		return p.Bounds
	}
	return p.Bounds.Inflate(p.BorderWidth / 2)
}

// Transform describes a local transform in the usual decomposed form.
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Skew -> Rotate -> Translate(X, Y)
type Transform struct {
	X, Y         float64
	ScaleX       float64
	ScaleY       float64
	Rotation     float64
	SkewX, SkewY float64
	PivotX       float64
	PivotY       float64
}

// GeoM builds the ebiten matrix for t. A zero scale component is treated as 1.
func (t Transform) GeoM() ebiten.GeoM {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	var g ebiten.GeoM
	g.Translate(-t.PivotX, -t.PivotY)
	g.Scale(sx, sy)
	if t.SkewX != 0 || t.SkewY != 0 {
		g.Skew(t.SkewX, t.SkewY)
	}
	if t.Rotation != 0 {
		g.Rotate(t.Rotation)
	}
	g.Translate(t.X, t.Y)
	return g
}

// --- Store ---

// Props returns a pointer to e's props, growing the store as needed.
// The pointer is valid until the next entity is added.
func (st *State) Props(e Entity) *Props {
	if e.IsNull() {
		panic("grove: props of null entity")
	}
	st.growProps(e)
	return &st.props[e.idx]
}

// SetProps replaces e's props.
func (st *State) SetProps(e Entity, p Props) {
	*st.Props(e) = p
}

func (st *State) growProps(e Entity) {
	for len(st.props) <= e.Index() {
		st.props = append(st.props, DefaultProps())
		st.over = append(st.over, false)
	}
}

// WorldTransform composes e's local transform with those of its ancestors.
func (st *State) WorldTransform(e Entity) ebiten.GeoM {
	var g ebiten.GeoM
	it := st.Tree.Ancestors(e)
	for x, ok := it.Next(); ok; x, ok = it.Next() {
		if x.Index() < len(st.props) {
			g.Concat(st.props[x.idx].Transform)
		}
	}
	return g
}

// computeWorldTransforms fills st.worldBuf for every attached entity in one
// pre-order pass, parents before children.
func (st *State) computeWorldTransforms() {
	n := len(st.Tree.parent)
	if cap(st.worldBuf) < n {
		st.worldBuf = make([]ebiten.GeoM, n)
	}
	st.worldBuf = st.worldBuf[:n]
	it := st.Tree.Iter()
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		var g ebiten.GeoM
		if e.Index() < len(st.props) {
			g = st.props[e.idx].Transform
		}
		if p := st.Tree.parent[e.idx]; !p.IsNull() {
			g.Concat(st.worldBuf[p.idx])
		}
		st.worldBuf[e.idx] = g
	}
}
