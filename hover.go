package grove

import (
	"cmp"
	"slices"
)

// --- Paint order ---

// appendDrawOrder walks the live tree in pre-order, skipping invisible or
// undisplayed subtrees, and stable-sorts the result by ZIndex.
func (st *State) appendDrawOrder(buf []Entity) []Entity {
	it := st.Tree.Iter()
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		if e.Index() < len(st.props) {
			p := &st.props[e.idx]
			if !p.Visible || !p.Display {
				it.SkipBranch()
				continue
			}
		}
		buf = append(buf, e)
	}
	slices.SortStableFunc(buf, func(a, b Entity) int {
		return cmp.Compare(st.zIndex(a), st.zIndex(b))
	})
	return buf
}

func (st *State) zIndex(e Entity) int {
	if e.Index() < len(st.props) {
		return st.props[e.idx].ZIndex
	}
	return 0
}

// DrawOrder returns the visible entities in paint order: tree pre-order,
// stable-sorted by ZIndex. Hover resolution uses the same order, so the
// last entity under the pointer is the one painted on top.
func (st *State) DrawOrder() []Entity {
	st.orderBuf = st.appendDrawOrder(st.orderBuf[:0])
	return slices.Clone(st.orderBuf)
}

// --- Hit testing ---

// hitTest reports whether the pointer lies inside e's hit rect and clip
// rect, after mapping it through the inverse of e's world transform.
// Entities with an empty hit rect or a singular transform cannot be hit.
func (st *State) hitTest(e Entity, px, py float64) bool {
	p := &st.props[e.idx]
	if !p.Hoverable || p.Opacity <= 0 {
		return false
	}
	r := p.hitRect()
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	if !p.Clip.IsZero() && !p.Clip.Intersects(r) {
		return false
	}
	g := st.worldBuf[e.idx]
	if !g.IsInvertible() {
		return false
	}
	g.Invert()
	lx, ly := g.Apply(px, py)
	if !r.Contains(lx, ly) {
		return false
	}
	return p.Clip.IsZero() || p.Clip.Contains(lx, ly)
}

// ResolveHover recomputes which entity is topmost under the pointer.
//
// Entities whose over-state flips during the scan get MouseOut or MouseOver,
// in paint order. If the hovered entity changed, the new one gets
// MouseEnter, the old one MouseLeave, and the pass requests the new cursor
// icon and a restyle of the root. Every notification is queued for the next
// flush.
func (st *State) ResolveHover() {
	st.computeWorldTransforms()
	st.orderBuf = st.appendDrawOrder(st.orderBuf[:0])
	st.growProps(Entity{idx: uint32(len(st.Tree.parent) - 1)})

	visited := make([]bool, len(st.over))
	px, py := st.pointer.X, st.pointer.Y
	hovered := Root

	for _, e := range st.orderBuf {
		visited[e.idx] = true
		inside := st.hitTest(e, px, py)
		if inside != st.over[e.idx] {
			st.over[e.idx] = inside
			if inside {
				st.InsertEvent(NewEvent(WindowMouseOver).Direct(e))
			} else {
				st.InsertEvent(NewEvent(WindowMouseOut).Direct(e))
			}
		}
		if inside {
			hovered = e
		}
	}

	// Entities that were hidden or detached since the last pass.
	for i, over := range st.over {
		if over && !visited[i] {
			st.over[i] = false
			e := Entity{idx: uint32(i)}
			if st.Tree.Contains(e) {
				st.InsertEvent(NewEvent(WindowMouseOut).Direct(e))
			}
		}
	}

	if hovered == st.hovered {
		return
	}
	old := st.hovered
	st.hovered = hovered
	st.InsertEvent(NewEvent(WindowMouseEnter).Direct(hovered))
	if st.Tree.Contains(old) {
		st.InsertEvent(NewEvent(WindowMouseLeave).Direct(old))
	}
	st.InsertEvent(NewEvent(SetCursor{Icon: st.props[hovered.idx].Cursor}).Direct(Root))
	st.InsertEvent(NewEvent(WindowRestyle).Direct(Root))
	if st.debug {
		st.debugf("hover: %s -> %s", st.label(old), st.label(hovered))
	}
}
