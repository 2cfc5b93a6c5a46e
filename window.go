package grove

// isWindow reports whether e's props mark it as a nested window root.
func (st *State) isWindow(e Entity) bool {
	return e.Index() < len(st.props) && st.props[e.idx].Window
}

// WindowOf returns the closest entity enclosing e, e included, whose props
// set Window. Root is the outermost window.
func (st *State) WindowOf(e Entity) Entity {
	it := st.Tree.Ancestors(e)
	for x, ok := it.Next(); ok; x, ok = it.Next() {
		if st.isWindow(x) {
			return x
		}
	}
	return Root
}

// WindowEntities returns w and the entities of its window in pre-order.
// Nested windows and their subtrees are left out.
func (st *State) WindowEntities(w Entity) []Entity {
	if !st.Tree.Contains(w) {
		return nil
	}
	var out []Entity
	for e := range st.Tree.Window(w, st.isWindow).All() {
		out = append(out, e)
	}
	return out
}

// focusable reports whether e can take focus through FocusNext.
func (st *State) focusable(e Entity) bool {
	if e.Index() >= len(st.props) {
		return false
	}
	p := &st.props[e.idx]
	return p.Visible && p.Display && p.Hoverable && p.Bounds.Width > 0 && p.Bounds.Height > 0
}

// FocusNext moves focus to the next focusable entity in the focused
// entity's window, in pre-order, wrapping around. An entity is focusable
// when it is visible, displayed and hoverable with a non-empty rect. The
// window root itself is never chosen. It reports whether focus moved.
func (st *State) FocusNext() bool {
	entities := st.WindowEntities(st.WindowOf(st.focused))
	if len(entities) < 2 {
		return false
	}
	candidates := entities[1:]

	start := -1
	for i, e := range candidates {
		if e == st.focused {
			start = i
			break
		}
	}
	for n := 1; n <= len(candidates); n++ {
		e := candidates[(start+n)%len(candidates)]
		if e != st.focused && st.focusable(e) {
			st.SetFocus(e)
			return true
		}
	}
	return false
}
