package grove

import "iter"

// Tree iterators are lazy cursors over a *Tree. They must not be used after a
// structural mutation of the tree they borrow; the result is unspecified.

// TreeIter walks a subtree depth-first in pre-order: a node, then its first
// child's subtree, then that child's next sibling, and so on. It never leaves
// the subtree of the node it started at.
type TreeIter struct {
	tree    *Tree
	start   Entity
	current Entity
	last    Entity
}

// Iter walks the whole tree in pre-order from Root.
func (t *Tree) Iter() *TreeIter {
	return t.Branch(Root)
}

// Branch walks the subtree rooted at start in pre-order, start first.
func (t *Tree) Branch(start Entity) *TreeIter {
	cur := start
	if !t.inRange(start) {
		cur = Null
	}
	return &TreeIter{tree: t, start: start, current: cur, last: Null}
}

// Next returns the next entity in pre-order.
func (it *TreeIter) Next() (Entity, bool) {
	e := it.current
	if e.IsNull() {
		return Null, false
	}
	it.last = e
	if fc := it.tree.firstChild[e.idx]; !fc.IsNull() {
		it.current = fc
	} else {
		it.current = it.tree.nextBranch(e, it.start)
	}
	return e, true
}

// SkipBranch drops the unvisited remainder of the subtree of the entity most
// recently returned by Next.
func (it *TreeIter) SkipBranch() {
	if it.last.IsNull() {
		return
	}
	it.current = it.tree.nextBranch(it.last, it.start)
}

// All returns the remaining entities as a range-over-func sequence.
func (it *TreeIter) All() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for e, ok := it.Next(); ok; e, ok = it.Next() {
			if !yield(e) {
				return
			}
		}
	}
}

// nextBranch returns the entity that follows e's subtree in pre-order,
// backing out through ancestors but never past bound.
func (t *Tree) nextBranch(e, bound Entity) Entity {
	for x := e; !x.IsNull() && x != bound; x = t.parent[x.idx] {
		if ns := t.nextSibling[x.idx]; !ns.IsNull() {
			return ns
		}
	}
	return Null
}

// ParentIter walks from an entity up to Root, yielding the start entity
// first and Root last.
type ParentIter struct {
	tree    *Tree
	current Entity
}

// Ancestors returns a ParentIter starting at start.
func (t *Tree) Ancestors(start Entity) *ParentIter {
	cur := start
	if !t.inRange(start) {
		cur = Null
	}
	return &ParentIter{tree: t, current: cur}
}

// Next returns the next entity on the way to the root.
func (it *ParentIter) Next() (Entity, bool) {
	e := it.current
	if e.IsNull() {
		return Null, false
	}
	it.current = it.tree.parent[e.idx]
	return e, true
}

// All returns the remaining entities as a range-over-func sequence.
func (it *ParentIter) All() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for e, ok := it.Next(); ok; e, ok = it.Next() {
			if !yield(e) {
				return
			}
		}
	}
}

// ChildIter walks the direct children of an entity. It is double-ended:
// Next consumes from the first child, NextBack from the last, and the two
// ends never cross.
type ChildIter struct {
	tree      *Tree
	front     Entity
	back      Entity
	remaining int
}

// Children returns a ChildIter over parent's direct children.
func (t *Tree) Children(parent Entity) *ChildIter {
	return &ChildIter{
		tree:      t,
		front:     t.FirstChild(parent),
		back:      t.LastChild(parent),
		remaining: t.NumChildren(parent),
	}
}

// Next returns the next child from the front.
func (it *ChildIter) Next() (Entity, bool) {
	if it.remaining == 0 || it.front.IsNull() {
		return Null, false
	}
	e := it.front
	it.front = it.tree.nextSibling[e.idx]
	it.remaining--
	return e, true
}

// NextBack returns the next child from the back.
func (it *ChildIter) NextBack() (Entity, bool) {
	if it.remaining == 0 || it.back.IsNull() {
		return Null, false
	}
	e := it.back
	it.back = it.tree.prevSibling[e.idx]
	it.remaining--
	return e, true
}

// All returns the remaining children, front to back.
func (it *ChildIter) All() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for e, ok := it.Next(); ok; e, ok = it.Next() {
			if !yield(e) {
				return
			}
		}
	}
}

// WindowIter walks a window's subtree in pre-order without entering nested
// windows. A nested window and all of its descendants are skipped; the start
// entity is always yielded even when it is itself a window.
type WindowIter struct {
	inner    *TreeIter
	isWindow func(Entity) bool
}

// Window returns a WindowIter over start's subtree. isWindow reports whether
// an entity opens a nested window.
func (t *Tree) Window(start Entity, isWindow func(Entity) bool) *WindowIter {
	return &WindowIter{inner: t.Branch(start), isWindow: isWindow}
}

// Next returns the next entity that belongs to this window.
func (it *WindowIter) Next() (Entity, bool) {
	for {
		e, ok := it.inner.Next()
		if !ok {
			return Null, false
		}
		if e != it.inner.start && it.isWindow != nil && it.isWindow(e) {
			it.inner.SkipBranch()
			continue
		}
		return e, true
	}
}

// All returns the remaining entities as a range-over-func sequence.
func (it *WindowIter) All() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for e, ok := it.Next(); ok; e, ok = it.Next() {
			if !yield(e) {
				return
			}
		}
	}
}
