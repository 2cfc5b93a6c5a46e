package grove

import "fmt"

// Tree is the structural forest of entities. Links are stored in parallel
// slices indexed by entity, so a snapshot is a handful of slice copies.
//
// Only attached entities are part of the tree. Removing an entity detaches
// it together with its subtree; the detached fragment keeps its internal
// links and storage until it is re-attached with Add or cleared with Delete.
type Tree struct {
	parent      []Entity
	firstChild  []Entity
	lastChild   []Entity
	nextSibling []Entity
	prevSibling []Entity
	childCount  []int
	attached    []bool
	count       int
}

// NewTree creates a tree containing only Root.
func NewTree() *Tree {
	t := &Tree{}
	t.grow(Root)
	t.attached[Root.idx] = true
	t.count = 1
	return t
}

// grow extends storage so that e is a valid index.
func (t *Tree) grow(e Entity) {
	n := e.Index() + 1
	for len(t.parent) < n {
		t.parent = append(t.parent, Null)
		t.firstChild = append(t.firstChild, Null)
		t.lastChild = append(t.lastChild, Null)
		t.nextSibling = append(t.nextSibling, Null)
		t.prevSibling = append(t.prevSibling, Null)
		t.childCount = append(t.childCount, 0)
		t.attached = append(t.attached, false)
	}
}

func (t *Tree) inRange(e Entity) bool {
	return !e.IsNull() && e.Index() < len(t.parent)
}

// Contains reports whether e is attached to the tree.
func (t *Tree) Contains(e Entity) bool {
	return t.inRange(e) && t.attached[e.idx]
}

// Len returns the number of attached entities, Root included.
func (t *Tree) Len() int {
	return t.count
}

// --- Lookups ---

// Parent returns e's parent, or Null.
func (t *Tree) Parent(e Entity) Entity {
	if !t.inRange(e) {
		return Null
	}
	return t.parent[e.idx]
}

// FirstChild returns e's first child, or Null.
func (t *Tree) FirstChild(e Entity) Entity {
	if !t.inRange(e) {
		return Null
	}
	return t.firstChild[e.idx]
}

// LastChild returns e's last child, or Null.
func (t *Tree) LastChild(e Entity) Entity {
	if !t.inRange(e) {
		return Null
	}
	return t.lastChild[e.idx]
}

// NextSibling returns the sibling after e, or Null.
func (t *Tree) NextSibling(e Entity) Entity {
	if !t.inRange(e) {
		return Null
	}
	return t.nextSibling[e.idx]
}

// PrevSibling returns the sibling before e, or Null.
func (t *Tree) PrevSibling(e Entity) Entity {
	if !t.inRange(e) {
		return Null
	}
	return t.prevSibling[e.idx]
}

// NumChildren returns the number of direct children of e.
func (t *Tree) NumChildren(e Entity) int {
	if !t.inRange(e) {
		return 0
	}
	return t.childCount[e.idx]
}

// HasChildren reports whether e has at least one child.
func (t *Tree) HasChildren(e Entity) bool {
	return !t.FirstChild(e).IsNull()
}

// Child returns the child of parent at index, walking from the first child.
// Returns Null when index is out of range.
func (t *Tree) Child(parent Entity, index int) Entity {
	if index < 0 {
		return Null
	}
	c := t.FirstChild(parent)
	for i := 0; i < index && !c.IsNull(); i++ {
		c = t.nextSibling[c.idx]
	}
	return c
}

// --- Predicates ---

// IsSibling reports whether a and b are distinct children of the same parent.
func (t *Tree) IsSibling(a, b Entity) bool {
	if a == b || !t.Contains(a) || !t.Contains(b) {
		return false
	}
	p := t.parent[a.idx]
	return !p.IsNull() && p == t.parent[b.idx]
}

// IsChildOf reports whether a is a direct child of b.
func (t *Tree) IsChildOf(a, b Entity) bool {
	return t.Contains(a) && !b.IsNull() && t.parent[a.idx] == b
}

// IsDescendantOf reports whether b is a proper ancestor of a.
func (t *Tree) IsDescendantOf(a, b Entity) bool {
	if !t.Contains(a) || b.IsNull() {
		return false
	}
	for p := t.parent[a.idx]; !p.IsNull(); p = t.parent[p.idx] {
		if p == b {
			return true
		}
	}
	return false
}

// --- Mutation ---

// Add appends e as the last child of parent.
func (t *Tree) Add(e, parent Entity) error {
	if err := t.checkInsert(e, parent); err != nil {
		return err
	}
	t.grow(e)
	t.link(e, parent, Null)
	t.attachSubtree(e)
	return nil
}

// AddAt inserts e among parent's children so that it ends up at index.
// An index equal to the child count appends.
func (t *Tree) AddAt(e, parent Entity, index int) error {
	if err := t.checkInsert(e, parent); err != nil {
		return err
	}
	n := t.childCount[parent.idx]
	if index < 0 || index > n {
		return fmt.Errorf("%w: %d (children: %d)", ErrIndexOutOfRange, index, n)
	}
	before := Null
	if index < n {
		before = t.Child(parent, index)
	}
	t.grow(e)
	t.link(e, parent, before)
	t.attachSubtree(e)
	return nil
}

func (t *Tree) checkInsert(e, parent Entity) error {
	if e.IsNull() {
		return ErrNullEntity
	}
	if parent.IsNull() {
		if e == Root {
			return ErrRootExists
		}
		return ErrParentNotFound
	}
	if !t.Contains(parent) {
		return ErrParentNotFound
	}
	// A detached fragment member still points at its fragment parent.
	if t.Contains(e) || !t.Parent(e).IsNull() {
		return ErrAlreadyParented
	}
	return nil
}

// Remove detaches e and its subtree from the tree in O(1) link patching
// plus one pass to clear the attached flags. The subtree keeps its links so
// it can be re-attached with Add.
func (t *Tree) Remove(e Entity) error {
	if e == Root {
		return ErrRemoveRoot
	}
	if !t.Contains(e) {
		return ErrNotFound
	}
	t.unlink(e)
	t.detachSubtree(e)
	return nil
}

// Delete detaches e and clears every link inside its subtree. It returns the
// removed entities in pre-order, e first.
func (t *Tree) Delete(e Entity) ([]Entity, error) {
	if err := t.Remove(e); err != nil {
		return nil, err
	}
	var removed []Entity
	it := t.Branch(e)
	for x, ok := it.Next(); ok; x, ok = it.Next() {
		removed = append(removed, x)
	}
	for _, x := range removed {
		t.parent[x.idx] = Null
		t.firstChild[x.idx] = Null
		t.lastChild[x.idx] = Null
		t.nextSibling[x.idx] = Null
		t.prevSibling[x.idx] = Null
		t.childCount[x.idx] = 0
	}
	return removed, nil
}

// Unwrap removes e alone. Its children take its place under e's parent, in
// their original order.
func (t *Tree) Unwrap(e Entity) error {
	if e == Root {
		return ErrRemoveRoot
	}
	if !t.Contains(e) {
		return ErrNotFound
	}
	p := t.parent[e.idx]
	for c := t.firstChild[e.idx]; !c.IsNull(); c = t.firstChild[e.idx] {
		t.unlink(c)
		t.link(c, p, e)
	}
	t.unlink(e)
	t.attached[e.idx] = false
	t.count--
	return nil
}

// link wires e into parent's child chain before the given sibling, or at the
// end when before is Null.
func (t *Tree) link(e, parent, before Entity) {
	t.parent[e.idx] = parent
	if before.IsNull() {
		prev := t.lastChild[parent.idx]
		t.prevSibling[e.idx] = prev
		t.nextSibling[e.idx] = Null
		if prev.IsNull() {
			t.firstChild[parent.idx] = e
		} else {
			t.nextSibling[prev.idx] = e
		}
		t.lastChild[parent.idx] = e
	} else {
		prev := t.prevSibling[before.idx]
		t.prevSibling[e.idx] = prev
		t.nextSibling[e.idx] = before
		t.prevSibling[before.idx] = e
		if prev.IsNull() {
			t.firstChild[parent.idx] = e
		} else {
			t.nextSibling[prev.idx] = e
		}
	}
	t.childCount[parent.idx]++
}

// unlink removes e from its parent's child chain and clears e's parent and
// sibling links. e's own children are untouched.
func (t *Tree) unlink(e Entity) {
	p := t.parent[e.idx]
	prev := t.prevSibling[e.idx]
	next := t.nextSibling[e.idx]
	if prev.IsNull() {
		t.firstChild[p.idx] = next
	} else {
		t.nextSibling[prev.idx] = next
	}
	if next.IsNull() {
		t.lastChild[p.idx] = prev
	} else {
		t.prevSibling[next.idx] = prev
	}
	t.childCount[p.idx]--
	t.parent[e.idx] = Null
	t.prevSibling[e.idx] = Null
	t.nextSibling[e.idx] = Null
}

func (t *Tree) attachSubtree(e Entity) {
	it := t.Branch(e)
	for x, ok := it.Next(); ok; x, ok = it.Next() {
		t.attached[x.idx] = true
		t.count++
	}
}

func (t *Tree) detachSubtree(e Entity) {
	it := t.Branch(e)
	for x, ok := it.Next(); ok; x, ok = it.Next() {
		t.attached[x.idx] = false
		t.count--
	}
}

// Clone returns an independent copy of the tree's link storage.
func (t *Tree) Clone() *Tree {
	return &Tree{
		parent:      append([]Entity(nil), t.parent...),
		firstChild:  append([]Entity(nil), t.firstChild...),
		lastChild:   append([]Entity(nil), t.lastChild...),
		nextSibling: append([]Entity(nil), t.nextSibling...),
		prevSibling: append([]Entity(nil), t.prevSibling...),
		childCount:  append([]int(nil), t.childCount...),
		attached:    append([]bool(nil), t.attached...),
		count:       t.count,
	}
}

// --- Validation ---

// Validate checks every structural invariant and returns an *InvariantError
// for the first violation found.
func (t *Tree) Validate() error {
	fail := func(e Entity, format string, args ...any) error {
		return &InvariantError{Entity: e, Reason: fmt.Sprintf(format, args...)}
	}
	if !t.Contains(Root) {
		return fail(Root, "root is not attached")
	}
	if p := t.parent[Root.idx]; !p.IsNull() {
		return fail(Root, "root has parent %v", p)
	}

	attached := 0
	for i := range t.parent {
		e := Entity{idx: uint32(i)}
		if !t.attached[i] {
			continue
		}
		attached++

		if e != Root {
			p := t.parent[i]
			if p.IsNull() {
				return fail(e, "non-root entity has no parent")
			}
			if !t.Contains(p) {
				return fail(e, "parent %v is not in the tree", p)
			}
		}

		// Acyclicity: the parent chain must reach Root in fewer than len steps.
		steps := 0
		for p := e; p != Root; p = t.parent[p.idx] {
			if p.IsNull() || steps > len(t.parent) {
				return fail(e, "ancestor chain does not reach root")
			}
			steps++
		}

		first, last, n := t.firstChild[i], t.lastChild[i], t.childCount[i]
		if first.IsNull() != last.IsNull() {
			return fail(e, "first child %v and last child %v disagree", first, last)
		}
		if first.IsNull() && n != 0 {
			return fail(e, "leaf has child count %d", n)
		}

		var forward []Entity
		prev := Null
		for c := first; !c.IsNull(); c = t.nextSibling[c.idx] {
			if len(forward) > n {
				return fail(e, "sibling chain longer than child count %d", n)
			}
			if t.parent[c.idx] != e {
				return fail(c, "child of %v records parent %v", e, t.parent[c.idx])
			}
			if t.prevSibling[c.idx] != prev {
				return fail(c, "previous sibling is %v, want %v", t.prevSibling[c.idx], prev)
			}
			forward = append(forward, c)
			prev = c
		}
		if len(forward) != n {
			return fail(e, "sibling chain has %d entries, child count is %d", len(forward), n)
		}
		if prev != last {
			return fail(e, "sibling chain ends at %v, last child is %v", prev, last)
		}
		j := len(forward) - 1
		for c := last; !c.IsNull(); c = t.prevSibling[c.idx] {
			if j < 0 || forward[j] != c {
				return fail(e, "backward sibling chain is not the reverse of the forward chain")
			}
			j--
		}
	}
	if attached != t.count {
		return fail(Root, "attached count %d, recorded %d", attached, t.count)
	}

	reachable := 0
	it := t.Iter()
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		if !t.attached[e.idx] {
			return fail(e, "reachable from root but not attached")
		}
		reachable++
	}
	if reachable != attached {
		return fail(Root, "%d entities attached, %d reachable from root", attached, reachable)
	}
	return nil
}
