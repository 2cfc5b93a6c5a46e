package grove

import (
	"math"
	"strconv"
)

// Entity is an opaque handle to one node of the UI tree. It indexes the
// parallel slices of Tree and the props store; it carries no pointer.
//
// The zero value is Root. Entities can only be obtained from an
// EntityAllocator, Root or Null.
type Entity struct {
	idx uint32
}

const nullIndex = math.MaxUint32

// Null is the "no entity" sentinel. A Null event target means broadcast.
var Null = Entity{idx: nullIndex}

// Root is the top of every tree. It is always index 0.
var Root = Entity{}

// IsNull reports whether e is the Null sentinel.
func (e Entity) IsNull() bool {
	return e.idx == nullIndex
}

// Index returns the raw storage index.
func (e Entity) Index() int {
	return int(e.idx)
}

// Less orders entities by raw index.
func (e Entity) Less(other Entity) bool {
	return e.idx < other.idx
}

func (e Entity) String() string {
	switch {
	case e.IsNull():
		return "Entity(null)"
	case e == Root:
		return "Entity(root)"
	}
	return "Entity(" + strconv.FormatUint(uint64(e.idx), 10) + ")"
}

// EntityAllocator hands out entity indices from a plain counter (no atomic,
// grove is single-threaded). Indices are never recycled, so a stale Entity
// can never alias a newer one.
type EntityAllocator struct {
	next uint32
}

// Create returns the next unused entity. Index 0 is reserved for Root.
func (a *EntityAllocator) Create() Entity {
	a.next++
	if a.next == nullIndex {
		panic("grove: entity index space exhausted")
	}
	return Entity{idx: a.next}
}

// Count returns how many entities have been created since the last Reset,
// not counting Root.
func (a *EntityAllocator) Count() int {
	return int(a.next)
}

// Reset releases every index in bulk. Only call it when the whole tree is
// torn down.
func (a *EntityAllocator) Reset() {
	a.next = 0
}
