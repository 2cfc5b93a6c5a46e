package grove

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural tree mutations. A failed mutation leaves the
// tree unchanged.
var (
	// ErrNullEntity is returned when Null is passed where a real entity is required.
	ErrNullEntity = errors.New("grove: null entity")

	// ErrRootExists is returned when an entity is added without a parent.
	// Only the root has no parent, and every tree already has one.
	ErrRootExists = errors.New("grove: root already exists")

	// ErrParentNotFound is returned when the parent is not attached to the tree.
	ErrParentNotFound = errors.New("grove: parent not in tree")

	// ErrAlreadyParented is returned when the entity already has a parent.
	// Re-parenting goes through Remove then Add.
	ErrAlreadyParented = errors.New("grove: entity already has a parent")

	// ErrNotFound is returned when the entity is not attached to the tree.
	ErrNotFound = errors.New("grove: entity not in tree")

	// ErrRemoveRoot is returned when removing the root is attempted.
	ErrRemoveRoot = errors.New("grove: cannot remove root")

	// ErrIndexOutOfRange is returned by AddAt for a position past the last child.
	ErrIndexOutOfRange = errors.New("grove: child index out of range")
)

// InvariantError describes the first structural invariant violation found by
// Tree.Validate.
type InvariantError struct {
	Entity Entity
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("grove: tree invariant violated at %v: %s", e.Entity, e.Reason)
}
