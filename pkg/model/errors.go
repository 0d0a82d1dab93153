package model

import (
	"errors"
	"fmt"
)

// Model errors.
var (
	// ErrDetachedComponent is returned by Component.Device when the
	// component is not yet attached to a rooted tree.
	ErrDetachedComponent = errors.New("component not attached to a device tree")

	// ErrUnresolvedReference marks a reference whose id has no match in
	// the device's namespace after the resolution pass.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrKindMismatch marks a reference whose id resolved to an entity
	// of the wrong kind.
	ErrKindMismatch = errors.New("reference kind mismatch")
)

// EntityKind tags what an identity index entry points at.
type EntityKind uint8

const (
	// EntityComponent is a component entry.
	EntityComponent EntityKind = iota + 1

	// EntityDataItem is a data item entry.
	EntityDataItem
)

// String returns the entity kind name.
func (k EntityKind) String() string {
	switch k {
	case EntityComponent:
		return "component"
	case EntityDataItem:
		return "data item"
	default:
		return "unknown"
	}
}

// Entity is a tagged identity index entry: exactly one of Component or
// DataItem is set, matching Kind.
type Entity struct {
	Kind      EntityKind
	Component *Component
	DataItem  *DataItem
}

// ID returns the entity's id.
func (e Entity) ID() string {
	switch e.Kind {
	case EntityComponent:
		return e.Component.ID()
	case EntityDataItem:
		return e.DataItem.ID()
	default:
		return ""
	}
}

// DuplicateIDError reports two entities in the same device sharing an id.
// It is fatal to the load: no device with a colliding namespace is
// published.
type DuplicateIDError struct {
	// ID is the colliding id.
	ID string

	// First and Second are the colliding entities in scan order.
	First  Entity
	Second Entity
}

// Error implements the error interface.
func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate id %q: %s collides with %s", e.ID, e.Second.Kind, e.First.Kind)
}

// ResolutionIssue reports one reference that could not be bound during
// the resolution pass. The owning tree remains usable; only the affected
// reference's binding stays absent.
type ResolutionIssue struct {
	// ComponentID is the id of the component owning the reference.
	ComponentID string

	// ReferenceID is the id the reference declared.
	ReferenceID string

	// Name is the reference's declared friendly name.
	Name string

	// Kind is the declared reference kind.
	Kind ReferenceKind

	// Err is ErrUnresolvedReference or ErrKindMismatch.
	Err error
}

// Error implements the error interface.
func (i ResolutionIssue) Error() string {
	return fmt.Sprintf("component %q reference %q (%s): %v",
		i.ComponentID, i.ReferenceID, i.Kind, i.Err)
}

// Unwrap exposes the underlying sentinel for errors.Is.
func (i ResolutionIssue) Unwrap() error {
	return i.Err
}
