package model

// ReferenceKind distinguishes what a reference may resolve to.
type ReferenceKind uint8

const (
	// ReferenceDataItem references a data item by id.
	ReferenceDataItem ReferenceKind = iota + 1

	// ReferenceComponent references a component by id.
	ReferenceComponent
)

// String returns the kind name.
func (k ReferenceKind) String() string {
	switch k {
	case ReferenceDataItem:
		return "DATA_ITEM"
	case ReferenceComponent:
		return "COMPONENT"
	default:
		return "UNKNOWN"
	}
}

// Reference is a by-id pointer from one component to a component or data
// item elsewhere in the same device tree. It is declared during the build
// phase and stays unresolved until ComponentGraph.Resolve binds it.
//
// The binding is non-owning. Callers must check Resolved (or the ok
// result of DataItem/Component) before trusting the target: a reference
// whose id had no match keeps an empty binding after resolution and is
// reported as a ResolutionIssue.
type Reference struct {
	id   string
	name string
	kind ReferenceKind

	// Binding slot, nil until resolved. Exactly one is set, matching kind.
	dataItem  *DataItem
	component *Component
}

// NewReference declares an unresolved reference. The name is the declared
// friendly name, independent of the target's own name.
func NewReference(id, name string, kind ReferenceKind) *Reference {
	return &Reference{id: id, name: name, kind: kind}
}

// ID returns the referenced id.
func (r *Reference) ID() string {
	return r.id
}

// Name returns the declared friendly name.
func (r *Reference) Name() string {
	return r.name
}

// Kind returns the declared reference kind.
func (r *Reference) Kind() ReferenceKind {
	return r.kind
}

// Resolved reports whether the reference has been bound to a target.
func (r *Reference) Resolved() bool {
	return r.dataItem != nil || r.component != nil
}

// DataItem returns the bound data item. ok is false while unresolved or
// when the reference is of component kind.
func (r *Reference) DataItem() (item *DataItem, ok bool) {
	return r.dataItem, r.dataItem != nil
}

// Component returns the bound component. ok is false while unresolved or
// when the reference is of data-item kind.
func (r *Reference) Component() (component *Component, ok bool) {
	return r.component, r.component != nil
}

func (r *Reference) bindDataItem(item *DataItem) {
	r.dataItem = item
	r.component = nil
}

func (r *Reference) bindComponent(component *Component) {
	r.component = component
	r.dataItem = nil
}
