package model

// ComponentGraph is the device-wide identity index used to resolve
// references. It is built once per load cycle, after the whole device
// subtree exists and before any resolution begins, and is passed
// explicitly to the resolution pass instead of living as ambient state.
type ComponentGraph struct {
	device *Device
	index  map[string]Entity
}

// BuildGraph scans the device's subtree and indexes every component and
// data item by id. It returns a *DuplicateIDError if two entities share
// an id; a device with a colliding namespace must not be published.
func BuildGraph(device *Device) (*ComponentGraph, error) {
	g := &ComponentGraph{
		device: device,
		index:  make(map[string]Entity),
	}
	if err := g.indexComponent(device.Root()); err != nil {
		return nil, err
	}
	return g, nil
}

// indexComponent adds a component, its data items, and its children to
// the index, depth-first in declaration order.
//
// It also warms each node's device-root cache while the tree is still
// single-writer, so Device() on a published tree never writes.
func (g *ComponentGraph) indexComponent(c *Component) error {
	c.device = g.device
	if err := g.add(Entity{Kind: EntityComponent, Component: c}); err != nil {
		return err
	}
	for _, item := range c.DataItems() {
		if err := g.add(Entity{Kind: EntityDataItem, DataItem: item}); err != nil {
			return err
		}
	}
	for _, child := range c.Children() {
		if err := g.indexComponent(child); err != nil {
			return err
		}
	}
	return nil
}

func (g *ComponentGraph) add(entity Entity) error {
	id := entity.ID()
	if first, exists := g.index[id]; exists {
		return &DuplicateIDError{ID: id, First: first, Second: entity}
	}
	g.index[id] = entity
	return nil
}

// Device returns the device this graph indexes.
func (g *ComponentGraph) Device() *Device {
	return g.device
}

// Len returns the number of indexed entities.
func (g *ComponentGraph) Len() int {
	return len(g.index)
}

// Lookup returns the entity with the given id.
func (g *ComponentGraph) Lookup(id string) (Entity, bool) {
	entity, ok := g.index[id]
	return entity, ok
}

// Component returns the indexed component with the given id.
func (g *ComponentGraph) Component(id string) (*Component, bool) {
	entity, ok := g.index[id]
	if !ok || entity.Kind != EntityComponent {
		return nil, false
	}
	return entity.Component, true
}

// DataItem returns the indexed data item with the given id.
func (g *ComponentGraph) DataItem(id string) (*DataItem, bool) {
	entity, ok := g.index[id]
	if !ok || entity.Kind != EntityDataItem {
		return nil, false
	}
	return entity.DataItem, true
}

// Resolve runs the deferred resolution pass depth-first over the whole
// device subtree, binding every component's references against the index.
// Issues for references that stay unbound (missing target, kind mismatch)
// are collected per reference, never defaulted to a guessed target.
//
// Resolve is safe to run again after a complete pass: already-bound
// references are simply re-bound to the same targets.
func (g *ComponentGraph) Resolve() []ResolutionIssue {
	return g.resolveSubtree(g.device.Root(), nil)
}

func (g *ComponentGraph) resolveSubtree(c *Component, issues []ResolutionIssue) []ResolutionIssue {
	issues = append(issues, g.ResolveComponent(c)...)
	for _, child := range c.Children() {
		issues = g.resolveSubtree(child, issues)
	}
	return issues
}

// ResolveComponent binds the references owned by a single component, in
// declaration order. It does not recurse; Resolve walks the tree.
func (g *ComponentGraph) ResolveComponent(c *Component) []ResolutionIssue {
	var issues []ResolutionIssue

	for _, ref := range c.References() {
		entity, ok := g.index[ref.ID()]
		if !ok {
			issues = append(issues, ResolutionIssue{
				ComponentID: c.ID(),
				ReferenceID: ref.ID(),
				Name:        ref.Name(),
				Kind:        ref.Kind(),
				Err:         ErrUnresolvedReference,
			})
			continue
		}

		switch ref.Kind() {
		case ReferenceDataItem:
			if entity.Kind != EntityDataItem {
				issues = append(issues, g.mismatch(c, ref))
				continue
			}
			ref.bindDataItem(entity.DataItem)

		case ReferenceComponent:
			if entity.Kind != EntityComponent {
				issues = append(issues, g.mismatch(c, ref))
				continue
			}
			ref.bindComponent(entity.Component)

		default:
			issues = append(issues, g.mismatch(c, ref))
		}
	}

	return issues
}

func (g *ComponentGraph) mismatch(c *Component, ref *Reference) ResolutionIssue {
	return ResolutionIssue{
		ComponentID: c.ID(),
		ReferenceID: ref.ID(),
		Name:        ref.Name(),
		Kind:        ref.Kind(),
		Err:         ErrKindMismatch,
	}
}
