package inspect

import (
	"errors"
	"fmt"

	"github.com/machlink-protocol/machlink-go/pkg/model"
)

// Inspector errors.
var (
	ErrNotFound = errors.New("no entity matches path")
)

// Inspector provides lookup and traversal over one resolved device tree.
type Inspector struct {
	device *model.Device
	graph  *model.ComponentGraph
}

// NewInspector creates an Inspector for the given device and its graph.
func NewInspector(device *model.Device, graph *model.ComponentGraph) *Inspector {
	return &Inspector{device: device, graph: graph}
}

// Device returns the underlying device tree.
func (i *Inspector) Device() *model.Device {
	return i.device
}

// Graph returns the identity index.
func (i *Inspector) Graph() *model.ComponentGraph {
	return i.graph
}

// ByID looks an entity up directly in the identity index.
func (i *Inspector) ByID(id string) (model.Entity, error) {
	entity, ok := i.graph.Lookup(id)
	if !ok {
		return model.Entity{}, fmt.Errorf("%w: id %q", ErrNotFound, id)
	}
	return entity, nil
}

// Find walks a path expression from the device root. Each segment
// matches a child component by name or id; the final segment may also
// match a data item owned by the last matched component.
func (i *Inspector) Find(input string) (model.Entity, error) {
	path, err := ParsePath(input)
	if err != nil {
		return model.Entity{}, err
	}

	current := i.device.Root()
	for idx, segment := range path.Segments {
		last := idx == len(path.Segments)-1

		if child := matchChild(current, segment); child != nil {
			current = child
			continue
		}

		if last {
			if item := matchDataItem(current, segment); item != nil {
				return model.Entity{Kind: model.EntityDataItem, DataItem: item}, nil
			}
		}

		return model.Entity{}, fmt.Errorf("%w: segment %q of %q", ErrNotFound, segment, path.Raw)
	}

	return model.Entity{Kind: model.EntityComponent, Component: current}, nil
}

// UnboundReferences walks the tree and returns every reference that is
// still unresolved, paired with its owning component.
func (i *Inspector) UnboundReferences() []UnboundReference {
	var out []UnboundReference
	collectUnbound(i.device.Root(), &out)
	return out
}

// UnboundReference pairs an unresolved reference with its owner.
type UnboundReference struct {
	Component *model.Component
	Reference *model.Reference
}

func collectUnbound(c *model.Component, out *[]UnboundReference) {
	for _, ref := range c.References() {
		if !ref.Resolved() {
			*out = append(*out, UnboundReference{Component: c, Reference: ref})
		}
	}
	for _, child := range c.Children() {
		collectUnbound(child, out)
	}
}

func matchChild(c *model.Component, segment string) *model.Component {
	for _, child := range c.Children() {
		if child.Name() == segment || child.ID() == segment {
			return child
		}
	}
	return nil
}

func matchDataItem(c *model.Component, segment string) *model.DataItem {
	for _, item := range c.DataItems() {
		if item.Name() == segment || item.ID() == segment {
			return item
		}
	}
	return nil
}
