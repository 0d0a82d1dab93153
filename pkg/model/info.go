package model

// Snapshot structs for the wire codec. CBOR encoding uses integer keys
// for compactness, matching the rest of the MachLink wire surface.

// DeviceInfo is a wire snapshot of a device tree.
type DeviceInfo struct {
	ID   string         `cbor:"1,keyasint"`
	Name string         `cbor:"2,keyasint,omitempty"`
	UUID string         `cbor:"3,keyasint,omitempty"`
	Root *ComponentInfo `cbor:"4,keyasint"`
}

// ComponentInfo is a wire snapshot of one component and its subtree.
type ComponentInfo struct {
	ID            string             `cbor:"1,keyasint"`
	Class         string             `cbor:"2,keyasint"`
	PrefixedClass string             `cbor:"3,keyasint,omitempty"`
	Name          string             `cbor:"4,keyasint,omitempty"`
	NativeName    string             `cbor:"5,keyasint,omitempty"`
	UUID          string             `cbor:"6,keyasint,omitempty"`
	Description   map[string]string  `cbor:"7,keyasint,omitempty"`
	DataItems     []*DataItemInfo    `cbor:"8,keyasint,omitempty"`
	Compositions  []*CompositionInfo `cbor:"9,keyasint,omitempty"`
	References    []*ReferenceInfo   `cbor:"10,keyasint,omitempty"`
	Children      []*ComponentInfo   `cbor:"11,keyasint,omitempty"`
}

// DataItemInfo is a wire snapshot of a data item.
type DataItemInfo struct {
	ID       string `cbor:"1,keyasint"`
	Name     string `cbor:"2,keyasint,omitempty"`
	Type     string `cbor:"3,keyasint,omitempty"`
	Category string `cbor:"4,keyasint,omitempty"`
}

// CompositionInfo is a wire snapshot of a composition.
type CompositionInfo struct {
	ID   string `cbor:"1,keyasint"`
	Type string `cbor:"2,keyasint,omitempty"`
	Name string `cbor:"3,keyasint,omitempty"`
	UUID string `cbor:"4,keyasint,omitempty"`
}

// ReferenceInfo is a wire snapshot of a reference, including whether it
// was bound and what it bound to.
type ReferenceInfo struct {
	ID       string `cbor:"1,keyasint"`
	Name     string `cbor:"2,keyasint,omitempty"`
	Kind     string `cbor:"3,keyasint"`
	Resolved bool   `cbor:"4,keyasint"`
	TargetID string `cbor:"5,keyasint,omitempty"`
}

// Info returns a device snapshot covering the whole tree.
func (d *Device) Info() *DeviceInfo {
	return &DeviceInfo{
		ID:   d.ID(),
		Name: d.Name(),
		UUID: d.UUID(),
		Root: d.Root().Info(),
	}
}

// Info returns a snapshot of this component and its subtree, with owned
// entities in declaration order.
func (c *Component) Info() *ComponentInfo {
	info := &ComponentInfo{
		ID:         c.id,
		Class:      c.class,
		Name:       c.name,
		NativeName: c.nativeName,
		UUID:       c.uuid,
	}
	if c.prefix != "" {
		info.PrefixedClass = c.prefixedClass
	}
	if len(c.description) > 0 {
		desc := make(map[string]string, len(c.description))
		for k, v := range c.description {
			desc[k] = v
		}
		info.Description = desc
	}

	for _, item := range c.dataItems {
		info.DataItems = append(info.DataItems, item.Info())
	}
	for _, comp := range c.compositions {
		info.Compositions = append(info.Compositions, comp.Info())
	}
	for _, ref := range c.references {
		info.References = append(info.References, ref.Info())
	}
	for _, child := range c.children {
		info.Children = append(info.Children, child.Info())
	}

	return info
}

// Info returns a data item snapshot.
func (d *DataItem) Info() *DataItemInfo {
	return &DataItemInfo{
		ID:       d.id,
		Name:     d.name,
		Type:     d.itemType,
		Category: d.category,
	}
}

// Info returns a composition snapshot.
func (c *Composition) Info() *CompositionInfo {
	return &CompositionInfo{
		ID:   c.id,
		Type: c.compositionType,
		Name: c.name,
		UUID: c.uuid,
	}
}

// Info returns a reference snapshot.
func (r *Reference) Info() *ReferenceInfo {
	info := &ReferenceInfo{
		ID:       r.id,
		Name:     r.name,
		Kind:     r.kind.String(),
		Resolved: r.Resolved(),
	}
	if item, ok := r.DataItem(); ok {
		info.TargetID = item.ID()
	}
	if component, ok := r.Component(); ok {
		info.TargetID = component.ID()
	}
	return info
}
