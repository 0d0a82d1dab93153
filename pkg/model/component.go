package model

import (
	"sort"
	"strconv"
)

// Attribute keys recognized by NewComponent.
const (
	AttrID             = "id"
	AttrName           = "name"
	AttrNativeName     = "nativeName"
	AttrUUID           = "uuid"
	AttrClass          = "class"
	AttrPrefixedClass  = "prefixedClass"
	AttrSampleInterval = "sampleInterval"
)

// Description keys recognized by AddDescription and the description setters.
const (
	DescManufacturer = "manufacturer"
	DescSerialNumber = "serialNumber"
	DescStation      = "station"
)

// Component is a node in the device hierarchy: a physical or logical part
// of the monitored equipment (axis, controller, sensor, device root).
//
// A component owns its children, data items, compositions, and references.
// The parent link and the cached device/data-item shortcuts are non-owning.
type Component struct {
	// Unique id within the device's component+data-item namespace.
	id string

	// Display names.
	name       string
	nativeName string

	// Taxonomic class, vendor prefix, and the derived prefixed class.
	class         string
	prefix        string
	prefixedClass string

	// Globally unique identifier, optional.
	uuid string

	// Sample rate hint in milliseconds. Zero means unset.
	sampleInterval float64

	// Structured description plus free-text body.
	description     map[string]string
	descriptionBody string

	// Opaque configuration blob, stored verbatim.
	configuration string

	// Tree relationships. parent is non-owning; device is a lazily
	// cached shortcut to the root. owner is set only on the embedded
	// Component of a Device and lets the ancestor walk recover the
	// typed root.
	parent *Component
	device *Device
	owner  *Device

	// Well-known data items recognized among this component's own data
	// items by type tag. Non-owning.
	availability *DataItem
	assetChanged *DataItem
	assetRemoved *DataItem

	// Owned entities, in declaration order.
	children     []*Component
	dataItems    []*DataItem
	compositions []*Composition
	references   []*Reference

	// Cached attribute view, always a pure function of the fields above.
	attributes map[string]string
}

// NewComponent creates a component of the given class from a parsed
// attribute map. The id, name, nativeName, uuid, and sampleInterval
// fields are populated from recognized attribute keys when present.
func NewComponent(class string, attributes map[string]string, prefix string) *Component {
	c := &Component{
		id:          attributes[AttrID],
		name:        attributes[AttrName],
		nativeName:  attributes[AttrNativeName],
		uuid:        attributes[AttrUUID],
		class:       class,
		prefix:      prefix,
		description: make(map[string]string),
	}

	c.prefixedClass = class
	if prefix != "" {
		c.prefixedClass = prefix + ":" + class
	}

	if raw, ok := attributes[AttrSampleInterval]; ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			c.sampleInterval = v
		}
	}

	c.rebuildAttributes()
	return c
}

// ID returns the component id.
func (c *Component) ID() string {
	return c.id
}

// Name returns the display name.
func (c *Component) Name() string {
	return c.name
}

// NativeName returns the vendor-native display name.
func (c *Component) NativeName() string {
	return c.nativeName
}

// SetNativeName sets the vendor-native display name and rebuilds the
// attribute view.
func (c *Component) SetNativeName(nativeName string) {
	c.nativeName = nativeName
	c.rebuildAttributes()
}

// Class returns the taxonomic class (e.g. "Axis", "Controller").
func (c *Component) Class() string {
	return c.class
}

// Prefix returns the vendor namespace prefix, empty for standard classes.
func (c *Component) Prefix() string {
	return c.prefix
}

// PrefixedClass returns the class qualified with the vendor prefix, or
// the bare class when no prefix is set.
func (c *Component) PrefixedClass() string {
	return c.prefixedClass
}

// UUID returns the globally unique identifier, empty if unset.
func (c *Component) UUID() string {
	return c.uuid
}

// SetUUID sets the globally unique identifier and rebuilds the attribute
// view.
func (c *Component) SetUUID(uuid string) {
	c.uuid = uuid
	c.rebuildAttributes()
}

// SampleInterval returns the sample rate hint in milliseconds, zero if
// unset.
func (c *Component) SampleInterval() float64 {
	return c.sampleInterval
}

// Configuration returns the opaque configuration blob.
func (c *Component) Configuration() string {
	return c.configuration
}

// SetConfiguration stores the opaque configuration blob verbatim.
func (c *Component) SetConfiguration(configuration string) {
	c.configuration = configuration
}

// Description returns the structured description map.
func (c *Component) Description() map[string]string {
	return c.description
}

// DescriptionBody returns the free-text description body.
func (c *Component) DescriptionBody() string {
	return c.descriptionBody
}

// SetManufacturer sets the manufacturer in the description map.
func (c *Component) SetManufacturer(manufacturer string) {
	c.description[DescManufacturer] = manufacturer
}

// SetSerialNumber sets the serial number in the description map.
func (c *Component) SetSerialNumber(serialNumber string) {
	c.description[DescSerialNumber] = serialNumber
}

// SetStation sets the station in the description map.
func (c *Component) SetStation(station string) {
	c.description[DescStation] = station
}

// SetDescriptionBody sets the free-text description body.
func (c *Component) SetDescriptionBody(body string) {
	c.descriptionBody = body
}

// AddDescription merges the supplied attributes into the description map
// (duplicate keys overwrite) and records the free-text body.
func (c *Component) AddDescription(body string, attributes map[string]string) {
	for k, v := range attributes {
		c.description[k] = v
	}
	c.descriptionBody = body
}

// Parent returns the owning component, nil for a device root.
func (c *Component) Parent() *Component {
	return c.parent
}

// AddChild appends child to the ordered children and sets its parent
// back-link. Insertion order is preserved and is significant for output.
func (c *Component) AddChild(child *Component) {
	child.parent = c
	c.children = append(c.children, child)
}

// Children returns the owned child components in declaration order.
func (c *Component) Children() []*Component {
	return c.children
}

// AddDataItem appends a data item and records its owning component.
// Well-known data item types (availability, asset-changed, asset-removed)
// are cached for direct access.
func (c *Component) AddDataItem(item *DataItem) {
	item.component = c

	switch item.Type() {
	case DataItemTypeAvailability:
		c.availability = item
	case DataItemTypeAssetChanged:
		c.assetChanged = item
	case DataItemTypeAssetRemoved:
		c.assetRemoved = item
	}

	c.dataItems = append(c.dataItems, item)
}

// DataItems returns the owned data items in declaration order.
func (c *Component) DataItems() []*DataItem {
	return c.dataItems
}

// Availability returns the availability data item, nil if this component
// declares none.
func (c *Component) Availability() *DataItem {
	return c.availability
}

// AssetChanged returns the asset-changed data item, nil if absent.
func (c *Component) AssetChanged() *DataItem {
	return c.assetChanged
}

// AssetRemoved returns the asset-removed data item, nil if absent.
func (c *Component) AssetRemoved() *DataItem {
	return c.assetRemoved
}

// AddComposition appends a composition.
func (c *Component) AddComposition(composition *Composition) {
	composition.component = c
	c.compositions = append(c.compositions, composition)
}

// Compositions returns the owned compositions in declaration order.
func (c *Component) Compositions() []*Composition {
	return c.compositions
}

// AddReference attaches a declared reference. References may be added any
// time before resolution runs.
func (c *Component) AddReference(reference *Reference) {
	c.references = append(c.references, reference)
}

// References returns the owned references in declaration order.
func (c *Component) References() []*Reference {
	return c.references
}

// Device walks the parent links to the device root.
//
// BuildGraph warms the per-node root cache while the tree is still owned
// by its single writer, so on a published tree this is a read-only
// lookup. The in-place caching below only runs during the build phase,
// before the tree is shared.
//
// Calling Device on a detached component or subtree returns
// ErrDetachedComponent; this is an ordering bug in the caller, not a data
// error.
func (c *Component) Device() (*Device, error) {
	if c.device != nil {
		return c.device, nil
	}

	root := c
	for root.parent != nil {
		root = root.parent
	}

	if root.owner == nil {
		return nil, ErrDetachedComponent
	}

	c.device = root.owner
	return c.device, nil
}

// Attributes returns the cached attribute view. The view is a pure
// function of the component's fields; setters that affect it rebuild it
// before it is next read.
func (c *Component) Attributes() map[string]string {
	return c.attributes
}

// buildAttributes derives a fresh externally-visible attribute map from
// the current field values. Unset fields are omitted, never emitted as
// empty strings.
func (c *Component) buildAttributes() map[string]string {
	attrs := map[string]string{
		AttrID:    c.id,
		AttrClass: c.class,
	}

	if c.name != "" {
		attrs[AttrName] = c.name
	}
	if c.nativeName != "" {
		attrs[AttrNativeName] = c.nativeName
	}
	if c.prefix != "" {
		attrs[AttrPrefixedClass] = c.prefixedClass
	}
	if c.uuid != "" {
		attrs[AttrUUID] = c.uuid
	}
	if c.sampleInterval > 0 {
		attrs[AttrSampleInterval] = strconv.FormatFloat(c.sampleInterval, 'f', -1, 64)
	}

	return attrs
}

// rebuildAttributes replaces the cached view with a fresh build.
func (c *Component) rebuildAttributes() {
	c.attributes = c.buildAttributes()
}

// Less orders components by id. The total order exists for sorted
// collections of components; iteration over owned entities always replays
// declaration order.
func (c *Component) Less(other *Component) bool {
	return c.id < other.id
}

// Equal reports whether two components share an id. Within one device
// this coincides with object identity, since ids are unique.
func (c *Component) Equal(other *Component) bool {
	return c.id == other.id
}

// SortComponents sorts a slice of components by id in place.
func SortComponents(components []*Component) {
	sort.Slice(components, func(i, j int) bool {
		return components[i].Less(components[j])
	})
}
