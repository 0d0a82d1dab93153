package model

// Well-known data item type tags recognized when a data item is attached
// to a component.
const (
	DataItemTypeAvailability = "AVAILABILITY"
	DataItemTypeAssetChanged = "ASSET_CHANGED"
	DataItemTypeAssetRemoved = "ASSET_REMOVED"
)

// DataItem categories.
const (
	CategorySample    = "SAMPLE"
	CategoryEvent     = "EVENT"
	CategoryCondition = "CONDITION"
)

// DataItem is a measurement, event, or condition channel owned by a
// component. Beyond its identity and type tag the model treats it as
// opaque; sampling and buffering live outside this core.
type DataItem struct {
	id       string
	name     string
	itemType string
	category string

	// Raw attribute map as declared, stored verbatim.
	attributes map[string]string

	// Owning component, set by Component.AddDataItem. Non-owning.
	component *Component
}

// NewDataItem creates a data item from a parsed attribute map. The id,
// name, type, and category fields are populated from recognized keys.
func NewDataItem(attributes map[string]string) *DataItem {
	return &DataItem{
		id:         attributes["id"],
		name:       attributes["name"],
		itemType:   attributes["type"],
		category:   attributes["category"],
		attributes: attributes,
	}
}

// ID returns the data item id.
func (d *DataItem) ID() string {
	return d.id
}

// Name returns the display name.
func (d *DataItem) Name() string {
	return d.name
}

// Type returns the type tag (e.g. "POSITION", "AVAILABILITY").
func (d *DataItem) Type() string {
	return d.itemType
}

// Category returns the category ("SAMPLE", "EVENT", "CONDITION").
func (d *DataItem) Category() string {
	return d.category
}

// Attributes returns the declared attribute map, verbatim.
func (d *DataItem) Attributes() map[string]string {
	return d.attributes
}

// Component returns the owning component, nil before attachment.
func (d *DataItem) Component() *Component {
	return d.component
}
