package loader

// Document is the top-level device definition document.
type Document struct {
	// Vocabulary optionally pins the vocabulary version used for
	// advisory validation. Empty means the loader's default.
	Vocabulary string `yaml:"vocabulary"`

	// Device is the root component definition.
	Device *ComponentDef `yaml:"device"`
}

// ComponentDef declares one component and its owned entities, in
// document order.
type ComponentDef struct {
	Class          string  `yaml:"class"`
	Prefix         string  `yaml:"prefix"`
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	NativeName     string  `yaml:"nativeName"`
	UUID           string  `yaml:"uuid"`
	SampleInterval float64 `yaml:"sampleInterval"`

	Description   *DescriptionDef `yaml:"description"`
	Configuration string          `yaml:"configuration"`

	DataItems    []DataItemDef    `yaml:"dataItems"`
	Compositions []CompositionDef `yaml:"compositions"`
	References   []ReferenceDef   `yaml:"references"`
	Components   []ComponentDef   `yaml:"components"`
}

// DescriptionDef declares a component description: a free-text body plus
// structured attributes (manufacturer, serialNumber, station, ...).
type DescriptionDef struct {
	Body       string            `yaml:"body"`
	Attributes map[string]string `yaml:"attributes"`
}

// DataItemDef declares a measurement/event/condition channel.
type DataItemDef struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Category string `yaml:"category"`

	// Attributes carries any further declared keys verbatim.
	Attributes map[string]string `yaml:"attributes"`
}

// CompositionDef declares a named sub-part grouping.
type CompositionDef struct {
	ID          string `yaml:"id"`
	UUID        string `yaml:"uuid"`
	Type        string `yaml:"type"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ReferenceDef declares a by-id reference to an entity elsewhere in the
// same device tree. Kind is "component" or "dataItem".
type ReferenceDef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// attributeMap flattens a data item definition into the attribute map
// handed to the model.
func (d DataItemDef) attributeMap() map[string]string {
	attrs := make(map[string]string, len(d.Attributes)+4)
	for k, v := range d.Attributes {
		attrs[k] = v
	}
	attrs["id"] = d.ID
	if d.Name != "" {
		attrs["name"] = d.Name
	}
	if d.Type != "" {
		attrs["type"] = d.Type
	}
	if d.Category != "" {
		attrs["category"] = d.Category
	}
	return attrs
}

// attributeMap flattens a component definition into the attribute map
// handed to the model.
func (c ComponentDef) attributeMap() map[string]string {
	attrs := map[string]string{"id": c.ID}
	if c.Name != "" {
		attrs["name"] = c.Name
	}
	if c.NativeName != "" {
		attrs["nativeName"] = c.NativeName
	}
	if c.UUID != "" {
		attrs["uuid"] = c.UUID
	}
	if c.SampleInterval > 0 {
		attrs["sampleInterval"] = formatFloat(c.SampleInterval)
	}
	return attrs
}
