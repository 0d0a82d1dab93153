package model

// Composition is a named sub-part grouping within a component (e.g. a
// motor or ballscrew inside an axis). Opaque to the model beyond its
// identity.
type Composition struct {
	id              string
	uuid            string
	compositionType string
	name            string
	description     string

	// Owning component, set by Component.AddComposition. Non-owning.
	component *Component
}

// NewComposition creates a composition from a parsed attribute map.
func NewComposition(attributes map[string]string) *Composition {
	return &Composition{
		id:              attributes["id"],
		uuid:            attributes["uuid"],
		compositionType: attributes["type"],
		name:            attributes["name"],
	}
}

// ID returns the composition id.
func (c *Composition) ID() string {
	return c.id
}

// UUID returns the globally unique identifier, empty if unset.
func (c *Composition) UUID() string {
	return c.uuid
}

// Type returns the composition type tag (e.g. "MOTOR").
func (c *Composition) Type() string {
	return c.compositionType
}

// Name returns the display name.
func (c *Composition) Name() string {
	return c.name
}

// Description returns the free-text description.
func (c *Composition) Description() string {
	return c.description
}

// SetDescription sets the free-text description.
func (c *Composition) SetDescription(description string) {
	c.description = description
}

// Component returns the owning component, nil before attachment.
func (c *Composition) Component() *Component {
	return c.component
}
