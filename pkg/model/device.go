package model

// DeviceClass is the component class of a device root.
const DeviceClass = "Device"

// Device is the root component of an equipment tree. All components in
// the tree share one identity namespace rooted here.
type Device struct {
	Component
}

// NewDevice creates a device root from a parsed attribute map.
func NewDevice(attributes map[string]string) *Device {
	d := &Device{Component: *NewComponent(DeviceClass, attributes, "")}
	d.Component.owner = d
	d.Component.device = d
	return d
}

// Root returns the device's root component node.
func (d *Device) Root() *Component {
	return &d.Component
}
