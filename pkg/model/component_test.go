package model

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewComponentAttributes(t *testing.T) {
	c := NewComponent("Axis", map[string]string{
		"id":             "x1",
		"name":           "X",
		"nativeName":     "X-AXIS",
		"uuid":           "c7f2",
		"sampleInterval": "10.5",
	}, "")

	if c.ID() != "x1" {
		t.Errorf("expected id x1, got %s", c.ID())
	}
	if c.Name() != "X" {
		t.Errorf("expected name X, got %s", c.Name())
	}
	if c.NativeName() != "X-AXIS" {
		t.Errorf("expected nativeName X-AXIS, got %s", c.NativeName())
	}
	if c.UUID() != "c7f2" {
		t.Errorf("expected uuid c7f2, got %s", c.UUID())
	}
	if c.SampleInterval() != 10.5 {
		t.Errorf("expected sampleInterval 10.5, got %v", c.SampleInterval())
	}
	if c.Class() != "Axis" || c.PrefixedClass() != "Axis" {
		t.Errorf("unexpected class %s / prefixedClass %s", c.Class(), c.PrefixedClass())
	}
}

func TestPrefixedClass(t *testing.T) {
	c := NewComponent("Loader", map[string]string{"id": "l1"}, "acme")

	if c.PrefixedClass() != "acme:Loader" {
		t.Errorf("expected acme:Loader, got %s", c.PrefixedClass())
	}
	if c.Attributes()["prefixedClass"] != "acme:Loader" {
		t.Errorf("expected prefixedClass attribute, got %v", c.Attributes())
	}
}

func TestBuildAttributesDeterministic(t *testing.T) {
	c := NewComponent("Axis", map[string]string{
		"id":   "x1",
		"name": "X",
		"uuid": "c7f2",
	}, "")

	first := c.buildAttributes()
	second := c.buildAttributes()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("buildAttributes not deterministic: %v vs %v", first, second)
	}
}

func TestAttributesOmitUnsetFields(t *testing.T) {
	c := NewComponent("Axis", map[string]string{"id": "x1"}, "")
	attrs := c.Attributes()

	for _, key := range []string{"name", "nativeName", "uuid", "sampleInterval", "prefixedClass"} {
		if v, ok := attrs[key]; ok {
			t.Errorf("expected %s to be absent, got %q", key, v)
		}
	}
	if attrs["id"] != "x1" {
		t.Errorf("expected id attribute x1, got %v", attrs)
	}
	if attrs["class"] != "Axis" {
		t.Errorf("expected class attribute Axis, got %v", attrs)
	}
}

func TestSetUUIDRebuildsAttributes(t *testing.T) {
	c := NewComponent("Controller", map[string]string{"id": "ctrl"}, "")

	if _, ok := c.Attributes()["uuid"]; ok {
		t.Fatal("expected no uuid attribute before SetUUID")
	}

	c.SetUUID("9f31")
	if c.Attributes()["uuid"] != "9f31" {
		t.Errorf("expected uuid attribute 9f31, got %v", c.Attributes())
	}
}

func TestSetNativeNameRebuildsAttributes(t *testing.T) {
	c := NewComponent("Controller", map[string]string{"id": "ctrl"}, "")

	c.SetNativeName("CTRL-01")
	if c.Attributes()["nativeName"] != "CTRL-01" {
		t.Errorf("expected nativeName attribute CTRL-01, got %v", c.Attributes())
	}
}

func TestChildOrderPreserved(t *testing.T) {
	parent := NewComponent("Axes", map[string]string{"id": "axes"}, "")
	a := NewComponent("Axis", map[string]string{"id": "a"}, "")
	b := NewComponent("Axis", map[string]string{"id": "b"}, "")
	c := NewComponent("Axis", map[string]string{"id": "c"}, "")

	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)

	children := parent.Children()
	want := []*Component{a, b, c}
	if len(children) != len(want) {
		t.Fatalf("expected %d children, got %d", len(want), len(children))
	}
	for i := range want {
		if children[i] != want[i] {
			t.Errorf("child %d: expected %s, got %s", i, want[i].ID(), children[i].ID())
		}
		if children[i].Parent() != parent {
			t.Errorf("child %d: parent back-link not set", i)
		}
	}
}

func TestDataItemOrderAndRecognition(t *testing.T) {
	c := NewComponent("Controller", map[string]string{"id": "ctrl"}, "")

	avail := NewDataItem(map[string]string{"id": "d1", "type": "AVAILABILITY", "category": "EVENT"})
	pos := NewDataItem(map[string]string{"id": "d2", "type": "POSITION", "category": "SAMPLE"})
	changed := NewDataItem(map[string]string{"id": "d3", "type": "ASSET_CHANGED", "category": "EVENT"})
	removed := NewDataItem(map[string]string{"id": "d4", "type": "ASSET_REMOVED", "category": "EVENT"})

	c.AddDataItem(avail)
	c.AddDataItem(pos)
	c.AddDataItem(changed)
	c.AddDataItem(removed)

	items := c.DataItems()
	if len(items) != 4 || items[0] != avail || items[1] != pos {
		t.Errorf("data item order not preserved: %v", items)
	}
	if c.Availability() != avail {
		t.Error("availability data item not recognized")
	}
	if c.AssetChanged() != changed {
		t.Error("asset-changed data item not recognized")
	}
	if c.AssetRemoved() != removed {
		t.Error("asset-removed data item not recognized")
	}
	if pos.Component() != c {
		t.Error("data item owner back-link not set")
	}
}

func TestAddDescription(t *testing.T) {
	c := NewComponent("Device", map[string]string{"id": "dev"}, "")
	c.SetManufacturer("Acme")

	c.AddDescription("main spindle unit", map[string]string{
		"manufacturer": "AcmeCorp",
		"station":      "S1",
	})

	if c.DescriptionBody() != "main spindle unit" {
		t.Errorf("unexpected description body %q", c.DescriptionBody())
	}
	if c.Description()["manufacturer"] != "AcmeCorp" {
		t.Error("expected duplicate description key to overwrite")
	}
	if c.Description()["station"] != "S1" {
		t.Error("expected station to be merged")
	}
}

func TestIdentityOrdering(t *testing.T) {
	a := NewComponent("Axis", map[string]string{"id": "a"}, "")
	a2 := NewComponent("Linear", map[string]string{"id": "a"}, "")
	b := NewComponent("Axis", map[string]string{"id": "b"}, "")

	if !a.Equal(a2) {
		t.Error("components with equal ids must be equal")
	}
	if a.Equal(b) {
		t.Error("components with different ids must not be equal")
	}
	if !a.Less(b) || b.Less(a) {
		t.Error("ordering by id is inconsistent")
	}
	if a.Less(a2) || a2.Less(a) {
		t.Error("equal ids must not order before each other")
	}

	components := []*Component{b, a}
	SortComponents(components)
	if components[0] != a || components[1] != b {
		t.Errorf("sort by id failed: %s, %s", components[0].ID(), components[1].ID())
	}
}

func TestDeviceWalkFromLeaf(t *testing.T) {
	device := NewDevice(map[string]string{"id": "dev", "name": "mill-1"})
	axes := NewComponent("Axes", map[string]string{"id": "axes"}, "")
	x := NewComponent("Linear", map[string]string{"id": "x"}, "")
	motor := NewComponent("Motor", map[string]string{"id": "m"}, "")

	device.AddChild(axes)
	axes.AddChild(x)
	x.AddChild(motor)

	fromMotor, err := motor.Device()
	if err != nil {
		t.Fatalf("Device from leaf failed: %v", err)
	}
	fromX, err := x.Device()
	if err != nil {
		t.Fatalf("Device from mid-level failed: %v", err)
	}

	if fromMotor != device || fromX != device {
		t.Error("expected identical device root from every node")
	}
}

func TestDeviceWalkDetached(t *testing.T) {
	orphan := NewComponent("Axis", map[string]string{"id": "x"}, "")

	if _, err := orphan.Device(); !errors.Is(err, ErrDetachedComponent) {
		t.Errorf("expected ErrDetachedComponent, got %v", err)
	}

	// A rooted subtree whose root is not a Device is equally detached.
	parent := NewComponent("Axes", map[string]string{"id": "axes"}, "")
	parent.AddChild(orphan)
	if _, err := orphan.Device(); !errors.Is(err, ErrDetachedComponent) {
		t.Errorf("expected ErrDetachedComponent for unrooted subtree, got %v", err)
	}
}

func TestConfigurationStoredVerbatim(t *testing.T) {
	c := NewComponent("Sensor", map[string]string{"id": "s1"}, "")
	blob := "<SensorConfiguration><FirmwareVersion>2.02</FirmwareVersion></SensorConfiguration>"

	c.SetConfiguration(blob)
	if c.Configuration() != blob {
		t.Errorf("configuration not stored verbatim: %q", c.Configuration())
	}
}
