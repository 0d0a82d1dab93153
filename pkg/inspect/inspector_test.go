package inspect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machlink-protocol/machlink-go/pkg/inspect"
	"github.com/machlink-protocol/machlink-go/pkg/model"
)

func newInspector(t *testing.T) (*inspect.Inspector, *model.Device) {
	t.Helper()

	device := model.NewDevice(map[string]string{"id": "dev", "name": "mill-1"})

	ctrl := model.NewComponent("Controller", map[string]string{"id": "ctrl", "name": "Controller"}, "")
	ctrl.AddReference(model.NewReference("missing-1", "ghost", model.ReferenceComponent))

	axes := model.NewComponent("Axes", map[string]string{"id": "axes", "name": "Axes"}, "")
	x := model.NewComponent("Linear", map[string]string{"id": "x", "name": "X"}, "")
	x.AddDataItem(model.NewDataItem(map[string]string{
		"id": "x-pos", "name": "Xpos", "type": "POSITION", "category": "SAMPLE",
	}))

	device.AddChild(ctrl)
	device.AddChild(axes)
	axes.AddChild(x)

	graph, err := model.BuildGraph(device)
	require.NoError(t, err)
	graph.Resolve()

	return inspect.NewInspector(device, graph), device
}

func TestFindByNameSegments(t *testing.T) {
	inspector, _ := newInspector(t)

	entity, err := inspector.Find("Axes/X")
	require.NoError(t, err)
	require.Equal(t, model.EntityComponent, entity.Kind)
	assert.Equal(t, "x", entity.Component.ID())
}

func TestFindByIDSegments(t *testing.T) {
	inspector, _ := newInspector(t)

	entity, err := inspector.Find("axes/x/x-pos")
	require.NoError(t, err)
	require.Equal(t, model.EntityDataItem, entity.Kind)
	assert.Equal(t, "x-pos", entity.DataItem.ID())
}

func TestFindDataItemByName(t *testing.T) {
	inspector, _ := newInspector(t)

	entity, err := inspector.Find("Axes/X/Xpos")
	require.NoError(t, err)
	require.Equal(t, model.EntityDataItem, entity.Kind)
	assert.Equal(t, "x-pos", entity.DataItem.ID())
}

func TestFindNotFound(t *testing.T) {
	inspector, _ := newInspector(t)

	_, err := inspector.Find("Axes/Y")
	assert.ErrorIs(t, err, inspect.ErrNotFound)
}

func TestFindInvalidPaths(t *testing.T) {
	inspector, _ := newInspector(t)

	_, err := inspector.Find("")
	assert.ErrorIs(t, err, inspect.ErrEmptyPath)

	for _, input := range []string{"/Axes", "Axes/", "Axes//X"} {
		_, err := inspector.Find(input)
		assert.ErrorIs(t, err, inspect.ErrInvalidPath, "input %q", input)
	}
}

func TestByID(t *testing.T) {
	inspector, _ := newInspector(t)

	entity, err := inspector.ByID("x-pos")
	require.NoError(t, err)
	assert.Equal(t, model.EntityDataItem, entity.Kind)

	_, err = inspector.ByID("nope")
	assert.ErrorIs(t, err, inspect.ErrNotFound)
}

func TestUnboundReferences(t *testing.T) {
	inspector, _ := newInspector(t)

	unbound := inspector.UnboundReferences()
	require.Len(t, unbound, 1)
	assert.Equal(t, "ctrl", unbound[0].Component.ID())
	assert.Equal(t, "missing-1", unbound[0].Reference.ID())
}

func TestFormatDevice(t *testing.T) {
	_, device := newInspector(t)

	f := inspect.NewFormatter()
	out := f.FormatDevice(device)

	assert.Contains(t, out, `Device "dev" (mill-1)`)
	assert.Contains(t, out, `Linear "x" (X)`)
	assert.Contains(t, out, `- [SAMPLE] POSITION "x-pos" (Xpos)`)
	assert.Contains(t, out, `-> COMPONENT "missing-1" [UNBOUND] (ghost)`)
}

func TestFormatterShowAttributes(t *testing.T) {
	_, device := newInspector(t)

	f := inspect.NewFormatter()
	f.ShowAttributes = true
	out := f.FormatDevice(device)

	assert.Contains(t, out, "id = dev")
	assert.Contains(t, out, "name = mill-1")
}
