package registry_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machlink-protocol/machlink-go/pkg/model"
	"github.com/machlink-protocol/machlink-go/pkg/registry"
)

func buildResolved(t *testing.T, id string) (*model.Device, *model.ComponentGraph) {
	t.Helper()

	device := model.NewDevice(map[string]string{"id": id, "name": id})
	ctrl := model.NewComponent("Controller", map[string]string{"id": id + "-ctrl"}, "")
	device.AddChild(ctrl)

	graph, err := model.BuildGraph(device)
	require.NoError(t, err)
	require.Empty(t, graph.Resolve())
	return device, graph
}

func TestPublishAndRead(t *testing.T) {
	r := registry.New(nil)
	device, graph := buildResolved(t, "mill-1")

	snapshot, err := r.Publish(device, graph, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, snapshot.Revision)
	assert.False(t, snapshot.PublishedAt.IsZero())

	got, err := r.Device("mill-1")
	require.NoError(t, err)
	assert.Same(t, device, got)

	snap, err := r.Snapshot("mill-1")
	require.NoError(t, err)
	assert.Same(t, graph, snap.Graph)

	assert.Equal(t, 1, r.Count())
}

func TestPublishValidation(t *testing.T) {
	r := registry.New(nil)
	device, graph := buildResolved(t, "mill-1")

	_, err := r.Publish(nil, graph, nil)
	assert.ErrorIs(t, err, registry.ErrNilDevice)

	_, err = r.Publish(device, nil, nil)
	assert.ErrorIs(t, err, registry.ErrNilGraph)
}

func TestPublishReplacesSnapshot(t *testing.T) {
	r := registry.New(nil)

	first, firstGraph := buildResolved(t, "mill-1")
	second, secondGraph := buildResolved(t, "mill-1")

	firstSnap, err := r.Publish(first, firstGraph, nil)
	require.NoError(t, err)
	secondSnap, err := r.Publish(second, secondGraph, nil)
	require.NoError(t, err)

	assert.NotEqual(t, firstSnap.Revision, secondSnap.Revision)

	got, err := r.Device("mill-1")
	require.NoError(t, err)
	assert.Same(t, second, got, "readers must see the swapped-in tree")
	assert.Equal(t, 1, r.Count())

	// The old snapshot object itself is untouched by the swap.
	assert.Same(t, first, firstSnap.Device)
}

func TestRemove(t *testing.T) {
	r := registry.New(nil)
	device, graph := buildResolved(t, "mill-1")

	_, err := r.Publish(device, graph, nil)
	require.NoError(t, err)

	removed := ""
	r.OnRemove(func(deviceID string) { removed = deviceID })

	require.NoError(t, r.Remove("mill-1"))
	assert.Equal(t, "mill-1", removed)

	err = r.Remove("mill-1")
	assert.ErrorIs(t, err, registry.ErrDeviceNotFound)

	_, err = r.Device("mill-1")
	assert.ErrorIs(t, err, registry.ErrDeviceNotFound)
}

func TestOnPublishCallback(t *testing.T) {
	r := registry.New(nil)
	device, graph := buildResolved(t, "mill-1")

	var published *registry.Snapshot
	r.OnPublish(func(snapshot *registry.Snapshot) { published = snapshot })

	snapshot, err := r.Publish(device, graph, nil)
	require.NoError(t, err)
	assert.Same(t, snapshot, published)
}

func TestDevicesSortedByID(t *testing.T) {
	r := registry.New(nil)

	for _, id := range []string{"mill-2", "lathe-1", "mill-1"} {
		device, graph := buildResolved(t, id)
		_, err := r.Publish(device, graph, nil)
		require.NoError(t, err)
	}

	devices := r.Devices()
	require.Len(t, devices, 3)
	assert.Equal(t, "lathe-1", devices[0].ID())
	assert.Equal(t, "mill-1", devices[1].ID())
	assert.Equal(t, "mill-2", devices[2].ID())
}

func TestConcurrentReaders(t *testing.T) {
	r := registry.New(nil)
	device, graph := buildResolved(t, "mill-1")
	_, err := r.Publish(device, graph, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := r.Device("mill-1"); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}

	// One writer republishing while readers run.
	for j := 0; j < 20; j++ {
		next, nextGraph := buildResolved(t, "mill-1")
		_, err := r.Publish(next, nextGraph, nil)
		require.NoError(t, err)
	}
	wg.Wait()
}
