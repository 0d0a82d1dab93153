package wire_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machlink-protocol/machlink-go/pkg/model"
	"github.com/machlink-protocol/machlink-go/pkg/registry"
	"github.com/machlink-protocol/machlink-go/pkg/wire"
)

func publishedSnapshot(t *testing.T) *registry.Snapshot {
	t.Helper()

	device := model.NewDevice(map[string]string{"id": "dev", "name": "mill-1"})
	ctrl := model.NewComponent("Controller", map[string]string{"id": "ctrl"}, "")
	ctrl.AddDataItem(model.NewDataItem(map[string]string{
		"id": "avail", "type": "AVAILABILITY", "category": "EVENT",
	}))
	ctrl.AddReference(model.NewReference("missing-1", "ghost", model.ReferenceComponent))
	device.AddChild(ctrl)

	graph, err := model.BuildGraph(device)
	require.NoError(t, err)
	issues := graph.Resolve()
	require.Len(t, issues, 1)

	r := registry.New(nil)
	snapshot, err := r.Publish(device, graph, issues)
	require.NoError(t, err)
	return snapshot
}

func TestSnapshotRoundTrip(t *testing.T) {
	snapshot := publishedSnapshot(t)
	probe := wire.NewProbeSnapshot("agent-1", snapshot)

	data, err := wire.EncodeSnapshot(probe)
	require.NoError(t, err)

	decoded, err := wire.DecodeSnapshot(data)
	require.NoError(t, err)

	assert.Equal(t, wire.FormatVersion, decoded.Version)
	assert.Equal(t, "agent-1", decoded.AgentID)
	assert.Equal(t, snapshot.Revision, decoded.Revision)

	require.NotNil(t, decoded.Device)
	assert.Equal(t, "dev", decoded.Device.ID)
	require.NotNil(t, decoded.Device.Root)
	require.Len(t, decoded.Device.Root.Children, 1)

	ctrl := decoded.Device.Root.Children[0]
	assert.Equal(t, "Controller", ctrl.Class)
	require.Len(t, ctrl.DataItems, 1)
	assert.Equal(t, "AVAILABILITY", ctrl.DataItems[0].Type)

	require.Len(t, decoded.UnboundReferences, 1)
	assert.Equal(t, "missing-1", decoded.UnboundReferences[0].ReferenceID)
	assert.Equal(t, "COMPONENT", decoded.UnboundReferences[0].Kind)
}

func TestEncodeDeterministic(t *testing.T) {
	snapshot := publishedSnapshot(t)
	probe := wire.NewProbeSnapshot("agent-1", snapshot)
	probe.GeneratedAt = time.Unix(1700000000, 0)

	first, err := wire.EncodeSnapshot(probe)
	require.NoError(t, err)
	second, err := wire.EncodeSnapshot(probe)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, wire.Equal(probe, probe))
}

func TestValidateRejectsBadEnvelopes(t *testing.T) {
	snapshot := publishedSnapshot(t)

	wrongVersion := wire.NewProbeSnapshot("agent-1", snapshot)
	wrongVersion.Version = 99
	_, err := wire.EncodeSnapshot(wrongVersion)
	assert.ErrorIs(t, err, wire.ErrUnsupportedVersion)

	noDevice := wire.NewProbeSnapshot("agent-1", snapshot)
	noDevice.Device = nil
	_, err = wire.EncodeSnapshot(noDevice)
	assert.ErrorIs(t, err, wire.ErrMissingDevice)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := wire.DecodeSnapshot([]byte{0xff, 0x00, 0x13})
	assert.Error(t, err)
}

func TestDecodeRejectsMalformedContainers(t *testing.T) {
	// {1: 1, 1: 2}: a definite-length map with a duplicate key.
	_, err := wire.DecodeSnapshot([]byte{0xa2, 0x01, 0x01, 0x01, 0x02})
	assert.Error(t, err)

	// {_ 1: 1}: an indefinite-length map.
	_, err = wire.DecodeSnapshot([]byte{0xbf, 0x01, 0x01, 0xff})
	assert.Error(t, err)
}
