package wire

import (
	"errors"
	"time"

	"github.com/machlink-protocol/machlink-go/pkg/model"
	"github.com/machlink-protocol/machlink-go/pkg/registry"
)

// FormatVersion is the current probe snapshot format version.
const FormatVersion = 1

// Snapshot errors.
var (
	ErrUnsupportedVersion = errors.New("unsupported snapshot format version")
	ErrMissingDevice      = errors.New("snapshot carries no device")
)

// ProbeSnapshot is the wire envelope for one published device tree.
type ProbeSnapshot struct {
	// Version is the snapshot format version.
	Version int `cbor:"1,keyasint"`

	// AgentID identifies the generating agent.
	AgentID string `cbor:"2,keyasint,omitempty"`

	// Revision is the registry revision of the published tree.
	Revision string `cbor:"3,keyasint,omitempty"`

	// GeneratedAt is when the snapshot was produced.
	GeneratedAt time.Time `cbor:"4,keyasint"`

	// Device is the model snapshot of the tree.
	Device *model.DeviceInfo `cbor:"5,keyasint"`

	// UnboundReferences lists references that stayed unbound after the
	// resolution pass, so consumers can see data errors without walking
	// the tree.
	UnboundReferences []UnboundReference `cbor:"6,keyasint,omitempty"`
}

// UnboundReference is the wire form of one resolution issue.
type UnboundReference struct {
	ComponentID string `cbor:"1,keyasint"`
	ReferenceID string `cbor:"2,keyasint"`
	Kind        string `cbor:"3,keyasint"`
	Reason      string `cbor:"4,keyasint"`
}

// Validate checks the envelope's structural invariants.
func (s *ProbeSnapshot) Validate() error {
	if s.Version != FormatVersion {
		return ErrUnsupportedVersion
	}
	if s.Device == nil {
		return ErrMissingDevice
	}
	return nil
}

// NewProbeSnapshot builds the wire envelope for a published snapshot.
func NewProbeSnapshot(agentID string, snapshot *registry.Snapshot) *ProbeSnapshot {
	probe := &ProbeSnapshot{
		Version:     FormatVersion,
		AgentID:     agentID,
		Revision:    snapshot.Revision,
		GeneratedAt: time.Now(),
		Device:      snapshot.Device.Info(),
	}

	for _, issue := range snapshot.Issues {
		probe.UnboundReferences = append(probe.UnboundReferences, UnboundReference{
			ComponentID: issue.ComponentID,
			ReferenceID: issue.ReferenceID,
			Kind:        issue.Kind.String(),
			Reason:      issue.Err.Error(),
		})
	}

	return probe
}
