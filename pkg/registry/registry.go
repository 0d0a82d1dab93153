package registry

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/machlink-protocol/machlink-go/pkg/model"
)

// Registry errors.
var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrNilDevice      = errors.New("nil device")
	ErrNilGraph       = errors.New("nil component graph")
)

// Snapshot is one published build+resolve cycle: the device tree, its
// completed identity index, the resolution issues collected for it, and
// publication metadata. Snapshots are immutable by convention; a reload
// publishes a replacement rather than mutating in place.
type Snapshot struct {
	// Device is the resolved device tree.
	Device *model.Device

	// Graph is the identity index built for this tree.
	Graph *model.ComponentGraph

	// Issues are the per-reference resolution failures, empty when every
	// reference bound.
	Issues []model.ResolutionIssue

	// Revision uniquely identifies this publication.
	Revision string

	// PublishedAt is when the snapshot was swapped in.
	PublishedAt time.Time
}

// Registry holds the published device snapshots for concurrent readers.
// It is the only cross-cycle visibility point: one writer builds and
// resolves a tree in isolation, then Publish swaps it in under the lock.
type Registry struct {
	mu sync.RWMutex

	// snapshots holds the current snapshot per device id.
	snapshots map[string]*Snapshot

	log *zap.Logger

	// callbacks for publication events.
	onPublish func(snapshot *Snapshot)
	onRemove  func(deviceID string)
}

// New creates an empty registry. A nil logger disables logging.
func New(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		snapshots: make(map[string]*Snapshot),
		log:       log,
	}
}

// OnPublish registers a callback invoked after each publication.
func (r *Registry) OnPublish(fn func(snapshot *Snapshot)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onPublish = fn
}

// OnRemove registers a callback invoked after each removal.
func (r *Registry) OnRemove(fn func(deviceID string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onRemove = fn
}

// Publish atomically swaps in a freshly built and resolved device tree,
// replacing any previous snapshot for the same device id. The caller
// must not touch the tree again after publishing it.
func (r *Registry) Publish(device *model.Device, graph *model.ComponentGraph, issues []model.ResolutionIssue) (*Snapshot, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if graph == nil {
		return nil, ErrNilGraph
	}

	snapshot := &Snapshot{
		Device:      device,
		Graph:       graph,
		Issues:      issues,
		Revision:    uuid.NewString(),
		PublishedAt: time.Now(),
	}

	r.mu.Lock()
	_, replaced := r.snapshots[device.ID()]
	r.snapshots[device.ID()] = snapshot
	onPublish := r.onPublish
	r.mu.Unlock()

	r.log.Info("device snapshot published",
		zap.String("device", device.ID()),
		zap.String("revision", snapshot.Revision),
		zap.Bool("replaced", replaced),
		zap.Int("issues", len(issues)))

	if onPublish != nil {
		onPublish(snapshot)
	}
	return snapshot, nil
}

// Remove drops the published snapshot for a device id.
func (r *Registry) Remove(deviceID string) error {
	r.mu.Lock()
	_, exists := r.snapshots[deviceID]
	if !exists {
		r.mu.Unlock()
		return ErrDeviceNotFound
	}
	delete(r.snapshots, deviceID)
	onRemove := r.onRemove
	r.mu.Unlock()

	r.log.Info("device snapshot removed", zap.String("device", deviceID))

	if onRemove != nil {
		onRemove(deviceID)
	}
	return nil
}

// Snapshot returns the current snapshot for a device id.
func (r *Registry) Snapshot(deviceID string) (*Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, exists := r.snapshots[deviceID]
	if !exists {
		return nil, ErrDeviceNotFound
	}
	return snapshot, nil
}

// Device returns the published device tree for a device id.
func (r *Registry) Device(deviceID string) (*model.Device, error) {
	snapshot, err := r.Snapshot(deviceID)
	if err != nil {
		return nil, err
	}
	return snapshot.Device, nil
}

// Devices returns the published devices, sorted by id.
func (r *Registry) Devices() []*model.Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	components := make([]*model.Component, 0, len(r.snapshots))
	byID := make(map[string]*model.Device, len(r.snapshots))
	for id, snapshot := range r.snapshots {
		components = append(components, snapshot.Device.Root())
		byID[id] = snapshot.Device
	}
	model.SortComponents(components)

	devices := make([]*model.Device, 0, len(components))
	for _, c := range components {
		devices = append(devices, byID[c.ID()])
	}
	return devices
}

// Count returns the number of published devices.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.snapshots)
}
