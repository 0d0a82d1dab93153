// Package loader builds device information models from MachLink device
// definition documents.
//
// A definition document is YAML describing one device tree in document
// order. The loader performs the two-phase construction protocol on the
// model: a single forward pass creates and wires every component, data
// item, composition, and declared reference, then the identity index is
// built and the deferred reference resolution pass runs. Forward
// references (a reference naming an entity declared later in the
// document) are therefore fine.
//
// Duplicate ids abort the load; no partial device is returned. Per-
// reference resolution failures are collected on the Result and the
// otherwise-usable tree is still returned.
//
// A document may pin the vocabulary version used for advisory
// validation; pinning an unknown version aborts the load.
//
// Schema validation of the document is out of scope; the loader only
// enforces the model's structural invariants (a device, non-empty ids).
package loader
