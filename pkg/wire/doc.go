// Package wire encodes device model snapshots for transport and capture.
//
// Snapshots travel as CBOR with integer keys and canonical ordering, so
// the same tree always encodes to the same bytes. The envelope carries a
// format version and the generating agent's identity; the payload is the
// model's Info view of one device tree.
//
// The transport itself (how probe documents reach a consumer) lives
// outside this module.
package wire
