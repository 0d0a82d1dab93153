// Package registry holds the published device snapshots of a MachLink
// agent.
//
// A device tree is built and resolved by a single writer (package
// loader), then handed to the registry, which swaps it in atomically for
// concurrent readers. Published trees are never mutated; a configuration
// reload runs a fresh build+resolve cycle and publishes the replacement,
// so reader-held references into an old snapshot stay valid for as long
// as the reader keeps them.
package registry
