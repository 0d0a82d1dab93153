// Package model implements the MachLink device information model.
//
// # Device Model Hierarchy
//
// A MachLink agent describes the equipment it monitors as a tree of
// components, each owning measurement channels (data items), named
// sub-assemblies (compositions), and by-id references to entities
// elsewhere in the same tree:
//
//	Device (mill-1)
//	├── Component "Axes"
//	│   ├── Component "X" (Linear)
//	│   │   ├── DataItem x-pos
//	│   │   └── DataItem x-load
//	│   └── Component "C" (Rotary)
//	├── Component "Controller"
//	│   ├── DataItem avail (AVAILABILITY)
//	│   └── Reference -> x-pos
//	└── ...
//
// # Two-Phase Construction
//
// Device definitions declare components and their cross-references in
// document order, so a reference may name an entity that has not been
// created yet. Construction is therefore split into two phases:
//
//  1. Build: the loading collaborator creates components with
//     NewComponent, wires them with AddChild/AddDataItem/AddComposition,
//     and attaches declared references with AddReference. References
//     remain unresolved.
//  2. Resolve: once the whole device subtree exists, BuildGraph indexes
//     every component and data item by id (duplicate ids are fatal), and
//     ComponentGraph.Resolve binds each reference to its target. Missing
//     targets and kind mismatches are collected as ResolutionIssues; the
//     tree stays usable, the affected references stay unbound.
//
// # Ownership and Concurrency
//
// A component exclusively owns its children, data items, compositions,
// and references. Parent links and resolved reference targets are
// non-owning. The model holds no locks: a tree is built and resolved by
// a single goroutine, then published as an immutable-by-convention
// snapshot (see package registry). A configuration reload builds a new
// tree and swaps it; published trees are never mutated in place.
package model
