// Package chain models lookup chains: ordered, non-branching sequences of
// named accessors walked over a graph of related objects.
//
// A chain is written as a nested single-key literal, e.g.
// {current: {account: name}}, and parsed once into an immutable
// Specification. Every level pairs one Accessor with either a terminal
// Accessor or the next level.
//
// Highlights:
//   - Classify/NewAccessor: a name starting with '@' reads a stored field,
//     any other name calls a method with the caller's arguments
//   - Parse/Validate/Valid: build and check a Specification, failing fast
//   - Path: build a literal from a flat list of names
//   - IsEmpty: the absence rule used for short-circuiting
//   - Result: outcome of resolving delegated chains
package chain
