// Package resolve walks chain specifications against a root object.
//
// Evaluation is depth-first and short-circuiting: each accessor consumes the
// previous step's result as its receiver, and the first empty result ends the
// chain without touching the accessors below it. Zero values such as false,
// 0 and "" are present and keep the walk going. Evaluation errors are returned
// unmodified.
//
// Key operations:
//   - Resolve: walk a single specification
//   - First: walk fallback specifications in order, returning the first
//     non-empty value and the index of the chain that produced it
//   - Resolver/WithObserver: the same walks, reporting every evaluated Step
package resolve
