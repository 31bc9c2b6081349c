// Package delegate defines methods whose value comes from fallback lookup
// chains.
//
// Every chain literal is parsed and validated when the method is defined, so
// a malformed chain fails before the method can ever be called. At call time
// chains are walked in declaration order against the receiver and the first
// non-empty value wins.
//
// Key operations:
// - Define/MustDefine: build a Method from a name and chain literals
// - Method.Call/Resolve: evaluate the chains against one receiver
// - Method.CallMany: evaluate against many receivers with bounded workers
// - Table: the method table a presenter type dispatches through
package delegate
