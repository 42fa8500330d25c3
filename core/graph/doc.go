// Package graph defines the canonical node/edge model consumed by the reconciler.
//
// A Snapshot is one generation of input data: a node Collection and an edge
// Collection. Collections are insertion-ordered and keyed by element id; nodes
// and edges live in separate id namespaces.
//
// # Elements
//
// An Element is an id plus an unordered attribute map. Edges keep their
// endpoints in the attributes under "from" and "to", the same names the
// browser-side network library uses, so a decoded snapshot can be forwarded to
// a renderer without reshaping.
//
// # Equality
//
// Equal is the oracle the diff engine uses to classify changes: two elements
// are equal when they share an id and their attributes are structurally equal.
// Numbers compare by value, so 1 and 1.0 are the same attribute value.
//
// # JSON
//
//	{"nodes":[{"id":1,"label":"x"}],"edges":[{"from":1,"to":2}]}
//
// Ids may be numbers or strings and are normalized to strings. Edges without
// an id receive one derived from their endpoints (see DeriveEdgeID).
package graph
