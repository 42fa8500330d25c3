// Package dataset holds the live node/edge state a renderer draws from.
//
// A Store owns two DataSets, one per element kind. Every element admitted to
// a DataSet receives a live identity (a UUID) that survives in-place updates
// and is only dropped when the element is removed; renderers key their own
// per-element state (positions, velocities) by it.
//
// # Mutation
//
// All mutation goes through Store.Batch. A batch holds the store lock for its
// whole duration, so readers never observe a half-applied generation, and a
// batch whose function returns an error is rolled back completely. Listeners
// registered with Subscribe receive one Event per operation after the batch
// commits, in the order the operations were issued.
//
// # Reading
//
// Nodes and Edges return read-only Views. Views hand out deep copies, so a
// caller holding one cannot desynchronize the store from the reconciler's
// baseline.
package dataset
