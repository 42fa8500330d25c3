// Package transform turns tabular query results into graph snapshots.
//
// The first column of every row is the subject. Each further column with a
// value yields an object node and an edge from the subject to it, labelled
// with the column name. Nodes carry the column they first appeared in as
// their group. Values that repeat collapse into a single node, and repeated
// (subject, column, object) triples into a single edge.
package transform
