// Package source loads graph snapshots from outside the process.
//
//   - Storage reads snapshot documents from the object store. Concurrent
//     loads of one object share a single download.
//   - Database runs named SQL queries, or reads a whole table, and turns
//     the rows into a snapshot with core/transform.
//   - Redis subscribes to a pub/sub channel and submits every snapshot
//     document it receives.
//
// A document is either a snapshot ({"nodes":[],"edges":[]}) or a SPARQL
// JSON results document, which is transformed on the way in.
package source
