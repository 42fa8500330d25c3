// Package network exposes the render host over HTTP.
//
// # Endpoints
//
//   - POST /network/snapshot: reconcile a snapshot (?async=true queues it)
//   - GET /network/nodes, GET /network/edges: live collections
//   - GET|PUT /network/options: display options
//   - GET|PUT /network/events: bound interaction events
//   - GET /network/stats: generation and last applied operations
//   - POST /network/load: load from storage or the database and reconcile
//   - GET /network/objects, POST /network/save: snapshot documents in storage
//   - GET /network/export: standalone chart page
//
// Every event bound through PUT /network/events gets one handler per name
// for the lifetime of the service, so re-sending an unchanged list never
// rebinds anything. Received interactions are logged and kept in a short
// history returned by GET /network/events.
//
// Synchronous submissions and loads reconcile on the request goroutine and
// queued ones on the pump worker. The host applies one at a time, but a
// synchronous call does not wait behind a queued snapshot, so clients that
// need arrival order should stick to one path.
package network
