// Package server holds the HTTP server configuration.
//
// The REST API and the live websocket view listen on separate ports. The
// API key, when set, is required on every /network request.
package server
