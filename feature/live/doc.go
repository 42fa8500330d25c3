// Package live is a render engine that draws in the browser.
//
// Engine serves a vis-network page at / and a websocket at /ws. A new
// connection first receives a reset frame with the options, the bound
// event names and the full store. After that every committed store event,
// option change and binding change is streamed as it happens. The page
// sends interaction events back as {"event":"click","nodes":["1"]} and the
// engine dispatches them to the handler bound under that name.
package live
