package live

import (
	"embed"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"netviz/core/dataset"
	"netviz/core/render"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

//go:embed index.html
var assets embed.FS

const (
	sendBuffer = 256
	writeWait  = 10 * time.Second
)

// ErrClosed is returned by calls on a closed engine.
var ErrClosed = errors.New("live engine closed")

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Engine streams a store to connected browsers.
type Engine struct {
	mu          sync.Mutex
	store       *dataset.Store
	unsubscribe func()
	options     render.Options
	handlers    map[render.EventName]*render.Handler
	clients     map[*client]struct{}
	closed      bool

	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// New creates a live engine.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		handlers: make(map[render.EventName]*render.Handler),
		clients:  make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Attach subscribes to store events.
func (e *Engine) Attach(store *dataset.Store) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.unsubscribe != nil {
		e.unsubscribe()
	}
	e.store = store
	e.unsubscribe = store.Subscribe(func(ev dataset.Event) {
		e.broadcast(Frame{Type: FrameChange, Change: &ev})
	})
	return nil
}

// SetOptions replaces the options and pushes them to every browser.
func (e *Engine) SetOptions(opts render.Options) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.options = opts
	e.mu.Unlock()
	e.broadcast(Frame{Type: FrameOptions, Options: &opts})
	return nil
}

// On binds handler to name.
func (e *Engine) On(name render.EventName, handler *render.Handler) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.handlers[name] = handler
	events := e.eventNames()
	e.mu.Unlock()
	e.broadcast(Frame{Type: FrameBindings, Events: events})
	return nil
}

// Off unbinds handler from name. Unbinding a handler that is not bound is a no-op.
func (e *Engine) Off(name render.EventName, handler *render.Handler) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.handlers[name] == handler {
		delete(e.handlers, name)
	}
	events := e.eventNames()
	e.mu.Unlock()
	e.broadcast(Frame{Type: FrameBindings, Events: events})
	return nil
}

// Close disconnects every browser and detaches from the store.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	for c := range e.clients {
		close(c.send)
		delete(e.clients, c)
	}
	return nil
}

// Dispatch delivers ev to the bound handler and reports whether one was bound.
func (e *Engine) Dispatch(ev render.Event) bool {
	e.mu.Lock()
	h, ok := e.handlers[ev.Name]
	e.mu.Unlock()
	if !ok {
		return false
	}
	h.Handle(ev)
	return true
}

// Clients returns the number of connected browsers.
func (e *Engine) Clients() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.clients)
}

// Handler serves the page at / and the websocket at /ws.
func (e *Engine) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", e.ServeWS)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.ServeFileFS(w, r, assets, "index.html")
	})
	return mux
}

// ServeWS upgrades the connection and streams frames until either side closes.
func (e *Engine) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := e.upgrader.Upgrade(w, r, nil)
	if err != nil {
		e.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		_ = conn.Close()
		return
	}
	reset := Frame{Type: FrameReset, Options: &e.options, Events: e.eventNames()}
	if e.store != nil {
		reset.Nodes = e.store.Nodes().Elements()
		reset.Edges = e.store.Edges().Elements()
	}
	data, err := json.Marshal(reset)
	if err != nil {
		e.mu.Unlock()
		e.logger.Error("Failed to encode reset frame", zap.Error(err))
		_ = conn.Close()
		return
	}
	c.send <- data
	e.clients[c] = struct{}{}
	e.mu.Unlock()

	e.logger.Info("Browser connected", zap.String("remote", r.RemoteAddr))
	go e.writeLoop(c)
	e.readLoop(c)
}

func (e *Engine) readLoop(c *client) {
	defer func() {
		e.drop(c)
		_ = c.conn.Close()
	}()
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				e.logger.Debug("Websocket read failed", zap.Error(err))
			}
			return
		}
		var ev render.Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			e.logger.Debug("Ignoring malformed event frame", zap.Error(err))
			continue
		}
		if !ev.Name.Valid() {
			e.logger.Debug("Ignoring unknown event", zap.String("event", string(ev.Name)))
			continue
		}
		e.Dispatch(ev)
	}
}

func (e *Engine) writeLoop(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			e.logger.Debug("Websocket write failed", zap.Error(err))
			e.drop(c)
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// drop forgets c; safe to call more than once.
func (e *Engine) drop(c *client) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.clients[c]; ok {
		delete(e.clients, c)
		close(c.send)
	}
}

// broadcast queues f for every browser. A browser whose buffer is full is
// disconnected.
func (e *Engine) broadcast(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		e.logger.Error("Failed to encode frame", zap.String("type", f.Type), zap.Error(err))
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for c := range e.clients {
		select {
		case c.send <- data:
		default:
			e.logger.Warn("Disconnecting slow browser")
			delete(e.clients, c)
			close(c.send)
		}
	}
}

func (e *Engine) eventNames() []render.EventName {
	b := make(render.Bindings, len(e.handlers))
	for name, h := range e.handlers {
		b[name] = h
	}
	return b.Names()
}
