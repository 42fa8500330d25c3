package render

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"netviz/core/dataset"
	"netviz/core/graph"
	"netviz/core/metrics"
	"netviz/core/reconcile"

	"go.uber.org/zap"
)

// Observers are optional notification callbacks.
type Observers struct {
	// OnModelChanged receives the operations of every non-empty reconciliation.
	OnModelChanged func(ops reconcile.AppliedOps)
	// OnNetwork receives the engine handle.
	OnNetwork func(engine Engine)
	// OnNodes receives the live node view.
	OnNodes func(nodes dataset.View)
	// OnEdges receives the live edge view.
	OnEdges func(edges dataset.View)
}

// Stats summarizes the host state.
type Stats struct {
	Generation uint64               `json:"generation"`
	Nodes      int                  `json:"nodes"`
	Edges      int                  `json:"edges"`
	LastOps    reconcile.AppliedOps `json:"lastOps"`
	Disposed   bool                 `json:"disposed"`
}

// Host binds a live store to a rendering engine.
type Host struct {
	// mu serializes transitions.
	mu sync.Mutex
	// state guards fields read by accessors.
	state      sync.RWMutex
	cfg        Config
	generation uint64
	last       reconcile.AppliedOps
	disposed   bool

	engine    Engine
	store     *dataset.Store
	observers Observers
	logger    *zap.Logger
}

// New builds the live store from initial, attaches engine, applies cfg and
// notifies every observer once.
func New(engine Engine, initial graph.Snapshot, cfg Config, obs Observers, logger *zap.Logger) (*Host, error) {
	if engine == nil {
		return nil, fmt.Errorf("render engine is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	store := dataset.NewStore()
	if _, err := reconcile.Reconcile(store, graph.Empty(), initial); err != nil {
		return nil, fmt.Errorf("initial snapshot: %w", err)
	}
	if err := engine.Attach(store); err != nil {
		return nil, fmt.Errorf("attach engine: %w", err)
	}
	if err := engine.SetOptions(cfg.Options); err != nil {
		_ = engine.Close()
		return nil, fmt.Errorf("%w: %w", ErrConfigurationRejected, err)
	}
	cfg.Bindings = cfg.Bindings.Clone()
	_, bind := diffBindings(nil, cfg.Bindings)
	if done, err := bindAll(engine, bind); err != nil {
		if _, uerr := unbindAll(engine, done); uerr != nil {
			logger.Error("Failed to release bindings", zap.Error(uerr))
		}
		_ = engine.Close()
		return nil, fmt.Errorf("%w: %w", ErrConfigurationRejected, err)
	}
	h := &Host{
		cfg:        cfg,
		generation: initial.Generation,
		engine:     engine,
		store:      store,
		observers:  obs,
		logger:     logger,
	}
	h.notifyNetwork()
	h.notifyNodes()
	h.notifyEdges()
	logger.Info("Render host ready",
		zap.Int("nodes", store.Nodes().Len()),
		zap.Int("edges", store.Edges().Len()),
		zap.Int("bindings", len(cfg.Bindings)))
	return h, nil
}

// OnSnapshot reconciles snap into the live store.
func (h *Host) OnSnapshot(snap graph.Snapshot) (reconcile.AppliedOps, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.isDisposed() {
		return reconcile.AppliedOps{}, ErrDisposed
	}
	start := time.Now()
	ops, err := reconcile.Reconcile(h.store, h.store.Snapshot(), snap)
	metrics.ObserveReconcile(ops, time.Since(start).Seconds(), err)
	if err != nil {
		h.logger.Warn("Snapshot rejected", zap.Uint64("generation", snap.Generation), zap.Error(err))
		return reconcile.AppliedOps{}, err
	}
	h.state.Lock()
	if snap.Generation > 0 {
		h.generation = snap.Generation
	} else {
		h.generation++
	}
	h.last = ops
	h.state.Unlock()
	if ops.Empty() {
		return ops, nil
	}
	h.logger.Debug("Snapshot reconciled",
		zap.Int("nodes_removed", ops.NodesRemoved),
		zap.Int("nodes_added", ops.NodesAdded),
		zap.Int("nodes_changed", ops.NodesChanged),
		zap.Int("edges_removed", ops.EdgesRemoved),
		zap.Int("edges_added", ops.EdgesAdded),
		zap.Int("edges_changed", ops.EdgesChanged))
	if h.observers.OnModelChanged != nil {
		h.observers.OnModelChanged(ops)
	}
	h.notifyNetwork()
	if ops.NodesTouched() {
		h.notifyNodes()
	}
	if ops.EdgesTouched() {
		h.notifyEdges()
	}
	return ops, nil
}

// OnConfigChange applies a new configuration. Options are replaced only when
// they differ from the active ones; bindings are diffed by name and handler.
// On failure the prior configuration stays active.
func (h *Host) OnConfigChange(cfg Config) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.isDisposed() {
		return ErrDisposed
	}
	if err := validateConfig(cfg); err != nil {
		metrics.ObserveConfigChange(metrics.OutcomeRejected)
		h.logger.Warn("Configuration rejected", zap.Error(err))
		return err
	}
	prev := h.Config()
	next := Config{Options: cfg.Options, Bindings: cfg.Bindings.Clone()}

	optionsChanged := prev.Options != next.Options
	if optionsChanged {
		if err := h.engine.SetOptions(next.Options); err != nil {
			return h.reject(err)
		}
	}
	unbind, bind := diffBindings(prev.Bindings, next.Bindings)
	unbound, err := unbindAll(h.engine, unbind)
	if err == nil {
		var bound []binding
		bound, err = bindAll(h.engine, bind)
		if err != nil {
			if _, uerr := unbindAll(h.engine, bound); uerr != nil {
				h.logger.Error("Failed to release bindings", zap.Error(uerr))
			}
		}
	}
	if err != nil {
		if _, berr := bindAll(h.engine, unbound); berr != nil {
			h.logger.Error("Failed to restore bindings", zap.Error(berr))
		}
		if optionsChanged {
			if rerr := h.engine.SetOptions(prev.Options); rerr != nil {
				h.logger.Error("Failed to restore options", zap.Error(rerr))
			}
		}
		return h.reject(err)
	}

	h.state.Lock()
	h.cfg = next
	h.state.Unlock()
	metrics.ObserveConfigChange(metrics.OutcomeApplied)
	h.logger.Debug("Configuration applied",
		zap.Bool("options_changed", optionsChanged),
		zap.Int("unbound", len(unbind)),
		zap.Int("bound", len(bind)))
	return nil
}

// OnDispose unbinds every handler and closes the engine. Repeated calls
// return ErrDisposed.
func (h *Host) OnDispose() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.isDisposed() {
		return ErrDisposed
	}
	cfg := h.Config()
	unbind, _ := diffBindings(cfg.Bindings, nil)
	var errs []error
	for _, b := range unbind {
		if err := h.engine.Off(b.name, b.handler); err != nil {
			errs = append(errs, fmt.Errorf("unbind %s: %w", b.name, err))
		}
	}
	if err := h.engine.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close engine: %w", err))
	}
	h.state.Lock()
	h.disposed = true
	h.cfg.Bindings = nil
	h.state.Unlock()
	h.logger.Info("Render host disposed")
	return errors.Join(errs...)
}

// Nodes returns the live node view.
func (h *Host) Nodes() dataset.View { return h.store.Nodes() }

// Edges returns the live edge view.
func (h *Host) Edges() dataset.View { return h.store.Edges() }

// Engine returns the rendering engine.
func (h *Host) Engine() Engine { return h.engine }

// Snapshot returns a copy of the live contents.
func (h *Host) Snapshot() graph.Snapshot {
	snap := h.store.Snapshot()
	h.state.RLock()
	snap.Generation = h.generation
	h.state.RUnlock()
	return snap
}

// Config returns the active configuration.
func (h *Host) Config() Config {
	h.state.RLock()
	defer h.state.RUnlock()
	return Config{Options: h.cfg.Options, Bindings: h.cfg.Bindings.Clone()}
}

// Options returns the active display options.
func (h *Host) Options() Options {
	h.state.RLock()
	defer h.state.RUnlock()
	return h.cfg.Options
}

// Bindings returns a copy of the active bindings.
func (h *Host) Bindings() Bindings {
	h.state.RLock()
	defer h.state.RUnlock()
	return h.cfg.Bindings.Clone()
}

// Stats returns the current counters.
func (h *Host) Stats() Stats {
	h.state.RLock()
	defer h.state.RUnlock()
	return Stats{
		Generation: h.generation,
		Nodes:      h.store.Nodes().Len(),
		Edges:      h.store.Edges().Len(),
		LastOps:    h.last,
		Disposed:   h.disposed,
	}
}

func (h *Host) isDisposed() bool {
	h.state.RLock()
	defer h.state.RUnlock()
	return h.disposed
}

func (h *Host) reject(cause error) error {
	metrics.ObserveConfigChange(metrics.OutcomeRejected)
	h.logger.Warn("Configuration rejected by engine", zap.Error(cause))
	return fmt.Errorf("%w: %w", ErrConfigurationRejected, cause)
}

func (h *Host) notifyNetwork() {
	if h.observers.OnNetwork != nil {
		h.observers.OnNetwork(h.engine)
	}
}

func (h *Host) notifyNodes() {
	if h.observers.OnNodes != nil {
		h.observers.OnNodes(h.store.Nodes())
	}
}

func (h *Host) notifyEdges() {
	if h.observers.OnEdges != nil {
		h.observers.OnEdges(h.store.Edges())
	}
}

func validateConfig(cfg Config) error {
	if err := cfg.Options.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigurationRejected, err)
	}
	if err := cfg.Bindings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigurationRejected, err)
	}
	return nil
}

// bindAll binds in order and returns the pairs bound before the first failure.
func bindAll(engine Engine, pairs []binding) ([]binding, error) {
	done := make([]binding, 0, len(pairs))
	for _, b := range pairs {
		if err := engine.On(b.name, b.handler); err != nil {
			return done, fmt.Errorf("bind %s: %w", b.name, err)
		}
		done = append(done, b)
	}
	return done, nil
}

// unbindAll unbinds in order and returns the pairs unbound before the first failure.
func unbindAll(engine Engine, pairs []binding) ([]binding, error) {
	done := make([]binding, 0, len(pairs))
	for _, b := range pairs {
		if err := engine.Off(b.name, b.handler); err != nil {
			return done, fmt.Errorf("unbind %s: %w", b.name, err)
		}
		done = append(done, b)
	}
	return done, nil
}
