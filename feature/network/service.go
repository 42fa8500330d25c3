package network

import (
	"context"
	"fmt"
	"io"
	"sync"

	"netviz/core/graph"
	"netviz/core/reconcile"
	"netviz/core/render"
	"netviz/feature/export"
	"netviz/feature/source"

	"go.uber.org/zap"
)

const recentEvents = 50

// Service implements the network operations on top of a render host.
type Service struct {
	host    *render.Host
	pump    *render.Pump
	storage *source.Storage
	db      *source.Database
	logger  *zap.Logger

	// mu serializes read-modify-write configuration changes.
	mu       sync.Mutex
	handlers map[render.EventName]*render.Handler

	recentMu sync.Mutex
	recent   []render.Event
}

// ServiceOption configures optional collaborators.
type ServiceOption func(*Service)

// WithStorage enables the storage source.
func WithStorage(s *source.Storage) ServiceOption {
	return func(svc *Service) { svc.storage = s }
}

// WithDatabase enables the database source.
func WithDatabase(d *source.Database) ServiceOption {
	return func(svc *Service) { svc.db = d }
}

// NewService creates a service. pump may be nil, which disables async submission.
func NewService(host *render.Host, pump *render.Pump, logger *zap.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		host:     host,
		pump:     pump,
		logger:   logger,
		handlers: make(map[render.EventName]*render.Handler),
	}
	for _, opt := range opts {
		opt(s)
	}
	for name, h := range host.Bindings() {
		s.handlers[name] = h
	}
	return s
}

// Apply reconciles snap synchronously. It shares the host lock with the pump
// but is not ordered against snapshots still queued there.
func (s *Service) Apply(snap graph.Snapshot) (reconcile.AppliedOps, error) {
	return s.host.OnSnapshot(snap)
}

// Enqueue submits snap to the pump.
func (s *Service) Enqueue(snap graph.Snapshot) (bool, error) {
	if s.pump == nil {
		return false, fmt.Errorf("async submission: %w", source.ErrNotConfigured)
	}
	return s.pump.Submit(snap)
}

// Nodes returns the live nodes.
func (s *Service) Nodes() []graph.Element { return s.host.Nodes().Elements() }

// Edges returns the live edges.
func (s *Service) Edges() []graph.Element { return s.host.Edges().Elements() }

// Options returns the active options.
func (s *Service) Options() render.Options { return s.host.Options() }

// Stats returns the host counters.
func (s *Service) Stats() render.Stats { return s.host.Stats() }

// SetOptions replaces the options and keeps the bindings.
func (s *Service) SetOptions(opts render.Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.host.OnConfigChange(render.Config{Options: opts, Bindings: s.host.Bindings()})
}

// Events returns the bound event names and the recent interactions.
func (s *Service) Events() EventsResponse {
	s.recentMu.Lock()
	recent := append([]render.Event{}, s.recent...)
	s.recentMu.Unlock()
	return EventsResponse{Events: s.host.Bindings().Names(), Recent: recent}
}

// SetEvents binds exactly the named events to the recording handler.
func (s *Service) SetEvents(names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bindings := make(render.Bindings, len(names))
	for _, raw := range names {
		name, err := render.ParseEventName(raw)
		if err != nil {
			return fmt.Errorf("%w: %w", render.ErrConfigurationRejected, err)
		}
		bindings[name] = s.handlerFor(name)
	}
	return s.host.OnConfigChange(render.Config{Options: s.host.Options(), Bindings: bindings})
}

// handlerFor returns the stable handler for name. Caller holds mu.
func (s *Service) handlerFor(name render.EventName) *render.Handler {
	if h, ok := s.handlers[name]; ok {
		return h
	}
	h := render.NewHandler("record:"+string(name), s.record)
	s.handlers[name] = h
	return h
}

func (s *Service) record(ev render.Event) {
	s.logger.Info("Network event",
		zap.String("event", string(ev.Name)),
		zap.Strings("nodes", ev.Nodes),
		zap.Strings("edges", ev.Edges))
	s.recentMu.Lock()
	defer s.recentMu.Unlock()
	s.recent = append(s.recent, ev)
	if len(s.recent) > recentEvents {
		s.recent = s.recent[len(s.recent)-recentEvents:]
	}
}

// Load fetches a snapshot from the requested source and reconciles it.
func (s *Service) Load(ctx context.Context, req LoadRequest) (reconcile.AppliedOps, error) {
	var (
		snap graph.Snapshot
		err  error
	)
	switch req.Source {
	case SourceStorage:
		if s.storage == nil {
			return reconcile.AppliedOps{}, fmt.Errorf("storage: %w", source.ErrNotConfigured)
		}
		snap, err = s.storage.Load(ctx, req.Object)
	case SourceDatabase:
		if s.db == nil {
			return reconcile.AppliedOps{}, fmt.Errorf("database: %w", source.ErrNotConfigured)
		}
		snap, err = s.db.Load(ctx, req.Query)
	case SourceTable:
		if s.db == nil {
			return reconcile.AppliedOps{}, fmt.Errorf("database: %w", source.ErrNotConfigured)
		}
		snap, err = s.db.LoadTable(ctx, req.Table)
	default:
		return reconcile.AppliedOps{}, fmt.Errorf("%w %q", ErrUnknownSource, req.Source)
	}
	if err != nil {
		return reconcile.AppliedOps{}, err
	}
	return s.host.OnSnapshot(snap)
}

// Objects lists the snapshot documents in storage.
func (s *Service) Objects(ctx context.Context) ([]string, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("storage: %w", source.ErrNotConfigured)
	}
	return s.storage.List(ctx)
}

// Save stores the live snapshot as object.
func (s *Service) Save(ctx context.Context, object string) error {
	if s.storage == nil {
		return fmt.Errorf("storage: %w", source.ErrNotConfigured)
	}
	return s.storage.Save(ctx, object, s.host.Snapshot())
}

// Export writes the live snapshot as a chart page.
func (s *Service) Export(w io.Writer) error {
	return export.Render(w, s.host.Snapshot(), export.DefaultOptions())
}
