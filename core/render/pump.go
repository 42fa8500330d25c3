package render

import (
	"errors"
	"sync"

	"netviz/core/graph"
	"netviz/core/metrics"
	"netviz/core/reconcile"

	"go.uber.org/zap"
)

// ErrPumpClosed is returned by Submit after Close.
var ErrPumpClosed = errors.New("snapshot pump closed")

// SnapshotSink reconciles snapshots; *Host implements it.
type SnapshotSink interface {
	OnSnapshot(snap graph.Snapshot) (reconcile.AppliedOps, error)
}

// Pump feeds snapshots to a sink from a single worker. A snapshot submitted
// while another is still pending replaces it.
type Pump struct {
	sink     SnapshotSink
	logger   *zap.Logger
	onResult func(snap graph.Snapshot, ops reconcile.AppliedOps, err error)

	mu      sync.Mutex
	pending *graph.Snapshot
	closed  bool
	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

// PumpOption configures a Pump.
type PumpOption func(*Pump)

// WithResultHandler registers a callback invoked after every reconciliation.
func WithResultHandler(fn func(snap graph.Snapshot, ops reconcile.AppliedOps, err error)) PumpOption {
	return func(p *Pump) { p.onResult = fn }
}

// NewPump starts the worker.
func NewPump(sink SnapshotSink, logger *zap.Logger, opts ...PumpOption) *Pump {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pump{
		sink:    sink,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	go p.run()
	return p
}

// Submit queues snap without blocking. It reports whether a pending snapshot
// was replaced.
func (p *Pump) Submit(snap graph.Snapshot) (coalesced bool, err error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return false, ErrPumpClosed
	}
	coalesced = p.pending != nil
	p.pending = &snap
	p.mu.Unlock()
	if coalesced {
		metrics.ObserveCoalesced()
		p.logger.Debug("Pending snapshot superseded", zap.Uint64("generation", snap.Generation))
	}
	select {
	case p.wake <- struct{}{}:
	default:
	}
	return coalesced, nil
}

// Close drains the pending snapshot, stops the worker and waits for it.
func (p *Pump) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-p.stopped
		return
	}
	p.closed = true
	p.mu.Unlock()
	close(p.done)
	<-p.stopped
}

func (p *Pump) run() {
	defer close(p.stopped)
	for {
		select {
		case <-p.wake:
		case <-p.done:
		}
		for {
			p.mu.Lock()
			snap, closed := p.pending, p.closed
			p.pending = nil
			p.mu.Unlock()
			if snap == nil {
				if closed {
					return
				}
				break
			}
			p.apply(*snap)
		}
	}
}

func (p *Pump) apply(snap graph.Snapshot) {
	ops, err := p.sink.OnSnapshot(snap)
	if err != nil {
		p.logger.Warn("Queued snapshot failed", zap.Uint64("generation", snap.Generation), zap.Error(err))
	}
	if p.onResult != nil {
		p.onResult(snap, ops, err)
	}
}
