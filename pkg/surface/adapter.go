package surface

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/Sumatoshi-tech/symptomline/pkg/calendar"
	"github.com/Sumatoshi-tech/symptomline/pkg/symptom"
	"github.com/Sumatoshi-tech/symptomline/pkg/timeline"
)

// State is the visualization state reported to the host.
type State int

const (
	// StateIdle means no update has completed yet.
	StateIdle State = iota
	// StateNoData means the dataset has no series; no resource was acquired.
	StateNoData
	// StateReady means a resource is live for the current dataset.
	StateReady
	// StateUnavailable means acquisition failed; the dataset is still usable.
	StateUnavailable
	// StateRejected means the dataset could not be computed.
	StateRejected
	// StateClosed means the adapter has been torn down.
	StateClosed
	// StatePending means an async update is computing; no resource is held.
	StatePending
	// StateCancelled means an async update's context ended before commit.
	StateCancelled
)

var stateNames = [...]string{"idle", "no_data", "ready", "unavailable", "rejected", "closed", "pending", "cancelled"}

// String returns the state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}

	return stateNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is the outcome of one update.
type Snapshot struct {
	State       State                `json:"state"`
	Generation  uint64               `json:"generation"`
	Dataset     timeline.Dataset     `json:"dataset"`
	Diagnostics timeline.Diagnostics `json:"diagnostics,omitempty"`
	Err         error                `json:"-"`
}

// Result is delivered by UpdateAsync.
type Result struct {
	Snapshot Snapshot
	Err      error
}

// Aggregator computes the dataset an update visualizes.
type Aggregator interface {
	Aggregate(entries []symptom.Entry, rng calendar.Range) (timeline.Dataset, timeline.Diagnostics, error)
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithAggregator replaces the default timeline.Aggregator.
func WithAggregator(agg Aggregator) Option {
	return func(a *Adapter) {
		a.aggregator = agg
	}
}

// WithLogger sets the adapter logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// WithObserver registers fn to be called with every committed snapshot,
// while the adapter lock is held. fn must not call back into the adapter.
func WithObserver(fn func(context.Context, Snapshot)) Option {
	return func(a *Adapter) {
		a.observer = fn
	}
}

// handle wraps the single live resource. Only acquireLocked creates one.
type handle struct {
	res        Resource
	generation uint64
}

// Adapter keeps exactly one rendering resource alive for the latest
// dataset. Every update releases the previous resource before anything
// else happens, and Close releases unconditionally.
type Adapter struct {
	factory    Factory
	aggregator Aggregator
	logger     *slog.Logger
	observer   func(context.Context, Snapshot)

	mu         sync.Mutex
	live       *handle
	generation uint64
	closed     bool
	last       Snapshot
}

// NewAdapter creates an adapter acquiring resources from factory.
func NewAdapter(factory Factory, opts ...Option) *Adapter {
	a := &Adapter{
		factory:    factory,
		aggregator: timeline.Aggregator{},
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.Default()
	}

	return a
}

// Update recomputes the dataset and replaces the live resource.
//
// A dataset with no series yields StateNoData without acquiring. A failed
// acquisition yields StateUnavailable together with an error wrapping
// ErrResourceAcquisition; the snapshot still carries the dataset.
func (a *Adapter) Update(ctx context.Context, entries []symptom.Entry, rng calendar.Range) (Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return Snapshot{State: StateClosed}, ErrClosed
	}

	a.generation++
	gen := a.generation

	_ = a.releaseLocked()

	ds, diags, err := a.aggregator.Aggregate(entries, rng)

	return a.commitLocked(ctx, gen, ds, diags, err)
}

// UpdateAsync runs the aggregation off the caller's goroutine. The prior
// resource is released and the snapshot moves to StatePending before
// UpdateAsync returns. If a newer update or Close happens before the
// computation finishes, the result is discarded with ErrSuperseded or
// ErrClosed and nothing is acquired. A context that ends first commits
// StateCancelled.
func (a *Adapter) UpdateAsync(ctx context.Context, entries []symptom.Entry, rng calendar.Range) <-chan Result {
	out := make(chan Result, 1)

	a.mu.Lock()

	if a.closed {
		a.mu.Unlock()

		out <- Result{Snapshot: Snapshot{State: StateClosed}, Err: ErrClosed}
		close(out)

		return out
	}

	a.generation++
	gen := a.generation

	_ = a.releaseLocked()
	a.last = Snapshot{State: StatePending, Generation: gen}
	a.mu.Unlock()

	entries = slices.Clone(entries)

	go func() {
		defer close(out)

		ds, diags, aggErr := a.aggregator.Aggregate(entries, rng)

		a.mu.Lock()
		defer a.mu.Unlock()

		switch {
		case a.closed:
			out <- Result{Snapshot: Snapshot{State: StateClosed, Generation: gen}, Err: ErrClosed}

			return
		case gen != a.generation:
			a.logger.Debug("discarding superseded trend update",
				"generation", gen, "current", a.generation)

			out <- Result{Snapshot: Snapshot{Generation: gen}, Err: ErrSuperseded}

			return
		}

		err := ctx.Err()
		if err != nil {
			snap := a.publishLocked(ctx, Snapshot{State: StateCancelled, Generation: gen, Err: err})
			out <- Result{Snapshot: snap, Err: err}

			return
		}

		snap, err := a.commitLocked(ctx, gen, ds, diags, aggErr)
		out <- Result{Snapshot: snap, Err: err}
	}()

	return out
}

// Render writes the live resource to w.
func (a *Adapter) Render(w io.Writer) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.live == nil {
		return ErrNoResource
	}

	return a.live.res.Render(w)
}

// Snapshot returns the outcome of the most recent committed update.
func (a *Adapter) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.last
}

// Live reports whether a resource is currently held.
func (a *Adapter) Live() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.live != nil
}

// Close releases the live resource and rejects further updates. It is
// safe to call more than once.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}

	a.closed = true
	a.generation++
	a.last = Snapshot{State: StateClosed, Generation: a.generation}

	return a.releaseLocked()
}

func (a *Adapter) commitLocked(
	ctx context.Context, gen uint64, ds timeline.Dataset, diags timeline.Diagnostics, aggErr error,
) (Snapshot, error) {
	snap := Snapshot{Generation: gen, Dataset: ds, Diagnostics: diags}

	switch {
	case aggErr != nil:
		snap.State = StateRejected
		snap.Err = aggErr
	case ds.Empty():
		snap.State = StateNoData
	default:
		err := a.acquireLocked(ctx, gen, ds)
		if err != nil {
			snap.State = StateUnavailable
			snap.Err = err
		} else {
			snap.State = StateReady
		}
	}

	a.publishLocked(ctx, snap)

	return snap, snap.Err
}

// publishLocked records snap as the latest outcome and notifies the observer.
func (a *Adapter) publishLocked(ctx context.Context, snap Snapshot) Snapshot {
	a.last = snap

	if a.observer != nil {
		a.observer(ctx, snap)
	}

	return snap
}

// acquireLocked is the only place a handle is created. It releases any
// live handle first, so two resources never coexist.
func (a *Adapter) acquireLocked(ctx context.Context, gen uint64, ds timeline.Dataset) error {
	_ = a.releaseLocked()

	res, err := a.factory.Acquire(ctx, ds)
	if err != nil {
		a.logger.Warn("trend surface unavailable", "generation", gen, "error", err)

		return fmt.Errorf("%w: %w", ErrResourceAcquisition, err)
	}

	if res == nil {
		return fmt.Errorf("%w: factory returned no resource", ErrResourceAcquisition)
	}

	a.live = &handle{res: res, generation: gen}

	return nil
}

// releaseLocked drops the live handle. The handle is cleared even when
// Release fails so a broken resource is never reused.
func (a *Adapter) releaseLocked() error {
	if a.live == nil {
		return nil
	}

	h := a.live
	a.live = nil

	err := h.res.Release()
	if err != nil {
		a.logger.Warn("releasing trend surface", "generation", h.generation, "error", err)

		return fmt.Errorf("release generation %d: %w", h.generation, err)
	}

	return nil
}

// IsUnavailable reports whether err came from a failed acquisition.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrResourceAcquisition)
}
