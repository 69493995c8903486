// Package surface owns the lifecycle of the rendering resource that
// visualizes a trend dataset. At most one resource is live per Adapter.
package surface

import (
	"context"
	"errors"
	"io"

	"github.com/Sumatoshi-tech/symptomline/pkg/timeline"
)

// Sentinel errors.
var (
	// ErrResourceAcquisition wraps any failure to create a rendering resource.
	ErrResourceAcquisition = errors.New("visualization unavailable")
	// ErrNoResource is returned by Render when no resource is live.
	ErrNoResource = errors.New("no live rendering resource")
	// ErrClosed is returned by updates issued after Close.
	ErrClosed = errors.New("surface adapter closed")
	// ErrSuperseded marks an async result discarded because a newer update started.
	ErrSuperseded = errors.New("update superseded")
	// ErrReleased is returned when a released resource is used.
	ErrReleased = errors.New("resource already released")
	// ErrNoSeries is returned by factories asked to draw an empty dataset.
	ErrNoSeries = errors.New("dataset has no series")
)

// Resource is a live visualization of one dataset.
type Resource interface {
	Render(w io.Writer) error
	Release() error
}

// Factory creates resources initialized with a dataset.
type Factory interface {
	Acquire(ctx context.Context, ds timeline.Dataset) (Resource, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(ctx context.Context, ds timeline.Dataset) (Resource, error)

// Acquire calls f.
func (f FactoryFunc) Acquire(ctx context.Context, ds timeline.Dataset) (Resource, error) {
	return f(ctx, ds)
}
