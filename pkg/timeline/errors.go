package timeline

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/symptomline/pkg/calendar"
	"github.com/Sumatoshi-tech/symptomline/pkg/symptom"
)

// ErrInvalidRange is returned by Aggregate when the range starts after it ends.
var ErrInvalidRange = calendar.ErrInvalidRange

// ErrMalformedEntry marks an entry whose timestamp cannot be resolved to a
// calendar day. It is reported through Diagnostics, never returned as a
// fatal error.
var ErrMalformedEntry = errors.New("malformed entry")

// Diagnostic is a non-fatal report about one input entry.
type Diagnostic struct {
	EntryID string `json:"entry_id"`
	Name    string `json:"name,omitempty"`
	Err     error  `json:"-"`
	Message string `json:"message"`
}

// Diagnostics collects non-fatal reports produced by one invocation.
type Diagnostics []Diagnostic

func malformed(e symptom.Entry) Diagnostic {
	err := fmt.Errorf("%w: entry %q has no resolvable timestamp", ErrMalformedEntry, e.ID)

	return Diagnostic{
		EntryID: e.ID,
		Name:    e.Name,
		Err:     err,
		Message: err.Error(),
	}
}

// Err joins all diagnostic errors, or returns nil when there are none.
func (d Diagnostics) Err() error {
	if len(d) == 0 {
		return nil
	}

	errs := make([]error, len(d))
	for i, diag := range d {
		errs[i] = diag.Err
	}

	return errors.Join(errs...)
}

// EntryIDs returns the ids of the reported entries in report order.
func (d Diagnostics) EntryIDs() []string {
	ids := make([]string, len(d))
	for i, diag := range d {
		ids[i] = diag.EntryID
	}

	return ids
}
