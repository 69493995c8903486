// Package symptom defines the symptom observation model and its pure
// display classifications (category colour class, severity band).
package symptom

import (
	"strings"
	"time"
)

// Category groups symptoms for display. Values outside the known set are
// preserved verbatim and fall back to the default display class.
type Category string

// Known categories.
const (
	CategoryPhysical  Category = "PHYSICAL"
	CategoryEmotional Category = "EMOTIONAL"
	CategoryCognitive Category = "COGNITIVE"
	CategorySleep     Category = "SLEEP"
	CategoryOther     Category = "OTHER"
)

// Severity domain convention: 0 absent, 5 worst.
const (
	SeverityMin = 0
	SeverityMax = 5
)

// Entry is one symptom observation. Entries are immutable once constructed
// by the upstream collaborator; nothing in this module mutates them.
type Entry struct {
	// ID is an opaque unique identifier.
	ID string `json:"id" yaml:"id"`
	// Name is the series grouping key (case-sensitive exact match).
	Name string `json:"name" yaml:"name"`
	// Category is the display category.
	Category Category `json:"category" yaml:"category"`
	// Severity is an ordinal value, conventionally 0..5.
	Severity float64 `json:"severity" yaml:"severity"`
	// Timestamp is the instant of observation. The zero value means the
	// upstream source could not resolve it.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	// Notes is free text, display only.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Resolved reports whether the entry carries a usable timestamp.
func (e Entry) Resolved() bool {
	return !e.Timestamp.IsZero()
}

// Known reports whether c is one of the recognised categories.
func (c Category) Known() bool {
	switch c {
	case CategoryPhysical, CategoryEmotional, CategoryCognitive, CategorySleep, CategoryOther:
		return true
	default:
		return false
	}
}

// ParseCategory normalises s to a Category. Unrecognised input is returned
// upper-cased but otherwise untouched.
func ParseCategory(s string) Category {
	return Category(strings.ToUpper(strings.TrimSpace(s)))
}
