package form

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jobportal/portal-client/internal/core/domain"
)

// Draft is the ephemeral state of one mounted form: the values typed so far,
// the current validation errors and the in-flight flag. A Draft belongs to the
// screen that created it and is never shared between screens. Values are
// frozen while a submission holds the draft.
type Draft struct {
	name   string
	schema Schema

	mu     sync.Mutex
	values Input
	errors Errors

	inFlight atomic.Bool
}

// NewDraft creates a draft for form name seeded with initial values.
func NewDraft(name string, schema Schema, initial Input) *Draft {
	d := &Draft{name: name, schema: schema, values: initial.Clone()}
	d.errors = schema.Validate(d.values)
	return d
}

// Name returns the form name the draft was created for.
func (d *Draft) Name() string { return d.name }

// Set updates a text field and re-runs validation.
func (d *Draft) Set(field, value string) (Errors, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.locked(); err != nil {
		return d.errors.Clone(), err
	}
	d.values.Fields[field] = value
	d.errors = d.schema.Validate(d.values)
	return d.errors.Clone(), nil
}

// SetFile attaches (or, with nil, detaches) a file and re-runs validation.
func (d *Draft) SetFile(field string, f *File) (Errors, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.locked(); err != nil {
		return d.errors.Clone(), err
	}
	if d.values.Files == nil {
		d.values.Files = make(map[string]*File)
	}
	if f == nil {
		delete(d.values.Files, field)
	} else {
		d.values.Files[field] = f
	}
	d.errors = d.schema.Validate(d.values)
	return d.errors.Clone(), nil
}

// Replace swaps every value at once, as a submit attempt with a full value
// set does, and re-runs validation.
func (d *Draft) Replace(in Input) (Errors, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.locked(); err != nil {
		return d.errors.Clone(), err
	}
	d.values = in.Clone()
	d.errors = d.schema.Validate(d.values)
	return d.errors.Clone(), nil
}

// Snapshot returns a copy of the current values together with their
// validation errors, both taken under one lock.
func (d *Draft) Snapshot() (Input, Errors) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errors = d.schema.Validate(d.values)
	return d.values.Clone(), d.errors.Clone()
}

// Values returns a copy of the current values.
func (d *Draft) Values() Input {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.values.Clone()
}

// Errors returns a copy of the errors from the last validation run.
func (d *Draft) Errors() Errors {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errors.Clone()
}

// InFlight reports whether a submission currently holds the draft.
func (d *Draft) InFlight() bool { return d.inFlight.Load() }

// Acquire marks the draft as submitting. It returns false when another
// submission already holds it. Edits fail until Release.
func (d *Draft) Acquire() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inFlight.CompareAndSwap(false, true)
}

// Release clears the in-flight flag.
func (d *Draft) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inFlight.Store(false)
}

// locked reports an in-flight submission. Callers hold d.mu.
func (d *Draft) locked() error {
	if d.inFlight.Load() {
		return fmt.Errorf("%s: %w", d.name, domain.ErrSubmissionInFlight)
	}
	return nil
}
