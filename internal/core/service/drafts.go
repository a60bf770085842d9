package service

import (
	"sync"

	"github.com/jobportal/portal-client/internal/core/form"
)

// Drafts holds the drafts of the currently mounted screen, at most one per
// form. Mounting another screen discards them all.
type Drafts struct {
	forms *Forms

	mu     sync.Mutex
	drafts map[string]*form.Draft
}

func NewDrafts(forms *Forms) *Drafts {
	return &Drafts{forms: forms, drafts: make(map[string]*form.Draft)}
}

// Get returns the draft for name, creating an empty one on first use.
func (d *Drafts) Get(name string) (*form.Draft, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if draft, ok := d.drafts[name]; ok {
		return draft, nil
	}
	draft, err := d.forms.NewDraft(name, form.Input{})
	if err != nil {
		return nil, err
	}
	d.drafts[name] = draft
	return draft, nil
}

// Reset discards every draft.
func (d *Drafts) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	clear(d.drafts)
}
