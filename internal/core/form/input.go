// Package form holds the declarative validation schemas for every portal
// form and the per-screen draft state they are evaluated against.
package form

import "maps"

// File is an uploaded file attached to a form field.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}

// Input is the raw set of named values gathered by a screen. Text values stay
// strings until a schema binds them into typed fields.
type Input struct {
	Fields map[string]string
	Files  map[string]*File
}

// Text builds an Input from text fields only.
func Text(fields map[string]string) Input {
	return Input{Fields: fields}
}

// Get returns the text value of field, or "".
func (in Input) Get(field string) string {
	return in.Fields[field]
}

// File returns the file attached to field, or nil.
func (in Input) File(field string) *File {
	return in.Files[field]
}

// HasFiles reports whether any non-nil file is attached.
func (in Input) HasFiles() bool {
	for _, f := range in.Files {
		if f != nil {
			return true
		}
	}
	return false
}

// Clone returns a copy whose maps can be mutated independently.
func (in Input) Clone() Input {
	out := Input{Fields: make(map[string]string, len(in.Fields))}
	maps.Copy(out.Fields, in.Fields)
	if in.Files != nil {
		out.Files = make(map[string]*File, len(in.Files))
		maps.Copy(out.Files, in.Files)
	}
	return out
}

// Errors maps a field name to its first violated rule message.
// An empty Errors means the input is valid.
type Errors map[string]string

// Add records msg for field unless the field already has an error.
func (e Errors) Add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

// Merge adds every entry of other that is not already present.
func (e Errors) Merge(other Errors) {
	for field, msg := range other {
		e.Add(field, msg)
	}
}

// Empty reports whether no rule was violated.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Clone returns an independent copy.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	maps.Copy(out, e)
	return out
}
