package ports

import (
	"context"
	"encoding/json"
	"net/url"
)

// Encoding selects how a request body is serialised.
type Encoding int

const (
	EncodingNone Encoding = iota
	EncodingJSON
	EncodingMultipart
)

// Part is one text part of a multipart body. Repeated names are allowed.
type Part struct {
	Name  string
	Value string
}

// FilePart is one file part of a multipart body.
type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Content     []byte
}

// Request is a single call against the remote portal service.
type Request struct {
	Method   string
	Path     string
	Query    url.Values
	Encoding Encoding
	JSON     any
	Parts    []Part
	Files    []FilePart
}

// Envelope is the uniform {success, message, <entity>} response body.
// Data holds every other top-level key, undecoded.
type Envelope struct {
	Status  int
	Success bool
	Message string
	Data    map[string]json.RawMessage
}

// Decode unmarshals the payload stored under key into out. It reports false
// when the key is absent or null.
func (e *Envelope) Decode(key string, out any) (bool, error) {
	raw, ok := e.Data[key]
	if !ok || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// PortalAPI performs exactly one request per call. It returns an Envelope
// whenever the response carried a success flag, whatever the HTTP status;
// network failures and malformed bodies are errors wrapping
// domain.ErrTransportFailure.
type PortalAPI interface {
	Do(ctx context.Context, req Request) (*Envelope, error)
}

// Credentials exposes the session cookie held by the transport.
type Credentials interface {
	Token() string
	SetToken(token string) error
	ClearToken() error
}
