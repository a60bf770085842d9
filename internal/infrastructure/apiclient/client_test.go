package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/ports"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/api/v1", 5*time.Second, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, srv
}

func TestClient_JSONRequestAndCookieRoundTrip(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/user/login":
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected application/json, got %q", ct)
			}
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode body: %v", err)
			}
			if body["email"] != "a@b.com" {
				t.Errorf("unexpected body %v", body)
			}
			http.SetCookie(w, &http.Cookie{Name: TokenCookie, Value: "jwt-1", Path: "/", HttpOnly: true})
			io.WriteString(w, `{"success":true,"message":"Welcome back","user":{"_id":"u1","role":"candidate"}}`)
		case "/api/v1/user/logout":
			ck, err := r.Cookie(TokenCookie)
			if err != nil || ck.Value != "jwt-1" {
				t.Errorf("expected token cookie on follow-up request, got %v %v", ck, err)
			}
			io.WriteString(w, `{"success":true,"message":"Logged out"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	env, err := c.Do(context.Background(), ports.Request{
		Method:   http.MethodPost,
		Path:     "/user/login",
		Encoding: ports.EncodingJSON,
		JSON:     map[string]string{"email": "a@b.com", "password": "x", "role": "candidate"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !env.Success || env.Message != "Welcome back" {
		t.Errorf("unexpected envelope %+v", env)
	}
	var u domain.User
	if found, err := env.Decode("user", &u); !found || err != nil || u.ID != "u1" {
		t.Errorf("decode user: found=%v err=%v user=%+v", found, err, u)
	}
	if c.Token() != "jwt-1" {
		t.Errorf("expected token cookie stored, got %q", c.Token())
	}

	if _, err := c.Do(context.Background(), ports.Request{Method: http.MethodGet, Path: "/user/logout"}); err != nil {
		t.Fatalf("logout: %v", err)
	}
}

func TestClient_MultipartParts(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		if got := r.MultipartForm.Value["skills"]; len(got) != 2 || got[0] != "go" || got[1] != "rust" {
			t.Errorf("expected skills [go rust], got %v", got)
		}
		fh := r.MultipartForm.File["file"]
		if len(fh) != 1 || fh[0].Filename != "cv.pdf" {
			t.Errorf("expected cv.pdf, got %v", fh)
			return
		}
		if ct := fh[0].Header.Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("expected application/pdf, got %q", ct)
		}
		io.WriteString(w, `{"success":true}`)
	})

	_, err := c.Do(context.Background(), ports.Request{
		Method:   http.MethodPost,
		Path:     "/user/profile/update",
		Encoding: ports.EncodingMultipart,
		Parts:    []ports.Part{{Name: "skills", Value: "go"}, {Name: "skills", Value: "rust"}},
		Files:    []ports.FilePart{{Field: "file", Filename: "cv.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.4")}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_DeclaredFailureIsEnvelope(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"success":false,"message":"Location invalid"}`)
	})

	env, err := c.Do(context.Background(), ports.Request{Method: http.MethodPut, Path: "/company/update/c1"})
	if err != nil {
		t.Fatalf("declared failure must not be a transport error: %v", err)
	}
	if env.Success || env.Message != "Location invalid" || env.Status != http.StatusBadRequest {
		t.Errorf("unexpected envelope %+v", env)
	}
}

func TestClient_MalformedResponses(t *testing.T) {
	cases := map[string]string{
		"not json":        `<html>502 Bad Gateway</html>`,
		"no success flag": `{"message":"hi"}`,
		"flag not bool":   `{"success":"yes"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, body)
			})
			_, err := c.Do(context.Background(), ports.Request{Method: http.MethodGet, Path: "/job/get"})
			if !errors.Is(err, domain.ErrTransportFailure) {
				t.Errorf("expected ErrTransportFailure, got %v", err)
			}
		})
	}
}

func TestClient_QueryEncoded(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("keyword"); got != "go & rust" {
			t.Errorf("expected keyword round trip, got %q", got)
		}
		io.WriteString(w, `{"success":true,"jobs":[]}`)
	})

	_, err := c.Do(context.Background(), ports.Request{
		Method: http.MethodGet,
		Path:   "/job/get",
		Query:  url.Values{"keyword": {"go & rust"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_NetworkErrorIsTransportFailure(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := c.Do(context.Background(), ports.Request{Method: http.MethodGet, Path: "/job/get"})
	if !errors.Is(err, domain.ErrTransportFailure) {
		t.Errorf("expected ErrTransportFailure, got %v", err)
	}
}

func TestClient_SetAndClearToken(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	if err := c.SetToken("restored"); err != nil {
		t.Fatal(err)
	}
	if c.Token() != "restored" {
		t.Errorf("expected restored token, got %q", c.Token())
	}
	if err := c.ClearToken(); err != nil {
		t.Fatal(err)
	}
	if c.Token() != "" {
		t.Errorf("expected token cleared, got %q", c.Token())
	}
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	if _, err := New("/api/v1", 0, zerolog.Nop()); err == nil {
		t.Error("expected error for relative base url")
	}
}

func TestClient_Ping(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("expected a 404 to count as reachable, got %v", err)
	}

	srv.Close()
	if err := c.Ping(context.Background()); !errors.Is(err, domain.ErrTransportFailure) {
		t.Errorf("expected ErrTransportFailure, got %v", err)
	}
}
