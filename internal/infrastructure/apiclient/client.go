// Package apiclient talks to the remote portal REST service.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"

	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/ports"
)

// TokenCookie is the cookie the service issues on login.
const TokenCookie = "token"

const maxBodyBytes = 10 << 20

// Client is a ports.PortalAPI over net/http. Credentials travel as cookies
// in the client's jar, so every request carries them.
type Client struct {
	base   *url.URL
	http   *http.Client
	jar    http.CookieJar
	logger zerolog.Logger
}

// New creates a Client for the service rooted at baseURL. timeout is the
// transport-level ceiling; zero disables it.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	return &Client{
		base:   base,
		http:   &http.Client{Timeout: timeout, Jar: jar},
		jar:    jar,
		logger: logger,
	}, nil
}

// Do sends req and decodes the {success, message, ...} envelope. A response
// carrying a success flag is returned whatever its status code.
func (c *Client) Do(ctx context.Context, req ports.Request) (*ports.Envelope, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrTransportFailure, err)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", req.Method).Str("path", req.Path).Msg("portal request failed")
		return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrTransportFailure, req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrTransportFailure, err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("portal request")

	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: status=%d: %w", domain.ErrTransportFailure, req.Method, req.Path, resp.StatusCode, err)
	}
	env.Status = resp.StatusCode
	return env, nil
}

// Ping reports whether the portal service answers at all. Any HTTP response
// counts; only a failed round trip is an error.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.base.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ping: %w", domain.ErrTransportFailure, err)
	}
	resp.Body.Close()
	return nil
}

func (c *Client) newRequest(ctx context.Context, req ports.Request) (*http.Request, error) {
	u, err := url.Parse(c.base.String() + req.Path)
	if err != nil {
		return nil, err
	}
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var (
		body        io.Reader
		contentType string
	)
	switch req.Encoding {
	case ports.EncodingJSON:
		b, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, err
		}
		body, contentType = bytes.NewReader(b), "application/json"
	case ports.EncodingMultipart:
		buf, ct, err := encodeMultipart(req.Parts, req.Files)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	return httpReq, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeMultipart(parts []ports.Part, files []ports.FilePart) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, p := range parts {
		if err := w.WriteField(p.Name, p.Value); err != nil {
			return nil, "", err
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(f.Field), quoteEscaper.Replace(f.Filename)))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

var errNoSuccessFlag = errors.New("response has no success flag")

func decodeEnvelope(body []byte) (*ports.Envelope, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("malformed json: %w", err)
	}
	raw, ok := fields["success"]
	if !ok {
		return nil, errNoSuccessFlag
	}

	env := &ports.Envelope{Data: make(map[string]json.RawMessage, len(fields))}
	if err := json.Unmarshal(raw, &env.Success); err != nil {
		return nil, fmt.Errorf("success flag: %w", err)
	}
	if msg, ok := fields["message"]; ok {
		// A non-string message is ignored rather than failing the call.
		_ = json.Unmarshal(msg, &env.Message)
	}
	for k, v := range fields {
		if k == "success" || k == "message" {
			continue
		}
		env.Data[k] = v
	}
	return env, nil
}

// Token returns the session cookie value, or "".
func (c *Client) Token() string {
	for _, ck := range c.jar.Cookies(c.base) {
		if ck.Name == TokenCookie {
			return ck.Value
		}
	}
	return ""
}

// SetToken installs a session cookie, as when a stored session is restored.
func (c *Client) SetToken(token string) error {
	if token == "" {
		return c.ClearToken()
	}
	c.jar.SetCookies(c.base, []*http.Cookie{{Name: TokenCookie, Value: token, Path: "/", HttpOnly: true}})
	return nil
}

// ClearToken drops the session cookie.
func (c *Client) ClearToken() error {
	c.jar.SetCookies(c.base, []*http.Cookie{{Name: TokenCookie, Value: "", Path: "/", MaxAge: -1}})
	return nil
}

var (
	_ ports.PortalAPI   = (*Client)(nil)
	_ ports.Credentials = (*Client)(nil)
)
