package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// TokenSource yields the current bearer token, or "" when none is stored.
// The credential store implements this; the pipeline reads nothing else
// from it.
type TokenSource interface {
	Token() string
}

// Client wraps every outbound call to the catalog and user services.
//
// Two authentication channels coexist, matching the services' contract:
// a bearer token attached to each request when the token source yields one,
// and an ambient cookie session (the jar) that the profile endpoint relies
// on. The client does not reconcile them.
type Client struct {
	catalogBase string
	userBase    string
	http        *http.Client
	tokens      TokenSource
	log         *zap.Logger

	mu        sync.Mutex
	onExpired func()
}

// New creates a Client for the given service base URLs.
func New(catalogBase, userBase string, tokens TokenSource, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		catalogBase: strings.TrimRight(catalogBase, "/"),
		userBase:    strings.TrimRight(userBase, "/"),
		tokens:      tokens,
		log:         log,
		http: &http.Client{
			Timeout: time.Minute,
			Jar:     jar,
		},
	}
}

// OnSessionExpired registers the zero-argument callback invoked when a
// response classifies as an authentication failure. The session controller
// is the only registrant; the callback fires at most once per failing
// response.
func (c *Client) OnSessionExpired(fn func()) {
	c.mu.Lock()
	c.onExpired = fn
	c.mu.Unlock()
}

func (c *Client) sessionExpired() {
	c.mu.Lock()
	fn := c.onExpired
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// do executes the request with standard headers. The bearer credential is
// attached whenever one is present.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	if req.Header.Get("Content-Type") == "" && req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

// doJSON sends a request and decodes the JSON response into out.
// Non-2xx responses come back as a normalized *Error.
func (c *Client) doJSON(ctx context.Context, method, url string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindUnexpected, Message: "encoding request: " + err.Error()}
		}
		bodyReader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return &Error{Kind: KindUnexpected, Message: "building request: " + err.Error()}
	}
	resp, err := c.do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("url", url), zap.Error(err))
		return &Error{Kind: KindUnexpected, Message: "service unreachable"}
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.checkResponse(resp); err != nil {
		return err
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Kind: KindUnexpected, Message: "malformed response"}
		}
	}
	return nil
}

// checkResponse classifies a response: 2xx passes, 401 or a token-error
// marker in the body is an authentication failure (fires the session-expired
// callback), anything else normalizes into a remote error.
func (c *Client) checkResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return nil
	}

	raw, _ := io.ReadAll(resp.Body)
	msg, details, tokenDead := normalizeBody(raw)

	if resp.StatusCode == http.StatusUnauthorized || tokenDead {
		c.log.Info("authentication failure",
			zap.Int("status", resp.StatusCode),
			zap.String("url", resp.Request.URL.Path))
		c.sessionExpired()
		return &Error{Kind: KindAuth, Status: resp.StatusCode, Message: msg, Details: details}
	}

	if msg == "" && len(details) == 0 {
		msg = resp.Status
	}
	return &Error{Kind: KindRemote, Status: resp.StatusCode, Message: msg, Details: details}
}

// decodeJSON decodes a 2xx body, normalizing decode failures.
func decodeJSON(r io.Reader, out interface{}) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return &Error{Kind: KindUnexpected, Message: "malformed response"}
	}
	return nil
}

// catalogURL builds a catalog-service URL from path segments.
func (c *Client) catalogURL(parts ...string) string {
	return c.catalogBase + "/" + strings.Join(parts, "/")
}

// userURL builds a user-service URL from path segments.
func (c *Client) userURL(parts ...string) string {
	return c.userBase + "/" + strings.Join(parts, "/")
}
