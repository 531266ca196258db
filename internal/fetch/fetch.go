// Package fetch retrieves article pages over HTTP with a browser user-agent
// and a bounded timeout, classifying failures into the boundary error codes.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/soal8877-ctrl/referent/internal/referr"
)

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is a conventional browser user-agent. Some sites serve
// stripped or blocked pages to obvious bot agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Client fetches pages. The zero value is usable.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
	// RedirectMaxHops caps redirect following. Zero means 5.
	RedirectMaxHops int
}

// Fetch issues a GET for rawURL and returns the page body as UTF-8 text.
// Non-2xx responses and transport failures come back as coded errors:
// NOT_FOUND for 404, SERVER_ERROR for 5xx, LOAD_ERROR for other statuses,
// TIMEOUT when the deadline elapses, NETWORK_ERROR otherwise.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !isHTTPScheme(u) {
		return nil, referr.Errorf(referr.EValidation, "url must be a valid http(s) address")
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, referr.Errorf(referr.EValidation, "url must be a valid http(s) address")
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, referr.StatusErrorf(referr.ENotFound, resp.StatusCode, "the page was not found")
	case resp.StatusCode >= 500:
		return nil, referr.StatusErrorf(referr.EServerError, resp.StatusCode, "the site returned a server error")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, referr.StatusErrorf(referr.ELoadError, resp.StatusCode, "could not load the page (status %d)", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(fmt.Errorf("read body: %w", err))
	}
	return decodeCharset(body, resp.Header.Get("Content-Type")), nil
}

func (c *Client) httpClient() *http.Client {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	checkRedirect := func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		if !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
	if c.HTTPClient != nil {
		// Clone to attach the redirect policy without mutating the caller's client.
		base := *c.HTTPClient
		base.CheckRedirect = checkRedirect
		return &base
	}
	return &http.Client{CheckRedirect: checkRedirect}
}

func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return referr.Errorf(referr.ETimeout, "timed out while loading the page")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return referr.Errorf(referr.ETimeout, "timed out while loading the page")
	}
	return referr.Errorf(referr.ENetwork, "could not reach the site")
}

// decodeCharset converts body to UTF-8 using the charset parameter of the
// Content-Type header. Unknown or missing charsets pass the bytes through
// unchanged (the HTML parser tolerates them).
func decodeCharset(body []byte, contentType string) []byte {
	if contentType == "" {
		return body
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body
	}
	name := strings.ToLower(strings.TrimSpace(params["charset"]))
	if name == "" || name == "utf-8" || name == "utf8" {
		return body
	}
	enc, err := htmlindex.Get(name)
	if err != nil || enc == nil {
		return body
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return body
	}
	return decoded
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	s := strings.ToLower(u.Scheme)
	return s == "http" || s == "https"
}
