package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// DefaultUserAgent is a browser-like user agent. Several publishing
// platforms reject requests that identify as a bot or as Go's default
// client, so the fetcher spoofs a desktop browser unless told otherwise.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// DefaultTimeout bounds each request. The same timeout applies to every
// URL regardless of which extraction strategy consumes the result.
const DefaultTimeout = 10 * time.Second

// FetchError reports a failed retrieval for a single URL. Callers skip the
// URL and continue; a FetchError is never fatal to a batch.
type FetchError struct {
	URL    string
	Status int // zero when the failure happened before a response arrived
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client retrieves raw HTML over HTTP. It performs no retries and no
// caching; redirects follow the transport's default policy.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return DefaultUserAgent
}

// Fetch issues a GET for url and returns the response body decoded to
// UTF-8. Non-2xx statuses and transport failures return a *FetchError.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: fmt.Errorf("new request: %w", err)}
	}
	if req.URL == nil || !isHTTPScheme(req.URL) {
		return "", &FetchError{URL: rawURL, Err: fmt.Errorf("unsupported URL scheme")}
	}
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{URL: rawURL, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status: %d", resp.StatusCode)}
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !isAllowedHTMLContentType(contentType) {
		return "", &FetchError{URL: rawURL, Status: resp.StatusCode, Err: fmt.Errorf("unsupported content type: %s", contentType)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}
	return decodeToUTF8(body, contentType), nil
}

// decodeToUTF8 converts body to UTF-8 using the charset declared in the
// Content-Type header or sniffed from the document. On failure the raw
// bytes are returned unchanged.
func decodeToUTF8(body []byte, contentType string) string {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return string(body)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

func isAllowedHTMLContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	return strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml+xml")
}
