// Package api performs single authorized calls against a ClearPass server's
// REST API.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/http/httputil"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/clearpass-tools/cpapi/internal/apperror"
	"github.com/clearpass-tools/cpapi/internal/config"
)

// ClientTimeout bounds each HTTP round trip, including the token exchange.
const ClientTimeout = 30 * time.Second

// Client issues one API request per invocation.
type Client struct {
	baseURL string
	auth    AuthStrategy
	verbose bool
	debug   bool
	hc      *http.Client
	diag    io.Writer // request/response dumps and connection traces
}

// NewClient builds a client for the given resolved configuration. The API
// root is https://<host>/api; a host that already carries a scheme is used
// as-is.
func NewClient(cfg config.Config, auth AuthStrategy) (*Client, error) {
	if cfg.Host == "" {
		return nil, apperror.ConfigErrorf("No hostname specified: use --host or the host environment variable")
	}
	base := cfg.Host
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}

	transport := &http.Transport{}
	if cfg.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		baseURL: strings.TrimSuffix(base, "/") + "/api",
		auth:    auth,
		verbose: cfg.Verbose,
		debug:   cfg.Debug,
		hc:      &http.Client{Timeout: ClientTimeout, Transport: transport},
		diag:    os.Stderr,
	}, nil
}

// APIError is a non-2xx response from the server. The body is kept verbatim
// so callers can surface the server's JSON error document.
type APIError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *APIError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("server returned %s", e.Status)
	}
	return fmt.Sprintf("server returned %s: %s", e.Status, e.Body)
}

// Invoke performs the call: an optional token exchange, then one request with
// the given method, path, query-string and JSON-body parameters. The decoded
// JSON result is returned as-is (object, array, or scalar; nil on an empty
// body).
func (c *Client) Invoke(ctx context.Context, method, path string, query, body map[string]string) (any, error) {
	tok, authorized, err := c.auth.Token(ctx, c.tokenURL(), c.hc)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	if c.debug {
		req = req.WithContext(httptrace.WithClientTrace(req.Context(), c.connTrace()))
	}
	if c.verbose {
		if dump, err := httputil.DumpRequestOut(req, true); err == nil {
			fmt.Fprintf(c.diag, "%s\n", dump)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if c.verbose {
		if dump, err := httputil.DumpResponse(resp, false); err == nil {
			fmt.Fprintf(c.diag, "%s", dump)
		}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if c.verbose {
		fmt.Fprintf(c.diag, "%s\n\n", payload)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Body: payload}
	}
	if len(payload) == 0 {
		return nil, nil
	}

	var result any
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query, body map[string]string) (*http.Request, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if len(query) > 0 {
		qs := url.Values{}
		for name, value := range query {
			qs.Set(name, value)
		}
		u += "?" + qs.Encode()
	}

	// GET and DELETE never carry a JSON body.
	var reader io.Reader
	hasBody := len(body) > 0 &&
		(method == http.MethodPost || method == http.MethodPatch || method == http.MethodPut)
	if hasBody {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// tokenURL is the ClearPass OAuth2 token endpoint.
func (c *Client) tokenURL() string { return c.baseURL + "/oauth" }

// connTrace reports low-level connection events when --debug is set.
func (c *Client) connTrace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart: func(info httptrace.DNSStartInfo) {
			fmt.Fprintf(c.diag, "* resolving %s\n", info.Host)
		},
		DNSDone: func(info httptrace.DNSDoneInfo) {
			fmt.Fprintf(c.diag, "* resolved: %v\n", info.Addrs)
		},
		ConnectStart: func(network, addr string) {
			fmt.Fprintf(c.diag, "* connecting to %s %s\n", network, addr)
		},
		ConnectDone: func(network, addr string, err error) {
			if err != nil {
				fmt.Fprintf(c.diag, "* connect to %s failed: %v\n", addr, err)
				return
			}
			fmt.Fprintf(c.diag, "* connected to %s\n", addr)
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			if err != nil {
				fmt.Fprintf(c.diag, "* TLS handshake failed: %v\n", err)
				return
			}
			fmt.Fprintf(c.diag, "* TLS handshake complete (%s)\n", tls.CipherSuiteName(state.CipherSuite))
		},
		GotConn: func(info httptrace.GotConnInfo) {
			fmt.Fprintf(c.diag, "* using connection to %s (reused=%v)\n", info.Conn.RemoteAddr(), info.Reused)
		},
	}
}
