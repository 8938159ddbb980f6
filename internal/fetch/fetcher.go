// Package fetch retrieves raw source documents over HTTP.
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mvasilj/content-scout/internal/apperr"
)

// UserAgent identifies the discovery pipeline to remote endpoints.
const UserAgent = "content-scout-discovery/1.0"

const (
	// DefaultAccept is XML/Atom-biased for feed sources.
	DefaultAccept = "application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.1"
	// GithubAccept is JSON-biased for the GitHub repository listing shape.
	GithubAccept = "application/vnd.github+json, application/json;q=0.9, */*;q=0.1"
)

// DefaultTimeout bounds a fetch when the caller passes none; a fetch must
// never block indefinitely.
const DefaultTimeout = 15 * time.Second

// Options configures a single fetch.
type Options struct {
	Timeout time.Duration
	Accept  string
	// Per-source escape hatch for self-signed internal endpoints.
	DisableTLSVerification bool
}

// Fetcher performs HTTP GETs for the sync orchestrator. It never retries;
// retry and backoff policy belongs to the caller.
type Fetcher struct {
	verified *http.Client
	insecure *http.Client
}

func New() *Fetcher {
	insecureTransport := http.DefaultTransport.(*http.Transport).Clone()
	insecureTransport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	return &Fetcher{
		verified: &http.Client{},
		insecure: &http.Client{Transport: insecureTransport},
	}
}

// Fetch GETs a source URL and returns the raw body. Transport failures,
// non-2xx statuses and empty bodies all surface as a FetchError naming the
// URL.
func (f *Fetcher) Fetch(ctx context.Context, url string, opts Options) ([]byte, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.NewFetch(url, err)
	}

	accept := opts.Accept
	if accept == "" {
		accept = DefaultAccept
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", accept)

	client := f.verified
	if opts.DisableTLSVerification {
		client = f.insecure
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, apperr.NewFetch(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.NewFetch(url, fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.NewFetch(url, err)
	}
	if len(body) == 0 {
		return nil, apperr.NewFetch(url, fmt.Errorf("remote source returned an empty response"))
	}

	return body, nil
}
