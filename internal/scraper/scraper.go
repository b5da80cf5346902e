package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/pfrederiksen/wimbledon-finals/internal/logger"
)

const (
	SourceURL = "https://www.tennis-x.com/winners/mens/wimbledon.php"
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	Timeout   = 30 * time.Second

	maxDocumentBytes = 10 << 20
)

// NetworkError is returned when the source document cannot be retrieved,
// either because the transport failed or the server answered with a non-2xx status.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Config controls where and how the scraper fetches
type Config struct {
	URL         string
	UserAgent   string
	Timeout     time.Duration
	MinInterval time.Duration // minimum spacing between fetches; zero disables
}

// Scraper handles fetching and parsing the finals results page
type Scraper struct {
	client    *http.Client
	url       string
	userAgent string
	limiter   *rate.Limiter
}

// New creates a new Scraper. Zero fields in cfg fall back to the package defaults.
func New(cfg Config) *Scraper {
	if cfg.URL == "" {
		cfg.URL = SourceURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = Timeout
	}

	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}

	return &Scraper{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		url:       cfg.URL,
		userAgent: cfg.UserAgent,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

// URL returns the configured source page
func (s *Scraper) URL() string {
	return s.url
}

// Fetch retrieves the raw markup at url
func (s *Scraper) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, &NetworkError{URL: url, Err: eris.Wrap(err, "scraper: wait for fetch slot")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: eris.Wrap(err, "scraper: create request")}
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: eris.Wrap(err, "scraper: fetch page")}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, &NetworkError{URL: url, Err: eris.Wrap(err, "scraper: read body")}
	}

	logger.Debug("Fetched source document", logger.Fields{
		"url":   url,
		"bytes": len(body),
	})

	return body, nil
}

// FetchDocument fetches the configured source page
func (s *Scraper) FetchDocument(ctx context.Context) ([]byte, error) {
	return s.Fetch(ctx, s.url)
}
