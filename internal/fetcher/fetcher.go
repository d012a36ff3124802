package fetcher

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"smartclaim/internal/config"
	"smartclaim/internal/domain"
	"smartclaim/internal/port"
)

const defaultMaxImageBytes = 20 * 1024 * 1024

// Fetcher implements port.ImageFetcher over plain HTTP(S).
type Fetcher struct {
	client     *http.Client
	maxRetries int
	backoff    time.Duration
	maxBytes   int64
}

// NewFetcher creates a Fetcher from config.
func NewFetcher(cfg *config.FetchConfig) *Fetcher {
	return NewFetcherWithClient(cfg, nil)
}

// NewFetcherWithClient creates a Fetcher using the given HTTP client (for testing).
func NewFetcherWithClient(cfg *config.FetchConfig, client *http.Client) *Fetcher {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	maxBytes := cfg.MaxImageBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxImageBytes
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Fetcher{
		client:     client,
		maxRetries: maxRetries,
		backoff:    cfg.RetryBackoff,
		maxBytes:   maxBytes,
	}
}

var _ port.ImageFetcher = (*Fetcher)(nil)

// Fetch downloads the document at rawURL and base64-encodes it.
// Network errors and 5xx responses are retried; 4xx responses are not.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*port.FetchedImage, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("fetcher.Fetch: retrying %s (attempt %d/%d): %v", u.Host, attempt, f.maxRetries, lastErr)
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, ctx.Err())
			case <-time.After(f.backoff * time.Duration(attempt)):
			}
		}

		img, retryable, err := f.fetchOnce(ctx, u.String())
		if err == nil {
			return img, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, target string) (img *port.FetchedImage, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("%w: creating request: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "image/*,application/pdf")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode >= 500, fmt.Errorf("%w: status %d", domain.ErrFetchFailed, resp.StatusCode)
	}
	if resp.ContentLength > f.maxBytes {
		return nil, false, domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, true, fmt.Errorf("%w: reading body: %v", domain.ErrFetchFailed, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, false, domain.ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, false, fmt.Errorf("%w: empty body", domain.ErrFetchFailed)
	}

	contentType, err := DetectContentType(data, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, false, err
	}

	return &port.FetchedImage{
		Data:        data,
		Base64:      base64.StdEncoding.EncodeToString(data),
		ContentType: contentType,
		Size:        int64(len(data)),
	}, false, nil
}

// ValidateURL checks that rawURL is an absolute http(s) URL.
func ValidateURL(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, domain.ErrMissingInput
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, domain.ErrInvalidImageURL
	}
	return u, nil
}

// DetectContentType sniffs the document type from its magic bytes, falling back
// to the declared header when sniffing is inconclusive.
func DetectContentType(data []byte, declared string) (string, error) {
	sniffLen := len(data)
	if sniffLen > 512 {
		sniffLen = 512
	}
	detected := http.DetectContentType(data[:sniffLen])
	if _, ok := domain.AllowedContentTypes[detected]; ok {
		return detected, nil
	}
	if declared != "" {
		mediaType, _, err := mime.ParseMediaType(declared)
		if err == nil {
			if _, ok := domain.AllowedContentTypes[mediaType]; ok && detected == "application/octet-stream" {
				return mediaType, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, detected)
}
