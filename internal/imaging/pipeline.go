// Package imaging turns remote images into compact inline thumbnails.
//
// Every public operation is best-effort: failures are logged at debug level
// and reported as an empty result, never as an error.
package imaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

const (
	DefaultMaxSize          = 600
	DefaultQuality          = 85
	DefaultFaviconEndpoint  = "https://www.google.com/s2/favicons"
	DefaultFaviconSize      = 128
	DefaultMaxDownloadBytes = 10 << 20
)

var (
	ErrInvalidURL = errors.New("invalid url")
	ErrStatus     = errors.New("unexpected HTTP status")
	ErrTooLarge   = errors.New("response exceeds download limit")
)

// Options configures a Pipeline. Zero values fall back to the defaults.
type Options struct {
	Client           *http.Client
	MaxSize          int
	Quality          int
	FaviconEndpoint  string
	FaviconSize      int
	MaxDownloadBytes int64
	Logger           zerolog.Logger
}

// Pipeline fetches, decodes, downsizes and re-encodes images.
// It holds no per-call state and is safe for concurrent use.
type Pipeline struct {
	client           *http.Client
	maxSize          int
	quality          int
	faviconEndpoint  string
	faviconSize      int
	maxDownloadBytes int64
	log              zerolog.Logger
}

// New creates a Pipeline from opts.
func New(opts Options) *Pipeline {
	p := &Pipeline{
		client:           opts.Client,
		maxSize:          opts.MaxSize,
		quality:          opts.Quality,
		faviconEndpoint:  opts.FaviconEndpoint,
		faviconSize:      opts.FaviconSize,
		maxDownloadBytes: opts.MaxDownloadBytes,
		log:              opts.Logger,
	}
	if p.client == nil {
		p.client = &http.Client{}
	}
	if p.maxSize <= 0 {
		p.maxSize = DefaultMaxSize
	}
	if p.quality <= 0 || p.quality > 100 {
		p.quality = DefaultQuality
	}
	if p.faviconEndpoint == "" {
		p.faviconEndpoint = DefaultFaviconEndpoint
	}
	if p.faviconSize <= 0 {
		p.faviconSize = DefaultFaviconSize
	}
	if p.maxDownloadBytes <= 0 {
		p.maxDownloadBytes = DefaultMaxDownloadBytes
	}
	return p
}

// FetchImage runs the full pipeline on a direct image URL and returns a
// data URI, or "" if any stage fails.
func (p *Pipeline) FetchImage(ctx context.Context, imageURL string) string {
	uri, err := p.thumbnailFrom(ctx, imageURL)
	if err != nil {
		p.log.Debug().Err(err).Str("url", imageURL).Msg("image fetch failed")
		return ""
	}
	return uri
}

// thumbnailFrom is FetchImage with the failure reason kept.
func (p *Pipeline) thumbnailFrom(ctx context.Context, imageURL string) (string, error) {
	body, err := p.get(ctx, imageURL, true)
	if err != nil {
		return "", err
	}
	img, err := Decode(body)
	if err != nil {
		return "", err
	}
	return Encode(Shrink(img, p.maxSize), p.quality)
}

// get performs a plain GET and returns the body, capped at the download
// limit. With checkStatus, non-2xx responses are an error.
func (p *Pipeline) get(ctx context.Context, rawURL string, checkStatus bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if checkStatus && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > p.maxDownloadBytes {
		return nil, ErrTooLarge
	}
	return body, nil
}
