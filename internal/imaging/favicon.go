package imaging

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// FaviconURL builds the favicon-service query for the host of siteURL.
// Returns ErrInvalidURL when siteURL has no scheme or host.
func (p *Pipeline) FaviconURL(siteURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(siteURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, siteURL)
	}

	q := url.Values{}
	q.Set("domain", u.Hostname())
	q.Set("sz", strconv.Itoa(p.faviconSize))
	return p.faviconEndpoint + "?" + q.Encode(), nil
}

// SiteIcon fetches the favicon of siteURL's host and returns it as a
// thumbnail, or "" on failure. Unparsable input never reaches the network.
func (p *Pipeline) SiteIcon(ctx context.Context, siteURL string) string {
	if strings.TrimSpace(siteURL) == "" {
		return ""
	}
	iconURL, err := p.FaviconURL(siteURL)
	if err != nil {
		p.log.Debug().Err(err).Str("url", siteURL).Msg("favicon lookup skipped")
		return ""
	}
	return p.FetchImage(ctx, iconURL)
}
