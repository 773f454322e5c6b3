package imaging

import (
	"context"
	"regexp"
	"strings"
)

var titlePattern = regexp.MustCompile(`(?i)<title>([^<]*)</title>`)

// ExtractTitle returns the trimmed text of the first <title> element in
// page, or "" if there is none.
func ExtractTitle(page string) string {
	m := titlePattern.FindStringSubmatch(page)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// PageTitle fetches pageURL as text and extracts its title.
// The response status is not checked: an error page with a title still
// yields that title.
func (p *Pipeline) PageTitle(ctx context.Context, pageURL string) string {
	if strings.TrimSpace(pageURL) == "" {
		return ""
	}
	body, err := p.get(ctx, pageURL, false)
	if err != nil {
		p.log.Debug().Err(err).Str("url", pageURL).Msg("title fetch failed")
		return ""
	}
	return ExtractTitle(string(body))
}
