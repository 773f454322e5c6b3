package search

import (
	"net/url"
	"strings"

	"github.com/cli/browser"
	"github.com/rs/zerolog"
)

// DefaultSearchURL is used when no template is configured.
const DefaultSearchURL = "https://duckduckgo.com/?q=%s"

// OpenFunc hands a URL to whatever displays it.
type OpenFunc func(rawURL string) error

// Delegator sends free-text queries to an external web search engine.
type Delegator struct {
	template string
	open     OpenFunc
	log      zerolog.Logger
}

// NewDelegator returns a Delegator that fills template's %s with the
// escaped query. A nil open uses the system browser.
func NewDelegator(template string, open OpenFunc, log zerolog.Logger) *Delegator {
	if template == "" {
		template = DefaultSearchURL
	}
	if open == nil {
		open = browser.OpenURL
	}
	return &Delegator{template: template, open: open, log: log}
}

// URL returns the search URL for query, or "" for a blank query.
func (d *Delegator) URL(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}
	return strings.Replace(d.template, "%s", url.QueryEscape(query), 1)
}

// Search opens the results page for query. Blank queries are ignored.
// Failures to open are logged, never returned. Reports whether a search
// was issued.
func (d *Delegator) Search(query string) bool {
	target := d.URL(query)
	if target == "" {
		return false
	}
	if err := d.open(target); err != nil {
		d.log.Warn().Err(err).Str("url", target).Msg("could not open search")
	}
	return true
}
