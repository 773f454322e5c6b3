package model

import (
	"net/url"
	"strings"
	"time"
)

// Bookmark represents one tile in the grid.
type Bookmark struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Image     string    `json:"image,omitempty"` // data URI, empty = placeholder
	CreatedAt time.Time `json:"createdAt"`
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	URL   string
	Title string
	Image string
}

// NewBookmark creates a Bookmark with a generated ID and creation time.
func NewBookmark(params NewBookmarkParams) Bookmark {
	return Bookmark{
		ID:        GenerateID(),
		URL:       params.URL,
		Title:     params.Title,
		Image:     params.Image,
		CreatedAt: time.Now(),
	}
}

// HasImage reports whether the bookmark carries an inline thumbnail.
func (b Bookmark) HasImage() bool {
	return b.Image != ""
}

// Placeholder returns the text shown instead of a missing thumbnail.
func (b Bookmark) Placeholder() string {
	return Placeholder(b.Title)
}

// Placeholder returns the first two characters of title, upper-cased.
func Placeholder(title string) string {
	runes := []rune(title)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

// Hostname returns the host component of rawURL.
// The second return value is false when rawURL has no scheme or host.
func Hostname(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return "", false
	}
	return u.Hostname(), true
}

// ResolveTitle picks the first usable title in order:
// explicit title, fetched page title, URL hostname, raw URL.
func ResolveTitle(explicit, fetched, rawURL string) string {
	if t := strings.TrimSpace(explicit); t != "" {
		return t
	}
	if t := strings.TrimSpace(fetched); t != "" {
		return t
	}
	if host, ok := Hostname(rawURL); ok {
		return host
	}
	return strings.TrimSpace(rawURL)
}
