// Package compose holds the state of the add-bookmark dialog.
//
// Thumbnail and title lookups run asynchronously while the dialog is open.
// Every lookup is tagged with the generation that was current when it
// started; results carrying an older generation belong to a dialog that has
// since been closed or reopened and are dropped.
package compose

import (
	"errors"
	"strings"

	"github.com/nikbrunner/tabgrid/internal/model"
)

// ErrMissingURL is returned by Submit when the URL field is empty.
var ErrMissingURL = errors.New("url is required")

// Confirm tracks the missing-image warning.
type Confirm int

const (
	Unconfirmed Confirm = iota // no warning shown yet
	Warned                     // warning shown, next submit proceeds
)

// SubmitResult is the outcome of a submit attempt.
type SubmitResult int

const (
	Ready             SubmitResult = iota // params are complete, add the bookmark
	NeedsConfirmation                     // no image; submit again to proceed
)

// Form is the add-bookmark dialog state. URL, Title and ImageURL are edited
// directly by the UI.
type Form struct {
	URL      string
	Title    string
	ImageURL string

	image      string
	loading    bool
	generation uint64
	confirm    Confirm
}

// Open clears the form for a new dialog and returns its generation.
func (f *Form) Open() uint64 {
	f.Reset()
	return f.generation
}

// Reset clears all fields. Lookups started before the reset become stale.
func (f *Form) Reset() {
	f.URL = ""
	f.Title = ""
	f.ImageURL = ""
	f.image = ""
	f.loading = false
	f.confirm = Unconfirmed
	f.generation++
}

// Generation returns the current dialog generation.
func (f Form) Generation() uint64 {
	return f.generation
}

// BeginFetch marks an image lookup as in flight and returns the generation
// its result must carry.
func (f *Form) BeginFetch() uint64 {
	f.loading = true
	return f.generation
}

// ApplyImage stores a thumbnail produced for generation gen. An empty
// thumbnail leaves the current one in place. Reports whether the form changed.
func (f *Form) ApplyImage(gen uint64, img string) bool {
	if gen != f.generation {
		return false
	}
	f.loading = false
	if img == "" {
		return false
	}
	f.image = img
	f.confirm = Unconfirmed
	return true
}

// FailImage clears the thumbnail after an explicit fetch came back empty.
func (f *Form) FailImage(gen uint64) bool {
	if gen != f.generation {
		return false
	}
	f.loading = false
	f.image = ""
	return true
}

// ApplyTitle fills the title field with a fetched page title, unless the
// user typed one in the meantime.
func (f *Form) ApplyTitle(gen uint64, title string) bool {
	if gen != f.generation || title == "" || f.Title != "" {
		return false
	}
	f.Title = title
	return true
}

// NeedsIcon reports whether leaving the URL field should look up a site icon.
func (f Form) NeedsIcon() bool {
	return strings.TrimSpace(f.ImageURL) == "" && f.image == ""
}

// NeedsTitle reports whether leaving the URL field should look up a page title.
func (f Form) NeedsTitle() bool {
	return f.Title == ""
}

// FetchTarget returns what an explicit image fetch should download: the
// image URL when one is set, otherwise the site URL, in which case icon is
// true. ok is false when both fields are empty.
func (f Form) FetchTarget() (target string, icon bool, ok bool) {
	if u := strings.TrimSpace(f.ImageURL); u != "" {
		return u, false, true
	}
	if u := strings.TrimSpace(f.URL); u != "" {
		return u, true, true
	}
	return "", false, false
}

// Image returns the current thumbnail data URI, or "".
func (f Form) Image() string {
	return f.image
}

// Loading reports whether an image lookup is in flight.
func (f Form) Loading() bool {
	return f.loading
}

// Warned reports whether the missing-image warning is showing.
func (f Form) Warned() bool {
	return f.confirm == Warned
}

// Submit validates the form. Without a thumbnail the first call returns
// NeedsConfirmation and arms the warning; the next call proceeds.
func (f *Form) Submit() (SubmitResult, model.NewBookmarkParams, error) {
	rawURL := strings.TrimSpace(f.URL)
	if rawURL == "" {
		return Ready, model.NewBookmarkParams{}, ErrMissingURL
	}

	if f.image == "" && f.confirm == Unconfirmed {
		f.confirm = Warned
		return NeedsConfirmation, model.NewBookmarkParams{}, nil
	}

	return Ready, model.NewBookmarkParams{
		URL:   rawURL,
		Title: model.ResolveTitle(f.Title, "", rawURL),
		Image: f.image,
	}, nil
}
