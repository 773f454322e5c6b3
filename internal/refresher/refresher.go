// Package refresher backfills thumbnails for bookmarks that have none.
package refresher

import (
	"context"
	"sync"

	"github.com/nikbrunner/tabgrid/internal/model"
)

// Status represents the outcome for a single bookmark.
type Status int

const (
	Updated   Status = iota // a thumbnail was produced
	NoImage                 // the producer returned nothing
	Cancelled               // the context ended before the bookmark finished
)

func (s Status) String() string {
	switch s {
	case Updated:
		return "updated"
	case NoImage:
		return "no image"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// DefaultConcurrency is used when a non-positive concurrency is given.
const DefaultConcurrency = 4

// Result holds the outcome for a single bookmark.
type Result struct {
	Bookmark *model.Bookmark
	Status   Status
	Image    string // data URI when Status is Updated
}

// FetchFunc produces a thumbnail for a site URL, or "" on failure.
type FetchFunc func(ctx context.Context, siteURL string) string

// ProgressFunc is called after each bookmark is processed.
// completed is the number processed so far, total is the total count.
type ProgressFunc func(completed, total int)

// Pending returns the bookmarks that have no thumbnail yet.
func Pending(bookmarks []model.Bookmark) []model.Bookmark {
	var out []model.Bookmark
	for _, b := range bookmarks {
		if !b.HasImage() {
			out = append(out, b)
		}
	}
	return out
}

// Refresh runs fetch for every bookmark on a bounded pool of workers.
// Results are returned in input order; applying them is up to the caller.
func Refresh(ctx context.Context, bookmarks []model.Bookmark, fetch FetchFunc, concurrency int, onProgress ProgressFunc) []Result {
	if len(bookmarks) == 0 {
		return nil
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]Result, len(bookmarks))
	jobs := make(chan int, len(bookmarks))
	var wg sync.WaitGroup

	// Progress tracking
	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = refreshOne(ctx, &bookmarks[idx], fetch)

				if onProgress != nil {
					progressMu.Lock()
					completed++
					onProgress(completed, len(bookmarks))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range bookmarks {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

func refreshOne(ctx context.Context, bookmark *model.Bookmark, fetch FetchFunc) Result {
	result := Result{Bookmark: bookmark}

	if ctx.Err() != nil {
		result.Status = Cancelled
		return result
	}

	img := fetch(ctx, bookmark.URL)
	if img == "" {
		// An empty result after cancellation says nothing about the site
		if ctx.Err() != nil {
			result.Status = Cancelled
		} else {
			result.Status = NoImage
		}
		return result
	}

	result.Status = Updated
	result.Image = img
	return result
}
