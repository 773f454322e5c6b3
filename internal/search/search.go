package search

import (
	"github.com/nikbrunner/tabgrid/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Bookmark       *model.Bookmark
	Index          int // position in the input slice
	MatchedIndexes []int
	Score          int
}

// bookmarkTitles implements fuzzy.Source for bookmark slice.
type bookmarkTitles []model.Bookmark

func (bt bookmarkTitles) String(i int) string {
	return bt[i].Title
}

func (bt bookmarkTitles) Len() int {
	return len(bt)
}

// FuzzySearchBookmarks searches bookmarks by title using fuzzy matching.
// Returns results sorted by match score (best first). Result pointers
// refer into the given slice.
func FuzzySearchBookmarks(bookmarks []model.Bookmark, query string) []SearchResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, bookmarkTitles(bookmarks))

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Bookmark:       &bookmarks[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
