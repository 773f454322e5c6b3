package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabgrid/internal/model"
	"github.com/nikbrunner/tabgrid/internal/search"
)

var errEmptyQuery = errors.New("empty search query")

func (a *app) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "Search the web in your browser",
		Long: `Opens the configured search engine (searchURL in config.json) with the
query. Bookmarks are not touched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			target := a.env.search.URL(query)
			if !a.env.search.Search(query) {
				return errEmptyQuery
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Searching: %s\n", target)
			return nil
		},
	}
}

func (a *app) openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <query...>",
		Short: "Open the bookmark whose title matches the query",
		Long: `Fuzzy-matches bookmark titles. A single match opens directly, several
matches open a picker.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.openQuery(cmd, strings.Join(args, " "))
		},
	}
}

// openQuery performs a fuzzy search and opens the selected bookmark.
func (a *app) openQuery(cmd *cobra.Command, query string) error {
	out := cmd.OutOrStdout()
	results := search.FuzzySearchBookmarks(a.env.session.Bookmarks(), query)

	if len(results) == 0 {
		fmt.Fprintf(out, "No bookmarks found for '%s'\n", query)
		return nil
	}

	var selected *model.Bookmark
	if len(results) == 1 {
		selected = results[0].Bookmark
	} else {
		var err error
		selected, err = a.opts.Pick(results, query)
		if err != nil {
			return fmt.Errorf("picker: %w", err)
		}
	}
	if selected == nil {
		return nil
	}

	fmt.Fprintf(out, "Opening: %s\n", selected.Title)
	a.env.log.Debug().Str("url", selected.URL).Msg("opening bookmark")
	if err := a.opts.Open(selected.URL); err != nil {
		return fmt.Errorf("open %s: %w", selected.URL, err)
	}
	return nil
}
