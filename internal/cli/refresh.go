package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabgrid/internal/model"
	"github.com/nikbrunner/tabgrid/internal/refresher"
)

func (a *app) refreshCmd() *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "refresh-icons",
		Short: "Fetch site icons for bookmarks without a thumbnail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			pending := refresher.Pending(a.env.session.Bookmarks())
			if len(pending) == 0 {
				fmt.Fprintln(out, "Every bookmark already has a thumbnail.")
				return nil
			}

			if concurrency <= 0 {
				concurrency = a.env.cfg.RefreshConcurrency
			}

			progress := cmd.ErrOrStderr()
			results := refresher.Refresh(cmd.Context(), pending, a.env.images.SiteIcon, concurrency, func(done, total int) {
				fmt.Fprintf(progress, "\rFetching icons: %d/%d", done, total)
			})
			fmt.Fprintln(progress)

			// Results are applied one by one; each SetImage persists
			var updated, missing, cancelled int
			var saveErr error
			for _, r := range results {
				switch r.Status {
				case refresher.Updated:
					err := a.env.session.SetImage(r.Bookmark.ID, r.Image)
					if errors.Is(err, model.ErrBookmarkNotFound) {
						continue
					}
					if err != nil {
						saveErr = err
					}
					updated++
				case refresher.NoImage:
					missing++
					fmt.Fprintf(out, "  no icon: %s\n", r.Bookmark.URL)
				case refresher.Cancelled:
					cancelled++
				}
			}

			fmt.Fprintf(out, "Updated %d of %d bookmarks", updated, len(pending))
			if missing > 0 {
				fmt.Fprintf(out, ", %d without an icon", missing)
			}
			if cancelled > 0 {
				fmt.Fprintf(out, " (%d cancelled)", cancelled)
			}
			fmt.Fprintln(out)

			if saveErr != nil {
				return saveErr
			}
			return cmd.Context().Err()
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "parallel fetches (default from config)")
	return cmd
}
