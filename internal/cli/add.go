package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabgrid/internal/compose"
)

// ErrNoImage is returned by add when no thumbnail could be produced and
// --no-image was not given.
var ErrNoImage = errors.New("no image found")

func (a *app) addCmd() *cobra.Command {
	var (
		title    string
		imageURL string
		noImage  bool
	)

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Add a bookmark",
		Long: `Adds a bookmark to the end of the grid.

> NOTICE: This command calls out to the network for the page title and a
> thumbnail: the --image URL if given, otherwise the site icon.

Without a thumbnail the bookmark is only saved when --no-image is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e := a.env

			var form compose.Form
			gen := form.Open()
			form.URL = strings.TrimSpace(args[0])
			form.Title = strings.TrimSpace(title)
			form.ImageURL = strings.TrimSpace(imageURL)
			if form.URL == "" {
				return compose.ErrMissingURL
			}

			if form.NeedsTitle() {
				form.ApplyTitle(gen, e.images.PageTitle(ctx, form.URL))
			}
			if target, icon, ok := form.FetchTarget(); ok {
				gen = form.BeginFetch()
				if icon {
					form.ApplyImage(gen, e.images.SiteIcon(ctx, target))
				} else {
					form.ApplyImage(gen, e.images.FetchImage(ctx, target))
				}
			}

			res, params, err := form.Submit()
			if err != nil {
				return err
			}
			if res == compose.NeedsConfirmation {
				if !noImage {
					return fmt.Errorf("%w for %s (use --no-image to save with a placeholder)", ErrNoImage, form.URL)
				}
				// The second submit confirms
				_, params, _ = form.Submit()
			}

			b, err := e.session.Add(params)
			if err != nil {
				return err
			}

			thumb := "placeholder " + b.Placeholder()
			if b.HasImage() {
				thumb = "thumbnail"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s (%s)\n", e.session.Len(), b.Title, thumb)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "title (default: the page title, then the hostname)")
	cmd.Flags().StringVarP(&imageURL, "image", "i", "", "image URL for the thumbnail (default: the site icon)")
	cmd.Flags().BoolVar(&noImage, "no-image", false, "save even when no thumbnail could be fetched")
	return cmd
}
