package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabgrid/internal/exporter"
	"github.com/nikbrunner/tabgrid/internal/importer"
)

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import bookmarks from a browser HTML export",
		Long: `Reads a Netscape bookmark file as written by every major browser.
Folders are flattened, inline ICON images become thumbnails, and URLs that
are already bookmarked are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			bookmarks, err := importer.ParseHTMLBookmarks(f)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			added, skipped, err := a.env.session.Import(bookmarks)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bookmarks (%d duplicates skipped)\n", added, skipped)
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export bookmarks to a browser-compatible HTML file",
		Long:  `Writes a Netscape bookmark file. The default path is ~/Downloads/tabgrid-export-YYYY-MM-DD.html.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				var err error
				if path, err = exporter.DefaultExportPath(); err != nil {
					return err
				}
			}

			bookmarks := a.env.session.Snapshot().Bookmarks
			if err := exporter.WriteFile(path, bookmarks); err != nil {
				return fmt.Errorf("export %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarks to %s\n", len(bookmarks), path)
			return nil
		},
	}
}
