package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabgrid/internal/model"
)

var (
	ErrAborted    = errors.New("aborted")
	ErrInvalidRef = errors.New("invalid bookmark reference")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	tableBorder = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"})
)

const titleMaxLength = 40

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List bookmarks in grid order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bookmarks := a.env.session.Bookmarks()
			if len(bookmarks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No bookmarks yet.")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(tableBorder).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return lipgloss.NewStyle()
				}).
				Headers("#", "Title", "URL", "Thumb", "ID")

			for i, b := range bookmarks {
				thumb := b.Placeholder()
				if b.HasImage() {
					thumb = "img"
				}
				t.Row(strconv.Itoa(i+1), truncate(b.Title, titleMaxLength), b.URL, thumb, b.ID)
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			fmt.Fprintf(cmd.OutOrStdout(), "%d bookmarks, %d columns\n", len(bookmarks), a.env.session.Settings().Columns)
			return nil
		},
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// resolveRef finds a bookmark by ID or by 1-based position written "#N".
func (a *app) resolveRef(ref string) (model.Bookmark, error) {
	if rest, ok := strings.CutPrefix(ref, "#"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return model.Bookmark{}, fmt.Errorf("%w: %q", ErrInvalidRef, ref)
		}
		bookmarks := a.env.session.Bookmarks()
		if n < 1 || n > len(bookmarks) {
			return model.Bookmark{}, fmt.Errorf("%w: #%d of %d", model.ErrIndexOutOfRange, n, len(bookmarks))
		}
		return bookmarks[n-1], nil
	}

	b, ok := a.env.session.Bookmark(ref)
	if !ok {
		return model.Bookmark{}, fmt.Errorf("%w: %s", model.ErrBookmarkNotFound, ref)
	}
	return b, nil
}

func (a *app) removeCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id|#index>",
		Aliases: []string{"delete"},
		Short:   "Delete a bookmark",
		Long: `Deletes a bookmark by ID or by its position in the grid (as shown by ls).

Example:
tabgrid rm '#3'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.resolveRef(args[0])
			if err != nil {
				return err
			}

			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete %q (%s)? [y/N] ", b.Title, b.URL)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(answer)) {
				case "y", "yes":
				default:
					return ErrAborted
				}
			}

			removed, err := a.env.session.Delete(b.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", removed.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *app) columnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns [n]",
		Short: "Show or set the number of grid columns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), a.env.session.Settings().Columns)
				return nil
			}

			n, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", model.ErrColumnsOutOfRange, args[0])
			}
			err = a.env.session.UpdateSettings(n)
			if errors.Is(err, model.ErrColumnsOutOfRange) {
				return fmt.Errorf("columns must be %d-%d: %w", model.MinColumns, model.MaxColumns, err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Columns set to %d\n", n)
			return nil
		},
	}
}
