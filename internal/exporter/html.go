package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/tabgrid/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/tabgrid-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("tabgrid-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders bookmarks in Netscape bookmark HTML format, in grid
// order. Thumbnails are written as ICON attributes.
func ExportHTML(bookmarks []model.Bookmark) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, bookmark := range bookmarks {
		writeBookmark(&b, bookmark)
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeBookmark(b *strings.Builder, bookmark model.Bookmark) {
	icon := ""
	if bookmark.HasImage() {
		icon = fmt.Sprintf(" ICON=\"%s\"", html.EscapeString(bookmark.Image))
	}
	fmt.Fprintf(b,
		"    <DT><A HREF=\"%s\" ADD_DATE=\"%d\"%s>%s</A>\n",
		html.EscapeString(bookmark.URL),
		bookmark.CreatedAt.Unix(),
		icon,
		html.EscapeString(bookmark.Title),
	)
}

// WriteFile exports bookmarks to path, creating parent directories.
func WriteFile(path string, bookmarks []model.Bookmark) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(ExportHTML(bookmarks)), 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
