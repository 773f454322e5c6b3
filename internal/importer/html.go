package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/tabgrid/internal/model"
	"golang.org/x/net/html"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML into a flat list in
// document order. Folders are flattened; an ICON data URI becomes the
// bookmark's thumbnail.
func ParseHTMLBookmarks(r io.Reader) ([]model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var bookmarks []model.Bookmark

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "a") {
			href := strings.TrimSpace(getAttr(n, "href"))
			if href == "" {
				// Skip bookmarks without URL
				return
			}

			// Parse ADD_DATE timestamp
			createdAt := time.Now()
			if addDate := getAttr(n, "add_date"); addDate != "" {
				if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
					createdAt = time.Unix(ts, 0)
				}
			}

			bookmarks = append(bookmarks, model.Bookmark{
				ID:        model.GenerateID(),
				URL:       href,
				Title:     model.ResolveTitle(getTextContent(n), "", href),
				Image:     iconImage(getAttr(n, "icon")),
				CreatedAt: createdAt,
			})
			return // Don't recurse into A
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return bookmarks, nil
}

// iconImage keeps inline image data and drops remote icon references.
func iconImage(icon string) string {
	if strings.HasPrefix(icon, "data:image/") {
		return icon
	}
	return ""
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
