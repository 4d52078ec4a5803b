// Package trafilatura provides a scrapbook.Distiller backed by
// go-trafilatura's boilerplate-removal pipeline.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/mkrawiec/scrapbook"
	"golang.org/x/net/html"
)

// Ensure Distiller implements scrapbook.Distiller at compile time.
var _ scrapbook.Distiller = (*Distiller)(nil)

// Distiller wraps go-trafilatura to pull main content out of a page,
// dropping navigation, sidebars and footers. Article extraction falls
// back to it when the structural content-root heuristics find nothing.
type Distiller struct{}

// NewDistiller creates a new Distiller.
func NewDistiller() *Distiller {
	return &Distiller{}
}

// Distill processes raw HTML and returns the main content.
func (d *Distiller) Distill(rawHTML string) (*scrapbook.Distilled, error) {
	if rawHTML == "" {
		return nil, scrapbook.Errorf(scrapbook.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, scrapbook.Errorf(scrapbook.EPARSE, "distilling content: %s", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &scrapbook.Distilled{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
