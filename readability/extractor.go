// Package readability provides a scrapbook.Distiller backed by
// go-readability, an alternative to the trafilatura implementation for
// pages where Mozilla's readability heuristics do better.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/mkrawiec/scrapbook"
)

// Ensure Distiller implements scrapbook.Distiller at compile time.
var _ scrapbook.Distiller = (*Distiller)(nil)

// Distiller wraps go-readability to pull main content out of a page.
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

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, scrapbook.Errorf(scrapbook.EPARSE, "distilling content: %s", err)
	}

	return &scrapbook.Distilled{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
