package mock

import "github.com/mkrawiec/scrapbook"

var _ scrapbook.Converter = (*Converter)(nil)

// Converter is a mock implementation of scrapbook.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
