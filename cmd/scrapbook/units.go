package main

import (
	"fmt"

	"github.com/mkrawiec/scrapbook"
)

// Run executes the units command.
func (c *UnitsCmd) Run(deps *Dependencies) error {
	book, err := findBook(deps, c.ID)
	if err != nil {
		return err
	}

	path, n, err := deps.Exporter.ExportUnits(deps.outDir(c.Out), book)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s (%d units)\n", path, n)
	return nil
}

// findBook loads a stored book by ID, printing the not-found hint on a
// miss.
func findBook(deps *Dependencies, id string) (*scrapbook.Book, error) {
	book, err := deps.Books.FindBookByID(deps.Ctx, id)
	if err != nil {
		if scrapbook.ErrorCode(err) == scrapbook.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: book %q not found. Use 'scrapbook list' to see stored books.\n", id)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
		}
		return nil, err
	}
	return book, nil
}
