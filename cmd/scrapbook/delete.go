package main

import (
	"fmt"

	"github.com/mkrawiec/scrapbook"
)

// Run executes the delete command. The ID may name a stored book or a
// stored posting; books are tried first.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return scrapbook.Errorf(scrapbook.EINVALID, "use --force to confirm deletion")
	}

	err := deps.Books.DeleteBook(deps.Ctx, c.ID)
	if err == nil {
		fmt.Fprintf(deps.Stdout, "Deleted book %s\n", c.ID)
		return nil
	}
	if scrapbook.ErrorCode(err) != scrapbook.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
		return err
	}

	err = deps.Jobs.DeleteJob(deps.Ctx, c.ID)
	if err == nil {
		fmt.Fprintf(deps.Stdout, "Deleted posting %s\n", c.ID)
		return nil
	}
	if scrapbook.ErrorCode(err) != scrapbook.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stderr, "error: nothing stored with ID %q. Use 'scrapbook list' to see stored entries.\n", c.ID)
	return scrapbook.Errorf(scrapbook.ENOTFOUND, "nothing stored with ID %q", c.ID)
}
