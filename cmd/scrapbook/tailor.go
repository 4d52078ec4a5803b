package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mkrawiec/scrapbook"
	"github.com/mkrawiec/scrapbook/gemini"
)

// Run executes the tailor command.
func (c *TailorCmd) Run(deps *Dependencies) error {
	if c.Profile == "" {
		fmt.Fprintf(deps.Stderr, "error: --profile is required\n")
		return scrapbook.Errorf(scrapbook.EINVALID, "--profile is required")
	}

	data, err := os.ReadFile(c.Profile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot read profile file %q: %v\n", c.Profile, err)
		return scrapbook.Errorf(scrapbook.EINVALID, "cannot read profile file %q: %s", c.Profile, err)
	}
	profile := strings.TrimSpace(string(data))
	if profile == "" {
		fmt.Fprintf(deps.Stderr, "error: profile file %q is empty\n", c.Profile)
		return scrapbook.Errorf(scrapbook.EINVALID, "profile file %q is empty", c.Profile)
	}

	job, err := deps.Jobs.FindJobByID(deps.Ctx, c.ID)
	if err != nil {
		if scrapbook.ErrorCode(err) == scrapbook.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: posting %q not found. Use 'scrapbook list' to see stored postings.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
		}
		return err
	}

	prompt := gemini.BuildTailorPrompt(profile, job)
	return runPrompt(deps, prompt, c.DryRun)
}
