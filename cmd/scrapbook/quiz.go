package main

import (
	"fmt"

	"github.com/mkrawiec/scrapbook"
	"github.com/mkrawiec/scrapbook/crawl"
	"github.com/mkrawiec/scrapbook/gemini"
)

// Run executes the quiz command.
func (c *QuizCmd) Run(deps *Dependencies) error {
	book, err := findBook(deps, c.ID)
	if err != nil {
		return err
	}

	units := scrapbook.BuildLearningUnits(book)
	if len(units) == 0 {
		fmt.Fprintf(deps.Stderr, "error: book %q has no usable articles\n", book.Title)
		return scrapbook.Errorf(scrapbook.EINVALID, "book %q has no usable articles", book.Title)
	}

	prompt := gemini.BuildQuizPrompt(book.Title, units)
	return runPrompt(deps, prompt, c.DryRun)
}

// runPrompt reports the prompt size, then either prints the prompt
// (dry run) or sends it and prints the answer.
func runPrompt(deps *Dependencies, prompt string, dryRun bool) error {
	if deps.Tokens != nil {
		if n, err := deps.Tokens.CountTokens(deps.Ctx, prompt); err == nil {
			fmt.Fprintf(deps.Stdout, "Prompt: %s, %s\n", crawl.FormatBytes(len(prompt)), crawl.FormatTokens(n))
		}
	}

	if dryRun {
		fmt.Fprintln(deps.Stdout, prompt)
		return nil
	}

	answer, err := deps.Asker.Ask(deps.Ctx, prompt)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
