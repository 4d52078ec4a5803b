package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mkrawiec/scrapbook"
)

// BuildQuizPrompt builds a quiz-generation prompt from a book's
// learning units. Each unit is wrapped in tags so the model can cite
// the unit it drew a question from.
func BuildQuizPrompt(bookTitle string, units []*scrapbook.LearningUnit) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<book title=%q>\n", bookTitle)
	for i, unit := range units {
		sb.WriteString("<unit>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<chapter>%s</chapter>\n", unit.Chapter)
		fmt.Fprintf(&sb, "<title>%s</title>\n", unit.Title)
		fmt.Fprintf(&sb, "<content>%s</content>\n", unit.Content)
		sb.WriteString("</unit>\n")
	}
	sb.WriteString("</book>\n\n")
	sb.WriteString("Write a quiz covering the material above: three questions per unit, mixing factual recall with application. After each question give the answer and name the unit it came from.")
	return sb.String()
}

// BuildTailorPrompt builds an application-letter prompt from a stored
// posting and the applicant's profile text. Unresolved posting fields
// render as "N/A"; list fields render as indented JSON.
func BuildTailorPrompt(profile string, job *scrapbook.JobPosting) string {
	var sb strings.Builder
	sb.WriteString("You are an expert career writer. Write an application letter tailored to the job below.\n\n")
	sb.WriteString("My profile:\n")
	sb.WriteString(profile)
	sb.WriteString("\n\nJob:\n")
	fmt.Fprintf(&sb, "- Title: %s\n", orNA(job.Title))
	fmt.Fprintf(&sb, "- Company: %s\n", orNA(job.Company))
	fmt.Fprintf(&sb, "- Location: %s\n", orNA(job.Location))
	fmt.Fprintf(&sb, "- Requirements: %s\n", jsonList(job.Requirements))
	fmt.Fprintf(&sb, "- Skills: %s\n", jsonList(job.Skills))
	fmt.Fprintf(&sb, "- Responsibilities: %s\n", jsonList(job.Responsibilities))
	fmt.Fprintf(&sb, "- Description: %s\n", jobDescription(job))
	sb.WriteString("\nWrite two short paragraphs: why I fit the role, and why the company interests me. Use only facts from my profile.")
	return sb.String()
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func jsonList(items []string) string {
	if items == nil {
		return "N/A"
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "N/A"
	}
	return string(b)
}

// jobDescription prefers the structured description, falling back to
// the page text truncated to keep the prompt bounded.
func jobDescription(job *scrapbook.JobPosting) string {
	if job.Description != nil {
		return scrapbook.RenderBlocks(job.Description.Blocks)
	}
	const maxRawText = 500
	text := job.RawText
	if len(text) > maxRawText {
		text = text[:maxRawText]
	}
	if text == "" {
		return "N/A"
	}
	return text
}
