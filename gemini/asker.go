package gemini

import (
	"context"

	"github.com/mkrawiec/scrapbook"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Asker implements scrapbook.Asker at compile time.
var _ scrapbook.Asker = (*Asker)(nil)

// Asker implements scrapbook.Asker using Google Gemini. Prompts are
// built by the callers from scraped material; see prompts.go.
type Asker struct {
	client *genai.Client
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client) *Asker {
	return &Asker{client: client}
}

// Ask sends a generation prompt and returns the response text.
func (a *Asker) Ask(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", scrapbook.Errorf(scrapbook.EINVALID, "prompt required")
	}

	config := BuildConfig()

	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", scrapbook.Errorf(scrapbook.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant working with scraped web content: study material extracted from online books, and job postings. Base your answers only on the material provided in the prompt.",
			}},
		},
		Temperature: &temp,
	}
}
