package scrapbook

import "strings"

// BlockKind identifies the variant of a ContentBlock.
type BlockKind string

// Content block kinds, mirroring the structural elements recognized by
// the content structurer.
const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockList      BlockKind = "list"
	BlockCode      BlockKind = "code"
	BlockQuote     BlockKind = "quote"
	BlockTable     BlockKind = "table"
)

// ContentBlock is one typed unit of article content. Exactly one variant
// applies, selected by Kind; the other fields are zero. Blocks appear in
// source-document order and blocks whose flattened text is empty are
// never emitted.
type ContentBlock struct {
	Kind BlockKind `json:"type"`

	// Level is the heading depth (1-6). Heading blocks only.
	Level int `json:"level,omitempty"`

	// Text carries the flattened element text. For code blocks it is
	// the raw text with interior whitespace preserved; for tables it is
	// the flattened fallback text alongside RawMarkup.
	Text string `json:"text,omitempty"`

	// Ordered and Items describe list blocks. Items holds the direct
	// list items only; nested lists are not flattened into the parent.
	Ordered bool     `json:"ordered,omitempty"`
	Items   []string `json:"items,omitempty"`

	// Language is the first class token on a code block, if any.
	Language string `json:"language,omitempty"`

	// RawMarkup preserves the original table markup.
	RawMarkup string `json:"markup,omitempty"`
}

// FlatText returns the block's text contribution for word counting and
// plain rendering. List blocks contribute their items joined by spaces.
func (b ContentBlock) FlatText() string {
	if b.Kind == BlockList {
		return strings.Join(b.Items, " ")
	}
	return b.Text
}

// Document is structured article content plus a flattened raw-text
// fallback extracted from the same content root.
type Document struct {
	Blocks  []ContentBlock `json:"blocks"`
	RawText string         `json:"rawText"`
}

// Text returns the concatenated block text of the document, blocks
// joined by single spaces. This is the word-count input: it reflects the
// recognized structure rather than every text node under the content
// root.
func (d Document) Text() string {
	parts := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		if t := strings.TrimSpace(b.FlatText()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
