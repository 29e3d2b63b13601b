package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/tsawler/papyrus/model"
)

const extractPagePrompt = `Extract all text from this page of a research paper.
Preserve the reading order. Write any mathematical notation using LaTeX
delimiters: inline math as $...$ and display math as $$...$$.
Separate paragraphs with blank lines. Output only the extracted text,
with no commentary.`

const validateSectionsPrompt = `These images are the pages of a research paper
in order. List the section titles that appear in the paper, in reading
order, without their numbering. Include "Abstract" if the paper has one.
Respond with a JSON array of strings and nothing else, for example:
["Abstract", "Introduction", "Method", "Results", "References"]`

const extractReferencesPrompt = `Parse the following reference list from a
research paper into structured records. Respond with a JSON array of
objects and nothing else. Each object may contain: "raw_text", "authors"
(array of strings), "title", "year" (integer), "venue", "doi", "url",
"arxiv_id", "volume", "pages". Omit fields you cannot determine.

Reference list:
%s`

// ExtractPageText sends one rasterized page to the vision model and
// returns its text with LaTeX math delimiters.
func (c *Client) ExtractPageText(ctx context.Context, imagePath string) (string, error) {
	image, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read page image: %w", err)
	}
	text, err := c.generate(ctx, extractPagePrompt, image)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ValidateSections shows the model every rasterized page at once and
// asks for the paper's section titles in order. The response is parsed
// tolerantly: a clean JSON array, or the first bracketed span inside
// surrounding prose.
func (c *Client) ValidateSections(ctx context.Context, imagePaths []string) ([]string, error) {
	var parts []llms.ContentPart
	for _, path := range imagePaths {
		image, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read page image: %w", err)
		}
		if c.provider == "openai" {
			parts = append(parts, llms.ImageURLPart("data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(image)))
		} else {
			parts = append(parts, llms.BinaryPart("image/jpeg", image))
		}
	}
	parts = append(parts, llms.TextPart(validateSectionsPrompt))

	completion, err := c.model.GenerateContent(ctx, []llms.MessageContent{
		{Role: schema.ChatMessageTypeHuman, Parts: parts},
	}, llms.WithTemperature(c.cfg.Temperature))
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("llm returned no choices")
	}

	var titles []string
	if err := unmarshalTolerant(completion.Choices[0].Content, &titles); err != nil {
		return nil, fmt.Errorf("failed to parse section titles: %w", err)
	}
	return titles, nil
}

// ExtractReferences hands the collected reference-list text to the model
// and parses the structured result. A malformed response is not an
// error: it degrades to an empty list so the parse can finish without
// references.
func (c *Client) ExtractReferences(ctx context.Context, referencesText string) ([]model.Reference, error) {
	response, err := c.generate(ctx, fmt.Sprintf(extractReferencesPrompt, referencesText), nil)
	if err != nil {
		return nil, err
	}

	var refs []model.Reference
	if err := unmarshalTolerant(response, &refs); err != nil {
		c.log.Warnw("reference response was not valid JSON, returning no references", "error", err)
		return nil, nil
	}
	return refs, nil
}

// unmarshalTolerant decodes a JSON array that may be wrapped in prose or
// a code fence: it first tries the raw text, then the span from the
// first '[' to the last ']'.
func unmarshalTolerant(text string, v any) error {
	text = strings.TrimSpace(text)
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return fmt.Errorf("no JSON array found in response")
	}
	return json.Unmarshal([]byte(text[start:end+1]), v)
}
