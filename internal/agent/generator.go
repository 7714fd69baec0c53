package agent

import (
	"context"
	"fmt"
	"log"

	"github.com/hal9000y/mail-agent/internal/format"
)

// bodyPromptTemplate wraps the user's request with the instructions the
// model needs to produce usable email prose.
const bodyPromptTemplate = `Please generate professional email content based on the following request:
%s

Requirements:
- Keep the tone professional and engaging
- Structure the content with clear paragraphs
- Include relevant details and context
- End with a clear call to action or conclusion`

type textGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ContentGenerator turns a raw instruction into polished email body
// prose via a generative model.
type ContentGenerator struct {
	llm textGenerator
}

// NewContentGenerator creates a ContentGenerator backed by llm.
func NewContentGenerator(llm textGenerator) *ContentGenerator {
	return &ContentGenerator{llm: llm}
}

// GenerateBody produces email body text for the given request. A single
// best-effort model call is made; any provider failure or empty result
// is logged and returned as an error, never propagated as a panic.
func (g *ContentGenerator) GenerateBody(ctx context.Context, prompt string) (string, error) {
	out, err := g.llm.Generate(ctx, fmt.Sprintf(bodyPromptTemplate, prompt))
	if err != nil {
		err = fmt.Errorf("llm.Generate failed: %w", err)
		log.Println(err)
		return "", err
	}

	body := format.CleanBody(out)
	if body == "" {
		err := fmt.Errorf("model returned no usable content")
		log.Println(err)
		return "", err
	}

	return body, nil
}
