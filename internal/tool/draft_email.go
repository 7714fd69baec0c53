package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/mail-agent/internal/agent"
)

// DraftEmailRequest carries one free-text email request to draft.
type DraftEmailRequest struct {
	Prompt string `json:"prompt" jsonschema:"free-text request describing the email to draft"`
}

// DraftEmailResponse contains the interpreted request without sending it.
type DraftEmailResponse struct {
	Recipient string `json:"recipient" jsonschema:"extracted recipient address"`
	Subject   string `json:"subject" jsonschema:"extracted subject line"`
	Body      string `json:"body" jsonschema:"generated email body"`
}

type emailInterpreter interface {
	Interpret(ctx context.Context, prompt string) (*agent.EmailRequest, error)
}

// NewDraftEmail creates the draft_email tool.
func NewDraftEmail(interp emailInterpreter) *DraftEmail {
	return &DraftEmail{interp: interp}
}

// DraftEmail interprets and generates without delivering.
type DraftEmail struct {
	interp emailInterpreter
}

// DraftEmail produces the EmailRequest a send_email call would deliver.
func (t *DraftEmail) DraftEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DraftEmailRequest,
) (*mcp.CallToolResult, DraftEmailResponse, error) {
	req, err := t.interp.Interpret(ctx, input.Prompt)
	if err != nil {
		return nil, DraftEmailResponse{}, fmt.Errorf("interp.Interpret failed: %w", err)
	}

	return nil, DraftEmailResponse{
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Body:      req.Body,
	}, nil
}
