package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SendEmailRequest carries one free-text email request.
type SendEmailRequest struct {
	Prompt string `json:"prompt" jsonschema:"free-text request, e.g. 'send a mail to alice@example.com subject:Meeting Notes, please summarize the call'"`
}

// SendEmailResponse reports the outcome of one send attempt.
type SendEmailResponse struct {
	Success bool   `json:"success" jsonschema:"whether the email was sent"`
	Message string `json:"message" jsonschema:"human-readable outcome"`
}

type promptProcessor interface {
	ProcessPrompt(ctx context.Context, prompt string) (bool, string)
}

// NewSendEmail creates the send_email tool.
func NewSendEmail(proc promptProcessor) *SendEmail {
	return &SendEmail{proc: proc}
}

// SendEmail runs the full interpret-generate-deliver pipeline.
type SendEmail struct {
	proc promptProcessor
}

// SendEmail processes one utterance end to end. Extraction and delivery
// failures are reported in the response rather than as tool errors so
// the calling agent can react to them.
func (t *SendEmail) SendEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SendEmailRequest,
) (*mcp.CallToolResult, SendEmailResponse, error) {
	ok, msg := t.proc.ProcessPrompt(ctx, input.Prompt)

	return nil, SendEmailResponse{Success: ok, Message: msg}, nil
}
