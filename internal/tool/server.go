// Package tool exposes the email agent as MCP tools.
package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type agentSvc interface {
	promptProcessor
	emailInterpreter
}

// NewServer creates an MCP server with email agent tools.
func NewServer(svc agentSvc) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "mail-agent", Version: "v1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "send_email",
		Description: "Extract recipient and subject from a free-text request, generate body content, and send the email",
	}, NewSendEmail(svc).SendEmail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "draft_email",
		Description: "Extract recipient and subject and generate body content without sending, for review",
	}, NewDraftEmail(svc).DraftEmail)

	return server
}
