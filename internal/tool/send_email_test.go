package tool_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hal9000y/mail-agent/internal/agent"
	"github.com/hal9000y/mail-agent/internal/tool"
)

func TestSendEmail(t *testing.T) {
	cases := []struct {
		name     string
		req      tool.SendEmailRequest
		expected tool.SendEmailResponse
	}{
		{
			name: "successful send",
			req:  tool.SendEmailRequest{Prompt: "send a mail to alice@example.com subject:Notes, summarize"},
			expected: tool.SendEmailResponse{
				Success: true,
				Message: "email sent successfully to alice@example.com",
			},
		},
		{
			name: "extraction failure",
			req:  tool.SendEmailRequest{Prompt: "please email someone"},
			expected: tool.SendEmailResponse{
				Success: false,
				Message: "could not extract email details",
			},
		},
	}

	svc := &agentSvcMock{
		ProcessPromptFunc: func(_ context.Context, prompt string) (bool, string) {
			if prompt == "please email someone" {
				return false, "could not extract email details"
			}
			return true, "email sent successfully to alice@example.com"
		},
		InterpretFunc: func(_ context.Context, _ string) (*agent.EmailRequest, error) {
			t.Error("Interpret must not be called by send_email")
			return nil, nil
		},
	}

	session := newMCPSession(t, svc)
	defer session.Close()

	ctx := context.Background()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := session.client.CallTool(ctx, &mcp.CallToolParams{
				Name:      "send_email",
				Arguments: tc.req,
			})
			require.NoError(t, err)
			require.NotNil(t, result)
			require.NotEmpty(t, result.Content)
			require.False(t, result.IsError)

			var response tool.SendEmailResponse
			require.NoError(
				t,
				json.Unmarshal(
					[]byte(result.Content[0].(*mcp.TextContent).Text),
					&response,
				),
			)
			assert.Equal(t, tc.expected, response)
		})
	}
}
