package tool_test

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/hal9000y/mail-agent/internal/agent"
	"github.com/hal9000y/mail-agent/internal/tool"
)

type agentSvcMock struct {
	ProcessPromptFunc func(ctx context.Context, prompt string) (bool, string)
	InterpretFunc     func(ctx context.Context, prompt string) (*agent.EmailRequest, error)
}

func (m *agentSvcMock) ProcessPrompt(ctx context.Context, prompt string) (bool, string) {
	return m.ProcessPromptFunc(ctx, prompt)
}

func (m *agentSvcMock) Interpret(ctx context.Context, prompt string) (*agent.EmailRequest, error) {
	return m.InterpretFunc(ctx, prompt)
}

type mcpSession struct {
	client *mcp.ClientSession
	server *mcp.ServerSession
}

func (s *mcpSession) Close() {
	_ = s.client.Close()
	_ = s.server.Close()
}

func newMCPSession(t *testing.T, svc *agentSvcMock) *mcpSession {
	t.Helper()

	server := tool.NewServer(svc)
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	ctx := context.Background()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	return &mcpSession{client: clientSession, server: serverSession}
}
