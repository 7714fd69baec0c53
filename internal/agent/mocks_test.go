package agent_test

import (
	"context"

	"github.com/hal9000y/mail-agent/internal/agent"
)

type textGeneratorMock struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *textGeneratorMock) Generate(ctx context.Context, prompt string) (string, error) {
	return m.GenerateFunc(ctx, prompt)
}

type bodyGeneratorMock struct {
	GenerateBodyFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *bodyGeneratorMock) GenerateBody(ctx context.Context, prompt string) (string, error) {
	return m.GenerateBodyFunc(ctx, prompt)
}

type interpreterMock struct {
	InterpretFunc func(ctx context.Context, prompt string) (*agent.EmailRequest, error)
}

func (m *interpreterMock) Interpret(ctx context.Context, prompt string) (*agent.EmailRequest, error) {
	return m.InterpretFunc(ctx, prompt)
}

type senderMock struct {
	SendFunc func(ctx context.Context, req *agent.EmailRequest) error
	calls    []*agent.EmailRequest
}

func (m *senderMock) Send(ctx context.Context, req *agent.EmailRequest) error {
	m.calls = append(m.calls, req)
	if m.SendFunc == nil {
		return nil
	}
	return m.SendFunc(ctx, req)
}
