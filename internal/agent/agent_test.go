package agent_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hal9000y/mail-agent/internal/agent"
)

// newPipeline wires a real Interpreter and Agent around a stubbed model
// and a stubbed delivery sender, mirroring the production composition.
func newPipeline(genBody string, genErr error, sendErr error) (*agent.Agent, *senderMock) {
	gen := &bodyGeneratorMock{
		GenerateBodyFunc: func(_ context.Context, _ string) (string, error) {
			return genBody, genErr
		},
	}
	sender := &senderMock{
		SendFunc: func(_ context.Context, _ *agent.EmailRequest) error {
			return sendErr
		},
	}

	return agent.New(agent.NewInterpreter(gen), sender), sender
}

func TestProcessPromptSuccess(t *testing.T) {
	a, sender := newPipeline("Hi Alice, here is the summary.", nil, nil)

	ok, msg := a.ProcessPrompt(
		context.Background(),
		"send a mail to alice@example.com subject:Meeting Notes, please summarize yesterday's call",
	)

	assert.True(t, ok)
	assert.Equal(t, "email sent successfully to alice@example.com", msg)

	require.Len(t, sender.calls, 1)
	req := sender.calls[0]
	assert.Equal(t, "alice@example.com", req.Recipient)
	assert.Equal(t, "Meeting Notes", req.Subject)
	assert.Equal(t, "Hi Alice, here is the summary.", req.Body)
	assert.Nil(t, req.TemplateID)
}

func TestProcessPromptNoRecipient(t *testing.T) {
	a, sender := newPipeline("irrelevant", nil, nil)

	ok, msg := a.ProcessPrompt(context.Background(), "please email someone about the project")

	assert.False(t, ok)
	assert.Equal(t, "could not extract email details", msg)
	assert.Empty(t, sender.calls, "no delivery call may be attempted")
}

func TestProcessPromptGenerationFails(t *testing.T) {
	a, sender := newPipeline("", errors.New("simulated empty generation"), nil)

	ok, msg := a.ProcessPrompt(
		context.Background(),
		"send a mail to alice@example.com subject:Meeting Notes, please summarize",
	)

	assert.False(t, ok)
	assert.Equal(t, "could not extract email details", msg)
	assert.Empty(t, sender.calls)
}

func TestProcessPromptDeliveryFails(t *testing.T) {
	a, sender := newPipeline("Hi Alice.", nil, errors.New("webhook returned 500"))

	ok, msg := a.ProcessPrompt(
		context.Background(),
		"send a mail to alice@example.com subject:Meeting Notes, please summarize",
	)

	assert.False(t, ok)
	assert.Equal(t, "failed to send email", msg)
	assert.Len(t, sender.calls, 1)
}

func TestProcessPromptRecoversPanic(t *testing.T) {
	interp := &interpreterMock{
		InterpretFunc: func(_ context.Context, _ string) (*agent.EmailRequest, error) {
			panic("unexpected internal failure")
		},
	}
	a := agent.New(interp, &senderMock{})

	ok, msg := a.ProcessPrompt(context.Background(), "send a mail to alice@example.com")

	assert.False(t, ok)
	assert.Equal(t, "error: unexpected internal failure", msg)
}
