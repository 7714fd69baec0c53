package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type processorMock struct {
	ProcessPromptFunc func(ctx context.Context, prompt string) (bool, string)
	prompts           []string
}

func (m *processorMock) ProcessPrompt(ctx context.Context, prompt string) (bool, string) {
	m.prompts = append(m.prompts, prompt)
	return m.ProcessPromptFunc(ctx, prompt)
}

func TestRunPromptProcessesUtterances(t *testing.T) {
	proc := &processorMock{
		ProcessPromptFunc: func(_ context.Context, prompt string) (bool, string) {
			if strings.Contains(prompt, "@") {
				return true, "email sent successfully to alice@example.com"
			}
			return false, "could not extract email details"
		},
	}

	in := strings.NewReader(
		"send a mail to alice@example.com subject:Notes, summarize\n" +
			"please email someone\n" +
			"x\n",
	)
	var out bytes.Buffer

	require.NoError(t, runPrompt(context.Background(), in, &out, proc))

	require.Len(t, proc.prompts, 2)
	assert.Equal(t, "send a mail to alice@example.com subject:Notes, summarize", proc.prompts[0])
	assert.Equal(t, "please email someone", proc.prompts[1])

	output := out.String()
	assert.Contains(t, output, "Welcome to the Email Agent!")
	assert.Contains(t, output, "Status: Success")
	assert.Contains(t, output, "Message: email sent successfully to alice@example.com")
	assert.Contains(t, output, "Status: Failed")
	assert.Contains(t, output, "Message: could not extract email details")
	assert.Contains(t, output, "Goodbye!")
}

func TestRunPromptTerminatorStopsProcessing(t *testing.T) {
	proc := &processorMock{
		ProcessPromptFunc: func(_ context.Context, _ string) (bool, string) {
			return true, "irrelevant"
		},
	}

	// Nothing after the terminator may be processed, whatever its case.
	in := strings.NewReader("X\nsend a mail to alice@example.com\n")
	var out bytes.Buffer

	require.NoError(t, runPrompt(context.Background(), in, &out, proc))

	assert.Empty(t, proc.prompts)
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRunPromptEOFEndsLoop(t *testing.T) {
	proc := &processorMock{
		ProcessPromptFunc: func(_ context.Context, _ string) (bool, string) {
			return false, "could not extract email details"
		},
	}

	in := strings.NewReader("no address here\n")
	var out bytes.Buffer

	require.NoError(t, runPrompt(context.Background(), in, &out, proc))
	assert.Len(t, proc.prompts, 1)
}
