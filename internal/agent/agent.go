package agent

import (
	"context"
	"fmt"
	"log"
)

type promptInterpreter interface {
	Interpret(ctx context.Context, prompt string) (*EmailRequest, error)
}

type deliverySender interface {
	Send(ctx context.Context, req *EmailRequest) error
}

// Agent sequences interpretation and delivery for one utterance.
type Agent struct {
	interp promptInterpreter
	sender deliverySender
}

// New creates an Agent from an interpreter and a delivery sender.
func New(interp promptInterpreter, sender deliverySender) *Agent {
	return &Agent{interp: interp, sender: sender}
}

// ProcessPrompt handles one utterance end to end and reports a
// human-readable outcome. It never panics: any unexpected failure below
// this boundary is recovered, logged, and reported as a generic error
// message so the calling loop can continue.
func (a *Agent) ProcessPrompt(ctx context.Context, prompt string) (ok bool, msg string) {
	defer func() {
		if r := recover(); r != nil {
			log.Println(fmt.Errorf("processing prompt panicked: %v", r))
			ok = false
			msg = fmt.Sprintf("error: %v", r)
		}
	}()

	req, err := a.interp.Interpret(ctx, prompt)
	if err != nil {
		log.Println(fmt.Errorf("interp.Interpret failed: %w", err))
		return false, "could not extract email details"
	}

	if err := a.sender.Send(ctx, req); err != nil {
		log.Println(fmt.Errorf("sender.Send failed: %w", err))
		return false, "failed to send email"
	}

	log.Printf("email sent successfully to %s", req.Recipient)

	return true, fmt.Sprintf("email sent successfully to %s", req.Recipient)
}
