package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
)

// DefaultSubject is used when the utterance carries no subject marker.
const DefaultSubject = "No Subject"

// ErrNoRecipient indicates the utterance contains no email address.
var ErrNoRecipient = errors.New("no email address found in prompt")

// ErrNoContent indicates body generation produced no usable text.
var ErrNoContent = errors.New("content generation failed")

var (
	emailRe = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

	// The subject runs from the marker to the next comma. A subject at
	// the very end of the utterance with no trailing comma never
	// matches and the default applies.
	subjectRe = regexp.MustCompile(`(?i)subject:([^,]+),`)
)

type bodyGenerator interface {
	GenerateBody(ctx context.Context, prompt string) (string, error)
}

// Interpreter derives a well-formed EmailRequest from one utterance.
type Interpreter struct {
	gen bodyGenerator
}

// NewInterpreter creates an Interpreter using gen for body content.
func NewInterpreter(gen bodyGenerator) *Interpreter {
	return &Interpreter{gen: gen}
}

// Interpret extracts recipient and subject from prompt and generates
// the body. The first email address and the first subject marker win
// when several are present. The entire original prompt is handed to the
// generator; the model extracts relevant intent itself rather than
// relying on strict field delimiters. On any failure no partial
// EmailRequest is returned.
func (i *Interpreter) Interpret(ctx context.Context, prompt string) (*EmailRequest, error) {
	recipient := emailRe.FindString(prompt)
	if recipient == "" {
		log.Println("no email address found in prompt")
		return nil, ErrNoRecipient
	}

	subject := DefaultSubject
	if m := subjectRe.FindStringSubmatch(prompt); m != nil {
		subject = strings.TrimSpace(m[1])
	}

	body, err := i.gen.GenerateBody(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoContent, err)
	}

	return &EmailRequest{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	}, nil
}
