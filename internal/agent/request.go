// Package agent derives structured email requests from free-text
// utterances and orchestrates their delivery.
package agent

// EmailRequest is the structured result of interpreting one utterance.
// It is constructed once, never mutated, and discarded after the
// delivery call returns.
type EmailRequest struct {
	// Recipient is the first email address found in the utterance.
	Recipient string
	// Subject is the extracted subject line, or DefaultSubject.
	Subject string
	// Body is the generated email content. Never user-supplied verbatim.
	Body string
	// TemplateID is a routing hint for the delivery workflow. The
	// extraction path never sets it; it is passed through unchanged.
	TemplateID *string
}
