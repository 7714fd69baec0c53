package delivery

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/hal9000y/mail-agent/internal/agent"
	"github.com/hal9000y/mail-agent/internal/auth"
)

const gmailUserID = "me"

// Gmail delivers email requests directly through the Gmail API instead
// of the n8n webhook. Selected with DELIVERY_PROVIDER=gmail.
type Gmail struct {
	cfg  *oauth2.Config
	tok  *auth.Token
	from string
}

// NewGmail creates a Gmail delivery client sending as from.
func NewGmail(cfg *oauth2.Config, tok *auth.Token, from string) *Gmail {
	return &Gmail{cfg: cfg, tok: tok, from: from}
}

// Send composes an RFC 5322 message from req and submits it via
// users.messages.send. Like the webhook sink, it makes exactly one
// attempt and surfaces every failure as a logged error.
func (g *Gmail) Send(ctx context.Context, req *agent.EmailRequest) error {
	t, err := g.tok.OAuthToken()
	if err != nil {
		err = fmt.Errorf("tok.OAuthToken failed: %w", err)
		log.Println(err)
		return err
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(g.cfg.Client(ctx, t)))
	if err != nil {
		err = fmt.Errorf("gmail.NewService failed: %w", err)
		log.Println(err)
		return err
	}

	raw := ComposeMessage(g.from, req)
	msg := &gmail.Message{Raw: base64.RawURLEncoding.EncodeToString([]byte(raw))}

	if _, err := svc.Users.Messages.Send(gmailUserID, msg).Do(); err != nil {
		err = fmt.Errorf("messages.Send failed: %w", err)
		log.Println(err)
		return err
	}

	return nil
}

// ComposeMessage renders req as an RFC 5322 plain-text message.
func ComposeMessage(from string, req *agent.EmailRequest) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: %s\r\n", sanitizeHeaderValue(from)))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", sanitizeHeaderValue(req.Recipient)))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", sanitizeHeaderValue(req.Subject)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(req.Body)

	return msg.String()
}

// sanitizeHeaderValue strips CR/LF to prevent header injection.
func sanitizeHeaderValue(v string) string {
	v = strings.ReplaceAll(v, "\r", "")
	v = strings.ReplaceAll(v, "\n", "")
	return strings.TrimSpace(v)
}
