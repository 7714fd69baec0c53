// Package auth manages the OAuth2 token used by the Gmail delivery
// provider, including disk persistence between runs.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// ErrTokenNotSet indicates no OAuth token has been obtained yet.
var ErrTokenNotSet = errors.New("no token defined")

// stateTTL bounds how long a pending authorization state is honored.
const stateTTL = 5 * time.Minute

// Token holds the OAuth2 token for Gmail sending. All methods are safe
// for concurrent use; the OAuth callback handler and the delivery path
// may touch it from different goroutines.
type Token struct {
	mu            sync.RWMutex
	cfg           *oauth2.Config
	token         *oauth2.Token
	persistPath   string
	pendingStates map[string]time.Time
}

// NewToken creates a Token manager. If persistPath names an existing
// file, the token is loaded from it; a missing file is not an error and
// will be created by Persist.
func NewToken(cfg *oauth2.Config, persistPath string) (*Token, error) {
	t := &Token{
		cfg:           cfg,
		persistPath:   persistPath,
		pendingStates: make(map[string]time.Time),
	}
	if persistPath == "" {
		return t, nil
	}

	data, err := os.ReadFile(persistPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("token file %s doesn't exist yet, will be created on persist", persistPath)
			return t, nil
		}
		return nil, fmt.Errorf("os.ReadFile failed: %w", err)
	}

	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("json.Unmarshal failed: %w", err)
	}
	t.token = token

	return t, nil
}

// RedirectURL generates the authorization URL with a fresh random
// state parameter.
func (t *Token) RedirectURL() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read failed: %w", err)
	}
	state := base64.URLEncoding.EncodeToString(b)

	t.mu.Lock()
	now := time.Now()
	t.pendingStates[state] = now.Add(stateTTL)
	for s, exp := range t.pendingStates {
		if exp.Before(now) {
			delete(t.pendingStates, s)
		}
	}
	t.mu.Unlock()

	return t.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// AuthorizeCode exchanges an authorization code for a token after
// validating the state parameter.
func (t *Token) AuthorizeCode(ctx context.Context, code, state string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	expiry, known := t.pendingStates[state]
	delete(t.pendingStates, state)
	if state == "" || !known || time.Now().After(expiry) {
		return errors.New("invalid or expired state parameter")
	}

	tok, err := t.cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("cfg.Exchange failed: %w", err)
	}
	t.token = tok

	return nil
}

// OAuthToken returns the current token, or ErrTokenNotSet.
func (t *Token) OAuthToken() (*oauth2.Token, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.token == nil {
		return nil, ErrTokenNotSet
	}

	return t.token, nil
}

// Persist writes the token to disk. A nil token or empty path is a
// no-op.
func (t *Token) Persist() error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.persistPath == "" || t.token == nil {
		return nil
	}

	data, err := json.Marshal(t.token)
	if err != nil {
		return fmt.Errorf("json.Marshal failed: %w", err)
	}

	if err := os.WriteFile(t.persistPath, data, 0600); err != nil {
		return fmt.Errorf("os.WriteFile failed: %w", err)
	}

	return nil
}
