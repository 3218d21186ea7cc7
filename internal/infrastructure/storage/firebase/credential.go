package firebase

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/exp/slog"
	"golang.org/x/oauth2"

	"reminders/internal/infrastructure/identity"
)

// expiryDelta renews tokens slightly before they expire, matching
// oauth2.Token.Valid.
const expiryDelta = 10 * time.Second

// Credential is the bearer token used against the store. It is obtained on
// first use and renewed lazily once expired.
type Credential struct {
	provider identity.Provider
	clock    clockwork.Clock
	log      *slog.Logger

	mu    sync.Mutex // guards token
	token *oauth2.Token
}

func NewCredential(provider identity.Provider, clock clockwork.Clock, log *slog.Logger) *Credential {
	return &Credential{
		provider: provider,
		clock:    clock,
		log:      log.With("component", "store_credential"),
	}
}

// AccessToken returns a token that is not past its expiry, renewing it first
// if needed. On renewal failure the stale token is kept so a later call can
// retry, and ErrAuthentication is returned.
func (c *Credential) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.expired() {
		return c.token.AccessToken, nil
	}

	token, err := c.provider.Obtain(ctx)
	if err != nil {
		c.log.Error("failed to renew store credential", "error", err)
		return "", ErrAuthentication
	}
	if token == nil || token.AccessToken == "" {
		c.log.Error("identity service returned an empty token")
		return "", ErrAuthentication
	}

	c.token = token
	c.log.Debug("store credential renewed", "expiry", token.Expiry)

	return c.token.AccessToken, nil
}

// Expired reports whether the next call will renew the token.
func (c *Credential) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expired()
}

func (c *Credential) expired() bool {
	if c.token == nil {
		return true
	}
	if c.token.Expiry.IsZero() {
		return false
	}
	return !c.clock.Now().Before(c.token.Expiry.Add(-expiryDelta))
}
