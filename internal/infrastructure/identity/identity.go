// Package identity obtains bearer tokens for the store from an identity
// service.
package identity

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ErrAuthentication is returned when no token could be obtained.
var ErrAuthentication = errors.New("authentication error")

// Scopes requested for the store: database access and user identity read.
var Scopes = []string{
	"https://www.googleapis.com/auth/firebase.database",
	"https://www.googleapis.com/auth/userinfo.email",
}

// Provider obtains a fresh token. Implementations do not retry.
type Provider interface {
	Obtain(ctx context.Context) (*oauth2.Token, error)
}

// Google obtains tokens from Application Default Credentials.
type Google struct {
	scopes []string
}

func NewGoogle() *Google {
	return &Google{scopes: Scopes}
}

func (g *Google) Obtain(ctx context.Context) (*oauth2.Token, error) {
	creds, err := google.FindDefaultCredentials(ctx, g.scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: find credentials: %v", ErrAuthentication, err)
	}

	token, err := creds.TokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: token: %v", ErrAuthentication, err)
	}

	return token, nil
}

// Static hands out a fixed token that never expires, e.g. "owner" for the
// database emulator.
type Static struct {
	source oauth2.TokenSource
}

func NewStatic(token string) *Static {
	return &Static{
		source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
	}
}

func (s *Static) Obtain(_ context.Context) (*oauth2.Token, error) {
	token, err := s.source.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty static token", ErrAuthentication)
	}
	return token, nil
}

// Func adapts a function to a Provider.
type Func func(ctx context.Context) (*oauth2.Token, error)

func (f Func) Obtain(ctx context.Context) (*oauth2.Token, error) {
	return f(ctx)
}
