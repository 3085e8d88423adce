// Package auth supplies authenticated HTTP clients for the YouTube APIs
// from stored authorized-user credentials. There is no interactive flow
// here; obtaining the initial grant is the operator's problem, and this
// package only turns a stored token into a refreshing client.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ErrNoCredentials signals that no usable credentials are available. The
// API surfaces this as an unauthenticated response, never as a failure.
var ErrNoCredentials = errors.New("no valid credentials available")

// Scopes requested when the stored grant was issued.
var Scopes = []string{
	"https://www.googleapis.com/auth/youtube.readonly",
	"https://www.googleapis.com/auth/yt-analytics.readonly",
}

// CredentialProvider produces an authenticated HTTP client, or
// ErrNoCredentials. Credential lifetime is the provider's responsibility;
// callers fail their current pass if the client turns invalid mid-call.
type CredentialProvider interface {
	Client(ctx context.Context) (*http.Client, error)
}

// TokenProvider loads an authorized-user token from an environment variable
// or a token file, in that order, and exchanges it for a self-refreshing
// client.
type TokenProvider struct {
	envVar    string
	tokenFile string
}

// NewTokenProvider returns a provider that checks the named env var first
// and falls back to reading the token file.
func NewTokenProvider(envVar, tokenFile string) *TokenProvider {
	return &TokenProvider{envVar: envVar, tokenFile: tokenFile}
}

// authorizedUser is the stored-grant JSON layout shared by Google client
// libraries ("authorized_user" credential files).
type authorizedUser struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
	Type         string `json:"type"`
}

// Client builds an *http.Client whose token source refreshes itself from
// the stored refresh token.
func (p *TokenProvider) Client(ctx context.Context) (*http.Client, error) {
	raw, err := p.load()
	if err != nil {
		return nil, err
	}

	var user authorizedUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCredentials, err)
	}
	if user.ClientID == "" || user.ClientSecret == "" || user.RefreshToken == "" {
		return nil, ErrNoCredentials
	}

	cfg := &oauth2.Config{
		ClientID:     user.ClientID,
		ClientSecret: user.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}
	token := &oauth2.Token{RefreshToken: user.RefreshToken}

	return cfg.Client(ctx, token), nil
}

func (p *TokenProvider) load() ([]byte, error) {
	if p.envVar != "" {
		if v := os.Getenv(p.envVar); v != "" {
			return []byte(v), nil
		}
	}
	if p.tokenFile != "" {
		data, err := os.ReadFile(p.tokenFile)
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %v", ErrNoCredentials, err)
		}
	}
	return nil, ErrNoCredentials
}
