// Package google adapts the Google OAuth2 authorization-code flow to the
// ports.GoogleVerifier interface: build the consent URL, exchange the code,
// and verify the resulting ID token.
package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/anwar-ulhaq/Library-Backend/internal/core/ports"
)

// Config captures the OAuth client settings.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Verifier implements ports.GoogleVerifier against the live Google endpoints.
type Verifier struct {
	oauth    *oauth2.Config
	clientID string
}

func NewVerifier(cfg Config) *Verifier {
	return &Verifier{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: googleoauth.Endpoint,
		},
		clientID: cfg.ClientID,
	}
}

// AuthCodeURL returns the consent-screen URL for the given CSRF state.
func (v *Verifier) AuthCodeURL(state string) string {
	return v.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades the authorization code for tokens, validates the ID token
// against this client id, and extracts the profile claims.
func (v *Verifier) Exchange(ctx context.Context, code string) (*ports.GoogleProfile, error) {
	token, err := v.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google token exchange: %w", err)
	}

	rawID, ok := token.Extra("id_token").(string)
	if !ok || rawID == "" {
		return nil, fmt.Errorf("google token exchange: no id_token in response")
	}

	payload, err := idtoken.Validate(ctx, rawID, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("google id token validation: %w", err)
	}

	return &ports.GoogleProfile{
		Subject:      payload.Subject,
		GivenName:    claimString(payload, "given_name"),
		FamilyName:   claimString(payload, "family_name"),
		Email:        claimString(payload, "email"),
		HostedDomain: claimString(payload, "hd"),
	}, nil
}

func claimString(p *idtoken.Payload, name string) string {
	s, _ := p.Claims[name].(string)
	return s
}
