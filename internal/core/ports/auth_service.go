package ports

import (
	"context"
	"time"

	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
)

// SignupInput carries the fields required to register a local account.
type SignupInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

// GoogleProfile is the subset of a verified Google ID token the auth service
// needs to mint a local credential.
type GoogleProfile struct {
	Subject      string // stable Google account id ("sub")
	GivenName    string
	FamilyName   string
	Email        string
	HostedDomain string // G Suite domain ("hd"), empty for consumer accounts
}

// GoogleVerifier abstracts the OAuth code exchange and ID-token verification
// so the auth service can be tested without Google.
type GoogleVerifier interface {
	// AuthCodeURL returns the consent-screen URL to redirect the user to.
	AuthCodeURL(state string) string
	// Exchange trades an authorization code for a verified profile.
	Exchange(ctx context.Context, code string) (*GoogleProfile, error)
}

// TokenRevoker records tokens that must no longer be accepted.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// AuthService implements signup, login, Google OAuth, and logout.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	// Login returns a signed token and the authenticated user. Any mismatch,
	// unknown username included, yields domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// GoogleAuthURL returns the Google consent URL for the redirect handler.
	GoogleAuthURL(state string) string
	// GoogleLogin completes the OAuth callback: exchanges the code, verifies
	// the ID token, and mints a local token for the Google identity.
	GoogleLogin(ctx context.Context, code string) (string, error)
	// Logout revokes the given token until its natural expiry.
	Logout(ctx context.Context, token string) error
}
