package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
	"github.com/anwar-ulhaq/Library-Backend/internal/core/ports"
)

const testSecret = "test-secret"

type stubUserRepo struct {
	byUsername map[string]*domain.User
	byEmail    map[string]*domain.User
	seq        int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byUsername: make(map[string]*domain.User),
		byEmail:    make(map[string]*domain.User),
	}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byUsername[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	r.seq++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("user-%d", r.seq)
	r.byUsername[clone.Username] = cloneUser(clone)
	r.byEmail[clone.Email] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type stubGoogleVerifier struct {
	profile *ports.GoogleProfile
	err     error
}

func (s *stubGoogleVerifier) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (s *stubGoogleVerifier) Exchange(_ context.Context, _ string) (*ports.GoogleProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

type stubRevoker struct {
	revoked map[string]time.Duration
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Duration)}
}

func (s *stubRevoker) Revoke(_ context.Context, token string, ttl time.Duration) error {
	s.revoked[token] = ttl
	return nil
}

func newAuthService(google ports.GoogleVerifier) (*AuthService, *stubUserRepo, *stubRevoker) {
	repo := newStubUserRepo()
	revoker := newStubRevoker()
	svc := NewAuthService(repo, google, revoker, testSecret, time.Hour, "library.example", discardLogger)
	return svc, repo, revoker
}

func validSignup() ports.SignupInput {
	return ports.SignupInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  "correct horse battery",
	}
}

func parseTestToken(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	// Tokens are minted against a frozen test clock, so skip the library's
	// wall-clock exp/iat validation; the tests assert those claims directly.
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	return claims
}

// ---------------------------------------------------------------------------
// Signup
// ---------------------------------------------------------------------------

func TestAuthService_Signup_HashesPassword(t *testing.T) {
	svc, repo, _ := newAuthService(&stubGoogleVerifier{})

	in := validSignup()
	user, err := svc.Signup(context.Background(), in)
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("local signup must yield USER role, got %s", user.Role)
	}
	if user.PasswordHash == in.Password {
		t.Fatalf("password stored in the clear")
	}

	stored := repo.byUsername[in.Username]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(in.Password)); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestAuthService_Signup_DuplicateUsername(t *testing.T) {
	svc, _, _ := newAuthService(&stubGoogleVerifier{})

	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	in := validSignup()
	in.Email = "other@example.com"
	if _, err := svc.Signup(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(&stubGoogleVerifier{})

	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	in := validSignup()
	in.Username = "other"
	if _, err := svc.Signup(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Signup_MissingFields(t *testing.T) {
	svc, _, _ := newAuthService(&stubGoogleVerifier{})

	_, err := svc.Signup(context.Background(), ports.SignupInput{Username: "ada"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 4 {
		t.Fatalf("expected 4 missing fields, got %v", ve.Fields)
	}
}

func TestAuthService_User_PasswordNeverSerialized(t *testing.T) {
	svc, _, _ := newAuthService(&stubGoogleVerifier{})

	user, err := svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	body, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	if strings.Contains(string(body), "password") || strings.Contains(string(body), user.PasswordHash) {
		t.Fatalf("serialized user leaks credentials: %s", body)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_TokenClaims(t *testing.T) {
	svc, _, _ := newAuthService(&stubGoogleVerifier{})
	issued := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	created, err := svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "ada", "correct horse battery")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("login returned wrong user: %+v", user)
	}

	claims := parseTestToken(t, token)
	if claims["id"] != created.ID {
		t.Fatalf("id claim = %v, want %s", claims["id"], created.ID)
	}
	if role := domain.Role(int(claims["role"].(float64))); role != domain.RoleUser {
		t.Fatalf("role claim = %v, want USER", claims["role"])
	}
	if iat := int64(claims["iat"].(float64)); iat != issued.Unix() {
		t.Fatalf("iat claim = %d, want %d", iat, issued.Unix())
	}
	if exp := int64(claims["exp"].(float64)); exp != issued.Add(time.Hour).Unix() {
		t.Fatalf("exp claim = %d, want %d", exp, issued.Add(time.Hour).Unix())
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthService(&stubGoogleVerifier{})

	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "ada", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	svc, _, _ := newAuthService(&stubGoogleVerifier{})

	_, _, err := svc.Login(context.Background(), "nobody", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user must look like bad credentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Google
// ---------------------------------------------------------------------------

func googleProfile(hd string) *ports.GoogleProfile {
	return &ports.GoogleProfile{
		Subject:      "google-subject-1",
		GivenName:    "Grace",
		FamilyName:   "Hopper",
		Email:        "grace@" + hd,
		HostedDomain: hd,
	}
}

func TestAuthService_GoogleLogin_AdminDomain(t *testing.T) {
	svc, _, _ := newAuthService(&stubGoogleVerifier{profile: googleProfile("library.example")})

	token, err := svc.GoogleLogin(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("GoogleLogin returned error: %v", err)
	}

	claims := parseTestToken(t, token)
	if claims["id"] != "google-subject-1" {
		t.Fatalf("id claim = %v", claims["id"])
	}
	if role := domain.Role(int(claims["role"].(float64))); role != domain.RoleAdmin {
		t.Fatalf("hosted-domain user must be ADMIN, got %v", role)
	}
}

func TestAuthService_GoogleLogin_OutsideDomain(t *testing.T) {
	svc, _, _ := newAuthService(&stubGoogleVerifier{profile: googleProfile("elsewhere.example")})

	token, err := svc.GoogleLogin(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("GoogleLogin returned error: %v", err)
	}
	claims := parseTestToken(t, token)
	if role := domain.Role(int(claims["role"].(float64))); role != domain.RoleUser {
		t.Fatalf("outside-domain user must be USER, got %v", role)
	}
}

func TestAuthService_GoogleLogin_ExchangeFailure(t *testing.T) {
	svc, _, _ := newAuthService(&stubGoogleVerifier{err: errors.New("oauth2: invalid_grant")})

	if _, err := svc.GoogleLogin(context.Background(), "expired-code"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_GoogleLogin_IncompleteProfile(t *testing.T) {
	profile := googleProfile("library.example")
	profile.HostedDomain = ""
	svc, _, _ := newAuthService(&stubGoogleVerifier{profile: profile})

	if _, err := svc.GoogleLogin(context.Background(), "auth-code"); !domain.IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------------

func TestAuthService_Logout_RevokesForRemainingLifetime(t *testing.T) {
	svc, _, revoker := newAuthService(&stubGoogleVerifier{})

	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("signup: %v", err)
	}
	token, _, err := svc.Login(context.Background(), "ada", "correct horse battery")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	ttl, ok := revoker.revoked[token]
	if !ok {
		t.Fatalf("token was not revoked")
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Fatalf("ttl out of range: %v", ttl)
	}
}

func TestAuthService_Logout_ExpiredTokenRejected(t *testing.T) {
	svc, _, revoker := newAuthService(&stubGoogleVerifier{})
	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("signup: %v", err)
	}
	token, _, err := svc.Login(context.Background(), "ada", "correct horse battery")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), token); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expired token must fail validation, got %v", err)
	}
	if len(revoker.revoked) != 0 {
		t.Fatalf("expired token must not be stored")
	}
}

func TestAuthService_Logout_ForgedTokenRejected(t *testing.T) {
	svc, _, revoker := newAuthService(&stubGoogleVerifier{})

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "attacker",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := forged.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if err := svc.Logout(context.Background(), token); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(revoker.revoked) != 0 {
		t.Fatalf("forged token must not be stored")
	}
}
