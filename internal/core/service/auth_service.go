package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/anwar-ulhaq/Library-Backend/internal/api/metrics"
	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
	"github.com/anwar-ulhaq/Library-Backend/internal/core/ports"
)

// AuthService implements signup, login, the Google OAuth flow, and logout.
type AuthService struct {
	repo        ports.UserRepository
	google      ports.GoogleVerifier
	revoker     ports.TokenRevoker
	jwtSecret   string
	tokenTTL    time.Duration
	adminDomain string // hosted domain whose Google users become admins
	logger      zerolog.Logger
	now         func() time.Time
}

func NewAuthService(
	repo ports.UserRepository,
	google ports.GoogleVerifier,
	revoker ports.TokenRevoker,
	jwtSecret string,
	tokenTTL time.Duration,
	adminDomain string,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:        repo,
		google:      google,
		revoker:     revoker,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		adminDomain: adminDomain,
		logger:      logger,
		now:         time.Now,
	}
}

// Signup registers a local account with role USER. Both username and email
// must be free; the password is bcrypt-hashed exactly once, here.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	if err := validateSignup(in); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login authenticates a local account. Unknown username and wrong password
// collapse into the same error so callers cannot enumerate usernames.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthFailuresTotal.WithLabelValues("password").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.AuthFailuresTotal.WithLabelValues("password").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	metrics.AuthLoginsTotal.WithLabelValues("password").Inc()
	return token, user, nil
}

// GoogleAuthURL returns the consent-screen URL for the /google redirect.
func (s *AuthService) GoogleAuthURL(state string) string {
	return s.google.AuthCodeURL(state)
}

// GoogleLogin completes the OAuth callback. Users from the configured admin
// hosted domain get the ADMIN role, everyone else USER. The Google subject id
// stands in as the token subject; no local user record is created.
func (s *AuthService) GoogleLogin(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", domain.NewValidationError("code")
	}

	profile, err := s.google.Exchange(ctx, code)
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("google").Inc()
		s.logger.Warn().Err(err).Msg("google code exchange failed")
		return "", domain.ErrInvalidCredentials
	}
	if profile.GivenName == "" || profile.FamilyName == "" || profile.Subject == "" ||
		profile.Email == "" || profile.HostedDomain == "" {
		return "", domain.NewValidationError("given_name", "family_name", "sub", "email", "hd")
	}

	role := domain.RoleUser
	if profile.HostedDomain == s.adminDomain {
		role = domain.RoleAdmin
	}

	token, err := s.generateToken(profile.Subject, role)
	if err != nil {
		return "", err
	}

	metrics.AuthLoginsTotal.WithLabelValues("google").Inc()
	s.logger.Info().Str("subject", profile.Subject).Str("role", role.String()).Msg("google login")
	return token, nil
}

// Logout revokes the token for the remainder of its lifetime. An already
// expired token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return domain.NewValidationError("token")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return domain.ErrInvalidCredentials
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return domain.ErrInvalidCredentials
	}
	ttl := time.Until(exp.Time)
	if ttl <= 0 {
		return nil
	}
	return s.revoker.Revoke(ctx, token, ttl)
}

func (s *AuthService) generateToken(subject string, role domain.Role) (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"id":   subject,
		"role": int(role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func validateSignup(in ports.SignupInput) error {
	var missing []string
	if in.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if in.LastName == "" {
		missing = append(missing, "lastName")
	}
	if in.Username == "" {
		missing = append(missing, "username")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return domain.NewValidationError(missing...)
	}
	return nil
}
