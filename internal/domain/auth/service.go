package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tuldokpos/internal/core/apperror"
	"tuldokpos/pkg/logger"
)

// OperatorName is the subject of every issued session. The terminal has
// a single shared operator account.
const OperatorName = "operator"

// TokenResponse is the login result.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
}

// Credentials for login.
type Credentials struct {
	Password string `json:"password"`
}

// Service provides operator authentication. When no password hash is
// configured the terminal runs open and the whole auth surface is
// disabled.
type Service struct {
	passwordHash string
	jwtService   *JWTService
}

// NewService creates a new auth service. passwordHash is a bcrypt hash;
// empty disables authentication.
func NewService(passwordHash string, jwtService *JWTService) *Service {
	return &Service{
		passwordHash: passwordHash,
		jwtService:   jwtService,
	}
}

// Enabled reports whether an operator password is configured.
func (s *Service) Enabled() bool {
	return s.passwordHash != ""
}

// Login verifies the operator password and issues an access token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenResponse, error) {
	if !s.Enabled() {
		return nil, apperror.NewValidation("authentication is not configured")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(creds.Password)); err != nil {
		logger.Warn(ctx, "operator login failed")
		return nil, apperror.NewUnauthorized("invalid password")
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(OperatorName)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "operator logged in")
	return &TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, nil
}

// ValidateToken validates a bearer token and returns the operator name.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	operator, err := s.jwtService.ValidateToken(tokenString)
	if err != nil {
		return "", apperror.NewUnauthorized("invalid or expired token")
	}
	return operator, nil
}

// HashPassword produces a bcrypt hash for operator password setup.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
