package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/orca-works/orca-crm/internal/auth"
	"github.com/orca-works/orca-crm/internal/config"
	apperrors "github.com/orca-works/orca-crm/pkg/util"
)

// AuthService authenticates the single operator account configured via
// environment. There is no user table; the credential lives in config.
type AuthService struct {
	username     string
	passwordHash string
	tokenMgr     *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		username:     cfg.OperatorUsername,
		passwordHash: cfg.OperatorPasswordHash,
		tokenMgr:     auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// Login verifies the operator credential and issues a token. Both a
// wrong username and a wrong password surface as the same error.
func (s *AuthService) Login(_ context.Context, username, password string) (string, time.Time, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passwordOK := auth.ComparePassword(s.passwordHash, password) == nil
	if !usernameOK || !passwordOK {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.issueToken(username)
}

func (s *AuthService) issueToken(username string) (string, time.Time, error) {
	token, exp, err := s.tokenMgr.GenerateToken(username)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
