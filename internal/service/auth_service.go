package service

import (
	"bemanai/internal/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "bemanai"

// AuthService issues and verifies API user tokens
type AuthService struct {
	username  string
	password  string
	jwtSecret []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewAuthService creates a new auth service. An empty secret disables
// tokens; a zero ttl issues tokens without expiry.
func NewAuthService(username, password, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		username:  username,
		password:  password,
		jwtSecret: []byte(secret),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Enabled reports whether a signing secret is configured
func (s *AuthService) Enabled() bool {
	return len(s.jwtSecret) > 0
}

// Login validates credentials and returns a token
func (s *AuthService) Login(username, password string) (*model.TokenResponse, error) {
	if !s.Enabled() {
		return nil, ErrAuthDisabled
	}
	if s.username == "" || username != s.username || password != s.password {
		return nil, ErrInvalidCredentials
	}
	return s.IssueToken(username)
}

// IssueToken signs a token for username without checking credentials
func (s *AuthService) IssueToken(username string) (*model.TokenResponse, error) {
	if !s.Enabled() {
		return nil, ErrAuthDisabled
	}

	now := s.now()
	userID := UserID(username)
	claims := &model.UserClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   tokenIssuer,
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
			ID:       uuid.NewString(),
		},
	}
	var expiresAt int64
	if s.ttl > 0 {
		exp := now.Add(s.ttl)
		claims.ExpiresAt = jwt.NewNumericDate(exp)
		expiresAt = exp.Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.TokenResponse{
		Token:     tokenString,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken validates a user JWT and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*model.UserClaims, error) {
	if !s.Enabled() {
		return nil, ErrAuthDisabled
	}
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// UserID derives a stable user id from a username
func UserID(username string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(tokenIssuer+":"+username)).String()
}
