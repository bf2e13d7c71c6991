package utils

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	jwtIssuer = "LittleLemonAPI"
)

var (
	jwtMu           sync.RWMutex
	jwtSecret       []byte
	accessTokenTTL  = 5 * time.Minute
	refreshTokenTTL = 24 * time.Hour
)

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "littlelemon-dev-secret"
	}
	jwtSecret = []byte(secret)
}

// ConfigureJWT replaces the signing secret and token lifetimes. Zero durations
// keep the current values.
func ConfigureJWT(secret string, accessTTL, refreshTTL time.Duration) {
	jwtMu.Lock()
	defer jwtMu.Unlock()
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if accessTTL > 0 {
		accessTokenTTL = accessTTL
	}
	if refreshTTL > 0 {
		refreshTokenTTL = refreshTTL
	}
}

type CustomClaims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func GenerateToken(userID uint, username, tokenType string) (string, error) {
	jwtMu.RLock()
	secret := jwtSecret
	ttl := accessTokenTTL
	if tokenType == TokenTypeRefresh {
		ttl = refreshTokenTTL
	}
	jwtMu.RUnlock()

	now := time.Now()
	claims := &CustomClaims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    jwtIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// GenerateTokenPair issues a new access and refresh token for the user.
func GenerateTokenPair(userID uint, username string) (*TokenPair, error) {
	access, err := GenerateToken(userID, username, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := GenerateToken(userID, username, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// ParseToken verifies the signature, expiry, type and revocation state of tokenString.
func ParseToken(tokenString, tokenType string) (*CustomClaims, error) {
	jwtMu.RLock()
	secret := jwtSecret
	jwtMu.RUnlock()

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(jwtIssuer))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	if tokenType != "" && claims.TokenType != tokenType {
		return nil, fmt.Errorf("expected %s token", tokenType)
	}
	if IsTokenRevoked(claims.ID) {
		return nil, errors.New("token has been revoked")
	}
	return claims, nil
}
