package services

import (
	"fmt"
	"strings"
	"time"

	"rento/errors"

	"github.com/dgrijalva/jwt-go"
)

// Claims identify the server-side session a bearer token belongs to
type Claims struct {
	SessionID string `json:"sid"`
	UserID    string `json:"uid"`
	jwt.StandardClaims
}

// TokenService signs and verifies HS256 access tokens
type TokenService struct {
	secret []byte
	issuer string
}

func NewTokenService(secret, issuer string) *TokenService {
	return &TokenService{secret: []byte(secret), issuer: issuer}
}

// Generate issues a token expiring together with the session
func (s *TokenService) Generate(sessionID, userID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := &Claims{
		SessionID: sessionID,
		UserID:    userID,
		StandardClaims: jwt.StandardClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  issuedAt.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies signature and expiry and returns the claims
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, errors.NewAppError(errors.ErrCodeMissingToken, "missing token", errors.ErrUnauthorized)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "invalid token", errors.ErrUnauthorized)
	}
	if claims.SessionID == "" {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "token has no session", errors.ErrUnauthorized)
	}
	return claims, nil
}
