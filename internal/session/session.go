// Package session implements the operator console gate as an explicit
// session object: issued at login, checked on use, gone at logout or expiry.
//
// This is a client-visible marker only, not a security control — the backend
// enforces no authorization of its own.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidSession  = errors.New("invalid session token")
	ErrExpiredSession  = errors.New("session has expired")
)

// Claims is the payload of a session marker token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and validates operator session markers.
type Manager struct {
	passwordHash []byte
	secret       []byte
	expiry       time.Duration
}

func NewManager(passwordHash, secret string, expiry time.Duration) *Manager {
	return &Manager{
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		expiry:       expiry,
	}
}

// Login checks the operator password against the configured bcrypt hash and,
// on success, issues a signed marker valid for the configured lifetime.
func (m *Manager) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidPassword
	}

	now := time.Now()
	claims := Claims{
		Role: "operator",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "operator",
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "medequip-console",
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses a session marker and reports whether it is still live.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredSession
		}
		return nil, ErrInvalidSession
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidSession
}

// HashPassword produces a bcrypt hash suitable for the config file.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
