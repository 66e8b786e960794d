package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/light-bringer/perfume-catalog/internal/pkg/clock"
)

var (
	// ErrInvalidToken is returned when the token is malformed or badly signed.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("token has expired")
)

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// tokenIssuer signs and verifies HS256 session tokens.
type tokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	clock  clock.Clock
}

func (ti *tokenIssuer) issue(email string) (string, *Session, error) {
	now := ti.clock.Now()
	s := &Session{
		Email:     email,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(ti.ttl).Truncate(time.Second),
	}
	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.TokenID,
			Issuer:    ti.issuer,
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", nil, err
	}
	return token, s, nil
}

func (ti *tokenIssuer) parse(tokenString string) (*Session, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return ti.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ti.issuer),
		jwt.WithTimeFunc(ti.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims.ID == "" || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return &Session{
		Email:     claims.Email,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
