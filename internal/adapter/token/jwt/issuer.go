package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"respawn/internal/app/ports"
)

const Issuer = "respawn"

type Claims struct {
	gojwt.RegisteredClaims
}

// TokenIssuer signs HS256 player session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	// Now is the clock Verify checks expiry against. Nil means time.Now.
	Now func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("jwt ttl must be positive")
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}, nil
}

func (i *TokenIssuer) Issue(playerID string, now time.Time) (ports.IssuedToken, error) {
	if strings.TrimSpace(playerID) == "" {
		return ports.IssuedToken{}, errors.New("player id is required")
	}
	expires := now.Add(i.ttl)
	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   playerID,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
	}
	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return ports.IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}
	return ports.IssuedToken{Value: signed, ExpiresAt: expires}, nil
}

func (i *TokenIssuer) clock() time.Time {
	if i.Now != nil {
		return i.Now()
	}
	return time.Now()
}

func (i *TokenIssuer) Verify(token string) (string, error) {
	parsed, err := gojwt.ParseWithClaims(token, &Claims{}, func(t *gojwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, gojwt.WithIssuer(Issuer), gojwt.WithExpirationRequired(), gojwt.WithTimeFunc(i.clock))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ports.ErrInvalidToken
	}
	return claims.Subject, nil
}
