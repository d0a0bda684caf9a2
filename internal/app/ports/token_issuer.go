package ports

import "time"

type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

type TokenIssuer interface {
	Issue(playerID string, now time.Time) (IssuedToken, error)
	// Verify returns the player id carried by a valid token, or ErrInvalidToken.
	Verify(token string) (string, error)
}
