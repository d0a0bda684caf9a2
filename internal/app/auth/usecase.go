package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"respawn/internal/app/ports"
	"respawn/internal/domain/player"
)

const (
	CredentialStatusActive = "active"
	MinPasswordLength      = 8
	// bcrypt ignores everything past 72 bytes.
	MaxPasswordLength = 72
	MaxDisplayName    = 64
)

var (
	ErrInvalidRequest     = errors.New("invalid auth request")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
}

type RegisterResponse struct {
	PlayerID  string `json:"player_id"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	IssuedAt  string `json:"issued_at"`
}

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResponse struct {
	PlayerID  string `json:"player_id"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type VerifyRequest struct {
	Token string
}

type RegisterUseCase struct {
	Credentials ports.CredentialRepository
	StateRepo   ports.PlayerStateRepository
	TxManager   ports.TxManager
	Tokens      ports.TokenIssuer
	// Cost is the bcrypt cost. Zero means bcrypt.DefaultCost.
	Cost int
	Now  func() time.Time
}

type LoginUseCase struct {
	Credentials ports.CredentialRepository
	Tokens      ports.TokenIssuer
	Now         func() time.Time
}

type VerifyUseCase struct {
	Tokens ports.TokenIssuer
}

func (u RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	if u.Credentials == nil || u.StateRepo == nil || u.TxManager == nil || u.Tokens == nil {
		return RegisterResponse{}, ErrInvalidRequest
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return RegisterResponse{}, err
	}
	if len(req.Password) < MinPasswordLength || len(req.Password) > MaxPasswordLength {
		return RegisterResponse{}, fmt.Errorf("%w: password must be %d to %d characters", ErrInvalidRequest, MinPasswordLength, MaxPasswordLength)
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if len(displayName) > MaxDisplayName {
		return RegisterResponse{}, fmt.Errorf("%w: display name too long", ErrInvalidRequest)
	}

	cost := u.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return RegisterResponse{}, fmt.Errorf("hash password: %w", err)
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()
	playerID := uuid.NewString()

	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Credentials.Create(txCtx, ports.CredentialRecord{
			PlayerID:     playerID,
			Email:        email,
			PasswordHash: hash,
			Status:       CredentialStatusActive,
			CreatedAt:    now,
		}); err != nil {
			return err
		}
		return u.StateRepo.SaveWithVersion(txCtx, player.NewAggregate(playerID, displayName, now), 0)
	})
	if err != nil {
		return RegisterResponse{}, err
	}

	token, err := u.Tokens.Issue(playerID, now)
	if err != nil {
		return RegisterResponse{}, fmt.Errorf("issue token: %w", err)
	}
	return RegisterResponse{
		PlayerID:  playerID,
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt.Format(time.RFC3339),
		IssuedAt:  now.Format(time.RFC3339),
	}, nil
}

func (u LoginUseCase) Execute(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	if u.Credentials == nil || u.Tokens == nil {
		return LoginResponse{}, ErrInvalidRequest
	}
	email, err := normalizeEmail(req.Email)
	if err != nil || req.Password == "" {
		return LoginResponse{}, ErrInvalidRequest
	}

	cred, err := u.Credentials.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return LoginResponse{}, ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}
	if cred.Status != CredentialStatusActive {
		return LoginResponse{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(req.Password)); err != nil {
		return LoginResponse{}, ErrInvalidCredentials
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	token, err := u.Tokens.Issue(cred.PlayerID, nowFn().UTC())
	if err != nil {
		return LoginResponse{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResponse{
		PlayerID:  cred.PlayerID,
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt.Format(time.RFC3339),
	}, nil
}

// Execute returns the player id the token was issued to.
func (u VerifyUseCase) Execute(_ context.Context, req VerifyRequest) (string, error) {
	token := strings.TrimSpace(req.Token)
	if token == "" || u.Tokens == nil {
		return "", ErrInvalidRequest
	}
	playerID, err := u.Tokens.Verify(token)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	return playerID, nil
}

func normalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidRequest)
	}
	return strings.ToLower(addr.Address), nil
}
