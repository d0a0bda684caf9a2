package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"respawn/internal/adapter/repo/memory"
	"respawn/internal/app/ports"
	"respawn/internal/domain/player"
)

func newRegister(creds *fakeCredentialRepo, state *fakeStateRepo) RegisterUseCase {
	return RegisterUseCase{
		Credentials: creds,
		StateRepo:   state,
		TxManager:   fakeTxManager{},
		Tokens:      fakeTokens{},
		Cost:        bcrypt.MinCost,
		Now:         func() time.Time { return time.Unix(1700000000, 0).UTC() },
	}
}

func TestRegisterUseCase_CreatesCredentialAndSeedState(t *testing.T) {
	creds := &fakeCredentialRepo{}
	state := &fakeStateRepo{}
	uc := newRegister(creds, state)

	resp, err := uc.Execute(context.Background(), RegisterRequest{Email: "Ada@Example.com", Password: "correct horse", DisplayName: " Ada "})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if resp.PlayerID == "" || resp.Token != "token-"+resp.PlayerID || resp.IssuedAt == "" {
		t.Fatalf("unexpected register response: %+v", resp)
	}
	if creds.last.PlayerID != resp.PlayerID || creds.last.Email != "ada@example.com" {
		t.Fatalf("unexpected credential %+v", creds.last)
	}
	if err := bcrypt.CompareHashAndPassword(creds.last.PasswordHash, []byte("correct horse")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if state.last.PlayerID != resp.PlayerID || state.last.DisplayName != "Ada" {
		t.Fatalf("state seed mismatch: %+v", state.last)
	}
	if state.last.Version != 1 || state.last.Attributes != nil {
		t.Fatalf("expected fresh seed at version 1, got %+v", state.last)
	}
}

func TestRegisterUseCase_Validation(t *testing.T) {
	uc := newRegister(&fakeCredentialRepo{}, &fakeStateRepo{})
	cases := []RegisterRequest{
		{Email: "not-an-email", Password: "long enough"},
		{Email: "Ada <ada@example.com>", Password: "long enough"},
		{Email: "ada@example.com", Password: "short"},
		{Email: "ada@example.com", Password: string(make([]byte, MaxPasswordLength+1))},
	}
	for _, req := range cases {
		if _, err := uc.Execute(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest for %q, got %v", req.Email, err)
		}
	}
}

func TestRegisterUseCase_DuplicateEmailConflicts(t *testing.T) {
	uc := newRegister(&fakeCredentialRepo{createErr: ports.ErrConflict}, &fakeStateRepo{})
	_, err := uc.Execute(context.Background(), RegisterRequest{Email: "ada@example.com", Password: "long enough"})
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRegisterUseCase_PropagatesStateSaveError(t *testing.T) {
	wantErr := errors.New("state write failed")
	uc := newRegister(&fakeCredentialRepo{}, &fakeStateRepo{saveErr: wantErr})
	_, err := uc.Execute(context.Background(), RegisterRequest{Email: "ada@example.com", Password: "long enough"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}

func TestLoginUseCase(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := &fakeCredentialRepo{getResult: ports.CredentialRecord{
		PlayerID:     "p1",
		Email:        "ada@example.com",
		PasswordHash: hash,
		Status:       CredentialStatusActive,
	}}
	uc := LoginUseCase{Credentials: repo, Tokens: fakeTokens{}}

	resp, err := uc.Execute(context.Background(), LoginRequest{Email: "ADA@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if resp.PlayerID != "p1" || resp.Token != "token-p1" {
		t.Fatalf("unexpected login response %+v", resp)
	}

	if _, err := uc.Execute(context.Background(), LoginRequest{Email: "ada@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	repo.getErr = ports.ErrNotFound
	if _, err := uc.Execute(context.Background(), LoginRequest{Email: "bob@example.com", Password: "whatever"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginUseCase_RejectsDisabledCredential(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	repo := &fakeCredentialRepo{getResult: ports.CredentialRecord{PlayerID: "p1", PasswordHash: hash, Status: "disabled"}}
	uc := LoginUseCase{Credentials: repo, Tokens: fakeTokens{}}
	if _, err := uc.Execute(context.Background(), LoginRequest{Email: "ada@example.com", Password: "correct horse"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyUseCase(t *testing.T) {
	uc := VerifyUseCase{Tokens: fakeTokens{}}
	id, err := uc.Execute(context.Background(), VerifyRequest{Token: " token-p1 "})
	if err != nil || id != "p1" {
		t.Fatalf("expected p1, got %q err=%v", id, err)
	}
	if _, err := uc.Execute(context.Background(), VerifyRequest{Token: "garbage"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), VerifyRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

type fakeCredentialRepo struct {
	last      ports.CredentialRecord
	createErr error
	getResult ports.CredentialRecord
	getErr    error
}

func (r *fakeCredentialRepo) Create(_ context.Context, credential ports.CredentialRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.last = credential
	return nil
}

func (r *fakeCredentialRepo) GetByEmail(_ context.Context, _ string) (ports.CredentialRecord, error) {
	if r.getErr != nil {
		return ports.CredentialRecord{}, r.getErr
	}
	return r.getResult, nil
}

type fakeStateRepo struct {
	last    player.Aggregate
	saveErr error
}

func (r *fakeStateRepo) GetByPlayerID(_ context.Context, _ string) (player.Aggregate, error) {
	return r.last, nil
}

func (r *fakeStateRepo) SaveWithVersion(_ context.Context, state player.Aggregate, _ int64) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.last = state
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTokens struct{}

func (fakeTokens) Issue(playerID string, now time.Time) (ports.IssuedToken, error) {
	return ports.IssuedToken{Value: "token-" + playerID, ExpiresAt: now.Add(time.Hour)}, nil
}

func (fakeTokens) Verify(token string) (string, error) {
	const prefix = "token-"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", ports.ErrInvalidToken
	}
	return token[len(prefix):], nil
}

var (
	_ ports.CredentialRepository  = (*fakeCredentialRepo)(nil)
	_ ports.PlayerStateRepository = (*fakeStateRepo)(nil)
	_ ports.TxManager             = fakeTxManager{}
	_ ports.TokenIssuer           = fakeTokens{}
)

func TestRegisterUseCase_FailedStateSaveLeavesNoCredential(t *testing.T) {
	store := memory.NewStore()
	creds := memory.NewCredentialRepo(store)
	uc := RegisterUseCase{
		Credentials: creds,
		StateRepo:   &fakeStateRepo{saveErr: errors.New("state write failed")},
		TxManager:   memory.NewTxManager(store),
		Tokens:      fakeTokens{},
		Cost:        bcrypt.MinCost,
	}
	req := RegisterRequest{Email: "ada@example.com", Password: "long enough"}
	if _, err := uc.Execute(context.Background(), req); err == nil {
		t.Fatalf("expected register to fail")
	}
	if _, err := creds.GetByEmail(context.Background(), "ada@example.com"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected no orphan credential, got %v", err)
	}

	uc.StateRepo = memory.NewPlayerStateRepo(store)
	if _, err := uc.Execute(context.Background(), req); err != nil {
		t.Fatalf("retry after rollback should succeed: %v", err)
	}
}
