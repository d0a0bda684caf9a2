package memory

import (
	"context"
	"strings"

	"respawn/internal/app/ports"
)

type CredentialRepo struct {
	store *Store
}

func NewCredentialRepo(store *Store) CredentialRepo {
	return CredentialRepo{store: store}
}

func (r CredentialRepo) Create(ctx context.Context, credential ports.CredentialRecord) error {
	key := strings.ToLower(credential.Email)
	return r.store.write(ctx, func() error {
		if _, exists := r.store.credentials[key]; exists {
			return ports.ErrConflict
		}
		r.store.credentials[key] = credential
		return nil
	})
}

func (r CredentialRepo) GetByEmail(ctx context.Context, email string) (ports.CredentialRecord, error) {
	var (
		cred ports.CredentialRecord
		ok   bool
	)
	r.store.read(ctx, func() {
		cred, ok = r.store.credentials[strings.ToLower(email)]
	})
	if !ok {
		return ports.CredentialRecord{}, ports.ErrNotFound
	}
	return cred, nil
}
