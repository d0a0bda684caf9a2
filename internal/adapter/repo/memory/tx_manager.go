package memory

import "context"

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

// RunInTx serializes fn against every other writer and restores the tables
// when fn fails. A nested call joins the outer transaction.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	snap := t.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}
