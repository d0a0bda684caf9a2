package ports

import "context"

// TxManager runs fn as one unit of work. Repositories called with the ctx
// passed to fn join it; a nested RunInTx joins the outer one.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
