package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

type txCtxKey struct{}

func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

func txFromCtx(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txCtxKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}

// getDBFromCtx returns the transaction carried by ctx, or base bound to ctx.
func getDBFromCtx(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := txFromCtx(ctx); ok {
		return tx
	}
	return base.WithContext(ctx)
}
