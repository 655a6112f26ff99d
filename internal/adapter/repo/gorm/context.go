package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

// The transaction handle rides in the context so SlotRepo calls made inside
// RunInTx share the tx without widening the ports.SlotRepository signatures.
type txKeyType struct{}

var txKey = txKeyType{}

func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// getDBFromCtx returns the in-flight transaction if there is one, else the
// base handle for standalone reads like the slot listing.
func getDBFromCtx(ctx context.Context, base *gorm.DB) *gorm.DB {
	if v := ctx.Value(txKey); v != nil {
		if tx, ok := v.(*gorm.DB); ok && tx != nil {
			return tx
		}
	}
	return base
}
