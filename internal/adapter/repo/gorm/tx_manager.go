package gormrepo

import (
	"context"

	"pawledger/internal/app/ports"

	"gorm.io/gorm"
)

// TxManager scopes one slot mutation (settle, resolve, persist) to a single
// database transaction. An error from the unit of work rolls everything
// back, including retention-tier writes made along the way.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return TxManager{db: db}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}

var _ ports.TxManager = TxManager{}
