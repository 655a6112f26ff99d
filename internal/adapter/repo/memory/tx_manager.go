package memory

import (
	"context"

	"pawledger/internal/app/ports"
)

// TxManager runs the unit of work directly; the in-memory store has no
// transactions to scope.
type TxManager struct{}

func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ ports.TxManager = TxManager{}
