package ports

import "context"

// TxManager scopes a unit of work to one storage transaction. The mutating
// use cases wrap their load-modify-save cycle in it.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
