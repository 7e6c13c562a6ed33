package repositories

import "context"

// TxFn runs within a transaction carried by the context.
type TxFn func(ctx context.Context) error

// TransactionManager wraps multi-step writes in a single transaction.
type TransactionManager interface {
	// ExecTx runs fn inside a transaction, committing on nil and
	// rolling back on error or panic.
	ExecTx(ctx context.Context, fn TxFn) error
}
