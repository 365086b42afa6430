package database

import (
	"context"
	"errors"
)

var errNoTx = errors.New("no transaction in context")

type txKey struct{}

// txState is what a unit of work leaves in the context. Only the unit that
// opened the transaction finishes it.
type txState struct {
	tx    Transaction
	owner bool
}

func txFrom(ctx context.Context) (txState, bool) {
	state, ok := ctx.Value(txKey{}).(txState)
	return state, ok && state.tx != nil
}

// ExecutorFromContext returns the transaction carried by ctx, or conn when
// there is none. Repositories call it on every statement so they join a
// caller's unit of work without knowing about it.
func ExecutorFromContext(ctx context.Context, conn Connection) Executor {
	if state, ok := txFrom(ctx); ok {
		return state.tx
	}
	return conn
}

// GenericUnitOfWork runs application transactions on any Connection.
// Begin inside an open unit joins it; Commit and Rollback on a joined unit
// are no-ops and the outermost unit decides.
type GenericUnitOfWork struct {
	conn Connection
}

func NewUnitOfWork(conn Connection) *GenericUnitOfWork {
	return &GenericUnitOfWork{conn: conn}
}

func (u *GenericUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if state, ok := txFrom(ctx); ok {
		return context.WithValue(ctx, txKey{}, txState{tx: state.tx}), nil
	}

	tx, err := u.conn.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return context.WithValue(ctx, txKey{}, txState{tx: tx, owner: true}), nil
}

func (u *GenericUnitOfWork) Commit(ctx context.Context) error {
	return u.finish(ctx, Transaction.Commit)
}

func (u *GenericUnitOfWork) Rollback(ctx context.Context) error {
	return u.finish(ctx, Transaction.Rollback)
}

func (u *GenericUnitOfWork) finish(ctx context.Context, end func(Transaction, context.Context) error) error {
	state, ok := txFrom(ctx)
	if !ok {
		return errNoTx
	}
	if !state.owner {
		return nil
	}
	return end(state.tx, ctx)
}
