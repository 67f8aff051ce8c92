package composables

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type stubTx struct{}

func (stubTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (stubTx) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (stubTx) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }

func TestUseTx(t *testing.T) {
	_, err := UseTx(context.Background())
	require.ErrorIs(t, err, ErrNoPool)

	ctx := WithTx(context.Background(), stubTx{})
	tx, err := UseTx(ctx)
	require.NoError(t, err)
	require.Equal(t, stubTx{}, tx)
}

func TestInTx_ReusesExistingTx(t *testing.T) {
	ctx := WithTx(context.Background(), stubTx{})

	got, err := InTxResult(ctx, func(txCtx context.Context) (int, error) {
		_, err := UseTx(txCtx)
		return 42, err
	})
	require.NoError(t, err)
	require.Equal(t, 42, got)

	boom := errors.New("boom")
	err = InTx(ctx, func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestInTx_RequiresPool(t *testing.T) {
	called := false
	err := InTx(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, ErrNoPool)
	require.False(t, called)
}

func TestTenantID(t *testing.T) {
	_, err := UseTenantID(context.Background())
	require.ErrorIs(t, err, ErrNoTenantID)

	_, err = UseTenantID(WithTenantID(context.Background(), uuid.Nil))
	require.ErrorIs(t, err, ErrNoTenantID)

	id := uuid.New()
	got, err := UseTenantID(WithTenantID(context.Background(), id))
	require.NoError(t, err)
	require.Equal(t, id, got)
}
