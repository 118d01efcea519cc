package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRepo_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCursorRepo(mock)
	mock.ExpectQuery("SELECT block_number FROM chain_cursors").
		WithArgs("bsc-testnet/USDT").
		WillReturnRows(pgxmock.NewRows([]string{"block_number"}).AddRow(int64(880)))

	block, found, err := repo.Get(context.Background(), "bsc-testnet/USDT")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(880), block)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCursorRepo_Get_Missing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCursorRepo(mock)
	mock.ExpectQuery("SELECT block_number FROM chain_cursors").
		WithArgs("bsc-testnet/USDT").
		WillReturnError(pgx.ErrNoRows)

	block, found, err := repo.Get(context.Background(), "bsc-testnet/USDT")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, block)
}

func TestCursorRepo_Save(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCursorRepo(mock)
	mock.ExpectExec("INSERT INTO chain_cursors").
		WithArgs("bsc-testnet/USDT", int64(1000), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Save(context.Background(), "bsc-testnet/USDT", 1000))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCursorRepo_Save_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCursorRepo(mock)
	mock.ExpectExec("INSERT INTO chain_cursors").
		WithArgs("bsc-testnet/USDT", int64(1000), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	assert.Error(t, repo.Save(context.Background(), "bsc-testnet/USDT", 1000))
}
