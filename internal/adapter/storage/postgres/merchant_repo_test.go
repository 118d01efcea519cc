package postgres

import (
	"context"
	"testing"
	"time"

	"cryptopay-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMerchant() *domain.Merchant {
	fee := decimal.RequireFromString("1.5")
	return &domain.Merchant{
		ID:            uuid.New(),
		Name:          "Test Shop",
		WalletAddress: "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		FeePercent:    &fee,
		Status:        domain.MerchantStatusActive,
		WebhookURL:    strPtr("https://example.com/webhook"),
		AccessKey:     "ak_" + uuid.New().String()[:16],
		APIKeyHash:    "$argon2id$v=19$m=65536,t=1,p=4$salt$hash",
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
}

func strPtr(s string) *string { return &s }

func merchantColumns() []string {
	return []string{"id", "name", "wallet_address", "fee_percent", "status", "webhook_url", "access_key", "api_key_hash", "created_at", "updated_at"}
}

func merchantRow(m *domain.Merchant) *pgxmock.Rows {
	var fee *string
	if m.FeePercent != nil {
		fee = strPtr(m.FeePercent.String())
	}
	return pgxmock.NewRows(merchantColumns()).AddRow(
		m.ID, m.Name, m.WalletAddress, fee, m.Status,
		m.WebhookURL, m.AccessKey, m.APIKeyHash,
		m.CreatedAt, m.UpdatedAt,
	)
}

func TestMerchantRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)
	m := newTestMerchant()

	mock.ExpectExec("INSERT INTO merchants").
		WithArgs(m.ID, m.Name, m.WalletAddress, strPtr("1.5"), m.Status,
			m.WebhookURL, m.AccessKey, m.APIKeyHash,
			m.CreatedAt, m.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), m)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchantRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)
	m := newTestMerchant()

	mock.ExpectQuery("SELECT .+ FROM merchants WHERE id").
		WithArgs(m.ID).
		WillReturnRows(merchantRow(m))

	result, err := repo.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, m.ID, result.ID)
	assert.Equal(t, m.Name, result.Name)
	require.NotNil(t, result.FeePercent)
	assert.True(t, result.FeePercent.Equal(decimal.RequireFromString("1.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchantRepo_GetByID_DefaultFee(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)
	m := newTestMerchant()
	m.FeePercent = nil

	mock.ExpectQuery("SELECT .+ FROM merchants WHERE id").
		WithArgs(m.ID).
		WillReturnRows(merchantRow(m))

	result, err := repo.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Nil(t, result.FeePercent)
}

func TestMerchantRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM merchants WHERE id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(merchantColumns()))

	result, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchantRepo_GetByAccessKey(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)
	m := newTestMerchant()

	mock.ExpectQuery("SELECT .+ FROM merchants WHERE access_key").
		WithArgs(m.AccessKey).
		WillReturnRows(merchantRow(m))

	result, err := repo.GetByAccessKey(context.Background(), m.AccessKey)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, m.AccessKey, result.AccessKey)
	assert.Equal(t, m.APIKeyHash, result.APIKeyHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchantRepo_UpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE merchants SET status").
		WithArgs(domain.MerchantStatusSuspended, pgxmock.AnyArg(), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateStatus(context.Background(), id, domain.MerchantStatusSuspended)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchantRepo_UpdateStatus_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)

	mock.ExpectExec("UPDATE merchants SET status").
		WithArgs(domain.MerchantStatusSuspended, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdateStatus(context.Background(), uuid.New(), domain.MerchantStatusSuspended)
	assert.Error(t, err)
}
