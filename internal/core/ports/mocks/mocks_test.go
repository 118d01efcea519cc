package mocks

import (
	"testing"

	"cryptopay-gateway/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var (
	_ ports.Signer                = (*MockSigner)(nil)
	_ ports.WalletDeriver         = (*MockWalletDeriver)(nil)
	_ ports.ChainProvider         = (*MockChainProvider)(nil)
	_ ports.ChainAdmin            = (*MockChainAdmin)(nil)
	_ ports.TxSender              = (*MockTxSender)(nil)
	_ ports.Subscription          = (*MockSubscription)(nil)
	_ ports.TokenLedger           = (*MockTokenLedger)(nil)
	_ ports.LedgerRegistry        = (*MockLedgerRegistry)(nil)
	_ ports.Reservoir             = (*MockReservoir)(nil)
	_ ports.HealthChecker         = (*MockHealthChecker)(nil)
	_ ports.MerchantRepository    = (*MockMerchantRepository)(nil)
	_ ports.OrderRepository       = (*MockOrderRepository)(nil)
	_ ports.TransactionRepository = (*MockTransactionRepository)(nil)
	_ ports.ScanCursorRepository  = (*MockScanCursorRepository)(nil)
	_ ports.WebhookRepository     = (*MockWebhookRepository)(nil)
	_ ports.SettlementRepository  = (*MockSettlementRepository)(nil)
	_ ports.RecoveryRepository    = (*MockRecoveryRepository)(nil)
	_ ports.AuditRepository       = (*MockAuditRepository)(nil)
	_ ports.DBTransactor          = (*MockDBTransactor)(nil)
	_ ports.SignatureService      = (*MockSignatureService)(nil)
	_ ports.HashService           = (*MockHashService)(nil)
	_ ports.TokenService          = (*MockTokenService)(nil)
	_ ports.IdempotencyCache      = (*MockIdempotencyCache)(nil)
	_ ports.SettlementLock        = (*MockSettlementLock)(nil)
	_ ports.OrderStore            = (*MockOrderStore)(nil)
	_ ports.AddressWatcher        = (*MockAddressWatcher)(nil)
	_ ports.SettlementEngine      = (*MockSettlementEngine)(nil)
	_ ports.SettlementSubmitter   = (*MockSettlementSubmitter)(nil)
	_ ports.NotificationQueue     = (*MockNotificationQueue)(nil)
	_ ports.GasKeeper             = (*MockGasKeeper)(nil)
	_ ports.FundsSweeper          = (*MockFundsSweeper)(nil)
	_ ports.MerchantService       = (*MockMerchantService)(nil)
	_ ports.ReportingService      = (*MockReportingService)(nil)
	_ ports.AuditService          = (*MockAuditService)(nil)
	_ ports.WatchStats            = (*MockWatchStats)(nil)
)

func TestMockIdempotencyCache_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := NewMockIdempotencyCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "merchant:order-1").Return([]byte("cached"), nil)

	var port ports.IdempotencyCache = cache
	got, err := port.Get(t.Context(), "merchant:order-1")
	assert.NoError(t, err)
	assert.Equal(t, []byte("cached"), got)
}
