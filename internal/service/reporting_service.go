package service

import (
	"context"
	"math/big"
	"sort"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"
	"cryptopay-gateway/pkg/apperror"
	"cryptopay-gateway/pkg/money"

	"github.com/rs/zerolog"
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	orders    ports.OrderRepository
	webhooks  ports.WebhookRepository
	ledgers   ports.LedgerRegistry
	watcher   ports.WatchStats
	reservoir ports.Reservoir
	admin     ports.ChainAdmin
	log       zerolog.Logger
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	orders ports.OrderRepository,
	webhooks ports.WebhookRepository,
	ledgers ports.LedgerRegistry,
	watcher ports.WatchStats,
	reservoir ports.Reservoir,
	admin ports.ChainAdmin,
	log zerolog.Logger,
) ports.ReportingService {
	return &reportingService{
		orders:    orders,
		webhooks:  webhooks,
		ledgers:   ledgers,
		watcher:   watcher,
		reservoir: reservoir,
		admin:     admin,
		log:       log,
	}
}

// DashboardStats aggregates orders per currency together with queue and
// reservoir health. An unreadable reservoir balance is reported empty.
func (s *reportingService) DashboardStats(ctx context.Context) (*ports.DashboardStats, error) {
	rows, err := s.orders.Stats(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	webhooks, err := s.webhooks.CountByStatus(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	stats := &ports.DashboardStats{
		Webhooks:          make(map[string]int64, len(webhooks)),
		WatchedAddresses:  s.watcher.WatchedCount(),
		ReservoirAddress:  s.reservoir.Address().Hex(),
		UsingSecondaryRPC: s.admin.UsingSecondary(),
	}
	for status, n := range webhooks {
		stats.Webhooks[string(status)] = n
	}

	type totals struct {
		stats   ports.CurrencyStats
		settled *big.Int
		fees    *big.Int
	}
	byCurrency := make(map[string]*totals)
	for _, row := range rows {
		t, ok := byCurrency[row.Currency]
		if !ok {
			t = &totals{
				stats:   ports.CurrencyStats{Currency: row.Currency, ByStatus: make(map[string]int64)},
				settled: big.NewInt(0),
				fees:    big.NewInt(0),
			}
			byCurrency[row.Currency] = t
		}
		t.stats.Orders += row.Count
		t.stats.ByStatus[string(row.Status)] += row.Count
		stats.TotalOrders += row.Count

		switch row.Status {
		case domain.OrderStatusSettled:
			if row.TotalAmount != nil {
				t.settled.Add(t.settled, row.TotalAmount)
			}
			if row.TotalFees != nil {
				t.fees.Add(t.fees, row.TotalFees)
			}
		case domain.OrderStatusConfirmed:
			stats.PendingSettlement += int(row.Count)
		}
	}

	for symbol, t := range byCurrency {
		var decimals uint8
		if ledger, err := s.ledgers.Ledger(symbol); err == nil {
			decimals = ledger.Token().Decimals
		}
		t.stats.SettledVolume = money.FormatUnits(t.settled, decimals)
		t.stats.FeesEarned = money.FormatUnits(t.fees, decimals)
		stats.Currencies = append(stats.Currencies, t.stats)
	}
	sort.Slice(stats.Currencies, func(i, j int) bool {
		return stats.Currencies[i].Currency < stats.Currencies[j].Currency
	})

	if balance, err := s.reservoir.Balance(ctx); err != nil {
		s.log.Warn().Err(err).Msg("reservoir balance unavailable")
	} else {
		stats.ReservoirBalance = money.FormatUnits(balance, nativeDecimals)
	}

	return stats, nil
}
