package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"cryptopay-gateway/config"
	"cryptopay-gateway/internal/adapter/evm"
	"cryptopay-gateway/internal/adapter/hdwallet"
	httpHandler "cryptopay-gateway/internal/adapter/http/handler"
	pgStorage "cryptopay-gateway/internal/adapter/storage/postgres"
	redisStorage "cryptopay-gateway/internal/adapter/storage/redis"
	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"
	"cryptopay-gateway/internal/observability"
	"cryptopay-gateway/internal/service"
	"cryptopay-gateway/pkg/logger"
	"cryptopay-gateway/pkg/money"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const nativeDecimals = 18

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CPG_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty,
		logger.WithFile(cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays))

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("network", cfg.Chain.Network).
		Int("port", cfg.Server.Port).
		Msg("Starting CryptoPay Gateway")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Chain access
	chainID, err := evm.ChainIDFor(cfg.Chain.Network, cfg.Chain.ChainID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve chain id")
	}
	provider, err := evm.Dial(ctx, evm.ProviderConfig{
		ChainID:      chainID,
		Timeout:      cfg.Chain.RPCTimeout,
		RateLimit:    cfg.Chain.RPCRateLimit,
		Burst:        cfg.Chain.RPCBurst,
		PollInterval: cfg.Chain.BlockPollInterval,
	}, cfg.Chain.PrimaryRPC, cfg.Chain.SecondaryRPC, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to dial RPC")
	}
	defer provider.Close()
	provider.WithMetrics(observability.Metrics())

	deriver, err := newDeriver(cfg.Wallet)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load master seed")
	}

	sender := evm.NewSender(provider, log)
	reservoir := evm.NewReservoir(deriver.DeriveSigner(hdwallet.ReservoirIndex), sender, provider, cfg.Chain.NativeTransferGas)

	tokens := evm.ResolveTokens(cfg.Chain.Network, tokenOverrides(cfg.Tokens))
	registry, err := evm.NewRegistry(cfg.Chain.Network, tokens, provider, sender, evm.LedgerConfig{
		GasLimit:     cfg.Chain.TokenTransferGas,
		PollInterval: cfg.Chain.BlockPollInterval,
		Lookback:     cfg.Chain.LogLookback,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build token ledgers")
	}

	// Initialize repositories
	merchantRepo := pgStorage.NewMerchantRepo(pool)
	orderRepo := pgStorage.NewOrderRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	webhookRepo := pgStorage.NewWebhookRepo(pool)
	settlementRepo := pgStorage.NewSettlementRepo(pool)
	recoveryRepo := pgStorage.NewRecoveryRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	cursorRepo := pgStorage.NewCursorRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	settlementLock := redisStorage.NewSettlementLock(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Policy values
	feePercent := decimal.RequireFromString(cfg.Payments.FeePercent)
	nativePrice := decimal.RequireFromString(cfg.Chain.NativePrice)
	gasMin := mustNative(log, "gas.min_balance", cfg.Gas.MinBalance)
	gasTopUp := mustNative(log, "gas.topup_amount", cfg.Gas.TopUpAmount)
	gasDust := mustNative(log, "gas.dust", cfg.Gas.Dust)

	platformWallet := reservoir.Address()
	if cfg.Settlement.PlatformWallet != "" {
		platformWallet = common.HexToAddress(cfg.Settlement.PlatformWallet)
	} else {
		log.Warn().Str("address", platformWallet.Hex()).Msg("settlement.platform_wallet not set, paying platform fees to the reservoir")
	}

	// Initialize core services
	sigSvc := service.NewHMACSignatureService()
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.Checkout.Secret, cfg.Checkout.Issuer)

	webhookSvc := service.NewWebhookService(webhookRepo, txRepo, registry, sigSvc, nil, service.WebhookConfig{
		Secret:    cfg.Webhook.Secret,
		Timeout:   cfg.Webhook.Timeout,
		Interval:  cfg.Webhook.Interval,
		BatchSize: cfg.Webhook.BatchSize,
	}, component(log, "webhooks"))

	orderSvc := service.NewOrderService(orderRepo, txRepo, merchantRepo, transactor, deriver, registry,
		webhookSvc, idempotencyCache, service.OrderConfig{
			DefaultFeePercent:     feePercent,
			OrderTTL:              cfg.Payments.OrderTTL,
			ConfirmationThreshold: cfg.Payments.ConfirmationThreshold,
			IdempotencyTTL:        cfg.Payments.IdempotencyTTL,
		}, component(log, "orders"))

	settlementSvc := service.NewSettlementService(orderRepo, txRepo, merchantRepo, settlementRepo, orderSvc,
		registry, provider, deriver, settlementLock, service.SettlementConfig{
			ConfirmationThreshold: cfg.Payments.ConfirmationThreshold,
			TokenTransferGas:      cfg.Chain.TokenTransferGas,
			NativePrice:           nativePrice,
			PlatformWallet:        platformWallet,
			LockTTL:               cfg.Settlement.LockTTL,
			ReceiptTimeout:        cfg.Settlement.ReceiptTimeout,
			BatchDelay:            cfg.Settlement.BatchDelay,
		}, component(log, "settlement"))

	gasKeeper := service.NewGasKeeper(provider, reservoir, orderRepo, deriver, sender, service.GasPolicy{
		MinBalance:        gasMin,
		TopUp:             gasTopUp,
		Dust:              gasDust,
		NativeTransferGas: cfg.Chain.NativeTransferGas,
		ReceiptTimeout:    cfg.Settlement.ReceiptTimeout,
	}, component(log, "gas"))

	sweeper := service.NewFundsSweeper(orderRepo, recoveryRepo, registry, provider, deriver, sender, reservoir,
		service.SweeperConfig{
			GracePeriod:       cfg.Recovery.GracePeriod,
			SweepDelay:        cfg.Recovery.SweepDelay,
			IncludeExpired:    cfg.Recovery.IncludeExpired,
			Dust:              gasDust,
			NativeTransferGas: cfg.Chain.NativeTransferGas,
			ReceiptTimeout:    cfg.Settlement.ReceiptTimeout,
		}, component(log, "recovery"))

	settlementQueue := service.NewSettlementQueue(settlementSvc, gasKeeper, orderRepo,
		cfg.Settlement.QueueSize, cfg.Settlement.AutoFundGas, component(log, "settlement_queue"))

	watcher := service.NewChainWatcher(registry, orderSvc, txRepo, provider, settlementQueue, service.WatcherConfig{
		ConfirmationInterval: cfg.Payments.ConfirmationInterval,
		ExpiryInterval:       cfg.Payments.ExpiryInterval,
	}, component(log, "watcher"))
	orderSvc.SetWatcher(watcher)

	merchantSvc := service.NewMerchantService(merchantRepo, hashSvc, component(log, "merchants"))
	reportingSvc := service.NewReportingService(orderRepo, webhookRepo, registry, watcher, reservoir, provider, log)
	auditSvc := service.NewAuditService(auditRepo, component(log, "audit"))

	// Background loops
	var wg sync.WaitGroup
	runLoop := func(name string, fn func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(ctx)
			log.Info().Str("loop", name).Msg("background loop stopped")
		}()
	}
	// Open orders must be watched before the ledgers resume from their stored
	// cursors, or deposits made while the process was down are skipped.
	if _, err := watcher.Resync(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to resync deposit addresses")
	}
	registry.UseCursors(cursorRepo)
	registry.FollowHeads(provider)
	runLoop("ledgers", registry.Run)
	runLoop("settlement", settlementQueue.Run)
	runLoop("webhooks", webhookSvc.Run)
	runLoop("watcher", func(ctx context.Context) {
		if err := watcher.Run(ctx); err != nil {
			log.Error().Err(err).Msg("chain watcher exited")
		}
	})

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Orders:      orderSvc,
		Notifier:    webhookSvc,
		Ledgers:     registry,
		TokenSvc:    tokenSvc,
		MerchantSvc: merchantSvc,
		Admin: httpHandler.AdminDeps{
			Reporting: reportingSvc,
			Settler:   settlementSvc,
			Gas:       gasKeeper,
			Sweeper:   sweeper,
			Notifier:  webhookSvc,
			Orders:    orderSvc,
			Merchants: merchantSvc,
			Chain:     provider,
		},
		AdminSecret:    cfg.Admin.Secret,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{
			pgStorage.NewHealthCheck(pool),
			redisStorage.NewHealthCheck(rdb),
			provider,
		},
		AuditSvc: auditSvc,
		Logger:   log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	wg.Wait()

	log.Info().Msg("Server exited")
}

func newDeriver(cfg config.WalletConfig) (*hdwallet.Deriver, error) {
	if cfg.Mnemonic != "" {
		return hdwallet.NewFromMnemonic(cfg.Mnemonic, cfg.Passphrase)
	}
	return hdwallet.NewFromSeedHex(cfg.SeedHex)
}

func tokenOverrides(in []config.TokenConfig) []domain.Token {
	out := make([]domain.Token, 0, len(in))
	for _, t := range in {
		out = append(out, domain.Token{Network: t.Network, Symbol: t.Symbol, Address: t.Address, Decimals: t.Decimals})
	}
	return out
}

func mustNative(log zerolog.Logger, key, value string) *big.Int {
	v, err := money.ParseUnits(value, nativeDecimals)
	if err != nil {
		log.Fatal().Err(err).Str("key", key).Msg("invalid native amount")
	}
	return v
}

func component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
