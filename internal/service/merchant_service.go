package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"
	"cryptopay-gateway/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const apiKeySeparator = "."

type merchantService struct {
	merchantRepo ports.MerchantRepository
	hashSvc      ports.HashService
	log          zerolog.Logger
}

// NewMerchantService creates a new merchant management service.
func NewMerchantService(
	merchantRepo ports.MerchantRepository,
	hashSvc ports.HashService,
	log zerolog.Logger,
) ports.MerchantService {
	return &merchantService{
		merchantRepo: merchantRepo,
		hashSvc:      hashSvc,
		log:          log,
	}
}

// Create onboards a merchant and returns its API key. Only the Argon2id hash
// of the secret half is stored.
func (s *merchantService) Create(ctx context.Context, req ports.CreateMerchantRequest) (*ports.CreateMerchantResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}
	if !common.IsHexAddress(req.WalletAddress) {
		return nil, apperror.ErrInvalidAddress()
	}

	var fee *decimal.Decimal
	if req.FeePercent != nil {
		d, err := decimal.NewFromString(*req.FeePercent)
		if err != nil || d.IsNegative() || d.GreaterThanOrEqual(decimal.NewFromInt(100)) {
			return nil, apperror.Validation("fee_percent must be a number in [0, 100)")
		}
		fee = &d
	}

	accessKey, err := generateKey("ak_", 12)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate access key: %w", err))
	}
	secret, err := generateKey("sk_", 32)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate secret: %w", err))
	}
	hash, err := s.hashSvc.Hash(secret)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash secret: %w", err))
	}

	now := time.Now()
	merchant := &domain.Merchant{
		ID:            uuid.New(),
		Name:          name,
		WalletAddress: common.HexToAddress(req.WalletAddress).Hex(),
		FeePercent:    fee,
		Status:        domain.MerchantStatusActive,
		WebhookURL:    req.WebhookURL,
		AccessKey:     accessKey,
		APIKeyHash:    hash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("merchant_id", merchant.ID.String()).
		Str("access_key", accessKey).
		Msg("merchant created")

	return &ports.CreateMerchantResponse{
		Merchant: merchant,
		APIKey:   accessKey + apiKeySeparator + secret,
	}, nil
}

// Suspend disables the merchant. Existing orders keep progressing.
func (s *merchantService) Suspend(ctx context.Context, id uuid.UUID) error {
	merchant, err := s.merchantRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if merchant == nil {
		return apperror.ErrNotFound("merchant")
	}
	if merchant.Status == domain.MerchantStatusSuspended {
		return nil
	}
	if err := s.merchantRepo.UpdateStatus(ctx, id, domain.MerchantStatusSuspended); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	s.log.Warn().Str("merchant_id", id.String()).Msg("merchant suspended")
	return nil
}

// Authenticate resolves an API key of the form "<access_key>.<secret>".
func (s *merchantService) Authenticate(ctx context.Context, apiKey string) (*domain.Merchant, error) {
	accessKey, secret, ok := strings.Cut(apiKey, apiKeySeparator)
	if !ok || accessKey == "" || secret == "" {
		return nil, apperror.ErrInvalidAPIKey()
	}

	merchant, err := s.merchantRepo.GetByAccessKey(ctx, accessKey)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if merchant == nil {
		return nil, apperror.ErrInvalidAPIKey()
	}

	match, err := s.hashSvc.Verify(secret, merchant.APIKeyHash)
	if err != nil || !match {
		return nil, apperror.ErrInvalidAPIKey()
	}
	if !merchant.IsActive() {
		return nil, apperror.ErrMerchantSuspended()
	}
	return merchant, nil
}

func generateKey(prefix string, length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return prefix + hex.EncodeToString(b), nil
}
