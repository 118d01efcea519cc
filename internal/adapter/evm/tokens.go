package evm

import (
	"fmt"
	"math/big"
	"strings"

	"cryptopay-gateway/internal/core/domain"
)

var chainIDs = map[string]int64{
	"ethereum":    1,
	"sepolia":     11155111,
	"bsc":         56,
	"bsc-testnet": 97,
	"polygon":     137,
}

// knownTokens is the built-in stablecoin table keyed by (network, symbol).
var knownTokens = map[domain.TokenKey]domain.Token{
	domain.NewTokenKey("bsc", "USDT"):         {Network: "bsc", Symbol: "USDT", Address: "0x55d398326f99059fF775485246999027B3197955", Decimals: 18},
	domain.NewTokenKey("bsc", "USDC"):         {Network: "bsc", Symbol: "USDC", Address: "0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d", Decimals: 18},
	domain.NewTokenKey("bsc-testnet", "USDT"): {Network: "bsc-testnet", Symbol: "USDT", Address: "0x337610d27c682E347C9cD60BD4b3b107C9d34dDd", Decimals: 18},
	domain.NewTokenKey("ethereum", "USDT"):    {Network: "ethereum", Symbol: "USDT", Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Decimals: 6},
	domain.NewTokenKey("ethereum", "USDC"):    {Network: "ethereum", Symbol: "USDC", Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Decimals: 6},
	domain.NewTokenKey("polygon", "USDT"):     {Network: "polygon", Symbol: "USDT", Address: "0xc2132D05D31c914a87C6611C10748AEb04B58e8F", Decimals: 6},
}

// ChainIDFor returns the chain id of a named network. A non-zero configured
// id wins over the table.
func ChainIDFor(network string, configured int64) (*big.Int, error) {
	if configured > 0 {
		return big.NewInt(configured), nil
	}
	id, ok := chainIDs[strings.ToLower(network)]
	if !ok {
		return nil, fmt.Errorf("unknown network %q: set chain.chain_id", network)
	}
	return big.NewInt(id), nil
}

// ResolveTokens returns the tokens available on network: the built-in table
// overlaid with configured entries. Overrides for other networks are ignored.
func ResolveTokens(network string, overrides []domain.Token) []domain.Token {
	network = strings.ToLower(network)
	byKey := make(map[domain.TokenKey]domain.Token)
	for k, t := range knownTokens {
		if k.Network == network {
			byKey[k] = t
		}
	}
	for _, t := range overrides {
		key := domain.NewTokenKey(t.Network, t.Symbol)
		if key.Network != network {
			continue
		}
		t.Network, t.Symbol = key.Network, key.Symbol
		byKey[key] = t
	}

	out := make([]domain.Token, 0, len(byKey))
	for _, t := range byKey {
		out = append(out, t)
	}
	return out
}
