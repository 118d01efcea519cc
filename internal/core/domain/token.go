package domain

import "strings"

// Token is a fungible token contract bound to one (network, symbol) pair.
type Token struct {
	Network  string `json:"network"`
	Symbol   string `json:"symbol"`
	Address  string `json:"address"`
	Decimals uint8  `json:"decimals"`
}

// TokenKey identifies a token in the lookup table.
type TokenKey struct {
	Network string
	Symbol  string
}

// NewTokenKey normalises network and symbol.
func NewTokenKey(network, symbol string) TokenKey {
	return TokenKey{Network: strings.ToLower(network), Symbol: strings.ToUpper(symbol)}
}
