// Package money converts between decimal strings and integer minor units.
// Balances and payouts are always carried as *big.Int; decimals only appear at the edges.
package money

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// NativeDecimals is the precision of the native coin on EVM chains.
const NativeDecimals = 18

var (
	ErrNotNumeric  = errors.New("amount is not a number")
	ErrTooPrecise  = errors.New("amount has more fractional digits than the token supports")
	ErrNotPositive = errors.New("amount must be positive")
	hundred        = decimal.NewFromInt(100)
)

// ParseUnits converts a decimal string such as "100.25" into minor units.
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	shifted := d.Shift(int32(decimals))
	if !shifted.Equal(shifted.Truncate(0)) {
		return nil, fmt.Errorf("%w: %q", ErrTooPrecise, s)
	}
	return shifted.BigInt(), nil
}

// ParsePositiveUnits is ParseUnits that also rejects zero and negative values.
func ParsePositiveUnits(s string, decimals uint8) (*big.Int, error) {
	v, err := ParseUnits(s, decimals)
	if err != nil {
		return nil, err
	}
	if v.Sign() <= 0 {
		return nil, ErrNotPositive
	}
	return v, nil
}

// MustParseUnits panics on malformed input. Only for constants and tests.
func MustParseUnits(s string, decimals uint8) *big.Int {
	v, err := ParseUnits(s, decimals)
	if err != nil {
		panic(err)
	}
	return v
}

// FormatUnits renders minor units as a decimal string without trailing zeros.
func FormatUnits(v *big.Int, decimals uint8) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -int32(decimals)).String()
}

// PercentOf returns floor(amount * pct / 100) in minor units.
func PercentOf(amount *big.Int, pct decimal.Decimal) *big.Int {
	return decimal.NewFromBigInt(amount, 0).Mul(pct).Div(hundred).Floor().BigInt()
}

// SplitFee returns (fee, net) with fee + net == amount.
func SplitFee(amount *big.Int, pct decimal.Decimal) (fee, net *big.Int) {
	fee = PercentOf(amount, pct)
	net = new(big.Int).Sub(amount, fee)
	return fee, net
}

// NativeToToken converts a native-coin amount in wei into token minor units
// using price = token units per one native coin. Rounds up so the platform
// is never under-reimbursed for gas.
func NativeToToken(wei *big.Int, price decimal.Decimal, tokenDecimals uint8) *big.Int {
	native := decimal.NewFromBigInt(wei, -NativeDecimals)
	return native.Mul(price).Shift(int32(tokenDecimals)).Ceil().BigInt()
}
