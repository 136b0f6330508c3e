package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AssetType distinguishes how a wallet asset is valued.
type AssetType string

const (
	// AssetFiat holds a fixed dollar value.
	AssetFiat AssetType = "fiat"
	// AssetCrypto holds a token amount valued at the live price.
	AssetCrypto AssetType = "crypto"
)

// ParseAssetType validates an asset type string at the API boundary.
func ParseAssetType(s string) (AssetType, error) {
	switch AssetType(s) {
	case AssetFiat, AssetCrypto:
		return AssetType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAssetType, s)
	}
}

// WalletAsset is a holding owned by a member, outside the group pot.
type WalletAsset struct {
	ID      string
	OwnerID string
	Type    AssetType
	Name    string

	// Value is the current dollar valuation. For fiat assets it is the
	// source of truth; for crypto assets it is TokenAmount times the last
	// observed price.
	Value decimal.Decimal

	// Crypto-only fields.
	Symbol      string
	TokenAmount decimal.Decimal

	Color string
}

// Clone returns a copy of the asset.
func (a *WalletAsset) Clone() *WalletAsset {
	c := *a
	return &c
}

// Revalue updates a crypto asset's value from a live price. It reports
// whether the value actually moved; changes under one cent are ignored so
// a jittering price does not churn the persisted snapshot.
func (a *WalletAsset) Revalue(price decimal.Decimal) bool {
	if a.Type != AssetCrypto {
		return false
	}
	next := a.TokenAmount.Mul(price)
	if next.Sub(a.Value).Abs().LessThan(decimal.NewFromFloat(0.01)) {
		return false
	}
	a.Value = next
	return true
}

// Withdraw deducts a dollar amount from the asset. Crypto assets also give
// up a proportional slice of their tokens. The withdrawn token amount is
// returned so callers can record provenance.
func (a *WalletAsset) Withdraw(amount decimal.Decimal) (tokens decimal.Decimal, err error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}
	if amount.GreaterThan(a.Value) {
		return decimal.Zero, fmt.Errorf("%w: %s > %s", ErrAmountExceedsValue, amount, a.Value)
	}
	if a.Type == AssetCrypto && a.Value.IsPositive() {
		tokens = a.TokenAmount.Mul(amount.Div(a.Value))
		a.TokenAmount = a.TokenAmount.Sub(tokens)
	}
	a.Value = a.Value.Sub(amount)
	return tokens, nil
}
