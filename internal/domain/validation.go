package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const MaxAssetNameLength = 120

// ValidateEntry checks a fully-parsed entry before it enters the ledger.
// Enum fields are assumed to have been parsed (and therefore validated)
// at the API boundary; this covers the value-level rules.
func ValidateEntry(e *Entry) error {
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if err := ValidateAssetName(e.Asset); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// ValidateAmount rejects zero and negative amounts. Sign is carried by the
// entry type, never by the amount itself.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateAssetName checks the free-text asset label.
func ValidateAssetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrMissingAsset
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrMissingAsset, MaxAssetNameLength)
	}
	return nil
}

// ValidateWalletAsset checks a wallet asset before it is stored.
func ValidateWalletAsset(a *WalletAsset) error {
	if err := ValidateAssetName(a.Name); err != nil {
		return err
	}
	if a.Value.IsNegative() {
		return ErrInvalidAmount
	}
	if a.Type == AssetCrypto && strings.TrimSpace(a.Symbol) == "" {
		return ErrMissingCryptoSymbol
	}
	return nil
}
