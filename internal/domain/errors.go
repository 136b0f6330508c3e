package domain

import "errors"

var (
	// Entry errors
	ErrEntryNotFound    = errors.New("entry not found")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrMissingDate      = errors.New("entry date is required")
	ErrMissingAsset     = errors.New("asset name is required")
	ErrInvalidOwner     = errors.New("unknown owner")
	ErrInvalidEntryType = errors.New("unknown entry type")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrInvalidRankMode  = errors.New("unknown ranking mode")

	// Member errors
	ErrMemberNotFound    = errors.New("member not found")
	ErrNoMembersSelected = errors.New("group entry requires at least one member")

	// Wallet errors
	ErrAssetNotFound       = errors.New("wallet asset not found")
	ErrAmountExceedsValue  = errors.New("amount exceeds asset value")
	ErrUnknownAssetType    = errors.New("unknown asset type")
	ErrMissingCryptoSymbol = errors.New("crypto asset requires a symbol")

	// Price errors
	ErrPriceUnavailable = errors.New("price unavailable")
)
