package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cashwell/cashwell/internal/domain"
)

// WalletUseCase handles wallet assets, their valuation, and transfers
// into the group pot.
type WalletUseCase struct {
	state   *LedgerState
	idGen   IDGenerator
	prices  PriceSource
	primary string
	logger  zerolog.Logger
	now     func() time.Time
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(state *LedgerState, idGen IDGenerator, prices PriceSource, primaryMemberID string, logger zerolog.Logger) *WalletUseCase {
	return &WalletUseCase{
		state:   state,
		idGen:   idGen,
		prices:  prices,
		primary: primaryMemberID,
		logger:  logger,
		now:     time.Now,
	}
}

// ListAssets returns all wallet assets, optionally filtered by owner.
func (uc *WalletUseCase) ListAssets(ctx context.Context, ownerID string) []*domain.WalletAsset {
	var out []*domain.WalletAsset
	uc.state.View(func(l *domain.Ledger) {
		for _, a := range l.WalletAssets {
			if ownerID != "" && a.OwnerID != ownerID {
				continue
			}
			out = append(out, a.Clone())
		}
	})
	return out
}

// AddAssetInput represents input for creating a wallet asset.
type AddAssetInput struct {
	OwnerID     string
	Type        string
	Name        string
	Value       decimal.Decimal
	Symbol      string
	TokenAmount decimal.Decimal
	Color       string
}

// AddAsset creates a wallet asset. Assets without an owner belong to the
// primary member, matching how legacy rows are interpreted.
func (uc *WalletUseCase) AddAsset(ctx context.Context, input AddAssetInput) (*domain.WalletAsset, error) {
	typ, err := domain.ParseAssetType(input.Type)
	if err != nil {
		return nil, err
	}
	a := &domain.WalletAsset{
		ID:          uc.idGen.Generate(),
		OwnerID:     input.OwnerID,
		Type:        typ,
		Name:        strings.TrimSpace(input.Name),
		Value:       input.Value,
		Symbol:      strings.ToUpper(strings.TrimSpace(input.Symbol)),
		TokenAmount: input.TokenAmount,
		Color:       input.Color,
	}
	if a.OwnerID == "" {
		a.OwnerID = uc.primary
	}
	if a.Color == "" {
		a.Color = paletteColor(a.Name)
	}
	if err := domain.ValidateWalletAsset(a); err != nil {
		return nil, err
	}

	err = uc.state.Mutate(ctx, func(l *domain.Ledger) (bool, error) {
		if _, err := l.Member(a.OwnerID); err != nil {
			return false, err
		}
		l.WalletAssets = append(l.WalletAssets, a.Clone())
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAssetInput represents input for editing a wallet asset.
type UpdateAssetInput struct {
	ID          string
	Name        string
	Value       decimal.Decimal
	TokenAmount decimal.Decimal
	Color       string
}

// UpdateAsset edits an asset's mutable fields. Type, owner, and symbol
// are fixed at creation.
func (uc *WalletUseCase) UpdateAsset(ctx context.Context, input UpdateAssetInput) (*domain.WalletAsset, error) {
	var updated *domain.WalletAsset
	err := uc.state.Mutate(ctx, func(l *domain.Ledger) (bool, error) {
		a, err := l.Asset(input.ID)
		if err != nil {
			return false, err
		}
		a.Name = strings.TrimSpace(input.Name)
		a.Value = input.Value
		a.TokenAmount = input.TokenAmount
		if input.Color != "" {
			a.Color = input.Color
		}
		if err := domain.ValidateWalletAsset(a); err != nil {
			return false, err
		}
		updated = a.Clone()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteAsset removes a wallet asset.
func (uc *WalletUseCase) DeleteAsset(ctx context.Context, id string) error {
	return uc.state.Mutate(ctx, func(l *domain.Ledger) (bool, error) {
		for i, a := range l.WalletAssets {
			if a.ID == id {
				l.WalletAssets = append(l.WalletAssets[:i], l.WalletAssets[i+1:]...)
				return true, nil
			}
		}
		return false, domain.ErrAssetNotFound
	})
}

// RefreshPrices revalues every crypto asset from the price source. Prices
// are fetched before the ledger lock is taken, so a slow upstream never
// stalls mutations; a price that goes stale between fetch and write is
// accepted. Fetch failures skip the symbol and keep the last value.
func (uc *WalletUseCase) RefreshPrices(ctx context.Context) error {
	symbols := make(map[string]struct{})
	uc.state.View(func(l *domain.Ledger) {
		for _, a := range l.WalletAssets {
			if a.Type == domain.AssetCrypto && a.Symbol != "" {
				symbols[a.Symbol] = struct{}{}
			}
		}
	})
	if len(symbols) == 0 {
		return nil
	}

	prices := make(map[string]decimal.Decimal, len(symbols))
	for sym := range symbols {
		price, err := uc.prices.Price(ctx, sym)
		if err != nil {
			uc.logger.Warn().Err(err).Str("symbol", sym).Msg("price fetch failed, keeping last value")
			continue
		}
		prices[sym] = price
	}
	if len(prices) == 0 {
		return nil
	}

	return uc.state.Mutate(ctx, func(l *domain.Ledger) (bool, error) {
		changed := false
		for _, a := range l.WalletAssets {
			price, ok := prices[a.Symbol]
			if !ok {
				continue
			}
			if a.Revalue(price) {
				changed = true
			}
		}
		return changed, nil
	})
}

// TransferToGroup moves a dollar amount from a primary-owned wallet asset
// into the group pot: the asset gives up the value (and a proportional
// token slice for crypto), a transfer entry records the move with its
// provenance, and the primary member is credited the full amount, once.
func (uc *WalletUseCase) TransferToGroup(ctx context.Context, assetID string, amount decimal.Decimal) (*domain.Entry, error) {
	var entry *domain.Entry
	err := uc.state.Mutate(ctx, func(l *domain.Ledger) (bool, error) {
		a, err := l.Asset(assetID)
		if err != nil {
			return false, err
		}
		if a.OwnerID != uc.primary {
			return false, domain.ErrAssetNotFound
		}
		tokens, err := a.Withdraw(amount)
		if err != nil {
			return false, err
		}

		e := &domain.Entry{
			ID:           uc.idGen.Generate(),
			Owner:        domain.OwnerGroup,
			Type:         domain.TypeTransfer,
			Asset:        a.Name,
			Amount:       amount,
			Date:         domain.DateOf(uc.now()),
			Description:  "transfer from wallet",
			MemberIDs:    []string{uc.primary},
			AssetType:    a.Type,
			CryptoSymbol: a.Symbol,
			TokenAmount:  tokens,
			CreatedAt:    uc.now(),
		}
		l.Entries = append(l.Entries, e)
		domain.CreditTransfer(l, e, uc.primary, false)
		entry = e.Clone()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// FundsBreakdown is the group pot by source asset.
type FundsBreakdown struct {
	Asset     string
	Symbol    string
	DollarsIn decimal.Decimal
	TokensIn  decimal.Decimal
	// Valuation is the current worth of the tokens moved in, when a live
	// price is available; otherwise it equals DollarsIn.
	Valuation decimal.Decimal
}

// GroupFunds is the shared pot summary.
type GroupFunds struct {
	Total     decimal.Decimal
	Breakdown []FundsBreakdown
}

// GetGroupFunds sums group transfer entries and breaks the pot down per
// source asset, valuing crypto inflows at the live price. Price lookups
// happen after the snapshot is read; a failed lookup falls back to the
// dollars recorded at transfer time.
func (uc *WalletUseCase) GetGroupFunds(ctx context.Context) (*GroupFunds, error) {
	funds := &GroupFunds{Total: decimal.Zero}
	byAsset := make(map[string]*FundsBreakdown)
	var order []string

	uc.state.View(func(l *domain.Ledger) {
		funds.Total = l.GroupPot()
		for _, e := range l.Entries {
			if e.Owner != domain.OwnerGroup || e.Type != domain.TypeTransfer {
				continue
			}
			b, ok := byAsset[e.Asset]
			if !ok {
				b = &FundsBreakdown{Asset: e.Asset, Symbol: e.CryptoSymbol}
				byAsset[e.Asset] = b
				order = append(order, e.Asset)
			}
			b.DollarsIn = b.DollarsIn.Add(e.Amount)
			b.TokensIn = b.TokensIn.Add(e.TokenAmount)
		}
	})

	for _, name := range order {
		b := byAsset[name]
		b.Valuation = b.DollarsIn
		if b.Symbol != "" && b.TokensIn.IsPositive() {
			if price, err := uc.prices.Price(ctx, b.Symbol); err == nil {
				b.Valuation = b.TokensIn.Mul(price)
			}
		}
		funds.Breakdown = append(funds.Breakdown, *b)
	}
	return funds, nil
}
