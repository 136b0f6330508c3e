package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashwell/cashwell/internal/domain"
)

// neonPalette colors auto-created wallet assets. The pick is a stable
// hash of the asset name so re-creating an asset keeps its color.
var neonPalette = []string{
	"#00ffff", "#b026ff", "#0066ff", "#00ff88",
	"#ff3366", "#ffd700", "#c0c0c0", "#cd7f32",
}

func paletteColor(name string) string {
	sum := 0
	for _, b := range []byte(strings.ToLower(name)) {
		sum += int(b)
	}
	return neonPalette[sum%len(neonPalette)]
}

// EntryUseCase handles entry business logic.
type EntryUseCase struct {
	state *LedgerState
	idGen IDGenerator
	now   func() time.Time
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(state *LedgerState, idGen IDGenerator) *EntryUseCase {
	return &EntryUseCase{
		state: state,
		idGen: idGen,
		now:   time.Now,
	}
}

// AddEntryInput represents input for creating an entry.
type AddEntryInput struct {
	Owner       string
	Type        string
	Asset       string
	Amount      decimal.Decimal
	Date        string
	Description string
	MemberIDs   []string
}

// toEntry parses and validates the raw input into a domain entry, without
// an ID or timestamp.
func (in AddEntryInput) toEntry() (*domain.Entry, error) {
	owner, err := domain.ParseOwner(in.Owner)
	if err != nil {
		return nil, err
	}
	typ, err := domain.ParseEntryType(in.Type)
	if err != nil {
		return nil, err
	}
	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	e := &domain.Entry{
		Owner:       owner,
		Type:        typ,
		Asset:       strings.TrimSpace(in.Asset),
		Amount:      in.Amount,
		Date:        date,
		Description: strings.TrimSpace(in.Description),
	}
	if owner == domain.OwnerGroup {
		if len(in.MemberIDs) == 0 && typ != domain.TypeTransfer {
			return nil, domain.ErrNoMembersSelected
		}
		e.MemberIDs = append([]string(nil), in.MemberIDs...)
		// A transfer always records who it credits.
		if typ == domain.TypeTransfer && len(e.MemberIDs) == 0 {
			e.MemberIDs = []string{domain.PrimaryMemberID}
		}
	}
	if err := domain.ValidateEntry(e); err != nil {
		return nil, err
	}
	return e, nil
}

// AddEntry validates and records a new entry, applies its effect on
// member balances (shares for group profit and loss, a direct credit to
// the target member for transfers), and persists the snapshot. A
// personal loss also tops up (or creates) a matching wallet asset, since
// it represents money moved into something the user now holds.
func (uc *EntryUseCase) AddEntry(ctx context.Context, input AddEntryInput) (*domain.Entry, error) {
	e, err := input.toEntry()
	if err != nil {
		return nil, err
	}
	e.ID = uc.idGen.Generate()
	e.CreatedAt = uc.now()

	err = uc.state.Mutate(ctx, func(l *domain.Ledger) (bool, error) {
		l.Entries = append(l.Entries, e.Clone())
		domain.Reconcile(l, nil, e)
		domain.CreditTransfer(l, e, domain.PrimaryMemberID, false)
		l.AddLabel(e.Asset)

		if e.Owner == domain.OwnerSelf && e.Type == domain.TypeLoss {
			uc.creditWalletAsset(l, e)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// creditWalletAsset adds a personal loss amount to the wallet asset of the
// same name, creating a fiat asset when none exists yet.
func (uc *EntryUseCase) creditWalletAsset(l *domain.Ledger, e *domain.Entry) {
	for _, a := range l.WalletAssets {
		if strings.EqualFold(a.Name, e.Asset) {
			a.Value = a.Value.Add(e.Amount)
			return
		}
	}
	l.WalletAssets = append(l.WalletAssets, &domain.WalletAsset{
		ID:      uc.idGen.Generate(),
		OwnerID: domain.PrimaryMemberID,
		Type:    domain.AssetFiat,
		Name:    e.Asset,
		Value:   e.Amount,
		Color:   paletteColor(e.Asset),
	})
}

// UpdateEntryInput represents input for editing an entry.
type UpdateEntryInput struct {
	ID          string
	Owner       string
	Type        string
	Asset       string
	Amount      decimal.Decimal
	Date        string
	Description string
	MemberIDs   []string
}

// UpdateEntry replaces an entry's fields. The old version's balance
// effect is reverted before the new one is applied, always in that
// order; edits into or out of the transfer type move the direct credit
// the same way. ID and creation timestamp survive the edit.
func (uc *EntryUseCase) UpdateEntry(ctx context.Context, input UpdateEntryInput) (*domain.Entry, error) {
	next, err := AddEntryInput{
		Owner:       input.Owner,
		Type:        input.Type,
		Asset:       input.Asset,
		Amount:      input.Amount,
		Date:        input.Date,
		Description: input.Description,
		MemberIDs:   input.MemberIDs,
	}.toEntry()
	if err != nil {
		return nil, err
	}

	var updated *domain.Entry
	err = uc.state.Mutate(ctx, func(l *domain.Ledger) (bool, error) {
		old, err := l.Entry(input.ID)
		if err != nil {
			return false, err
		}
		next.ID = old.ID
		next.CreatedAt = old.CreatedAt
		// Transfer provenance is immutable; edits to a transfer keep it.
		next.AssetType = old.AssetType
		next.CryptoSymbol = old.CryptoSymbol
		next.TokenAmount = old.TokenAmount

		domain.CreditTransfer(l, old, domain.PrimaryMemberID, true)
		domain.Reconcile(l, old, next)
		domain.CreditTransfer(l, next, domain.PrimaryMemberID, false)
		*old = *next.Clone()
		l.AddLabel(next.Asset)
		updated = next
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteEntry removes an entry and reverts its balance effect.
func (uc *EntryUseCase) DeleteEntry(ctx context.Context, id string) error {
	return uc.state.Mutate(ctx, func(l *domain.Ledger) (bool, error) {
		old, err := l.Entry(id)
		if err != nil {
			return false, err
		}
		domain.Reconcile(l, old, nil)
		domain.CreditTransfer(l, old, domain.PrimaryMemberID, true)
		if err := l.RemoveEntry(id); err != nil {
			return false, err
		}
		return true, nil
	})
}

// ListEntriesInput represents filters for listing entries.
type ListEntriesInput struct {
	Owner  string
	Period string
	Type   string
	Date   string
	Search string
}

// ListEntries returns entries matching the filters, newest first.
func (uc *EntryUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.Entry, error) {
	var owner domain.Owner
	if input.Owner != "" {
		parsed, err := domain.ParseOwner(input.Owner)
		if err != nil {
			return nil, err
		}
		owner = parsed
	}
	var typ domain.EntryType
	if input.Type != "" {
		parsed, err := domain.ParseEntryType(input.Type)
		if err != nil {
			return nil, err
		}
		typ = parsed
	}
	period, err := domain.ParsePeriod(input.Period)
	if err != nil {
		return nil, err
	}
	var exactDate domain.Date
	if input.Date != "" {
		exactDate, err = domain.ParseDate(input.Date)
		if err != nil {
			return nil, err
		}
	}
	search := strings.ToLower(strings.TrimSpace(input.Search))
	now := uc.now()

	var out []*domain.Entry
	uc.state.View(func(l *domain.Ledger) {
		for _, e := range l.Entries {
			if owner != "" && e.Owner != owner {
				continue
			}
			if typ != "" && e.Type != typ {
				continue
			}
			if !exactDate.IsZero() && e.Date != exactDate {
				continue
			}
			if !period.Contains(e.Date, now) {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(e.Asset), search) &&
				!strings.Contains(strings.ToLower(e.Description), search) {
				continue
			}
			out = append(out, e.Clone())
		}
	})

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetEntry returns a single entry by id.
func (uc *EntryUseCase) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	var (
		found *domain.Entry
		err   error
	)
	uc.state.View(func(l *domain.Ledger) {
		var e *domain.Entry
		if e, err = l.Entry(id); err == nil {
			found = e.Clone()
		}
	})
	return found, err
}

// AssetLabels returns the custom asset label list.
func (uc *EntryUseCase) AssetLabels(ctx context.Context) []string {
	var out []string
	uc.state.View(func(l *domain.Ledger) {
		out = append([]string(nil), l.AssetLabels...)
	})
	return out
}
