package domain

import "github.com/shopspring/decimal"

// Ledger is the whole in-memory state of the service: every entry, the
// member roster with balances, wallet assets, and the custom asset label
// list. A single Ledger value is threaded through all mutations; nothing
// in this package touches shared state.
type Ledger struct {
	Entries      []*Entry
	Members      []*Member
	WalletAssets []*WalletAsset
	AssetLabels  []string
}

// NewLedger returns an empty ledger with the default roster.
func NewLedger() *Ledger {
	return &Ledger{Members: DefaultRoster()}
}

// Entry finds an entry by id.
func (l *Ledger) Entry(id string) (*Entry, error) {
	for _, e := range l.Entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, ErrEntryNotFound
}

// Member finds a member by id.
func (l *Ledger) Member(id string) (*Member, error) {
	for _, m := range l.Members {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, ErrMemberNotFound
}

// Asset finds a wallet asset by id.
func (l *Ledger) Asset(id string) (*WalletAsset, error) {
	for _, a := range l.WalletAssets {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ErrAssetNotFound
}

// RosterSize returns the current member count. Legacy group entries with
// an empty member set split across this many members.
func (l *Ledger) RosterSize() int { return len(l.Members) }

// Credit adds amount to a member's balance. Unknown ids are skipped: a
// recorded share belonging to a kicked member simply vanishes instead of
// being redistributed.
func (l *Ledger) Credit(memberID string, amount decimal.Decimal) {
	for _, m := range l.Members {
		if m.ID == memberID {
			m.Balance = m.Balance.Add(amount)
			return
		}
	}
}

// AddLabel records a custom asset label if it is not already known.
func (l *Ledger) AddLabel(label string) bool {
	if label == "" {
		return false
	}
	for _, known := range l.AssetLabels {
		if known == label {
			return false
		}
	}
	l.AssetLabels = append(l.AssetLabels, label)
	return true
}

// RemoveEntry deletes an entry by id, preserving order.
func (l *Ledger) RemoveEntry(id string) error {
	for i, e := range l.Entries {
		if e.ID == id {
			l.Entries = append(l.Entries[:i], l.Entries[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

// GroupPot returns the sum of all group transfer entries, the funds moved
// into the shared pot.
func (l *Ledger) GroupPot() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.Entries {
		if e.Owner == OwnerGroup && e.Type == TypeTransfer {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// Clone returns a deep copy of the ledger. Mutations operate on a clone so
// a failed operation never leaves partial state behind.
func (l *Ledger) Clone() *Ledger {
	c := &Ledger{
		Entries:      make([]*Entry, len(l.Entries)),
		Members:      make([]*Member, len(l.Members)),
		WalletAssets: make([]*WalletAsset, len(l.WalletAssets)),
	}
	for i, e := range l.Entries {
		c.Entries[i] = e.Clone()
	}
	for i, m := range l.Members {
		cm := *m
		c.Members[i] = &cm
	}
	for i, a := range l.WalletAssets {
		c.WalletAssets[i] = a.Clone()
	}
	if l.AssetLabels != nil {
		c.AssetLabels = append([]string(nil), l.AssetLabels...)
	}
	return c
}
