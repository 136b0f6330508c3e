package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Owner identifies whose ledger an entry belongs to.
type Owner string

const (
	// OwnerSelf marks a personal entry of the primary user.
	OwnerSelf Owner = "myself"
	// OwnerGroup marks an entry shared across the member roster.
	OwnerGroup Owner = "group"
)

// ParseOwner validates an owner string at the API boundary.
func ParseOwner(s string) (Owner, error) {
	switch Owner(s) {
	case OwnerSelf, OwnerGroup:
		return Owner(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOwner, s)
	}
}

// EntryType classifies an entry's effect on balances.
type EntryType string

const (
	TypeProfit EntryType = "profit"
	TypeLoss   EntryType = "loss"
	// TypeTransfer is an audit record of funds moved into the group pot.
	// Transfers never flow through the share distribution; their balance
	// effect is applied directly, once, by the operation that creates them.
	TypeTransfer EntryType = "transfer"
)

// ParseEntryType validates an entry type string at the API boundary.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case TypeProfit, TypeLoss, TypeTransfer:
		return EntryType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEntryType, s)
	}
}

// Entry is a single recorded financial event.
type Entry struct {
	ID          string
	Owner       Owner
	Type        EntryType
	Asset       string
	Amount      decimal.Decimal
	Date        Date
	Description string

	// MemberIDs is the set of members a group entry is split among.
	// Only meaningful for group entries. An empty set is a legacy marker
	// meaning "all current members at the time of evaluation".
	MemberIDs []string

	// Transfer provenance, set when a transfer originates from a wallet
	// asset.
	AssetType    AssetType
	CryptoSymbol string
	TokenAmount  decimal.Decimal

	// CreatedAt is assigned once at creation and preserved across edits.
	// It orders entries for display after edits break insertion order.
	CreatedAt time.Time
}

// Share returns the per-member portion of the entry's amount. The divisor
// is the recorded MemberIDs length, or rosterSize for legacy entries with
// an empty set, floored at 1. The recorded length is used even when some
// of those members no longer exist; a vacated share is not redistributed.
func (e *Entry) Share(rosterSize int) decimal.Decimal {
	n := len(e.MemberIDs)
	if n == 0 {
		n = rosterSize
	}
	if n < 1 {
		n = 1
	}
	return e.Amount.Div(decimal.NewFromInt(int64(n)))
}

// Involves reports whether a member participates in the entry. Group
// entries with an empty member set involve everyone; personal entries
// involve only the primary member.
func (e *Entry) Involves(memberID, primaryID string) bool {
	switch e.Owner {
	case OwnerGroup:
		if len(e.MemberIDs) == 0 {
			return true
		}
		for _, id := range e.MemberIDs {
			if id == memberID {
				return true
			}
		}
		return false
	case OwnerSelf:
		return memberID == primaryID
	}
	return false
}

// SignedAmount returns the entry's amount signed by its type: positive
// for profit, negative for loss, zero for transfers (audit records).
func (e *Entry) SignedAmount() decimal.Decimal {
	switch e.Type {
	case TypeProfit:
		return e.Amount
	case TypeLoss:
		return e.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// TransferTarget returns the member a group transfer credits: the first
// recorded member, or primaryID for legacy transfers recorded without
// one.
func (e *Entry) TransferTarget(primaryID string) string {
	if len(e.MemberIDs) > 0 {
		return e.MemberIDs[0]
	}
	return primaryID
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	c := *e
	if e.MemberIDs != nil {
		c.MemberIDs = append([]string(nil), e.MemberIDs...)
	}
	return &c
}
