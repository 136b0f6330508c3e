package domain

import "github.com/shopspring/decimal"

// Member is one participant of the shared group ledger with a running
// balance. Balances are derived state: the sum of every distribution ever
// applied to the member.
type Member struct {
	ID      string
	Name    string
	Balance decimal.Decimal
}

// PrimaryMemberID is the roster slot that personal entries, transfers and
// the legacy loss migration credit.
const PrimaryMemberID = "member1"

// DefaultRoster returns the fixed starting roster seeded into an empty
// store.
func DefaultRoster() []*Member {
	return []*Member{
		{ID: "member1", Name: "Member 1", Balance: decimal.Zero},
		{ID: "member2", Name: "Member 2", Balance: decimal.Zero},
		{ID: "member3", Name: "Member 3", Balance: decimal.Zero},
	}
}
