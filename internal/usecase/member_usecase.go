package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cashwell/cashwell/internal/domain"
)

// MemberUseCase handles roster operations.
type MemberUseCase struct {
	state *LedgerState
}

// NewMemberUseCase creates a new MemberUseCase.
func NewMemberUseCase(state *LedgerState) *MemberUseCase {
	return &MemberUseCase{state: state}
}

// ListMembers returns the roster with balances, in roster order.
func (uc *MemberUseCase) ListMembers(ctx context.Context) []*domain.Member {
	var out []*domain.Member
	uc.state.View(func(l *domain.Ledger) {
		for _, m := range l.Members {
			cm := *m
			out = append(out, &cm)
		}
	})
	return out
}

// KickMember removes a member from the roster and strips its id from
// every group entry's member set. Historical entries are NOT
// redistributed: the divisor of an already-recorded entry is its original
// member count, so the kicked member's past share simply vacates.
func (uc *MemberUseCase) KickMember(ctx context.Context, id string) error {
	return uc.state.Mutate(ctx, func(l *domain.Ledger) (bool, error) {
		if _, err := l.Member(id); err != nil {
			return false, err
		}
		for i, m := range l.Members {
			if m.ID == id {
				l.Members = append(l.Members[:i], l.Members[i+1:]...)
				break
			}
		}
		for _, e := range l.Entries {
			if e.Owner != domain.OwnerGroup || len(e.MemberIDs) == 0 {
				continue
			}
			kept := e.MemberIDs[:0]
			for _, mid := range e.MemberIDs {
				if mid != id {
					kept = append(kept, mid)
				}
			}
			e.MemberIDs = kept
		}
		return true, nil
	})
}

// SetMemberAmount overrides a member's balance directly (owner action).
func (uc *MemberUseCase) SetMemberAmount(ctx context.Context, id string, amount decimal.Decimal) error {
	return uc.state.Mutate(ctx, func(l *domain.Ledger) (bool, error) {
		m, err := l.Member(id)
		if err != nil {
			return false, err
		}
		if m.Balance.Equal(amount) {
			return false, nil
		}
		m.Balance = amount
		return true, nil
	})
}

// ResetGroup drops every group entry and zeroes all member balances.
// Personal entries and wallet assets survive.
func (uc *MemberUseCase) ResetGroup(ctx context.Context) error {
	return uc.state.Mutate(ctx, func(l *domain.Ledger) (bool, error) {
		kept := l.Entries[:0]
		for _, e := range l.Entries {
			if e.Owner != domain.OwnerGroup {
				kept = append(kept, e)
			}
		}
		l.Entries = kept
		for _, m := range l.Members {
			m.Balance = decimal.Zero
		}
		return true, nil
	})
}
