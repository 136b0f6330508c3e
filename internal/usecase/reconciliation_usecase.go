package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashwell/cashwell/internal/domain"
)

// ConsistencyUseCase verifies that stored member balances match what a
// full replay of the entry log produces. Balances are derived state, so
// any drift means a past mutation was applied or persisted incorrectly
// (or an owner override moved a balance by hand).
type ConsistencyUseCase struct {
	state   *LedgerState
	primary string
}

// NewConsistencyUseCase creates a new ConsistencyUseCase.
func NewConsistencyUseCase(state *LedgerState, primaryMemberID string) *ConsistencyUseCase {
	return &ConsistencyUseCase{state: state, primary: primaryMemberID}
}

// MemberDrift is one member's recorded vs replayed balance.
type MemberDrift struct {
	MemberID          string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	Consistent        bool
}

// ConsistencyReport is the full check result.
type ConsistencyReport struct {
	Members    []MemberDrift
	Consistent bool
	CheckedAt  time.Time
}

// Check replays every entry against a zero-balance copy of the roster and
// compares the result with the stored balances. The replay uses the same
// two primitives the mutating operations use: Reconcile for group shares
// and CreditTransfer for the transfer side channel.
func (uc *ConsistencyUseCase) Check(ctx context.Context) (*ConsistencyReport, error) {
	report := &ConsistencyReport{Consistent: true, CheckedAt: time.Now().UTC()}

	uc.state.View(func(l *domain.Ledger) {
		replay := l.Clone()
		for _, m := range replay.Members {
			m.Balance = decimal.Zero
		}
		for _, e := range replay.Entries {
			domain.Reconcile(replay, nil, e)
			domain.CreditTransfer(replay, e, uc.primary, false)
		}

		for i, m := range l.Members {
			calc := replay.Members[i].Balance
			drift := MemberDrift{
				MemberID:          m.ID,
				RecordedBalance:   m.Balance,
				CalculatedBalance: calc,
				Difference:        m.Balance.Sub(calc),
				Consistent:        m.Balance.Equal(calc),
			}
			if !drift.Consistent {
				report.Consistent = false
			}
			report.Members = append(report.Members, drift)
		}
	})

	return report, nil
}
