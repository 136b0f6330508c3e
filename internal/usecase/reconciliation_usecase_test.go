package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashwell/cashwell/internal/domain"
	"github.com/cashwell/cashwell/internal/usecase"
)

func TestConsistencyUseCase_CleanLedger(t *testing.T) {
	env := newTestEnv(t)
	entries := newEntryUseCase(env)

	_, err := entries.AddEntry(context.Background(), usecase.AddEntryInput{
		Owner: "group", Type: "profit", Asset: "poker",
		Amount: decimal.NewFromInt(90), Date: "2026-03-02",
		MemberIDs: []string{"member1", "member2", "member3"},
	})
	require.NoError(t, err)

	uc := usecase.NewConsistencyUseCase(env.state, domain.PrimaryMemberID)
	report, err := uc.Check(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Consistent)
	require.Len(t, report.Members, 3)
	for _, m := range report.Members {
		assert.True(t, m.Consistent, "%s drifted by %s", m.MemberID, m.Difference)
	}
}

func TestConsistencyUseCase_DetectsDrift(t *testing.T) {
	env := newTestEnv(t)

	// An owner override moves a balance away from what the entry log
	// produces.
	members := usecase.NewMemberUseCase(env.state)
	require.NoError(t, members.SetMemberAmount(context.Background(), "member2", decimal.NewFromInt(77)))

	uc := usecase.NewConsistencyUseCase(env.state, domain.PrimaryMemberID)
	report, err := uc.Check(context.Background())
	require.NoError(t, err)

	assert.False(t, report.Consistent)
	var drifted *usecase.MemberDrift
	for i := range report.Members {
		if report.Members[i].MemberID == "member2" {
			drifted = &report.Members[i]
		}
	}
	require.NotNil(t, drifted)
	assert.True(t, drifted.Difference.Equal(decimal.NewFromInt(77)))
}

func TestConsistencyUseCase_CountsTransfers(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.state.Mutate(context.Background(), func(l *domain.Ledger) (bool, error) {
		l.Entries = append(l.Entries, &domain.Entry{
			ID: "t1", Owner: domain.OwnerGroup, Type: domain.TypeTransfer,
			Asset: "seed", Amount: decimal.NewFromInt(200),
			Date:      domain.MustParseDate("2026-03-01"),
			MemberIDs: []string{"member1"},
		})
		l.Credit("member1", decimal.NewFromInt(200))
		return true, nil
	}))

	uc := usecase.NewConsistencyUseCase(env.state, domain.PrimaryMemberID)
	report, err := uc.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Consistent, "replay must credit transfers the way they were applied")
}
