package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashwell/cashwell/internal/domain"
	"github.com/cashwell/cashwell/internal/usecase"
)

func newEntryUseCase(env *testEnv) *usecase.EntryUseCase {
	return usecase.NewEntryUseCase(env.state, env.idGen)
}

func TestEntryUseCase_AddEntry(t *testing.T) {
	tests := []struct {
		name      string
		input     usecase.AddEntryInput
		expectErr error
	}{
		{
			name: "personal profit",
			input: usecase.AddEntryInput{
				Owner: "myself", Type: "profit", Asset: "salary",
				Amount: decimal.NewFromInt(500), Date: "2026-03-02",
			},
		},
		{
			name: "group profit with members",
			input: usecase.AddEntryInput{
				Owner: "group", Type: "profit", Asset: "poker",
				Amount: decimal.NewFromInt(100), Date: "2026-03-02",
				MemberIDs: []string{"member1", "member2"},
			},
		},
		{
			name: "group entry without members rejected",
			input: usecase.AddEntryInput{
				Owner: "group", Type: "loss", Asset: "poker",
				Amount: decimal.NewFromInt(100), Date: "2026-03-02",
			},
			expectErr: domain.ErrNoMembersSelected,
		},
		{
			name: "unknown owner rejected",
			input: usecase.AddEntryInput{
				Owner: "everyone", Type: "profit", Asset: "poker",
				Amount: decimal.NewFromInt(100), Date: "2026-03-02",
			},
			expectErr: domain.ErrInvalidOwner,
		},
		{
			name: "unknown type rejected",
			input: usecase.AddEntryInput{
				Owner: "myself", Type: "income", Asset: "salary",
				Amount: decimal.NewFromInt(100), Date: "2026-03-02",
			},
			expectErr: domain.ErrInvalidEntryType,
		},
		{
			name: "zero amount rejected",
			input: usecase.AddEntryInput{
				Owner: "myself", Type: "profit", Asset: "salary",
				Amount: decimal.Zero, Date: "2026-03-02",
			},
			expectErr: domain.ErrInvalidAmount,
		},
		{
			name: "bad date rejected",
			input: usecase.AddEntryInput{
				Owner: "myself", Type: "profit", Asset: "salary",
				Amount: decimal.NewFromInt(100), Date: "03/02/2026",
			},
			expectErr: domain.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			uc := newEntryUseCase(env)

			entry, err := uc.AddEntry(context.Background(), tt.input)
			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, entry.ID)
			assert.False(t, entry.CreatedAt.IsZero())
		})
	}
}

func TestEntryUseCase_AddGroupProfitDistributes(t *testing.T) {
	env := newTestEnv(t)
	uc := newEntryUseCase(env)

	_, err := uc.AddEntry(context.Background(), usecase.AddEntryInput{
		Owner: "group", Type: "profit", Asset: "poker",
		Amount: decimal.NewFromInt(100), Date: "2026-03-02",
		MemberIDs: []string{"member1", "member2"},
	})
	require.NoError(t, err)

	assert.True(t, env.memberBalance(t, "member1").Equal(decimal.NewFromInt(50)))
	assert.True(t, env.memberBalance(t, "member2").Equal(decimal.NewFromInt(50)))
	assert.True(t, env.memberBalance(t, "member3").IsZero())
	// The snapshot hit the store.
	assert.Len(t, env.entries.Entries, 1)
}

func TestEntryUseCase_AddThenDeleteRestoresBalances(t *testing.T) {
	env := newTestEnv(t)
	uc := newEntryUseCase(env)

	entry, err := uc.AddEntry(context.Background(), usecase.AddEntryInput{
		Owner: "group", Type: "loss", Asset: "poker",
		Amount: decimal.NewFromInt(90), Date: "2026-03-02",
		MemberIDs: []string{"member1", "member2", "member3"},
	})
	require.NoError(t, err)
	require.NoError(t, uc.DeleteEntry(context.Background(), entry.ID))

	for _, id := range []string{"member1", "member2", "member3"} {
		assert.True(t, env.memberBalance(t, id).IsZero(), "%s should be restored", id)
	}
	assert.Empty(t, env.entries.Entries)
}

func TestEntryUseCase_UpdateReconciles(t *testing.T) {
	env := newTestEnv(t)
	uc := newEntryUseCase(env)

	entry, err := uc.AddEntry(context.Background(), usecase.AddEntryInput{
		Owner: "group", Type: "profit", Asset: "poker",
		Amount: decimal.NewFromInt(100), Date: "2026-03-02",
		MemberIDs: []string{"member1", "member2"},
	})
	require.NoError(t, err)

	updated, err := uc.UpdateEntry(context.Background(), usecase.UpdateEntryInput{
		ID: entry.ID, Owner: "group", Type: "profit", Asset: "poker",
		Amount: decimal.NewFromInt(100), Date: "2026-03-02",
		MemberIDs: []string{"member1"},
	})
	require.NoError(t, err)

	assert.Equal(t, entry.ID, updated.ID)
	assert.Equal(t, entry.CreatedAt, updated.CreatedAt)
	assert.True(t, env.memberBalance(t, "member1").Equal(decimal.NewFromInt(100)))
	assert.True(t, env.memberBalance(t, "member2").IsZero(), "old share must be reverted")
}

func TestEntryUseCase_UpdateUnknownEntry(t *testing.T) {
	env := newTestEnv(t)
	uc := newEntryUseCase(env)

	_, err := uc.UpdateEntry(context.Background(), usecase.UpdateEntryInput{
		ID: "nope", Owner: "myself", Type: "profit", Asset: "salary",
		Amount: decimal.NewFromInt(1), Date: "2026-03-02",
	})
	require.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestEntryUseCase_DeleteUnknownEntry(t *testing.T) {
	env := newTestEnv(t)
	uc := newEntryUseCase(env)

	require.ErrorIs(t, uc.DeleteEntry(context.Background(), "nope"), domain.ErrEntryNotFound)
}

func TestEntryUseCase_PersonalLossTopsUpWallet(t *testing.T) {
	env := newTestEnv(t)
	uc := newEntryUseCase(env)

	_, err := uc.AddEntry(context.Background(), usecase.AddEntryInput{
		Owner: "myself", Type: "loss", Asset: "Vinyl",
		Amount: decimal.NewFromInt(40), Date: "2026-03-02",
	})
	require.NoError(t, err)
	// Second loss on the same asset accumulates instead of duplicating.
	_, err = uc.AddEntry(context.Background(), usecase.AddEntryInput{
		Owner: "myself", Type: "loss", Asset: "vinyl",
		Amount: decimal.NewFromInt(10), Date: "2026-03-03",
	})
	require.NoError(t, err)

	env.state.View(func(l *domain.Ledger) {
		require.Len(t, l.WalletAssets, 1)
		a := l.WalletAssets[0]
		assert.Equal(t, domain.AssetFiat, a.Type)
		assert.Equal(t, domain.PrimaryMemberID, a.OwnerID)
		assert.True(t, a.Value.Equal(decimal.NewFromInt(50)))
		assert.NotEmpty(t, a.Color)
	})
}

func TestEntryUseCase_TransferCreditsTarget(t *testing.T) {
	env := newTestEnv(t)
	uc := newEntryUseCase(env)

	entry, err := uc.AddEntry(context.Background(), usecase.AddEntryInput{
		Owner: "group", Type: "transfer", Asset: "seed money",
		Amount: decimal.NewFromInt(40), Date: "2026-03-02",
		MemberIDs: []string{"member2"},
	})
	require.NoError(t, err)

	assert.True(t, env.memberBalance(t, "member2").Equal(decimal.NewFromInt(40)))
	assert.True(t, env.memberBalance(t, "member1").IsZero())
	assert.True(t, env.memberBalance(t, "member3").IsZero())

	// The stored balances survive a full replay audit.
	check := usecase.NewConsistencyUseCase(env.state, domain.PrimaryMemberID)
	report, err := check.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Consistent)

	require.NoError(t, uc.DeleteEntry(context.Background(), entry.ID))
	assert.True(t, env.memberBalance(t, "member2").IsZero(), "delete reverts the credit")
}

func TestEntryUseCase_TransferWithoutMembersCreditsPrimary(t *testing.T) {
	env := newTestEnv(t)
	uc := newEntryUseCase(env)

	entry, err := uc.AddEntry(context.Background(), usecase.AddEntryInput{
		Owner: "group", Type: "transfer", Asset: "seed money",
		Amount: decimal.NewFromInt(40), Date: "2026-03-02",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{domain.PrimaryMemberID}, entry.MemberIDs)
	assert.True(t, env.memberBalance(t, domain.PrimaryMemberID).Equal(decimal.NewFromInt(40)))
}

func TestEntryUseCase_UpdateAcrossTransfer(t *testing.T) {
	env := newTestEnv(t)
	uc := newEntryUseCase(env)

	entry, err := uc.AddEntry(context.Background(), usecase.AddEntryInput{
		Owner: "group", Type: "profit", Asset: "poker",
		Amount: decimal.NewFromInt(100), Date: "2026-03-02",
		MemberIDs: []string{"member1", "member2"},
	})
	require.NoError(t, err)

	// Profit shares become a single direct credit.
	_, err = uc.UpdateEntry(context.Background(), usecase.UpdateEntryInput{
		ID: entry.ID, Owner: "group", Type: "transfer", Asset: "poker",
		Amount: decimal.NewFromInt(40), Date: "2026-03-02",
		MemberIDs: []string{"member2"},
	})
	require.NoError(t, err)
	assert.True(t, env.memberBalance(t, "member1").IsZero(), "old share must be reverted")
	assert.True(t, env.memberBalance(t, "member2").Equal(decimal.NewFromInt(40)))

	// And back again.
	_, err = uc.UpdateEntry(context.Background(), usecase.UpdateEntryInput{
		ID: entry.ID, Owner: "group", Type: "profit", Asset: "poker",
		Amount: decimal.NewFromInt(100), Date: "2026-03-02",
		MemberIDs: []string{"member1", "member2"},
	})
	require.NoError(t, err)
	assert.True(t, env.memberBalance(t, "member1").Equal(decimal.NewFromInt(50)))
	assert.True(t, env.memberBalance(t, "member2").Equal(decimal.NewFromInt(50)))

	check := usecase.NewConsistencyUseCase(env.state, domain.PrimaryMemberID)
	report, err := check.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Consistent)
}

func TestEntryUseCase_ListEntriesFilters(t *testing.T) {
	env := newTestEnv(t)
	uc := newEntryUseCase(env)
	now := time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)
	uc.SetClock(func() time.Time { return now })

	add := func(owner, typ, asset, date string, memberIDs ...string) {
		t.Helper()
		_, err := uc.AddEntry(context.Background(), usecase.AddEntryInput{
			Owner: owner, Type: typ, Asset: asset,
			Amount: decimal.NewFromInt(10), Date: date,
			MemberIDs: memberIDs,
		})
		require.NoError(t, err)
	}
	add("myself", "profit", "salary", "2026-03-04")
	add("myself", "loss", "coffee", "2026-02-01")
	add("group", "profit", "poker", "2026-03-02", "member1")

	all, err := uc.ListEntries(context.Background(), usecase.ListEntriesInput{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	personal, err := uc.ListEntries(context.Background(), usecase.ListEntriesInput{Owner: "myself"})
	require.NoError(t, err)
	assert.Len(t, personal, 2)

	thisWeek, err := uc.ListEntries(context.Background(), usecase.ListEntriesInput{Period: "weekly"})
	require.NoError(t, err)
	assert.Len(t, thisWeek, 2)

	byDate, err := uc.ListEntries(context.Background(), usecase.ListEntriesInput{Date: "2026-02-01"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "coffee", byDate[0].Asset)

	search, err := uc.ListEntries(context.Background(), usecase.ListEntriesInput{Search: "pok"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "poker", search[0].Asset)

	_, err = uc.ListEntries(context.Background(), usecase.ListEntriesInput{Period: "fortnight"})
	require.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestEntryUseCase_AssetLabelsCollected(t *testing.T) {
	env := newTestEnv(t)
	uc := newEntryUseCase(env)

	for _, asset := range []string{"poker", "salary", "poker"} {
		_, err := uc.AddEntry(context.Background(), usecase.AddEntryInput{
			Owner: "myself", Type: "profit", Asset: asset,
			Amount: decimal.NewFromInt(5), Date: "2026-03-01",
		})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"poker", "salary"}, uc.AssetLabels(context.Background()))
}
