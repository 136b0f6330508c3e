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

func TestMemberUseCase_ListMembers(t *testing.T) {
	env := newTestEnv(t)
	uc := usecase.NewMemberUseCase(env.state)

	members := uc.ListMembers(context.Background())
	require.Len(t, members, 3)
	assert.Equal(t, "member1", members[0].ID)
	assert.Equal(t, "member3", members[2].ID)
}

func TestMemberUseCase_KickStripsEntryMemberIDs(t *testing.T) {
	env := newTestEnv(t)
	members := usecase.NewMemberUseCase(env.state)
	entries := newEntryUseCase(env)

	entry, err := entries.AddEntry(context.Background(), usecase.AddEntryInput{
		Owner: "group", Type: "profit", Asset: "poker",
		Amount: decimal.NewFromInt(100), Date: "2026-03-02",
		MemberIDs: []string{"member1", "member2"},
	})
	require.NoError(t, err)

	require.NoError(t, members.KickMember(context.Background(), "member2"))

	env.state.View(func(l *domain.Ledger) {
		require.Len(t, l.Members, 2)
		stored, err := l.Entry(entry.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"member1"}, stored.MemberIDs)
	})
	// Balances are left exactly as they were: no rebalancing on kick.
	assert.True(t, env.memberBalance(t, "member1").Equal(decimal.NewFromInt(50)))
}

func TestMemberUseCase_KickUnknownMember(t *testing.T) {
	env := newTestEnv(t)
	uc := usecase.NewMemberUseCase(env.state)

	require.ErrorIs(t, uc.KickMember(context.Background(), "member9"), domain.ErrMemberNotFound)
}

func TestMemberUseCase_SetMemberAmount(t *testing.T) {
	env := newTestEnv(t)
	uc := usecase.NewMemberUseCase(env.state)

	require.NoError(t, uc.SetMemberAmount(context.Background(), "member2", decimal.NewFromInt(123)))
	assert.True(t, env.memberBalance(t, "member2").Equal(decimal.NewFromInt(123)))

	err := uc.SetMemberAmount(context.Background(), "ghost", decimal.NewFromInt(1))
	require.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestMemberUseCase_ResetGroup(t *testing.T) {
	env := newTestEnv(t)
	members := usecase.NewMemberUseCase(env.state)
	entries := newEntryUseCase(env)

	_, err := entries.AddEntry(context.Background(), usecase.AddEntryInput{
		Owner: "group", Type: "profit", Asset: "poker",
		Amount: decimal.NewFromInt(60), Date: "2026-03-02",
		MemberIDs: []string{"member1", "member2", "member3"},
	})
	require.NoError(t, err)
	personal, err := entries.AddEntry(context.Background(), usecase.AddEntryInput{
		Owner: "myself", Type: "profit", Asset: "salary",
		Amount: decimal.NewFromInt(500), Date: "2026-03-02",
	})
	require.NoError(t, err)

	require.NoError(t, members.ResetGroup(context.Background()))

	env.state.View(func(l *domain.Ledger) {
		require.Len(t, l.Entries, 1)
		assert.Equal(t, personal.ID, l.Entries[0].ID)
		for _, m := range l.Members {
			assert.True(t, m.Balance.IsZero())
		}
	})
}
