package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashwell/cashwell/internal/domain"
	"github.com/cashwell/cashwell/internal/usecase"
)

func TestEntryFromDomain(t *testing.T) {
	now := time.Now()
	entry := &domain.Entry{
		ID:          "entry-1",
		Owner:       domain.OwnerGroup,
		Type:        domain.TypeProfit,
		Asset:       "poker",
		Amount:      decimal.RequireFromString("123.45"),
		Date:        domain.MustParseDate("2026-03-04"),
		Description: "friday game",
		MemberIDs:   []string{"member1", "member2"},
		CreatedAt:   now,
	}

	resp := EntryFromDomain(entry)
	if resp.ID != "entry-1" || resp.Owner != "group" || resp.Type != "profit" {
		t.Fatalf("unexpected entry response: %+v", resp)
	}
	if resp.Date != "2026-03-04" || !resp.Amount.Equal(entry.Amount) {
		t.Fatalf("unexpected entry response: %+v", resp)
	}

	list := EntriesFromDomain([]*domain.Entry{entry})
	if len(list) != 1 || list[0].ID != entry.ID {
		t.Fatalf("EntriesFromDomain returned %+v", list)
	}
}

func TestAssetFromDomain(t *testing.T) {
	asset := &domain.WalletAsset{
		ID:          "asset-1",
		OwnerID:     "member1",
		Type:        domain.AssetCrypto,
		Name:        "Bitcoin stash",
		Value:       decimal.NewFromInt(500),
		Symbol:      "BTC",
		TokenAmount: decimal.RequireFromString("0.008"),
		Color:       "#39ff14",
	}

	resp := AssetFromDomain(asset)
	if resp.ID != "asset-1" || resp.Type != "crypto" || resp.Symbol != "BTC" {
		t.Fatalf("unexpected asset response: %+v", resp)
	}
	if !resp.TokenAmount.Equal(asset.TokenAmount) {
		t.Fatalf("unexpected asset response: %+v", resp)
	}
}

func TestRankingFromUseCase(t *testing.T) {
	ranking := &usecase.Ranking{
		Mode: usecase.RankGroup,
		Podium: []usecase.RankedMember{
			{Rank: 1, ID: "member2", Name: "Bob", Amount: decimal.NewFromInt(90)},
		},
		Full: []usecase.RankedMember{
			{Rank: 1, ID: "member2", Name: "Bob", Amount: decimal.NewFromInt(90)},
			{Rank: 2, ID: "member1", Name: "Alice", Amount: decimal.NewFromInt(10)},
		},
	}

	resp := RankingFromUseCase(ranking)
	if resp.Mode != "group" || len(resp.Podium) != 1 || len(resp.Full) != 2 {
		t.Fatalf("unexpected ranking response: %+v", resp)
	}
	if resp.Full[1].Name != "Alice" || resp.Full[1].Rank != 2 {
		t.Fatalf("unexpected ranking rows: %+v", resp.Full)
	}
}

func TestConsistencyFromUseCase(t *testing.T) {
	now := time.Now()
	report := &usecase.ConsistencyReport{
		Members: []usecase.MemberDrift{
			{
				MemberID:          "member1",
				RecordedBalance:   decimal.NewFromInt(100),
				CalculatedBalance: decimal.NewFromInt(90),
				Difference:        decimal.NewFromInt(10),
				Consistent:        false,
			},
		},
		Consistent: false,
		CheckedAt:  now,
	}

	resp := ConsistencyFromUseCase(report)
	if resp.Consistent || len(resp.Members) != 1 {
		t.Fatalf("unexpected consistency response: %+v", resp)
	}
	if resp.Members[0].MemberID != "member1" || resp.Members[0].Consistent {
		t.Fatalf("unexpected drift row: %+v", resp.Members[0])
	}
}
