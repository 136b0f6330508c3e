package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashwell/cashwell/internal/domain"
	"github.com/cashwell/cashwell/internal/usecase"
)

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID           string          `json:"id"`
	Owner        string          `json:"owner"`
	Type         string          `json:"type"`
	Asset        string          `json:"asset"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Description  string          `json:"description,omitempty"`
	MemberIDs    []string        `json:"member_ids,omitempty"`
	AssetType    string          `json:"asset_type,omitempty"`
	CryptoSymbol string          `json:"crypto_symbol,omitempty"`
	TokenAmount  decimal.Decimal `json:"token_amount,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:           e.ID,
		Owner:        string(e.Owner),
		Type:         string(e.Type),
		Asset:        e.Asset,
		Amount:       e.Amount,
		Date:         e.Date.String(),
		Description:  e.Description,
		MemberIDs:    e.MemberIDs,
		AssetType:    string(e.AssetType),
		CryptoSymbol: e.CryptoSymbol,
		TokenAmount:  e.TokenAmount,
		CreatedAt:    e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// MemberResponse represents a roster member in API responses.
type MemberResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// MemberFromDomain converts a domain member to a response.
func MemberFromDomain(m *domain.Member) *MemberResponse {
	return &MemberResponse{ID: m.ID, Name: m.Name, Balance: m.Balance}
}

// MembersFromDomain converts domain members to responses.
func MembersFromDomain(members []*domain.Member) []*MemberResponse {
	result := make([]*MemberResponse, len(members))
	for i, m := range members {
		result[i] = MemberFromDomain(m)
	}
	return result
}

// AssetResponse represents a wallet asset in API responses.
type AssetResponse struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	Symbol      string          `json:"symbol,omitempty"`
	TokenAmount decimal.Decimal `json:"token_amount,omitempty"`
	Color       string          `json:"color,omitempty"`
}

// AssetFromDomain converts a domain wallet asset to a response.
func AssetFromDomain(a *domain.WalletAsset) *AssetResponse {
	return &AssetResponse{
		ID:          a.ID,
		OwnerID:     a.OwnerID,
		Type:        string(a.Type),
		Name:        a.Name,
		Value:       a.Value,
		Symbol:      a.Symbol,
		TokenAmount: a.TokenAmount,
		Color:       a.Color,
	}
}

// AssetsFromDomain converts domain wallet assets to responses.
func AssetsFromDomain(assets []*domain.WalletAsset) []*AssetResponse {
	result := make([]*AssetResponse, len(assets))
	for i, a := range assets {
		result[i] = AssetFromDomain(a)
	}
	return result
}

// OverviewResponse represents the stats overview.
type OverviewResponse struct {
	Profit decimal.Decimal `json:"profit"`
	Loss   decimal.Decimal `json:"loss"`
	Net    decimal.Decimal `json:"net"`
	Count  int             `json:"count"`
}

// OverviewFromUseCase converts an overview to a response.
func OverviewFromUseCase(ov *usecase.Overview) *OverviewResponse {
	return &OverviewResponse{Profit: ov.Profit, Loss: ov.Loss, Net: ov.Net, Count: ov.Count}
}

// SeriesPointResponse is one day of a member series.
type SeriesPointResponse struct {
	Date string          `json:"date"`
	Net  decimal.Decimal `json:"net"`
}

// MemberStatsResponse represents a member's period stats.
type MemberStatsResponse struct {
	MemberID       string                     `json:"member_id"`
	Period         string                     `json:"period"`
	GroupAmount    decimal.Decimal            `json:"group_amount"`
	PersonalAmount decimal.Decimal            `json:"personal_amount"`
	TotalAmount    decimal.Decimal            `json:"total_amount"`
	Assets         map[string]decimal.Decimal `json:"assets"`
	Series         []SeriesPointResponse      `json:"series"`
}

// MemberStatsFromUseCase converts member stats to a response.
func MemberStatsFromUseCase(ms *usecase.MemberStats) *MemberStatsResponse {
	series := make([]SeriesPointResponse, len(ms.Series))
	for i, p := range ms.Series {
		series[i] = SeriesPointResponse{Date: p.Date.String(), Net: p.Net}
	}
	return &MemberStatsResponse{
		MemberID:       ms.MemberID,
		Period:         string(ms.Period),
		GroupAmount:    ms.GroupAmount,
		PersonalAmount: ms.PersonalAmount,
		TotalAmount:    ms.TotalAmount,
		Assets:         ms.Assets,
		Series:         series,
	}
}

// RecordResponse is one best-ever bucket.
type RecordResponse struct {
	Key string          `json:"key,omitempty"`
	Net decimal.Decimal `json:"net"`
}

// RecordsResponse represents the records view.
type RecordsResponse struct {
	BestDay   RecordResponse `json:"best_day"`
	BestMonth RecordResponse `json:"best_month"`
	BestYear  RecordResponse `json:"best_year"`
}

// RecordsFromUseCase converts records to a response.
func RecordsFromUseCase(rec *usecase.Records) *RecordsResponse {
	conv := func(r usecase.Record) RecordResponse {
		return RecordResponse{Key: r.Key, Net: r.Net}
	}
	return &RecordsResponse{
		BestDay:   conv(rec.BestDay),
		BestMonth: conv(rec.BestMonth),
		BestYear:  conv(rec.BestYear),
	}
}

// RankedMemberResponse is one ranking row.
type RankedMemberResponse struct {
	Rank   int             `json:"rank"`
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// RankingResponse represents a ranking.
type RankingResponse struct {
	Mode   string                 `json:"mode"`
	Podium []RankedMemberResponse `json:"podium"`
	Full   []RankedMemberResponse `json:"full"`
}

// RankingFromUseCase converts a ranking to a response.
func RankingFromUseCase(r *usecase.Ranking) *RankingResponse {
	conv := func(rows []usecase.RankedMember) []RankedMemberResponse {
		out := make([]RankedMemberResponse, len(rows))
		for i, row := range rows {
			out[i] = RankedMemberResponse{Rank: row.Rank, ID: row.ID, Name: row.Name, Amount: row.Amount}
		}
		return out
	}
	return &RankingResponse{
		Mode:   string(r.Mode),
		Podium: conv(r.Podium),
		Full:   conv(r.Full),
	}
}

// FundsBreakdownResponse is one group-pot source asset.
type FundsBreakdownResponse struct {
	Asset     string          `json:"asset"`
	Symbol    string          `json:"symbol,omitempty"`
	DollarsIn decimal.Decimal `json:"dollars_in"`
	TokensIn  decimal.Decimal `json:"tokens_in"`
	Valuation decimal.Decimal `json:"valuation"`
}

// GroupFundsResponse represents the group pot summary.
type GroupFundsResponse struct {
	Total     decimal.Decimal          `json:"total"`
	Breakdown []FundsBreakdownResponse `json:"breakdown"`
}

// GroupFundsFromUseCase converts group funds to a response.
func GroupFundsFromUseCase(f *usecase.GroupFunds) *GroupFundsResponse {
	breakdown := make([]FundsBreakdownResponse, len(f.Breakdown))
	for i, b := range f.Breakdown {
		breakdown[i] = FundsBreakdownResponse{
			Asset:     b.Asset,
			Symbol:    b.Symbol,
			DollarsIn: b.DollarsIn,
			TokensIn:  b.TokensIn,
			Valuation: b.Valuation,
		}
	}
	return &GroupFundsResponse{Total: f.Total, Breakdown: breakdown}
}

// MemberDriftResponse is one member's consistency row.
type MemberDriftResponse struct {
	MemberID          string          `json:"member_id"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	Consistent        bool            `json:"consistent"`
}

// ConsistencyResponse represents the consistency report.
type ConsistencyResponse struct {
	Members    []MemberDriftResponse `json:"members"`
	Consistent bool                  `json:"consistent"`
	CheckedAt  time.Time             `json:"checked_at"`
}

// ConsistencyFromUseCase converts a consistency report to a response.
func ConsistencyFromUseCase(r *usecase.ConsistencyReport) *ConsistencyResponse {
	members := make([]MemberDriftResponse, len(r.Members))
	for i, m := range r.Members {
		members[i] = MemberDriftResponse{
			MemberID:          m.MemberID,
			RecordedBalance:   m.RecordedBalance,
			CalculatedBalance: m.CalculatedBalance,
			Difference:        m.Difference,
			Consistent:        m.Consistent,
		}
	}
	return &ConsistencyResponse{Members: members, Consistent: r.Consistent, CheckedAt: r.CheckedAt}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
