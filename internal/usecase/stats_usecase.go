package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashwell/cashwell/internal/domain"
)

// StatsUseCase computes read-only aggregates over the ledger. Nothing
// here mutates state.
type StatsUseCase struct {
	state   *LedgerState
	primary string
	now     func() time.Time
}

// NewStatsUseCase creates a new StatsUseCase.
func NewStatsUseCase(state *LedgerState, primaryMemberID string) *StatsUseCase {
	return &StatsUseCase{
		state:   state,
		primary: primaryMemberID,
		now:     time.Now,
	}
}

// Overview summarizes entries matching an owner and period filter.
type Overview struct {
	Profit decimal.Decimal
	Loss   decimal.Decimal
	Net    decimal.Decimal
	Count  int
}

// OverviewInput represents filters for the overview.
type OverviewInput struct {
	Owner  string
	Period string
}

// GetOverview returns profit, loss, net, and entry count for the window.
// Transfers count toward Count but carry no profit or loss.
func (uc *StatsUseCase) GetOverview(ctx context.Context, input OverviewInput) (*Overview, error) {
	var owner domain.Owner
	if input.Owner != "" {
		parsed, err := domain.ParseOwner(input.Owner)
		if err != nil {
			return nil, err
		}
		owner = parsed
	}
	period, err := domain.ParsePeriod(input.Period)
	if err != nil {
		return nil, err
	}
	now := uc.now()

	ov := &Overview{Profit: decimal.Zero, Loss: decimal.Zero, Net: decimal.Zero}
	uc.state.View(func(l *domain.Ledger) {
		for _, e := range l.Entries {
			if owner != "" && e.Owner != owner {
				continue
			}
			if !period.Contains(e.Date, now) {
				continue
			}
			ov.Count++
			switch e.Type {
			case domain.TypeProfit:
				ov.Profit = ov.Profit.Add(e.Amount)
			case domain.TypeLoss:
				ov.Loss = ov.Loss.Add(e.Amount)
			}
		}
	})
	ov.Net = ov.Profit.Sub(ov.Loss)
	return ov, nil
}

// memberDelta is the signed effect of one entry on one member: the full
// amount for the member's own personal entries, an equal share for group
// entries involving them. Transfers back-project as a positive share, the
// money the member put into the pot. Non-involving entries are zero.
func memberDelta(l *domain.Ledger, e *domain.Entry, memberID, primaryID string) decimal.Decimal {
	if !e.Involves(memberID, primaryID) {
		return decimal.Zero
	}
	if e.Owner == domain.OwnerSelf {
		return e.SignedAmount()
	}
	share := e.Share(l.RosterSize())
	switch e.Type {
	case domain.TypeProfit, domain.TypeTransfer:
		return share
	case domain.TypeLoss:
		return share.Neg()
	}
	return decimal.Zero
}

// GetDailyProfit returns the primary member's net for today: personal
// entries in full plus shares of involving group entries. Transfers move
// money, they don't earn it, so they are excluded.
func (uc *StatsUseCase) GetDailyProfit(ctx context.Context) decimal.Decimal {
	today := domain.DateOf(uc.now())
	total := decimal.Zero
	uc.state.View(func(l *domain.Ledger) {
		for _, e := range l.Entries {
			if e.Date != today || e.Type == domain.TypeTransfer {
				continue
			}
			total = total.Add(memberDelta(l, e, uc.primary, uc.primary))
		}
	})
	return total
}

// SeriesPoint is one day of a member's signed net.
type SeriesPoint struct {
	Date domain.Date
	Net  decimal.Decimal
}

// MemberStats is a member's aggregate over a period.
type MemberStats struct {
	MemberID       string
	Period         domain.Period
	GroupAmount    decimal.Decimal
	PersonalAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	Assets         map[string]decimal.Decimal
	Series         []SeriesPoint
}

// GetMemberStats returns a member's period aggregate: accumulated group
// shares, the primary member's personal net, a per-asset breakdown, and a
// per-day series. PersonalAmount is zero for everyone but the primary
// member, whose personal ledger it is.
func (uc *StatsUseCase) GetMemberStats(ctx context.Context, memberID, periodStr string) (*MemberStats, error) {
	period, err := domain.ParsePeriod(periodStr)
	if err != nil {
		return nil, err
	}
	now := uc.now()

	stats := &MemberStats{
		MemberID:       memberID,
		Period:         period,
		GroupAmount:    decimal.Zero,
		PersonalAmount: decimal.Zero,
		TotalAmount:    decimal.Zero,
		Assets:         make(map[string]decimal.Decimal),
	}
	daily := make(map[domain.Date]decimal.Decimal)

	var findErr error
	uc.state.View(func(l *domain.Ledger) {
		if _, findErr = l.Member(memberID); findErr != nil {
			return
		}
		for _, e := range l.Entries {
			if !period.Contains(e.Date, now) {
				continue
			}
			delta := memberDelta(l, e, memberID, uc.primary)
			if delta.IsZero() {
				continue
			}
			if e.Owner == domain.OwnerSelf {
				stats.PersonalAmount = stats.PersonalAmount.Add(delta)
			} else {
				stats.GroupAmount = stats.GroupAmount.Add(delta)
			}
			stats.Assets[e.Asset] = stats.Assets[e.Asset].Add(delta)
			daily[e.Date] = daily[e.Date].Add(delta)
		}
	})
	if findErr != nil {
		return nil, findErr
	}

	stats.TotalAmount = stats.GroupAmount.Add(stats.PersonalAmount)
	for d, net := range daily {
		stats.Series = append(stats.Series, SeriesPoint{Date: d, Net: net})
	}
	sort.Slice(stats.Series, func(i, j int) bool {
		return stats.Series[i].Date.Before(stats.Series[j].Date)
	})
	return stats, nil
}

// Record is a best-ever bucket net, floored at zero.
type Record struct {
	Key string
	Net decimal.Decimal
}

// Records are the primary member's best day, month, and year.
type Records struct {
	BestDay   Record
	BestMonth Record
	BestYear  Record
}

// GetRecords returns the primary member's best day, month, and year nets.
// Buckets that never went positive report zero; a record is never
// negative. Transfers contribute nothing.
func (uc *StatsUseCase) GetRecords(ctx context.Context) *Records {
	days := make(map[string]decimal.Decimal)
	months := make(map[string]decimal.Decimal)
	years := make(map[string]decimal.Decimal)

	uc.state.View(func(l *domain.Ledger) {
		for _, e := range l.Entries {
			if e.Type == domain.TypeTransfer {
				continue
			}
			delta := memberDelta(l, e, uc.primary, uc.primary)
			if delta.IsZero() {
				continue
			}
			day := e.Date.String()
			days[day] = days[day].Add(delta)
			months[day[:7]] = months[day[:7]].Add(delta)
			years[day[:4]] = years[day[:4]].Add(delta)
		}
	})

	return &Records{
		BestDay:   bestBucket(days),
		BestMonth: bestBucket(months),
		BestYear:  bestBucket(years),
	}
}

func bestBucket(buckets map[string]decimal.Decimal) Record {
	best := Record{Net: decimal.Zero}
	for key, net := range buckets {
		if net.GreaterThan(best.Net) {
			best = Record{Key: key, Net: net}
		}
	}
	return best
}

// RankingMode selects what a ranking measures.
type RankingMode string

const (
	// RankGroup ranks members by group balance alone.
	RankGroup RankingMode = "group"
	// RankRich adds the primary member's personal net on top of their
	// group balance.
	RankRich RankingMode = "rich"
)

// RankedMember is one row of a ranking.
type RankedMember struct {
	Rank   int
	ID     string
	Name   string
	Amount decimal.Decimal
}

// Ranking is a podium (top three) plus the full ordered list.
type Ranking struct {
	Mode   RankingMode
	Podium []RankedMember
	Full   []RankedMember
}

// GetRankings orders members by balance, descending. Ties keep roster
// order. Mode "rich" folds the primary member's personal net into their
// group balance.
func (uc *StatsUseCase) GetRankings(ctx context.Context, mode string) (*Ranking, error) {
	var m RankingMode
	switch RankingMode(mode) {
	case RankGroup, "":
		m = RankGroup
	case RankRich:
		m = RankRich
	default:
		return nil, domain.ErrInvalidRankMode
	}

	var rows []RankedMember
	uc.state.View(func(l *domain.Ledger) {
		personal := decimal.Zero
		if m == RankRich {
			for _, e := range l.Entries {
				if e.Owner == domain.OwnerSelf {
					personal = personal.Add(e.SignedAmount())
				}
			}
		}
		for _, mem := range l.Members {
			amount := mem.Balance
			if m == RankRich && mem.ID == uc.primary {
				amount = amount.Add(personal)
			}
			rows = append(rows, RankedMember{ID: mem.ID, Name: mem.Name, Amount: amount})
		}
	})

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount.GreaterThan(rows[j].Amount)
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	podium := rows
	if len(podium) > 3 {
		podium = podium[:3]
	}
	return &Ranking{Mode: m, Podium: podium, Full: rows}, nil
}

// MonthlyNet returns the primary member's signed net per month of a
// year, January first.
func (uc *StatsUseCase) MonthlyNet(ctx context.Context, year int) [12]decimal.Decimal {
	var out [12]decimal.Decimal
	uc.state.View(func(l *domain.Ledger) {
		for _, e := range l.Entries {
			if e.Date.Year() != year || e.Type == domain.TypeTransfer {
				continue
			}
			delta := memberDelta(l, e, uc.primary, uc.primary)
			m := int(e.Date.Month()) - 1
			out[m] = out[m].Add(delta)
		}
	})
	return out
}
