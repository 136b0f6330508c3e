package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cashwell/cashwell/internal/domain"
)

// LedgerState owns the in-memory ledger and its persistence. All
// mutations funnel through Mutate, which serializes them under one lock
// (the service acts as a single logical writer) and flushes the whole
// state to the store in one transaction after each successful change.
type LedgerState struct {
	mu     sync.RWMutex
	ledger *domain.Ledger

	entries EntryRepository
	members MemberRepository
	wallet  WalletRepository
	labels  LabelRepository
	txm     TransactionManager
	logger  zerolog.Logger
}

// NewLedgerState creates a LedgerState around an empty ledger. Call Load
// before serving.
func NewLedgerState(
	entries EntryRepository,
	members MemberRepository,
	wallet WalletRepository,
	labels LabelRepository,
	txm TransactionManager,
	logger zerolog.Logger,
) *LedgerState {
	return &LedgerState{
		ledger:  domain.NewLedger(),
		entries: entries,
		members: members,
		wallet:  wallet,
		labels:  labels,
		txm:     txm,
		logger:  logger,
	}
}

// Load reads the full snapshot from the store. An empty member table is
// seeded with the default roster (first boot). Load must complete before
// the first Mutate or View.
func (s *LedgerState) Load(ctx context.Context) error {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	members, err := s.members.List(ctx)
	if err != nil {
		return fmt.Errorf("load members: %w", err)
	}
	assets, err := s.wallet.List(ctx)
	if err != nil {
		return fmt.Errorf("load wallet assets: %w", err)
	}
	labels, err := s.labels.List(ctx)
	if err != nil {
		return fmt.Errorf("load asset labels: %w", err)
	}

	seeded := false
	if len(members) == 0 {
		members = domain.DefaultRoster()
		seeded = true
	}

	s.mu.Lock()
	s.ledger = &domain.Ledger{
		Entries:      entries,
		Members:      members,
		WalletAssets: assets,
		AssetLabels:  labels,
	}
	s.mu.Unlock()

	s.logger.Info().
		Int("entries", len(entries)).
		Int("members", len(members)).
		Int("wallet_assets", len(assets)).
		Bool("roster_seeded", seeded).
		Msg("ledger snapshot loaded")

	if seeded {
		return s.persist(ctx, s.snapshot())
	}
	return nil
}

// Mutate runs fn against a clone of the current ledger and, when fn
// reports a change, persists the clone and swaps it in. A failed fn or a
// failed persist leaves the in-memory ledger untouched, so memory and
// store never diverge.
func (s *LedgerState) Mutate(ctx context.Context, fn func(l *domain.Ledger) (changed bool, err error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.ledger.Clone()
	changed, err := fn(next)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.ledger = next
	return nil
}

// View runs fn with read access to the current ledger. fn must not retain
// or mutate anything it is handed.
func (s *LedgerState) View(fn func(l *domain.Ledger)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.ledger)
}

func (s *LedgerState) snapshot() *domain.Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger
}

// persist replaces every collection in the store with the ledger's
// contents inside a single transaction.
func (s *LedgerState) persist(ctx context.Context, l *domain.Ledger) error {
	tx, err := s.txm.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.entries.ReplaceAll(ctx, tx, l.Entries); err != nil {
		return fmt.Errorf("persist entries: %w", err)
	}
	if err := s.members.ReplaceAll(ctx, tx, l.Members); err != nil {
		return fmt.Errorf("persist members: %w", err)
	}
	if err := s.wallet.ReplaceAll(ctx, tx, l.WalletAssets); err != nil {
		return fmt.Errorf("persist wallet assets: %w", err)
	}
	if err := s.labels.ReplaceAll(ctx, tx, l.AssetLabels); err != nil {
		return fmt.Errorf("persist asset labels: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot tx: %w", err)
	}

	s.logger.Debug().
		Int("entries", len(l.Entries)).
		Msg("ledger snapshot persisted")
	return nil
}
