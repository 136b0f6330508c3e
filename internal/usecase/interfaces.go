package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashwell/cashwell/internal/domain"
)

// EntryRepository persists the entry collection. The store is
// whole-of-state: every mutation replaces the full collection inside one
// transaction.
type EntryRepository interface {
	List(ctx context.Context) ([]*domain.Entry, error)
	ReplaceAll(ctx context.Context, tx Transaction, entries []*domain.Entry) error
}

// MemberRepository persists the member roster with balances.
type MemberRepository interface {
	List(ctx context.Context) ([]*domain.Member, error)
	ReplaceAll(ctx context.Context, tx Transaction, members []*domain.Member) error
}

// WalletRepository persists wallet assets.
type WalletRepository interface {
	List(ctx context.Context) ([]*domain.WalletAsset, error)
	ReplaceAll(ctx context.Context, tx Transaction, assets []*domain.WalletAsset) error
}

// LabelRepository persists the custom asset label list.
type LabelRepository interface {
	List(ctx context.Context) ([]string, error)
	ReplaceAll(ctx context.Context, tx Transaction, labels []string) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// PriceSource returns the current USD price for a crypto symbol.
type PriceSource interface {
	Price(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
