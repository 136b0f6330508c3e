package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cashwell/cashwell/internal/domain"
	"github.com/cashwell/cashwell/internal/usecase"
	"github.com/shopspring/decimal"
)

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	Entries []*domain.Entry

	ListFunc       func(ctx context.Context) ([]*domain.Entry, error)
	ReplaceAllFunc func(ctx context.Context, tx usecase.Transaction, entries []*domain.Entry) error
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

func (m *MockEntryRepository) List(ctx context.Context) ([]*domain.Entry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Entry(nil), m.Entries...), nil
}

func (m *MockEntryRepository) ReplaceAll(ctx context.Context, tx usecase.Transaction, entries []*domain.Entry) error {
	if m.ReplaceAllFunc != nil {
		return m.ReplaceAllFunc(ctx, tx, entries)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append([]*domain.Entry(nil), entries...)
	return nil
}

// MockMemberRepository is a mock implementation of MemberRepository.
type MockMemberRepository struct {
	mu      sync.RWMutex
	Members []*domain.Member

	ListFunc       func(ctx context.Context) ([]*domain.Member, error)
	ReplaceAllFunc func(ctx context.Context, tx usecase.Transaction, members []*domain.Member) error
}

func NewMockMemberRepository() *MockMemberRepository {
	return &MockMemberRepository{}
}

func (m *MockMemberRepository) List(ctx context.Context) ([]*domain.Member, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Member(nil), m.Members...), nil
}

func (m *MockMemberRepository) ReplaceAll(ctx context.Context, tx usecase.Transaction, members []*domain.Member) error {
	if m.ReplaceAllFunc != nil {
		return m.ReplaceAllFunc(ctx, tx, members)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Members = append([]*domain.Member(nil), members...)
	return nil
}

// MockWalletRepository is a mock implementation of WalletRepository.
type MockWalletRepository struct {
	mu     sync.RWMutex
	Assets []*domain.WalletAsset

	ListFunc       func(ctx context.Context) ([]*domain.WalletAsset, error)
	ReplaceAllFunc func(ctx context.Context, tx usecase.Transaction, assets []*domain.WalletAsset) error
}

func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{}
}

func (m *MockWalletRepository) List(ctx context.Context) ([]*domain.WalletAsset, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.WalletAsset(nil), m.Assets...), nil
}

func (m *MockWalletRepository) ReplaceAll(ctx context.Context, tx usecase.Transaction, assets []*domain.WalletAsset) error {
	if m.ReplaceAllFunc != nil {
		return m.ReplaceAllFunc(ctx, tx, assets)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Assets = append([]*domain.WalletAsset(nil), assets...)
	return nil
}

// MockLabelRepository is a mock implementation of LabelRepository.
type MockLabelRepository struct {
	mu     sync.RWMutex
	Labels []string

	ListFunc       func(ctx context.Context) ([]string, error)
	ReplaceAllFunc func(ctx context.Context, tx usecase.Transaction, labels []string) error
}

func NewMockLabelRepository() *MockLabelRepository {
	return &MockLabelRepository{}
}

func (m *MockLabelRepository) List(ctx context.Context) ([]string, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.Labels...), nil
}

func (m *MockLabelRepository) ReplaceAll(ctx context.Context, tx usecase.Transaction, labels []string) error {
	if m.ReplaceAllFunc != nil {
		return m.ReplaceAllFunc(ctx, tx, labels)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Labels = append([]string(nil), labels...)
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockPriceSource is a mock implementation of PriceSource.
type MockPriceSource struct {
	mu     sync.RWMutex
	Prices map[string]decimal.Decimal

	PriceFunc func(ctx context.Context, symbol string) (decimal.Decimal, error)
}

func NewMockPriceSource() *MockPriceSource {
	return &MockPriceSource{
		Prices: make(map[string]decimal.Decimal),
	}
}

func (m *MockPriceSource) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if m.PriceFunc != nil {
		return m.PriceFunc(ctx, symbol)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.Prices[symbol]; ok {
		return p, nil
	}
	return decimal.Zero, domain.ErrPriceUnavailable
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
