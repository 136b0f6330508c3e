package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	adaptershttp "github.com/cashwell/cashwell/internal/adapter/http"
	"github.com/cashwell/cashwell/internal/adapter/http/dto"
	"github.com/cashwell/cashwell/internal/adapter/http/handler"
	postgresrepo "github.com/cashwell/cashwell/internal/adapter/repository/postgres"
	redisrepo "github.com/cashwell/cashwell/internal/adapter/repository/redis"
	"github.com/cashwell/cashwell/internal/domain"
	infraredis "github.com/cashwell/cashwell/internal/infrastructure/redis"
	"github.com/cashwell/cashwell/internal/usecase"
	"github.com/cashwell/cashwell/internal/usecase/mocks"
	"github.com/cashwell/cashwell/tests/testutil"
)

type env struct {
	db     *testutil.TestDB
	state  *usecase.LedgerState
	router http.Handler
}

func newEnv(t *testing.T, ctx context.Context) *env {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	state, router := buildStack(t, ctx, testDB)
	return &env{db: testDB, state: state, router: router}
}

// buildStack wires repositories, state and the router over the test
// database, mirroring cmd/server.
func buildStack(t *testing.T, ctx context.Context, testDB *testutil.TestDB) (*usecase.LedgerState, http.Handler) {
	t.Helper()

	pool := testDB.Pool
	retrier := postgresrepo.NewRetrier(zerolog.Nop())
	state := usecase.NewLedgerState(
		postgresrepo.NewEntryRepository(pool, retrier),
		postgresrepo.NewMemberRepository(pool, retrier),
		postgresrepo.NewWalletRepository(pool, retrier),
		postgresrepo.NewLabelRepository(pool, retrier),
		postgresrepo.NewTxManager(pool),
		zerolog.Nop(),
	)
	if err := state.Load(ctx); err != nil {
		t.Fatalf("failed to load ledger state: %v", err)
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	idGen := postgresrepo.NewULIDGenerator()
	walletUC := usecase.NewWalletUseCase(
		state, idGen, mocks.NewMockPriceSource(), domain.PrimaryMemberID, zerolog.Nop(),
	)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		EntryHandler:     handler.NewEntryHandler(usecase.NewEntryUseCase(state, idGen)),
		MemberHandler:    handler.NewMemberHandler(usecase.NewMemberUseCase(state)),
		StatsHandler:     handler.NewStatsHandler(usecase.NewStatsUseCase(state, domain.PrimaryMemberID)),
		WalletHandler:    handler.NewWalletHandler(walletUC),
		LedgerHandler:    handler.NewLedgerHandler(usecase.NewConsistencyUseCase(state, domain.PrimaryMemberID)),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: redisrepo.NewIdempotencyStore(redisClient),
		Logger:           zerolog.Nop(),
	})
	return state, router
}

func (e *env) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

func TestSnapshotRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	e := newEnv(t, ctx)

	// First boot seeds the default roster.
	if got := e.db.CountRows(ctx, "members"); got != 3 {
		t.Fatalf("expected seeded roster of 3 members, got %d", got)
	}

	w := e.request(t, http.MethodPost, "/api/v1/entries", dto.CreateEntryRequest{
		Owner:     "group",
		Type:      "profit",
		Asset:     "poker",
		Amount:    decimal.NewFromInt(100),
		Date:      "2026-03-04",
		MemberIDs: []string{"member1", "member2"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// A fresh state over the same database sees the whole snapshot.
	reloaded, _ := buildStack(t, ctx, e.db)
	reloaded.View(func(l *domain.Ledger) {
		if len(l.Entries) != 1 {
			t.Fatalf("expected 1 entry after reload, got %d", len(l.Entries))
		}
		m1, err := l.Member("member1")
		if err != nil {
			t.Fatalf("member1 missing after reload: %v", err)
		}
		if !m1.Balance.Equal(decimal.NewFromInt(50)) {
			t.Fatalf("expected member1 balance 50 after reload, got %s", m1.Balance)
		}
		m3, _ := l.Member("member3")
		if !m3.Balance.IsZero() {
			t.Fatalf("expected member3 untouched, got %s", m3.Balance)
		}
	})
}

func TestLegacyGroupLossMigrationPersists(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	e := newEnv(t, ctx)

	// A pre-migration snapshot: a group loss whose shares were applied.
	err := e.state.Mutate(ctx, func(l *domain.Ledger) (bool, error) {
		entry := &domain.Entry{
			ID: testutil.GenerateID(), Owner: domain.OwnerGroup, Type: domain.TypeLoss,
			Asset: "buy-in", Amount: decimal.NewFromInt(300),
			Date:      domain.MustParseDate("2025-11-20"),
			MemberIDs: []string{"member1", "member2", "member3"},
		}
		l.Entries = append(l.Entries, entry)
		domain.Reconcile(l, nil, entry)
		return true, nil
	})
	if err != nil {
		t.Fatalf("failed to seed legacy entry: %v", err)
	}

	migrationUC := usecase.NewMigrationUseCase(e.state, domain.PrimaryMemberID, zerolog.Nop())
	if err := migrationUC.Run(ctx); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	// The rewrite must survive a full reload.
	reloaded, _ := buildStack(t, ctx, e.db)
	reloaded.View(func(l *domain.Ledger) {
		if len(l.Entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(l.Entries))
		}
		if l.Entries[0].Type != domain.TypeTransfer {
			t.Fatalf("expected rewritten transfer, got %s", l.Entries[0].Type)
		}
		m1, _ := l.Member("member1")
		if !m1.Balance.Equal(decimal.NewFromInt(300)) {
			t.Fatalf("expected member1 credited 300, got %s", m1.Balance)
		}
	})

	// A second run is a no-op.
	if err := migrationUC.Run(ctx); err != nil {
		t.Fatalf("second migration run failed: %v", err)
	}
}

func TestWalletAndLabelsPersist(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	e := newEnv(t, ctx)

	w := e.request(t, http.MethodPost, "/api/v1/wallet/assets", dto.CreateAssetRequest{
		Type:        "crypto",
		Name:        "Bitcoin stash",
		Value:       decimal.NewFromInt(500),
		Symbol:      "btc",
		TokenAmount: decimal.RequireFromString("0.008"),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = e.request(t, http.MethodPost, "/api/v1/entries", dto.CreateEntryRequest{
		Owner:  "myself",
		Type:   "profit",
		Asset:  "Backgammon",
		Amount: decimal.NewFromInt(25),
		Date:   "2026-03-04",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	reloaded, _ := buildStack(t, ctx, e.db)
	reloaded.View(func(l *domain.Ledger) {
		if len(l.WalletAssets) != 1 {
			t.Fatalf("expected 1 wallet asset, got %d", len(l.WalletAssets))
		}
		asset := l.WalletAssets[0]
		if asset.Symbol != "BTC" {
			t.Fatalf("expected upper-cased symbol, got %q", asset.Symbol)
		}
		if asset.OwnerID != domain.PrimaryMemberID {
			t.Fatalf("expected primary owner default, got %q", asset.OwnerID)
		}
		if len(l.AssetLabels) != 1 || l.AssetLabels[0] != "Backgammon" {
			t.Fatalf("expected remembered asset label, got %v", l.AssetLabels)
		}
	})
}

func TestIdempotentEntryCreation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	e := newEnv(t, ctx)

	body := dto.CreateEntryRequest{
		Owner:  "myself",
		Type:   "profit",
		Asset:  "stocks",
		Amount: decimal.NewFromInt(75),
		Date:   "2026-03-04",
	}

	key := "entry-once-" + testutil.GenerateID()
	first := e.requestWithKey(t, key, body)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", first.Code, first.Body.String())
	}

	second := e.requestWithKey(t, key, body)
	if second.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatalf("expected replayed response, got headers %v", second.Header())
	}

	if got := e.db.CountRows(ctx, "entries"); got != 1 {
		t.Fatalf("expected a single persisted entry, got %d", got)
	}
}

func (e *env) requestWithKey(t *testing.T, key string, body dto.CreateEntryRequest) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("failed to encode body: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, "/api/v1/entries", &buf)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Idempotency-Key", key)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}
