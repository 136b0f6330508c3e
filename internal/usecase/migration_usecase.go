package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cashwell/cashwell/internal/domain"
)

// MigrationUseCase runs one-time data rewrites against the loaded
// snapshot before the service starts serving.
type MigrationUseCase struct {
	state   *LedgerState
	primary string
	logger  zerolog.Logger
}

// NewMigrationUseCase creates a new MigrationUseCase.
func NewMigrationUseCase(state *LedgerState, primaryMemberID string, logger zerolog.Logger) *MigrationUseCase {
	return &MigrationUseCase{state: state, primary: primaryMemberID, logger: logger}
}

// Run applies all pending data migrations. It persists only when a
// migration changed something, so a clean snapshot boots without a write.
// Safe to run on every start: each migration is idempotent.
func (uc *MigrationUseCase) Run(ctx context.Context) error {
	rewritten := 0
	err := uc.state.Mutate(ctx, func(l *domain.Ledger) (bool, error) {
		rewritten = domain.MigrateGroupLosses(l, uc.primary)
		return rewritten > 0, nil
	})
	if err != nil {
		return err
	}
	if rewritten > 0 {
		uc.logger.Info().
			Int("rewritten", rewritten).
			Msg("migrated legacy group losses to transfers")
	}
	return nil
}
