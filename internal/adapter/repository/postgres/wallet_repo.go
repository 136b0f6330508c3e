package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cashwell/cashwell/internal/domain"
	"github.com/cashwell/cashwell/internal/usecase"
)

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(pool *pgxpool.Pool, retrier *Retrier) *WalletRepository {
	return &WalletRepository{pool: pool, retrier: retrier}
}

// List loads all wallet assets in stored order.
func (r *WalletRepository) List(ctx context.Context) ([]*domain.WalletAsset, error) {
	var assets []*domain.WalletAsset
	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx, `
			SELECT id, owner_id, asset_type, name, value, symbol, token_amount, color
			FROM wallet_assets
			ORDER BY position`)
		if err != nil {
			return err
		}
		defer rows.Close()

		assets = assets[:0]
		for rows.Next() {
			var (
				a           domain.WalletAsset
				assetType   string
				value       pgtype.Numeric
				tokenAmount pgtype.Numeric
			)
			err := rows.Scan(&a.ID, &a.OwnerID, &assetType, &a.Name,
				&value, &a.Symbol, &tokenAmount, &a.Color)
			if err != nil {
				return err
			}
			a.Type = domain.AssetType(assetType)
			a.Value = numericToDecimal(value)
			a.TokenAmount = numericToDecimal(tokenAmount)
			// Rows written before ownership existed belong to the
			// primary member.
			if a.OwnerID == "" {
				a.OwnerID = domain.PrimaryMemberID
			}
			assets = append(assets, &a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list wallet assets: %w", err)
	}
	return assets, nil
}

// ReplaceAll swaps the stored assets for the given ones inside tx.
func (r *WalletRepository) ReplaceAll(ctx context.Context, tx usecase.Transaction, assets []*domain.WalletAsset) error {
	pgxTx := tx.(*Tx).PgxTx()

	if _, err := pgxTx.Exec(ctx, `DELETE FROM wallet_assets`); err != nil {
		return fmt.Errorf("clear wallet assets: %w", err)
	}

	batch := &pgx.Batch{}
	for i, a := range assets {
		batch.Queue(`
			INSERT INTO wallet_assets (id, owner_id, asset_type, name, value, symbol, token_amount, color, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			a.ID, a.OwnerID, string(a.Type), a.Name,
			decimalToNumeric(a.Value), a.Symbol, decimalToNumeric(a.TokenAmount),
			a.Color, i,
		)
	}

	results := pgxTx.SendBatch(ctx, batch)
	defer results.Close()
	for range assets {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert wallet asset: %w", err)
		}
	}
	return results.Close()
}
