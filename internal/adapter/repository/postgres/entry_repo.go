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

// EntryRepository implements usecase.EntryRepository. The entries table is
// a snapshot: every write replaces the whole collection, position keeps
// the in-memory ordering stable across reloads.
type EntryRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool, retrier *Retrier) *EntryRepository {
	return &EntryRepository{pool: pool, retrier: retrier}
}

const listEntriesSQL = `
SELECT id, owner, entry_type, asset, amount, entry_date, description,
       member_ids, asset_type, crypto_symbol, token_amount, created_at
FROM entries
ORDER BY position`

// List loads every entry in stored order.
func (r *EntryRepository) List(ctx context.Context) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx, listEntriesSQL)
		if err != nil {
			return err
		}
		defer rows.Close()

		entries = entries[:0]
		for rows.Next() {
			e, err := scanEntry(rows)
			if err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// ReplaceAll swaps the stored collection for the given one inside tx.
func (r *EntryRepository) ReplaceAll(ctx context.Context, tx usecase.Transaction, entries []*domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()

	if _, err := pgxTx.Exec(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	batch := &pgx.Batch{}
	for i, e := range entries {
		var (
			assetType    *string
			cryptoSymbol *string
		)
		if e.AssetType != "" {
			s := string(e.AssetType)
			assetType = &s
		}
		if e.CryptoSymbol != "" {
			s := e.CryptoSymbol
			cryptoSymbol = &s
		}
		batch.Queue(`
			INSERT INTO entries (
				id, owner, entry_type, asset, amount, entry_date, description,
				member_ids, asset_type, crypto_symbol, token_amount, created_at, position
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			e.ID, string(e.Owner), string(e.Type), e.Asset,
			decimalToNumeric(e.Amount), dateToPgDate(e.Date), e.Description,
			e.MemberIDs, assetType, cryptoSymbol,
			decimalToNumeric(e.TokenAmount), timeToPgTimestamptz(e.CreatedAt), i,
		)
	}

	results := pgxTx.SendBatch(ctx, batch)
	defer results.Close()
	for range entries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
	}
	return results.Close()
}

func scanEntry(rows pgx.Rows) (*domain.Entry, error) {
	var (
		e            domain.Entry
		owner        string
		entryType    string
		amount       pgtype.Numeric
		entryDate    pgtype.Date
		memberIDs    []string
		assetType    *string
		cryptoSymbol *string
		tokenAmount  pgtype.Numeric
		createdAt    pgtype.Timestamptz
	)
	err := rows.Scan(
		&e.ID, &owner, &entryType, &e.Asset, &amount, &entryDate,
		&e.Description, &memberIDs, &assetType, &cryptoSymbol,
		&tokenAmount, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	e.Owner = domain.Owner(owner)
	e.Type = domain.EntryType(entryType)
	e.Amount = numericToDecimal(amount)
	e.Date = pgDateToDate(entryDate)
	e.MemberIDs = memberIDs
	if assetType != nil {
		e.AssetType = domain.AssetType(*assetType)
	}
	if cryptoSymbol != nil {
		e.CryptoSymbol = *cryptoSymbol
	}
	e.TokenAmount = numericToDecimal(tokenAmount)
	e.CreatedAt = createdAt.Time
	return &e, nil
}
