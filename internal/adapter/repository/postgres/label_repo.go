package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cashwell/cashwell/internal/usecase"
)

// LabelRepository implements usecase.LabelRepository.
type LabelRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewLabelRepository creates a new LabelRepository.
func NewLabelRepository(pool *pgxpool.Pool, retrier *Retrier) *LabelRepository {
	return &LabelRepository{pool: pool, retrier: retrier}
}

// List loads the custom asset labels in stored order.
func (r *LabelRepository) List(ctx context.Context) ([]string, error) {
	var labels []string
	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT label FROM asset_labels ORDER BY position`)
		if err != nil {
			return err
		}
		defer rows.Close()

		labels = labels[:0]
		for rows.Next() {
			var label string
			if err := rows.Scan(&label); err != nil {
				return err
			}
			labels = append(labels, label)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list asset labels: %w", err)
	}
	return labels, nil
}

// ReplaceAll swaps the stored labels for the given ones inside tx.
func (r *LabelRepository) ReplaceAll(ctx context.Context, tx usecase.Transaction, labels []string) error {
	pgxTx := tx.(*Tx).PgxTx()

	if _, err := pgxTx.Exec(ctx, `DELETE FROM asset_labels`); err != nil {
		return fmt.Errorf("clear asset labels: %w", err)
	}

	batch := &pgx.Batch{}
	for i, label := range labels {
		batch.Queue(
			`INSERT INTO asset_labels (label, position) VALUES ($1, $2)`,
			label, i,
		)
	}

	results := pgxTx.SendBatch(ctx, batch)
	defer results.Close()
	for range labels {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert asset label: %w", err)
		}
	}
	return results.Close()
}
