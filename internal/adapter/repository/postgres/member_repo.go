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

// MemberRepository implements usecase.MemberRepository.
type MemberRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(pool *pgxpool.Pool, retrier *Retrier) *MemberRepository {
	return &MemberRepository{pool: pool, retrier: retrier}
}

// List loads the roster in stored order.
func (r *MemberRepository) List(ctx context.Context) ([]*domain.Member, error) {
	var members []*domain.Member
	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, name, balance FROM members ORDER BY position`)
		if err != nil {
			return err
		}
		defer rows.Close()

		members = members[:0]
		for rows.Next() {
			var (
				m       domain.Member
				balance pgtype.Numeric
			)
			if err := rows.Scan(&m.ID, &m.Name, &balance); err != nil {
				return err
			}
			m.Balance = numericToDecimal(balance)
			members = append(members, &m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// ReplaceAll swaps the stored roster for the given one inside tx.
func (r *MemberRepository) ReplaceAll(ctx context.Context, tx usecase.Transaction, members []*domain.Member) error {
	pgxTx := tx.(*Tx).PgxTx()

	if _, err := pgxTx.Exec(ctx, `DELETE FROM members`); err != nil {
		return fmt.Errorf("clear members: %w", err)
	}

	batch := &pgx.Batch{}
	for i, m := range members {
		batch.Queue(
			`INSERT INTO members (id, name, balance, position) VALUES ($1, $2, $3, $4)`,
			m.ID, m.Name, decimalToNumeric(m.Balance), i,
		)
	}

	results := pgxTx.SendBatch(ctx, batch)
	defer results.Close()
	for range members {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert member: %w", err)
		}
	}
	return results.Close()
}
