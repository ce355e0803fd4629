package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ledgeradmin/internal/models"
	repo "ledgeradmin/internal/repository"
)

type transactionsRepo struct{ pool *pgxpool.Pool }

func (r *transactionsRepo) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.TransactionDate.IsZero() {
		tx.TransactionDate = time.Now()
	}
	const q = `
INSERT INTO transactions (
  id, user_id, transaction_type, status, amount, debit, credit, transaction_date, balance_after
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
RETURNING id, user_id, transaction_type, status, amount,
          COALESCE(debit, 0), COALESCE(credit, 0), transaction_date, balance_after;
`
	err := r.pool.QueryRow(ctx, q,
		tx.ID, tx.UserID, tx.Type, tx.Status, tx.Amount,
		nullableAmount(tx.Debit), nullableAmount(tx.Credit), tx.TransactionDate, tx.BalanceAfter,
	).Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Status, &tx.Amount,
		&tx.Debit, &tx.Credit, &tx.TransactionDate, &tx.BalanceAfter)
	return tx, err
}

const txCols = `id, user_id, transaction_type, status, amount,
       COALESCE(debit, 0), COALESCE(credit, 0), transaction_date, balance_after`

func (r *transactionsRepo) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	var tx models.Transaction
	err := r.pool.QueryRow(ctx,
		`SELECT `+txCols+`
		   FROM transactions
		  WHERE id=$1`,
		id,
	).Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Status, &tx.Amount,
		&tx.Debit, &tx.Credit, &tx.TransactionDate, &tx.BalanceAfter)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Transaction{}, repo.ErrNotFound
	}
	return tx, err
}

func (r *transactionsRepo) ListByIDs(ctx context.Context, ids []string) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+txCols+`
		   FROM transactions
		  WHERE id = ANY($1)
		  ORDER BY transaction_date, id`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *transactionsRepo) ListByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+txCols+`
		   FROM transactions
		  WHERE user_id=$1
		  ORDER BY transaction_date, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *transactionsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *transactionsRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = ANY($1)`, ids)
	return err
}

func (r *transactionsRepo) UpdateBalanceAfter(ctx context.Context, id string, balanceAfter int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE transactions SET balance_after=$2 WHERE id=$1`,
		id, balanceAfter,
	)
	return err
}

func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	var out []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Status, &tx.Amount,
			&tx.Debit, &tx.Credit, &tx.TransactionDate, &tx.BalanceAfter); err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// nullableAmount keeps unset debit/credit columns NULL in storage so legacy
// rows and new rows look the same.
func nullableAmount(v int64) *int64 {
	if v <= 0 {
		return nil
	}
	return &v
}
