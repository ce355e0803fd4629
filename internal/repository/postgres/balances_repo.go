package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ledgeradmin/internal/models"
	repo "ledgeradmin/internal/repository"
)

type balancesRepo struct{ pool *pgxpool.Pool }

func (r *balancesRepo) GetOrCreate(ctx context.Context, userID string) (models.Balance, error) {
	if b, err := r.Get(ctx, userID); err == nil {
		return b, nil
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO balances(user_id, amount, last_updated_at)
		 VALUES($1, 0, now())
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return models.Balance{}, err
	}
	return r.Get(ctx, userID)
}

func (r *balancesRepo) Get(ctx context.Context, userID string) (models.Balance, error) {
	var b models.Balance
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, amount, last_updated_at
		   FROM balances
		  WHERE user_id=$1`,
		userID,
	).Scan(&b.UserID, &b.Amount, &b.LastUpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Balance{}, repo.ErrNotFound
	}
	return b, err
}

func (r *balancesRepo) Set(ctx context.Context, userID string, amount int64) (models.Balance, error) {
	var b models.Balance
	err := r.pool.QueryRow(ctx,
		`INSERT INTO balances(user_id, amount, last_updated_at)
		 VALUES($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE
		 SET amount = EXCLUDED.amount, last_updated_at = now()
		 RETURNING user_id, amount, last_updated_at`,
		userID, amount,
	).Scan(&b.UserID, &b.Amount, &b.LastUpdatedAt)
	return b, err
}

func (r *balancesRepo) UpdateAmount(ctx context.Context, userID string, delta int64) (models.Balance, error) {
	var b models.Balance
	err := r.pool.QueryRow(ctx,
		`UPDATE balances
		    SET amount = amount + $2,
		        last_updated_at = now()
		  WHERE user_id = $1
		  RETURNING user_id, amount, last_updated_at`,
		userID, delta,
	).Scan(&b.UserID, &b.Amount, &b.LastUpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Balance{}, repo.ErrNotFound
	}
	return b, err
}
