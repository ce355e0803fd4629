package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"ledgeradmin/internal/models"
)

type statsRepo struct{ pool *pgxpool.Pool }

func (r *statsRepo) Overview(ctx context.Context) (models.StatsOverview, error) {
	var s models.StatsOverview
	err := r.pool.QueryRow(ctx, `
SELECT (SELECT count(*) FROM balances),
       count(*),
       count(*) FILTER (WHERE status = 'success'),
       count(*) FILTER (WHERE status = 'pending'),
       count(*) FILTER (WHERE status = 'failed'),
       COALESCE(sum(amount) FILTER (WHERE status = 'success'), 0)
  FROM transactions`,
	).Scan(&s.TotalUsers, &s.TotalTransactions, &s.SuccessTransactions,
		&s.PendingTransactions, &s.FailedTransactions, &s.TotalVolume)
	return s, err
}
