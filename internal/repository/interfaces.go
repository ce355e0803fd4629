package repository

import (
	"context"
	"errors"

	"ledgeradmin/internal/models"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("not found")

type Users interface {
	Create(ctx context.Context, username, email, passwordHash, role string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type Balances interface {
	GetOrCreate(ctx context.Context, userID string) (models.Balance, error)
	Get(ctx context.Context, userID string) (models.Balance, error)
	// Set writes an absolute amount; used by the recalculation pass.
	Set(ctx context.Context, userID string, amount int64) (models.Balance, error)
	// UpdateAmount applies a delta; used by the append path.
	UpdateAmount(ctx context.Context, userID string, delta int64) (models.Balance, error)
}

type Transactions interface {
	Create(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	GetByID(ctx context.Context, id string) (models.Transaction, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Transaction, error)
	// ListByUser returns the user's full history in chronological order,
	// the order the balance chain is defined over.
	ListByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	Delete(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) error
	UpdateBalanceAfter(ctx context.Context, id string, balanceAfter int64) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

type Stats interface {
	Overview(ctx context.Context) (models.StatsOverview, error)
}
