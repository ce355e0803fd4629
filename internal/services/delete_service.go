package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ledgeradmin/internal/ledger"
	"ledgeradmin/internal/metrics"
	"ledgeradmin/internal/models"
	repo "ledgeradmin/internal/repository"
	"ledgeradmin/internal/worker"
)

// DeleteService removes transactions and repairs the balance chain afterward.
//
// The service does not serialize anything: two concurrent deletes for the same
// user can interleave the fetch/delete/recalculate phases and corrupt the
// chain. Callers must serialize mutations per user.
type DeleteService struct {
	trx repo.Transactions
	bal *BalanceService
	log repo.AuditLogs
	wp  *worker.Pool
}

func NewDeleteService(t repo.Transactions, b *BalanceService, l repo.AuditLogs, wp *worker.Pool) *DeleteService {
	return &DeleteService{trx: t, bal: b, log: l, wp: wp}
}

type DeleteResult struct {
	Success        bool   `json:"success"`
	BalanceImpact  int64  `json:"balance_impact"`
	NewUserBalance *int64 `json:"new_user_balance,omitempty"`
	Error          string `json:"error,omitempty"`
}

type BulkDeleteResult struct {
	Success            bool     `json:"success"`
	DeletedCount       int      `json:"deleted_count"`
	TotalBalanceImpact int64    `json:"total_balance_impact"`
	NewUserBalance     *int64   `json:"new_user_balance,omitempty"`
	Errors             []string `json:"errors"`
}

type TransactionSummary struct {
	Date   time.Time                `json:"date"`
	Type   models.TransactionType   `json:"type"`
	Amount int64                    `json:"amount"`
	Status models.TransactionStatus `json:"status"`
}

type DeletePreview struct {
	Transaction       *TransactionSummary `json:"transaction"`
	BalanceImpact     int64               `json:"balance_impact"`
	WillAffectBalance bool                `json:"will_affect_balance"`
}

// DeleteTransaction removes one transaction and rebuilds the user's balance
// chain. Failures are reported in the result, never raised; a failed delete
// leaves all state untouched.
func (s *DeleteService) DeleteTransaction(ctx context.Context, transactionID string) DeleteResult {
	tx, err := s.trx.GetByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			metrics.DeletesTotal.WithLabelValues("single", "not_found").Inc()
			return DeleteResult{Error: "transaction not found"}
		}
		metrics.DeletesTotal.WithLabelValues("single", "error").Inc()
		return DeleteResult{Error: err.Error()}
	}

	// The opening balance must be captured before the delete. If this is the
	// user's only transaction, a post-delete derivation would see empty
	// history and fall back to the stale current balance instead of
	// reverse-deriving the opening balance from the doomed row.
	trueInitial, err := s.bal.InitialBalance(ctx, tx.UserID)
	if err != nil {
		metrics.DeletesTotal.WithLabelValues("single", "error").Inc()
		return DeleteResult{Error: err.Error()}
	}

	balanceImpact := ledger.ReversalImpact(tx)

	if err := s.trx.Delete(ctx, transactionID); err != nil {
		metrics.DeletesTotal.WithLabelValues("single", "error").Inc()
		return DeleteResult{Error: err.Error()}
	}

	res, err := s.bal.RecalculateAll(ctx, tx.UserID, &trueInitial)
	if err != nil {
		metrics.DeletesTotal.WithLabelValues("single", "error").Inc()
		return DeleteResult{Error: fmt.Sprintf("recalculation failed: %v", err)}
	}

	s.audit(tx.ID, "deleted", map[string]any{
		"user_id":        tx.UserID,
		"balance_impact": balanceImpact,
	})
	metrics.DeletesTotal.WithLabelValues("single", "ok").Inc()

	return DeleteResult{
		Success:        true,
		BalanceImpact:  balanceImpact,
		NewUserBalance: &res.NewBalance,
	}
}

// DeleteTransactions removes a batch in one pass. The batch must belong to a
// single user; mixed batches fail before anything is deleted.
func (s *DeleteService) DeleteTransactions(ctx context.Context, transactionIDs []string) BulkDeleteResult {
	txs, err := s.trx.ListByIDs(ctx, transactionIDs)
	if err != nil {
		metrics.DeletesTotal.WithLabelValues("bulk", "error").Inc()
		return BulkDeleteResult{Errors: []string{err.Error()}}
	}
	if len(txs) == 0 {
		metrics.DeletesTotal.WithLabelValues("bulk", "not_found").Inc()
		return BulkDeleteResult{Errors: []string{"transactions not found"}}
	}

	userID := txs[0].UserID
	for _, tx := range txs[1:] {
		if tx.UserID != userID {
			metrics.DeletesTotal.WithLabelValues("bulk", "error").Inc()
			return BulkDeleteResult{Errors: []string{"transactions span multiple users"}}
		}
	}

	trueInitial, err := s.bal.InitialBalance(ctx, userID)
	if err != nil {
		metrics.DeletesTotal.WithLabelValues("bulk", "error").Inc()
		return BulkDeleteResult{Errors: []string{err.Error()}}
	}

	var totalImpact int64
	for _, tx := range txs {
		totalImpact += ledger.ReversalImpact(tx)
	}

	if err := s.trx.DeleteByIDs(ctx, transactionIDs); err != nil {
		metrics.DeletesTotal.WithLabelValues("bulk", "error").Inc()
		return BulkDeleteResult{Errors: []string{err.Error()}}
	}

	res, err := s.bal.RecalculateAll(ctx, userID, &trueInitial)
	if err != nil {
		metrics.DeletesTotal.WithLabelValues("bulk", "error").Inc()
		return BulkDeleteResult{
			DeletedCount:       len(txs),
			TotalBalanceImpact: totalImpact,
			Errors:             []string{fmt.Sprintf("recalculation failed: %v", err)},
		}
	}

	s.audit("", "bulk_deleted", map[string]any{
		"user_id":       userID,
		"deleted_count": len(txs),
		"total_impact":  totalImpact,
	})
	metrics.DeletesTotal.WithLabelValues("bulk", "ok").Inc()

	return BulkDeleteResult{
		Success:            true,
		DeletedCount:       len(txs),
		TotalBalanceImpact: totalImpact,
		NewUserBalance:     &res.NewBalance,
		Errors:             []string{},
	}
}

// PreviewDeleteImpact reports what deleting a transaction would do to the
// user's balance. Read-only.
func (s *DeleteService) PreviewDeleteImpact(ctx context.Context, transactionID string) DeletePreview {
	tx, err := s.trx.GetByID(ctx, transactionID)
	if err != nil {
		return DeletePreview{}
	}
	return DeletePreview{
		Transaction: &TransactionSummary{
			Date:   tx.TransactionDate,
			Type:   tx.Type,
			Amount: tx.Amount,
			Status: tx.Status,
		},
		BalanceImpact:     ledger.ReversalImpact(tx),
		WillAffectBalance: ledger.AffectsBalance(tx.Status),
	}
}

func (s *DeleteService) audit(entityID, action string, details map[string]any) {
	var id *string
	if entityID != "" {
		id = &entityID
	}
	l := models.AuditLog{
		EntityType: "transaction",
		EntityID:   id,
		Action:     action,
		Details:    details,
	}
	s.wp.Submit(func() {
		if err := s.log.Create(context.Background(), l); err != nil {
			slog.Error("audit write", "action", action, "err", err)
		}
	})
}
