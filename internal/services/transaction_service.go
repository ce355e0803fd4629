package services

import (
	"context"
	"errors"

	"ledgeradmin/internal/ledger"
	"ledgeradmin/internal/models"
	repo "ledgeradmin/internal/repository"
)

// TransactionService is the append side of the ledger: it records new entries
// and keeps balance_after consistent as they land. Deletion lives in
// DeleteService.
type TransactionService struct {
	trx repo.Transactions
	bal repo.Balances
}

func NewTransactionService(t repo.Transactions, b repo.Balances) *TransactionService {
	return &TransactionService{trx: t, bal: b}
}

// Record appends a ledger entry for the user and stamps its balance_after.
// Only successful entries move the balance; pending and failed rows carry the
// unchanged running balance as their snapshot.
func (s *TransactionService) Record(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.UserID == "" {
		return models.Transaction{}, errors.New("user_id required")
	}
	if tx.Amount <= 0 && tx.Debit <= 0 && tx.Credit <= 0 {
		return models.Transaction{}, errors.New("amount must be > 0")
	}
	if tx.Status == "" {
		tx.Status = models.TxnSuccess
	}

	b, err := s.bal.GetOrCreate(ctx, tx.UserID)
	if err != nil {
		return models.Transaction{}, err
	}

	impact := ledger.Impact(tx)
	tx.BalanceAfter = b.Amount + impact

	tx, err = s.trx.Create(ctx, tx)
	if err != nil {
		return models.Transaction{}, err
	}

	if impact != 0 {
		if _, err := s.bal.UpdateAmount(ctx, tx.UserID, impact); err != nil {
			return models.Transaction{}, err
		}
	}
	return tx, nil
}

func (s *TransactionService) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	return s.trx.GetByID(ctx, id)
}

func (s *TransactionService) ListByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.trx.ListByUser(ctx, userID)
}
