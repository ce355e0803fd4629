package services

import (
	"context"

	"ledgeradmin/internal/ledger"
	"ledgeradmin/internal/metrics"
	"ledgeradmin/internal/models"
	repo "ledgeradmin/internal/repository"
)

// BalanceService owns the balance chain: the sequence of balance_after
// snapshots a user's history defines on top of an opening balance. It is the
// correction mechanism after any mutation to history.
type BalanceService struct {
	trx repo.Transactions
	bal repo.Balances
}

func NewBalanceService(t repo.Transactions, b repo.Balances) *BalanceService {
	return &BalanceService{trx: t, bal: b}
}

func (s *BalanceService) Current(ctx context.Context, userID string) (models.Balance, error) {
	return s.bal.GetOrCreate(ctx, userID)
}

// InitialBalance reverse-derives the user's opening balance: the stored
// current balance minus everything the existing history contributed. With no
// history the stored balance is the opening balance.
func (s *BalanceService) InitialBalance(ctx context.Context, userID string) (int64, error) {
	b, err := s.bal.GetOrCreate(ctx, userID)
	if err != nil {
		return 0, err
	}
	txs, err := s.trx.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	initial := b.Amount
	for _, tx := range txs {
		initial -= ledger.Impact(tx)
	}
	return initial, nil
}

type RecalcResult struct {
	NewBalance  int64 `json:"new_balance"`
	RowsUpdated int   `json:"rows_updated"`
}

// RecalculateAll replays the user's remaining history in chronological order,
// rewriting every stale balance_after snapshot and the current balance.
// initialOverride seeds the replay; pass nil to reverse-derive the opening
// balance from the history as stored.
func (s *BalanceService) RecalculateAll(ctx context.Context, userID string, initialOverride *int64) (RecalcResult, error) {
	var initial int64
	if initialOverride != nil {
		initial = *initialOverride
	} else {
		var err error
		initial, err = s.InitialBalance(ctx, userID)
		if err != nil {
			return RecalcResult{}, err
		}
	}

	txs, err := s.trx.ListByUser(ctx, userID)
	if err != nil {
		return RecalcResult{}, err
	}

	running := initial
	updated := 0
	for _, tx := range txs {
		running += ledger.Impact(tx)
		if tx.BalanceAfter == running {
			continue
		}
		if err := s.trx.UpdateBalanceAfter(ctx, tx.ID, running); err != nil {
			return RecalcResult{}, err
		}
		updated++
	}

	if _, err := s.bal.Set(ctx, userID, running); err != nil {
		return RecalcResult{}, err
	}

	metrics.RecalculationsTotal.Inc()
	metrics.RecalculatedRows.Add(float64(updated))
	return RecalcResult{NewBalance: running, RowsUpdated: updated}, nil
}
