package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ledgeradmin/internal/models"
	repo "ledgeradmin/internal/repository"
)

// In-memory repository stubs used across the service tests.

type stubTransactions struct {
	mu          sync.Mutex
	rows        map[string]models.Transaction
	deleteCalls int
	deleteErr   error
	listErr     error
}

func newStubTransactions(txs ...models.Transaction) *stubTransactions {
	s := &stubTransactions{rows: map[string]models.Transaction{}}
	for _, tx := range txs {
		s.rows[tx.ID] = tx
	}
	return s
}

func (s *stubTransactions) Create(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.TransactionDate.IsZero() {
		tx.TransactionDate = time.Now()
	}
	s.rows[tx.ID] = tx
	return tx, nil
}

func (s *stubTransactions) GetByID(_ context.Context, id string) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.rows[id]
	if !ok {
		return models.Transaction{}, repo.ErrNotFound
	}
	return tx, nil
}

func (s *stubTransactions) ListByIDs(_ context.Context, ids []string) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []models.Transaction
	for _, id := range ids {
		if tx, ok := s.rows[id]; ok {
			out = append(out, tx)
		}
	}
	sortChrono(out)
	return out, nil
}

func (s *stubTransactions) ListByUser(_ context.Context, userID string) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []models.Transaction
	for _, tx := range s.rows {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	sortChrono(out)
	return out, nil
}

func (s *stubTransactions) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.rows[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *stubTransactions) DeleteByIDs(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for _, id := range ids {
		delete(s.rows, id)
	}
	return nil
}

func (s *stubTransactions) UpdateBalanceAfter(_ context.Context, id string, balanceAfter int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.rows[id]
	if !ok {
		return repo.ErrNotFound
	}
	tx.BalanceAfter = balanceAfter
	s.rows[id] = tx
	return nil
}

func sortChrono(txs []models.Transaction) {
	sort.Slice(txs, func(i, j int) bool {
		if txs[i].TransactionDate.Equal(txs[j].TransactionDate) {
			return txs[i].ID < txs[j].ID
		}
		return txs[i].TransactionDate.Before(txs[j].TransactionDate)
	})
}

type stubBalances struct {
	mu   sync.Mutex
	rows map[string]int64
}

func newStubBalances() *stubBalances {
	return &stubBalances{rows: map[string]int64{}}
}

func (s *stubBalances) GetOrCreate(_ context.Context, userID string) (models.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	amt, ok := s.rows[userID]
	if !ok {
		s.rows[userID] = 0
	}
	return models.Balance{UserID: userID, Amount: amt, LastUpdatedAt: time.Now()}, nil
}

func (s *stubBalances) Get(_ context.Context, userID string) (models.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	amt, ok := s.rows[userID]
	if !ok {
		return models.Balance{}, repo.ErrNotFound
	}
	return models.Balance{UserID: userID, Amount: amt, LastUpdatedAt: time.Now()}, nil
}

func (s *stubBalances) Set(_ context.Context, userID string, amount int64) (models.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[userID] = amount
	return models.Balance{UserID: userID, Amount: amount, LastUpdatedAt: time.Now()}, nil
}

func (s *stubBalances) UpdateAmount(_ context.Context, userID string, delta int64) (models.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[userID]; !ok {
		return models.Balance{}, repo.ErrNotFound
	}
	s.rows[userID] += delta
	return models.Balance{UserID: userID, Amount: s.rows[userID], LastUpdatedAt: time.Now()}, nil
}

type stubAuditLogs struct {
	mu   sync.Mutex
	logs []models.AuditLog
}

func (s *stubAuditLogs) Create(_ context.Context, l models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, l)
	return nil
}

func (s *stubAuditLogs) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs)
}

var errDown = errors.New("datastore unavailable")
