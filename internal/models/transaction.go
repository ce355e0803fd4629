package models

import "time"

type TransactionType string

const (
	TxnDeposit     TransactionType = "deposit"
	TxnWithdrawal  TransactionType = "withdrawal"
	TxnTransferIn  TransactionType = "transfer_in"
	TxnTransferOut TransactionType = "transfer_out"
	TxnFee         TransactionType = "fee"
	TxnRefund      TransactionType = "refund"
)

type TransactionStatus string

const (
	TxnPending TransactionStatus = "pending"
	TxnSuccess TransactionStatus = "success"
	TxnFailed  TransactionStatus = "failed"
)

// Transaction is one ledger entry. Amount is the unsigned magnitude in minor
// units; Debit/Credit are the explicit signed columns (zero means unset) and
// take precedence over the legacy type-based sign rule. BalanceAfter is a
// stored snapshot of the running balance and gets rewritten whenever history
// changes.
type Transaction struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	Type            TransactionType   `json:"transaction_type"`
	Status          TransactionStatus `json:"status"`
	Amount          int64             `json:"amount"`
	Debit           int64             `json:"debit,omitempty"`
	Credit          int64             `json:"credit,omitempty"`
	TransactionDate time.Time         `json:"transaction_date"`
	BalanceAfter    int64             `json:"balance_after"`
}
