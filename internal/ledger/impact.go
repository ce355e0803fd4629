// Package ledger holds the pure balance arithmetic: how much a single
// transaction moved (or would move) a user's running balance.
package ledger

import "ledgeradmin/internal/models"

// Impact returns the signed contribution of tx to its user's running balance.
//
// The explicit debit/credit columns win when set; rows written before those
// columns existed fall back to the sign-by-type rule. A transaction whose
// status is anything but success contributes nothing, whatever its columns
// say.
func Impact(tx models.Transaction) int64 {
	if tx.Status != models.TxnSuccess {
		return 0
	}
	if tx.Credit > 0 {
		return tx.Credit
	}
	if tx.Debit > 0 {
		return -tx.Debit
	}
	return LegacyImpact(tx.Amount, tx.Type)
}

// LegacyImpact maps (amount, type) to a signed impact for rows without
// explicit debit/credit columns. Unknown types are neutral.
func LegacyImpact(amount int64, t models.TransactionType) int64 {
	switch t {
	case models.TxnDeposit, models.TxnTransferIn, models.TxnRefund:
		return amount
	case models.TxnWithdrawal, models.TxnTransferOut, models.TxnFee:
		return -amount
	default:
		return 0
	}
}

// ReversalImpact is the balance change caused by removing tx from history:
// the negation of the impact it had while present.
func ReversalImpact(tx models.Transaction) int64 {
	return -Impact(tx)
}

// AffectsBalance reports whether a transaction with the given status counts
// toward the balance chain at all.
func AffectsBalance(status models.TransactionStatus) bool {
	return status == models.TxnSuccess
}
