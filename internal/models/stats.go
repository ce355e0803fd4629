package models

// StatsOverview feeds the dashboard stat cards.
type StatsOverview struct {
	TotalUsers          int64 `json:"total_users"`
	TotalTransactions   int64 `json:"total_transactions"`
	SuccessTransactions int64 `json:"success_transactions"`
	PendingTransactions int64 `json:"pending_transactions"`
	FailedTransactions  int64 `json:"failed_transactions"`
	TotalVolume         int64 `json:"total_volume"`
}
