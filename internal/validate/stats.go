package validate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/willfong/finfixture/internal/models"
)

// Statistics summarizes a result for display
type Statistics struct {
	TotalAccounts     int                        `json:"total_accounts"`
	TotalTransactions int                        `json:"total_transactions"`
	ModifiedCount     int                        `json:"modified_count"`
	RemovedCount      int                        `json:"removed_count"`
	AccountsByType    map[models.AccountType]int `json:"accounts_by_type"`

	DepositCount int `json:"deposit_count"`
	PaymentCount int `json:"payment_count"`
	PendingCount int `json:"pending_count"`

	TotalInflow   decimal.Decimal `json:"total_inflow"`
	TotalOutflow  decimal.Decimal `json:"total_outflow"`
	TotalVolume   decimal.Decimal `json:"total_volume"`
	AverageAmount decimal.Decimal `json:"average_amount"`

	// MonthlyCounts maps YYYY-MM to the number of added transactions;
	// Months lists its keys in ascending order
	MonthlyCounts map[string]int `json:"monthly_counts"`
	Months        []string       `json:"months"`
}

// ComputeStatistics aggregates counts and amounts over the added feed.
// Amounts are summed as decimals so totals are exact to the cent.
func ComputeStatistics(result *models.GenerationResult) Statistics {
	stats := Statistics{
		AccountsByType: make(map[models.AccountType]int),
		MonthlyCounts:  make(map[string]int),
		Months:         []string{},
		TotalInflow:    decimal.Zero,
		TotalOutflow:   decimal.Zero,
		TotalVolume:    decimal.Zero,
		AverageAmount:  decimal.Zero,
	}
	if result == nil {
		return stats
	}

	stats.TotalAccounts = len(result.Accounts)
	stats.TotalTransactions = len(result.Added)
	stats.ModifiedCount = len(result.Modified)
	stats.RemovedCount = len(result.Removed)

	for _, a := range result.Accounts {
		stats.AccountsByType[a.Type]++
	}

	for _, txn := range result.Added {
		amount := decimal.NewFromFloat(txn.Amount).Round(2)
		if txn.IsInflow() {
			stats.DepositCount++
			stats.TotalInflow = stats.TotalInflow.Add(amount)
		} else {
			stats.PaymentCount++
			stats.TotalOutflow = stats.TotalOutflow.Add(amount.Abs())
		}
		if txn.Pending {
			stats.PendingCount++
		}
		if len(txn.Date) >= 7 {
			stats.MonthlyCounts[txn.Date[:7]]++
		}
	}

	stats.TotalVolume = stats.TotalInflow.Add(stats.TotalOutflow)
	if n := len(result.Added); n > 0 {
		stats.AverageAmount = stats.TotalVolume.Div(decimal.NewFromInt(int64(n))).Round(2)
	}

	for month := range stats.MonthlyCounts {
		stats.Months = append(stats.Months, month)
	}
	sort.Strings(stats.Months)

	return stats
}
