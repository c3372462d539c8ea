package validate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/willfong/finfixture/internal/models"
)

// BalancePoint is an account's balance after one transaction
type BalancePoint struct {
	Date          string          `json:"date"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	Balance       decimal.Decimal `json:"balance"`
}

// RunningBalances replays each account's added transactions oldest first.
// The opening balance is the account's current balance minus the sum of its
// transactions, so the last point of every series equals the current balance.
// Accounts with no transactions are omitted.
func RunningBalances(result *models.GenerationResult) map[string][]BalancePoint {
	series := make(map[string][]BalancePoint)
	if result == nil {
		return series
	}

	byAccount := make(map[string][]models.Transaction)
	for _, txn := range result.Added {
		byAccount[txn.AccountID] = append(byAccount[txn.AccountID], txn)
	}

	for _, acct := range result.Accounts {
		txns := byAccount[acct.AccountID]
		if len(txns) == 0 {
			continue
		}
		sort.SliceStable(txns, func(i, j int) bool {
			if txns[i].Date != txns[j].Date {
				return txns[i].Date < txns[j].Date
			}
			return txns[i].TransactionID > txns[j].TransactionID
		})

		sum := decimal.Zero
		for _, txn := range txns {
			sum = sum.Add(decimal.NewFromFloat(txn.Amount).Round(2))
		}
		balance := decimal.NewFromFloat(acct.Balances.Current).Round(2).Sub(sum)

		points := make([]BalancePoint, 0, len(txns))
		for _, txn := range txns {
			amount := decimal.NewFromFloat(txn.Amount).Round(2)
			balance = balance.Add(amount)
			points = append(points, BalancePoint{
				Date:          txn.Date,
				TransactionID: txn.TransactionID,
				Amount:        amount,
				Balance:       balance,
			})
		}
		series[acct.AccountID] = points
	}

	return series
}
