package generator

import (
	"math"

	"github.com/willfong/finfixture/internal/config"
	"github.com/willfong/finfixture/internal/data"
	"github.com/willfong/finfixture/internal/models"
	"github.com/willfong/finfixture/internal/utils"
)

// Mutation is the single change applied to a modified transaction
type Mutation int

const (
	MutateAmount Mutation = iota
	MutatePending
	MutateCategory
	numMutations
)

// deriveCount returns min(round(ratio*total), available)
func deriveCount(ratio float64, total, available int) int {
	n := int(math.Round(ratio * float64(total)))
	if n > available {
		n = available
	}
	if n < 0 {
		n = 0
	}
	return n
}

// sampleIndices picks n distinct indices from [0, size) with a partial
// Fisher-Yates shuffle
func sampleIndices(rng utils.Source, size, n int) []int {
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < n; i++ {
		j := i + rng.IntN(size-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:n]
}

// deriveModified re-emits a sample of added as value copies, each with
// exactly one mutation. added itself is never touched.
func (g *TransactionGenerator) deriveModified(added []models.Transaction, total int) []models.Transaction {
	n := deriveCount(config.ModifiedRatio, total, len(added))
	modified := make([]models.Transaction, 0, n)
	for _, i := range sampleIndices(g.rng, len(added), n) {
		txn := added[i].Clone()
		ApplyMutation(&txn, Mutation(g.rng.IntN(int(numMutations))), g.rng)
		modified = append(modified, txn)
	}
	return modified
}

// deriveRemoved lists a sample of added as {transaction_id, account_id} pairs
func (g *TransactionGenerator) deriveRemoved(added []models.Transaction, total int) []models.RemovedTransaction {
	n := deriveCount(config.RemovedRatio, total, len(added))
	removed := make([]models.RemovedTransaction, 0, n)
	for _, i := range sampleIndices(g.rng, len(added), n) {
		removed = append(removed, models.RemovedTransaction{
			TransactionID: added[i].TransactionID,
			AccountID:     added[i].AccountID,
		})
	}
	return removed
}

// ApplyMutation changes one field of txn in place
func ApplyMutation(txn *models.Transaction, m Mutation, rng utils.Source) {
	switch m {
	case MutateAmount:
		factor := rng.Float64Range(config.ModifiedAmountJitterMin, config.ModifiedAmountJitterMax)
		amount := utils.FromFloat(txn.Amount).MulFloat(factor)
		if amount == 0 {
			amount = utils.Cents(1)
			if txn.Amount < 0 {
				amount = amount.Neg()
			}
		}
		txn.Amount = amount.ToDollars()

	case MutatePending:
		txn.Pending = !txn.Pending
		if txn.Pending {
			txn.AuthorizedDate = models.String(txn.Date)
		}

	case MutateCategory:
		txn.Category = data.CategoryFor(txn.MerchantName)
	}
}
