package models

// Sentinel values for the single-page sync response
const (
	UpdateStatusComplete = "HISTORICAL_UPDATE_COMPLETE"
)

// GenerationOptions controls the shape of a generation run.
// NumTransactions of zero selects the size-tier default.
type GenerationOptions struct {
	NumTransactions int    `json:"num_transactions" validate:"omitempty,min=10,max=5000"`
	StartDate       string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate         string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`

	IncludeDeposits    bool `json:"include_deposits"`
	IncludePayments    bool `json:"include_payments"`
	IncludeInvestments bool `json:"include_investments"`
	IncludeLoans       bool `json:"include_loans"`
}

// DefaultGenerationOptions returns options with deposits and payments on and
// investments and loans off
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{
		IncludeDeposits: true,
		IncludePayments: true,
	}
}

// GenerationResult is the full output of one generation call, shaped like a
// transactions sync response. It is never modified after it is returned.
type GenerationResult struct {
	Company  *CompanyProfile `json:"company,omitempty"`
	Accounts []Account       `json:"accounts"`

	Added    []Transaction        `json:"added"`
	Modified []Transaction        `json:"modified"`
	Removed  []RemovedTransaction `json:"removed"`

	NextCursor               string `json:"next_cursor"`
	HasMore                  bool   `json:"has_more"`
	RequestID                string `json:"request_id"`
	TransactionsUpdateStatus string `json:"transactions_update_status"`
}

// AccountByID returns the account with the given ID
func (r *GenerationResult) AccountByID(id string) (*Account, bool) {
	for i := range r.Accounts {
		if r.Accounts[i].AccountID == id {
			return &r.Accounts[i], true
		}
	}
	return nil, false
}
