package models

// AccountType is the top-level account classification used by
// financial-aggregation APIs
type AccountType string

const (
	AccountTypeDepository AccountType = "depository"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeOther      AccountType = "other"
)

// AccountSubtype narrows an AccountType
type AccountSubtype string

const (
	// depository
	SubtypeChecking    AccountSubtype = "checking"
	SubtypeSavings     AccountSubtype = "savings"
	SubtypeMoneyMarket AccountSubtype = "money market"

	// credit
	SubtypeCreditCard AccountSubtype = "credit card"

	// loan
	SubtypeLineOfCredit AccountSubtype = "line of credit"
	SubtypeBusinessLoan AccountSubtype = "business"
	SubtypeCommercial   AccountSubtype = "commercial"
	SubtypeMortgage     AccountSubtype = "mortgage"

	// investment
	SubtypeBrokerage      AccountSubtype = "brokerage"
	SubtypeCashManagement AccountSubtype = "cash management"
)

// Subtypes lists the subtypes valid for each account type
var Subtypes = map[AccountType][]AccountSubtype{
	AccountTypeDepository: {SubtypeChecking, SubtypeSavings, SubtypeMoneyMarket},
	AccountTypeCredit:     {SubtypeCreditCard},
	AccountTypeLoan:       {SubtypeLineOfCredit, SubtypeBusinessLoan, SubtypeCommercial, SubtypeMortgage},
	AccountTypeInvestment: {SubtypeBrokerage, SubtypeCashManagement},
}

// Balances holds the balance snapshot of an account in dollars.
//
// Depository: Available == Current, Limit nil.
// Credit: Current <= 0 (amount owed), Available == Limit + Current.
// Loan: Current < 0 (principal owed); only lines of credit carry a Limit.
// Investment: Available nil.
type Balances struct {
	Available       *float64 `json:"available"`
	Current         float64  `json:"current"`
	IsoCurrencyCode string   `json:"iso_currency_code"`
	Limit           *float64 `json:"limit"`
}

// Account is a single financial account belonging to the company
type Account struct {
	AccountID    string         `json:"account_id"`
	Balances     Balances       `json:"balances"`
	Mask         string         `json:"mask"`
	Name         string         `json:"name"`
	OfficialName string         `json:"official_name"`
	Type         AccountType    `json:"type"`
	Subtype      AccountSubtype `json:"subtype"`

	// Institution details from the bank catalog
	BankName      string `json:"bank_name"`
	RoutingNumber string `json:"routing_number"`
}

// IsDepository returns true for checking, savings and money market accounts
func (a *Account) IsDepository() bool {
	return a.Type == AccountTypeDepository
}

// CanReceiveDeposits reports whether deposits may be posted to the account
func (a *Account) CanReceiveDeposits() bool {
	return a.IsDepository()
}

// CanMakePayments reports whether purchases and bills may be paid from the account
func (a *Account) CanMakePayments() bool {
	return a.Type == AccountTypeDepository || a.Type == AccountTypeCredit
}

// ValidSubtype reports whether the account's subtype belongs to its type
func (a *Account) ValidSubtype() bool {
	for _, s := range Subtypes[a.Type] {
		if s == a.Subtype {
			return true
		}
	}
	return false
}

// Float returns a pointer to v, for the nullable balance fields
func Float(v float64) *float64 {
	return &v
}
