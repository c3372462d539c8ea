package generator

import (
	"fmt"

	"github.com/willfong/finfixture/internal/config"
	"github.com/willfong/finfixture/internal/data"
	"github.com/willfong/finfixture/internal/models"
	"github.com/willfong/finfixture/internal/utils"
)

// AccountGenerator creates the account set for a company.
type AccountGenerator struct {
	rng     utils.Source
	refData *data.ReferenceData
	config  AccountGeneratorConfig
}

// AccountGeneratorConfig holds settings for account generation
type AccountGeneratorConfig struct {
	// Currency is the ISO code stamped on every balance (default USD)
	Currency string
}

// NewAccountGenerator creates a new account generator
func NewAccountGenerator(rng utils.Source, refData *data.ReferenceData, config AccountGeneratorConfig) *AccountGenerator {
	if config.Currency == "" {
		config.Currency = "USD"
	}
	return &AccountGenerator{
		rng:     rng,
		refData: refData,
		config:  config,
	}
}

// loanBand is the owed principal as a fraction of annual revenue
type loanBand struct {
	Subtype models.AccountSubtype
	Min     float64
	Max     float64
}

// loanBands are assigned to a company's loans in order, cycling
var loanBands = []loanBand{
	{models.SubtypeLineOfCredit, 0.10, 0.30},
	{models.SubtypeBusinessLoan, 0.30, 1.00},
	{models.SubtypeCommercial, 0.50, 1.50},
	{models.SubtypeMortgage, 1.00, 3.00},
}

var investmentSubtypes = []models.AccountSubtype{
	models.SubtypeBrokerage,
	models.SubtypeCashManagement,
}

// checkingPurposes label additional checking accounts
var checkingPurposes = []string{"Operating", "Payroll", "Reserve"}

// GenerateAccountSet builds the accounts for profile following the size
// tier's distribution. Unknown sizes use the Small distribution.
func (g *AccountGenerator) GenerateAccountSet(profile models.CompanyProfile) []models.Account {
	dist := data.DistributionFor(profile.CompanySize)
	revenue := utils.Dollars(profile.AnnualRevenue)
	if revenue <= 0 {
		revenue = utils.Dollars(data.BaseRevenue(0))
	}

	primary := g.refData.BankProductsFor(g.rng.PickString(g.refData.BankNames()))

	accounts := make([]models.Account, 0, dist.Total())
	seen := make(map[string]bool, dist.Total())

	add := func(a models.Account) {
		for seen[a.AccountID] {
			a.AccountID = g.rng.String(config.AccountIDLength)
		}
		seen[a.AccountID] = true
		accounts = append(accounts, a)
	}

	for i := 0; i < dist.Checking; i++ {
		add(g.checkingAccount(primary, revenue, i, dist.Checking))
	}
	for i := 0; i < dist.Savings; i++ {
		add(g.savingsAccount(primary, revenue, i))
	}
	for i := 0; i < dist.Credit; i++ {
		bank := primary
		if i > 0 {
			bank = g.refData.BankProductsFor(g.rng.PickString(g.refData.BankNames()))
		}
		add(g.creditAccount(bank, revenue, i))
	}
	for i := 0; i < dist.Investment; i++ {
		add(g.investmentAccount(primary, revenue, i))
	}
	for i := 0; i < dist.Loan; i++ {
		add(g.loanAccount(primary, revenue, i))
	}

	return accounts
}

func (g *AccountGenerator) checkingAccount(bank *data.Bank, revenue utils.Money, idx, total int) models.Account {
	ratio := config.PrimaryCheckingRatio
	if idx > 0 {
		ratio = config.SecondaryCheckingRatio
	}
	balance := g.depositoryBalance(revenue, ratio)

	product := pickProduct(bank.Checking, idx)
	name := product
	if total > 1 {
		name = fmt.Sprintf("%s (%s)", product, checkingPurposes[idx%len(checkingPurposes)])
	}

	a := g.baseAccount(bank, models.AccountTypeDepository, models.SubtypeChecking, name, product)
	a.Balances.Current = balance.ToDollars()
	a.Balances.Available = models.Float(balance.ToDollars())
	return a
}

// savingsAccount: the first is plain savings, later ones are money market
func (g *AccountGenerator) savingsAccount(bank *data.Bank, revenue utils.Money, idx int) models.Account {
	subtype := models.SubtypeSavings
	ratio := config.SavingsRatio
	if idx > 0 {
		subtype = models.SubtypeMoneyMarket
		ratio = config.MoneyMarketRatio
	}
	balance := g.depositoryBalance(revenue, ratio)

	product := pickProduct(bank.Savings, idx)
	a := g.baseAccount(bank, models.AccountTypeDepository, subtype, product, product)
	a.Balances.Current = balance.ToDollars()
	a.Balances.Available = models.Float(balance.ToDollars())
	return a
}

func (g *AccountGenerator) creditAccount(bank *data.Bank, revenue utils.Money, idx int) models.Account {
	ratio := config.PrimaryCreditLimitRatio
	if idx > 0 {
		ratio = config.SecondaryCreditLimitRatio
	}
	limit := revenue.MulFloat(ratio).RoundToNearest(utils.Dollars(100)).Max(utils.Dollars(1000))
	utilization := g.rng.Float64Range(config.CreditUtilizationMin, config.CreditUtilizationMax)
	owed := limit.MulFloat(utilization)

	current := owed.Neg()
	available := limit.Add(current)

	product := pickProduct(bank.CreditCard, idx)
	a := g.baseAccount(bank, models.AccountTypeCredit, models.SubtypeCreditCard, product, product)
	a.Balances.Current = current.ToDollars()
	a.Balances.Available = models.Float(available.ToDollars())
	a.Balances.Limit = models.Float(limit.ToDollars())
	return a
}

func (g *AccountGenerator) investmentAccount(bank *data.Bank, revenue utils.Money, idx int) models.Account {
	subtype := investmentSubtypes[idx%len(investmentSubtypes)]
	ratio := g.rng.Float64Range(config.InvestmentRatioMin, config.InvestmentRatioMax)
	balance := revenue.MulFloat(ratio).Max(utils.Dollars(1))

	product := bank.InvestmentProduct(subtype)
	a := g.baseAccount(bank, models.AccountTypeInvestment, subtype, product, product)
	a.Balances.Current = balance.ToDollars()
	return a
}

// loanAccount cycles through loanBands. Lines of credit carry a limit with
// available = limit + current; other loans have neither.
func (g *AccountGenerator) loanAccount(bank *data.Bank, revenue utils.Money, idx int) models.Account {
	band := loanBands[idx%len(loanBands)]
	owed := revenue.MulFloat(g.rng.Float64Range(band.Min, band.Max)).RoundToNearest(utils.Dollars(1)).Max(utils.Dollars(1))
	current := owed.Neg()

	product := bank.LoanProduct(band.Subtype)
	a := g.baseAccount(bank, models.AccountTypeLoan, band.Subtype, product, product)
	a.Balances.Current = current.ToDollars()

	if band.Subtype == models.SubtypeLineOfCredit {
		utilization := g.rng.Float64Range(config.CreditUtilizationMin, 0.9)
		limit := owed.MulFloat(1 / utilization).RoundToNearest(utils.Dollars(1000))
		if limit < owed {
			limit = owed
		}
		a.Balances.Limit = models.Float(limit.ToDollars())
		a.Balances.Available = models.Float(limit.Add(current).ToDollars())
	}
	return a
}

func (g *AccountGenerator) depositoryBalance(revenue utils.Money, ratio float64) utils.Money {
	jitter := g.rng.Float64Range(config.BalanceJitterMin, config.BalanceJitterMax)
	return revenue.MulFloat(ratio * jitter).Max(utils.Dollars(100))
}

func (g *AccountGenerator) baseAccount(bank *data.Bank, t models.AccountType, st models.AccountSubtype, name, product string) models.Account {
	return models.Account{
		AccountID: g.rng.String(config.AccountIDLength),
		Balances: models.Balances{
			IsoCurrencyCode: g.config.Currency,
		},
		Mask:          g.rng.NumericString(4),
		Name:          name,
		OfficialName:  bank.Name + " " + product,
		Type:          t,
		Subtype:       st,
		BankName:      bank.Name,
		RoutingNumber: bank.RoutingPrefix + g.rng.NumericString(5),
	}
}

// pickProduct cycles through a bank's product names
func pickProduct(products []string, idx int) string {
	if len(products) == 0 {
		return "Business Account"
	}
	return products[idx%len(products)]
}
