// Package config contains compile-time defaults for the fixture generator.
// Edit these values and recompile to tune behavior.
package config

// =============================================================================
// COMPANY PROFILE DEFAULTS
// =============================================================================

// Founding dates are drawn uniformly from this window when not supplied
const (
	FoundingDateEarliest = "1980-01-01"
	FoundingDateLatest   = "2023-12-31"
)

// Revenue jitter applied on top of tier base revenue and industry multiplier
const (
	RevenueJitterMin = 0.8
	RevenueJitterMax = 1.2
)

// =============================================================================
// ACCOUNT DEFAULTS
// =============================================================================

// Balance ratios are fractions of annual revenue
const (
	// PrimaryCheckingRatio sizes the main operating account (0.08 = 8% of revenue)
	PrimaryCheckingRatio = 0.08

	// SecondaryCheckingRatio sizes additional checking accounts
	SecondaryCheckingRatio = 0.03

	// SavingsRatio sizes the primary savings account
	SavingsRatio = 0.15

	// MoneyMarketRatio sizes secondary savings, which are money market accounts
	MoneyMarketRatio = 0.10

	// BalanceJitterMin and BalanceJitterMax bound the random multiplier on
	// depository balances
	BalanceJitterMin = 0.7
	BalanceJitterMax = 1.3
)

// Credit cards
const (
	PrimaryCreditLimitRatio   = 0.05
	SecondaryCreditLimitRatio = 0.02

	// CreditUtilizationMin and CreditUtilizationMax bound how much of the
	// limit is currently drawn
	CreditUtilizationMin = 0.3
	CreditUtilizationMax = 0.7
)

// Investment accounts hold 10-40% of revenue
const (
	InvestmentRatioMin = 0.10
	InvestmentRatioMax = 0.40
)

// AccountIDLength is the length of generated account and transaction IDs
const AccountIDLength = 37

// =============================================================================
// TRANSACTION DEFAULTS
// =============================================================================

const (
	// DefaultWindowDays is the lookback when no start date is given
	DefaultWindowDays = 730

	// MinTransactions and MaxTransactions bound an explicit transaction count
	MinTransactions = 10
	MaxTransactions = 5000

	// DepositShareMin and DepositShareMax bound the fraction of transactions
	// that are deposits
	DepositShareMin = 0.20
	DepositShareMax = 0.30

	// PendingProbability is the chance a transaction is still pending
	PendingProbability = 0.10

	// MaxAuthorizationLagDays is how far authorized_date may precede date
	// for posted transactions
	MaxAuthorizationLagDays = 2

	// IndustryVendorWeight and CommonVendorWeight weight the merchant pool
	IndustryVendorWeight = 3
	CommonVendorWeight   = 1
)

// Sync feed derivation
const (
	// ModifiedRatio is the share of N re-emitted as modified (0.05 = 5%)
	ModifiedRatio = 0.05

	// RemovedRatio is the share of N listed as removed
	RemovedRatio = 0.02

	// ModifiedAmountJitterMin and ModifiedAmountJitterMax bound amount noise
	// on modified entries
	ModifiedAmountJitterMin = 0.95
	ModifiedAmountJitterMax = 1.05
)

// =============================================================================
// VALIDATION DEFAULTS
// =============================================================================

// MaxDateSpanDays is the span above which the validator warns
const MaxDateSpanDays = 731

// =============================================================================
// OUTPUT DEFAULTS
// =============================================================================

const (
	// DefaultOutputDir is where generated files are written
	DefaultOutputDir = "./output"

	// DefaultBasename is the output file name without extension
	DefaultBasename = "fixture"

	// DefaultFormat is one of json, csv, both
	DefaultFormat = "json"

	// MaxBatchSize caps --batch
	MaxBatchSize = 1000

	// EnvPrefix is the environment variable prefix read by viper
	EnvPrefix = "FINFIXTURE"

	// ConfigFileName is the config file name searched when --config is unset
	ConfigFileName = "finfixture"
)
