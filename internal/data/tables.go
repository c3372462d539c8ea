package data

import (
	"github.com/willfong/finfixture/internal/models"
	"github.com/willfong/finfixture/internal/utils"
)

// Industries is the closed set of industries a profile may name
var Industries = []models.Industry{
	models.IndustryTechnology,
	models.IndustryHealthcare,
	models.IndustryFinance,
	models.IndustryRetail,
	models.IndustryManufacturing,
	models.IndustryRealEstate,
	models.IndustryConsulting,
	models.IndustryEducation,
	models.IndustryHospitality,
	models.IndustryConstruction,
	models.IndustryMedia,
	models.IndustryTransport,
	models.IndustryLegal,
	models.IndustryMarketing,
	models.IndustryFoodBeverage,
}

// BusinessModels is the closed set of business models
var BusinessModels = []models.BusinessModel{
	models.ModelB2BSaaS,
	models.ModelB2CSaaS,
	models.ModelEcommerce,
	models.ModelMarketplace,
	models.ModelSubscription,
	models.ModelConsulting,
	models.ModelAgency,
	models.ModelBrickMortar,
	models.ModelManufacturing,
	models.ModelLicensing,
}

// SizeTier maps a company size label to its ordinal tier and headcount bounds
type SizeTier struct {
	Size         models.CompanySize
	Index        int
	MinEmployees int
	MaxEmployees int
}

// Tiers lists the size tiers smallest first
var Tiers = []SizeTier{
	{Size: models.SizeStartup, Index: 0, MinEmployees: 1, MaxEmployees: 10},
	{Size: models.SizeSmall, Index: 1, MinEmployees: 11, MaxEmployees: 50},
	{Size: models.SizeMedium, Index: 2, MinEmployees: 51, MaxEmployees: 200},
	{Size: models.SizeLarge, Index: 3, MinEmployees: 201, MaxEmployees: 1000},
	{Size: models.SizeEnterprise, Index: 4, MinEmployees: 1001, MaxEmployees: 5000},
}

// TierFor returns the tier for a size label. The bool is false for labels
// outside the closed set, in which case the Startup tier is returned.
func TierFor(size models.CompanySize) (SizeTier, bool) {
	for _, t := range Tiers {
		if t.Size == size {
			return t, true
		}
	}
	return Tiers[0], false
}

// Sizes returns the size labels in tier order
func Sizes() []models.CompanySize {
	sizes := make([]models.CompanySize, len(Tiers))
	for i, t := range Tiers {
		sizes[i] = t.Size
	}
	return sizes
}

// baseRevenue is annual revenue in whole dollars per tier
var baseRevenue = [...]int64{
	500_000,
	2_000_000,
	10_000_000,
	50_000_000,
	200_000_000,
}

// BaseRevenue returns the tier's base annual revenue in dollars. Out-of-range
// tiers use tier 0.
func BaseRevenue(tier int) int64 {
	if tier < 0 || tier >= len(baseRevenue) {
		tier = 0
	}
	return baseRevenue[tier]
}

var industryMultipliers = map[models.Industry]float64{
	models.IndustryTechnology:    1.5,
	models.IndustryHealthcare:    1.3,
	models.IndustryFinance:       1.8,
	models.IndustryRetail:        1.1,
	models.IndustryManufacturing: 1.4,
	models.IndustryRealEstate:    1.2,
	models.IndustryConsulting:    0.9,
	models.IndustryEducation:     0.5,
	models.IndustryHospitality:   0.7,
	models.IndustryConstruction:  1.0,
	models.IndustryMedia:         0.8,
	models.IndustryTransport:     1.0,
	models.IndustryLegal:         1.1,
	models.IndustryMarketing:     0.8,
	models.IndustryFoodBeverage:  0.6,
}

// IndustryMultiplier scales base revenue by industry; unknown industries get 1.0
func IndustryMultiplier(industry models.Industry) float64 {
	if m, ok := industryMultipliers[industry]; ok {
		return m
	}
	return 1.0
}

// AccountDistribution is how many accounts of each kind a company holds
type AccountDistribution struct {
	Checking   int
	Savings    int
	Credit     int
	Investment int
	Loan       int
}

// Total returns the number of accounts in the distribution
func (d AccountDistribution) Total() int {
	return d.Checking + d.Savings + d.Credit + d.Investment + d.Loan
}

var accountDistributions = map[models.CompanySize]AccountDistribution{
	models.SizeStartup:    {Checking: 1, Savings: 1, Credit: 1},
	models.SizeSmall:      {Checking: 1, Savings: 1, Credit: 2, Loan: 1},
	models.SizeMedium:     {Checking: 2, Savings: 1, Credit: 2, Investment: 1, Loan: 1},
	models.SizeLarge:      {Checking: 3, Savings: 2, Credit: 3, Investment: 2, Loan: 2},
	models.SizeEnterprise: {Checking: 3, Savings: 2, Credit: 4, Investment: 3, Loan: 3},
}

// DistributionFor returns the account mix for a size. Unrecognized sizes get
// the Small mix.
func DistributionFor(size models.CompanySize) AccountDistribution {
	if d, ok := accountDistributions[size]; ok {
		return d
	}
	return accountDistributions[models.SizeSmall]
}

var baseTransactionCounts = [...]int{50, 150, 400, 800, 1500}

// BaseTransactionCount is the default number of added transactions per tier
func BaseTransactionCount(tier int) int {
	if tier < 0 || tier >= len(baseTransactionCounts) {
		tier = 0
	}
	return baseTransactionCounts[tier]
}

// AmountRange is an inclusive range of positive amounts
type AmountRange struct {
	Min utils.Money
	Max utils.Money
}

// Scale multiplies both bounds by f
func (r AmountRange) Scale(f float64) AmountRange {
	return AmountRange{Min: r.Min.MulFloat(f), Max: r.Max.MulFloat(f)}
}

var depositBands = [...]AmountRange{
	{Min: utils.Dollars(500), Max: utils.Dollars(15_000)},
	{Min: utils.Dollars(1_000), Max: utils.Dollars(50_000)},
	{Min: utils.Dollars(2_500), Max: utils.Dollars(150_000)},
	{Min: utils.Dollars(10_000), Max: utils.Dollars(500_000)},
	{Min: utils.Dollars(25_000), Max: utils.Dollars(2_000_000)},
}

// DepositBand returns the deposit amount band for a tier
func DepositBand(tier int) AmountRange {
	if tier < 0 || tier >= len(depositBands) {
		tier = 0
	}
	return depositBands[tier]
}

// DepositShape names the amount distribution used for a business model's
// incoming payments
type DepositShape string

const (
	// Many small deposits with an occasional large one
	DepositShapeExponential DepositShape = "exponential"
	// Fewer, larger project-based deposits
	DepositShapeHighNormal DepositShape = "high_normal"
	DepositShapeUniform    DepositShape = "uniform"
)

// DepositShapeFor returns the deposit shape for a business model
func DepositShapeFor(model models.BusinessModel) DepositShape {
	switch model {
	case models.ModelB2BSaaS, models.ModelB2CSaaS, models.ModelEcommerce,
		models.ModelMarketplace, models.ModelSubscription:
		return DepositShapeExponential
	case models.ModelConsulting, models.ModelAgency, models.ModelLicensing:
		return DepositShapeHighNormal
	default:
		return DepositShapeUniform
	}
}
