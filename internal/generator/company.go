package generator

import (
	"math"
	"time"

	"github.com/willfong/finfixture/internal/config"
	"github.com/willfong/finfixture/internal/data"
	"github.com/willfong/finfixture/internal/models"
	"github.com/willfong/finfixture/internal/utils"
)

// CompanyGenerator completes partial company profiles.
type CompanyGenerator struct {
	rng     utils.Source
	refData *data.ReferenceData
	config  CompanyGeneratorConfig
}

// CompanyGeneratorConfig holds settings for company generation
type CompanyGeneratorConfig struct {
	// Today caps founding dates; zero means the current UTC date
	Today time.Time
}

// NewCompanyGenerator creates a new company generator
func NewCompanyGenerator(rng utils.Source, refData *data.ReferenceData, config CompanyGeneratorConfig) *CompanyGenerator {
	if config.Today.IsZero() {
		config.Today = models.Today()
	}
	return &CompanyGenerator{
		rng:     rng,
		refData: refData,
		config:  config,
	}
}

// GenerateCompanyProfile fills every empty field of partial with a random
// value from its closed set or name pool. Supplied fields are kept as is.
func (g *CompanyGenerator) GenerateCompanyProfile(partial models.CompanyProfile) models.CompanyProfile {
	profile := partial

	if profile.CompanyName == "" {
		profile.CompanyName = g.generateName()
	}
	if profile.Industry == "" {
		profile.Industry = data.Industries[g.rng.IntN(len(data.Industries))]
	}
	if profile.BusinessModel == "" {
		profile.BusinessModel = data.BusinessModels[g.rng.IntN(len(data.BusinessModels))]
	}
	if profile.CompanySize == "" {
		profile.CompanySize = data.Tiers[g.rng.IntN(len(data.Tiers))].Size
	}
	if profile.FoundingDate == "" {
		profile.FoundingDate = models.FormatDate(g.generateFoundingDate())
	}
	if profile.Location == "" {
		profile.Location = g.rng.PickString(g.refData.Locations())
	}
	if profile.EmployeeCount <= 0 {
		tier, _ := data.TierFor(profile.CompanySize)
		profile.EmployeeCount = g.rng.IntRange(tier.MinEmployees, tier.MaxEmployees)
	}

	return profile
}

// CalculateFinancialMetrics derives annual revenue from size tier and
// industry. Unknown tiers use tier 0 and unknown industries a 1.0 multiplier.
func (g *CompanyGenerator) CalculateFinancialMetrics(profile models.CompanyProfile) models.CompanyProfile {
	tier, _ := data.TierFor(profile.CompanySize)
	base := float64(data.BaseRevenue(tier.Index))
	jitter := g.rng.Float64Range(config.RevenueJitterMin, config.RevenueJitterMax)

	revenue := int64(math.Round(base * data.IndustryMultiplier(profile.Industry) * jitter))
	if revenue <= 0 {
		revenue = data.BaseRevenue(0)
	}
	profile.AnnualRevenue = revenue
	return profile
}

// Complete runs GenerateCompanyProfile then CalculateFinancialMetrics
func (g *CompanyGenerator) Complete(partial models.CompanyProfile) models.CompanyProfile {
	return g.CalculateFinancialMetrics(g.GenerateCompanyProfile(partial))
}

func (g *CompanyGenerator) generateName() string {
	prefix := g.rng.PickString(g.refData.CompanyPrefixes())
	suffix := g.rng.PickString(g.refData.CompanySuffixes())
	return prefix + " " + suffix
}

// generateFoundingDate picks a day in the founding window, never after today
func (g *CompanyGenerator) generateFoundingDate() time.Time {
	earliest, _ := models.ParseDate(config.FoundingDateEarliest)
	latest, _ := models.ParseDate(config.FoundingDateLatest)
	if g.config.Today.Before(latest) {
		latest = g.config.Today
	}
	if !earliest.Before(latest) {
		return latest
	}
	days := int(latest.Sub(earliest).Hours() / 24)
	return earliest.AddDate(0, 0, g.rng.IntRange(0, days))
}
