package models

import (
	"time"
)

// DateLayout is the calendar-date format used for every date field in the
// generated fixtures (dates carry no time of day).
const DateLayout = "2006-01-02"

// Industry is the company's line of business
type Industry string

const (
	IndustryTechnology    Industry = "Technology"
	IndustryHealthcare    Industry = "Healthcare"
	IndustryFinance       Industry = "Finance"
	IndustryRetail        Industry = "Retail"
	IndustryManufacturing Industry = "Manufacturing"
	IndustryRealEstate    Industry = "Real Estate"
	IndustryConsulting    Industry = "Consulting"
	IndustryEducation     Industry = "Education"
	IndustryHospitality   Industry = "Hospitality"
	IndustryConstruction  Industry = "Construction"
	IndustryMedia         Industry = "Media & Entertainment"
	IndustryTransport     Industry = "Transportation & Logistics"
	IndustryLegal         Industry = "Legal Services"
	IndustryMarketing     Industry = "Marketing & Advertising"
	IndustryFoodBeverage  Industry = "Food & Beverage"
)

// BusinessModel describes how the company earns revenue
type BusinessModel string

const (
	ModelB2BSaaS       BusinessModel = "B2B SaaS"
	ModelB2CSaaS       BusinessModel = "B2C SaaS"
	ModelEcommerce     BusinessModel = "E-commerce"
	ModelMarketplace   BusinessModel = "Marketplace"
	ModelSubscription  BusinessModel = "Subscription"
	ModelConsulting    BusinessModel = "Consulting"
	ModelAgency        BusinessModel = "Agency"
	ModelBrickMortar   BusinessModel = "Brick and Mortar"
	ModelManufacturing BusinessModel = "Manufacturing"
	ModelLicensing     BusinessModel = "Licensing"
)

// CompanySize is the display label of a size tier, e.g. "Medium (51-200)"
type CompanySize string

const (
	SizeStartup    CompanySize = "Startup (1-10)"
	SizeSmall      CompanySize = "Small (11-50)"
	SizeMedium     CompanySize = "Medium (51-200)"
	SizeLarge      CompanySize = "Large (201-1000)"
	SizeEnterprise CompanySize = "Enterprise (1000+)"
)

// CompanyProfile is the input that drives a generation run. Fields left
// empty are filled in by the company generator; once complete the profile
// is treated as immutable.
type CompanyProfile struct {
	CompanyName   string        `json:"company_name" validate:"required"`
	Industry      Industry      `json:"industry" validate:"required"`
	BusinessModel BusinessModel `json:"business_model" validate:"required"`
	CompanySize   CompanySize   `json:"company_size" validate:"required"`

	// YYYY-MM-DD, never after today
	FoundingDate string `json:"founding_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Location     string `json:"location,omitempty"`

	// Derived by CalculateFinancialMetrics, whole dollars
	AnnualRevenue int64 `json:"annual_revenue,omitempty" validate:"gte=0"`
	EmployeeCount int   `json:"employee_count,omitempty" validate:"gte=0"`
}

// Founded returns the parsed founding date
func (c *CompanyProfile) Founded() (time.Time, error) {
	return ParseDate(c.FoundingDate)
}

// ParseDate parses a YYYY-MM-DD date in UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate formats a time as a YYYY-MM-DD date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current calendar date at UTC midnight
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
