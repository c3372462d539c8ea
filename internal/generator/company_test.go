package generator

import (
	"testing"
	"time"

	"github.com/willfong/finfixture/internal/data"
	"github.com/willfong/finfixture/internal/models"
	"github.com/willfong/finfixture/internal/utils"
)

var testToday = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func TestGenerateCompanyProfile(t *testing.T) {
	refData := data.MustLoad()

	t.Run("FillsEmptyFields", func(t *testing.T) {
		gen := NewCompanyGenerator(utils.NewRandom(42), refData, CompanyGeneratorConfig{Today: testToday})
		p := gen.GenerateCompanyProfile(models.CompanyProfile{})

		if p.CompanyName == "" || p.Industry == "" || p.BusinessModel == "" || p.CompanySize == "" {
			t.Fatalf("Expected all required fields to be filled, got %+v", p)
		}
		if p.Location == "" {
			t.Error("Expected location to be filled")
		}
		if _, ok := data.TierFor(p.CompanySize); !ok {
			t.Errorf("Generated size %q is not in the closed set", p.CompanySize)
		}
		tier, _ := data.TierFor(p.CompanySize)
		if p.EmployeeCount < tier.MinEmployees || p.EmployeeCount > tier.MaxEmployees {
			t.Errorf("Employee count %d outside tier bounds [%d, %d]", p.EmployeeCount, tier.MinEmployees, tier.MaxEmployees)
		}
	})

	t.Run("KeepsSuppliedFields", func(t *testing.T) {
		gen := NewCompanyGenerator(utils.NewRandom(42), refData, CompanyGeneratorConfig{Today: testToday})
		in := models.CompanyProfile{
			CompanyName:   "Acme Widgets",
			Industry:      models.IndustryRetail,
			BusinessModel: models.ModelEcommerce,
			CompanySize:   models.SizeLarge,
			FoundingDate:  "2001-02-03",
			Location:      "Boise, ID",
		}
		p := gen.GenerateCompanyProfile(in)
		if p.CompanyName != in.CompanyName || p.Industry != in.Industry || p.BusinessModel != in.BusinessModel ||
			p.CompanySize != in.CompanySize || p.FoundingDate != in.FoundingDate || p.Location != in.Location {
			t.Errorf("Supplied fields were changed: %+v", p)
		}
	})

	t.Run("FoundingDateNotAfterToday", func(t *testing.T) {
		today := time.Date(1990, 3, 1, 0, 0, 0, 0, time.UTC)
		gen := NewCompanyGenerator(utils.NewRandom(7), refData, CompanyGeneratorConfig{Today: today})
		for i := 0; i < 200; i++ {
			p := gen.GenerateCompanyProfile(models.CompanyProfile{})
			founded, err := p.Founded()
			if err != nil {
				t.Fatalf("Unparseable founding date %q: %v", p.FoundingDate, err)
			}
			if founded.After(today) {
				t.Fatalf("Founding date %s after today %s", p.FoundingDate, models.FormatDate(today))
			}
			if founded.Year() < 1980 {
				t.Fatalf("Founding date %s before 1980", p.FoundingDate)
			}
		}
	})

	t.Run("Reproducible", func(t *testing.T) {
		a := NewCompanyGenerator(utils.NewRandom(42), refData, CompanyGeneratorConfig{Today: testToday}).Complete(models.CompanyProfile{})
		b := NewCompanyGenerator(utils.NewRandom(42), refData, CompanyGeneratorConfig{Today: testToday}).Complete(models.CompanyProfile{})
		if a != b {
			t.Errorf("Same seed produced different profiles:\n%+v\n%+v", a, b)
		}
	})
}

func TestCalculateFinancialMetrics(t *testing.T) {
	refData := data.MustLoad()
	gen := NewCompanyGenerator(utils.NewRandom(42), refData, CompanyGeneratorConfig{Today: testToday})

	tests := []struct {
		name     string
		size     models.CompanySize
		industry models.Industry
		base     int64
		mult     float64
	}{
		{"StartupTech", models.SizeStartup, models.IndustryTechnology, 500_000, 1.5},
		{"EnterpriseFinance", models.SizeEnterprise, models.IndustryFinance, 200_000_000, 1.8},
		{"UnknownSize", "Colossal", models.IndustryEducation, 500_000, 0.5},
		{"UnknownIndustry", models.SizeMedium, "Alchemy", 10_000_000, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				p := gen.CalculateFinancialMetrics(models.CompanyProfile{CompanySize: tt.size, Industry: tt.industry})
				lo := int64(float64(tt.base)*tt.mult*0.8) - 1
				hi := int64(float64(tt.base)*tt.mult*1.2) + 1
				if p.AnnualRevenue <= 0 {
					t.Fatalf("Revenue must be positive, got %d", p.AnnualRevenue)
				}
				if p.AnnualRevenue < lo || p.AnnualRevenue > hi {
					t.Fatalf("Revenue %d outside [%d, %d]", p.AnnualRevenue, lo, hi)
				}
			}
		})
	}
}
