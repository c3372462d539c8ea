package data

import (
	"reflect"
	"testing"

	"github.com/willfong/finfixture/internal/models"
)

func TestLoad(t *testing.T) {
	data, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	t.Run("Vendors", func(t *testing.T) {
		if len(data.CommonVendors()) == 0 {
			t.Error("No common vendors loaded")
		}
		for _, industry := range Industries {
			if len(data.VendorsFor(industry)) == 0 {
				t.Errorf("No vendors for industry %q", industry)
			}
		}
	})

	t.Run("Banks", func(t *testing.T) {
		if len(data.BankNames()) < 5 {
			t.Errorf("Expected at least 5 banks, got %d", len(data.BankNames()))
		}
		for _, name := range data.BankNames() {
			b := data.BankProductsFor(name)
			if len(b.Checking) == 0 || len(b.Savings) == 0 || len(b.CreditCard) == 0 {
				t.Errorf("Bank %s is missing depository or card products", name)
			}
			if len(b.RoutingPrefix) != 4 {
				t.Errorf("Bank %s routing prefix %q should be 4 digits", name, b.RoutingPrefix)
			}
			for _, st := range models.Subtypes[models.AccountTypeLoan] {
				if _, ok := b.Loans[string(st)]; !ok {
					t.Errorf("Bank %s has no %s loan product", name, st)
				}
			}
		}
	})

	t.Run("Names", func(t *testing.T) {
		if len(data.CompanyPrefixes()) < 15 {
			t.Errorf("Expected at least 15 company prefixes, got %d", len(data.CompanyPrefixes()))
		}
		if len(data.CompanySuffixes()) < 15 {
			t.Errorf("Expected at least 15 company suffixes, got %d", len(data.CompanySuffixes()))
		}
		if len(data.Locations()) == 0 || len(data.Clients()) == 0 || len(data.Services()) == 0 {
			t.Error("Name pools should not be empty")
		}
		if len(data.DepositSources()) == 0 {
			t.Error("No deposit sources loaded")
		}
	})
}

func TestLoadIdempotent(t *testing.T) {
	a, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	b, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if a != b {
		t.Error("Load() should return the same instance")
	}
}

func TestBankProductsForUnknown(t *testing.T) {
	data := MustLoad()
	b := data.BankProductsFor("No Such Bank")
	if b == nil || b.Name != data.BankNames()[0] {
		t.Error("Unknown bank should fall back to the first catalog entry")
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		size  models.CompanySize
		index int
		known bool
	}{
		{models.SizeStartup, 0, true},
		{models.SizeSmall, 1, true},
		{models.SizeMedium, 2, true},
		{models.SizeLarge, 3, true},
		{models.SizeEnterprise, 4, true},
		{"Gigantic", 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.size), func(t *testing.T) {
			tier, ok := TierFor(tt.size)
			if ok != tt.known {
				t.Errorf("TierFor(%q) known = %v, want %v", tt.size, ok, tt.known)
			}
			if tier.Index != tt.index {
				t.Errorf("TierFor(%q) index = %d, want %d", tt.size, tier.Index, tt.index)
			}
			if tier.MinEmployees > tier.MaxEmployees {
				t.Errorf("Tier %q has min %d > max %d", tt.size, tier.MinEmployees, tier.MaxEmployees)
			}
		})
	}
}

func TestDistributionFor(t *testing.T) {
	tests := []struct {
		size  models.CompanySize
		total int
	}{
		{models.SizeStartup, 3},
		{models.SizeSmall, 5},
		{models.SizeMedium, 7},
		{models.SizeLarge, 12},
		{models.SizeEnterprise, 15},
		{"Unknown", 5},
	}
	for _, tt := range tests {
		if got := DistributionFor(tt.size).Total(); got != tt.total {
			t.Errorf("DistributionFor(%q).Total() = %d, want %d", tt.size, got, tt.total)
		}
	}
}

func TestTierTablesFallBack(t *testing.T) {
	if BaseRevenue(-1) != BaseRevenue(0) || BaseRevenue(99) != BaseRevenue(0) {
		t.Error("Out-of-range tier should use tier 0 revenue")
	}
	if BaseTransactionCount(7) != 50 {
		t.Errorf("BaseTransactionCount(7) = %d, want 50", BaseTransactionCount(7))
	}
	if IndustryMultiplier("Alchemy") != 1.0 {
		t.Error("Unknown industry should have multiplier 1.0")
	}
	for _, ind := range Industries {
		m := IndustryMultiplier(ind)
		if m < 0.5 || m > 1.8 {
			t.Errorf("Multiplier for %s = %v out of [0.5, 1.8]", ind, m)
		}
	}
}

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		merchant string
		want     []string
	}{
		{"AWS", []string{"Business Services", "Cloud Computing"}},
		{"Stripe", []string{"Transfer", "Deposit"}},
		{"Shopify Payout", []string{"Transfer", "Deposit"}},
		{"Shopify", []string{"Service", "Computers", "Software"}},
		{"Uber Eats", []string{"Food and Drink", "Restaurants"}},
		{"Uber", []string{"Travel", "Taxi"}},
		{"Staples", []string{"Shops", "Office Supplies"}},
		{"Totally Unknown LLC", DefaultCategory},
	}

	for _, tt := range tests {
		t.Run(tt.merchant, func(t *testing.T) {
			got := CategoryFor(tt.merchant)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CategoryFor(%q) = %v, want %v", tt.merchant, got, tt.want)
			}
		})
	}

	t.Run("Pure", func(t *testing.T) {
		a := CategoryFor("Slack")
		a[0] = "mutated"
		b := CategoryFor("Slack")
		if b[0] == "mutated" {
			t.Error("CategoryFor should return a fresh slice each call")
		}
	})

	t.Run("EveryVendorClassifies", func(t *testing.T) {
		data := MustLoad()
		for _, v := range data.CommonVendors() {
			if len(CategoryFor(v)) == 0 {
				t.Errorf("Vendor %q has empty category", v)
			}
		}
	})
}

func TestMerchantTypeFor(t *testing.T) {
	tests := map[string]MerchantType{
		"Google Cloud":     MerchantCloud,
		"Slack":            MerchantSoftware,
		"Staples":          MerchantOffice,
		"Comcast Business": MerchantUtilities,
		"Google Ads":       MerchantMarketing,
		"Starbucks":        MerchantDefault,
	}
	for merchant, want := range tests {
		if got := MerchantTypeFor(merchant); got != want {
			t.Errorf("MerchantTypeFor(%q) = %s, want %s", merchant, got, want)
		}
	}
}

func TestPaymentRange(t *testing.T) {
	small, ok := PaymentRange(MerchantCloud, 0)
	if !ok {
		t.Fatal("Cloud bucket should have a dedicated range")
	}
	large, _ := PaymentRange(MerchantCloud, 4)
	if large.Max <= small.Max {
		t.Errorf("Enterprise range max %v should exceed startup max %v", large.Max, small.Max)
	}

	def, ok := PaymentRange(MerchantDefault, 0)
	if ok {
		t.Error("Default bucket should report no dedicated range")
	}
	if def != DefaultPaymentRange {
		t.Errorf("Default bucket at tier 0 = %+v, want %+v", def, DefaultPaymentRange)
	}

	if _, ok := VendorPriceRange("Zoom"); !ok {
		t.Error("Zoom should have a vendor price range")
	}
	if _, ok := VendorPriceRange("Nobody"); ok {
		t.Error("Unknown vendor should have no price range")
	}
}

func TestDescriptionTemplateFor(t *testing.T) {
	if tmpl, ok := DescriptionTemplateFor("AWS"); !ok || tmpl == "" {
		t.Error("AWS should have a brand template")
	}
	if tmpl, _ := DescriptionTemplateFor("Uber Eats"); tmpl != "UBER *EATS {random} HELP.UBER.COM CA" {
		t.Errorf("Uber Eats template = %q", tmpl)
	}
	if _, ok := DescriptionTemplateFor("Corner Hardware"); ok {
		t.Error("Unknown merchant should have no template")
	}
}

func TestDepositShapeFor(t *testing.T) {
	if DepositShapeFor(models.ModelB2BSaaS) != DepositShapeExponential {
		t.Error("SaaS deposits should be exponential")
	}
	if DepositShapeFor(models.ModelConsulting) != DepositShapeHighNormal {
		t.Error("Consulting deposits should be high-normal")
	}
	if DepositShapeFor(models.ModelBrickMortar) != DepositShapeUniform {
		t.Error("Brick and mortar deposits should be uniform")
	}
}
