package generator

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/willfong/finfixture/internal/logger"
	"github.com/willfong/finfixture/internal/models"
)

func newTestOrchestrator(t *testing.T, seed int64) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(OrchestratorConfig{Seed: seed, Today: testToday}, OrchestratorOptions{})
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	return o
}

func validCompany() models.CompanyProfile {
	return models.CompanyProfile{
		CompanyName:   "Summit Labs",
		Industry:      models.IndustryTechnology,
		BusinessModel: models.ModelB2BSaaS,
		CompanySize:   models.SizeMedium,
	}
}

func TestGenerateFinancialData_FiltersAccounts(t *testing.T) {
	o := newTestOrchestrator(t, 42)
	opts := models.GenerationOptions{
		NumTransactions: 100,
		IncludeDeposits: true,
		IncludePayments: true,
	}

	res, err := o.GenerateFinancialData(context.Background(), validCompany(), opts)
	if err != nil {
		t.Fatalf("GenerateFinancialData: %v", err)
	}

	if len(res.Added) != 100 {
		t.Errorf("Expected 100 added, got %d", len(res.Added))
	}
	for _, a := range res.Accounts {
		if a.Type == models.AccountTypeInvestment || a.Type == models.AccountTypeLoan {
			t.Errorf("Account %s of type %s should be filtered out", a.Name, a.Type)
		}
	}
	for _, txn := range res.Added {
		if _, ok := res.AccountByID(txn.AccountID); !ok {
			t.Fatalf("Transaction references filtered account %s", txn.AccountID)
		}
	}

	if res.NextCursor != "" || res.HasMore {
		t.Error("Expected a single complete page")
	}
	if res.TransactionsUpdateStatus != models.UpdateStatusComplete {
		t.Errorf("Status = %q", res.TransactionsUpdateStatus)
	}
	if len(res.RequestID) != 36 {
		t.Errorf("Request ID %q should be a UUID", res.RequestID)
	}
	if res.Company == nil || res.Company.AnnualRevenue <= 0 {
		t.Error("Expected a completed company profile")
	}
}

func TestGenerateFinancialData_NoAccounts(t *testing.T) {
	o := newTestOrchestrator(t, 42)

	_, err := o.GenerateFinancialData(context.Background(), validCompany(), models.GenerationOptions{})
	if err == nil {
		t.Fatal("Expected error when every account type is excluded")
	}
	if !errors.Is(err, ErrNoAccounts) {
		t.Errorf("Expected ErrNoAccounts, got %v", err)
	}
	if !strings.Contains(err.Error(), "No accounts available") {
		t.Errorf("Error %q should mention No accounts available", err)
	}
}

func TestGenerateFinancialData_OnlyInvestments(t *testing.T) {
	o := newTestOrchestrator(t, 42)
	res, err := o.GenerateFinancialData(context.Background(), validCompany(), models.GenerationOptions{IncludeInvestments: true})
	if err != nil {
		t.Fatalf("GenerateFinancialData: %v", err)
	}
	if len(res.Accounts) != 1 || res.Accounts[0].Type != models.AccountTypeInvestment {
		t.Fatalf("Expected the single investment account, got %d accounts", len(res.Accounts))
	}
	if len(res.Added) != 0 || res.Added == nil {
		t.Errorf("Expected an empty non-nil added list, got %d", len(res.Added))
	}
}

func TestGenerateFinancialData_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		company func(*models.CompanyProfile)
		opts    models.GenerationOptions
		msg     string
	}{
		{"MissingName", func(c *models.CompanyProfile) { c.CompanyName = "" }, models.DefaultGenerationOptions(), "company_name"},
		{"MissingIndustry", func(c *models.CompanyProfile) { c.Industry = "" }, models.DefaultGenerationOptions(), "industry"},
		{"MissingModel", func(c *models.CompanyProfile) { c.BusinessModel = "" }, models.DefaultGenerationOptions(), "business_model"},
		{"MissingSize", func(c *models.CompanyProfile) { c.CompanySize = "" }, models.DefaultGenerationOptions(), "company_size"},
		{"TooFewTransactions", nil, models.GenerationOptions{NumTransactions: 5, IncludeDeposits: true}, "num_transactions"},
		{"TooManyTransactions", nil, models.GenerationOptions{NumTransactions: 5001, IncludeDeposits: true}, "num_transactions"},
		{"BadDate", nil, models.GenerationOptions{StartDate: "01/02/2024", IncludeDeposits: true}, "start_date"},
		{"StartAfterEnd", nil, models.GenerationOptions{StartDate: "2024-06-01", EndDate: "2024-01-01", IncludeDeposits: true}, "must be before"},
		{"StartEqualsEnd", nil, models.GenerationOptions{StartDate: "2024-06-01", EndDate: "2024-06-01", IncludeDeposits: true}, "must be before"},
		{"StartAfterToday", nil, models.GenerationOptions{StartDate: "2030-01-01", IncludeDeposits: true}, "before today"},
		{"FutureWindow", nil, models.GenerationOptions{StartDate: "2025-07-01", EndDate: "2025-08-01", IncludeDeposits: true}, "before today"},
		{"StartIsToday", nil, models.GenerationOptions{StartDate: "2025-06-15", EndDate: "2025-07-01", IncludeDeposits: true}, "before today"},
		{"FoundedAfterToday", func(c *models.CompanyProfile) { c.FoundingDate = "2025-06-16" }, models.DefaultGenerationOptions(), "founding_date"},
		{"FoundedFarFuture", func(c *models.CompanyProfile) { c.FoundingDate = "2999-01-01" }, models.DefaultGenerationOptions(), "must not be after today"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			company := validCompany()
			if tt.company != nil {
				tt.company(&company)
			}
			_, err := newTestOrchestrator(t, 42).GenerateFinancialData(context.Background(), company, tt.opts)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Expected ErrInvalidInput, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("Error %q should mention %q", err, tt.msg)
			}
		})
	}
}

func TestGenerateFinancialData_FoundedToday(t *testing.T) {
	company := validCompany()
	company.FoundingDate = "2025-06-15"

	res, err := newTestOrchestrator(t, 42).GenerateFinancialData(context.Background(), company, models.DefaultGenerationOptions())
	if err != nil {
		t.Fatalf("Founding date equal to today should be accepted: %v", err)
	}
	if res.Company.FoundingDate != "2025-06-15" {
		t.Errorf("Expected supplied founding date to be kept, got %s", res.Company.FoundingDate)
	}
}

func TestGenerateFinancialData_Logging(t *testing.T) {
	company := validCompany()
	opts := models.GenerationOptions{NumTransactions: 50, IncludeDeposits: true, IncludePayments: true}

	t.Run("ContextLogger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		ctx := logger.WithContext(context.Background(), logger.NewWithWriter(buf))

		if _, err := newTestOrchestrator(t, 42).GenerateFinancialData(ctx, company, opts); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		for _, want := range []string{"accounts built", "generation complete", `"component":"orchestrator"`} {
			if !strings.Contains(out, want) {
				t.Errorf("Expected log output to contain %q, got: %s", want, out)
			}
		}
	})

	t.Run("OptionTakesPrecedence", func(t *testing.T) {
		ctxBuf, optBuf := &bytes.Buffer{}, &bytes.Buffer{}
		ctx := logger.WithContext(context.Background(), logger.NewWithWriter(ctxBuf))
		optLog := zerolog.New(optBuf)

		o, err := NewOrchestrator(OrchestratorConfig{Seed: 42, Today: testToday}, OrchestratorOptions{Logger: &optLog})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := o.GenerateFinancialData(ctx, company, opts); err != nil {
			t.Fatal(err)
		}
		if ctxBuf.Len() != 0 {
			t.Errorf("Context logger should be unused when a logger is configured, got: %s", ctxBuf.String())
		}
		if !strings.Contains(optBuf.String(), "generation complete") {
			t.Errorf("Configured logger missed events: %s", optBuf.String())
		}
	})
}

func TestGenerateFinancialData_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestOrchestrator(t, 42).GenerateFinancialData(ctx, validCompany(), models.DefaultGenerationOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

// Consecutive calls share shape but not values
func TestGenerateFinancialData_ConsecutiveCalls(t *testing.T) {
	o := newTestOrchestrator(t, 0)
	opts := models.GenerationOptions{NumTransactions: 200, IncludeDeposits: true, IncludePayments: true}

	a, err := o.GenerateFinancialData(context.Background(), validCompany(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := o.GenerateFinancialData(context.Background(), validCompany(), opts)
	if err != nil {
		t.Fatal(err)
	}

	if a.RequestID == b.RequestID {
		t.Error("Request IDs should differ between calls")
	}
	if len(a.Accounts) != len(b.Accounts) || len(a.Added) != len(b.Added) ||
		len(a.Modified) != len(b.Modified) || len(a.Removed) != len(b.Removed) {
		t.Error("Calls with identical input should have identical shape")
	}

	same := 0
	for i := range a.Added {
		if a.Added[i].Amount == b.Added[i].Amount {
			same++
		}
	}
	if same == len(a.Added) {
		t.Error("Amounts should differ between calls")
	}
}

func TestGenerateFinancialData_SeedReproducible(t *testing.T) {
	opts := models.GenerationOptions{NumTransactions: 150, IncludeDeposits: true, IncludePayments: true, IncludeLoans: true}

	a, err := newTestOrchestrator(t, 1234).GenerateFinancialData(context.Background(), models.CompanyProfile{
		CompanyName: "X", Industry: models.IndustryRetail, BusinessModel: models.ModelEcommerce, CompanySize: models.SizeSmall,
	}, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := newTestOrchestrator(t, 1234).GenerateFinancialData(context.Background(), models.CompanyProfile{
		CompanyName: "X", Industry: models.IndustryRetail, BusinessModel: models.ModelEcommerce, CompanySize: models.SizeSmall,
	}, opts)
	if err != nil {
		t.Fatal(err)
	}

	if a.RequestID != b.RequestID {
		t.Errorf("Seeded request IDs differ: %s vs %s", a.RequestID, b.RequestID)
	}
	for i := range a.Accounts {
		if a.Accounts[i].AccountID != b.Accounts[i].AccountID || a.Accounts[i].Balances.Current != b.Accounts[i].Balances.Current {
			t.Fatalf("Seeded accounts differ at %d", i)
		}
	}
	for i := range a.Added {
		if a.Added[i].TransactionID != b.Added[i].TransactionID || a.Added[i].Amount != b.Added[i].Amount {
			t.Fatalf("Seeded transactions differ at %d", i)
		}
	}
}

func TestFilterAccounts(t *testing.T) {
	accounts := []models.Account{
		{AccountID: "d", Type: models.AccountTypeDepository},
		{AccountID: "c", Type: models.AccountTypeCredit},
		{AccountID: "i", Type: models.AccountTypeInvestment},
		{AccountID: "l", Type: models.AccountTypeLoan},
	}

	tests := []struct {
		name string
		opts models.GenerationOptions
		want string
	}{
		{"All", models.GenerationOptions{IncludeDeposits: true, IncludePayments: true, IncludeInvestments: true, IncludeLoans: true}, "dcil"},
		{"Defaults", models.DefaultGenerationOptions(), "dc"},
		{"LoansOnly", models.GenerationOptions{IncludeLoans: true}, "l"},
		{"None", models.GenerationOptions{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got strings.Builder
			for _, a := range FilterAccounts(accounts, tt.opts) {
				got.WriteString(a.AccountID)
			}
			if got.String() != tt.want {
				t.Errorf("Kept %q, want %q", got.String(), tt.want)
			}
		})
	}
}
