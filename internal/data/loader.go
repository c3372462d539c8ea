package data

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/willfong/finfixture/internal/models"
)

//go:embed catalog/*.json
var dataFiles embed.FS

// ReferenceData holds the embedded catalogs the generators draw names from
type ReferenceData struct {
	Vendors VendorsData
	Banks   BanksData
	Names   NamesData

	// Lookup maps for efficient access
	bankByName map[string]*Bank
	bankNames  []string
}

// VendorsData represents the structure of vendors.json
type VendorsData struct {
	Common     []string            `json:"common"`
	Industries map[string][]string `json:"industries"`
}

// BanksData represents the structure of banks.json
type BanksData struct {
	Banks []Bank `json:"banks"`
}

// Bank is one institution and the product names it offers per account kind
type Bank struct {
	Name          string            `json:"name"`
	RoutingPrefix string            `json:"routing_prefix"`
	Checking      []string          `json:"checking"`
	Savings       []string          `json:"savings"`
	CreditCard    []string          `json:"credit_card"`
	Investment    map[string]string `json:"investment"`
	Loans         map[string]string `json:"loans"`
}

// NamesData represents the structure of names.json
type NamesData struct {
	CompanyPrefixes []string `json:"company_prefixes"`
	CompanySuffixes []string `json:"company_suffixes"`
	Locations       []string `json:"locations"`
	Clients         []string `json:"clients"`
	Services        []string `json:"services"`
	DepositSources  []string `json:"deposit_sources"`
}

var (
	instance *ReferenceData
	once     sync.Once
	loadErr  error
)

// Load loads all reference data from embedded files
// This is thread-safe and will only load data once
func Load() (*ReferenceData, error) {
	once.Do(func() {
		instance = &ReferenceData{}
		loadErr = instance.loadAll()
	})

	if loadErr != nil {
		return nil, loadErr
	}
	return instance, nil
}

// MustLoad is Load for callers that treat a broken embedded catalog as a
// programming error.
func MustLoad() *ReferenceData {
	r, err := Load()
	if err != nil {
		panic(err)
	}
	return r
}

// loadAll loads all data files
func (r *ReferenceData) loadAll() error {
	files := []struct {
		name string
		dst  any
	}{
		{"catalog/vendors.json", &r.Vendors},
		{"catalog/banks.json", &r.Banks},
		{"catalog/names.json", &r.Names},
	}

	for _, f := range files {
		data, err := dataFiles.ReadFile(f.name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.name, err)
		}
		if err := json.Unmarshal(data, f.dst); err != nil {
			return fmt.Errorf("failed to parse %s: %w", f.name, err)
		}
	}

	if len(r.Banks.Banks) == 0 {
		return fmt.Errorf("bank catalog is empty")
	}
	if len(r.Vendors.Common) == 0 {
		return fmt.Errorf("common vendor catalog is empty")
	}

	r.buildLookups()
	return nil
}

// buildLookups creates efficient lookup structures
func (r *ReferenceData) buildLookups() {
	r.bankByName = make(map[string]*Bank, len(r.Banks.Banks))
	r.bankNames = make([]string, 0, len(r.Banks.Banks))
	for i := range r.Banks.Banks {
		b := &r.Banks.Banks[i]
		r.bankByName[b.Name] = b
		r.bankNames = append(r.bankNames, b.Name)
	}
}

// VendorsFor returns the industry-specific vendor list. Unknown industries
// get an empty list; callers still have CommonVendors to draw from.
func (r *ReferenceData) VendorsFor(industry models.Industry) []string {
	return r.Vendors.Industries[string(industry)]
}

// CommonVendors returns vendors any business might pay
func (r *ReferenceData) CommonVendors() []string {
	return r.Vendors.Common
}

// BankNames returns the catalog's institution names in file order
func (r *ReferenceData) BankNames() []string {
	return r.bankNames
}

// BankProductsFor returns the product catalog for a bank. Unknown names fall
// back to the first bank in the catalog.
func (r *ReferenceData) BankProductsFor(name string) *Bank {
	if b, ok := r.bankByName[name]; ok {
		return b
	}
	return &r.Banks.Banks[0]
}

// CompanyPrefixes returns the first-word pool for generated company names
func (r *ReferenceData) CompanyPrefixes() []string {
	return r.Names.CompanyPrefixes
}

// CompanySuffixes returns the last-word pool for generated company names
func (r *ReferenceData) CompanySuffixes() []string {
	return r.Names.CompanySuffixes
}

// Locations returns "City, ST" strings
func (r *ReferenceData) Locations() []string {
	return r.Names.Locations
}

// Clients returns customer names used in deposit descriptions
func (r *ReferenceData) Clients() []string {
	return r.Names.Clients
}

// Services returns service labels used in deposit descriptions
func (r *ReferenceData) Services() []string {
	return r.Names.Services
}

// DepositSources returns the merchant labels used for incoming money
func (r *ReferenceData) DepositSources() []string {
	return r.Names.DepositSources
}

// InvestmentProduct returns the bank's product name for an investment subtype
func (b *Bank) InvestmentProduct(subtype models.AccountSubtype) string {
	if name, ok := b.Investment[string(subtype)]; ok {
		return name
	}
	return "Business Investment Account"
}

// LoanProduct returns the bank's product name for a loan subtype
func (b *Bank) LoanProduct(subtype models.AccountSubtype) string {
	if name, ok := b.Loans[string(subtype)]; ok {
		return name
	}
	return "Business Loan"
}
