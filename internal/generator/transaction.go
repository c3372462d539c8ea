package generator

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/willfong/finfixture/internal/config"
	"github.com/willfong/finfixture/internal/data"
	"github.com/willfong/finfixture/internal/generator/patterns"
	"github.com/willfong/finfixture/internal/models"
	"github.com/willfong/finfixture/internal/utils"
)

// TransactionGenerator creates the added/modified/removed transaction feed
// for a set of accounts.
type TransactionGenerator struct {
	rng     utils.Source
	refData *data.ReferenceData
	config  TransactionGeneratorConfig

	usedIDs map[string]bool
}

// TransactionGeneratorConfig holds settings for transaction generation
type TransactionGeneratorConfig struct {
	// Today caps transaction dates; zero means the current UTC date
	Today time.Time

	// PendingProbability overrides config.PendingProbability when > 0
	PendingProbability float64
}

// TransactionOptions narrows a single GenerateTransactionSet call
type TransactionOptions struct {
	// AddedCount is the exact number of added transactions (0 = tier default)
	AddedCount int

	// StartDate and EndDate bound transaction dates (zero = last 730 days)
	StartDate time.Time
	EndDate   time.Time
}

// TransactionSet is the sync-feed triple produced for one request
type TransactionSet struct {
	Added    []models.Transaction
	Modified []models.Transaction
	Removed  []models.RemovedTransaction
}

// NewTransactionGenerator creates a new transaction generator
func NewTransactionGenerator(rng utils.Source, refData *data.ReferenceData, config TransactionGeneratorConfig) *TransactionGenerator {
	if config.Today.IsZero() {
		config.Today = models.Today()
	}
	return &TransactionGenerator{
		rng:     rng,
		refData: refData,
		config:  config,
	}
}

func emptySet() TransactionSet {
	return TransactionSet{
		Added:    []models.Transaction{},
		Modified: []models.Transaction{},
		Removed:  []models.RemovedTransaction{},
	}
}

// GenerateTransactionSet builds the added feed for accounts and derives the
// modified and removed feeds from it. When there is no depository account to
// receive deposits or no account to pay from, the result is empty.
func (g *TransactionGenerator) GenerateTransactionSet(accounts []models.Account, profile models.CompanyProfile, opts TransactionOptions) TransactionSet {
	var depositAccounts, paymentAccounts []*models.Account
	for i := range accounts {
		a := &accounts[i]
		if a.CanReceiveDeposits() {
			depositAccounts = append(depositAccounts, a)
		}
		if a.CanMakePayments() {
			paymentAccounts = append(paymentAccounts, a)
		}
	}
	if len(depositAccounts) == 0 || len(paymentAccounts) == 0 {
		return emptySet()
	}

	tier, _ := data.TierFor(profile.CompanySize)
	total := opts.AddedCount
	if total <= 0 {
		total = data.BaseTransactionCount(tier.Index)
	}

	share := g.rng.Float64Range(config.DepositShareMin, config.DepositShareMax)
	numDeposits := int(math.Round(float64(total) * share))
	if numDeposits > total {
		numDeposits = total
	}
	numPayments := total - numDeposits

	start, end := g.window(opts)
	g.usedIDs = make(map[string]bool, total)

	ctx := newDescriptionContext(profile)
	added := make([]models.Transaction, 0, total)

	depositDist := depositDistribution(data.DepositBand(tier.Index), data.DepositShapeFor(profile.BusinessModel))
	for i := 0; i < numDeposits; i++ {
		acct := depositAccounts[g.rng.IntN(len(depositAccounts))]
		date := patterns.RecentDate(g.rng.Float64(), start, end)
		added = append(added, g.deposit(acct, date, depositDist, ctx))
	}

	vendors := g.vendorPool(profile.Industry)
	for i := 0; i < numPayments; i++ {
		acct := paymentAccounts[g.rng.IntN(len(paymentAccounts))]
		date := patterns.RecentDate(g.rng.Float64(), start, end)
		merchant := vendors.pick(g.rng)
		added = append(added, g.payment(acct, date, merchant, tier.Index, ctx))
	}

	SortAdded(added)

	return TransactionSet{
		Added:    added,
		Modified: g.deriveModified(added, total),
		Removed:  g.deriveRemoved(added, total),
	}
}

// window resolves the date range, capping the end at today
func (g *TransactionGenerator) window(opts TransactionOptions) (time.Time, time.Time) {
	end := opts.EndDate
	if end.IsZero() || end.After(g.config.Today) {
		end = g.config.Today
	}
	start := opts.StartDate
	if start.IsZero() {
		start = end.AddDate(0, 0, -config.DefaultWindowDays)
	}
	if start.After(end) {
		start = end
	}
	return start, end
}

func depositDistribution(band data.AmountRange, shape data.DepositShape) *patterns.AmountDistribution {
	lo, hi := band.Min.ToCents(), band.Max.ToCents()
	switch shape {
	case data.DepositShapeExponential:
		return patterns.NewExponentialAmountRange(lo, hi).WithNiceRounding()
	case data.DepositShapeHighNormal:
		return patterns.NewNormalAmountRange(lo, hi, 0.65, 0.2).WithNiceRounding()
	default:
		return patterns.NewAmountRange(lo, hi).WithNiceRounding()
	}
}

// deposit builds one inflow on a depository account. Amounts are whole dollars.
func (g *TransactionGenerator) deposit(acct *models.Account, date time.Time, dist *patterns.AmountDistribution, ctx descriptionContext) models.Transaction {
	source := g.rng.PickString(g.refData.DepositSources())
	client := g.rng.PickString(g.refData.Clients())
	service := g.rng.PickString(g.refData.Services())

	cents := dist.GenerateAmount(g.rng.Float64(), g.rng.NormalFloat64())
	amount := utils.Cents(cents).RoundToNearest(utils.Dollars(1)).Max(utils.Dollars(1))

	txn := g.baseTransaction(acct, date, source)
	txn.Amount = amount.ToDollars()
	txn.Name = formatDescription(g.rng, source, date, ctx.with(client, service))

	processor := depositProcessor(source)
	method := depositMethod(source)
	txn.PaymentChannel = models.ChannelOther
	if processor != "" {
		txn.PaymentChannel = models.ChannelOnline
		txn.PaymentMeta.PaymentProcessor = models.String(processor)
	}
	txn.PaymentMeta.Payer = models.String(client)
	txn.PaymentMeta.Payee = models.String(ctx.company)
	txn.PaymentMeta.PaymentMethod = models.String(method)
	txn.PaymentMeta.ReferenceNumber = models.String(g.rng.NumericString(10))
	switch method {
	case "ACH":
		txn.PaymentMeta.PPDID = models.String(g.rng.NumericString(10))
	case "Wire":
		txn.PaymentMeta.ByOrderOf = models.String(client)
	}
	txn.PaymentMeta.Reason = models.String(service)

	return txn
}

// payment builds one outflow to a vendor
func (g *TransactionGenerator) payment(acct *models.Account, date time.Time, merchant string, tier int, ctx descriptionContext) models.Transaction {
	bucket := data.MerchantTypeFor(merchant)
	amount := g.paymentAmount(merchant, bucket, tier)

	txn := g.baseTransaction(acct, date, merchant)
	txn.Amount = amount.Neg().ToDollars()
	txn.Name = formatDescription(g.rng, merchant, date,
		ctx.with(g.rng.PickString(g.refData.Clients()), g.rng.PickString(g.refData.Services())))

	switch bucket {
	case data.MerchantCloud, data.MerchantSoftware, data.MerchantMarketing:
		txn.PaymentChannel = models.ChannelOnline
	case data.MerchantUtilities:
		txn.PaymentChannel = models.ChannelOther
	default:
		txn.PaymentChannel = models.ChannelInStore
		txn.Location = g.storeLocation(ctx)
	}

	method := "Debit Card"
	switch {
	case acct.Type == models.AccountTypeCredit:
		method = "Credit Card"
	case txn.PaymentChannel == models.ChannelOther:
		method = "ACH"
	}
	txn.PaymentMeta.Payee = models.String(merchant)
	txn.PaymentMeta.Payer = models.String(ctx.company)
	txn.PaymentMeta.PaymentMethod = models.String(method)
	if g.rng.Probability(0.5) {
		txn.PaymentMeta.ReferenceNumber = models.String(g.rng.NumericString(8))
	}

	return txn
}

// paymentAmount draws from the vendor's list price range when known, then
// the bucket range for the tier, then the default range. Never below $1.
func (g *TransactionGenerator) paymentAmount(merchant string, bucket data.MerchantType, tier int) utils.Money {
	r, ok := data.VendorPriceRange(merchant)
	if !ok {
		r, _ = data.PaymentRange(bucket, tier)
	}
	if r.Max <= 0 {
		r = data.DefaultPaymentRange
	}
	return utils.RandomAmount(g.rng, r.Min, r.Max).Max(utils.Dollars(1))
}

// baseTransaction fills the fields shared by deposits and payments
func (g *TransactionGenerator) baseTransaction(acct *models.Account, date time.Time, merchant string) models.Transaction {
	txn := models.Transaction{
		TransactionID:   g.newID(),
		AccountID:       acct.AccountID,
		IsoCurrencyCode: acct.Balances.IsoCurrencyCode,
		Date:            models.FormatDate(date),
		MerchantName:    merchant,
		Category:        data.CategoryFor(merchant),
	}

	pendingP := g.config.PendingProbability
	if pendingP <= 0 {
		pendingP = config.PendingProbability
	}
	txn.Pending = g.rng.Probability(pendingP)

	authorized := date
	if !txn.Pending {
		authorized = date.AddDate(0, 0, -g.rng.IntRange(0, config.MaxAuthorizationLagDays))
	}
	txn.AuthorizedDate = models.String(models.FormatDate(authorized))

	return txn
}

func (g *TransactionGenerator) storeLocation(ctx descriptionContext) models.Location {
	loc := models.Location{Country: models.String("US")}
	if ctx.city != "" {
		loc.City = models.String(ctx.city)
	}
	if ctx.region != "" {
		loc.Region = models.String(ctx.region)
	}
	if g.rng.Probability(0.5) {
		loc.StoreNumber = models.String(g.rng.NumericString(4))
	}
	return loc
}

func (g *TransactionGenerator) newID() string {
	id := g.rng.String(config.AccountIDLength)
	for g.usedIDs[id] {
		id = g.rng.String(config.AccountIDLength)
	}
	g.usedIDs[id] = true
	return id
}

// vendorPool is a weighted merchant list: industry vendors outweigh common ones
type vendorPool struct {
	names   []string
	weights []int
}

func (g *TransactionGenerator) vendorPool(industry models.Industry) vendorPool {
	var p vendorPool
	for _, v := range g.refData.VendorsFor(industry) {
		p.names = append(p.names, v)
		p.weights = append(p.weights, config.IndustryVendorWeight)
	}
	for _, v := range g.refData.CommonVendors() {
		p.names = append(p.names, v)
		p.weights = append(p.weights, config.CommonVendorWeight)
	}
	return p
}

func (p vendorPool) pick(rng utils.Source) string {
	idx := rng.WeightedPick(p.weights)
	if idx < 0 {
		return "Miscellaneous Vendor"
	}
	return p.names[idx]
}

func depositProcessor(source string) string {
	for _, p := range []string{"Stripe", "PayPal", "Square", "Shopify"} {
		if strings.Contains(source, p) {
			return p
		}
	}
	return ""
}

func depositMethod(source string) string {
	switch {
	case strings.Contains(source, "Wire"):
		return "Wire"
	case strings.Contains(source, "Check"), strings.Contains(source, "Mobile"):
		return "Check"
	case depositProcessor(source) != "":
		return "Card"
	default:
		return "ACH"
	}
}

// SortAdded orders transactions most recent first. Same-day entries are
// ordered by transaction ID so the order is total.
func SortAdded(txns []models.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		if txns[i].Date != txns[j].Date {
			return txns[i].Date > txns[j].Date
		}
		return txns[i].TransactionID < txns[j].TransactionID
	})
}
