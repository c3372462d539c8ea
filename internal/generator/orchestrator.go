package generator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/willfong/finfixture/internal/config"
	"github.com/willfong/finfixture/internal/data"
	"github.com/willfong/finfixture/internal/logger"
	"github.com/willfong/finfixture/internal/models"
	"github.com/willfong/finfixture/internal/utils"
)

var (
	// ErrInvalidInput marks precondition failures in the company profile or
	// generation options
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoAccounts marks requests whose include filters leave no accounts
	ErrNoAccounts = errors.New("no eligible accounts")
)

// Orchestrator runs the company, account and transaction generators for a
// request and assembles the sync-style result.
type Orchestrator struct {
	rng      *utils.Random
	refData  *data.ReferenceData
	config   OrchestratorConfig
	log      *zerolog.Logger
	validate *validator.Validate
}

// OrchestratorConfig holds settings for the orchestrator
type OrchestratorConfig struct {
	// Seed for reproducibility (0 = random)
	Seed int64

	// Today caps founding and transaction dates; zero means the current UTC date
	Today time.Time
}

// OrchestratorOptions holds optional settings for the orchestrator
type OrchestratorOptions struct {
	// Logger receives per-stage debug events; nil uses the logger carried by
	// the request context, if any
	Logger *zerolog.Logger
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(config OrchestratorConfig, opts OrchestratorOptions) (*Orchestrator, error) {
	refData, err := data.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	return &Orchestrator{
		rng:      utils.NewRandom(config.Seed),
		refData:  refData,
		config:   config,
		log:      opts.Logger,
		validate: newValidator(),
	}, nil
}

// requestLogger returns the configured logger, else the one stored in ctx
func (o *Orchestrator) requestLogger(ctx context.Context) zerolog.Logger {
	log := logger.FromContext(ctx)
	if o.log != nil {
		log = *o.log
	}
	return log.With().Str("component", "orchestrator").Logger()
}

// today returns the configured date cap or the current UTC date
func (o *Orchestrator) today() time.Time {
	if o.config.Today.IsZero() {
		return models.Today()
	}
	return o.config.Today
}

// Seed returns the seed of the orchestrator's random stream
func (o *Orchestrator) Seed() uint64 {
	return o.rng.Seed()
}

// newValidator reports field errors by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// GenerateFinancialData validates the request, completes the company
// profile, builds and filters accounts, and generates the transaction feed.
// Errors wrap ErrInvalidInput or ErrNoAccounts; no partial result is returned.
func (o *Orchestrator) GenerateFinancialData(ctx context.Context, company models.CompanyProfile, options models.GenerationOptions) (*models.GenerationResult, error) {
	return o.generate(ctx, o.rng, company, options)
}

func (o *Orchestrator) generate(ctx context.Context, rng *utils.Random, company models.CompanyProfile, options models.GenerationOptions) (*models.GenerationResult, error) {
	start := time.Now()
	log := o.requestLogger(ctx)
	today := o.today()

	window, err := o.checkInput(company, options, today)
	if err != nil {
		return nil, err
	}

	// 1. Complete the company profile
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	companyGen := NewCompanyGenerator(rng, o.refData, CompanyGeneratorConfig{Today: today})
	profile := companyGen.Complete(company)
	log.Debug().
		Str("company", profile.CompanyName).
		Str("size", string(profile.CompanySize)).
		Int64("annual_revenue", profile.AnnualRevenue).
		Msg("company profile completed")

	// 2. Build and filter accounts
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	accountGen := NewAccountGenerator(rng, o.refData, AccountGeneratorConfig{})
	all := accountGen.GenerateAccountSet(profile)
	accounts := FilterAccounts(all, options)
	log.Debug().Int("generated", len(all)).Int("kept", len(accounts)).Msg("accounts built")
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: No accounts available for the selected account types; include deposits, payments, investments or loans", ErrNoAccounts)
	}

	// 3. Generate transactions
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	txnGen := NewTransactionGenerator(rng, o.refData, TransactionGeneratorConfig{Today: today})
	set := txnGen.GenerateTransactionSet(accounts, profile, TransactionOptions{
		AddedCount: options.NumTransactions,
		StartDate:  window.start,
		EndDate:    window.end,
	})
	log.Debug().
		Int("added", len(set.Added)).
		Int("modified", len(set.Modified)).
		Int("removed", len(set.Removed)).
		Msg("transactions generated")

	// 4. Assemble
	requestID, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return nil, fmt.Errorf("failed to generate request id: %w", err)
	}

	result := &models.GenerationResult{
		Company:                  &profile,
		Accounts:                 accounts,
		Added:                    set.Added,
		Modified:                 set.Modified,
		Removed:                  set.Removed,
		NextCursor:               "",
		HasMore:                  false,
		RequestID:                requestID.String(),
		TransactionsUpdateStatus: models.UpdateStatusComplete,
	}

	log.Debug().
		Str("request_id", result.RequestID).
		Dur("duration", time.Since(start)).
		Msg("generation complete")

	return result, nil
}

type dateWindow struct {
	start time.Time
	end   time.Time
}

// checkInput validates required company fields and option bounds
func (o *Orchestrator) checkInput(company models.CompanyProfile, options models.GenerationOptions, today time.Time) (dateWindow, error) {
	var w dateWindow

	if err := o.validate.Struct(company); err != nil {
		return w, fmt.Errorf("%w: company profile: %s", ErrInvalidInput, describeValidation(err))
	}
	if company.FoundingDate != "" {
		if founded, _ := company.Founded(); founded.After(today) {
			return w, fmt.Errorf("%w: founding_date %s must not be after today", ErrInvalidInput, company.FoundingDate)
		}
	}
	if err := o.validate.Struct(options); err != nil {
		return w, fmt.Errorf("%w: generation options: %s", ErrInvalidInput, describeValidation(err))
	}

	if options.StartDate != "" {
		w.start, _ = models.ParseDate(options.StartDate)
	}
	if options.EndDate != "" {
		w.end, _ = models.ParseDate(options.EndDate)
	}
	if !w.start.IsZero() && !w.end.IsZero() && !w.start.Before(w.end) {
		return w, fmt.Errorf("%w: start_date %s must be before end_date %s", ErrInvalidInput, options.StartDate, options.EndDate)
	}
	if !w.start.IsZero() && !w.start.Before(today) {
		return w, fmt.Errorf("%w: start_date %s must be before today", ErrInvalidInput, options.StartDate)
	}

	return w, nil
}

// describeValidation turns validator errors into one readable sentence
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s must be between %d and %d (got %v)",
				fe.Field(), config.MinTransactions, config.MaxTransactions, fe.Value()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be a YYYY-MM-DD date (got %q)", fe.Field(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// FilterAccounts keeps the account types enabled in options: deposits keep
// depository accounts, payments keep credit, investments and loans keep
// their own types.
func FilterAccounts(accounts []models.Account, options models.GenerationOptions) []models.Account {
	keep := map[models.AccountType]bool{
		models.AccountTypeDepository: options.IncludeDeposits,
		models.AccountTypeCredit:     options.IncludePayments,
		models.AccountTypeInvestment: options.IncludeInvestments,
		models.AccountTypeLoan:       options.IncludeLoans,
	}

	filtered := make([]models.Account, 0, len(accounts))
	for _, a := range accounts {
		if keep[a.Type] {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
