package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/willfong/finfixture/internal/config"
	"github.com/willfong/finfixture/internal/data"
	"github.com/willfong/finfixture/internal/export"
	"github.com/willfong/finfixture/internal/generator"
	"github.com/willfong/finfixture/internal/logger"
	"github.com/willfong/finfixture/internal/models"
	"github.com/willfong/finfixture/internal/ui"
	"github.com/willfong/finfixture/internal/utils"
	"github.com/willfong/finfixture/internal/validate"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a company, its accounts and a transaction feed",
	Long: `Generate a synthetic company profile with bank accounts and a
transaction sync feed, and write it as JSON and/or CSV.

Company fields left unset are chosen at random. The transaction count
defaults to the company size tier (50 to 1500); dates default to the last
730 days. Account types are filtered with the --include-* flags:
deposits keep depository accounts, payments keep credit cards.

With --batch N, N independent datasets are generated in parallel and written
as <basename>_001, <basename>_002, ...

Example:
  finfixture generate --industry Retail --business-model E-commerce
  finfixture generate --transactions 1000 --include-loans --format both
  finfixture generate --batch 50 --seed 42 --compress`,
	Run: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.String("name", "", "company name (random if empty)")
	f.String("industry", "", "industry (see 'finfixture catalog')")
	f.String("business-model", "", "business model (see 'finfixture catalog')")
	f.String("size", "", `company size, e.g. "Medium (51-200)"`)
	f.String("location", "", `company location, e.g. "Austin, TX"`)
	f.String("founded", "", "founding date YYYY-MM-DD")

	f.Int("transactions", 0, fmt.Sprintf("number of added transactions, %d-%d (0 = size-tier default)", config.MinTransactions, config.MaxTransactions))
	f.String("start", "", "earliest transaction date YYYY-MM-DD")
	f.String("end", "", "latest transaction date YYYY-MM-DD (capped at today)")
	f.Bool("include-deposits", true, "include depository accounts")
	f.Bool("include-payments", true, "include credit card accounts")
	f.Bool("include-investments", false, "include investment accounts")
	f.Bool("include-loans", false, "include loan accounts")
	f.Int64("seed", 0, "random seed for reproducibility (0 = random)")
	f.Int("batch", 1, fmt.Sprintf("number of independent datasets, 1-%d", config.MaxBatchSize))
	f.Int("workers", 0, "number of parallel workers for --batch (0 = auto-detect CPUs)")

	f.String("output", config.DefaultOutputDir, "output directory")
	f.String("basename", config.DefaultBasename, "output file name without extension")
	f.String("format", config.DefaultFormat, "output format: json, csv or both")
	f.Bool("compress", false, "compress output with xz (creates .xz files)")

	bindFlags(generateCmd, map[string]string{
		"company.name":                 "name",
		"company.industry":             "industry",
		"company.business_model":       "business-model",
		"company.size":                 "size",
		"company.location":             "location",
		"company.founding_date":        "founded",
		"generate.transactions":        "transactions",
		"generate.start_date":          "start",
		"generate.end_date":            "end",
		"generate.include_deposits":    "include-deposits",
		"generate.include_payments":    "include-payments",
		"generate.include_investments": "include-investments",
		"generate.include_loans":       "include-loans",
		"generate.seed":                "seed",
		"generate.batch":               "batch",
		"generate.workers":             "workers",
		"output.dir":                   "output",
		"output.basename":              "basename",
		"output.format":                "format",
		"output.compress":              "compress",
	})
}

// bindFlags binds viper keys to the command's flags
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind %s: %v", key, err))
		}
	}
}

func runGenerate(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	u := newUI(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}
	log := newLogger(cfg)

	if cfg.Output.Compress {
		if err := export.CheckXZAvailable(); err != nil {
			fmt.Fprintln(os.Stderr, u.Error("xz compression requested but xz is not available"))
			fmt.Fprintln(os.Stderr, "Install with: apt install xz-utils (Linux) or brew install xz (macOS)")
			os.Exit(1)
		}
	}

	printGeneratePlan(u, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run, err := generateAndWrite(ctx, cfg, u, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	printGenerateSummary(u, run)
	fmt.Println()
	fmt.Println(u.Success("Output files written to: " + cfg.Output.Dir))
}

// generateRun is the outcome of one generate invocation
type generateRun struct {
	Results  []*models.GenerationResult
	Paths    []string
	Seed     uint64
	Warnings int
	Duration time.Duration
}

// buildRequest maps the runtime config onto a generation request
func buildRequest(cfg *config.Config) generator.BatchRequest {
	return generator.BatchRequest{
		Company: models.CompanyProfile{
			CompanyName:   cfg.Company.Name,
			Industry:      models.Industry(cfg.Company.Industry),
			BusinessModel: models.BusinessModel(cfg.Company.BusinessModel),
			CompanySize:   models.CompanySize(cfg.Company.Size),
			Location:      cfg.Company.Location,
			FoundingDate:  cfg.Company.FoundingDate,
		},
		Options: models.GenerationOptions{
			NumTransactions:    cfg.Generate.Transactions,
			StartDate:          cfg.Generate.StartDate,
			EndDate:            cfg.Generate.EndDate,
			IncludeDeposits:    cfg.Generate.IncludeDeposits,
			IncludePayments:    cfg.Generate.IncludePayments,
			IncludeInvestments: cfg.Generate.IncludeInvestments,
			IncludeLoans:       cfg.Generate.IncludeLoans,
		},
	}
}

// completeProfiles fills the company fields each request leaves empty. Every
// request draws from its own stream forked from seed, so batch datasets get
// different companies and a seeded run is reproducible.
func completeProfiles(reqs []generator.BatchRequest, seed uint64) error {
	refData, err := data.Load()
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}
	rngs := utils.NewRandom(int64(seed)).ForkN(len(reqs))
	for i := range reqs {
		companyGen := generator.NewCompanyGenerator(rngs[i], refData, generator.CompanyGeneratorConfig{})
		reqs[i].Company = companyGen.GenerateCompanyProfile(reqs[i].Company)
	}
	return nil
}

// generateAndWrite generates cfg.Generate.Batch datasets and writes them to
// cfg.Output.Dir. Nothing is written unless every dataset succeeds.
func generateAndWrite(ctx context.Context, cfg *config.Config, u *ui.UI, log zerolog.Logger) (*generateRun, error) {
	start := time.Now()
	ctx = logger.WithContext(ctx, log)

	o, err := generator.NewOrchestrator(generator.OrchestratorConfig{Seed: cfg.Generate.Seed}, generator.OrchestratorOptions{})
	if err != nil {
		return nil, err
	}
	run := &generateRun{Seed: o.Seed()}

	batch := max(cfg.Generate.Batch, 1)
	reqs := make([]generator.BatchRequest, batch)
	for i := range reqs {
		reqs[i] = buildRequest(cfg)
	}
	if err := completeProfiles(reqs, run.Seed); err != nil {
		return nil, err
	}

	if batch == 1 {
		req := reqs[0]
		spin := u.NewSpinner("Generating dataset")
		spin.Start()
		res, err := o.GenerateFinancialData(ctx, req.Company, req.Options)
		if err != nil {
			spin.Error("failed")
			return nil, err
		}
		spin.Success(fmt.Sprintf("%d transactions", len(res.Added)))
		run.Results = []*models.GenerationResult{res}
	} else {
		bar := u.NewProgressBar("Generating", int64(len(reqs)))
		results, err := o.GenerateBatch(ctx, reqs, cfg.Generate.Workers, func(done, total int) {
			bar.Update(int64(done))
		})
		if err != nil {
			bar.Fail(err)
			return nil, err
		}
		bar.Complete()
		log.Debug().Dur("elapsed", bar.Elapsed()).Int("datasets", len(results)).Msg("batch generated")
		run.Results = results
	}

	now := models.Today()
	for i, res := range run.Results {
		report := validate.Validate(res, now)
		if !report.Valid {
			return nil, fmt.Errorf("dataset %d failed validation: %v", i+1, report.Errors)
		}
		for _, w := range report.Warnings {
			log.Warn().Str("request_id", res.RequestID).Msg(w)
		}
		run.Warnings += len(report.Warnings)
	}

	opts := export.FileOptions{
		JSON:     cfg.Output.WantJSON(),
		CSV:      cfg.Output.WantCSV(),
		Compress: cfg.Output.Compress,
	}
	for i, res := range run.Results {
		name := cfg.Output.Basename
		if len(run.Results) > 1 {
			name = export.BatchFilename(name, i+1, len(run.Results))
		}
		paths, err := export.WriteResultFiles(cfg.Output.Dir, name, res, opts)
		if err != nil {
			return nil, err
		}
		run.Paths = append(run.Paths, paths...)
		log.Debug().Strs("paths", paths).Msg("dataset written")
	}

	run.Duration = time.Since(start)
	return run, nil
}

func printGeneratePlan(u *ui.UI, cfg *config.Config) {
	orRandom := func(s string) string {
		if s == "" {
			return "(random)"
		}
		return s
	}
	transactions := "size-tier default"
	if cfg.Generate.Transactions > 0 {
		transactions = fmt.Sprintf("%d", cfg.Generate.Transactions)
	}

	fmt.Println(u.Header("Financial Fixture Generator"))
	fmt.Println()
	fmt.Println(u.KeyValue("Company", orRandom(cfg.Company.Name)))
	fmt.Println(u.KeyValue("Industry", orRandom(cfg.Company.Industry)))
	fmt.Println(u.KeyValue("Model", orRandom(cfg.Company.BusinessModel)))
	fmt.Println(u.KeyValue("Size", orRandom(cfg.Company.Size)))
	fmt.Println(u.KeyValue("Transactions", transactions))
	if cfg.Generate.Batch > 1 {
		fmt.Println(u.KeyValue("Batch", fmt.Sprintf("%d", cfg.Generate.Batch)))
		fmt.Println(u.KeyValue("Workers", fmt.Sprintf("%d", generator.GetWorkerCount(cfg.Generate.Workers))))
	}
	if cfg.Generate.Seed != 0 {
		fmt.Println(u.KeyValue("Seed", fmt.Sprintf("%d", cfg.Generate.Seed)))
	}
	fmt.Println(u.KeyValue("Output", cfg.Output.Dir))
	fmt.Println(u.KeyValue("Format", cfg.Output.Format))
	if cfg.Output.Compress {
		fmt.Println(u.KeyValue("Compression", "xz"))
	}
	fmt.Println()
}

// printGenerateSummary prints the account table for a single dataset and
// a styled summary box
func printGenerateSummary(u *ui.UI, run *generateRun) {
	if len(run.Results) == 1 {
		res := run.Results[0]
		fmt.Println()
		fmt.Println(u.Bold(res.Company.CompanyName) + u.Muted(fmt.Sprintf("  %s, %s, %s",
			res.Company.Industry, res.Company.BusinessModel, res.Company.CompanySize)))
		fmt.Println(u.Table(accountHeaders, accountRows(res.Accounts), 3, 4))
	}

	var txns, modified, removed int
	for _, res := range run.Results {
		txns += len(res.Added)
		modified += len(res.Modified)
		removed += len(res.Removed)
	}

	items := []ui.KV{
		{Key: "Datasets", Value: fmt.Sprintf("%d", len(run.Results))},
		{Key: "Transactions", Value: fmt.Sprintf("%d", txns)},
		{Key: "Modified", Value: fmt.Sprintf("%d", modified)},
		{Key: "Removed", Value: fmt.Sprintf("%d", removed)},
		{Key: "Files", Value: fmt.Sprintf("%d", len(run.Paths))},
		{Key: "Seed", Value: fmt.Sprintf("%d", run.Seed)},
		{Key: "Duration", Value: run.Duration.Round(time.Millisecond).String()},
	}
	if len(run.Results) == 1 {
		stats := validate.ComputeStatistics(run.Results[0])
		items = append(items,
			ui.KV{Key: "Inflow", Value: "$" + stats.TotalInflow.StringFixed(2)},
			ui.KV{Key: "Outflow", Value: "$" + stats.TotalOutflow.StringFixed(2)},
		)
	}
	if run.Warnings > 0 {
		items = append(items, ui.KV{Key: "Warnings", Value: fmt.Sprintf("%d (run with --verbose)", run.Warnings)})
	}
	items = append(items, ui.KV{Key: "Status", Value: "Success"})

	fmt.Println(u.SummaryBox("Generation Complete", items))
}

var accountHeaders = []string{"Account", "Type", "Subtype", "Current", "Available"}

func accountRows(accounts []models.Account) [][]string {
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		available := "-"
		if a.Balances.Available != nil {
			available = export.FormatAmount(*a.Balances.Available)
		}
		rows = append(rows, []string{
			a.Name,
			string(a.Type),
			string(a.Subtype),
			export.FormatAmount(a.Balances.Current),
			available,
		})
	}
	return rows
}
