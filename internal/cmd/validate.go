package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/willfong/finfixture/internal/config"
	"github.com/willfong/finfixture/internal/export"
	"github.com/willfong/finfixture/internal/models"
	"github.com/willfong/finfixture/internal/ui"
	"github.com/willfong/finfixture/internal/validate"
)

var validateBasename string

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <file|dir>...",
	Short: "Check generated JSON files for consistency",
	Long: `Check files written by 'finfixture generate' for structural problems:
unknown account references, duplicate IDs, malformed dates and amounts.
Future dates, unsorted feeds and spans over two years are reported as warnings.

Directories are searched for <basename>.json[.xz] and <basename>_NNN.json[.xz].

Example:
  finfixture validate output/fixture.json
  finfixture validate --basename fixture output/`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		u := newUI(nil)
		log := newLogger(nil)

		files, err := expandValidateArgs(args, validateBasename)
		if err != nil {
			fmt.Fprintln(os.Stderr, u.Error(err.Error()))
			os.Exit(1)
		}
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, u.Error("no fixture files found"))
			os.Exit(1)
		}

		fmt.Println(u.Header("Validating Fixtures"))
		fmt.Println()

		failed := 0
		for _, path := range files {
			res, err := export.ReadFile(cmd.Context(), path)
			if err != nil {
				log.Debug().Err(err).Str("path", path).Msg("read failed")
				fmt.Println(u.TableRow(filepath.Base(path), err.Error(), ui.StatusError))
				failed++
				continue
			}
			report := validate.Validate(res, models.Today())
			if !report.Valid {
				failed++
			}
			printReport(u, filepath.Base(path), res, report, len(files) == 1)
		}

		fmt.Println()
		if failed > 0 {
			fmt.Println(u.Error(fmt.Sprintf("%d of %d files invalid", failed, len(files))))
			os.Exit(1)
		}
		fmt.Println(u.Success(fmt.Sprintf("%d files valid", len(files))))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateBasename, "basename", config.DefaultBasename, "file name searched for in directories")
}

// expandValidateArgs replaces directory arguments with the fixture files
// they contain
func expandValidateArgs(args []string, basename string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		for _, ext := range []string{".json", ".json.xz"} {
			single := filepath.Join(arg, basename+ext)
			if _, err := os.Stat(single); err == nil {
				files = append(files, single)
			}
			batch, err := export.FindBatchFiles(arg, basename, ext)
			if err != nil {
				return nil, err
			}
			files = append(files, batch...)
		}
	}
	return files, nil
}

// printReport prints one file's validation status. Detailed statistics are
// shown when only one file is checked.
func printReport(u *ui.UI, name string, res *models.GenerationResult, report validate.ValidationReport, detailed bool) {
	switch {
	case !report.Valid:
		fmt.Println(u.TableRow(name, fmt.Sprintf("%d errors", len(report.Errors)), ui.StatusError))
	case len(report.Warnings) > 0:
		fmt.Println(u.TableRow(name, fmt.Sprintf("%d warnings", len(report.Warnings)), ui.StatusWarning))
	default:
		fmt.Println(u.TableRow(name, fmt.Sprintf("%d transactions", len(res.Added)), ui.StatusSuccess))
	}
	for _, e := range report.Errors {
		fmt.Println("    " + u.Error(e))
	}
	for _, w := range report.Warnings {
		fmt.Println("    " + u.Warning(w))
	}

	if !detailed || !report.Valid {
		return
	}

	stats := validate.ComputeStatistics(res)
	fmt.Println()
	fmt.Println(u.SummaryBox(res.Company.CompanyName, []ui.KV{
		{Key: "Accounts", Value: fmt.Sprintf("%d", stats.TotalAccounts)},
		{Key: "Transactions", Value: fmt.Sprintf("%d", stats.TotalTransactions)},
		{Key: "Deposits", Value: fmt.Sprintf("%d", stats.DepositCount)},
		{Key: "Payments", Value: fmt.Sprintf("%d", stats.PaymentCount)},
		{Key: "Pending", Value: fmt.Sprintf("%d", stats.PendingCount)},
		{Key: "Modified", Value: fmt.Sprintf("%d", stats.ModifiedCount)},
		{Key: "Removed", Value: fmt.Sprintf("%d", stats.RemovedCount)},
		{Key: "Inflow", Value: "$" + stats.TotalInflow.StringFixed(2)},
		{Key: "Outflow", Value: "$" + stats.TotalOutflow.StringFixed(2)},
		{Key: "Average", Value: "$" + stats.AverageAmount.StringFixed(2)},
	}))

	fmt.Println(u.Table([]string{"Account", "Opening", "Closing", "Transactions"}, balanceRows(res), 1, 2, 3))

	months := make([][]string, 0, len(stats.Months))
	for _, m := range stats.Months {
		months = append(months, []string{m, fmt.Sprintf("%d", stats.MonthlyCounts[m])})
	}
	fmt.Println(u.Table([]string{"Month", "Transactions"}, months, 1))
}

// balanceRows summarizes the running balance of each account with activity
func balanceRows(res *models.GenerationResult) [][]string {
	balances := validate.RunningBalances(res)
	rows := make([][]string, 0, len(balances))
	for _, a := range res.Accounts {
		points := balances[a.AccountID]
		if len(points) == 0 {
			continue
		}
		first, last := points[0], points[len(points)-1]
		rows = append(rows, []string{
			a.Name,
			first.Balance.Sub(first.Amount).StringFixed(2),
			last.Balance.StringFixed(2),
			fmt.Sprintf("%d", len(points)),
		})
	}
	return rows
}
