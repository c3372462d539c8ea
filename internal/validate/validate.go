// Package validate checks generated results for structural consistency and
// computes summary statistics over them.
package validate

import (
	"fmt"
	"math"
	"time"

	"github.com/willfong/finfixture/internal/config"
	"github.com/willfong/finfixture/internal/models"
)

// ValidationReport is the outcome of Validate. Errors mean the result is
// structurally broken; warnings flag statistical oddities only.
type ValidationReport struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (r *ValidationReport) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationReport) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks result against now. It never fails; problems are reported
// in the returned ValidationReport.
func Validate(result *models.GenerationResult, now time.Time) ValidationReport {
	report := ValidationReport{Errors: []string{}, Warnings: []string{}}
	if result == nil {
		report.errorf("result is nil")
		return report
	}

	if len(result.Accounts) == 0 {
		report.errorf("no accounts in result")
	}

	known := make(map[string]bool, len(result.Accounts))
	for _, a := range result.Accounts {
		if a.AccountID == "" {
			report.errorf("account %q has no account_id", a.Name)
			continue
		}
		if known[a.AccountID] {
			report.errorf("duplicate account_id %s", a.AccountID)
		}
		known[a.AccountID] = true
	}

	today := models.FormatDate(now)
	var earliest, latest string

	check := func(feed string, i int, txn models.Transaction) {
		label := fmt.Sprintf("%s[%d]", feed, i)
		if txn.TransactionID == "" {
			report.errorf("%s has no transaction_id", label)
		} else {
			label = fmt.Sprintf("%s %s", label, txn.TransactionID)
		}
		if !known[txn.AccountID] {
			report.errorf("%s references unknown account %q", label, txn.AccountID)
		}
		if math.IsNaN(txn.Amount) || math.IsInf(txn.Amount, 0) {
			report.errorf("%s has non-finite amount", label)
		}
		if txn.Date == "" {
			report.errorf("%s has no date", label)
			return
		}
		if _, err := models.ParseDate(txn.Date); err != nil {
			report.errorf("%s has malformed date %q", label, txn.Date)
			return
		}
		if txn.Date > today {
			report.warnf("%s is dated in the future (%s)", label, txn.Date)
		}
		if txn.AuthorizedDate != nil && *txn.AuthorizedDate > txn.Date {
			report.warnf("%s authorized after it posted (%s > %s)", label, *txn.AuthorizedDate, txn.Date)
		}
		if earliest == "" || txn.Date < earliest {
			earliest = txn.Date
		}
		if latest == "" || txn.Date > latest {
			latest = txn.Date
		}
	}

	unsorted := -1
	for i, txn := range result.Added {
		check("added", i, txn)
		if unsorted < 0 && i > 0 && result.Added[i-1].Date < txn.Date {
			unsorted = i
		}
	}
	if unsorted >= 0 {
		report.warnf("added is not sorted by date descending (first at index %d)", unsorted)
	}
	for i, txn := range result.Modified {
		check("modified", i, txn)
	}
	for i, r := range result.Removed {
		if r.TransactionID == "" {
			report.errorf("removed[%d] has no transaction_id", i)
		}
		if !known[r.AccountID] {
			report.errorf("removed[%d] references unknown account %q", i, r.AccountID)
		}
	}

	if earliest != "" {
		first, _ := models.ParseDate(earliest)
		last, _ := models.ParseDate(latest)
		if days := int(last.Sub(first).Hours() / 24); days > config.MaxDateSpanDays {
			report.warnf("transactions span %d days (%s to %s), more than two years", days, earliest, latest)
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}
