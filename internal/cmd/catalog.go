package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/willfong/finfixture/internal/data"
	"github.com/willfong/finfixture/internal/ui"
	"github.com/willfong/finfixture/internal/utils"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the industries, business models, sizes and banks",
	Long: `List the closed value sets accepted by 'finfixture generate' and the
per-size-tier tables that drive generation.`,
	Run: func(cmd *cobra.Command, args []string) {
		u := newUI(nil)
		refData, err := data.Load()
		if err != nil {
			fmt.Println(u.Error(err.Error()))
			return
		}
		u.Println(catalogSections(u, refData)...)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

// catalogSections renders each catalog table with its header
func catalogSections(u *ui.UI, refData *data.ReferenceData) []string {
	industries := make([][]string, 0, len(data.Industries))
	for _, ind := range data.Industries {
		industries = append(industries, []string{
			string(ind),
			fmt.Sprintf("%.1fx", data.IndustryMultiplier(ind)),
			fmt.Sprintf("%d", len(refData.VendorsFor(ind))),
		})
	}

	models := make([][]string, 0, len(data.BusinessModels))
	for _, m := range data.BusinessModels {
		models = append(models, []string{string(m), string(data.DepositShapeFor(m))})
	}

	tiers := make([][]string, 0, len(data.Tiers))
	for _, t := range data.Tiers {
		d := data.DistributionFor(t.Size)
		band := data.DepositBand(t.Index)
		tiers = append(tiers, []string{
			string(t.Size),
			fmt.Sprintf("%d-%d", t.MinEmployees, t.MaxEmployees),
			utils.Dollars(data.BaseRevenue(t.Index)).Format("USD"),
			fmt.Sprintf("%d/%d/%d/%d/%d", d.Checking, d.Savings, d.Credit, d.Investment, d.Loan),
			fmt.Sprintf("%d", data.BaseTransactionCount(t.Index)),
			band.Min.Format("USD") + " - " + band.Max.Format("USD"),
		})
	}

	banks := make([][]string, 0, len(refData.Banks.Banks))
	for _, b := range refData.Banks.Banks {
		banks = append(banks, []string{b.Name, b.RoutingPrefix, strings.Join(b.Checking, ", ")})
	}

	return []string{
		u.Header("Industries"),
		u.Table([]string{"Industry", "Revenue", "Vendors"}, industries, 1, 2),
		"",
		u.Header("Business Models"),
		u.Table([]string{"Model", "Deposit Shape"}, models),
		"",
		u.Header("Company Sizes"),
		u.Table([]string{"Size", "Employees", "Base Revenue", "Chk/Sav/CC/Inv/Loan", "Transactions", "Deposits"}, tiers, 2, 4),
		"",
		u.Header("Banks"),
		u.Table([]string{"Bank", "Routing", "Checking Products"}, banks),
	}
}
