package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/subcommands"
	"github.com/oskali/finbook"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	cryptoLiquid bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display aggregate totals and net worth" }
func (*summaryCmd) Usage() string {
	return `fbk summary [-crypto-liquid]

  Displays the aggregate totals of every asset class, the net worth and the
  liquidity position.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.cryptoLiquid, "crypto-liquid", false, "Count crypto holdings as liquid.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}

	totals := finbook.ComputeTotals(store.Read(), finbook.TotalsOptions{
		IncludeCryptoInLiquidity: c.cryptoLiquid,
	})

	var b strings.Builder
	fmt.Fprintf(&b, "# Summary\n\n")
	fmt.Fprintf(&b, "| Class | Total |\n")
	fmt.Fprintf(&b, "|---|---:|\n")
	fmt.Fprintf(&b, "| Cash | %s |\n", totals.Cash)
	fmt.Fprintf(&b, "| Bank accounts | %s |\n", totals.BankAccounts)
	fmt.Fprintf(&b, "| Fixed income | %s |\n", totals.FixedIncome)
	fmt.Fprintf(&b, "| Crypto | %s |\n", totals.Crypto)
	fmt.Fprintf(&b, "| Physical assets | %s |\n", totals.PhysicalAssets)
	fmt.Fprintf(&b, "| Credit cards owed | %s |\n", totals.CreditCards)
	fmt.Fprintf(&b, "| Loans outstanding | %s |\n", totals.Loans)
	fmt.Fprintf(&b, "\n**Net worth: %s** (liquidity %s)\n", totals.NetWorth, totals.Liquidity)

	if len(totals.FixedIncomeByCurrency) > 1 {
		fmt.Fprintf(&b, "\n## Fixed income by currency\n\n")
		currencies := make([]string, 0, len(totals.FixedIncomeByCurrency))
		for cur := range totals.FixedIncomeByCurrency {
			currencies = append(currencies, cur)
		}
		sort.Strings(currencies)
		for _, cur := range currencies {
			fmt.Fprintf(&b, "- %s: %s\n", cur, totals.FixedIncomeByCurrency[cur])
		}
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
