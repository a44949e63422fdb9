package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/oskali/finbook"
)

// ledgerCmd holds the flags for the 'ledger' subcommand.
type ledgerCmd struct {
	assetType string
	category  string
	page      int
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "display the unified transaction ledger for one asset type" }
func (*ledgerCmd) Usage() string {
	return `fbk ledger -t <asset_type> [-c <category>] [-p <page>]

  Displays the unified ledger for an asset type (cash, account, loan,
  credit_card), newest first, 20 records per page. With -c the view narrows
  to one category: a cash category name, an account composite label, or a
  card/loan id. Account views reconcile the stored balance with a synthetic
  opening row when the log does not explain it.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.assetType, "t", "account", "Asset type to display (cash, account, loan, credit_card).")
	f.StringVar(&c.category, "c", "", "Category to narrow the view to. Empty shows the whole asset type.")
	f.IntVar(&c.page, "p", 1, "Page number, 20 records per page.")
}

func (c *ledgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := parseFilter(c.assetType, c.category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}

	view := finbook.BuildLedger(store.Read(), filter, c.page)

	var b strings.Builder
	title := string(filter.AssetType)
	if filter.FilterType == finbook.FilterCategory {
		title += ": " + c.category
	}
	fmt.Fprintf(&b, "# Ledger (%s)\n\n", title)
	fmt.Fprintf(&b, "| Date | Description | Amount | Type | Asset |\n")
	fmt.Fprintf(&b, "|---|---|---:|---|---|\n")
	for _, r := range view.Records {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			r.DateTime.CSV(), r.Description, r.Amount.SignedString(), r.Type, r.AssetLabel)
	}
	fmt.Fprintf(&b, "\nBalance: %s\n", view.Balance)
	if view.HasMore {
		fmt.Fprintf(&b, "\nMore records exist; rerun with -p %d.\n", c.page+1)
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
