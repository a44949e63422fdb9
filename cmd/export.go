package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/oskali/finbook"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	assetType string
	category  string
	dir       string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a ledger view to a CSV file" }
func (*exportCmd) Usage() string {
	return `fbk export -t <asset_type> [-c <category>] [-o <dir>]

  Exports the full filtered ledger (all pages) to a CSV file named
  {assetType}_{label}_{date}.csv in the output directory.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.assetType, "t", "account", "Asset type to export (cash, account, loan, credit_card).")
	f.StringVar(&c.category, "c", "", "Category to narrow the export to. Empty exports the whole asset type.")
	f.StringVar(&c.dir, "o", ".", "Directory to write the CSV file into.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	// Page through until the view is exhausted so the export always covers
	// the whole filtered ledger.
	snap := store.Read()
	page := 1
	view := finbook.BuildLedger(snap, filter, page)
	for view.HasMore {
		page++
		view = finbook.BuildLedger(snap, filter, page)
	}

	res := finbook.ExportFile(c.dir, view.Records, filter, finbook.Now())
	if !res.Success {
		fmt.Fprintf(os.Stderr, "Error exporting CSV: %s\n", res.Err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Exported %d records to %s\n", len(view.Records), res.Path)
	return subcommands.ExitSuccess
}
