package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/oskali/finbook"
)

type addCashCmd struct {
	category string
	amount   float64
	currency string
	notes    string
}

func (*addCashCmd) Name() string     { return "add-cash" }
func (*addCashCmd) Synopsis() string { return "record a cash holding" }
func (*addCashCmd) Usage() string {
	return `fbk add-cash -c <category> -a <amount> [-cur <currency>] [-n <notes>]

  Records a cash holding under a category ("Wallet", "Home safe").
`
}

func (c *addCashCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "Cash category.")
	f.Float64Var(&c.amount, "a", 0, "Amount held.")
	f.StringVar(&c.currency, "cur", "USD", "Currency code.")
	f.StringVar(&c.notes, "n", "", "Free-form notes.")
}

func (c *addCashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	amount := finbook.M(c.amount, c.currency)
	if err := store.Save(finbook.AddCashEntry(c.category, amount, c.notes)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %s cash under %q\n", amount, c.category)
	return subcommands.ExitSuccess
}
