package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/oskali/finbook"
)

type addFixedCmd struct {
	issuer    string
	kind      string
	principal float64
	currency  string
	rate      float64
	start     string
	maturity  string
}

func (*addFixedCmd) Name() string     { return "add-fixed" }
func (*addFixedCmd) Synopsis() string { return "create a fixed-income instrument" }
func (*addFixedCmd) Usage() string {
	return `fbk add-fixed -issuer <issuer> -p <principal> [-kind <kind>] [-rate <rate>] [-d <start>] [-m <maturity>]

  Creates a fixed-income instrument (bond, certificate of deposit) valued at
  its principal.
`
}

func (c *addFixedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.issuer, "issuer", "", "Issuer name.")
	f.StringVar(&c.kind, "kind", "bond", "Instrument kind (bond, cd).")
	f.Float64Var(&c.principal, "p", 0, "Principal amount.")
	f.StringVar(&c.currency, "cur", "USD", "Currency code.")
	f.Float64Var(&c.rate, "rate", 0, "Annual rate in percent.")
	f.StringVar(&c.start, "d", "", "Start date. Defaults to now.")
	f.StringVar(&c.maturity, "m", "", "Maturity date. Defaults to now.")
}

func (c *addFixedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start, err := parseDatetime(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	maturity, err := parseDatetime(c.maturity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	cmd := finbook.AddFixedIncome(c.issuer, c.kind, finbook.M(c.principal, c.currency), c.rate, start, maturity)
	if err := store.Save(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created %s from %q for %s\n", c.kind, c.issuer, finbook.M(c.principal, c.currency))
	return subcommands.ExitSuccess
}
