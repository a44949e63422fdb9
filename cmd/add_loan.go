package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/oskali/finbook"
)

type addLoanCmd struct {
	lender    string
	principal float64
	currency  string
	rate      float64
	months    int
	start     string
}

func (*addLoanCmd) Name() string     { return "add-loan" }
func (*addLoanCmd) Synopsis() string { return "create a loan at its full principal" }
func (*addLoanCmd) Usage() string {
	return `fbk add-loan -lender <lender> -p <principal> [-rate <annual_rate>] [-months <term>] [-d <start_date>]

  Creates a loan with its outstanding balance set to the full principal.
  Payments are recorded with the pay-loan command.
`
}

func (c *addLoanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.lender, "lender", "", "Lender name.")
	f.Float64Var(&c.principal, "p", 0, "Principal amount.")
	f.StringVar(&c.currency, "cur", "USD", "Currency code.")
	f.Float64Var(&c.rate, "rate", 0, "Annual interest rate in percent.")
	f.IntVar(&c.months, "months", 0, "Term in months.")
	f.StringVar(&c.start, "d", "", "Start date. Defaults to now.")
}

func (c *addLoanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start, err := parseDatetime(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	cmd := finbook.AddLoan(c.lender, finbook.M(c.principal, c.currency), c.rate, c.months, start)
	if err := store.Save(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	loans := store.Read().Loans
	created := loans[len(loans)-1]
	fmt.Printf("Created loan from %q (id %s)\n", created.Lender, created.ID)
	return subcommands.ExitSuccess
}
