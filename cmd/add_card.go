package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/oskali/finbook"
)

type addCardCmd struct {
	label        string
	bankName     string
	masked       string
	limit        float64
	currency     string
	statementDay int
}

func (*addCardCmd) Name() string     { return "add-card" }
func (*addCardCmd) Synopsis() string { return "create a credit card" }
func (*addCardCmd) Usage() string {
	return `fbk add-card -label <label> -limit <credit_limit> [-bank <bank>] [-last4 <digits>] [-day <statement_day>]

  Creates a credit card with a zero balance. Available credit and minimum
  payment are derived automatically on every card mutation.
`
}

func (c *addCardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.label, "label", "", "Card label.")
	f.StringVar(&c.bankName, "bank", "", "Issuing bank.")
	f.StringVar(&c.masked, "last4", "", "Last digits of the card number.")
	f.Float64Var(&c.limit, "limit", 0, "Credit limit.")
	f.StringVar(&c.currency, "cur", "USD", "Currency code.")
	f.IntVar(&c.statementDay, "day", 1, "Statement day of month.")
}

func (c *addCardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	cmd := finbook.AddCreditCard(c.label, c.bankName, c.masked, finbook.M(c.limit, c.currency), c.statementDay)
	if err := store.Save(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	cards := store.Read().CreditCards
	created := cards[len(cards)-1]
	fmt.Printf("Created card %q (id %s), available credit %s\n", created.Label, created.ID, created.AvailableCredit)
	return subcommands.ExitSuccess
}
