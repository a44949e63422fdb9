package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/oskali/finbook"
)

type chargeCmd struct {
	cardID      string
	amount      float64
	currency    string
	merchant    string
	description string
	category    string
	date        string
}

func (*chargeCmd) Name() string     { return "charge" }
func (*chargeCmd) Synopsis() string { return "record a purchase on a credit card" }
func (*chargeCmd) Usage() string {
	return `fbk charge -card <card_id> -a <amount> [-merchant <name>] [-desc <text>] [-cat <category>] [-d <datetime>]

  Records a purchase on a card. The owed balance grows by the amount, the
  ledger shows the charge as negative spending power, and available credit
  and minimum payment are recomputed.
`
}

func (c *chargeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cardID, "card", "", "Card id.")
	f.Float64Var(&c.amount, "a", 0, "Charge amount (positive).")
	f.StringVar(&c.currency, "cur", "USD", "Currency code.")
	f.StringVar(&c.merchant, "merchant", "", "Merchant name.")
	f.StringVar(&c.description, "desc", "", "Charge description.")
	f.StringVar(&c.category, "cat", "", "Expense category.")
	f.StringVar(&c.date, "d", "", "Charge datetime. Defaults to now.")
}

func (c *chargeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	when, err := parseDatetime(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	amount := finbook.M(c.amount, c.currency)
	cmd := finbook.RecordCharge(c.cardID, when, amount, c.merchant, c.description, c.category)
	if err := store.Save(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if card := store.Read().CreditCard(c.cardID); card != nil {
		fmt.Printf("Charged %s on %q, balance %s, available %s\n",
			amount, card.Label, card.CurrentBalance, card.AvailableCredit)
	}
	return subcommands.ExitSuccess
}
