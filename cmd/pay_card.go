package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/oskali/finbook"
)

type payCardCmd struct {
	cardID    string
	accountID string
	amount    float64
	currency  string
	date      string
}

func (*payCardCmd) Name() string     { return "pay-card" }
func (*payCardCmd) Synopsis() string { return "pay down a credit card from a bank account" }
func (*payCardCmd) Usage() string {
	return `fbk pay-card -card <card_id> -acc <account_id> -a <amount> [-d <datetime>]

  Pays a card from a bank account. The card credit and the bank withdrawal
  are one mutation: they persist together or not at all.
`
}

func (c *payCardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cardID, "card", "", "Card id.")
	f.StringVar(&c.accountID, "acc", "", "Bank account id to pay from.")
	f.Float64Var(&c.amount, "a", 0, "Payment amount (positive).")
	f.StringVar(&c.currency, "cur", "USD", "Currency code.")
	f.StringVar(&c.date, "d", "", "Payment datetime. Defaults to now.")
}

func (c *payCardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if err := store.Save(finbook.PayCard(c.cardID, c.accountID, when, amount)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	snap := store.Read()
	if card := snap.CreditCard(c.cardID); card != nil {
		fmt.Printf("Paid %s on %q, card balance %s\n", amount, card.Label, card.CurrentBalance)
	}
	if acc := snap.Account(c.accountID); acc != nil {
		fmt.Printf("Account %s balance now %s\n", acc.Nickname, acc.Balance)
	}
	return subcommands.ExitSuccess
}
