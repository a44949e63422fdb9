package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/oskali/finbook"
)

// txCmd records a signed bank transaction: credit positive, debit negative.
type txCmd struct {
	accountID   string
	amount      float64
	currency    string
	description string
	txType      string
	date        string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "record a bank account transaction" }
func (*txCmd) Usage() string {
	return `fbk tx -acc <account_id> -a <amount> [-desc <text>] [-type <type>] [-d <datetime>]

  Records a transaction on a bank account and moves the balance with it.
  Positive amounts are credits, negative amounts debits.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.accountID, "acc", "", "Account id.")
	f.Float64Var(&c.amount, "a", 0, "Signed amount: credit positive, debit negative.")
	f.StringVar(&c.currency, "cur", "USD", "Currency code.")
	f.StringVar(&c.description, "desc", "", "Transaction description.")
	f.StringVar(&c.txType, "type", "debit", "Transaction type (debit, credit, transfer).")
	f.StringVar(&c.date, "d", "", "Transaction datetime. Defaults to now.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	cmd := finbook.RecordAccountTransaction(c.accountID, when, amount, c.description, c.txType)
	if err := store.Save(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if acc := store.Read().Account(c.accountID); acc != nil {
		fmt.Printf("Recorded %s on %s, balance now %s\n", amount.SignedString(), acc.Nickname, acc.Balance)
	}
	return subcommands.ExitSuccess
}
