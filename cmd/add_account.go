package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/oskali/finbook"
)

type addAccountCmd struct {
	nickname    string
	bankName    string
	accountType string
	masked      string
	balance     float64
	currency    string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "create a bank account" }
func (*addAccountCmd) Usage() string {
	return `fbk add-account -name <nickname> -bank <bank> [-type <type>] [-last4 <digits>] [-b <balance>]

  Creates a bank account with the given opening balance and an empty
  transaction log. The ledger view later shows the opening balance as a
  synthetic row.
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.nickname, "name", "", "Account nickname.")
	f.StringVar(&c.bankName, "bank", "", "Bank name.")
	f.StringVar(&c.accountType, "type", "checking", "Account type (checking, savings).")
	f.StringVar(&c.masked, "last4", "", "Last digits of the account number.")
	f.Float64Var(&c.balance, "b", 0, "Opening balance.")
	f.StringVar(&c.currency, "cur", "USD", "Currency code.")
}

func (c *addAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	cmd := finbook.AddAccount(c.nickname, c.bankName, c.accountType, c.masked, finbook.M(c.balance, c.currency))
	if err := store.Save(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	accounts := store.Read().Accounts
	created := accounts[len(accounts)-1]
	fmt.Printf("Created account %s (id %s)\n", created.CompositeLabel(), created.ID)
	return subcommands.ExitSuccess
}
