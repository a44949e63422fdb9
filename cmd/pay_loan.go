package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/oskali/finbook"
)

type payLoanCmd struct {
	loanID    string
	accountID string
	amount    float64
	currency  string
	date      string
}

func (*payLoanCmd) Name() string     { return "pay-loan" }
func (*payLoanCmd) Synopsis() string { return "record a loan payment" }
func (*payLoanCmd) Usage() string {
	return `fbk pay-loan -loan <loan_id> -a <amount> [-acc <account_id>] [-d <datetime>]

  Reduces a loan's outstanding balance. With -acc, the matching bank
  withdrawal is recorded in the same write.
`
}

func (c *payLoanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.loanID, "loan", "", "Loan id.")
	f.StringVar(&c.accountID, "acc", "", "Optional bank account id to pay from.")
	f.Float64Var(&c.amount, "a", 0, "Payment amount (positive).")
	f.StringVar(&c.currency, "cur", "USD", "Currency code.")
	f.StringVar(&c.date, "d", "", "Payment datetime. Defaults to now.")
}

func (c *payLoanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if err := store.Save(finbook.RecordLoanPayment(c.loanID, c.accountID, when, amount)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if loan := store.Read().Loan(c.loanID); loan != nil {
		fmt.Printf("Paid %s to %q, outstanding %s\n", amount, loan.Lender, loan.CurrentBalance)
	}
	return subcommands.ExitSuccess
}
