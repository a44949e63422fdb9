// Package cmd implements the CLI application to manage a personal finance book.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/oskali/finbook"
	"github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&summaryCmd{}, "reports")
	c.Register(&ledgerCmd{}, "reports")
	c.Register(&exportCmd{}, "reports")

	c.Register(&addCashCmd{}, "assets")
	c.Register(&addAccountCmd{}, "assets")
	c.Register(&addCardCmd{}, "assets")
	c.Register(&addLoanCmd{}, "assets")
	c.Register(&addFixedCmd{}, "assets")

	c.Register(&txCmd{}, "transactions")
	c.Register(&chargeCmd{}, "transactions")
	c.Register(&payCardCmd{}, "transactions")
	c.Register(&payLoanCmd{}, "transactions")

	c.Register(&backupCmd{}, "store")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storeFile = flag.String("store-file", "finbook.json", "Path to the document store file (JSON)")

// newLogger builds the application logger. The level comes from the LOG_LEVEL
// environment variable and defaults to warn so reports stay clean.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.WarnLevel
	}
	log.SetLevel(level)
	return log
}

// OpenStore is the central function to open the document store.
func OpenStore() (*finbook.Store, error) {
	return finbook.Open(*storeFile, newLogger())
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails (no TTY, unknown terminal).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// parseDatetime reads the -d flag value: empty means now.
func parseDatetime(s string) (finbook.DateTime, error) {
	if s == "" {
		return finbook.Now(), nil
	}
	d, ok := finbook.ParseDateTime(s)
	if !ok {
		return finbook.DateTime{}, fmt.Errorf("unrecognized datetime %q", s)
	}
	return d, nil
}

// parseFilter reads the asset-type and category flags shared by ledger and
// export.
func parseFilter(assetType, category string) (finbook.FilterCriteria, error) {
	at := finbook.AssetType(assetType)
	switch at {
	case finbook.AssetCash, finbook.AssetAccount, finbook.AssetLoan, finbook.AssetCreditCard:
	default:
		return finbook.FilterCriteria{}, fmt.Errorf("unknown asset type %q (want cash, account, loan or credit_card)", assetType)
	}

	f := finbook.FilterCriteria{AssetType: at, FilterType: finbook.FilterAll}
	if category != "" {
		f.FilterType = finbook.FilterCategory
		if at == finbook.AssetAccount {
			f.AssetLabel = category
		} else {
			f.AssetID = category
			f.AssetLabel = category
		}
	}
	return f, nil
}
