package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type backupCmd struct{}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "copy the document store to a timestamped backup file" }
func (*backupCmd) Usage() string {
	return `fbk backup

  Copies the document store to a timestamped .bak sibling file.
`
}

func (*backupCmd) SetFlags(*flag.FlagSet) {}

func (*backupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	path, err := store.Backup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing backup: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Backup written to %s\n", path)
	return subcommands.ExitSuccess
}
