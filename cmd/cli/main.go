package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/jurassictravel/cmd/cli/assistant"
	"github.com/myrjola/jurassictravel/cmd/cli/catalogcmd"
	"github.com/myrjola/jurassictravel/cmd/cli/ledger"
	"github.com/myrjola/jurassictravel/internal/errors"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "jurassic-cli",
		Long:          `Command line utilities for the Jurassic Travel booking terminal`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddGroup(catalogcmd.Group, ledger.Group, assistant.Group)
	rootCmd.AddCommand(catalogcmd.NewCheck(), catalogcmd.NewTours())
	rootCmd.AddCommand(ledger.NewBookings())
	rootCmd.AddCommand(assistant.NewAsk())
	return rootCmd
}

func main() {
	// The .env file is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
