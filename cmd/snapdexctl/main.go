// Command snapdexctl runs searches and maintenance against a snapdex store
// without going through the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/snapdex/internal/version"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:           "snapdexctl",
		Short:         "Search and manage screenshots in a snapdex store",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file (default: CONFIG_PATH or config/<env>.yaml)")
	cmd.PersistentFlags().StringVarP(&g.owner, "owner", "o", "", "Owner to act for (empty: all owners)")
	cmd.PersistentFlags().StringVar(&g.output, "output", outputText, "Output format (text, yaml)")

	cmd.AddCommand(searchCmd(g))
	cmd.AddCommand(explainCmd(g))
	cmd.AddCommand(statusCmd(g))
	cmd.AddCommand(listCmd(g))
	cmd.AddCommand(importCmd(g))
	cmd.AddCommand(reprocessCmd(g))
	cmd.AddCommand(deleteCmd(g))

	return cmd
}
