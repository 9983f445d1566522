package main

import (
	"github.com/spf13/cobra"
)

const searchLongDesc = `Rank stored screenshots against a free-text query.

The query may carry a time phrase ("last week", "3 days ago", "created
yesterday") which filters before ranking. Only screenshots whose confidence
clears the configured threshold are shown.

Example:
  snapdexctl search "login error last week" --owner alice
  snapdexctl search "red pay button" --limit 10 --output yaml`

func searchCmd(g *globals) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search screenshots",
		Long:  searchLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			results, err := client.Search(ctx, g.owner, args[0], limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if g.output == outputYAML {
				return writeYAML(out, searchView(args[0], results))
			}
			printSearch(out, args[0], results)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results (0: server default)")

	return cmd
}

func explainCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <id> <query>",
		Short: "Show how one screenshot scores against a query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			exp, err := client.Explain(ctx, g.owner, args[1], args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if g.output == outputYAML {
				return writeYAML(out, explainView(exp))
			}
			printExplain(out, exp)
			return nil
		},
	}
}
