package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/searchbox/internal/app"
)

func newQueryCmd(f *flags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Run one search and print the matches",
		Long: `Run a single filtering pass without the TUI. Matches are printed one
display string per line, or as a JSON array of items with --json.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Query(cmd.Context(), f.options(cmd), strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res.Items)
			}
			for _, line := range res.Display {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print matching items as JSON")
	return cmd
}
