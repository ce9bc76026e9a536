package main

import (
	"fmt"

	"github.com/aretw0/japanizer/internal/presentation/tui"
	"github.com/aretw0/japanizer/pkg/romaji"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [prefix]",
	Short: "List the romaji to hiragana rules in match order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := romaji.Default()
		if err != nil {
			return err
		}

		filter := ""
		if len(args) > 0 {
			filter = args[0]
		}
		md := tui.RulesMarkdown(table, filter)

		out := cmd.OutOrStdout()
		if raw, _ := cmd.Flags().GetBool("raw"); raw || !tui.IsTerminal(out) {
			_, err := fmt.Fprint(out, md)
			return err
		}

		rendered, err := tui.NewRenderer()(md)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().Bool("raw", false, "Print markdown without terminal styling")
}
