package main

import (
	"fmt"

	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var preferenceCmd = &cobra.Command{
	Use:   "preference <user-id> [enable|disable]",
	Short: "Show or change whether conversion is enabled for a user",
	Long: `Reads or writes a user preference in the configured store.
With the memory driver changes only live as long as the command, so point store.driver at redis to persist them.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		app, err := newApp(cmd, cfg)
		if err != nil {
			return err
		}
		defer app.Close(cmd.Context())

		ctx := cmd.Context()
		prefs := app.Preferences()

		var status domain.Status
		if len(args) == 2 {
			if status, err = domain.ParseStatus(args[1]); err != nil {
				return err
			}
		}
		name, _ := cmd.Flags().GetString("name")

		var pref domain.Preference
		if status == "" && name == "" {
			pref, err = prefs.Load(ctx, userID)
		} else {
			pref, err = prefs.Update(ctx, userID, func(p *domain.Preference) {
				if status != "" {
					p.Enabled = status.Bool()
				}
				if name != "" {
					p.Name = name
				}
			})
		}
		if err != nil {
			return err
		}

		label := pref.UserID.String()
		if pref.Name != "" {
			label = fmt.Sprintf("%s (%s)", pref.Name, label)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", label, pref.Status())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(preferenceCmd)
	preferenceCmd.Flags().String("name", "", "Display name to store with the preference")
}
