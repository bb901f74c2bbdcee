package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show today's oracle call budget",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadLocalConfig()
		if err != nil {
			return err
		}
		gov, closeUsage, err := newGovernor(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeUsage()

		u := gov.Status(cmd.Context())
		fmt.Printf("Date:        %s\n", u.Date)
		fmt.Printf("Backend:     %s\n", cfg.Usage.Backend)
		fmt.Printf("Today:       %d / %d (%d left)\n", u.DailyCount, u.DailyLimit, u.DailyRemaining())
		fmt.Printf("Last minute: %d / %d (%d left)\n", u.MinuteCount, u.MinuteLimit, u.MinuteRemaining())
		return nil
	},
}
