package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/codemaster/internal/bank"
	"github.com/abhisek/codemaster/internal/problemgen"
	"github.com/spf13/cobra"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect the problem bank",
}

var bankCheckCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate a problem bank file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			cfg, err := loadLocalConfig()
			if err != nil {
				return err
			}
			path = cfg.BankPath
		}

		b, err := bank.Load(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}

		st := b.Stats()
		fmt.Println(path)
		fmt.Printf("%-8s  %9s  %8s\n", "Language", "Questions", "Practice")
		for _, lang := range problemgen.Languages {
			fmt.Printf("%-8s  %9d  %8d\n", lang, st.Questions[lang], st.Practice[lang])
		}

		issues := b.Check()
		if len(issues) == 0 {
			fmt.Println("\nNo issues found.")
			return nil
		}
		fmt.Printf("\n%d issue(s):\n", len(issues))
		for _, is := range issues {
			fmt.Println("  " + is.String())
		}
		return errors.New("problem bank has issues")
	},
}

func init() {
	bankCmd.AddCommand(bankCheckCmd)
}
