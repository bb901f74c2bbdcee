package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/abhisek/codemaster/internal/app"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codemaster",
	Short: "AI coding practice in the terminal",
	Long:  "CodeMaster: level-based coding practice for Python, C and Java with AI grading and hints.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
			if err := os.Setenv("CODEMASTER_DATA_DIR", dir); err != nil {
				return fmt.Errorf("set data dir: %w", err)
			}
		}
		// Values already in the environment win over .env.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for accounts, usage, problems and the event log (overrides CODEMASTER_DATA_DIR)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(versionCmd)
}

// runApp builds the engine and launches the TUI. Logs go to a file since
// stdout belongs to the screen.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))

	d, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(ctx, app.Options{
		Engine: d.engine,
		Events: d.events,
	})
}
