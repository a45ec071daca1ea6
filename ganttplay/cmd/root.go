// Package cmd provides the command-line interface of ganttplay.
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/Pallavi2687/cpu-scheduler-frontend/config"
	"github.com/Pallavi2687/cpu-scheduler-frontend/session"
)

var (
	envFile string
	cfg     = config.Default()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ganttplay",
	Short: "Ganttplay animates CPU scheduling timelines.",
	Long: `Ganttplay animates CPU scheduling timelines block by block, in the ` +
		`terminal or in a browser. Timelines come from schedule files or from ` +
		`the CPU scheduling service.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file",
		config.DefaultEnvFile, "dotenv file to read settings from")
	config.RegisterFlags(rootCmd.PersistentFlags())
}

func loadConfig(cmd *cobra.Command) error {
	loaded, err := config.Load(envFile)
	if err != nil {
		return err
	}

	if err := loaded.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}

	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded

	return nil
}

// sessionBuilder returns a builder carrying the loaded settings.
func sessionBuilder() session.Builder {
	b := session.MakeBuilder().WithConfig(cfg)
	if cfg.LogEvents {
		b = b.WithEventLog(os.Stderr)
	}

	return b
}

// terminate closes s and reports a failed trace flush or socket close.
func terminate(s *session.Session) {
	if err := s.Terminate(); err != nil {
		log.Printf("Error: %v", err)
	}
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
