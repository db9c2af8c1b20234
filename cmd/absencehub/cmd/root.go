package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"absencehub/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "absencehub",
	Short: "AbsenceHub - team absence planning",
	Long: `AbsenceHub records employee absences (vacation, sick leave, home office)
and rejects overlapping entries for the same service account.

Commands:
  serve     - run the REST API
  seed      - fill the absence type table
  check     - probe a running server
  validate  - validate an absence offline`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.GetConfig()
		cfg.ApplyLogLevel()
		logrus.Debug("Config initialized")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
