package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"absencehub/internal/apiclient"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe a running server",
	Long: `Looks for a running server at API_URL and then on API_FALLBACK_PORTS,
and prints the first address whose /health answers.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := apiclient.New(cfg.APIURL, cfg.APIFallbackPorts)
	base, err := client.Locate(ctx)
	if err != nil {
		for _, c := range client.Candidates() {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s ✗\n", c)
		}
		printError("no server found", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "AbsenceHub API at %s ✓\n", base)
	return nil
}
