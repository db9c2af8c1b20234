package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"absencehub/internal/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the absence type table",
	Long: `Inserts the absence types from ABSENCE_TYPES_FILE, or the built-in
defaults, when the table is empty. An existing table is left alone.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	db, store, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close(db)

	svc := newServices(store, nil)
	n, err := seedTypes(context.Background(), svc.absenceTypes)
	if err != nil {
		printError("seed failed", err)
		return err
	}

	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Absence types already present, nothing to do")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d absence types\n", n)
	return nil
}
