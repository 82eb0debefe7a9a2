package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var deriveLimit int

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Recompute derived fields from the activity history",
	Long: `Derive recomputes casa_atual (the chamber currently handling each
proposition, inferred from its most recent activity) and backfills missing
presentation dates from the earliest known activity.`,
	Run: runDerive,
}

func init() {
	rootCmd.AddCommand(deriveCmd)

	deriveCmd.Flags().IntVarP(&deriveLimit, "limit", "l", 0, "Maximum number of propositions to process (0 = all)")
}

func runDerive(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	svc, err := setup()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer svc.db.Close()

	stats, err := svc.derived.RecomputeAll(ctx, deriveLimit)
	if err != nil {
		log.Fatalf("Derived field recompute failed: %v", err)
	}

	log.Println("")
	log.Println("=== Derived Field Summary ===")
	log.Printf("Total propositions: %d", stats.Total)
	log.Printf("Successes:          %d", stats.Successes)
	log.Printf("Errors:             %d", stats.Errors)

	if stats.Errors > 0 {
		os.Exit(1)
	}
}
