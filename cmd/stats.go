package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show synchronization statistics",
	Run:   runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	svc, err := setup()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer svc.db.Close()

	stats, err := svc.syncer.Statistics(ctx)
	if err != nil {
		log.Fatalf("Failed to compute statistics: %v", err)
	}

	log.Println("=== Sync Statistics ===")
	log.Printf("Total propositions: %d", stats.Total)
	log.Printf("Synced:             %d", stats.Synced)
	log.Printf("Pending:            %d", stats.Pending)
	log.Printf("With error:         %d", stats.WithError)
	log.Printf("With Senado id:     %d", stats.WithSenadoID)
	log.Printf("With Câmara id:     %d", stats.WithCamaraID)
}
