package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var activitiesLimit int
var activitiesPropositionID int64

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "Synchronize activity history from both chambers",
	Long: `Activities ingests each proposition's event feed (Senado informes
legislativos and Câmara tramitações). Events are upserted by their
source-native identifier, so re-running a feed never duplicates rows.

Examples:
  # Ingest activity history for all propositions with a Senado id
  ./pauta activities

  # Ingest for at most 5 propositions
  ./pauta activities --limit 5

  # Ingest for one specific proposition by database id
  ./pauta activities --id 42`,
	Run: runActivities,
}

func init() {
	rootCmd.AddCommand(activitiesCmd)

	activitiesCmd.Flags().IntVarP(&activitiesLimit, "limit", "l", 0, "Maximum number of propositions to process (0 = all)")
	activitiesCmd.Flags().Int64Var(&activitiesPropositionID, "id", 0, "Sync activities only for the proposition with this id")
}

func runActivities(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	svc, err := setup()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer svc.db.Close()

	if activitiesPropositionID > 0 {
		prop, err := svc.props.GetByID(ctx, activitiesPropositionID)
		if err != nil {
			log.Fatalf("Failed to load proposition %d: %v", activitiesPropositionID, err)
		}
		if prop == nil {
			log.Fatalf("Proposition %d not found", activitiesPropositionID)
		}

		senadoOK, camaraOK := svc.syncer.SyncActivities(ctx, prop)
		log.Printf("Activity sync for %s: senado=%t camara=%t", prop.Identifier(), senadoOK, camaraOK)
		if !senadoOK && !camaraOK {
			os.Exit(1)
		}
		return
	}

	stats, err := svc.syncer.SyncActivitiesAll(ctx, activitiesLimit)
	if err != nil {
		if ctx.Err() != nil {
			log.Println("Activity sync cancelled")
			svc.syncer.PrintActivitySummary(stats)
			os.Exit(1)
		}
		log.Fatalf("Activity sync failed: %v", err)
	}
	svc.syncer.PrintActivitySummary(stats)

	if stats.Errors > 0 {
		os.Exit(1)
	}
}
