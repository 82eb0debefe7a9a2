package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var syncLimit int
var syncForce bool
var syncPropositionID int64

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize propositions with the Senado and Câmara APIs",
	Long: `Sync fetches each proposition from both chambers' APIs, reconciles the
two sources (the Senado wins when it asserts origin via the Iniciadora flag)
and persists the merged record, then refreshes derived fields and per-topic
selection.

Examples:
  # Sync only propositions never synchronized
  ./pauta sync

  # Sync everything, including already-synchronized propositions
  ./pauta sync --force

  # Sync at most 10 propositions
  ./pauta sync --limit 10

  # Sync one specific proposition by database id
  ./pauta sync --id 42`,
	Run: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().IntVarP(&syncLimit, "limit", "l", 0, "Maximum number of propositions to process (0 = all)")
	syncCmd.Flags().BoolVar(&syncForce, "force", false, "Sync all propositions, even already synchronized ones")
	syncCmd.Flags().Int64Var(&syncPropositionID, "id", 0, "Sync only the proposition with this id")
}

func runSync(cmd *cobra.Command, args []string) {
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

	if syncPropositionID > 0 {
		prop, err := svc.props.GetByID(ctx, syncPropositionID)
		if err != nil {
			log.Fatalf("Failed to load proposition %d: %v", syncPropositionID, err)
		}
		if prop == nil {
			log.Fatalf("Proposition %d not found", syncPropositionID)
		}

		if !svc.syncer.SyncProposition(ctx, prop) {
			log.Printf("Sync failed for %s", prop.Identifier())
			os.Exit(1)
		}
		return
	}

	stats, err := svc.syncer.SyncAll(ctx, syncLimit, syncForce)
	if err != nil {
		if ctx.Err() != nil {
			log.Println("Sync cancelled")
			svc.syncer.PrintSummary(stats)
			os.Exit(1)
		}
		log.Fatalf("Sync failed: %v", err)
	}
	svc.syncer.PrintSummary(stats)

	if stats.Errors > 0 {
		os.Exit(1)
	}
}
