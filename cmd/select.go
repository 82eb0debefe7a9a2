package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Recompute the featured proposition for every topic",
	Long: `Select flags, for each topic, the proposition with the earliest
presentation date (lowest id on ties) as the topic's featured one.`,
	Run: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	svc, err := setup()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer svc.db.Close()

	stats := svc.selection.SelectAll(ctx)

	log.Println("")
	log.Println("=== Selection Summary ===")
	log.Printf("Topics processed: %d", stats.TopicsProcessed)
	log.Printf("Updated:          %d", stats.Updated)
	log.Printf("Errors:           %d", stats.Errors)

	if stats.Errors > 0 {
		os.Exit(1)
	}
}
