package cmd

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/pautaaberta/pauta/internal/handlers"
	"github.com/spf13/cobra"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pauta API server",
	Long:  `Start the JSON API that exposes axes, topics and tracked propositions.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Use PORT env var if set, otherwise use flag value
		if envPort := os.Getenv("PORT"); envPort != "" && port == "8080" {
			port = envPort
		}

		svc, err := setup()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer svc.db.Close()

		app := fiber.New(fiber.Config{
			AppName: "pauta",
		})

		app.Use(logger.New())

		// Axis and topic routes
		app.Get("/api/eixos", handlers.AxesHandler(svc.topics))
		app.Get("/api/temas", handlers.TopicsHandler(svc.topics))
		app.Post("/api/temas", handlers.CreateTopicHandler(svc.topics))
		app.Delete("/api/temas/:id", handlers.DeleteTopicHandler(svc.topics))

		// Proposition routes
		app.Get("/api/proposicoes", handlers.PropositionsHandler(svc.props))
		app.Get("/api/proposicoes/:id", handlers.PropositionDetailHandler(svc.props))
		app.Post("/api/proposicoes", handlers.CreatePropositionHandler(svc.props, svc.topics))

		// Sync status route
		app.Get("/api/sync/stats", handlers.SyncStatsHandler(svc.props))

		log.Printf("Starting server on :%s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to run the server on")
}
