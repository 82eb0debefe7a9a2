package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/pautaaberta/pauta/internal/store"
)

// SyncStatsHandler exposes the sync counters consumed by the frontend
// dashboard.
func SyncStatsHandler(propStore *store.PropositionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		stats, err := propStore.Statistics(ctx)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute statistics"})
		}

		return c.JSON(stats)
	}
}
