package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/pautaaberta/pauta/internal/model"
	"github.com/pautaaberta/pauta/internal/store"
)

type axisResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

type topicResponse struct {
	ID     int64  `json:"id"`
	AxisID int64  `json:"eixo_id"`
	Name   string `json:"nome"`
}

// AxesHandler lists the strategic axes.
func AxesHandler(topicStore *store.TopicStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		axes, err := topicStore.GetAxes(ctx)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load axes"})
		}

		resp := make([]axisResponse, len(axes))
		for i, a := range axes {
			resp[i] = axisResponse{ID: a.ID, Name: a.Name}
		}
		return c.JSON(resp)
	}
}

// TopicsHandler lists all topics.
func TopicsHandler(topicStore *store.TopicStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		topics, err := topicStore.GetAll(ctx)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load topics"})
		}

		resp := make([]topicResponse, len(topics))
		for i, t := range topics {
			resp[i] = topicResponse{ID: t.ID, AxisID: t.AxisID, Name: t.Name}
		}
		return c.JSON(resp)
	}
}

// CreateTopicHandler registers a new topic under an axis.
func CreateTopicHandler(topicStore *store.TopicStore) fiber.Handler {
	type request struct {
		AxisID int64  `json:"eixo_id"`
		Name   string `json:"nome"`
	}

	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		var req request
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "nome is required"})
		}

		topic := &model.Topic{AxisID: req.AxisID, Name: req.Name}
		if err := topicStore.Create(ctx, topic); err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "failed to create topic"})
		}

		return c.Status(fiber.StatusCreated).JSON(topicResponse{ID: topic.ID, AxisID: topic.AxisID, Name: topic.Name})
	}
}

// DeleteTopicHandler removes a topic and, via cascade, its propositions.
func DeleteTopicHandler(topicStore *store.TopicStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid topic id"})
		}

		if err := topicStore.Delete(ctx, int64(id)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete topic"})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
