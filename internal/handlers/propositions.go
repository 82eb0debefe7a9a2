package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/pautaaberta/pauta/internal/model"
	"github.com/pautaaberta/pauta/internal/store"
)

type propositionResponse struct {
	ID               int64   `json:"id"`
	TopicID          int64   `json:"tema_id"`
	Tipo             string  `json:"tipo"`
	Numero           int     `json:"numero"`
	Ano              int     `json:"ano"`
	SenadoID         *int64  `json:"sf_id"`
	CamaraID         *int64  `json:"cd_id"`
	Autor            *string `json:"autor"`
	Ementa           *string `json:"ementa"`
	DataApresentacao *string `json:"data_apresentacao"`
	CasaInicial      *string `json:"casa_inicial"`
	CasaAtual        *string `json:"casa_atual"`
	LastSyncedAt     *string `json:"ultima_sincronizacao"`
	LastSyncError    *string `json:"erro_sincronizacao"`
	Selected         bool    `json:"selected"`
}

func toPropositionResponse(p *model.Proposition) propositionResponse {
	resp := propositionResponse{
		ID:       p.ID,
		TopicID:  p.TopicID,
		Tipo:     p.Tipo,
		Numero:   p.Numero,
		Ano:      p.Ano,
		Selected: p.Selected,
	}

	if p.SenadoID.Valid {
		resp.SenadoID = &p.SenadoID.Int64
	}
	if p.CamaraID.Valid {
		resp.CamaraID = &p.CamaraID.Int64
	}
	if p.Autor.Valid {
		resp.Autor = &p.Autor.String
	}
	if p.Ementa.Valid {
		resp.Ementa = &p.Ementa.String
	}
	if p.DataApresentacao.Valid {
		d := p.DataApresentacao.Time.Format("2006-01-02")
		resp.DataApresentacao = &d
	}
	if p.CasaInicial.Valid {
		resp.CasaInicial = &p.CasaInicial.String
	}
	if p.CasaAtual.Valid {
		resp.CasaAtual = &p.CasaAtual.String
	}
	if p.UltimaSincronizacao.Valid {
		ts := p.UltimaSincronizacao.Time.Format("2006-01-02T15:04:05Z07:00")
		resp.LastSyncedAt = &ts
	}
	if p.ErroSincronizacao.Valid {
		resp.LastSyncError = &p.ErroSincronizacao.String
	}

	return resp
}

// PropositionsHandler lists propositions, optionally limited.
func PropositionsHandler(propStore *store.PropositionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		limit := c.QueryInt("limit", 0)

		props, err := propStore.ListAll(ctx, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load propositions"})
		}

		resp := make([]propositionResponse, len(props))
		for i := range props {
			resp[i] = toPropositionResponse(&props[i])
		}
		return c.JSON(resp)
	}
}

// PropositionDetailHandler returns a single proposition.
func PropositionDetailHandler(propStore *store.PropositionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid proposition id"})
		}

		p, err := propStore.GetByID(ctx, int64(id))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load proposition"})
		}
		if p == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "proposition not found"})
		}

		return c.JSON(toPropositionResponse(p))
	}
}

// CreatePropositionHandler registers a proposition for monitoring. Content
// fields stay empty until the next sync run fills them in.
func CreatePropositionHandler(propStore *store.PropositionStore, topicStore *store.TopicStore) fiber.Handler {
	type request struct {
		TopicID int64  `json:"tema_id"`
		Tipo    string `json:"tipo"`
		Numero  int    `json:"numero"`
		Ano     int    `json:"ano"`
	}

	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		var req request
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Tipo == "" || req.Numero == 0 || req.Ano == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tipo, numero and ano are required"})
		}

		topic, err := topicStore.GetByID(ctx, req.TopicID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load topic"})
		}
		if topic == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tema not found"})
		}

		p := &model.Proposition{
			TopicID: req.TopicID,
			Tipo:    req.Tipo,
			Numero:  req.Numero,
			Ano:     req.Ano,
		}
		if err := propStore.Create(ctx, p); err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "proposition already registered"})
		}

		return c.Status(fiber.StatusCreated).JSON(toPropositionResponse(p))
	}
}
