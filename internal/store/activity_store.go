package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pautaaberta/pauta/internal/model"
)

// SenadoActivityStore handles the Senado activity history table.
type SenadoActivityStore struct {
	db *sql.DB
}

// NewSenadoActivityStore creates a new SenadoActivityStore.
func NewSenadoActivityStore(db *sql.DB) *SenadoActivityStore {
	return &SenadoActivityStore{db: db}
}

// Upsert inserts an informe or, when (proposition_id, informe_id) already
// exists, overwrites every mapped field with the newly fetched payload. The
// feed is authoritative for event content on every re-fetch.
func (s *SenadoActivityStore) Upsert(ctx context.Context, a *model.SenadoActivity) error {
	query := `
		INSERT INTO senado_activities (
			proposition_id, informe_id, data, descricao,
			colegiado_codigo, colegiado_casa, colegiado_sigla, colegiado_nome,
			ente_administrativo_id, ente_administrativo_casa,
			ente_administrativo_sigla, ente_administrativo_nome,
			id_situacao_iniciada, sigla_situacao_iniciada
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (proposition_id, informe_id) DO UPDATE SET
			data = EXCLUDED.data,
			descricao = EXCLUDED.descricao,
			colegiado_codigo = EXCLUDED.colegiado_codigo,
			colegiado_casa = EXCLUDED.colegiado_casa,
			colegiado_sigla = EXCLUDED.colegiado_sigla,
			colegiado_nome = EXCLUDED.colegiado_nome,
			ente_administrativo_id = EXCLUDED.ente_administrativo_id,
			ente_administrativo_casa = EXCLUDED.ente_administrativo_casa,
			ente_administrativo_sigla = EXCLUDED.ente_administrativo_sigla,
			ente_administrativo_nome = EXCLUDED.ente_administrativo_nome,
			id_situacao_iniciada = EXCLUDED.id_situacao_iniciada,
			sigla_situacao_iniciada = EXCLUDED.sigla_situacao_iniciada
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		a.PropositionID,
		a.InformeID,
		a.Data,
		a.Descricao,
		a.ColegiadoCodigo,
		a.ColegiadoCasa,
		a.ColegiadoSigla,
		a.ColegiadoNome,
		a.EnteAdministrativoID,
		a.EnteAdministrativoCasa,
		a.EnteAdministrativoSigla,
		a.EnteAdministrativoNome,
		a.IDSituacaoIniciada,
		a.SiglaSituacaoIniciada,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert senado activity %d: %w", a.InformeID, err)
	}

	return nil
}

// LatestDate returns MAX(data) for a proposition, NULL when it has no rows.
func (s *SenadoActivityStore) LatestDate(ctx context.Context, propositionID int64) (sql.NullTime, error) {
	var t sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(data) FROM senado_activities WHERE proposition_id = $1`,
		propositionID,
	).Scan(&t)
	if err != nil {
		return t, fmt.Errorf("failed to get latest senado activity date for proposition %d: %w", propositionID, err)
	}
	return t, nil
}

// EarliestDate returns MIN(data) for a proposition.
func (s *SenadoActivityStore) EarliestDate(ctx context.Context, propositionID int64) (sql.NullTime, error) {
	var t sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT MIN(data) FROM senado_activities WHERE proposition_id = $1`,
		propositionID,
	).Scan(&t)
	if err != nil {
		return t, fmt.Errorf("failed to get earliest senado activity date for proposition %d: %w", propositionID, err)
	}
	return t, nil
}

// CamaraActivityStore handles the Câmara activity history table.
type CamaraActivityStore struct {
	db *sql.DB
}

// NewCamaraActivityStore creates a new CamaraActivityStore.
func NewCamaraActivityStore(db *sql.DB) *CamaraActivityStore {
	return &CamaraActivityStore{db: db}
}

// Upsert inserts a tramitação or overwrites the existing row keyed by
// (proposition_id, sequencia).
func (s *CamaraActivityStore) Upsert(ctx context.Context, a *model.CamaraActivity) error {
	query := `
		INSERT INTO camara_activities (
			proposition_id, sequencia, data_hora, sigla_orgao, uri_orgao,
			uri_ultimo_relator, regime, descricao_tramitacao,
			cod_tipo_tramitacao, descricao_situacao, cod_situacao,
			despacho, url, ambito, apreciacao
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (proposition_id, sequencia) DO UPDATE SET
			data_hora = EXCLUDED.data_hora,
			sigla_orgao = EXCLUDED.sigla_orgao,
			uri_orgao = EXCLUDED.uri_orgao,
			uri_ultimo_relator = EXCLUDED.uri_ultimo_relator,
			regime = EXCLUDED.regime,
			descricao_tramitacao = EXCLUDED.descricao_tramitacao,
			cod_tipo_tramitacao = EXCLUDED.cod_tipo_tramitacao,
			descricao_situacao = EXCLUDED.descricao_situacao,
			cod_situacao = EXCLUDED.cod_situacao,
			despacho = EXCLUDED.despacho,
			url = EXCLUDED.url,
			ambito = EXCLUDED.ambito,
			apreciacao = EXCLUDED.apreciacao
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		a.PropositionID,
		a.Sequencia,
		a.DataHora,
		a.SiglaOrgao,
		a.URIOrgao,
		a.URIUltimoRelator,
		a.Regime,
		a.DescricaoTramitacao,
		a.CodTipoTramitacao,
		a.DescricaoSituacao,
		a.CodSituacao,
		a.Despacho,
		a.URL,
		a.Ambito,
		a.Apreciacao,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert camara activity %d: %w", a.Sequencia, err)
	}

	return nil
}

// LatestDate returns MAX(data_hora) for a proposition.
func (s *CamaraActivityStore) LatestDate(ctx context.Context, propositionID int64) (sql.NullTime, error) {
	var t sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(data_hora) FROM camara_activities WHERE proposition_id = $1`,
		propositionID,
	).Scan(&t)
	if err != nil {
		return t, fmt.Errorf("failed to get latest camara activity date for proposition %d: %w", propositionID, err)
	}
	return t, nil
}

// EarliestDate returns MIN(data_hora) for a proposition.
func (s *CamaraActivityStore) EarliestDate(ctx context.Context, propositionID int64) (sql.NullTime, error) {
	var t sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT MIN(data_hora) FROM camara_activities WHERE proposition_id = $1`,
		propositionID,
	).Scan(&t)
	if err != nil {
		return t, fmt.Errorf("failed to get earliest camara activity date for proposition %d: %w", propositionID, err)
	}
	return t, nil
}
