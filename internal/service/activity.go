package service

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	"github.com/pautaaberta/pauta/internal/model"
	"github.com/pautaaberta/pauta/internal/store"
)

// ActivitySyncer ingests the per-chamber activity feeds. Ingestion is
// idempotent: events are upserted by their source-native identifier, so
// re-running a feed never duplicates rows.
type ActivitySyncer struct {
	senado     *SenadoClient
	camara     *CamaraClient
	senadoActs *store.SenadoActivityStore
	camaraActs *store.CamaraActivityStore
	logger     *log.Logger
	errLogger  *log.Logger
}

// NewActivitySyncer creates a new ActivitySyncer.
func NewActivitySyncer(senado *SenadoClient, camara *CamaraClient, senadoActs *store.SenadoActivityStore, camaraActs *store.CamaraActivityStore) *ActivitySyncer {
	return &ActivitySyncer{
		senado:     senado,
		camara:     camara,
		senadoActs: senadoActs,
		camaraActs: camaraActs,
		logger:     log.New(os.Stdout, "", log.LstdFlags),
		errLogger:  log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

// SyncSenado ingests the Senado informe feed for a proposition. Returns
// false when the proposition has no Senado id or the fetch fails; individual
// malformed informes are skipped without failing the feed.
func (s *ActivitySyncer) SyncSenado(ctx context.Context, p *model.Proposition) bool {
	if !p.SenadoID.Valid {
		s.logger.Printf("Proposition %s has no senado_id, skipping activity sync", p.Identifier())
		return false
	}

	detail, err := s.senado.FetchProcesso(ctx, p.SenadoID.Int64)
	if err != nil {
		s.errLogger.Printf("Failed to fetch senado activities for %s: %v", p.Identifier(), err)
		return false
	}

	ingested := 0
	for _, autuacao := range detail.Autuacoes {
		for _, informe := range autuacao.InformesLegislativos {
			activity := mapSenadoInforme(p.ID, informe)
			if activity == nil {
				continue
			}
			if err := s.senadoActs.Upsert(ctx, activity); err != nil {
				s.errLogger.Printf("Failed to store senado activity %d for %s: %v", informe.ID, p.Identifier(), err)
				continue
			}
			ingested++
		}
	}

	s.logger.Printf("Ingested %d senado activities for %s", ingested, p.Identifier())
	return true
}

// SyncCamara ingests the Câmara tramitação feed for a proposition.
func (s *ActivitySyncer) SyncCamara(ctx context.Context, p *model.Proposition) bool {
	if !p.CamaraID.Valid {
		s.logger.Printf("Proposition %s has no camara_id, skipping activity sync", p.Identifier())
		return false
	}

	feed, err := s.camara.Tramitacoes(ctx, p.CamaraID.Int64)
	if err != nil {
		s.errLogger.Printf("Failed to fetch camara activities for %s: %v", p.Identifier(), err)
		return false
	}

	ingested := 0
	for _, tram := range feed.Dados {
		activity := mapCamaraTramitacao(p.ID, tram)
		if activity == nil {
			continue
		}
		if err := s.camaraActs.Upsert(ctx, activity); err != nil {
			s.errLogger.Printf("Failed to store camara activity %d for %s: %v", tram.Sequencia, p.Identifier(), err)
			continue
		}
		ingested++
	}

	s.logger.Printf("Ingested %d camara activities for %s", ingested, p.Identifier())
	return true
}

// mapSenadoInforme converts one informe into an activity row. Returns nil
// for informes without an id (nothing to key the upsert on) and for
// informes that are sub-documents of another event.
func mapSenadoInforme(propositionID int64, informe SenadoInforme) *model.SenadoActivity {
	if informe.ID == 0 {
		return nil
	}
	if len(informe.DocumentosAssociados) > 0 {
		return nil
	}

	a := &model.SenadoActivity{
		PropositionID: propositionID,
		InformeID:     informe.ID,
		Descricao:     informe.Descricao,
	}

	if d := parseAPIDate(informe.Data); d != nil {
		a.Data = sql.NullTime{Time: *d, Valid: true}
	}

	if c := informe.Colegiado; c != nil {
		a.ColegiadoCodigo = sql.NullInt64{Int64: c.Codigo, Valid: c.Codigo != 0}
		a.ColegiadoCasa = nullString(c.Casa)
		a.ColegiadoSigla = nullString(c.Sigla)
		a.ColegiadoNome = nullString(c.Nome)
	}

	if e := informe.EnteAdministrativo; e != nil {
		a.EnteAdministrativoID = sql.NullInt64{Int64: e.ID, Valid: e.ID != 0}
		a.EnteAdministrativoCasa = nullString(e.Casa)
		a.EnteAdministrativoSigla = nullString(e.Sigla)
		a.EnteAdministrativoNome = nullString(e.Nome)
	}

	if informe.IDSituacaoIniciada != 0 {
		a.IDSituacaoIniciada = sql.NullInt64{Int64: informe.IDSituacaoIniciada, Valid: true}
	}
	a.SiglaSituacaoIniciada = nullString(informe.SiglaSituacaoIniciada)

	return a
}

// mapCamaraTramitacao converts one tramitação into an activity row. Returns
// nil when the sequencia is missing.
func mapCamaraTramitacao(propositionID int64, tram CamaraTramitacao) *model.CamaraActivity {
	if tram.Sequencia == 0 {
		return nil
	}

	a := &model.CamaraActivity{
		PropositionID:       propositionID,
		Sequencia:           tram.Sequencia,
		SiglaOrgao:          tram.SiglaOrgao,
		URIOrgao:            nullString(tram.URIOrgao),
		URIUltimoRelator:    nullString(tram.URIUltimoRelator),
		Regime:              nullString(tram.Regime),
		DescricaoTramitacao: tram.DescricaoTramitacao,
		CodTipoTramitacao:   tram.CodTipoTramitacao,
		DescricaoSituacao:   nullString(tram.DescricaoSituacao),
		Despacho:            tram.Despacho,
		URL:                 nullString(tram.URL),
		Ambito:              nullString(tram.Ambito),
		Apreciacao:          nullString(tram.Apreciacao),
	}

	if tram.CodSituacao != 0 {
		a.CodSituacao = sql.NullInt64{Int64: tram.CodSituacao, Valid: true}
	}

	if dt := parseCamaraDateTime(tram.DataHora); dt != nil {
		a.DataHora = sql.NullTime{Time: *dt, Valid: true}
	}

	return a
}

// parseCamaraDateTime parses the Câmara dataHora field, which arrives with
// or without a time component.
func parseCamaraDateTime(s string) *time.Time {
	if s == "" {
		return nil
	}

	layout := "2006-01-02"
	if strings.Contains(s, "T") {
		layout = "2006-01-02T15:04"
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return nil
	}

	return &t
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
