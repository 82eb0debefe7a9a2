package service

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/pautaaberta/pauta/internal/model"
	"github.com/pautaaberta/pauta/internal/store"
)

// Syncer orchestrates the synchronization workflow: fetch both chambers,
// normalize, reconcile, persist, then trigger the derived-field and
// selection recomputes.
type Syncer struct {
	senado    *SenadoClient
	camara    *CamaraClient
	props     *store.PropositionStore
	topics    *store.TopicStore
	activity  *ActivitySyncer
	derived   *DerivedFieldService
	selection *SelectionService

	// Pacing between batch items, layered on the per-call rate limiters.
	syncDelay     time.Duration
	activityDelay time.Duration

	logger    *log.Logger
	errLogger *log.Logger
}

// NewSyncer creates a new Syncer.
func NewSyncer(
	senado *SenadoClient,
	camara *CamaraClient,
	props *store.PropositionStore,
	topics *store.TopicStore,
	activity *ActivitySyncer,
	derived *DerivedFieldService,
	selection *SelectionService,
	syncDelay, activityDelay time.Duration,
) *Syncer {
	return &Syncer{
		senado:        senado,
		camara:        camara,
		props:         props,
		topics:        topics,
		activity:      activity,
		derived:       derived,
		selection:     selection,
		syncDelay:     syncDelay,
		activityDelay: activityDelay,
		logger:        log.New(os.Stdout, "", log.LstdFlags),
		errLogger:     log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

// SyncStats tracks a batch sync run.
type SyncStats struct {
	Total     int
	Successes int
	Errors    int
}

// ActivityStats tracks a batch activity sync run.
type ActivityStats struct {
	Total           int
	SuccessesSenado int
	SuccessesCamara int
	Errors          int
}

// SyncProposition synchronizes one proposition with both chambers. The
// Câmara is only consulted when the Senado did not assert origin, which
// both saves calls and fixes the authority precedence.
func (s *Syncer) SyncProposition(ctx context.Context, p *model.Proposition) bool {
	s.logger.Printf("Starting sync for proposition %s", p.Identifier())

	var upper *Candidate
	processos, err := s.senado.SearchProcesso(ctx, p.Tipo, p.Numero, p.Ano)
	if err != nil {
		s.errLogger.Printf("Senado fetch failed for %s: %v", p.Identifier(), err)
	} else {
		upper = NormalizeSenado(processos, p.Tipo, p.Numero, p.Ano)
	}

	var lower *Candidate
	if upper == nil || upper.CasaInicial == "" {
		lower = s.fetchCamaraCandidate(ctx, p)
	}

	outcome := Reconcile(upper, lower)
	if outcome.NotFound {
		p.ErroSincronizacao = sql.NullString{String: model.ErrNotFound, Valid: true}
		p.UltimaSincronizacao = sql.NullTime{}
		if err := s.props.Save(ctx, p); err != nil {
			s.errLogger.Printf("Failed to persist not-found state for %s: %v", p.Identifier(), err)
		}
		s.logger.Printf("Proposition %s not found in either chamber", p.Identifier())
		return false
	}

	outcome.ApplyTo(p)
	p.UltimaSincronizacao = sql.NullTime{Time: time.Now(), Valid: true}
	p.ErroSincronizacao = sql.NullString{}

	if err := s.props.Save(ctx, p); err != nil {
		s.errLogger.Printf("Failed to save proposition %s: %v", p.Identifier(), err)
		return false
	}

	// Best-effort follow-ups; their failures are logged, not propagated.
	if !s.derived.Update(ctx, p) {
		s.logger.Printf("Warning: derived field update failed for %s", p.Identifier())
	}
	if topic, err := s.topics.GetByID(ctx, p.TopicID); err != nil || topic == nil {
		s.logger.Printf("Warning: could not load topic %d for selection after sync: %v", p.TopicID, err)
	} else {
		s.selection.SelectForTopic(ctx, topic)
	}

	s.logger.Printf("Successfully synchronized %s", p.Identifier())
	return true
}

// fetchCamaraCandidate runs the three-call Câmara lookup. Details and
// authors are fetched only once the search produced an id.
func (s *Syncer) fetchCamaraCandidate(ctx context.Context, p *model.Proposition) *Candidate {
	search, err := s.camara.Search(ctx, p.Tipo, p.Numero, p.Ano)
	if err != nil {
		s.errLogger.Printf("Camara search failed for %s: %v", p.Identifier(), err)
		return nil
	}
	if len(search.Dados) == 0 {
		return nil
	}

	cdID := search.Dados[0].ID

	details, err := s.camara.Details(ctx, cdID)
	if err != nil {
		s.errLogger.Printf("Camara details failed for %s: %v", p.Identifier(), err)
	}
	authors, err := s.camara.Authors(ctx, cdID)
	if err != nil {
		s.errLogger.Printf("Camara authors failed for %s: %v", p.Identifier(), err)
	}

	return NormalizeCamara(search, details, authors)
}

// SyncAll synchronizes every pending proposition, or every proposition when
// force is set. A limit of 0 means no limit.
func (s *Syncer) SyncAll(ctx context.Context, limit int, force bool) (*SyncStats, error) {
	var props []model.Proposition
	var err error
	if force {
		props, err = s.props.ListAll(ctx, limit)
	} else {
		props, err = s.props.ListPending(ctx, limit)
	}
	if err != nil {
		return nil, err
	}

	stats := &SyncStats{Total: len(props)}
	s.logger.Printf("Starting batch sync for %d propositions", stats.Total)

	for i := range props {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		if s.SyncProposition(ctx, &props[i]) {
			stats.Successes++
		} else {
			stats.Errors++
		}

		if i < len(props)-1 {
			time.Sleep(s.syncDelay)
		}
	}

	s.logger.Printf("Batch sync completed: %d successes, %d errors", stats.Successes, stats.Errors)

	// A full pass can change which proposition in a topic has the earliest
	// date, so refresh selection everywhere.
	if stats.Successes > 0 {
		s.selection.SelectAll(ctx)
	}

	return stats, nil
}

// SyncActivities ingests both chambers' activity feeds for one proposition
// and refreshes its derived fields when anything came in.
func (s *Syncer) SyncActivities(ctx context.Context, p *model.Proposition) (senadoOK, camaraOK bool) {
	if p.SenadoID.Valid {
		senadoOK = s.activity.SyncSenado(ctx, p)
	}
	if p.CamaraID.Valid {
		camaraOK = s.activity.SyncCamara(ctx, p)
	}

	if senadoOK || camaraOK {
		if !s.derived.Update(ctx, p) {
			s.logger.Printf("Warning: derived field update failed for %s", p.Identifier())
		}
	}

	return senadoOK, camaraOK
}

// SyncActivitiesAll ingests activity feeds for every proposition with a
// Senado id. A proposition counts as an error only when both chambers
// failed or were skipped.
func (s *Syncer) SyncActivitiesAll(ctx context.Context, limit int) (*ActivityStats, error) {
	props, err := s.props.ListWithSenadoID(ctx, limit)
	if err != nil {
		return nil, err
	}

	stats := &ActivityStats{Total: len(props)}
	s.logger.Printf("Starting activity sync for %d propositions", stats.Total)

	for i := range props {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		senadoOK, camaraOK := s.SyncActivities(ctx, &props[i])
		if senadoOK {
			stats.SuccessesSenado++
		}
		if camaraOK {
			stats.SuccessesCamara++
		}
		if !senadoOK && !camaraOK {
			stats.Errors++
		}

		if i < len(props)-1 {
			time.Sleep(s.activityDelay)
		}
	}

	s.logger.Printf("Activity sync completed: %d Senado, %d Camara, %d errors",
		stats.SuccessesSenado, stats.SuccessesCamara, stats.Errors)

	return stats, nil
}

// Statistics reports the current sync state of the proposition table.
func (s *Syncer) Statistics(ctx context.Context) (*model.SyncStatistics, error) {
	return s.props.Statistics(ctx)
}

// PrintSummary prints the batch sync statistics.
func (s *Syncer) PrintSummary(stats *SyncStats) {
	s.logger.Println("")
	s.logger.Println("=== Sync Summary ===")
	s.logger.Printf("Total propositions: %d", stats.Total)
	s.logger.Printf("Successes:          %d", stats.Successes)
	s.logger.Printf("Errors:             %d", stats.Errors)
}

// PrintActivitySummary prints the activity sync statistics.
func (s *Syncer) PrintActivitySummary(stats *ActivityStats) {
	s.logger.Println("")
	s.logger.Println("=== Activity Sync Summary ===")
	s.logger.Printf("Total propositions: %d", stats.Total)
	s.logger.Printf("Senado successes:   %d", stats.SuccessesSenado)
	s.logger.Printf("Camara successes:   %d", stats.SuccessesCamara)
	s.logger.Printf("Errors:             %d", stats.Errors)
}
