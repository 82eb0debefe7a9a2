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

// DerivedFieldService owns the fields computed from the activity history:
// casa_atual and the backfilled data_apresentacao. Nothing else writes them.
type DerivedFieldService struct {
	props      *store.PropositionStore
	senadoActs *store.SenadoActivityStore
	camaraActs *store.CamaraActivityStore
	logger     *log.Logger
	errLogger  *log.Logger
}

// NewDerivedFieldService creates a new DerivedFieldService.
func NewDerivedFieldService(props *store.PropositionStore, senadoActs *store.SenadoActivityStore, camaraActs *store.CamaraActivityStore) *DerivedFieldService {
	return &DerivedFieldService{
		props:      props,
		senadoActs: senadoActs,
		camaraActs: camaraActs,
		logger:     log.New(os.Stdout, "", log.LstdFlags),
		errLogger:  log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

// DerivedStats tracks a batch recompute run.
type DerivedStats struct {
	Total     int
	Successes int
	Errors    int
}

// Update recomputes casa_atual from the latest activity in each chamber and
// backfills data_apresentacao from the earliest when it is still unset. It
// is invoked as a best-effort side effect of sync, so it reports failure
// instead of returning an error.
func (s *DerivedFieldService) Update(ctx context.Context, p *model.Proposition) bool {
	latestSF, err := s.senadoActs.LatestDate(ctx, p.ID)
	if err != nil {
		s.errLogger.Printf("Failed to read senado activity dates for %s: %v", p.Identifier(), err)
		return false
	}
	latestCD, err := s.camaraActs.LatestDate(ctx, p.ID)
	if err != nil {
		s.errLogger.Printf("Failed to read camara activity dates for %s: %v", p.Identifier(), err)
		return false
	}

	casa := resolveCasaAtual(nullDate(latestSF), nullDate(latestCD))
	if casa != "" && (!p.CasaAtual.Valid || p.CasaAtual.String != casa) {
		if err := s.props.UpdateCasaAtual(ctx, p.ID, casa); err != nil {
			s.errLogger.Printf("Failed to update casa_atual for %s: %v", p.Identifier(), err)
			return false
		}
		p.CasaAtual.String = casa
		p.CasaAtual.Valid = true
		s.logger.Printf("Updated casa_atual of %s to %s", p.Identifier(), casa)
	}

	if !p.DataApresentacao.Valid {
		if err := s.backfillDataApresentacao(ctx, p); err != nil {
			s.errLogger.Printf("Failed to backfill data_apresentacao for %s: %v", p.Identifier(), err)
			return false
		}
	}

	return true
}

// backfillDataApresentacao sets the presentation date to the earliest known
// activity date. One-time: once the field is set this routine never touches
// it again.
func (s *DerivedFieldService) backfillDataApresentacao(ctx context.Context, p *model.Proposition) error {
	earliestSF, err := s.senadoActs.EarliestDate(ctx, p.ID)
	if err != nil {
		return err
	}
	earliestCD, err := s.camaraActs.EarliestDate(ctx, p.ID)
	if err != nil {
		return err
	}

	earliest := earliestOf(nullDate(earliestSF), nullDate(earliestCD))
	if earliest == nil {
		return nil
	}

	if err := s.props.UpdateDataApresentacao(ctx, p.ID, *earliest); err != nil {
		return err
	}
	p.DataApresentacao.Time = *earliest
	p.DataApresentacao.Valid = true
	s.logger.Printf("Backfilled data_apresentacao of %s to %s", p.Identifier(), earliest.Format("2006-01-02"))

	return nil
}

// RecomputeAll runs Update over every proposition, isolating failures.
func (s *DerivedFieldService) RecomputeAll(ctx context.Context, limit int) (*DerivedStats, error) {
	props, err := s.props.ListAll(ctx, limit)
	if err != nil {
		return nil, err
	}

	stats := &DerivedStats{Total: len(props)}
	for i := range props {
		if s.Update(ctx, &props[i]) {
			stats.Successes++
		} else {
			stats.Errors++
		}
	}

	return stats, nil
}

// resolveCasaAtual decides the current house from the latest activity date
// in each chamber. The Câmara wins only with strictly newer activity; a tie
// stays with the Senado. Nil on both sides means no activity yet and the
// current value is kept.
func resolveCasaAtual(latestSF, latestCD *time.Time) string {
	switch {
	case latestSF != nil && latestCD != nil:
		if latestCD.After(*latestSF) {
			return model.HouseCamara
		}
		return model.HouseSenado
	case latestCD != nil:
		return model.HouseCamara
	case latestSF != nil:
		return model.HouseSenado
	default:
		return ""
	}
}

// earliestOf picks the earlier of two optional dates.
func earliestOf(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.Before(*a):
		return b
	default:
		return a
	}
}

// nullDate converts a nullable timestamp to a date pointer, dropping any
// time-of-day so the two feeds compare on calendar days.
func nullDate(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	d := time.Date(t.Time.Year(), t.Time.Month(), t.Time.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
