package service

import (
	"database/sql"
	"time"

	"github.com/pautaaberta/pauta/internal/model"
)

// ReconcileOutcome is the decision of a reconciliation pass. Zero-valued
// fields leave the corresponding proposition field untouched; NotFound means
// neither source yielded anything usable.
type ReconcileOutcome struct {
	NotFound bool

	SenadoID int64
	CamaraID int64

	CasaInicial      string
	Autor            string
	Ementa           string
	DataApresentacao *time.Time
}

// Reconcile merges the two chambers' candidates into a single outcome. The
// Senado is consulted first because it declares origin explicitly through
// the Iniciadora objective; when it asserts origin its fields win outright.
// Otherwise the Câmara candidate, if any, supplies origin and content. All
// decisions happen here; persistence is the caller's job.
func Reconcile(upper, lower *Candidate) ReconcileOutcome {
	var out ReconcileOutcome

	// ID capture is independent of origin determination.
	if upper != nil && upper.NativeID != 0 {
		out.SenadoID = upper.NativeID
	}

	switch {
	case upper != nil && upper.CasaInicial == model.HouseSenado:
		out.CasaInicial = model.HouseSenado
		out.Autor = upper.Autor
		out.Ementa = upper.Ementa
		out.DataApresentacao = upper.DataApresentacao

	case lower != nil && lower.NativeID != 0:
		out.CamaraID = lower.NativeID
		out.CasaInicial = model.HouseCamara
		out.Autor = lower.Autor
		out.Ementa = lower.Ementa
		out.DataApresentacao = lower.DataApresentacao
	}

	if out.SenadoID == 0 && out.CamaraID == 0 {
		out.NotFound = true
	}

	return out
}

// ApplyTo writes the outcome onto a proposition, overwriting only fields the
// winning source actually provided.
func (o ReconcileOutcome) ApplyTo(p *model.Proposition) {
	if o.SenadoID != 0 {
		p.SenadoID = sql.NullInt64{Int64: o.SenadoID, Valid: true}
	}
	if o.CamaraID != 0 {
		p.CamaraID = sql.NullInt64{Int64: o.CamaraID, Valid: true}
	}
	if o.CasaInicial != "" {
		p.CasaInicial = sql.NullString{String: o.CasaInicial, Valid: true}
	}
	if o.Autor != "" {
		p.Autor = sql.NullString{String: o.Autor, Valid: true}
	}
	if o.Ementa != "" {
		p.Ementa = sql.NullString{String: o.Ementa, Valid: true}
	}
	if o.DataApresentacao != nil {
		p.DataApresentacao = sql.NullTime{Time: *o.DataApresentacao, Valid: true}
	}
}
