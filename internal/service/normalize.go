package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/pautaaberta/pauta/internal/model"
)

// Candidate is one source's normalized view of a proposition, the input to
// reconciliation. Zero values mean "this source did not say": a NativeID of
// 0 is no match, an empty CasaInicial is no origin assertion, a nil date is
// absent or unparseable.
type Candidate struct {
	NativeID         int64
	Ementa           string
	Autor            string
	DataApresentacao *time.Time
	CasaInicial      string
}

// NormalizeSenado extracts a candidate from the Senado process list. The
// identificacao field is matched by substring against the tipo, numero and
// ano because the upstream formats it inconsistently; an exact structured
// match would miss valid records. Returns nil when no record matches.
func NormalizeSenado(processos []SenadoProcesso, tipo string, numero, ano int) *Candidate {
	numeroStr := strconv.Itoa(numero)
	anoStr := strconv.Itoa(ano)

	for _, proc := range processos {
		ident := proc.Identificacao
		if !strings.Contains(ident, tipo) ||
			!strings.Contains(ident, numeroStr) ||
			!strings.Contains(ident, anoStr) {
			continue
		}

		cand := &Candidate{
			NativeID:         proc.ID,
			Ementa:           proc.Ementa,
			DataApresentacao: parseAPIDate(proc.DataApresentacao),
		}

		// Only a process with the "Iniciadora" objective asserts that the
		// Senado originated the proposition; anything else leaves origin
		// and authorship to the other source.
		if proc.Objetivo == "Iniciadora" {
			cand.CasaInicial = model.HouseSenado
			cand.Autor = proc.Autoria
		}

		return cand
	}

	return nil
}

// NormalizeCamara builds a candidate from the three Câmara payloads. The
// search result is required for the native id; details and authors fill in
// what they can. A proposition reachable through the Câmara with no Senado
// origin assertion is treated as Câmara-originated by convention.
func NormalizeCamara(search *CamaraSearchResult, details *CamaraDetails, authors *CamaraAuthors) *Candidate {
	if search == nil || len(search.Dados) == 0 {
		return nil
	}

	cand := &Candidate{
		NativeID:    search.Dados[0].ID,
		CasaInicial: model.HouseCamara,
	}

	if details != nil {
		cand.Ementa = details.Dados.Ementa
		cand.DataApresentacao = parseAPIDate(details.Dados.DataApresentacao)
	}

	if authors != nil && len(authors.Dados) > 0 {
		cand.Autor = authors.Dados[0].Nome
	}

	return cand
}

// parseAPIDate turns an upstream date string into a date. Both APIs emit
// either plain dates or ISO datetimes; the time-of-day suffix is dropped.
// Returns nil for anything unparseable.
func parseAPIDate(s string) *time.Time {
	if s == "" {
		return nil
	}

	if idx := strings.Index(s, "T"); idx >= 0 {
		s = s[:idx]
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}

	return &t
}
