package service

import (
	"testing"

	"github.com/pautaaberta/pauta/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileSenadoWins(t *testing.T) {
	date := timePtr(2023, 5, 10)
	upper := &Candidate{
		NativeID:         100,
		Ementa:           "Ementa do Senado",
		Autor:            "Senadora Fulana",
		DataApresentacao: date,
		CasaInicial:      model.HouseSenado,
	}
	lower := &Candidate{
		NativeID:    200,
		Ementa:      "Ementa da Câmara",
		Autor:       "Deputado Beltrano",
		CasaInicial: model.HouseCamara,
	}

	out := Reconcile(upper, lower)

	assert.False(t, out.NotFound)
	assert.Equal(t, int64(100), out.SenadoID)
	// The Câmara candidate loses entirely when the Senado asserts origin.
	assert.Zero(t, out.CamaraID)
	assert.Equal(t, model.HouseSenado, out.CasaInicial)
	assert.Equal(t, "Senadora Fulana", out.Autor)
	assert.Equal(t, "Ementa do Senado", out.Ementa)
	require.NotNil(t, out.DataApresentacao)
	assert.Equal(t, *date, *out.DataApresentacao)
}

func TestReconcileCamaraFallback(t *testing.T) {
	// Senado matched but did not assert origin: its id is kept while the
	// Câmara supplies origin and content.
	upper := &Candidate{NativeID: 100, Ementa: "Ementa do Senado"}
	lower := &Candidate{
		NativeID:         200,
		Ementa:           "Ementa da Câmara",
		Autor:            "Deputada Ciclana",
		DataApresentacao: timePtr(2021, 8, 15),
		CasaInicial:      model.HouseCamara,
	}

	out := Reconcile(upper, lower)

	assert.False(t, out.NotFound)
	assert.Equal(t, int64(100), out.SenadoID)
	assert.Equal(t, int64(200), out.CamaraID)
	assert.Equal(t, model.HouseCamara, out.CasaInicial)
	assert.Equal(t, "Deputada Ciclana", out.Autor)
	assert.Equal(t, "Ementa da Câmara", out.Ementa)
}

func TestReconcileCamaraOnly(t *testing.T) {
	lower := &Candidate{NativeID: 200, CasaInicial: model.HouseCamara}

	out := Reconcile(nil, lower)

	assert.False(t, out.NotFound)
	assert.Zero(t, out.SenadoID)
	assert.Equal(t, int64(200), out.CamaraID)
	assert.Equal(t, model.HouseCamara, out.CasaInicial)
}

func TestReconcileNotFound(t *testing.T) {
	assert.True(t, Reconcile(nil, nil).NotFound)

	// Candidates with no native id count as no match.
	out := Reconcile(&Candidate{}, &Candidate{})
	assert.True(t, out.NotFound)
	assert.Zero(t, out.SenadoID)
	assert.Zero(t, out.CamaraID)
}

func TestApplyToOverwritesOnlyProvidedFields(t *testing.T) {
	p := &model.Proposition{Tipo: "PL", Numero: 1234, Ano: 2023}
	p.Autor.String = "Autor antigo"
	p.Autor.Valid = true

	out := ReconcileOutcome{
		SenadoID: 100,
		Ementa:   "Nova ementa",
	}
	out.ApplyTo(p)

	require.True(t, p.SenadoID.Valid)
	assert.Equal(t, int64(100), p.SenadoID.Int64)
	require.True(t, p.Ementa.Valid)
	assert.Equal(t, "Nova ementa", p.Ementa.String)

	// Fields the outcome did not provide stay as they were.
	assert.False(t, p.CamaraID.Valid)
	assert.False(t, p.CasaInicial.Valid)
	assert.False(t, p.DataApresentacao.Valid)
	assert.Equal(t, "Autor antigo", p.Autor.String)
}
