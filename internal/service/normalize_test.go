package service

import (
	"testing"
	"time"

	"github.com/pautaaberta/pauta/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSenado(t *testing.T) {
	processos := []SenadoProcesso{
		{
			ID:               999,
			Identificacao:    "PEC 99/2019",
			Ementa:           "Outra proposta",
			DataApresentacao: "2019-03-01",
		},
		{
			ID:               12345,
			Identificacao:    "Projeto de Lei n° 1234, de 2023 (PL 1234/2023)",
			Ementa:           "Dispõe sobre a proteção de dados",
			DataApresentacao: "2023-05-10",
			Objetivo:         "Iniciadora",
			Autoria:          "Senadora Fulana de Tal",
		},
	}

	cand := NormalizeSenado(processos, "PL", 1234, 2023)
	require.NotNil(t, cand)

	assert.Equal(t, int64(12345), cand.NativeID)
	assert.Equal(t, "Dispõe sobre a proteção de dados", cand.Ementa)
	assert.Equal(t, model.HouseSenado, cand.CasaInicial)
	assert.Equal(t, "Senadora Fulana de Tal", cand.Autor)
	require.NotNil(t, cand.DataApresentacao)
	assert.Equal(t, time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC), *cand.DataApresentacao)
}

func TestNormalizeSenadoRevisora(t *testing.T) {
	processos := []SenadoProcesso{
		{
			ID:            777,
			Identificacao: "PL 55/2022",
			Ementa:        "Altera o Código Penal",
			Objetivo:      "Revisora",
			Autoria:       "Deputado Beltrano",
		},
	}

	cand := NormalizeSenado(processos, "PL", 55, 2022)
	require.NotNil(t, cand)

	// A non-Iniciadora process contributes its id and ementa but must not
	// assert origin or authorship.
	assert.Equal(t, int64(777), cand.NativeID)
	assert.Equal(t, "Altera o Código Penal", cand.Ementa)
	assert.Empty(t, cand.CasaInicial)
	assert.Empty(t, cand.Autor)
}

func TestNormalizeSenadoNoMatch(t *testing.T) {
	processos := []SenadoProcesso{
		{ID: 1, Identificacao: "PEC 10/2020"},
		{ID: 2, Identificacao: "PL 1234/2022"},
	}

	assert.Nil(t, NormalizeSenado(processos, "PL", 1234, 2023))
	assert.Nil(t, NormalizeSenado(nil, "PL", 1234, 2023))
}

func TestNormalizeCamara(t *testing.T) {
	search := &CamaraSearchResult{}
	search.Dados = append(search.Dados, struct {
		ID int64 `json:"id"`
	}{ID: 445566})

	details := &CamaraDetails{}
	details.Dados.ID = 445566
	details.Dados.Ementa = "Institui o programa de incentivo"
	details.Dados.DataApresentacao = "2021-08-15T14:30"

	authors := &CamaraAuthors{}
	authors.Dados = append(authors.Dados, struct {
		Nome string `json:"nome"`
	}{Nome: "Deputada Ciclana"})

	cand := NormalizeCamara(search, details, authors)
	require.NotNil(t, cand)

	assert.Equal(t, int64(445566), cand.NativeID)
	assert.Equal(t, model.HouseCamara, cand.CasaInicial)
	assert.Equal(t, "Institui o programa de incentivo", cand.Ementa)
	assert.Equal(t, "Deputada Ciclana", cand.Autor)
	require.NotNil(t, cand.DataApresentacao)
	assert.Equal(t, time.Date(2021, 8, 15, 0, 0, 0, 0, time.UTC), *cand.DataApresentacao)
}

func TestNormalizeCamaraPartialPayloads(t *testing.T) {
	search := &CamaraSearchResult{}
	search.Dados = append(search.Dados, struct {
		ID int64 `json:"id"`
	}{ID: 42})

	cand := NormalizeCamara(search, nil, nil)
	require.NotNil(t, cand)

	assert.Equal(t, int64(42), cand.NativeID)
	assert.Equal(t, model.HouseCamara, cand.CasaInicial)
	assert.Empty(t, cand.Ementa)
	assert.Empty(t, cand.Autor)
	assert.Nil(t, cand.DataApresentacao)
}

func TestNormalizeCamaraNoResult(t *testing.T) {
	assert.Nil(t, NormalizeCamara(nil, nil, nil))
	assert.Nil(t, NormalizeCamara(&CamaraSearchResult{}, nil, nil))
}

func TestParseAPIDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *time.Time
	}{
		{"plain date", "2023-05-10", timePtr(2023, 5, 10)},
		{"datetime", "2023-05-10T14:30:00", timePtr(2023, 5, 10)},
		{"empty", "", nil},
		{"garbage", "10/05/2023", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseAPIDate(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func timePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
