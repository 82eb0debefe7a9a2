package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSenadoInforme(t *testing.T) {
	informe := SenadoInforme{
		ID:                    5001,
		Data:                  "2023-06-01",
		Descricao:             "Encaminhado à CCJ",
		IDSituacaoIniciada:    88,
		SiglaSituacaoIniciada: "AGDESP",
	}
	informe.Colegiado = &struct {
		Codigo int64  `json:"codigo"`
		Casa   string `json:"casa"`
		Sigla  string `json:"sigla"`
		Nome   string `json:"nome"`
	}{Codigo: 34, Casa: "SF", Sigla: "CCJ", Nome: "Comissão de Constituição e Justiça"}

	a := mapSenadoInforme(10, informe)
	require.NotNil(t, a)

	assert.Equal(t, int64(10), a.PropositionID)
	assert.Equal(t, int64(5001), a.InformeID)
	assert.Equal(t, "Encaminhado à CCJ", a.Descricao)
	require.True(t, a.Data.Valid)
	assert.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), a.Data.Time)
	require.True(t, a.ColegiadoCodigo.Valid)
	assert.Equal(t, int64(34), a.ColegiadoCodigo.Int64)
	assert.Equal(t, "CCJ", a.ColegiadoSigla.String)
	require.True(t, a.IDSituacaoIniciada.Valid)
	assert.Equal(t, int64(88), a.IDSituacaoIniciada.Int64)
	assert.Equal(t, "AGDESP", a.SiglaSituacaoIniciada.String)
	assert.False(t, a.EnteAdministrativoID.Valid)
}

func TestMapSenadoInformeSkipsSubDocuments(t *testing.T) {
	informe := SenadoInforme{
		ID:                   5002,
		Descricao:            "Documento avulso",
		DocumentosAssociados: json.RawMessage(`[{"id": 1}]`),
	}

	assert.Nil(t, mapSenadoInforme(10, informe))
}

func TestMapSenadoInformeSkipsMissingID(t *testing.T) {
	assert.Nil(t, mapSenadoInforme(10, SenadoInforme{Descricao: "sem id"}))
}

func TestMapCamaraTramitacao(t *testing.T) {
	tram := CamaraTramitacao{
		Sequencia:           7,
		DataHora:            "2023-06-02T16:45",
		SiglaOrgao:          "PLEN",
		URIOrgao:            "https://dadosabertos.camara.leg.br/api/v2/orgaos/180",
		Regime:              "Urgência",
		DescricaoTramitacao: "Votação em turno único",
		CodTipoTramitacao:   "240",
		DescricaoSituacao:   "Pronta para Pauta",
		CodSituacao:         930,
		Despacho:            "Às Comissões",
	}

	a := mapCamaraTramitacao(10, tram)
	require.NotNil(t, a)

	assert.Equal(t, int64(10), a.PropositionID)
	assert.Equal(t, 7, a.Sequencia)
	require.True(t, a.DataHora.Valid)
	assert.Equal(t, time.Date(2023, 6, 2, 16, 45, 0, 0, time.UTC), a.DataHora.Time)
	assert.Equal(t, "PLEN", a.SiglaOrgao)
	assert.Equal(t, "Votação em turno único", a.DescricaoTramitacao)
	require.True(t, a.CodSituacao.Valid)
	assert.Equal(t, int64(930), a.CodSituacao.Int64)
	assert.True(t, a.URIOrgao.Valid)
	assert.False(t, a.URIUltimoRelator.Valid)
	assert.False(t, a.URL.Valid)
}

func TestMapCamaraTramitacaoSkipsMissingSequencia(t *testing.T) {
	assert.Nil(t, mapCamaraTramitacao(10, CamaraTramitacao{DescricaoTramitacao: "sem sequência"}))
}

func TestParseCamaraDateTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *time.Time
	}{
		{"datetime", "2023-06-02T16:45", func() *time.Time {
			d := time.Date(2023, 6, 2, 16, 45, 0, 0, time.UTC)
			return &d
		}()},
		{"plain date", "2023-06-02", timePtr(2023, 6, 2)},
		{"empty", "", nil},
		{"garbage", "02/06/2023 16:45", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCamaraDateTime(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}
