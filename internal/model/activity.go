package model

import (
	"database/sql"
	"time"
)

// SenadoActivity is one "informe legislativo" from the Senado process feed.
// (proposition_id, informe_id) is unique; re-ingesting the same informe
// updates the row in place.
type SenadoActivity struct {
	ID            int64
	PropositionID int64
	InformeID     int64

	Data      sql.NullTime
	Descricao string

	ColegiadoCodigo sql.NullInt64
	ColegiadoCasa   sql.NullString
	ColegiadoSigla  sql.NullString
	ColegiadoNome   sql.NullString

	EnteAdministrativoID    sql.NullInt64
	EnteAdministrativoCasa  sql.NullString
	EnteAdministrativoSigla sql.NullString
	EnteAdministrativoNome  sql.NullString

	IDSituacaoIniciada    sql.NullInt64
	SiglaSituacaoIniciada sql.NullString

	CreatedAt time.Time
}

// CamaraActivity is one "tramitação" from the Câmara feed.
// (proposition_id, sequencia) is unique.
type CamaraActivity struct {
	ID            int64
	PropositionID int64
	Sequencia     int

	DataHora            sql.NullTime
	SiglaOrgao          string
	URIOrgao            sql.NullString
	URIUltimoRelator    sql.NullString
	Regime              sql.NullString
	DescricaoTramitacao string
	CodTipoTramitacao   string
	DescricaoSituacao   sql.NullString
	CodSituacao         sql.NullInt64
	Despacho            string
	URL                 sql.NullString
	Ambito              sql.NullString
	Apreciacao          sql.NullString

	CreatedAt time.Time
}
