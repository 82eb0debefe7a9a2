package model

import (
	"database/sql"
	"fmt"
	"time"
)

// House codes used for casa_inicial and casa_atual.
const (
	HouseSenado    = "SF" // Senado Federal
	HouseCamara    = "CD" // Câmara dos Deputados
	HouseExecutivo = "EX" // Executive branch; set only by manual curation
)

// ErrNotFound is the sentinel stored in erro_sincronizacao when neither
// chamber returned a matching record. It is deliberately not retried until
// the next batch run.
const ErrNotFound = "NOT FOUND"

// Proposition represents a monitored legislative proposition. The
// (tipo, numero, ano) triple is globally unique.
type Proposition struct {
	ID      int64
	TopicID int64
	Tipo    string
	Numero  int
	Ano     int

	// IDs assigned by each chamber's API. Either or both may be absent.
	SenadoID sql.NullInt64
	CamaraID sql.NullInt64

	Autor            sql.NullString
	Ementa           sql.NullString
	DataApresentacao sql.NullTime
	CasaInicial      sql.NullString

	// CasaAtual is derived from the activity history and written only by
	// the derived-fields recompute.
	CasaAtual sql.NullString

	UltimaSincronizacao sql.NullTime
	ErroSincronizacao   sql.NullString

	Selected bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identifier returns the canonical "TIPO NUMERO/ANO" form used in logs.
func (p *Proposition) Identifier() string {
	return fmt.Sprintf("%s %d/%d", p.Tipo, p.Numero, p.Ano)
}

// HasAPIData reports whether at least one chamber has identified this
// proposition.
func (p *Proposition) HasAPIData() bool {
	return p.SenadoID.Valid || p.CamaraID.Valid
}

// SyncStatistics summarizes the sync state of the whole proposition table.
type SyncStatistics struct {
	Total        int `json:"total"`
	Synced       int `json:"synced"`
	Pending      int `json:"pending"`
	WithError    int `json:"with_error"`
	WithSenadoID int `json:"with_senado_id"`
	WithCamaraID int `json:"with_camara_id"`
}
