package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pautaaberta/pauta/internal/model"
)

// PropositionStore handles database operations for propositions.
type PropositionStore struct {
	db *sql.DB
}

// NewPropositionStore creates a new PropositionStore.
func NewPropositionStore(db *sql.DB) *PropositionStore {
	return &PropositionStore{db: db}
}

const propositionColumns = `
	id, topic_id, tipo, numero, ano, senado_id, camara_id,
	autor, ementa, data_apresentacao, casa_inicial, casa_atual,
	ultima_sincronizacao, erro_sincronizacao, selected, created_at, updated_at
`

func scanProposition(row interface{ Scan(...any) error }) (*model.Proposition, error) {
	var p model.Proposition
	err := row.Scan(
		&p.ID,
		&p.TopicID,
		&p.Tipo,
		&p.Numero,
		&p.Ano,
		&p.SenadoID,
		&p.CamaraID,
		&p.Autor,
		&p.Ementa,
		&p.DataApresentacao,
		&p.CasaInicial,
		&p.CasaAtual,
		&p.UltimaSincronizacao,
		&p.ErroSincronizacao,
		&p.Selected,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID retrieves a proposition by its id.
func (s *PropositionStore) GetByID(ctx context.Context, id int64) (*model.Proposition, error) {
	query := `SELECT ` + propositionColumns + ` FROM propositions WHERE id = $1`

	p, err := scanProposition(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get proposition %d: %w", id, err)
	}

	return p, nil
}

// GetByIdentifier retrieves a proposition by its (tipo, numero, ano) triple.
func (s *PropositionStore) GetByIdentifier(ctx context.Context, tipo string, numero, ano int) (*model.Proposition, error) {
	query := `SELECT ` + propositionColumns + ` FROM propositions WHERE tipo = $1 AND numero = $2 AND ano = $3`

	p, err := scanProposition(s.db.QueryRowContext(ctx, query, tipo, numero, ano))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get proposition %s %d/%d: %w", tipo, numero, ano, err)
	}

	return p, nil
}

// Create registers a new proposition under a topic. The unique constraint on
// (tipo, numero, ano) rejects duplicates regardless of topic.
func (s *PropositionStore) Create(ctx context.Context, p *model.Proposition) error {
	query := `
		INSERT INTO propositions (topic_id, tipo, numero, ano)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, p.TopicID, p.Tipo, p.Numero, p.Ano).Scan(
		&p.ID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create proposition %s: %w", p.Identifier(), err)
	}

	return nil
}

// Save persists the reconciled API fields plus sync bookkeeping. Derived
// fields (casa_atual) are intentionally not written here.
func (s *PropositionStore) Save(ctx context.Context, p *model.Proposition) error {
	query := `
		UPDATE propositions SET
			senado_id = $2,
			camara_id = $3,
			autor = $4,
			ementa = $5,
			data_apresentacao = $6,
			casa_inicial = $7,
			ultima_sincronizacao = $8,
			erro_sincronizacao = $9,
			updated_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query,
		p.ID,
		p.SenadoID,
		p.CamaraID,
		p.Autor,
		p.Ementa,
		p.DataApresentacao,
		p.CasaInicial,
		p.UltimaSincronizacao,
		p.ErroSincronizacao,
	)
	if err != nil {
		return fmt.Errorf("failed to save proposition %s: %w", p.Identifier(), err)
	}

	return nil
}

// UpdateCasaAtual writes the derived current house.
func (s *PropositionStore) UpdateCasaAtual(ctx context.Context, id int64, casa string) error {
	query := `UPDATE propositions SET casa_atual = $2, updated_at = NOW() WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id, casa)
	if err != nil {
		return fmt.Errorf("failed to update casa_atual for proposition %d: %w", id, err)
	}

	return nil
}

// UpdateDataApresentacao backfills the presentation date.
func (s *PropositionStore) UpdateDataApresentacao(ctx context.Context, id int64, date time.Time) error {
	query := `UPDATE propositions SET data_apresentacao = $2, updated_at = NOW() WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id, date)
	if err != nil {
		return fmt.Errorf("failed to update data_apresentacao for proposition %d: %w", id, err)
	}

	return nil
}

// ListAll retrieves propositions ordered by creation time. A limit of 0
// means no limit.
func (s *PropositionStore) ListAll(ctx context.Context, limit int) ([]model.Proposition, error) {
	query := `SELECT ` + propositionColumns + ` FROM propositions ORDER BY created_at`
	return s.list(ctx, query, limit)
}

// ListPending retrieves propositions never successfully synchronized.
func (s *PropositionStore) ListPending(ctx context.Context, limit int) ([]model.Proposition, error) {
	query := `SELECT ` + propositionColumns + ` FROM propositions WHERE ultima_sincronizacao IS NULL ORDER BY created_at`
	return s.list(ctx, query, limit)
}

// ListWithSenadoID retrieves propositions eligible for activity sync.
func (s *PropositionStore) ListWithSenadoID(ctx context.Context, limit int) ([]model.Proposition, error) {
	query := `SELECT ` + propositionColumns + ` FROM propositions WHERE senado_id IS NOT NULL ORDER BY created_at`
	return s.list(ctx, query, limit)
}

// ListByTopic retrieves a topic's propositions ordered by id, the stable
// order the selection tie-break relies on.
func (s *PropositionStore) ListByTopic(ctx context.Context, topicID int64) ([]model.Proposition, error) {
	query := `SELECT ` + propositionColumns + ` FROM propositions WHERE topic_id = $1 ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list propositions for topic %d: %w", topicID, err)
	}
	defer rows.Close()

	return collectPropositions(rows)
}

func (s *PropositionStore) list(ctx context.Context, query string, limit int) ([]model.Proposition, error) {
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list propositions: %w", err)
	}
	defer rows.Close()

	return collectPropositions(rows)
}

func collectPropositions(rows *sql.Rows) ([]model.Proposition, error) {
	var props []model.Proposition
	for rows.Next() {
		p, err := scanProposition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan proposition: %w", err)
		}
		props = append(props, *p)
	}
	return props, rows.Err()
}

// ClearSelected resets the selection flag for every proposition in a topic.
func (s *PropositionStore) ClearSelected(ctx context.Context, topicID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE propositions SET selected = FALSE, updated_at = NOW() WHERE topic_id = $1 AND selected`,
		topicID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear selection for topic %d: %w", topicID, err)
	}
	return nil
}

// SetSelected flags one proposition as the topic's featured one.
func (s *PropositionStore) SetSelected(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE propositions SET selected = TRUE, updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to set selection for proposition %d: %w", id, err)
	}
	return nil
}

// Statistics computes the sync counters exposed to operators.
func (s *PropositionStore) Statistics(ctx context.Context) (*model.SyncStatistics, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(ultima_sincronizacao),
			COUNT(erro_sincronizacao),
			COUNT(senado_id),
			COUNT(camara_id)
		FROM propositions
	`

	var stats model.SyncStatistics
	err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Synced,
		&stats.WithError,
		&stats.WithSenadoID,
		&stats.WithCamaraID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute sync statistics: %w", err)
	}

	stats.Pending = stats.Total - stats.Synced
	return &stats, nil
}
