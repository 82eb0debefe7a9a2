package service

import (
	"context"
	"log"
	"os"

	"github.com/pautaaberta/pauta/internal/model"
	"github.com/pautaaberta/pauta/internal/store"
)

// SelectionService maintains the "featured" flag: at most one proposition
// per topic, chosen by earliest presentation date.
type SelectionService struct {
	topics    *store.TopicStore
	props     *store.PropositionStore
	logger    *log.Logger
	errLogger *log.Logger
}

// NewSelectionService creates a new SelectionService.
func NewSelectionService(topics *store.TopicStore, props *store.PropositionStore) *SelectionService {
	return &SelectionService{
		topics:    topics,
		props:     props,
		logger:    log.New(os.Stdout, "", log.LstdFlags),
		errLogger: log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

// SelectionStats tracks a full selection pass.
type SelectionStats struct {
	TopicsProcessed int
	Updated         int
	Errors          int
}

// SelectForTopic recomputes the featured proposition for one topic. Returns
// false when the topic has no propositions or the update failed.
func (s *SelectionService) SelectForTopic(ctx context.Context, topic *model.Topic) bool {
	props, err := s.props.ListByTopic(ctx, topic.ID)
	if err != nil {
		s.errLogger.Printf("Failed to load propositions for topic %q: %v", topic.Name, err)
		return false
	}

	pick := pickFeatured(props)
	if pick == nil {
		s.logger.Printf("Topic %q has no propositions to select", topic.Name)
		return false
	}

	if err := s.props.ClearSelected(ctx, topic.ID); err != nil {
		s.errLogger.Printf("Failed to clear selection for topic %q: %v", topic.Name, err)
		return false
	}
	if err := s.props.SetSelected(ctx, pick.ID); err != nil {
		s.errLogger.Printf("Failed to set selection for topic %q: %v", topic.Name, err)
		return false
	}

	s.logger.Printf("Topic %q: selected proposition %s", topic.Name, pick.Identifier())
	return true
}

// SelectAll recomputes selection for every topic that owns at least one
// proposition, isolating per-topic failures.
func (s *SelectionService) SelectAll(ctx context.Context) *SelectionStats {
	stats := &SelectionStats{}

	topics, err := s.topics.GetAllWithPropositions(ctx)
	if err != nil {
		s.errLogger.Printf("Failed to list topics for selection: %v", err)
		stats.Errors++
		return stats
	}

	stats.TopicsProcessed = len(topics)
	for i := range topics {
		if s.SelectForTopic(ctx, &topics[i]) {
			stats.Updated++
		} else {
			stats.Errors++
		}
	}

	s.logger.Printf("Selection pass: %d propositions selected across %d topics, %d errors",
		stats.Updated, stats.TopicsProcessed, stats.Errors)
	return stats
}

// pickFeatured chooses the proposition with the earliest presentation date,
// ties broken by lowest id. When no proposition has a date, the lowest id
// overall wins. The input is expected ordered by id, which makes "first
// encountered" the tie-break.
func pickFeatured(props []model.Proposition) *model.Proposition {
	if len(props) == 0 {
		return nil
	}

	var pick *model.Proposition
	for i := range props {
		p := &props[i]
		if !p.DataApresentacao.Valid {
			continue
		}
		if pick == nil || p.DataApresentacao.Time.Before(pick.DataApresentacao.Time) {
			pick = p
		}
	}

	if pick == nil {
		pick = &props[0]
	}

	return pick
}
