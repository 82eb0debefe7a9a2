package cmd

import (
	"database/sql"
	"os"

	"github.com/pautaaberta/pauta/internal/config"
	"github.com/pautaaberta/pauta/internal/service"
	"github.com/pautaaberta/pauta/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pauta",
	Short: "Monitor legislative propositions across the Senado and Câmara APIs",
	Long: `pauta tracks legislative propositions (PL, PEC, MPV, ...) across the
Senado Federal and Câmara dos Deputados open data APIs, reconciling both
sources into one consistent view per proposition: origin house, authorship,
summary, presentation date and current procedural location.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// services bundles everything a subcommand needs after wiring.
type services struct {
	cfg       *config.Config
	db        *sql.DB
	props     *store.PropositionStore
	topics    *store.TopicStore
	syncer    *service.Syncer
	derived   *service.DerivedFieldService
	selection *service.SelectionService
}

// setup loads config, connects to the database and wires the service graph.
// The caller owns closing s.db.
func setup() (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	props := store.NewPropositionStore(db)
	topics := store.NewTopicStore(db)
	senadoActs := store.NewSenadoActivityStore(db)
	camaraActs := store.NewCamaraActivityStore(db)

	senado := service.NewSenadoClient(cfg.SenadoBaseURL, cfg.SenadoRateLimit, cfg.HTTPTimeout)
	camara := service.NewCamaraClient(cfg.CamaraBaseURL, cfg.CamaraRateLimit, cfg.HTTPTimeout)

	activity := service.NewActivitySyncer(senado, camara, senadoActs, camaraActs)
	derived := service.NewDerivedFieldService(props, senadoActs, camaraActs)
	selection := service.NewSelectionService(topics, props)
	syncer := service.NewSyncer(senado, camara, props, topics, activity, derived, selection,
		cfg.SyncDelay, cfg.ActivityDelay)

	return &services{
		cfg:       cfg,
		db:        db,
		props:     props,
		topics:    topics,
		syncer:    syncer,
		derived:   derived,
		selection: selection,
	}, nil
}
