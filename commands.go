package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
	"github.com/spf13/cobra"

	"candlepin/src/app/server"
	"candlepin/src/core/usecase"
	"candlepin/src/infra/config"
	"candlepin/src/infra/crypto"
	"candlepin/src/infra/db"
	"candlepin/src/infra/events"
	"candlepin/src/infra/logger"
	"candlepin/src/infra/repo"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "candlepin",
		Short:         "Subscription and entitlement server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(), newMigrateCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(db.MigrateUp), string(db.MigrateDown), string(db.MigrateStatus)},
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := db.ParseMigrateCommand(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Log)

			pg, err := db.New(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer pg.Close()
			return pg.Migrate(cmd.Context(), op)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
		"storage", cfg.Database.Storage,
	)

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()
	repository := repo.New(store, logger.WithComponent(log, "repo"))

	mt := server.Translators()

	var producer sarama.SyncProducer
	if cfg.Kafka.Enabled() {
		if producer, err = events.NewSyncProducer(ctx, cfg.Kafka, log); err != nil {
			return err
		}
	}
	publisher := events.NewPublisher(repository, producer, cfg.Kafka.Topic, mt, logger.WithComponent(log, "events"))
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("event publisher close failed", "error", err)
		}
	}()

	hasher := crypto.BcryptHasher{}
	users := usecase.NewUserService(repository, hasher, publisher, log)
	if err := usecase.NewBootstrap(repository, users, log).Run(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	srv, err := server.New(cfg, log, server.Deps{
		Repo:       repository,
		Events:     publisher,
		Hasher:     hasher,
		Translator: mt,
	})
	if err != nil {
		return err
	}

	// Run blocks until shutdown signal is received
	return srv.Run()
}

// openStore selects the document store named by the configuration. The
// postgres store is migrated to the latest version first.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (repo.Store, func(), error) {
	if cfg.Database.UsesMemory() {
		log.Warn("using in-memory storage, data is lost on restart")
		return repo.NewMemoryStore(), func() {}, nil
	}

	pg, err := db.New(ctx, cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.Migrate(ctx, db.MigrateUp); err != nil {
		pg.Close()
		return nil, nil, err
	}
	return repo.NewPostgresStore(pg, logger.WithComponent(log, "postgres")), pg.Close, nil
}
