package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MigrateCommand selects a goose operation.
type MigrateCommand string

const (
	MigrateUp     MigrateCommand = "up"
	MigrateDown   MigrateCommand = "down"
	MigrateStatus MigrateCommand = "status"
)

// ParseMigrateCommand validates a command name.
func ParseMigrateCommand(s string) (MigrateCommand, error) {
	switch c := MigrateCommand(s); c {
	case MigrateUp, MigrateDown, MigrateStatus:
		return c, nil
	default:
		return "", fmt.Errorf("unknown migrate command %q", s)
	}
}

// Migrate runs the embedded migrations against the pool.
func (p *Postgres) Migrate(ctx context.Context, cmd MigrateCommand) error {
	sqlDB := stdlib.OpenDBFromPool(p.Pool)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	var err error
	switch cmd {
	case MigrateUp:
		err = goose.UpContext(ctx, sqlDB, "migrations")
	case MigrateDown:
		err = goose.DownContext(ctx, sqlDB, "migrations")
	case MigrateStatus:
		err = goose.StatusContext(ctx, sqlDB, "migrations")
	default:
		err = fmt.Errorf("unknown migrate command %q", cmd)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", cmd, err)
	}

	p.log.Info("migrations applied", "command", string(cmd))
	return nil
}
