// Package db provides database connection management and schema migrations.
//
// This package is responsible for:
//   - PostgreSQL connection pool initialization, retried until the database answers
//   - Connection health checks
//   - Embedded goose migrations for the documents table
//
// Example usage:
//
//	pg, err := db.New(ctx, cfg.Database, log)
//	if err != nil {
//	    return err
//	}
//	defer pg.Close()
//
//	if err := pg.Migrate(ctx, db.MigrateUp); err != nil {
//	    return err
//	}
package db
