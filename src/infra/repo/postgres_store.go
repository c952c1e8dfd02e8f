package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"candlepin/src/core/domain"
	"candlepin/src/infra/db"
)

// PostgresStore keeps documents in the documents table.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPostgresStore constructs a store backed by Postgres.
func NewPostgresStore(pg *db.Postgres, log *slog.Logger) *PostgresStore {
	return &PostgresStore{
		pool: pg.Pool,
		log:  log,
	}
}

func (s *PostgresStore) Health(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func (s *PostgresStore) Insert(ctx context.Context, d *Document) error {
	const q = `
		INSERT INTO documents (kind, id, doc_key, scope, data, created, updated)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
	`
	_, err := s.pool.Exec(ctx, q, d.Kind, d.ID, d.Key, d.Scope, d.Data, d.Created, d.Updated)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewAlreadyExistsError(d.Kind, firstNonEmpty(d.Key, d.ID))
		}
		return fmt.Errorf("insert %s %s: %w", d.Kind, d.ID, err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, d *Document) error {
	const q = `
		UPDATE documents
		SET doc_key = NULLIF($3, ''), scope = $4, data = $5, updated = $6
		WHERE kind = $1 AND id = $2
	`
	tag, err := s.pool.Exec(ctx, q, d.Kind, d.ID, d.Key, d.Scope, d.Data, d.Updated)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewAlreadyExistsError(d.Kind, d.Key)
		}
		return fmt.Errorf("update %s %s: %w", d.Kind, d.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError(d.Kind, d.ID)
	}
	return nil
}

const selectDocument = `
	SELECT kind, id, COALESCE(doc_key, ''), scope, data, created, updated
	FROM documents
`

func scanDocument(row pgx.Row) (*Document, error) {
	var d Document
	if err := row.Scan(&d.Kind, &d.ID, &d.Key, &d.Scope, &d.Data, &d.Created, &d.Updated); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *PostgresStore) Get(ctx context.Context, kind, id string) (*Document, error) {
	d, err := scanDocument(s.pool.QueryRow(ctx, selectDocument+`WHERE kind = $1 AND id = $2`, kind, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError(kind, id)
		}
		return nil, fmt.Errorf("get %s %s: %w", kind, id, err)
	}
	return d, nil
}

func (s *PostgresStore) GetByKey(ctx context.Context, kind, key string) (*Document, error) {
	d, err := scanDocument(s.pool.QueryRow(ctx, selectDocument+`WHERE kind = $1 AND doc_key = $2`, kind, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError(kind, key)
		}
		return nil, fmt.Errorf("get %s by key %s: %w", kind, key, err)
	}
	return d, nil
}

func (s *PostgresStore) List(ctx context.Context, kind, scope string) ([]*Document, error) {
	const where = `WHERE kind = $1 AND ($2 = '' OR scope = $2) ORDER BY created, id`
	rows, err := s.pool.Query(ctx, selectDocument+where, kind, scope)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	var out []*Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, kind, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE kind = $1 AND id = $2`, kind, id)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", kind, id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError(kind, id)
	}
	s.log.Debug("document deleted", "kind", kind, "id", id)
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
