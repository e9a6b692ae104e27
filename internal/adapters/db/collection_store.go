// internal/adapters/db/collection_store.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/dashboard-be/internal/core/domain"
	"github.com/ammerola/dashboard-be/internal/core/ports"
)

// ErrStaleRecord is returned by Save when a staged update or removal no
// longer matches a stored row
var ErrStaleRecord = errors.New("record changed or removed concurrently")

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// tableMapping describes how one entity kind is stored. The first column
// must be the id.
type tableMapping[E ports.Entity] struct {
	name    string
	columns []string
	values  func(E) []any
	scan    func(pgx.Row) (E, error)
}

// CollectionStore opens repository sessions over one table
type CollectionStore[E ports.Entity] struct {
	db     ports.Database
	table  tableMapping[E]
	logger *slog.Logger
}

// Statically assert that *CollectionStore implements the RepositoryFactory interface.
var _ ports.RepositoryFactory[*domain.Sale] = (*CollectionStore[*domain.Sale])(nil)

func newCollectionStore[E ports.Entity](db ports.Database, table tableMapping[E], logger *slog.Logger) *CollectionStore[E] {
	return &CollectionStore[E]{
		db:     db,
		table:  table,
		logger: logger.With(slog.String("repository", table.name)),
	}
}

// Open starts a new session with nothing staged
func (s *CollectionStore[E]) Open(ctx context.Context) ports.CollectionRepository[E] {
	return &session[E]{store: s}
}

// session stages mutations in memory until Save
type session[E ports.Entity] struct {
	store   *CollectionStore[E]
	inserts []E
	updates []E
	removes []uuid.UUID
}

func (r *session[E]) GetAll(ctx context.Context) ([]E, error) {
	t := r.store.table
	query, args, err := psql.Select(t.columns...).
		From(t.name).
		OrderBy("position ASC", "created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.store.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", t.name, err)
	}
	defer rows.Close()

	out := []E{}
	for rows.Next() {
		e, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", t.name, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", t.name, err)
	}

	return out, nil
}

func (r *session[E]) GetByID(ctx context.Context, id uuid.UUID) (E, error) {
	var zero E
	t := r.store.table
	query, args, err := psql.Select(t.columns...).
		From(t.name).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("failed to build query: %w", err)
	}

	e, err := t.scan(r.store.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, domain.ErrNotFound
		}
		return zero, fmt.Errorf("failed to get %s: %w", t.name, err)
	}

	return e, nil
}

func (r *session[E]) Exists(ctx context.Context, e E) (bool, error) {
	id := e.Identity()
	if id == uuid.Nil {
		return false, nil
	}

	query, args, err := psql.Select("1").
		From(r.store.table.name).
		Where(squirrel.Eq{"id": id.String()}).
		Prefix("SELECT EXISTS(").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var exists bool
	if err := r.store.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", r.store.table.name, err)
	}
	return exists, nil
}

func (r *session[E]) Add(e E) {
	r.inserts = append(r.inserts, e)
}

func (r *session[E]) Update(e E) {
	r.updates = append(r.updates, e)
}

func (r *session[E]) Remove(es []E) {
	for _, e := range es {
		r.removes = append(r.removes, e.Identity())
	}
}

// Save writes every staged mutation in one transaction. Updates and
// removals that match no row abort the transaction with ErrStaleRecord.
func (r *session[E]) Save(ctx context.Context) error {
	if len(r.inserts) == 0 && len(r.updates) == 0 && len(r.removes) == 0 {
		return nil
	}

	batch, err := r.buildBatch()
	if err != nil {
		return err
	}

	err = r.store.db.Transaction(ctx, func(tx pgx.Tx) error {
		br := tx.SendBatch(ctx, batch.batch)
		for _, q := range batch.queued {
			tag, err := br.Exec()
			if err != nil {
				br.Close()
				return fmt.Errorf("failed to %s %s: %w", q.op, r.store.table.name, err)
			}
			if q.wantRows > 0 && tag.RowsAffected() != q.wantRows {
				br.Close()
				return fmt.Errorf("%w: %s %s affected %d of %d rows",
					ErrStaleRecord, q.op, r.store.table.name, tag.RowsAffected(), q.wantRows)
			}
		}
		return br.Close()
	})
	if err != nil {
		return err
	}

	r.store.logger.DebugContext(ctx, "collection saved",
		slog.Int("inserted", len(r.inserts)),
		slog.Int("updated", len(r.updates)),
		slog.Int("removed", len(r.removes)))

	r.inserts, r.updates, r.removes = nil, nil, nil
	return nil
}

type queuedStatement struct {
	op       string
	wantRows int64
}

type stagedBatch struct {
	batch  *pgx.Batch
	queued []queuedStatement
}

func (b *stagedBatch) queue(op string, wantRows int64, query string, args []any) {
	b.batch.Queue(query, args...)
	b.queued = append(b.queued, queuedStatement{op: op, wantRows: wantRows})
}

// buildBatch orders removals first so that a re-added record never
// collides with the row it replaces
func (r *session[E]) buildBatch() (*stagedBatch, error) {
	t := r.store.table
	b := &stagedBatch{batch: &pgx.Batch{}}

	if len(r.removes) > 0 {
		ids := make([]string, len(r.removes))
		for i, id := range r.removes {
			ids[i] = id.String()
		}
		query, args, err := psql.Delete(t.name).Where(squirrel.Eq{"id": ids}).ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build delete: %w", err)
		}
		b.queue("delete", int64(len(ids)), query, args)
	}

	for _, e := range r.updates {
		values := t.values(e)
		set := make(map[string]any, len(t.columns)-1)
		for i, col := range t.columns[1:] {
			if col == "created_at" {
				continue
			}
			set[col] = values[i+1]
		}
		query, args, err := psql.Update(t.name).
			SetMap(set).
			Where(squirrel.Eq{"id": e.Identity().String()}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build update: %w", err)
		}
		b.queue("update", 1, query, args)
	}

	for _, e := range r.inserts {
		query, args, err := psql.Insert(t.name).
			Columns(t.columns...).
			Values(t.values(e)...).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build insert: %w", err)
		}
		b.queue("insert", 0, query, args)
	}

	return b, nil
}
