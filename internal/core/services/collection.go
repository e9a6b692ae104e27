// internal/core/services/collection.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/dashboard-be/internal/core/patch"
	"github.com/ammerola/dashboard-be/internal/core/ports"
)

// DefaultListCacheTTL is used when a cache is configured without a TTL
const DefaultListCacheTTL = 5 * time.Minute

// Option configures a CollectionService
type Option func(*options)

type options struct {
	cache    ports.CacheRepository
	cacheTTL time.Duration
	events   ports.EventPublisher
}

// WithCache serves List from cache and invalidates it after each patch
func WithCache(cache ports.CacheRepository, ttl time.Duration) Option {
	return func(o *options) {
		o.cache = cache
		o.cacheTTL = ttl
	}
}

// WithEvents publishes a collection patched event after each commit
func WithEvents(events ports.EventPublisher) Option {
	return func(o *options) {
		o.events = events
	}
}

// CollectionService reconciles JSON-Patch documents against one entity kind
type CollectionService[E ports.Entity, V any] struct {
	kind   string
	repos  ports.RepositoryFactory[E]
	mapper ports.Mapper[E, V]
	opts   options
	logger *slog.Logger
}

// NewCollectionService creates a collection service for kind
func NewCollectionService[E ports.Entity, V any](
	kind string,
	repos ports.RepositoryFactory[E],
	mapper ports.Mapper[E, V],
	logger *slog.Logger,
	opts ...Option,
) *CollectionService[E, V] {
	o := options{cacheTTL: DefaultListCacheTTL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cacheTTL <= 0 {
		o.cacheTTL = DefaultListCacheTTL
	}

	return &CollectionService[E, V]{
		kind:   kind,
		repos:  repos,
		mapper: mapper,
		opts:   o,
		logger: logger.With(slog.String("service", kind)),
	}
}

// Kind returns the collection name, e.g. "sales"
func (s *CollectionService[E, V]) Kind() string {
	return s.kind
}

// List returns the whole collection in stored order
func (s *CollectionService[E, V]) List(ctx context.Context) ([]E, error) {
	if s.opts.cache == nil {
		return s.loadAll(ctx)
	}

	var (
		items    []E
		fetchErr error
	)
	err := s.opts.cache.GetOrSet(ctx, s.listKey(), &items, func() (any, error) {
		all, err := s.loadAll(ctx)
		fetchErr = err
		return all, err
	}, s.opts.cacheTTL)
	if fetchErr != nil {
		return nil, fetchErr
	}
	if err != nil {
		s.logger.WarnContext(ctx, "list cache unavailable, reading repository",
			slog.String("error", err.Error()))
		return s.loadAll(ctx)
	}
	if items == nil {
		items = []E{}
	}

	return items, nil
}

func (s *CollectionService[E, V]) loadAll(ctx context.Context) ([]E, error) {
	all, err := s.repos.Open(ctx).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.kind, err)
	}
	if all == nil {
		all = []E{}
	}
	return all, nil
}

// GetByID returns a single record; the error wraps domain.ErrNotFound on a miss
func (s *CollectionService[E, V]) GetByID(ctx context.Context, id uuid.UUID) (E, error) {
	e, err := s.repos.Open(ctx).GetByID(ctx, id)
	if err != nil {
		var zero E
		return zero, fmt.Errorf("failed to get %s %s: %w", s.kind, id, err)
	}
	return e, nil
}

// PatchCollection applies doc to the complete collection and commits the
// resulting inserts, updates and removals with a single save.
//
// A nil or inapplicable document fails with ErrMalformedPatch before any
// mutation is staged. A failing commit fails with ErrSaveFailed; by then
// the mutations have been staged and the caller cannot tell which of
// them reached storage.
func (s *CollectionService[E, V]) PatchCollection(ctx context.Context, doc patch.Document) (*ports.ReconcileResult, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPatch, patch.ErrNullDocument)
	}

	repo := s.repos.Open(ctx)

	entities, err := repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.kind, err)
	}

	views := make([]V, len(entities))
	for i, e := range entities {
		views[i] = s.mapper.ToView(e)
	}

	patch.NormalizeAppend(doc, len(views))

	patched, err := patch.Apply(views, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPatch, err)
	}

	result, err := s.reconcile(ctx, repo, entities, views, patched)
	if err != nil {
		return nil, err
	}

	if err := repo.Save(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to save patched collection",
			slog.Int("inserted", len(result.Inserted)),
			slog.Int("updated", len(result.Updated)),
			slog.Int("removed", len(result.Removed)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s: %w", ErrSaveFailed, s.kind, err)
	}

	s.logger.InfoContext(ctx, "patched collection",
		slog.Int("operations", len(doc)),
		slog.Int("inserted", len(result.Inserted)),
		slog.Int("updated", len(result.Updated)),
		slog.Int("removed", len(result.Removed)))

	s.afterCommit(ctx, result)

	return result, nil
}

// reconcile stages the repository mutations that turn the stored
// collection into patched. Unchanged records are left alone; a record
// counts as changed when its view differs or it moved to another position.
func (s *CollectionService[E, V]) reconcile(
	ctx context.Context,
	repo ports.CollectionRepository[E],
	entities []E,
	views []V,
	patched []V,
) (*ports.ReconcileResult, error) {
	type stored struct {
		entity E
		view   V
	}
	before := make(map[uuid.UUID]stored, len(entities))
	for i, e := range entities {
		before[e.Identity()] = stored{entity: e, view: views[i]}
	}

	kept := make(map[uuid.UUID]struct{}, len(patched))
	for _, v := range patched {
		id := s.mapper.ViewID(v)
		if id == uuid.Nil {
			continue
		}
		if _, dup := kept[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrMalformedPatch, id)
		}
		kept[id] = struct{}{}
	}

	result := &ports.ReconcileResult{}

	for pos, v := range patched {
		prev, known := before[s.mapper.ViewID(v)]

		e := s.mapper.ToEntity(v, prev.entity)
		e.SetOrdinal(pos)

		exists, err := repo.Exists(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s existence: %w", s.kind, err)
		}

		switch {
		case !exists:
			e.PrepareForStorage()
			repo.Add(e)
			result.Inserted = append(result.Inserted, e.Identity())
		case !known || prev.entity.Ordinal() != pos || viewChanged(prev.view, v):
			e.PrepareForStorage()
			repo.Update(e)
			result.Updated = append(result.Updated, e.Identity())
		}
	}

	var removals []E
	for _, e := range entities {
		if _, ok := kept[e.Identity()]; !ok {
			removals = append(removals, e)
			result.Removed = append(result.Removed, e.Identity())
		}
	}
	if len(removals) > 0 {
		repo.Remove(removals)
	}

	return result, nil
}

func (s *CollectionService[E, V]) afterCommit(ctx context.Context, result *ports.ReconcileResult) {
	if s.opts.cache != nil {
		if err := s.opts.cache.Delete(ctx, s.listKey()); err != nil {
			s.logger.WarnContext(ctx, "failed to invalidate list cache",
				slog.String("error", err.Error()))
		}
	}

	if s.opts.events != nil && !result.Empty() {
		event := ports.CollectionPatchedEvent{
			Kind:      s.kind,
			Result:    *result,
			PatchedAt: time.Now().UTC(),
		}
		if err := s.opts.events.PublishCollectionPatched(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "failed to publish collection patched event",
				slog.String("error", err.Error()))
		}
	}
}

func (s *CollectionService[E, V]) listKey() string {
	return ListCacheKey(s.kind)
}

// ListCacheKey is the cache key holding the list of kind
func ListCacheKey(kind string) string {
	return kind + ":list"
}

// viewChanged compares views by their JSON form so that decimals and times
// with different internal representations but equal values compare equal
func viewChanged[V any](a, b V) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return true
	}
	return !bytes.Equal(ja, jb)
}
