// Package posts implements the post draft lifecycle: creation, draft editing,
// publish, discard, preview, and the scoped list queries behind the portal's
// tables. All persistence goes through the remote API; the only local state
// is the list cache and the per-post in-flight guard.
package posts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/lesvieux/portal/internal/api"
	"github.com/lesvieux/portal/internal/logging"
	"github.com/lesvieux/portal/internal/models"
	"github.com/lesvieux/portal/internal/render"
	"github.com/lesvieux/portal/internal/shared"
)

const (
	// Reads retry a few times with fibonacci backoff; mutations never retry.
	listRetryAttempts = 2
	listRetryBase     = 100 * time.Millisecond
)

// Service is the post lifecycle controller.
//
// Mutations for the same post id are guarded: while one is outstanding a
// second one fails fast with shared.ErrBusy instead of double-submitting.
// Racing writes from different portals still resolve last-write-wins at the
// server; the client does no optimistic locking.
type Service struct {
	client api.Client
	cache  *ListCache
	log    logging.Logger

	mu       sync.Mutex
	inflight map[int64]struct{}
}

func NewService(client api.Client, log logging.Logger) *Service {
	return &Service{
		client:   client,
		cache:    NewListCache(),
		log:      log,
		inflight: make(map[int64]struct{}),
	}
}

// Create allocates an empty draft on the server and returns its id. The
// editor is keyed by that id; no client-side placeholder exists before this
// returns.
func (s *Service) Create(ctx context.Context) (int64, error) {
	id, err := s.client.CreatePost(ctx)
	if err != nil {
		return 0, err
	}
	s.cache.Invalidate(api.ScopeMine)
	s.log.Info(ctx, "created draft", "id", id)
	return id, nil
}

// Load hydrates the editor with the post's current state. Reads retry on
// transient failure but stop immediately on an auth failure.
func (s *Service) Load(ctx context.Context, scope api.Scope, id int64) (*models.Post, error) {
	var post *models.Post
	err := s.retryRead(ctx, func(ctx context.Context) error {
		var err error
		post, err = s.client.GetPost(ctx, scope, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Save performs a full-document replace of title, content and status. The
// same operation implements "Save draft" and "Publish": the caller selects
// the behavior through status. Empty title or content fails fast with a
// validation error before any network I/O.
func (s *Service) Save(ctx context.Context, id int64, title, content string, status models.PostStatus) error {
	if title == "" {
		return shared.NewValidationError("title not provided")
	}
	if content == "" {
		return shared.NewValidationError("content not provided")
	}

	if err := s.beginMutation(id); err != nil {
		return err
	}
	defer s.endMutation(id)

	if err := s.client.UpdateMyPost(ctx, id, title, content, status); err != nil {
		return err
	}

	s.cache.Invalidate(api.ScopeMine)
	if status == models.StatusPublished {
		s.cache.Invalidate(api.ScopePublished)
	}
	s.log.Info(ctx, "saved post", "id", id, "status", status)
	return nil
}

// Discard deletes the post unconditionally, draft or published. Discarding
// an already-deleted id surfaces the server's NotFound; the cache is left
// consistent either way.
func (s *Service) Discard(ctx context.Context, scope api.Scope, id int64) error {
	if err := s.beginMutation(id); err != nil {
		return err
	}
	defer s.endMutation(id)

	if err := s.client.DeletePost(ctx, scope, id); err != nil {
		return err
	}

	// A delete can remove a published post, so the public feed is always
	// potentially affected. Admin deletes additionally stale the all-posts
	// view.
	switch scope {
	case api.ScopeAll:
		s.cache.Invalidate(api.ScopeAll, api.ScopeMine, api.ScopePublished)
	default:
		s.cache.Invalidate(api.ScopeMine, api.ScopePublished)
	}
	s.log.Info(ctx, "discarded post", "id", id, "scope", scope)
	return nil
}

// List returns the hydrated posts for a scope, serving from cache when the
// scope has not been invalidated since the last fetch. The API offers no
// batch endpoint, so details are fetched one id at a time.
func (s *Service) List(ctx context.Context, scope api.Scope) ([]models.Post, error) {
	if cached, ok := s.cache.Get(scope); ok {
		return cached, nil
	}

	var ids []int64
	err := s.retryRead(ctx, func(ctx context.Context) error {
		var err error
		ids, err = s.client.ListPostIDs(ctx, scope)
		return err
	})
	if err != nil {
		return nil, err
	}

	hydrated := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		post, err := s.Load(ctx, scope, id)
		if err != nil {
			return nil, fmt.Errorf("fetching post %d: %w", id, err)
		}
		hydrated = append(hydrated, *post)
	}

	s.cache.Put(scope, hydrated)
	return hydrated, nil
}

// Preview renders markdown to sanitized HTML. Pure and local: no network,
// no mutation of the post.
func (s *Service) Preview(content string) (string, error) {
	return render.Markdown(content)
}

// retryRead runs a read operation with bounded fibonacci backoff. An auth
// failure aborts immediately: retrying a 401 is never correct.
func (s *Service) retryRead(ctx context.Context, op func(context.Context) error) error {
	backoff := retry.WithMaxRetries(listRetryAttempts, retry.NewFibonacci(listRetryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		s.log.Debug(ctx, "read failed, will retry", "err", err)
		return retry.RetryableError(err)
	})
}

func (s *Service) beginMutation(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[id]; busy {
		return fmt.Errorf("post %d: %w", id, shared.ErrBusy)
	}
	s.inflight[id] = struct{}{}
	return nil
}

func (s *Service) endMutation(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}
