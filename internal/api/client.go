package api

import (
	"context"
	"fmt"

	"github.com/lesvieux/portal/internal/models"
)

// Scope is the visibility boundary of a post query: the caller's own posts,
// the admin-wide view across all accounts, or the public published feed.
type Scope string

const (
	ScopeMine      Scope = "mine"
	ScopeAll       Scope = "all"
	ScopePublished Scope = "published"
)

// TokenProvider supplies the bearer token attached to authenticated calls.
// An empty string means no credential is available.
type TokenProvider interface {
	Token() string
}

// Client is the API contract the portal is built against. The concrete
// implementation is HTTPClient; tests substitute fakes.
type Client interface {
	// Status is the unauthenticated first-setup probe.
	Status(ctx context.Context) (*models.StatusInfo, error)

	// Login exchanges credentials for a bearer token. The token is returned,
	// not stored; session management is the caller's concern.
	Login(ctx context.Context, username, password string) (string, error)

	// Me reports whether the current token is live. Any non-2xx answer is an
	// error; callers needing only a boolean treat any error as "not verified".
	Me(ctx context.Context) error

	// CreatePost allocates an empty draft server-side and returns its id.
	CreatePost(ctx context.Context) (int64, error)
	GetPost(ctx context.Context, scope Scope, id int64) (*models.Post, error)
	ListPostIDs(ctx context.Context, scope Scope) ([]int64, error)
	UpdateMyPost(ctx context.Context, id int64, title, content string, status models.PostStatus) error
	DeletePost(ctx context.Context, scope Scope, id int64) error

	ListAccounts(ctx context.Context) ([]models.AccountEntry, error)
	CreateAccount(ctx context.Context, username, password string) (int64, error)
	// CreateFirstAccount is the unauthenticated variant used by first-time
	// setup while the platform reports initialized == false.
	CreateFirstAccount(ctx context.Context, username, password string) (int64, error)
	DeleteAccount(ctx context.Context, id int64) error
	ChangeMyPassword(ctx context.Context, password string) error
	ChangePassword(ctx context.Context, id int64, password string) error
}

// postsPath maps a scope to its list endpoint. The admin and published scopes
// are read-only for listing; deletes go through deletePath.
func postsPath(scope Scope) (string, error) {
	switch scope {
	case ScopeMine:
		return "/api/v1/me/posts", nil
	case ScopeAll:
		return "/api/v1/posts", nil
	case ScopePublished:
		return "/api/v1/published_posts", nil
	default:
		return "", fmt.Errorf("unknown scope %q", scope)
	}
}

func deletePath(scope Scope, id int64) (string, error) {
	switch scope {
	case ScopeMine:
		return fmt.Sprintf("/api/v1/me/posts/%d", id), nil
	case ScopeAll:
		return fmt.Sprintf("/api/v1/posts/%d", id), nil
	default:
		return "", fmt.Errorf("scope %q does not allow deletes", scope)
	}
}
