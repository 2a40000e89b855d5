package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/lesvieux/portal/internal/api"
	"github.com/lesvieux/portal/internal/models"
	"github.com/lesvieux/portal/internal/shared"
)

func formatPostLine(p models.Post) string {
	title := p.Title
	if title == "" {
		title = "(untitled)"
	}
	return fmt.Sprintf("%4d  %-10s  %-10s  %s", p.ID, p.Status, p.CreatedAt.Format("2006-01-02"), title)
}

// Feed lists the public published feed. No auth required.
func (a *App) Feed(ctx context.Context) {
	listed, err := a.posts.List(ctx, api.ScopePublished)
	if err != nil {
		printlnFn("error:", err.Error())
		return
	}
	if len(listed) == 0 {
		printlnFn("No published posts yet.")
		return
	}
	for _, p := range listed {
		printlnFn(formatPostLine(p))
	}
}

// MyPosts lists the caller's own posts, drafts included.
func (a *App) MyPosts(ctx context.Context) {
	if !a.requireAuth(ctx) {
		return
	}
	listed, err := a.posts.List(ctx, api.ScopeMine)
	if err != nil {
		printlnFn("error:", err.Error())
		return
	}
	if len(listed) == 0 {
		printlnFn("No posts yet. Run 'new' to start a draft.")
		return
	}
	for _, p := range listed {
		printlnFn(formatPostLine(p))
	}
}

// AllPosts is the admin view across every account.
func (a *App) AllPosts(ctx context.Context) {
	if !a.requireAdmin(ctx) {
		return
	}
	listed, err := a.posts.List(ctx, api.ScopeAll)
	if err != nil {
		printlnFn("error:", err.Error())
		return
	}
	for _, p := range listed {
		printlnFn(fmt.Sprintf("%s  by %s", formatPostLine(p), p.Author))
	}
}

// NewPost allocates an empty draft server-side and drops into its editor,
// the way the browser navigates to the draft page keyed by the new id.
func (a *App) NewPost(ctx context.Context) {
	if !a.requireAuth(ctx) {
		return
	}
	id, err := a.posts.Create(ctx)
	if err != nil {
		printlnFn("error:", err.Error())
		return
	}
	printlnFn("Draft", id, "created.")
	a.editLoop(ctx, id)
}

// EditPost hydrates the editor for an existing post.
func (a *App) EditPost(ctx context.Context, arg string) {
	if !a.requireAuth(ctx) {
		return
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		printlnFn("Usage: edit <id>")
		return
	}
	a.editLoop(ctx, id)
}

// RemovePost deletes any account's post through the admin path.
func (a *App) RemovePost(ctx context.Context, arg string) {
	if !a.requireAdmin(ctx) {
		return
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		printlnFn("Usage: rm <id>")
		return
	}
	if err := a.posts.Discard(ctx, api.ScopeAll, id); err != nil {
		printlnFn("error:", err.Error())
		return
	}
	printlnFn("Post", id, "deleted.")
}

// editLoop is the draft editor: title/body edits stay local until 'save' or
// 'publish'; 'discard' deletes the post whatever its status.
func (a *App) editLoop(ctx context.Context, id int64) {
	post, err := a.posts.Load(ctx, api.ScopeMine, id)
	if err != nil {
		printlnFn("error:", err.Error())
		return
	}
	title, content := post.Title, post.Content

	printlnFn("Editing post", id, "— commands: title, body, show, preview, save, publish, discard, back")
	for {
		line, err := GetSimpleText(a.reader, fmt.Sprintf("edit %d", id), a.out)
		if err != nil {
			return
		}

		switch line {
		case "title":
			t, err := GetSimpleText(a.reader, "Title", a.out)
			if err != nil {
				return
			}
			title = t

		case "body":
			c, err := GetMultiline(a.reader, "Write your post. You can use markdown to format your text.", a.out)
			if err != nil {
				return
			}
			content = c

		case "show":
			printlnFn("#", title)
			printlnFn(content)

		case "preview":
			if title == "" || content == "" {
				printlnFn("Add a title and some content first.")
				continue
			}
			html, err := a.posts.Preview(content)
			if err != nil {
				printlnFn("error:", err.Error())
				continue
			}
			printlnFn(html)

		case "save":
			a.savePost(ctx, id, title, content, models.StatusDraft)

		case "publish":
			if a.savePost(ctx, id, title, content, models.StatusPublished) {
				printlnFn("Post", id, "published.")
				return
			}

		case "discard":
			if err := a.posts.Discard(ctx, api.ScopeMine, id); err != nil {
				printlnFn("error:", err.Error())
				continue
			}
			printlnFn("Draft discarded.")
			return

		case "back", "exit", "quit":
			return

		default:
			printlnFn("Unknown command:", line)
		}
	}
}

func (a *App) savePost(ctx context.Context, id int64, title, content string, status models.PostStatus) bool {
	err := a.posts.Save(ctx, id, title, content, status)
	if err == nil {
		if status == models.StatusDraft {
			printlnFn("Saved.")
		}
		return true
	}
	if errors.Is(err, shared.ErrValidation) {
		printlnFn(err.Error())
		return false
	}
	printlnFn("error:", err.Error())
	return false
}
