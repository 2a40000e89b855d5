package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeExec records which commands the loop dispatched, args included.
type fakeExec struct {
	loggedIn bool
	admin    bool
	calls    []string
}

func (f *fakeExec) record(name string, args ...string) {
	if len(args) > 0 {
		name += " " + strings.Join(args, " ")
	}
	f.calls = append(f.calls, name)
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }

func (f *fakeExec) Login(ctx context.Context)      { f.record("login") }
func (f *fakeExec) Logout(ctx context.Context)     { f.record("logout") }
func (f *fakeExec) Initialize(ctx context.Context) { f.record("init") }
func (f *fakeExec) Passwd(ctx context.Context)     { f.record("passwd") }
func (f *fakeExec) Status(ctx context.Context)     { f.record("status") }
func (f *fakeExec) Feed(ctx context.Context)       { f.record("feed") }
func (f *fakeExec) MyPosts(ctx context.Context)    { f.record("posts") }
func (f *fakeExec) AllPosts(ctx context.Context)   { f.record("allposts") }
func (f *fakeExec) NewPost(ctx context.Context)    { f.record("new") }

func (f *fakeExec) EditPost(ctx context.Context, arg string)   { f.record("edit", arg) }
func (f *fakeExec) RemovePost(ctx context.Context, arg string) { f.record("rm", arg) }
func (f *fakeExec) Accounts(ctx context.Context)               { f.record("accounts") }
func (f *fakeExec) AddUser(ctx context.Context)                { f.record("adduser") }
func (f *fakeExec) DelUser(ctx context.Context, arg string)    { f.record("deluser", arg) }
func (f *fakeExec) SetPass(ctx context.Context, arg string)    { f.record("setpass", arg) }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })

	var lines []string
	printlnFn = func(a ...any) {
		lines = append(lines, strings.TrimRight(fmt.Sprintln(a...), "\n"))
	}
	return &lines
}

func runScript(t *testing.T, exec *fakeExec, script string) []string {
	t.Helper()
	lines := captureOutput(t)
	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), exec, func() string { return "" }, scanner)
	return *lines
}

func TestREPLDispatchesCommands(t *testing.T) {
	exec := &fakeExec{loggedIn: true}

	runScript(t, exec, "feed\nposts\nnew\nedit 7\npasswd\nlogout\nexit\n")

	assert.Equal(t, []string{"feed", "posts", "new", "edit 7", "passwd", "logout"}, exec.calls)
}

func TestREPLAdminCommands(t *testing.T) {
	exec := &fakeExec{loggedIn: true, admin: true}

	runScript(t, exec, "allposts\nrm 3\naccounts\nadduser\ndeluser 2\nsetpass 4\nexit\n")

	assert.Equal(t, []string{"allposts", "rm 3", "accounts", "adduser", "deluser 2", "setpass 4"}, exec.calls)
}

func TestREPLCommandsNeedingArgRefuseWithoutOne(t *testing.T) {
	exec := &fakeExec{loggedIn: true, admin: true}

	out := runScript(t, exec, "edit\nrm\ndeluser\nsetpass\nexit\n")

	assert.Empty(t, exec.calls)
	joined := strings.Join(out, "\n")
	assert.Contains(t, joined, "Usage: edit <id>")
	assert.Contains(t, joined, "Usage: rm <id>")
	assert.Contains(t, joined, "Usage: deluser <id>")
	assert.Contains(t, joined, "Usage: setpass <id>")
}

func TestREPLUnknownCommand(t *testing.T) {
	exec := &fakeExec{}

	out := runScript(t, exec, "frobnicate\nexit\n")

	assert.Contains(t, strings.Join(out, "\n"), "Unknown command: frobnicate")
}

func TestREPLSkipsBlankLines(t *testing.T) {
	exec := &fakeExec{}

	runScript(t, exec, "\n   \nstatus\nexit\n")

	assert.Equal(t, []string{"status"}, exec.calls)
}

func TestREPLStopsOnEOF(t *testing.T) {
	exec := &fakeExec{}

	runScript(t, exec, "status\n")

	assert.Equal(t, []string{"status"}, exec.calls)
}

func TestHelpVariesByRole(t *testing.T) {
	tests := []struct {
		name     string
		exec     *fakeExec
		contains string
		excludes string
	}{
		{"anonymous", &fakeExec{}, "login", "posts"},
		{"author", &fakeExec{loggedIn: true}, "posts", "accounts"},
		{"admin", &fakeExec{loggedIn: true, admin: true}, "accounts", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runScript(t, tt.exec, "help\nexit\n")
			joined := strings.Join(out, "\n")
			assert.Contains(t, joined, tt.contains)
			if tt.excludes != "" {
				assert.NotContains(t, joined, tt.excludes)
			}
		})
	}
}
