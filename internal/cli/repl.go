package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// execIface is the minimal command surface the REPL needs. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Login(ctx context.Context)
	Logout(ctx context.Context)
	Initialize(ctx context.Context)
	Passwd(ctx context.Context)
	Status(ctx context.Context)
	Feed(ctx context.Context)
	MyPosts(ctx context.Context)
	AllPosts(ctx context.Context)
	NewPost(ctx context.Context)
	EditPost(ctx context.Context, arg string)
	RemovePost(ctx context.Context, arg string)
	Accounts(ctx context.Context)
	AddUser(ctx context.Context)
	DelUser(ctx context.Context, arg string)
	SetPass(ctx context.Context, arg string)
}

// runREPL reads a line, parses the first token as the command and dispatches
// to methods on a. Unknown commands are reported back. The loop exits on
// scanner EOF or when the user types "exit" or "quit".
//
// Command handlers surface their own errors; the loop itself stays focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("lesvieux %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			printHelp(a)

		case "status":
			a.Status(ctx)

		case "feed":
			a.Feed(ctx)

		case "login":
			a.Login(ctx)

		case "init":
			a.Initialize(ctx)

		case "posts":
			a.MyPosts(ctx)

		case "new":
			a.NewPost(ctx)

		case "edit":
			if arg == "" {
				printlnFn("Usage: edit <id>")
				continue
			}
			a.EditPost(ctx, arg)

		case "passwd":
			a.Passwd(ctx)

		case "allposts":
			a.AllPosts(ctx)

		case "rm":
			if arg == "" {
				printlnFn("Usage: rm <id>")
				continue
			}
			a.RemovePost(ctx, arg)

		case "accounts":
			a.Accounts(ctx)

		case "adduser":
			a.AddUser(ctx)

		case "deluser":
			if arg == "" {
				printlnFn("Usage: deluser <id>")
				continue
			}
			a.DelUser(ctx, arg)

		case "setpass":
			if arg == "" {
				printlnFn("Usage: setpass <id>")
				continue
			}
			a.SetPass(ctx, arg)

		case "logout":
			a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: feed, login, init, status, help, exit")
		return
	}
	if a.isAdmin() {
		printlnFn("Available commands: posts, new, edit <id>, allposts, rm <id>, accounts, adduser, deluser <id>, setpass <id>, passwd, feed, status, logout, exit")
		return
	}
	printlnFn("Available commands: posts, new, edit <id>, passwd, feed, status, logout, exit")
}
