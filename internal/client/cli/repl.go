package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Posts(ctx context.Context, args []string) error
	ShowPost(ctx context.Context, args []string) error
	CreatePost(ctx context.Context) error
	EditPost(ctx context.Context, args []string) error
	DeletePost(ctx context.Context, args []string) error
	Favorite(ctx context.Context, args []string) error
	Unfavorite(ctx context.Context, args []string) error
	Favorites(ctx context.Context) error
	Users(ctx context.Context, args []string) error
	DeleteUser(ctx context.Context, args []string) error
	ChangeRole(ctx context.Context, args []string) error
	Books(ctx context.Context, args []string) error
	ShowBook(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop for the demoboard client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("demoboard %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Posts: posts [page], post <id>, create, edit <id>, delete <id>")
				printlnFn("Favorites: fav <id>, unfav <id>, favorites")
				printlnFn("Users: users [page], userdel <id>, role <id> <admin|user|moderator>")
				printlnFn("Books: books <query>, book <work-id>")
				printlnFn("Session: whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, register, books <query>, book <work-id>, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "posts":
			_ = a.Posts(ctx, args)

		case "post":
			_ = a.ShowPost(ctx, args)

		case "create":
			_ = a.CreatePost(ctx)

		case "edit":
			_ = a.EditPost(ctx, args)

		case "delete":
			_ = a.DeletePost(ctx, args)

		case "fav":
			_ = a.Favorite(ctx, args)

		case "unfav":
			_ = a.Unfavorite(ctx, args)

		case "favorites":
			_ = a.Favorites(ctx)

		case "users":
			_ = a.Users(ctx, args)

		case "userdel":
			_ = a.DeleteUser(ctx, args)

		case "role":
			_ = a.ChangeRole(ctx, args)

		case "books":
			_ = a.Books(ctx, args)

		case "book":
			_ = a.ShowBook(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
