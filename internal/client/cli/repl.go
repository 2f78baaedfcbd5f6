package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL drives. App satisfies it; tests
// provide a stub.
type execIface interface {
	isLoggedIn() bool
	SignIn(ctx context.Context) error
	SignUp(ctx context.Context) error
	SignOut(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Me(ctx context.Context) error
	Status(ctx context.Context) error
}

const (
	helpAnonymous     = "Available commands: signin, signup, status, exit"
	helpAuthenticated = "Available commands: whoami, me, status, signout, exit"
)

// runREPL reads commands line by line from reader until EOF, "exit" or
// "quit". The prompt shows statusFn(). Handler errors are not printed here;
// the session notifier has already reported them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "talentauth %s> ", statusFn())

		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch cmd := strings.ToLower(parts[0]); cmd {
		case "help", "?":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpAuthenticated)
			} else {
				fmt.Fprintln(w, helpAnonymous)
			}

		case "signin", "login":
			_ = a.SignIn(ctx)

		case "signup", "register":
			_ = a.SignUp(ctx)

		case "signout", "logout":
			_ = a.SignOut(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "me":
			_ = a.Me(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
