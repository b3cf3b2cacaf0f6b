package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hifi-israel/sikacare/internal/client/navigation"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

var errUnknownCommand = errors.New("unknown command")

// execIface is the command surface the loop needs. The real App satisfies it;
// tests can provide a lightweight stub.
type execIface interface {
	screen() navigation.Screen
	help() string
	dispatch(ctx context.Context, cmd string, args []string) error
}

// runREPL reads one command per line and dispatches it to the current
// screen. "help", "exit" and "quit" work everywhere. Handler errors are
// turned into a message for the user and the loop carries on. The loop ends
// on EOF, on exit, or when ctx is cancelled.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("sika [%s] %s> ", a.screen(), statusFn()))

		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				return
			}
			continue
		}
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "help":
			printlnFn("Available commands:", a.help()+", exit")

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			err := a.dispatch(ctx, cmd, parts[1:])
			switch {
			case errors.Is(err, errUnknownCommand):
				printlnFn("Unknown command:", cmd)
			case err != nil:
				printlnFn(userMessage(err))
			}
		}

		if readErr != nil {
			return
		}
	}
}
