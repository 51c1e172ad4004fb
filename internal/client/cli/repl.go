package cli

import (
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for REPL output. In tests, replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	AddInteractive(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Sync(ctx context.Context, all bool) error
	Export(ctx context.Context) error
	Import(ctx context.Context, path string) error
	RemoteList(ctx context.Context) error
	RemoteShow(ctx context.Context, key string) error
	RemoteDelete(ctx context.Context, key string) error
}

const replHelp = `Available commands:
  (l)ist                 list entries
  add                    write a new entry
  show <id>              show one entry
  delete <id>            delete an entry
  sync [all]             push entries to the remote mirror
  export                 upload a JSON snapshot
  import <file>          restore entries from a snapshot file
  remote list            list mirrored entries
  remote show <key>      show a mirrored entry
  remote delete <key>    delete a mirrored entry
  exit | quit            leave the program`

// lineReader is satisfied by *bufio.Reader. The REPL and the add prompts
// share one reader so that neither buffers input meant for the other.
type lineReader interface {
	ReadString(delim byte) (string, error)
}

// runREPL starts a simple read–eval–print loop for the journal CLI.
//
// It reads a line from in, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop ends at EOF or when ctx is done; "exit" and "quit" end it too.
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, prompt bool, in lineReader) {
	for {
		if ctx.Err() != nil {
			return
		}
		if prompt {
			printFn("journal> ")
		}
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(replHelp)

		case "l", "list":
			_ = a.List(ctx)

		case "add":
			_ = a.AddInteractive(ctx)

		case "show", "delete":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			if cmd == "show" {
				_ = a.Show(ctx, args[0])
			} else {
				_ = a.Delete(ctx, args[0])
			}

		case "sync":
			_ = a.Sync(ctx, len(args) > 0 && args[0] == "all")

		case "export":
			_ = a.Export(ctx)

		case "import":
			if len(args) != 1 {
				printlnFn("Usage: import <file>")
				continue
			}
			_ = a.Import(ctx, args[0])

		case "remote":
			runRemote(ctx, a, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func runRemote(ctx context.Context, a execIface, args []string) {
	if len(args) == 0 {
		printlnFn("Usage: remote list | remote show <key> | remote delete <key>")
		return
	}
	switch args[0] {
	case "list", "l":
		_ = a.RemoteList(ctx)
	case "show", "delete":
		if len(args) != 2 {
			printlnFn(fmt.Sprintf("Usage: remote %s <key>", args[0]))
			return
		}
		if args[0] == "show" {
			_ = a.RemoteShow(ctx, args[1])
		} else {
			_ = a.RemoteDelete(ctx, args[1])
		}
	default:
		printlnFn("Unknown remote command:", args[0])
	}
}
