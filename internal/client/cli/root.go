package cli

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/dailyjournal/internal/buildinfo"
	"github.com/dmitrijs2005/dailyjournal/internal/logging"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree over a. Running the root command
// without a subcommand starts the REPL.
func NewRootCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "journal",
		Short:         "A daily journal kept locally and mirrored remotely.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(logging.ContextWith(cmd.Context(), "command", cmd.CommandPath()))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL(cmd)
		},
	}
	cmd.SetOut(a.out)
	cmd.SetErr(a.out)

	addList(cmd, a)
	addAdd(cmd, a)
	addShow(cmd, a)
	addDelete(cmd, a)
	addSync(cmd, a)
	addExport(cmd, a)
	addImport(cmd, a)
	addRemote(cmd, a)
	addREPL(cmd, a)
	addVersion(cmd, a)
	return cmd
}

func (a *App) runREPL(cmd *cobra.Command) error {
	if a.interactive {
		printlnFn("Daily journal (type 'help' for commands)")
	}
	runREPL(cmd.Context(), a, a.interactive, a.reader)
	return nil
}

func addList(topLevel *cobra.Command, a *App) {
	topLevel.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"l", "ls"},
		Short:   "List journal entries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.List(cmd.Context())
		},
	})
}

func addAdd(topLevel *cobra.Command, a *App) {
	var title, content string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Write a new journal entry",
		Example: `
journal add --title "Monday" --content "Rained all day."
journal add            # prompts for title and text
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" && content == "" {
				return a.AddInteractive(cmd.Context())
			}
			return a.Add(cmd.Context(), title, content)
		},
	}

	// Long names only: the short letters belong to the configuration flags.
	cmd.Flags().StringVar(&title, "title", "", "entry title")
	cmd.Flags().StringVar(&content, "content", "", "entry text")
	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command, a *App) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Show(cmd.Context(), args[0])
		},
	})
}

func addDelete(topLevel *cobra.Command, a *App) {
	topLevel.AddCommand(&cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a journal entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Delete(cmd.Context(), args[0])
		},
	})
}

func addSync(topLevel *cobra.Command, a *App) {
	var all, watch bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push journal entries to the remote mirror",
		Long: strings.TrimSpace(`
Push journal entries to the remote mirror. By default only entries that
were never pushed are sent; --all pushes every entry again. With --watch
the command keeps running and pushes on the configured schedule.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all && watch {
				return errors.New("--all and --watch cannot be combined")
			}
			if watch {
				return a.Watch(cmd.Context())
			}
			return a.Sync(cmd.Context(), all)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "push every entry, including ones already pushed")
	cmd.Flags().BoolVar(&watch, "watch", false, "push pending entries on the sync schedule until interrupted")
	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command, a *App) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Upload a JSON snapshot of the journal to object storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Export(cmd.Context())
		},
	})
}

func addImport(topLevel *cobra.Command, a *App) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Restore journal entries from an exported snapshot",
		Long: strings.TrimSpace(`
Restore journal entries from a JSON snapshot produced by "export". Entries
replace the local entry with the same id; entries without an id are added.
The whole snapshot is applied in one transaction. Use "-" to read stdin.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Import(cmd.Context(), args[0])
		},
	})
}

func addRemote(topLevel *cobra.Command, a *App) {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Browse the remote mirror",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"l", "ls"},
		Short:   "List mirrored entries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.RemoteList(cmd.Context())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <key>",
		Short: "Show a mirrored entry",
		Example: `
journal remote show -- -NmX3k9aBcD
`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.RemoteShow(cmd.Context(), args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "delete <key>",
		Aliases: []string{"rm"},
		Short:   "Delete a mirrored entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.RemoteDelete(cmd.Context(), args[0])
		},
	})

	topLevel.AddCommand(cmd)
}

func addREPL(topLevel *cobra.Command, a *App) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "repl",
		Short: "Start the interactive prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL(cmd)
		},
	})
}

func addVersion(topLevel *cobra.Command, a *App) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(a.out)
		},
	})
}
