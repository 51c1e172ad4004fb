// Package cli provides the journal's command-line front end.
//
// It exposes the view state holder and the sync/export services as cobra
// commands (list, add, show, delete, sync, export, remote ...) and as an
// interactive REPL, the default when no command is given.
//
// Output goes through a single writer: entry lists are rendered with uitable,
// status lines are colored with fatih/color. Prompts are only printed when
// stdin is a terminal.
//
// See App, NewRootCommand and runREPL for details.
package cli
