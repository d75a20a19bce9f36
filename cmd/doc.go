// Package cmd implements the CLI commands for devq.
//
// # Architecture
//
// This package is organized into the following files:
//
//   - root.go: Main entry point, App struct, cobra command setup, flags,
//     and positional argument resolution
//   - run.go: The request pipeline shared by one-shot and interactive
//     dispatch (workspace context, prompt build, send, decode, print)
//   - interactive.go: The interactive REPL session built on go-prompt,
//     including reserved word handling and completion
//   - setup.go: The guided --setup flow writing the config file
//
// # Key Components
//
// ## App
//
// The App struct holds application state: the resolved configuration,
// the API client, and the session log. It is created in Execute() and
// shared with the interactive subcommand.
//
// ## InteractiveSession
//
// Wraps one REPL session. Reserved words (exit, quit, help, workspace,
// clear) are handled locally; every other line is resolved to an
// intent and dispatched through the same pipeline as one-shot mode,
// with confirmations auto-accepted.
//
// # Usage
//
//	// Main entry point
//	func main() {
//	    cmd.Execute()
//	}
package cmd
