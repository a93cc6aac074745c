// Package cli provides the interactive GreenKeeper command-line client.
//
// It wires configuration, the selected persistence backend, the profile
// store and the profile flows behind a small REPL. The REPL stands in for
// the app's screens: onboarding (province), certificate retrieval,
// status checks and the "service not active" warning.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
