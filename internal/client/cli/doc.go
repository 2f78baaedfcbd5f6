// Package cli provides the interactive talentauth command-line client.
//
// It wires configuration, the local session database, the HTTP client and
// the session manager, then runs a REPL until the user exits. A stored
// session is restored on startup, so a user who signed in once stays signed
// in across runs until the token expires or they sign out.
//
// Commands:
//   - signin, signup, signout
//   - whoami (cached user) and me (reloaded from the server)
//   - status, help, exit
//
// The REPL is started via App.Run(ctx). See runREPL for the loop itself.
package cli
