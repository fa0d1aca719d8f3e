// Package cli provides the interactive demoboard command-line client.
//
// It wires configuration, the cookie jar, the intercepted HTTP path, the
// local overlay database, and the application services into a REPL. Typical
// flow: restore any persisted session, then execute user commands against
// the merged remote/local views.
//
// Key features:
//   - Login / Logout against the fixed credential allow-list
//   - Posts: list, show, create, edit, delete, favorites
//   - Users: list, delete, role changes
//   - Books: search and details
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
