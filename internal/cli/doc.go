// Package cli turns command-line arguments into an Invocation: which command
// to run and the validated app.Config for it. Usage errors come back as
// *ExitError carrying the process exit code.
package cli
