// Package app wires a pipeline invocation together: it loads configuration,
// registers step modules, and runs or renders the execution plan. Entry
// points such as the CLI only build a Config and call into it.
package app
