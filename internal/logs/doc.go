// Package logs reads back the JSON log file written by the CLI.
//
// It keeps only the last N matching lines in memory, so large rotated logs
// can be inspected cheaply, and can narrow the output to a single CLI
// invocation by run id.
package logs
