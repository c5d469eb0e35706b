// Package logging assembles the structured slog loggers used by xwordcodec.
//
// Console output goes to the writer supplied by the caller (normally stderr so
// decoded documents on stdout stay clean). When a log directory is configured
// every record is also written as JSON to a size-rotated file. Context helpers
// tag lines with the run identifier assigned to each CLI invocation.
package logging
