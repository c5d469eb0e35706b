// Package keystore persists payload keys that decoded successfully and a
// history of decodes in a SQLite database.
//
// Remembered keys are offered back to the decoder before it falls back to
// key recovery, most recently used first. The history table records one row
// per successful decode for the CLI's history command.
package keystore
