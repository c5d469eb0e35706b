// Package main hosts the xwordcodec CLI entrypoint and command graph.
//
// The Cobra command tree reads obfuscated puzzle payloads (or saved solver
// pages) from disk or stdin, runs them through the decoder, and prints or
// writes the canonical puzzle document. It centralizes configuration
// resolution, logger construction and key store access so each subcommand
// only deals with its own flags and output.
package main
