// Package solverpage locates the obfuscated payload and the companion script
// reference inside a saved solver page. It never fetches anything; callers
// hand it page text they already have.
package solverpage
