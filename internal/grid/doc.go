// Package grid converts the vendor's column-major box matrix into the
// row-major solution, fill, markup and rebus arrays a puzzle-file writer
// expects.
package grid
