// Package puzzledoc defines the typed form of a decoded puzzle payload.
//
// The vendor JSON is loosely structured; Parse checks the fields the grid
// normalizer depends on once, up front, and reports ErrMalformed instead of
// letting a missing width or box surface later as a panic or a corrupt grid.
package puzzledoc
