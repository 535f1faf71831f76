// Package kpath provides kinded path parsing and rendering.
//
// Kinded paths encode the kind of each step in the syntax:
//   - .field - Map or OrderedMap key
//   - [index] - Array or OrderedMap position
//
// Fields which are empty or contain separators, quotes or spaces are written
// as Go double quoted strings.
//
// # Path Examples
//
//	"contacts[0].name"
//	"settings.\"log.level\""
//	"[3]"
package kpath
