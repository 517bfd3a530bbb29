// Package platform holds capabilities whose implementation depends on the
// build target. The implementation is chosen at compile time by build tags.
package platform
