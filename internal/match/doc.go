// Package match ranks registered type names by similarity to a requested one,
// for "did you mean" hints in error messages.
package match
