// Package conv provides a registry of per-type converters.
// Each converter coerces an arbitrary value into its target type: primitives never fail and
// fall back to their zero value, other types fall back to the caller supplied default.
// Structural misuse (missing converter, incompatible default) is reported as an error.
package conv
