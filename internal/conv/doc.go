// Package conv converts between int and the fixed-width integers of the
// result blob header, and multiplies shape dimensions without wrapping.
package conv
