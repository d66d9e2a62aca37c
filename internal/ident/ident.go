// Package ident validates bare identifier syntax for member names.
package ident

import "unicode"

// Valid reports whether name is a legal bare identifier: it must start with a
// letter or underscore and continue with letters, digits or underscores.
// Non-ASCII letters are accepted in both positions.
func Valid(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 {
			if !isIdentStart(r) {
				return false
			}
			continue
		}
		if !isIdentPart(r) {
			return false
		}
	}
	return true
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
