// Package shell renders argv slices and paths into POSIX shell syntax.
// chipbuild composes exactly one shell script per build (the generate step
// has to source zephyr-env.sh), so interpolated paths must survive spaces
// and metacharacters.
package shell

import "strings"

// safeRunes are the characters that never need quoting in a POSIX shell word.
const safeRunes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@%+=:,./_-"

// Quote returns s as a single shell word, single-quoting unless every
// character is shell-safe. An embedded single quote closes the quoted
// region, emits an escaped quote, and reopens it.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !needsQuoting(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

func needsQuoting(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune(safeRunes, r) {
			return true
		}
	}
	return false
}

// QuoteAll quotes every element of argv.
func QuoteAll(argv []string) []string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = Quote(arg)
	}
	return quoted
}

// Join renders argv as a single copy-pasteable command line.
func Join(argv []string) string {
	return strings.Join(QuoteAll(argv), " ")
}
