// Package extract pulls embedded transaction identifiers out of
// free-text ledger descriptions.
package extract

import "regexp"

// Check numbers appear as parenthesized digit groups inside the book's
// concept text, e.g. "Cheques de terceros (36142161)(77)".
var checkNumber = regexp.MustCompile(`\((\d+)\)`)

// Identifiers returns every parenthesized digit group in text, in
// left-to-right order. Duplicates are preserved; text with no groups
// yields nil.
func Identifiers(text string) []string {
	matches := checkNumber.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}
