// Package natsort implements the natural string ordering used for every
// name-based sort in the browser: embedded digit runs compare by numeric
// value, the remaining text compares case-insensitively by code point, and
// a string that is a prefix of the other orders first.
package natsort

import "unicode"

// Compare reports the natural order of a and b: -1, 0 or 1.
//
// "Track 2" orders before "Track 10", and "abc" compares equal to "ABC".
// The relation is a total order over the induced equivalence classes, so
// it is safe to back both sorting and ordered keys.
func Compare(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	i, j := 0, 0

	for i < len(ra) && j < len(rb) {
		if unicode.IsDigit(ra[i]) && unicode.IsDigit(rb[j]) {
			var cmp int
			i, j, cmp = compareDigitRuns(ra, rb, i, j)
			if cmp != 0 {
				return cmp
			}
			continue
		}
		ca, cb := unicode.ToLower(ra[i]), unicode.ToLower(rb[j])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}

	// One string is a prefix of the other: the shorter orders first.
	switch {
	case i < len(ra):
		return 1
	case j < len(rb):
		return -1
	default:
		return 0
	}
}

// Less reports whether a orders before b.
func Less(a, b string) bool { return Compare(a, b) < 0 }

// compareDigitRuns consumes the digit run starting at i in ra and at j in
// rb and compares the runs by numeric value. Leading zeros are ignored;
// runs are compared as strings of equal significant length, so arbitrarily
// long numbers never overflow.
func compareDigitRuns(ra, rb []rune, i, j int) (ni, nj, cmp int) {
	si, sj := i, j
	for i < len(ra) && unicode.IsDigit(ra[i]) {
		i++
	}
	for j < len(rb) && unicode.IsDigit(rb[j]) {
		j++
	}

	da, db := trimZeros(ra[si:i]), trimZeros(rb[sj:j])
	if len(da) != len(db) {
		if len(da) < len(db) {
			return i, j, -1
		}
		return i, j, 1
	}
	for k := range da {
		if da[k] != db[k] {
			if da[k] < db[k] {
				return i, j, -1
			}
			return i, j, 1
		}
	}
	return i, j, 0
}

func trimZeros(run []rune) []rune {
	for len(run) > 1 && run[0] == '0' {
		run = run[1:]
	}
	return run
}
