// Package format renders human-readable request numbers.
package format

import (
	"fmt"
	"time"
)

// Prefix is the request-number namespace.
const Prefix = "PR"

// RequestNumber formats a request number as PR-YYYYMMDD-NNN from the issue
// time and a 1-based same-day sequence. The date segment is the UTC
// calendar date, consistent with every stored timestamp.
//
// This function is pure and fully deterministic.
func RequestNumber(issuedAt time.Time, seq int64) (string, error) {
	if seq <= 0 {
		return "", fmt.Errorf("invalid request sequence: %d", seq)
	}
	return fmt.Sprintf("%s-%s-%03d", Prefix, issuedAt.UTC().Format("20060102"), seq), nil
}

// SameDay reports whether two instants fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
