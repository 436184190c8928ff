package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// codePattern matches <PREFIX>-<YEAR>-<SEQ>. Codes that don't match are
// ignored when scanning for the highest sequence number.
var codePattern = regexp.MustCompile(`^([A-Z]+)-(\d{4})-(\d+)$`)

// NextCode derives the next per-year sequential code from a snapshot of
// existing codes: the highest numeric suffix among codes with the same prefix
// and year, plus one, zero-padded to three digits (e.g. "PR-2024-004").
//
// Two concurrent creators working from the same snapshot will compute the same
// code. That race is an accepted property of the generate-then-create pattern
// used here; the unique index on the code column is the only backstop.
func NextCode(prefix string, year int, existing []string) string {
	head := fmt.Sprintf("%s-%d-", prefix, year)
	max := 0
	for _, code := range existing {
		if !strings.HasPrefix(code, head) {
			continue
		}
		m := codePattern.FindStringSubmatch(code)
		if m == nil {
			continue
		}
		seq, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return fmt.Sprintf("%s%03d", head, max+1)
}

// FallbackCode builds a non-sequential but still-unique code from the last six
// digits of the epoch-millisecond clock. Used when the existing-code lookup
// fails: code generation must never block document creation.
func FallbackCode(prefix string, year int, now time.Time) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, year, now.UnixMilli()%1_000_000)
}
