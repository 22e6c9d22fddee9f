package problemgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumericTolerance is the absolute difference under which two numeric
// answers are considered equal.
const NumericTolerance = 0.001

// MsgNumericExpected replaces the question explanation when a numeric
// answer cannot be parsed.
const MsgNumericExpected = "Please provide a numeric answer"

// Evaluate decides whether raw answers q correctly and returns the
// explanation to show. It never fails: malformed input is scored as
// incorrect with a corrective explanation.
//
// Normalization rules:
//   - Whitespace is trimmed and comparison is case-insensitive for every kind
//   - Numeric: both sides parse as numbers (decimal or a/b fraction) and
//     match within NumericTolerance
//   - Multiple choice: the normalized text must equal the correct option
//   - Free text: equal, or either side contains the other
//   - An empty answer is never correct
func Evaluate(q *Question, raw string) (bool, string) {
	want := normalize(q.Answer)
	got := normalize(raw)

	switch q.Kind {
	case KindNumeric:
		gotNum, err := parseNumber(got)
		if err != nil {
			return false, MsgNumericExpected
		}
		wantNum, err := parseNumber(want)
		if err != nil {
			// Canonical answer is not a number; compare as text.
			return got == want, q.Explanation
		}
		return math.Abs(wantNum-gotNum) < NumericTolerance, q.Explanation

	case KindMultipleChoice:
		return got != "" && got == want, q.Explanation

	default:
		if got == "" {
			return false, q.Explanation
		}
		ok := got == want || strings.Contains(got, want) || strings.Contains(want, got)
		return ok, q.Explanation
	}
}

// normalize trims and lower-cases an answer for comparison.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// parseNumber parses a decimal ("3.5", "-2", "1e3") or a simple fraction
// ("3/4") into a float64. NaN and infinities are rejected.
func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	if strings.Contains(s, "/") {
		num, den, err := parseFraction(s)
		if err != nil {
			return 0, err
		}
		if den == 0 {
			return 0, fmt.Errorf("zero denominator")
		}
		return float64(num) / float64(den), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %w", err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

// parseFraction parses "a/b" into numerator and denominator.
func parseFraction(s string) (int64, int64, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid fraction format: %q", s)
	}
	num, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid denominator: %w", err)
	}
	return num, den, nil
}
