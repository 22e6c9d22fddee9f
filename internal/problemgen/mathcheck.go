package problemgen

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// MathCheckValidator independently recomputes the answer of simple
// arithmetic questions in the math field. Questions without a recognizable
// expression (word problems, sequences) pass through silently.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	if q.Field != FieldMath || q.Kind != KindNumeric {
		return nil
	}
	computed, err := computeAnswer(q.Text)
	if err != nil {
		return nil
	}
	claimed, err := parseNumber(normalize(q.Answer))
	if err != nil {
		return nil
	}
	if math.Abs(computed-claimed) >= NumericTolerance {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %s but generator claimed %q", strconv.FormatFloat(computed, 'f', -1, 64), q.Answer),
			Retryable: true,
		}
	}
	return nil
}

var (
	// Fraction arithmetic: "a/b + c/d", "a/b - c/d", "a/b * c/d", "a/b ÷ c/d"
	fractionArithRe = regexp.MustCompile(`(-?\d+)\s*/\s*(\d+)\s*([+\-*×÷])\s*(-?\d+)\s*/\s*(\d+)`)

	// Integer/decimal arithmetic with +, -, *, ×
	intArithRe = regexp.MustCompile(`(?:^|[^\d/])(-?\d+(?:\.\d+)?)\s*([+\-*×])\s*(-?\d+(?:\.\d+)?)(?:[^\d/x]|$)`)

	// Division requires spaces around the operator to distinguish from fractions (3/4 vs 144 / 12).
	intDivRe = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s+[/÷]\s+(-?\d+(?:\.\d+)?)`)

	// Questions with unknowns or functions are not plain arithmetic.
	algebraRe = regexp.MustCompile(`(?i)(\bx\b|\d+x|f\(|solve|derivative|root|%)`)
)

// computeAnswer extracts a single binary arithmetic expression from the
// question text and evaluates it.
func computeAnswer(text string) (float64, error) {
	if algebraRe.MatchString(text) {
		return 0, fmt.Errorf("not plain arithmetic")
	}
	if m := fractionArithRe.FindStringSubmatch(text); m != nil {
		return computeFractionOp(m)
	}
	if m := intArithRe.FindStringSubmatch(text); m != nil {
		return computeOp(m[1], normalizeOp(m[2]), m[3])
	}
	if m := intDivRe.FindStringSubmatch(text); m != nil {
		return computeOp(m[1], "/", m[2])
	}
	return 0, fmt.Errorf("no arithmetic expression found")
}

func computeFractionOp(m []string) (float64, error) {
	aN, _ := strconv.ParseInt(m[1], 10, 64)
	aD, _ := strconv.ParseInt(m[2], 10, 64)
	bN, _ := strconv.ParseInt(m[4], 10, 64)
	bD, _ := strconv.ParseInt(m[5], 10, 64)
	if aD == 0 || bD == 0 {
		return 0, fmt.Errorf("zero denominator")
	}
	a := float64(aN) / float64(aD)
	b := float64(bN) / float64(bD)
	return apply(a, normalizeOp(m[3]), b)
}

func computeOp(aStr, op, bStr string) (float64, error) {
	a, err := strconv.ParseFloat(aStr, 64)
	if err != nil {
		return 0, err
	}
	b, err := strconv.ParseFloat(bStr, 64)
	if err != nil {
		return 0, err
	}
	return apply(a, op, b)
}

func apply(a float64, op string, b float64) (float64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return a / b, nil
	}
	return 0, fmt.Errorf("unsupported operator: %s", op)
}

// normalizeOp normalizes multiplication and division symbols.
func normalizeOp(op string) string {
	switch op {
	case "×":
		return "*"
	case "÷":
		return "/"
	default:
		return op
	}
}
