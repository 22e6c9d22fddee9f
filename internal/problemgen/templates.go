package problemgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// mathTemplate renders a parametrized arithmetic question. It returns the
// question text, the numeric answer and an explanation.
type mathTemplate func(r *rand.Rand, difficulty int) (text string, answer float64, explanation string)

// mathTemplates groups templates by the tier they target.
var mathTemplates = map[int][]mathTemplate{
	1: {addTemplate, multiplyTemplate, subtractTemplate},
	2: {linearTemplate, squareRootTemplate, percentTemplate},
	3: {polynomialTemplate},
	4: {powerTemplate, triangularTemplate},
	5: {chooseTemplate, lcmTemplate},
}

// operand returns a value in [1, 10*difficulty].
func operand(r *rand.Rand, difficulty int) int {
	return r.IntN(10*difficulty) + 1
}

func addTemplate(r *rand.Rand, d int) (string, float64, string) {
	a, b := operand(r, d), operand(r, d)
	return fmt.Sprintf("What is %d + %d?", a, b), float64(a + b),
		fmt.Sprintf("%d + %d = %d.", a, b, a+b)
}

func multiplyTemplate(r *rand.Rand, d int) (string, float64, string) {
	a, b := operand(r, d), operand(r, d)
	return fmt.Sprintf("What is %d × %d?", a, b), float64(a * b),
		fmt.Sprintf("%d × %d = %d.", a, b, a*b)
}

func subtractTemplate(r *rand.Rand, d int) (string, float64, string) {
	a, b := operand(r, d), operand(r, d)
	if b > a {
		a, b = b, a
	}
	return fmt.Sprintf("What is %d - %d?", a, b), float64(a - b),
		fmt.Sprintf("%d - %d = %d.", a, b, a-b)
}

func linearTemplate(r *rand.Rand, _ int) (string, float64, string) {
	a := r.IntN(8) + 2
	x := r.IntN(12) + 1
	b := r.IntN(20) + 1
	c := a*x + b
	return fmt.Sprintf("Solve for x: %dx + %d = %d", a, b, c), float64(x),
		fmt.Sprintf("%dx = %d - %d = %d, so x = %d.", a, c, b, c-b, x)
}

func squareRootTemplate(r *rand.Rand, _ int) (string, float64, string) {
	n := r.IntN(14) + 2
	return fmt.Sprintf("What is the square root of %d?", n*n), float64(n),
		fmt.Sprintf("%d × %d = %d.", n, n, n*n)
}

func percentTemplate(r *rand.Rand, _ int) (string, float64, string) {
	percents := []int{10, 20, 25, 50, 75}
	p := percents[r.IntN(len(percents))]
	b := (r.IntN(25) + 1) * 4
	ans := float64(p*b) / 100
	return fmt.Sprintf("What is %d%% of %d?", p, b), ans,
		fmt.Sprintf("%d / 100 × %d = %s.", p, b, formatNumber(ans))
}

func polynomialTemplate(r *rand.Rand, d int) (string, float64, string) {
	a, b, c := r.IntN(5)+1, r.IntN(9)+1, r.IntN(10*d)+1
	x := r.IntN(5) + 1
	v := a*x*x + b*x + c
	return fmt.Sprintf("If f(x) = %dx² + %dx + %d, what is f(%d)?", a, b, c, x), float64(v),
		fmt.Sprintf("%d·%d² + %d·%d + %d = %d.", a, x, b, x, c, v)
}

func powerTemplate(r *rand.Rand, _ int) (string, float64, string) {
	base := r.IntN(8) + 2
	exp := r.IntN(3) + 2
	v := 1
	for range exp {
		v *= base
	}
	return fmt.Sprintf("What is %d raised to the power of %d?", base, exp), float64(v),
		fmt.Sprintf("%d multiplied by itself %d times is %d.", base, exp, v)
}

func triangularTemplate(r *rand.Rand, _ int) (string, float64, string) {
	n := (r.IntN(10) + 1) * 10
	v := n * (n + 1) / 2
	return fmt.Sprintf("What is the sum of all integers from 1 to %d?", n), float64(v),
		fmt.Sprintf("n(n + 1) / 2 = %d · %d / 2 = %d.", n, n+1, v)
}

func chooseTemplate(r *rand.Rand, _ int) (string, float64, string) {
	n := r.IntN(7) + 6
	k := r.IntN(3) + 2
	v := binomial(n, k)
	return fmt.Sprintf("How many ways can you choose %d items from %d distinct items?", k, n), float64(v),
		fmt.Sprintf("C(%d, %d) = %d.", n, k, v)
}

func lcmTemplate(r *rand.Rand, _ int) (string, float64, string) {
	a := int64(r.IntN(20) + 4)
	b := int64(r.IntN(20) + 4)
	v := a / gcd(a, b) * b
	return fmt.Sprintf("What is the least common multiple of %d and %d?", a, b), float64(v),
		fmt.Sprintf("lcm(%d, %d) = %d · %d / gcd = %d.", a, b, a, b, v)
}

// gcd returns the greatest common divisor of a and b.
// Both a and b must be non-negative.
func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func binomial(n, k int) int {
	v := 1
	for i := 1; i <= k; i++ {
		v = v * (n - k + i) / i
	}
	return v
}

// formatNumber renders v without a trailing ".0" for whole numbers.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
