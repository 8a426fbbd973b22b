// Package common holds the numeric helpers and error values shared by the
// JPEG-LS packages.
package common

// Abs returns the absolute value of an integer
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns 1 if n >= 0, -1 if n < 0. It never returns 0: zero counts
// as positive. Callers that need zero to count as negative use -Sign(-n).
func Sign(n int) int {
	if n >= 0 {
		return 1
	}
	return -1
}

// Min returns the minimum of two integers
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Log2 returns the smallest x such that n <= 2^x.
// Log2(0) and Log2(1) are both 0.
func Log2(n int) int {
	x := 0
	for x < 62 && n > 1<<uint(x) {
		x++
	}
	return x
}
