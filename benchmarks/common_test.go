// Package benchmarks provides comparative benchmarks of the pipe engine
// against popular Go stream processing libraries, on the line-oriented
// workloads the tool runs.
package benchmarks

import (
	"context"
	"fmt"
	"strconv"
)

// Test data sizes
const (
	SmallSize  = 100
	MediumSize = 1_000
	LargeSize  = 10_000
)

// generateInts creates a slice of integers for benchmarking.
func generateInts(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i
	}
	return data
}

// generateLines creates log-shaped lines with a quarter of them ERROR
// lines and heavy duplication, the shape a dedup stage sees in practice.
func generateLines(n int) []string {
	data := make([]string, n)
	for i := range data {
		if i%4 == 0 {
			data[i] = fmt.Sprintf("ERROR worker %d stalled", i%10)
		} else {
			data[i] = fmt.Sprintf("INFO request %d ok", i)
		}
	}
	return data
}

// Common transformation functions used across benchmarks.
// The pipe engine's Map expects func(IN) (OUT, error); the plain
// variants serve the other libraries.

func doubleWithErr(x int) (int, error) {
	return x * 2, nil
}

func double(x int) int {
	return x * 2
}

func isEven(x int) bool {
	return x%2 == 0
}

func add(a, b int) int {
	return a + b
}

func renderWithErr(x int) (string, error) {
	return strconv.Itoa(x), nil
}

// Background context for benchmarks
var ctx = context.Background()
