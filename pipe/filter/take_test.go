package filter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lguimbarda/rp/pipe"
	"github.com/lguimbarda/rp/pipe/filter"
)

func TestTake(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		n     int
		want  []int
	}{
		{
			name:  "take first 3",
			input: []int{1, 2, 3, 4, 5},
			n:     3,
			want:  []int{1, 2, 3},
		},
		{
			name:  "take more than available",
			input: []int{1, 2},
			n:     5,
			want:  []int{1, 2},
		},
		{
			name:  "take zero",
			input: []int{1, 2, 3},
			n:     0,
			want:  []int{},
		},
		{
			name:  "take negative",
			input: []int{1, 2, 3},
			n:     -1,
			want:  []int{},
		},
		{
			name:  "take from empty",
			input: []int{},
			n:     3,
			want:  []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			stream := pipe.FromSlice(tt.input)
			taken := filter.Take[int](tt.n).Apply(ctx, stream)
			got, err := pipe.Slice[int](ctx, taken)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTakeWhile(t *testing.T) {
	tests := []struct {
		name      string
		input     []int
		predicate func(int) bool
		want      []int
	}{
		{
			name:      "take while less than 4",
			input:     []int{1, 2, 3, 4, 5},
			predicate: func(n int) bool { return n < 4 },
			want:      []int{1, 2, 3},
		},
		{
			name:      "take all",
			input:     []int{1, 2, 3},
			predicate: func(n int) bool { return true },
			want:      []int{1, 2, 3},
		},
		{
			name:      "take none",
			input:     []int{1, 2, 3},
			predicate: func(n int) bool { return false },
			want:      []int{},
		},
		{
			name:      "does not resume after first failure",
			input:     []int{1, 2, 9, 3, 4},
			predicate: func(n int) bool { return n < 5 },
			want:      []int{1, 2},
		},
		{
			name:      "empty stream",
			input:     []int{},
			predicate: func(n int) bool { return true },
			want:      []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			stream := pipe.FromSlice(tt.input)
			taken := filter.TakeWhile(tt.predicate).Apply(ctx, stream)
			got, err := pipe.Slice[int](ctx, taken)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSkip(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		n     int
		want  []int
	}{
		{
			name:  "skip first 2",
			input: []int{1, 2, 3, 4, 5},
			n:     2,
			want:  []int{3, 4, 5},
		},
		{
			name:  "skip more than available",
			input: []int{1, 2},
			n:     5,
			want:  []int{},
		},
		{
			name:  "skip zero",
			input: []int{1, 2, 3},
			n:     0,
			want:  []int{1, 2, 3},
		},
		{
			name:  "skip negative",
			input: []int{1, 2, 3},
			n:     -1,
			want:  []int{1, 2, 3},
		},
		{
			name:  "skip from empty",
			input: []int{},
			n:     3,
			want:  []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			stream := pipe.FromSlice(tt.input)
			skipped := filter.Skip[int](tt.n).Apply(ctx, stream)
			got, err := pipe.Slice[int](ctx, skipped)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSkipWhile(t *testing.T) {
	tests := []struct {
		name      string
		input     []int
		predicate func(int) bool
		want      []int
	}{
		{
			name:      "skip while less than 3",
			input:     []int{1, 2, 3, 4, 5},
			predicate: func(n int) bool { return n < 3 },
			want:      []int{3, 4, 5},
		},
		{
			name:      "skip all",
			input:     []int{1, 2, 3},
			predicate: func(n int) bool { return true },
			want:      []int{},
		},
		{
			name:      "skip none",
			input:     []int{1, 2, 3},
			predicate: func(n int) bool { return false },
			want:      []int{1, 2, 3},
		},
		{
			name:      "does not resume skipping",
			input:     []int{1, 9, 2, 3},
			predicate: func(n int) bool { return n < 5 },
			want:      []int{9, 2, 3},
		},
		{
			name:      "empty stream",
			input:     []int{},
			predicate: func(n int) bool { return true },
			want:      []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			stream := pipe.FromSlice(tt.input)
			skipped := filter.SkipWhile(tt.predicate).Apply(ctx, stream)
			got, err := pipe.Slice[int](ctx, skipped)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSkipForwardsErrors(t *testing.T) {
	boom := errors.New("boom")
	ctx := context.Background()

	source := pipe.Concat(
		pipe.FromSlice([]int{1, 2}),
		pipe.FromError[int](boom),
		pipe.FromSlice([]int{3}),
	)
	skipped := filter.Skip[int](2).Apply(ctx, source)

	_, err := pipe.Slice[int](ctx, skipped)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom error, got %v", err)
	}
}

func TestTakeContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	stream := pipe.FromSlice([]int{1, 2, 3, 4, 5})
	taken := filter.Take[int](3).Apply(ctx, stream)

	got, _ := pipe.Slice[int](ctx, taken)
	// Should get empty or partial result due to cancellation
	if len(got) > 3 {
		t.Error("expected fewer results due to cancellation")
	}
}
