package aggregate_test

import (
	"context"
	"testing"

	"github.com/lguimbarda/rp/pipe"
	"github.com/lguimbarda/rp/pipe/aggregate"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name    string
		input   []int
		initial int
		want    int
	}{
		{
			name:    "sum",
			input:   []int{1, 2, 3, 4},
			initial: 0,
			want:    10,
		},
		{
			name:    "sum with initial",
			input:   []int{1, 2, 3},
			initial: 100,
			want:    106,
		},
		{
			name:    "empty stream emits initial",
			input:   []int{},
			initial: 42,
			want:    42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			stream := pipe.FromSlice(tt.input)
			folded := aggregate.Fold(tt.initial, func(acc, n int) int { return acc + n }).Apply(ctx, stream)
			got, err := pipe.First[int](ctx, folded)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  int
	}{
		{
			name:  "counts values",
			input: []string{"a", "b", "c"},
			want:  3,
		},
		{
			name:  "empty stream counts zero",
			input: []string{},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			stream := pipe.FromSlice(tt.input)
			counted := aggregate.Count[string]().Apply(ctx, stream)
			got, err := pipe.First[int](ctx, counted)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
