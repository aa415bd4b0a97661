package ops

import (
	"context"
	"slices"
	"strconv"
	"testing"
)

// seq returns the decimal strings "0" through strconv.Itoa(n-1).
func seq(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

func TestSlice(t *testing.T) {
	tests := []struct {
		name   string
		ranges []IndexRange
		in     []string
		want   []string
	}{
		{
			name:   "closed range",
			ranges: []IndexRange{{Min: ref(int64(2)), Max: ref(int64(5))}},
			in:     seq(10),
			want:   []string{"2", "3", "4", "5"},
		},
		{
			name:   "single index",
			ranges: []IndexRange{{Min: ref(int64(3)), Max: ref(int64(3))}},
			in:     seq(10),
			want:   []string{"3"},
		},
		{
			name:   "open minimum",
			ranges: []IndexRange{{Max: ref(int64(2))}},
			in:     seq(10),
			want:   []string{"0", "1", "2"},
		},
		{
			name:   "open maximum",
			ranges: []IndexRange{{Min: ref(int64(7))}},
			in:     seq(10),
			want:   []string{"7", "8", "9"},
		},
		{
			name: "overlaps merge into a union",
			ranges: []IndexRange{
				{Min: ref(int64(0)), Max: ref(int64(5))},
				{Min: ref(int64(7)), Max: ref(int64(10))},
				{Min: ref(int64(3)), Max: ref(int64(9))},
			},
			in:   seq(11),
			want: seq(11),
		},
		{
			name: "disjoint ranges",
			ranges: []IndexRange{
				{Min: ref(int64(0)), Max: ref(int64(1))},
				{Min: ref(int64(4)), Max: ref(int64(5))},
			},
			in:   seq(8),
			want: []string{"0", "1", "4", "5"},
		},
		{
			name: "order of ranges is irrelevant",
			ranges: []IndexRange{
				{Min: ref(int64(7)), Max: ref(int64(8))},
				{Min: ref(int64(0)), Max: ref(int64(1))},
			},
			in:   seq(10),
			want: []string{"0", "1", "7", "8"},
		},
		{
			name:   "inverted range selects nothing",
			ranges: []IndexRange{{Min: ref(int64(5)), Max: ref(int64(2))}},
			in:     seq(10),
			want:   nil,
		},
		{
			name: "inverted range among valid ones",
			ranges: []IndexRange{
				{Min: ref(int64(5)), Max: ref(int64(2))},
				{Min: ref(int64(1)), Max: ref(int64(1))},
			},
			in:   seq(10),
			want: []string{"1"},
		},
		{
			name:   "range past the end",
			ranges: []IndexRange{{Min: ref(int64(8)), Max: ref(int64(100))}},
			in:     seq(10),
			want:   []string{"8", "9"},
		},
		{
			name:   "empty stream",
			ranges: []IndexRange{{Min: ref(int64(0)), Max: ref(int64(5))}},
			in:     nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apply(t, context.Background(), Slice{Ranges: tt.ranges}, tt.in)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLimit(t *testing.T) {
	tests := []struct {
		name  string
		count int
		in    []string
		want  []string
	}{
		{name: "keeps head", count: 2, in: []string{"a", "b", "c"}, want: []string{"a", "b"}},
		{name: "zero empties", count: 0, in: []string{"a", "b"}, want: nil},
		{name: "past the end", count: 9, in: []string{"a", "b"}, want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apply(t, context.Background(), Limit{Count: tt.count}, tt.in)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	tests := []struct {
		name  string
		count int
		in    []string
		want  []string
	}{
		{name: "drops head", count: 2, in: []string{"a", "b", "c"}, want: []string{"c"}},
		{name: "zero keeps all", count: 0, in: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "past the end", count: 9, in: []string{"a", "b"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apply(t, context.Background(), Skip{Count: tt.count}, tt.in)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
