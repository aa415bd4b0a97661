package core

import (
	"context"
	"strings"
	"testing"
)

func TestTransformConfig(t *testing.T) {
	tests := []struct {
		name           string
		opts           []TransformOption
		wantBufferSize int
	}{
		{
			name:           "default config",
			opts:           nil,
			wantBufferSize: DefaultBufferSize,
		},
		{
			name:           "custom buffer size",
			opts:           []TransformOption{WithBufferSize(128)},
			wantBufferSize: 128,
		},
		{
			name:           "zero buffer size (unbuffered)",
			opts:           []TransformOption{WithBufferSize(0)},
			wantBufferSize: 0,
		},
		{
			name:           "multiple options last wins",
			opts:           []TransformOption{WithBufferSize(32), WithBufferSize(256)},
			wantBufferSize: 256,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := applyOptions(context.Background(), tt.opts...)
			if cfg.BufferSize != tt.wantBufferSize {
				t.Errorf("BufferSize = %d, want %d", cfg.BufferSize, tt.wantBufferSize)
			}
		})
	}
}

func TestTransformConfig_FromContext(t *testing.T) {
	tests := []struct {
		name           string
		ctxBufferSize  int
		opts           []TransformOption
		wantBufferSize int
	}{
		{
			name:           "context config only",
			ctxBufferSize:  128,
			opts:           nil,
			wantBufferSize: 128,
		},
		{
			name:           "option overrides context",
			ctxBufferSize:  128,
			opts:           []TransformOption{WithBufferSize(256)},
			wantBufferSize: 256,
		},
		{
			name:           "no context config uses default",
			ctxBufferSize:  -1, // sentinel for no context config
			opts:           nil,
			wantBufferSize: DefaultBufferSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.ctxBufferSize >= 0 {
				ctx = WithConfig(ctx, &TransformConfig{BufferSize: tt.ctxBufferSize})
			}

			result := applyOptions(ctx, tt.opts...)
			if result.BufferSize != tt.wantBufferSize {
				t.Errorf("BufferSize = %d, want %d", result.BufferSize, tt.wantBufferSize)
			}
		})
	}
}

func TestMapper_ApplyWith(t *testing.T) {
	ctx := context.Background()
	double := Map(func(x int) (int, error) { return x * 2, nil })

	tests := []struct {
		name       string
		input      []int
		opts       []TransformOption
		wantValues []int
	}{
		{
			name:       "default buffer",
			input:      []int{1, 2, 3},
			opts:       nil,
			wantValues: []int{2, 4, 6},
		},
		{
			name:       "custom buffer size",
			input:      []int{1, 2, 3, 4, 5},
			opts:       []TransformOption{WithBufferSize(2)},
			wantValues: []int{2, 4, 6, 8, 10},
		},
		{
			name:       "unbuffered",
			input:      []int{1, 2},
			opts:       []TransformOption{WithBufferSize(0)},
			wantValues: []int{2, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream := streamFromSlice(tt.input)

			result := double.ApplyWith(ctx, stream, tt.opts...)
			collected := result.Collect(ctx)

			if len(collected) != len(tt.wantValues) {
				t.Fatalf("got %d results, want %d", len(collected), len(tt.wantValues))
			}

			for i, res := range collected {
				if res.IsError() {
					t.Errorf("result[%d] is error: %v", i, res.Error())
					continue
				}
				if res.Value() != tt.wantValues[i] {
					t.Errorf("result[%d] = %d, want %d", i, res.Value(), tt.wantValues[i])
				}
			}
		})
	}
}

func TestMap_PanicBecomesError(t *testing.T) {
	ctx := context.Background()
	boom := Map(func(x int) (int, error) {
		if x == 2 {
			panic("boom at two")
		}
		return x, nil
	})

	stream := streamFromSlice([]int{1, 2, 3})
	collected := boom.Apply(ctx, stream).Collect(ctx)

	if len(collected) != 3 {
		t.Fatalf("got %d results, want 3", len(collected))
	}
	if !collected[1].IsError() {
		t.Fatal("result[1] should be an error")
	}
	if !strings.Contains(collected[1].Error().Error(), "boom at two") {
		t.Errorf("error = %v, want it to mention the panic value", collected[1].Error())
	}
	if collected[2].IsError() || collected[2].Value() != 3 {
		t.Errorf("result[2] = %v, stream should continue past the panic", collected[2])
	}
}

func TestMap_ForwardsSentinels(t *testing.T) {
	ctx := context.Background()
	double := Map(func(x int) (int, error) { return x * 2, nil })

	stream := Emit(func(ctx context.Context) <-chan Result[int] {
		ch := make(chan Result[int], 3)
		ch <- Ok(1)
		ch <- EndOfStream[int]()
		ch <- Ok(2)
		close(ch)
		return ch
	})

	collected := double.Apply(ctx, stream).Collect(ctx)
	if len(collected) != 3 {
		t.Fatalf("got %d results, want 3", len(collected))
	}
	if !collected[1].IsSentinel() {
		t.Error("result[1] should still be a sentinel")
	}
	if collected[1].Sentinel() != ErrEndOfStream {
		t.Errorf("sentinel = %v, want ErrEndOfStream", collected[1].Sentinel())
	}
}

func TestFlatMapper_ApplyWith(t *testing.T) {
	ctx := context.Background()
	duplicate := FlatMap(func(x int) ([]int, error) { return []int{x, x}, nil })

	tests := []struct {
		name       string
		input      []int
		opts       []TransformOption
		wantValues []int
	}{
		{
			name:       "default buffer",
			input:      []int{1, 2},
			opts:       nil,
			wantValues: []int{1, 1, 2, 2},
		},
		{
			name:       "custom buffer size",
			input:      []int{1, 2, 3},
			opts:       []TransformOption{WithBufferSize(4)},
			wantValues: []int{1, 1, 2, 2, 3, 3},
		},
		{
			name:       "unbuffered",
			input:      []int{5},
			opts:       []TransformOption{WithBufferSize(0)},
			wantValues: []int{5, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream := streamFromSlice(tt.input)

			result := duplicate.ApplyWith(ctx, stream, tt.opts...)
			collected := result.Collect(ctx)

			if len(collected) != len(tt.wantValues) {
				t.Fatalf("got %d results, want %d", len(collected), len(tt.wantValues))
			}

			for i, res := range collected {
				if res.IsError() {
					t.Errorf("result[%d] is error: %v", i, res.Error())
					continue
				}
				if res.Value() != tt.wantValues[i] {
					t.Errorf("result[%d] = %d, want %d", i, res.Value(), tt.wantValues[i])
				}
			}
		})
	}
}

// Helper to create a stream from a slice
func streamFromSlice[T any](data []T) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		ch := make(chan Result[T], len(data))
		for _, v := range data {
			ch <- Ok(v)
		}
		close(ch)
		return ch
	})
}

// Helper to collect values from results
func collectValues[T any](results []Result[T]) []T {
	values := make([]T, 0, len(results))
	for _, r := range results {
		if r.IsValue() {
			values = append(values, r.Value())
		}
	}
	return values
}
