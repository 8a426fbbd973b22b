package lossless

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/cocosip/go-jpegls/jpegls/common"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext(0)
	if ctx.A != 0 || ctx.B != 0 || ctx.N != 1 || ctx.C != 0 {
		t.Errorf("NewContext(0) = %+v, want {A:0 B:0 N:1 C:0}", ctx)
	}

	ctx = NewContext(4)
	if ctx.A != 4 || ctx.N != 1 {
		t.Errorf("NewContext(4) = %+v, want A=4 N=1", ctx)
	}
}

func TestUpdateVariablesScenario(t *testing.T) {
	ctx := NewContext(0)

	if err := ctx.UpdateVariables(5, 0, 64); err != nil {
		t.Fatalf("UpdateVariables failed: %v", err)
	}

	want := Context{A: 5, B: 0, N: 2, C: 1}
	if ctx != want {
		t.Errorf("after UpdateVariables(5, 0, 64): got %+v, want %+v", ctx, want)
	}

	if k := ctx.GetGolomb(); k != 2 {
		t.Errorf("GetGolomb() = %d, want 2", k)
	}
}

func TestUpdateVariablesSteps(t *testing.T) {
	tests := []struct {
		name   string
		start  Context
		errval int
		near   int
		nreset int
		want   Context
	}{
		{
			name:   "zero error keeps bias",
			start:  Context{A: 4, B: 0, N: 1, C: 0},
			errval: 0, near: 0, nreset: 64,
			want: Context{A: 4, B: 0, N: 2, C: 0},
		},
		{
			name:   "negative error decrements C",
			start:  Context{A: 4, B: 0, N: 1, C: 0},
			errval: -3, near: 0, nreset: 64,
			want: Context{A: 7, B: -1, N: 2, C: -1},
		},
		{
			name:   "negative error clamps B to -N+1",
			start:  Context{A: 4, B: 0, N: 1, C: 0},
			errval: -10, near: 0, nreset: 64,
			want: Context{A: 14, B: -1, N: 2, C: -1},
		},
		{
			name:   "small negative bias left alone",
			start:  Context{A: 10, B: -1, N: 3, C: 2},
			errval: 0, near: 0, nreset: 64,
			want: Context{A: 10, B: -1, N: 4, C: 2},
		},
		{
			name:   "near scales bias",
			start:  Context{A: 0, B: 0, N: 1, C: 0},
			errval: 1, near: 2, nreset: 64,
			want: Context{A: 1, B: 0, N: 2, C: 1},
		},
		{
			name:   "reset halves statistics",
			start:  Context{A: 100, B: -10, N: 64, C: 5},
			errval: 2, near: 0, nreset: 64,
			// A=102>>1=51, B=-8>>1=-4, N=32 -> 33, -4 > -33 and not > 0
			want: Context{A: 51, B: -4, N: 33, C: 5},
		},
		{
			name:   "reset halves negative odd bias with arithmetic shift",
			start:  Context{A: 100, B: -62, N: 64, C: 0},
			errval: -1, near: 0, nreset: 64,
			// A=101>>1=50, B=-63>>1=-32, N=33, -32 > -33
			want: Context{A: 50, B: -32, N: 33, C: 0},
		},
		{
			name:   "C saturates at MaxC",
			start:  Context{A: 0, B: 0, N: 1, C: MaxC},
			errval: 5, near: 0, nreset: 64,
			want: Context{A: 5, B: 0, N: 2, C: MaxC},
		},
		{
			name:   "C saturates at MinC",
			start:  Context{A: 0, B: 0, N: 1, C: MinC},
			errval: -5, near: 0, nreset: 64,
			want: Context{A: 5, B: -1, N: 2, C: MinC},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.start
			if err := ctx.UpdateVariables(tt.errval, tt.near, tt.nreset); err != nil {
				t.Fatalf("UpdateVariables failed: %v", err)
			}
			if ctx != tt.want {
				t.Errorf("got %+v, want %+v", ctx, tt.want)
			}
		})
	}
}

func TestUpdateVariablesInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 50; trial++ {
		near := rng.Intn(4)
		nreset := 3 + rng.Intn(256)
		ctx := NewContext(rng.Intn(1024))

		for i := 0; i < 5000; i++ {
			errval := rng.Intn(511) - 255
			if err := ctx.UpdateVariables(errval, near, nreset); err != nil {
				t.Fatalf("trial %d step %d: UpdateVariables(%d) failed: %v", trial, i, errval, err)
			}
			if ctx.N < 1 {
				t.Fatalf("trial %d step %d: N = %d, want >= 1", trial, i, ctx.N)
			}
			if ctx.C < MinC || ctx.C > MaxC {
				t.Fatalf("trial %d step %d: C = %d out of [%d, %d]", trial, i, ctx.C, MinC, MaxC)
			}
			if ctx.B > 0 || ctx.B <= -ctx.N {
				t.Fatalf("trial %d step %d: B = %d not in (-N, 0] with N = %d", trial, i, ctx.B, ctx.N)
			}
			if ctx.N > nreset {
				t.Fatalf("trial %d step %d: N = %d exceeds reset %d", trial, i, ctx.N, nreset)
			}
		}
	}
}

func TestUpdateVariablesZeroN(t *testing.T) {
	ctx := Context{A: 4, B: 0, N: 0, C: 0}
	err := ctx.UpdateVariables(1, 0, 64)
	if !errors.Is(err, common.ErrCorruptState) {
		t.Fatalf("error = %v, want ErrCorruptState", err)
	}
	if ctx != (Context{A: 4, B: 0, N: 0, C: 0}) {
		t.Errorf("context modified on error: %+v", ctx)
	}
}

func TestUpdateVariablesMagnitudeGuard(t *testing.T) {
	tests := []struct {
		name   string
		start  Context
		errval int
	}{
		{"A overflow", Context{A: maxMagnitude - 1, B: 0, N: 1}, 1},
		{"B overflow positive", Context{A: 0, B: maxMagnitude - 10, N: 1}, 10},
		{"B overflow negative", Context{A: 0, B: -(maxMagnitude - 10), N: 1}, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.start
			err := ctx.UpdateVariables(tt.errval, 0, 64)
			if !errors.Is(err, common.ErrCorruptState) {
				t.Fatalf("error = %v, want ErrCorruptState", err)
			}
			if ctx != tt.start {
				t.Errorf("context modified on error: got %+v, want %+v", ctx, tt.start)
			}
		})
	}
}

func TestGetGolombBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 20000; i++ {
		a := rng.Intn(100001)
		n := 1 + rng.Intn(100000)
		ctx := Context{A: a, N: n}

		want := 0
		for (n << uint(want)) < a {
			want++
		}

		if got := ctx.GetGolomb(); got != want {
			t.Fatalf("GetGolomb(A=%d, N=%d) = %d, want %d", a, n, got, want)
		}
	}
}

func TestGetGolombEdges(t *testing.T) {
	tests := []struct {
		a, n int
		want int
	}{
		{0, 1, 0},
		{1, 1, 0},
		{2, 1, 1},
		{5, 2, 2},
		{8, 2, 2},
		{9, 2, 3},
		{100000, 1, 17},
		{0, 100000, 0},
	}

	for _, tt := range tests {
		ctx := Context{A: tt.a, N: tt.n}
		if got := ctx.GetGolomb(); got != tt.want {
			t.Errorf("GetGolomb(A=%d, N=%d) = %d, want %d", tt.a, tt.n, got, tt.want)
		}
	}
}

func TestGetErrorCorrection(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 5000; i++ {
		ctx := Context{A: rng.Intn(1000), B: rng.Intn(200) - 100, N: 1 + rng.Intn(100)}

		for k := 1; k < 16; k++ {
			if got := ctx.GetErrorCorrection(k); got != 0 {
				t.Fatalf("GetErrorCorrection(%d) = %d for %+v, want 0", k, got, ctx)
			}
		}

		want := -1
		if 2*ctx.B+ctx.N-1 > 0 {
			want = 1
		}
		if got := ctx.GetErrorCorrection(0); got != want {
			t.Fatalf("GetErrorCorrection(0) = %d for %+v, want %d", got, ctx, want)
		}
	}

	// 2*B + N - 1 == 0 on a fresh context
	fresh := NewContext(4)
	if got := fresh.GetErrorCorrection(0); got != -1 {
		t.Errorf("GetErrorCorrection(0) on fresh context = %d, want -1", got)
	}
}

func TestContextTable(t *testing.T) {
	traits, err := NewTraitsForBitDepth(8, 0)
	if err != nil {
		t.Fatalf("NewTraitsForBitDepth failed: %v", err)
	}

	table := NewContextTable(traits)
	if table.Len() != RegularContextCount {
		t.Fatalf("Len() = %d, want %d", table.Len(), RegularContextCount)
	}

	ctx, err := table.Get(0)
	if err != nil {
		t.Fatalf("Get(0) failed: %v", err)
	}
	if ctx.A != traits.AInit || ctx.N != 1 {
		t.Errorf("Get(0) = %+v, want A=%d N=1", *ctx, traits.AInit)
	}

	if err := table.Update(10, 7); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	ctx, _ = table.Get(10)
	if ctx.A != traits.AInit+7 || ctx.N != 2 || ctx.C != 1 {
		t.Errorf("after Update(10, 7): %+v", *ctx)
	}

	// Other contexts untouched
	other, _ := table.Get(11)
	if other.N != 1 {
		t.Errorf("neighbouring context modified: %+v", *other)
	}

	for _, idx := range []int{-1, RegularContextCount} {
		if _, err := table.Get(idx); !errors.Is(err, common.ErrContextIndex) {
			t.Errorf("Get(%d) error = %v, want ErrContextIndex", idx, err)
		}
		if err := table.Update(idx, 1); !errors.Is(err, common.ErrContextIndex) {
			t.Errorf("Update(%d) error = %v, want ErrContextIndex", idx, err)
		}
	}

	table.Reset()
	ctx, _ = table.Get(10)
	if *ctx != NewContext(traits.AInit) {
		t.Errorf("after Reset: %+v", *ctx)
	}
}

func TestContextTableUpdateCorrupt(t *testing.T) {
	traits, _ := NewTraitsForBitDepth(8, 0)
	table := NewContextTable(traits)

	ctx, _ := table.Get(3)
	ctx.N = 0

	err := table.Update(3, 1)
	if !errors.Is(err, common.ErrCorruptState) {
		t.Fatalf("Update on corrupt context error = %v, want ErrCorruptState", err)
	}
}

func BenchmarkUpdateVariables(b *testing.B) {
	ctx := NewContext(4)
	errs := []int{0, 1, -1, 3, -2, 7, -5, 0}
	for i := 0; i < b.N; i++ {
		_ = ctx.UpdateVariables(errs[i&7], 0, DefaultReset)
	}
}

func BenchmarkGetGolomb(b *testing.B) {
	ctx := Context{A: 1000, N: 3}
	for i := 0; i < b.N; i++ {
		_ = ctx.GetGolomb()
	}
}
