package bits

import "testing"

func TestIntN(t *testing.T) {
	golden := []struct {
		x    uint64
		n    uint
		want int64
	}{
		{x: 0b011, n: 3, want: 3},
		{x: 0b010, n: 3, want: 2},
		{x: 0b001, n: 3, want: 1},
		{x: 0b000, n: 3, want: 0},
		{x: 0b111, n: 3, want: -1},
		{x: 0b110, n: 3, want: -2},
		{x: 0b101, n: 3, want: -3},
		{x: 0b100, n: 3, want: -4},
		{x: 0xFFFF, n: 16, want: -1},
		{x: 0x8000, n: 16, want: -32768},
		{x: 0x7FFF, n: 16, want: 32767},
		{x: 0xFC18, n: 16, want: -1000},
	}
	for _, g := range golden {
		got := IntN(g.x, g.n)
		if g.want != got {
			t.Errorf("result mismatch of IntN(x=0b%03b, n=%d); expected %d, got %d", g.x, g.n, g.want, got)
			continue
		}
	}
}

func TestUintN(t *testing.T) {
	golden := []struct {
		x    int64
		n    uint
		want uint64
	}{
		{x: 3, n: 3, want: 0b011},
		{x: 0, n: 3, want: 0b000},
		{x: -1, n: 3, want: 0b111},
		{x: -4, n: 3, want: 0b100},
		{x: 7, n: 3, want: 0b011},
		{x: -9, n: 3, want: 0b100},
		{x: -1000, n: 16, want: 0xFC18},
		{x: 32768, n: 16, want: 0x7FFF},
		{x: -32768, n: 16, want: 0x8000},
	}
	for _, g := range golden {
		got := UintN(g.x, g.n)
		if g.want != got {
			t.Errorf("result mismatch of UintN(x=%d, n=%d); expected 0x%X, got 0x%X", g.x, g.n, g.want, got)
			continue
		}
		if back := IntN(got, g.n); g.x >= -(1<<(g.n-1)) && g.x < 1<<(g.n-1) && back != g.x {
			t.Errorf("IntN(UintN(%d, %d)) = %d", g.x, g.n, back)
		}
	}
}
