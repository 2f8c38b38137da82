package bits

import "testing"

func TestReverseBytes(t *testing.T) {
	golden := []struct {
		x    uint64
		n    uint
		want uint64
	}{
		{x: 0xA4, n: 1, want: 0xA4},
		{x: 0x00A4, n: 2, want: 0xA400},
		{x: 0x12345678, n: 4, want: 0x78563412},
		{x: 0x0006DDD0, n: 4, want: 0xD0DD0600},
		{x: 0xFF12345678, n: 4, want: 0x78563412},
		{x: 0x0102030405060708, n: 8, want: 0x0807060504030201},
	}
	for _, g := range golden {
		got := ReverseBytes(g.x, g.n)
		if g.want != got {
			t.Errorf("result mismatch of ReverseBytes(x=0x%X, n=%d); expected 0x%X, got 0x%X", g.x, g.n, g.want, got)
		}
	}
}
