package imaging

import "testing"

func TestPixelChannels(t *testing.T) {
	p := newPixel([]byte{0x10, 0x20, 0x30, 0x40})
	if got := p.B(); got != 0x10 {
		t.Errorf("B() = %02x, want %02x", got, 0x10)
	}
	if got := p.G(); got != 0x20 {
		t.Errorf("G() = %02x, want %02x", got, 0x20)
	}
	if got := p.R(); got != 0x30 {
		t.Errorf("R() = %02x, want %02x", got, 0x30)
	}
	if got := p.A(); got != 0x40 {
		t.Errorf("A() = %02x, want %02x", got, 0x40)
	}
}

func TestPixelLumaRange(t *testing.T) {
	cases := []struct {
		bgra []byte
		want uint8
	}{
		{[]byte{0, 0, 0, 0xff}, 0},
		{[]byte{0xff, 0xff, 0xff, 0xff}, 255},
		{[]byte{0, 0, 0xff, 0xff}, 54},  // pure red
		{[]byte{0, 0xff, 0, 0xff}, 182}, // pure green
		{[]byte{0xff, 0, 0, 0xff}, 18},  // pure blue
	}

	for i, tc := range cases {
		p := newPixel(tc.bgra)
		if got := p.Luma(); got != tc.want {
			t.Errorf("%d: Luma() = %d, want %d", i, got, tc.want)
		}
	}
}
