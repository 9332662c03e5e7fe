package imaging

import (
	"bytes"
	"testing"
)

func TestFromBGRARejectsWrongLength(t *testing.T) {
	_, err := FromBGRA(4, 4, make([]byte, 10))
	if err == nil {
		t.Fatal("FromBGRA: got nil error for mismatched buffer length")
	}
}

func TestScreenshotSaveRoundTrips(t *testing.T) {
	buf := bgraFill(3, 2, 10, 20, 30, 255)
	s, err := FromBGRA(3, 2, buf)
	if err != nil {
		t.Fatalf("FromBGRA: %v", err)
	}

	var out bytes.Buffer
	if err := s.Save(&out); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := FromFileBuf(out.Bytes())
	if err != nil {
		t.Fatalf("FromFileBuf: %v", err)
	}
	if got.Width() != s.Width() || got.Height() != s.Height() {
		t.Fatalf("round trip dims = (%d,%d), want (%d,%d)", got.Width(), got.Height(), s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			want, have := s.Pixel(x, y), got.Pixel(x, y)
			if want.R() != have.R() || want.G() != have.G() || want.B() != have.B() {
				t.Errorf("(%d,%d): round trip pixel = %v, want %v", x, y, have, want)
			}
		}
	}
}

func TestFromFileBufRejectsGarbage(t *testing.T) {
	if _, err := FromFileBuf([]byte("not an image")); err == nil {
		t.Fatal("FromFileBuf: got nil error for undecodable buffer")
	}
}
