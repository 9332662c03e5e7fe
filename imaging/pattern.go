package imaging

import (
	"io"
	"math"
)

// Pattern is an immutable precomputed reference image: its compressed luma,
// the stride-packed SIMD layout of that luma, and the sum of its squared
// luma values. Pattern objects are meant to outlive every Finder that
// searches for them and are typically shared across many FSM states.
type Pattern struct {
	factor    int
	image     *GrayImage
	packed    *stridePackedImage
	squareSum uint64
}

// PatternFromFileBuf builds a Pattern from an encoded image buffer (PNG
// expected; any format the decoder accepts is admissible).
func PatternFromFileBuf(buf []byte) (*Pattern, error) {
	gray, err := GrayFromFileBuf(buf)
	if err != nil {
		return nil, err
	}
	return newPattern(gray), nil
}

// PatternFromFile builds a Pattern from a file on disk.
func PatternFromFile(path string) (*Pattern, error) {
	s, err := FromFile(path)
	if err != nil {
		return nil, err
	}
	return newPattern(FromScreenshot(s)), nil
}

func newPattern(gray *GrayImage) *Pattern {
	factor := patternFactor(gray.Width(), gray.Height())
	compressed := gray.Compress(factor)

	var squareSum uint64
	for y := 0; y < compressed.Height(); y++ {
		for x := 0; x < compressed.Width(); x++ {
			v := uint64(compressed.Pixel(x, y))
			squareSum += v * v
		}
	}

	return &Pattern{
		factor:    factor,
		image:     compressed,
		packed:    newStridePacked(compressed),
		squareSum: squareSum,
	}
}

// patternFactor auto-chooses the compression factor: max(2, floor((w*h/250)^(1/4))).
func patternFactor(w, h int) int {
	f := int(math.Sqrt(math.Sqrt(float64(w*h) / 250)))
	if f < 2 {
		f = 2
	}
	return f
}

func (p *Pattern) Factor() int   { return p.factor }
func (p *Pattern) Width() int    { return p.image.Width() }
func (p *Pattern) Height() int   { return p.image.Height() }
func (p *Pattern) SquareSum() uint64 { return p.squareSum }

// Save writes the pattern's compressed raster out as a grayscale PNG, for
// inspecting what the finder actually matches against.
func (p *Pattern) Save(w io.Writer) error {
	return p.image.Save(w)
}
