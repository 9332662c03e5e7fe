package imaging

import "github.com/ajroetker/go-highway/hwy"

// lanes is the SIMD width the correlation loop is packed to: 8 lanes of
// 16-bit luma, matching spec's 8-lane inner loop.
const lanes = 8

// redundantPackedImage holds one 8-lane vector per (x,y) cell, holding luma
// at x..x+7 (zero-padded past the right edge). Enables an unaligned 8-wide
// load at every column of the (compressed) screen.
type redundantPackedImage struct {
	width, height int
	vecs          []hwy.Vec[uint16]
}

func newRedundantPacked(g *GrayImage) *redundantPackedImage {
	w, h := g.Width(), g.Height()
	vecs := make([]hwy.Vec[uint16], w*h)
	lane := make([]uint16, lanes)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for i := range lane {
				lane[i] = 0
			}
			for i := 0; i < lanes && x+i < w; i++ {
				lane[i] = uint16(g.Pixel(x+i, y))
			}
			vecs[y*w+x] = hwy.Load(lane)
		}
	}
	return &redundantPackedImage{width: w, height: h, vecs: vecs}
}

func (p *redundantPackedImage) at(x, y int) hwy.Vec[uint16] {
	return p.vecs[y*p.width+x]
}

// stridePackedImage holds one vector per block of 8 columns; width is
// rounded up to a multiple of 8. Used for patterns, traversed in step-8.
type stridePackedImage struct {
	packedWidth, height int
	vecs                []hwy.Vec[uint16]
}

func newStridePacked(g *GrayImage) *stridePackedImage {
	w, h := g.Width(), g.Height()
	pw := (w + lanes - 1) / lanes
	vecs := make([]hwy.Vec[uint16], pw*h)
	lane := make([]uint16, lanes)
	for y := 0; y < h; y++ {
		for bx := 0; bx < pw; bx++ {
			x := bx * lanes
			for i := range lane {
				lane[i] = 0
			}
			for i := 0; i < lanes && x+i < w; i++ {
				lane[i] = uint16(g.Pixel(x+i, y))
			}
			vecs[y*pw+bx] = hwy.Load(lane)
		}
	}
	return &stridePackedImage{packedWidth: pw, height: h, vecs: vecs}
}

// at returns the vector covering column x (x must be a multiple of 8).
func (p *stridePackedImage) at(x, y int) hwy.Vec[uint16] {
	return p.vecs[y*p.packedWidth+x/lanes]
}

// dotLane multiplies two 8-lane vectors and folds the 8 products into a
// u32 accumulator. The per-lane product fits in u16 only modulo 2^16 (the
// true max per lane is 255*255 < 65536, so no wrap actually occurs for
// luma data), but the sum of 8 lanes (up to ~520200) would overflow a u16
// accumulator, so the fold happens in u32 after the SIMD multiply.
func dotLane(a, b hwy.Vec[uint16]) uint32 {
	prod := hwy.Mul(a, b)
	var sum uint32
	for _, v := range prod.Data() {
		sum += uint32(v)
	}
	return sum
}
