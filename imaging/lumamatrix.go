package imaging

// lumaMatrix is a 2D prefix sum of squared luma, supporting O(1) rectangle
// sum-of-squares queries. sums has dims (h+1) x (w+1), with sums[0][*] and
// sums[*][0] zero.
type lumaMatrix struct {
	width, height int
	sums          [][]uint64
}

func newLumaMatrix(g *GrayImage) *lumaMatrix {
	w, h := g.Width(), g.Height()
	sums := make([][]uint64, h+1)
	for i := range sums {
		sums[i] = make([]uint64, w+1)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint64(g.Pixel(x, y))
			sums[y+1][x+1] = sums[y][x+1] + sums[y+1][x] - sums[y][x] + v*v
		}
	}
	return &lumaMatrix{width: w, height: h, sums: sums}
}

// rectSumSq returns sum of I(x,y)^2 for x in [x0,x1), y in [y0,y1).
func (m *lumaMatrix) rectSumSq(x0, y0, x1, y1 int) uint64 {
	return m.sums[y1][x1] - m.sums[y0][x1] - m.sums[y1][x0] + m.sums[y0][x0]
}
