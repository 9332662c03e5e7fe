package imaging

import (
	"image"
	"image/png"
	"io"
)

// GrayImage is an 8-bit luma raster, row-major.
type GrayImage struct {
	width, height int
	buf           []uint8
}

// FromScreenshot projects a Screenshot pixel-wise through the luma formula.
func FromScreenshot(s *Screenshot) *GrayImage {
	w, h := s.Width(), s.Height()
	buf := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[y*w+x] = s.Pixel(x, y).Luma()
		}
	}
	return &GrayImage{width: w, height: h, buf: buf}
}

// GrayFromFileBuf decodes an image buffer straight to luma.
func GrayFromFileBuf(buf []byte) (*GrayImage, error) {
	s, err := FromFileBuf(buf)
	if err != nil {
		return nil, err
	}
	return FromScreenshot(s), nil
}

func (g *GrayImage) Width() int  { return g.width }
func (g *GrayImage) Height() int { return g.height }

func (g *GrayImage) Pixel(x, y int) uint8 {
	return g.buf[y*g.width+x]
}

// Compress downsamples by an integer factor f>=2. Output dims are
// floor(w/f) x floor(h/f); each output cell is the integer mean of the
// f x f luma block at (f*x', f*y'). Partial trailing rows/columns are
// dropped, never read.
func (g *GrayImage) Compress(f int) *GrayImage {
	w, h := g.width/f, g.height/f
	buf := make([]uint8, w*h)
	ff := f * f
	for oy := 0; oy < h; oy++ {
		for ox := 0; ox < w; ox++ {
			var sum int
			for dy := 0; dy < f; dy++ {
				for dx := 0; dx < f; dx++ {
					sum += int(g.Pixel(f*ox+dx, f*oy+dy))
				}
			}
			buf[oy*w+ox] = uint8(sum / ff)
		}
	}
	return &GrayImage{width: w, height: h, buf: buf}
}

// Save writes the raster out as an 8-bit grayscale PNG.
func (g *GrayImage) Save(w io.Writer) error {
	img := image.NewGray(image.Rect(0, 0, g.width, g.height))
	copy(img.Pix, g.buf)
	return png.Encode(w, img)
}
