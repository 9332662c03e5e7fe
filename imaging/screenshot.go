package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp" // register BMP decoding alongside PNG
)

// Screenshot is an immutable width*height raster of BGRA pixels, row-major.
type Screenshot struct {
	width, height int
	buf           []byte
}

// FromBGRA builds a Screenshot from a raw BGRA buffer of length 4*w*h, the
// layout returned directly by the desktop capture backends.
func FromBGRA(width, height int, buf []byte) (*Screenshot, error) {
	if len(buf) != width*height*4 {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBufferSize, len(buf), width*height*4)
	}
	return &Screenshot{width: width, height: height, buf: buf}, nil
}

// FromFileBuf decodes an encoded image buffer (PNG, BMP, or any format
// registered with the image package) into a Screenshot.
func FromFileBuf(buf []byte) (*Screenshot, error) {
	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return fromImage(img), nil
}

// FromFile reads and decodes an image file from disk into a Screenshot.
func FromFile(path string) (*Screenshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imaging: couldn't open %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return fromImage(img), nil
}

func fromImage(img image.Image) *Screenshot {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	buf := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := rgba.PixOffset(x, y)
			o := (y*w + x) * 4
			// rgba.Pix is RGBA; Screenshot stores BGRA.
			buf[o+0] = rgba.Pix[i+2]
			buf[o+1] = rgba.Pix[i+1]
			buf[o+2] = rgba.Pix[i+0]
			buf[o+3] = rgba.Pix[i+3]
		}
	}
	return &Screenshot{width: w, height: h, buf: buf}
}

func (s *Screenshot) Width() int  { return s.width }
func (s *Screenshot) Height() int { return s.height }

// Pixel returns the pixel at (x,y). x and y must be in range.
func (s *Screenshot) Pixel(x, y int) Pixel {
	i := (y*s.width + x) * 4
	return newPixel(s.buf[i : i+4])
}

// Save writes the screenshot out as a PNG, swapping BGRA back to RGBA.
func (s *Screenshot) Save(w io.Writer) error {
	rgba := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			p := s.Pixel(x, y)
			rgba.SetRGBA(x, y, color.RGBA{R: p.R(), G: p.G(), B: p.B(), A: p.A()})
		}
	}
	return png.Encode(w, rgba)
}
