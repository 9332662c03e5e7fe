package imaging

import "errors"

// ErrBufferSize is returned when a raw pixel buffer's length doesn't match
// width*height*4 (BGRA).
var ErrBufferSize = errors.New("imaging: buffer length does not match width*height*4")

// ErrDecode is returned when an image byte buffer cannot be decoded.
var ErrDecode = errors.New("imaging: could not decode image buffer")
