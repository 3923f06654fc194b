package texture

import (
	"errors"
	"fmt"
	"image"
)

// TGA image types handled by DecodeTGA.
const (
	TGATypeUncompressed = 2
	TGATypeGray         = 3
	TGATypeRLE          = 10
	TGATypeGrayRLE      = 11
)

const tgaHeaderSize = 18

var (
	ErrTGAUnsupported = errors.New("tga: unsupported format")
	ErrTGATruncated   = errors.New("tga: truncated")
)

// tgaHeader is the part of the file header that shapes the pixel stream.
type tgaHeader struct {
	width, height int
	bpp           int // bytes per pixel: 1 gray, 3 BGR, 4 BGRA
	rle           bool
	rightToLeft   bool
	topDown       bool
}

// DecodeTGA decodes true-color and grayscale TGA files, raw or run-length
// encoded, into a zero-origin RGBA image with the first row at the top.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	h, body, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	raw, err := h.unpack(body)
	if err != nil {
		return nil, err
	}
	return h.place(raw), nil
}

func parseTGAHeader(data []byte) (tgaHeader, []byte, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, nil, fmt.Errorf("%w: header", ErrTGATruncated)
	}
	if data[1] != 0 {
		return tgaHeader{}, nil, fmt.Errorf("%w: color-mapped image", ErrTGAUnsupported)
	}

	h := tgaHeader{
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bpp:         int(data[16]) / 8,
		rightToLeft: data[17]&0x10 != 0,
		topDown:     data[17]&0x20 != 0,
	}

	gray := false
	switch data[2] {
	case TGATypeUncompressed:
	case TGATypeRLE:
		h.rle = true
	case TGATypeGray:
		gray = true
	case TGATypeGrayRLE:
		gray, h.rle = true, true
	default:
		return tgaHeader{}, nil, fmt.Errorf("%w: image type %d", ErrTGAUnsupported, data[2])
	}
	if gray != (h.bpp == 1) || (!gray && h.bpp != 3 && h.bpp != 4) {
		return tgaHeader{}, nil, fmt.Errorf("%w: %d bits for type %d", ErrTGAUnsupported, data[16], data[2])
	}
	if h.width == 0 || h.height == 0 {
		return tgaHeader{}, nil, fmt.Errorf("%w: empty image", ErrTGAUnsupported)
	}

	offset := tgaHeaderSize + int(data[0])
	if offset > len(data) {
		return tgaHeader{}, nil, fmt.Errorf("%w: image id", ErrTGATruncated)
	}
	return h, data[offset:], nil
}

// unpack returns width*height pixels in file order, expanding RLE packets.
func (h tgaHeader) unpack(body []byte) ([]byte, error) {
	size := h.width * h.height * h.bpp
	if !h.rle {
		if len(body) < size {
			return nil, fmt.Errorf("%w: pixel data", ErrTGATruncated)
		}
		return body[:size], nil
	}

	out := make([]byte, 0, size)
	for len(out) < size {
		if len(body) == 0 {
			return nil, fmt.Errorf("%w: rle stream", ErrTGATruncated)
		}
		packet := body[0]
		body = body[1:]
		n := int(packet&0x7f) + 1

		if packet&0x80 != 0 {
			if len(body) < h.bpp {
				return nil, fmt.Errorf("%w: rle run", ErrTGATruncated)
			}
			for i := 0; i < n; i++ {
				out = append(out, body[:h.bpp]...)
			}
			body = body[h.bpp:]
			continue
		}
		if len(body) < n*h.bpp {
			return nil, fmt.Errorf("%w: rle literal", ErrTGATruncated)
		}
		out = append(out, body[:n*h.bpp]...)
		body = body[n*h.bpp:]
	}
	// a run may spill past the last pixel
	return out[:size], nil
}

// place converts file-order pixels to RGBA rows, undoing the origin flags.
func (h tgaHeader) place(raw []byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	for y := 0; y < h.height; y++ {
		dy := y
		if !h.topDown {
			dy = h.height - 1 - y
		}
		row := img.Pix[dy*img.Stride:]
		for x := 0; x < h.width; x++ {
			dx := x
			if h.rightToLeft {
				dx = h.width - 1 - x
			}
			src := raw[(y*h.width+x)*h.bpp:]
			dst := row[dx*4 : dx*4+4]
			switch h.bpp {
			case 1:
				dst[0], dst[1], dst[2], dst[3] = src[0], src[0], src[0], 0xff
			case 3:
				dst[0], dst[1], dst[2], dst[3] = src[2], src[1], src[0], 0xff
			default:
				dst[0], dst[1], dst[2], dst[3] = src[2], src[1], src[0], src[3]
			}
		}
	}
	return img
}
