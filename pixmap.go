package blit

import (
	"hash/fnv"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Pixmap represents a rectangular RGBA pixel buffer, 4 bytes per pixel.
//
// A Pixmap is the CPU-side source for texture uploads. Its data may be
// retained by a texture's restore strategy; callers must not mutate a
// pixmap after handing it to the texture factory unless they replace the
// restore strategy.
type Pixmap struct {
	width         int
	height        int
	premultiplied bool
	pix           []uint8
}

// NewPixmap creates a zeroed pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// PixmapFromImage converts any image.Image into a pixmap.
func PixmapFromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	p := NewPixmap(b.Dx(), b.Dy())
	dst := &image.RGBA{Pix: p.pix, Stride: p.width * 4, Rect: image.Rect(0, 0, p.width, p.height)}
	xdraw.Draw(dst, dst.Rect, img, b.Min, xdraw.Src)
	p.premultiplied = true // image.RGBA stores premultiplied components
	return p
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int { return p.width }

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int { return p.height }

// Bytes returns the raw pixel data (RGBA, row-major).
func (p *Pixmap) Bytes() []uint8 { return p.pix }

// Premultiplied reports whether the pixel data carries premultiplied alpha.
func (p *Pixmap) Premultiplied() bool { return p.premultiplied }

// SetPremultiplied marks the pixel data as premultiplied (or not). It does
// not convert the data.
func (p *Pixmap) SetPremultiplied(pma bool) { p.premultiplied = pma }

// SetPixel sets the color of a single pixel. Out-of-bounds coordinates are
// ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.pix[i+0] = clamp8(c.R * 255)
	p.pix[i+1] = clamp8(c.G * 255)
	p.pix[i+2] = clamp8(c.B * 255)
	p.pix[i+3] = clamp8(c.A * 255)
}

// Pixel returns the color of a single pixel. Out-of-bounds coordinates
// return Transparent.
func (p *Pixmap) Pixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: float64(p.pix[i+0]) / 255,
		G: float64(p.pix[i+1]) / 255,
		B: float64(p.pix[i+2]) / 255,
		A: float64(p.pix[i+3]) / 255,
	}
}

// Fill sets every pixel to the given color.
func (p *Pixmap) Fill(c RGBA) {
	r := clamp8(c.R * 255)
	g := clamp8(c.G * 255)
	b := clamp8(c.B * 255)
	a := clamp8(c.A * 255)
	for i := 0; i < len(p.pix); i += 4 {
		p.pix[i+0] = r
		p.pix[i+1] = g
		p.pix[i+2] = b
		p.pix[i+3] = a
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	c := NewPixmap(p.width, p.height)
	c.premultiplied = p.premultiplied
	copy(c.pix, p.pix)
	return c
}

// Scaled returns a bilinearly resampled copy of the pixmap at the given
// dimensions. Used to derive successive mip levels.
func (p *Pixmap) Scaled(width, height int) *Pixmap {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	src := &image.RGBA{Pix: p.pix, Stride: p.width * 4, Rect: image.Rect(0, 0, p.width, p.height)}
	out := NewPixmap(width, height)
	out.premultiplied = p.premultiplied
	dst := &image.RGBA{Pix: out.pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	xdraw.ApproxBiLinear.Scale(dst, dst.Rect, src, src.Rect, xdraw.Src, nil)
	return out
}

// ToImage converts the pixmap to an image.RGBA. The returned image shares
// memory with the pixmap.
func (p *Pixmap) ToImage() *image.RGBA {
	return &image.RGBA{Pix: p.pix, Stride: p.width * 4, Rect: image.Rect(0, 0, p.width, p.height)}
}

// Hash returns an FNV-1a hash of the pixel content. Two pixmaps with equal
// dimensions and equal bytes hash equally; used to verify content survives
// a device lose/restore cycle.
func (p *Pixmap) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write(p.pix) // fnv.Write never returns an error
	return h.Sum64()
}
