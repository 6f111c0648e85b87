// Package storage turns uploaded photos into web-sized WebP files and
// stores them in S3 compatible blob storage.
package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxWidth = 1600
	DefaultQuality  = 80
)

type Transcoder struct {
	MaxWidth int
	Quality  float32
}

func NewTranscoder() Transcoder {
	return Transcoder{MaxWidth: DefaultMaxWidth, Quality: DefaultQuality}
}

// ToWebP decodes a jpeg, png or webp image, scales it down to MaxWidth
// keeping the aspect ratio, and encodes it as lossy WebP.
func (t Transcoder) ToWebP(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img := t.fit(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: t.Quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func (t Transcoder) fit(src image.Image) image.Image {
	b := src.Bounds()
	if t.MaxWidth <= 0 || b.Dx() <= t.MaxWidth {
		return src
	}

	h := b.Dy() * t.MaxWidth / b.Dx()
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, t.MaxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
