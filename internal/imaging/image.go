package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DataURIPrefix is prepended to every encoded thumbnail.
const DataURIPrefix = "data:image/jpeg;base64,"

var ErrDecode = errors.New("decode image")

// Decode interprets data as any registered image format.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// Fit returns the dimensions of a w×h image downscaled so that its larger
// side is at most limit. Images already within bounds are unchanged; the
// smaller side is scaled by the same ratio and rounded to the nearest
// pixel, never below 1.
func Fit(w, h, limit int) (int, int) {
	if w <= 0 || h <= 0 || limit <= 0 {
		return w, h
	}
	if w > h {
		if w > limit {
			return limit, scaleSide(h, limit, w)
		}
		return w, h
	}
	if h > limit {
		return scaleSide(w, limit, h), limit
	}
	return w, h
}

func scaleSide(side, limit, larger int) int {
	s := int(math.Round(float64(side) * float64(limit) / float64(larger)))
	if s < 1 {
		return 1
	}
	return s
}

// Shrink draws img onto a new canvas sized by Fit. Images that already fit
// are still copied so the result is always an *image.RGBA.
func Shrink(img image.Image, limit int) *image.RGBA {
	b := img.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), limit)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode serializes img as JPEG at the given quality and wraps it in a
// data URI.
func Encode(img image.Image, quality int) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return DataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURI reverses Encode, returning the embedded image.
func DecodeDataURI(uri string) (image.Image, error) {
	if len(uri) < len(DataURIPrefix) || uri[:len(DataURIPrefix)] != DataURIPrefix {
		return nil, fmt.Errorf("%w: not a jpeg data uri", ErrDecode)
	}
	raw, err := base64.StdEncoding.DecodeString(uri[len(DataURIPrefix):])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return Decode(raw)
}
