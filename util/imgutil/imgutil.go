package imgutil

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	"github.com/sagan/respimg/constants"
)

// Open sniffs the file contents and decodes it as an image.
// jpeg / png / gif / webp / bmp / tiff are supported.
// If autoOrient is true, EXIF orientation of jpeg files is applied.
func Open(path string, autoOrient bool) (image.Image, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("unsupported content type %s", mtype.String())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := imaging.Decode(f, imaging.AutoOrientation(autoOrient))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", mtype.String(), err)
	}
	return img, nil
}

// EffectiveWidth returns the width to resize a srcWidth wide image to for target width,
// according to upscale policy. ok is false if no artifact should be produced.
func EffectiveWidth(srcWidth int, target int, policy string) (width int, ok bool) {
	if target <= srcWidth {
		return target, true
	}
	switch policy {
	case constants.UPSCALE_SKIP:
		return 0, false
	case constants.UPSCALE_CLAMP:
		return srcWidth, true
	default:
		return target, true
	}
}

// ResizeToWidth resizes img to width using Lanczos filter. Height is derived from the aspect ratio and rounded.
func ResizeToWidth(img image.Image, width int) *image.NRGBA {
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// EncodeWebp writes img to w as lossy webp of quality (1-100).
func EncodeWebp(w io.Writer, img image.Image, quality int) error {
	if err := webp.Encode(w, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return fmt.Errorf("error encoding to webp: %w", err)
	}
	return nil
}

// ResizeAndEncode resizes img to width and returns the encoded webp data and resized bounds.
func ResizeAndEncode(img image.Image, width int, quality int) (data []byte, bounds image.Rectangle, err error) {
	resized := ResizeToWidth(img, width)
	var buf bytes.Buffer
	if err = EncodeWebp(&buf, resized, quality); err != nil {
		return nil, bounds, err
	}
	return buf.Bytes(), resized.Bounds(), nil
}
