// Package orient displays images stored with an Exif orientation.
package orient

import (
	"image"

	"github.com/tajtiattila/jpegexif"
)

// IsTranspose reports whether o swaps the width and height of an image.
func IsTranspose(o jpegexif.Orientation) bool {
	return o >= jpegexif.OrientationTranspose && o <= jpegexif.OrientationRotate270
}

// Orient returns im as it should be displayed
// when it was stored with orientation o.
//
// The result is a new image with its origin at 0,0 when
// o is valid and not OrientationNormal, otherwise im itself.
func Orient(im image.Image, o jpegexif.Orientation) image.Image {
	if !o.Valid() || o == jpegexif.OrientationNormal {
		return im
	}

	sb := im.Bounds()
	w, h := sb.Dx(), sb.Dy()
	dw, dh := w, h
	if IsTranspose(o) {
		dw, dh = h, w
	}

	src := srcFunc(o, w, h)
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			sx, sy := src(x, y)
			dst.Set(x, y, im.At(sb.Min.X+sx, sb.Min.Y+sy))
		}
	}
	return dst
}

// srcFunc returns the mapping from a displayed pixel
// to its stored position in a w×h image.
func srcFunc(o jpegexif.Orientation, w, h int) func(x, y int) (int, int) {
	switch o {
	case jpegexif.OrientationFlipHorizontal:
		return func(x, y int) (int, int) { return w - 1 - x, y }
	case jpegexif.OrientationRotate180:
		return func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }
	case jpegexif.OrientationFlipVertical:
		return func(x, y int) (int, int) { return x, h - 1 - y }
	case jpegexif.OrientationTranspose:
		return func(x, y int) (int, int) { return y, x }
	case jpegexif.OrientationRotate90:
		return func(x, y int) (int, int) { return y, h - 1 - x }
	case jpegexif.OrientationTransverse:
		return func(x, y int) (int, int) { return w - 1 - y, h - 1 - x }
	case jpegexif.OrientationRotate270:
		return func(x, y int) (int, int) { return w - 1 - y, x }
	}
	return func(x, y int) (int, int) { return x, y }
}

