package orient

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"github.com/tajtiattila/jpegexif"
)

// stored holds an asymmetric glyph as it is stored
// with each orientation. All of them display as stored[1].
var stored = map[jpegexif.Orientation]string{
	1: `
		###
		#--
		##-
		#--`,
	2: `
		###
		--#
		-##
		--#`,
	3: `
		--#
		-##
		--#
		###`,
	4: `
		#--
		##-
		#--
		###`,
	5: `
		####
		#-#-
		#---`,
	6: `
		#---
		#-#-
		####`,
	7: `
		---#
		-#-#
		####`,
	8: `
		####
		-#-#
		---#`,
}

func TestOrient(t *testing.T) {
	formats := []struct {
		name     string
		newImage func(r image.Rectangle) draw.Image
	}{
		{"RGBA", func(r image.Rectangle) draw.Image { return image.NewRGBA(r) }},
		{"Gray", func(r image.Rectangle) draw.Image { return image.NewGray(r) }},
		{"NRGBA offset", func(r image.Rectangle) draw.Image {
			return image.NewNRGBA(r.Add(image.Pt(-7, 13)))
		}},
	}

	for _, f := range formats {
		want := glyphImage(t, jpegexif.OrientationNormal, f.newImage)
		for o := jpegexif.OrientationFlipHorizontal; o <= jpegexif.OrientationRotate270; o++ {
			src := glyphImage(t, o, f.newImage)
			got := Orient(src, o)
			if got.Bounds().Min != (image.Point{}) {
				t.Errorf("%s %v: result origin is %v", f.name, o, got.Bounds().Min)
			}
			if err := sameImage(got, want); err != nil {
				t.Errorf("%s %v: %v", f.name, o, err)
			}

			wantt := src.Bounds().Dx() == want.Bounds().Dy()
			if gott := IsTranspose(o); wantt != gott {
				t.Errorf("IsTranspose(%v) reports %v, want %v", o, gott, wantt)
			}
		}
	}
}

func TestOrientUnchanged(t *testing.T) {
	im := image.NewGray(image.Rect(0, 0, 3, 2))
	for _, o := range []jpegexif.Orientation{jpegexif.OrientationNotValid, 0, jpegexif.OrientationNormal, 9} {
		if got := Orient(im, o); got != image.Image(im) {
			t.Errorf("Orient with %d returned a new image", o)
		}
	}
}

// glyphImage draws stored[o] scaled up, with each
// glyph cell as a square of pixels.
func glyphImage(t *testing.T, o jpegexif.Orientation, f func(image.Rectangle) draw.Image) image.Image {
	s, ok := stored[o]
	if !ok {
		t.Fatal("no glyph for", o)
	}
	rows := strings.Fields(s)

	const scale = 5
	im := f(image.Rect(0, 0, len(rows[0])*scale, len(rows)*scale))
	b := im.Bounds()

	ink := color.RGBA{0, 0, 255, 255}
	paper := color.RGBA{255, 255, 200, 255}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.Color(paper)
			switch rows[y/scale][x/scale] {
			case '#':
				c = ink
			case '-':
			default:
				t.Fatalf("invalid glyph cell in %v", o)
			}
			im.Set(b.Min.X+x, b.Min.Y+y, c)
		}
	}
	return im
}

func sameImage(got, want image.Image) error {
	gb, wb := got.Bounds(), want.Bounds()
	if gb.Size() != wb.Size() {
		return fmt.Errorf("sizes differ: got %v want %v", gb.Size(), wb.Size())
	}
	sz := gb.Size()
	for y := 0; y < sz.Y; y++ {
		for x := 0; x < sz.X; x++ {
			gc, wc := got.At(gb.Min.X+x, gb.Min.Y+y), want.At(wb.Min.X+x, wb.Min.Y+y)
			gr, gg, gbl, ga := gc.RGBA()
			wr, wg, wbl, wa := wc.RGBA()
			if gr != wr || gg != wg || gbl != wbl || ga != wa {
				return fmt.Errorf("pixel at %d,%d differ: got %v want %v", x, y, gc, wc)
			}
		}
	}
	return nil
}
