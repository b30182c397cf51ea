// Package testutil provides JPEG files for tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MediaRoot returns the directory of external test media.
// It is read from the MEDIA_TEST environment variable, or
// the test-media repository is looked up within GOPATH.
// The test is skipped if neither is found.
func MediaRoot(t testing.TB) string {
	if v := os.Getenv("MEDIA_TEST"); v != "" {
		if s, err := os.Stat(v); err != nil || !s.IsDir() {
			t.Skipf("MEDIA_TEST %q is not a directory", v)
		}
		return v
	}
	const testMedia = "github.com/tajtiattila/test-media"
	for _, x := range filepath.SplitList(os.Getenv("GOPATH")) {
		p := filepath.Join(x, "src", testMedia)
		if s, err := os.Stat(p); err == nil && s.IsDir() {
			return p
		}
	}
	t.Skip("test media not found")
	return ""
}

// MediaFileNames returns the paths of JPEG files within MediaRoot.
func MediaFileNames(t testing.TB) []string {
	root := MediaRoot(t)

	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".jpg", ".jpeg":
			if info.Mode().IsRegular() {
				files = append(files, path)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(files) == 0 {
		t.Skip("no test files found")
	}
	return files
}

// Image returns an image with a red square in a white frame.
func Image(dx, dy int) *image.RGBA {
	border := dx / 4
	if b := dy / 4; b < border {
		border = b
	}
	im := image.NewRGBA(image.Rect(0, 0, dx, dy))
	for x := 0; x < dx; x++ {
		for y := 0; y < dy; y++ {
			var c color.RGBA
			if x < border || dx-border <= x ||
				y < border || dy-border <= y {
				c = color.RGBA{255, 255, 255, 255}
			} else {
				c = color.RGBA{255, 0, 0, 255}
			}
			im.Set(x, y, c)
		}
	}
	return im
}

// JPEG returns Image(dx, dy) encoded as a JPEG file.
func JPEG(t testing.TB, dx, dy int) []byte {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, Image(dx, dy), nil); err != nil {
		t.Fatal("image encode:", err)
	}
	return buf.Bytes()
}

// InsertSegment returns a copy of the JPEG file p with a segment
// of marker and data inserted after the start of image.
func InsertSegment(p []byte, marker byte, data []byte) []byte {
	n := len(data) + 2
	seg := []byte{0xff, marker, byte(n >> 8), byte(n)}

	q := make([]byte, 0, len(p)+len(seg)+len(data))
	q = append(q, p[:2]...)
	q = append(q, seg...)
	q = append(q, data...)
	return append(q, p[2:]...)
}
