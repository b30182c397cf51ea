package jpegexif

import (
	"bytes"
	"encoding/base64"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/tajtiattila/jpegexif/exif"
	"github.com/tajtiattila/jpegexif/jpeg"
	"github.com/tajtiattila/jpegexif/testutil"
)

func TestPathFromURI(t *testing.T) {
	for _, tt := range []struct{ uri, path string }{
		{"file:///opt/usr/media/a.jpg", "/opt/usr/media/a.jpg"},
		{"  \tfile:///a.jpg", "/a.jpg"},
		{"/a.jpg", "/a.jpg"},
		{" /a b.jpg", "/a b.jpg"},
		{"http://host/a.jpg", "http://host/a.jpg"},
	} {
		if got := PathFromURI(tt.uri); got != tt.path {
			t.Errorf("PathFromURI(%q) = %q, want %q", tt.uri, got, tt.path)
		}
	}
}

func writeTemp(t *testing.T, name string, p []byte) string {
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, p, 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestLoadSaveFile(t *testing.T) {
	fn := writeTemp(t, "a.jpg", testutil.JPEG(t, 16, 16))
	uri := "file://" + fn

	info, err := LoadFile(uri)
	if err != nil {
		t.Fatal(err)
	}
	if info.URI() != uri {
		t.Errorf("uri is %q", info.URI())
	}
	if info.IsSet(AttrDeviceModel) {
		t.Error("model set in file without Exif")
	}

	info.SetDeviceModel("Saved")
	if err := info.SaveToFile(uri); err != nil {
		t.Fatal(err)
	}

	info, err = LoadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	if info.DeviceModel() != "Saved" {
		t.Errorf("model is %q", info.DeviceModel())
	}

	// save as another file leaves the source alone
	src, _ := os.ReadFile(fn)
	dst := filepath.Join(filepath.Dir(fn), "b.jpg")
	info.SetDeviceMaker("Other")
	if err := info.SaveToFileAs(fn, dst); err != nil {
		t.Fatal(err)
	}
	if now, _ := os.ReadFile(fn); !bytes.Equal(now, src) {
		t.Error("source changed by SaveToFileAs")
	}
	if info, err := LoadFile(dst); err != nil {
		t.Error(err)
	} else if info.DeviceMaker() != "Other" {
		t.Errorf("destination maker is %q", info.DeviceMaker())
	}

	if _, err := LoadFile(filepath.Join(filepath.Dir(fn), "missing.jpg")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error is %v", err)
	}
}

func TestSaveRestoresOnFailure(t *testing.T) {
	orig := testutil.JPEG(t, 16, 16)
	fn := writeTemp(t, "a.jpg", orig)

	defer func(f func(string, []byte, os.FileMode) error) { writeFile = f }(writeFile)
	failed := false
	writeFile = func(name string, p []byte, perm os.FileMode) error {
		if !failed {
			// leave a truncated file behind
			failed = true
			if err := os.WriteFile(name, p[:len(p)/2], perm); err != nil {
				return err
			}
			return errors.New("disk full")
		}
		return os.WriteFile(name, p, perm)
	}

	info := NewExifInformation()
	info.SetDeviceModel("Lost")
	err := info.SaveToFile(fn)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("SaveToFile error is %v", err)
	}

	got, err := os.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, orig) {
		t.Error("original file not restored")
	}
}

func TestSaveExifTooLarge(t *testing.T) {
	orig := testutil.JPEG(t, 16, 16)
	fn := writeTemp(t, "a.jpg", orig)

	info := NewExifInformation()
	if err := info.SetUserComment(UndefinedASCII, strings.Repeat("x", 70000)); err != nil {
		t.Fatal(err)
	}
	err := info.SaveToFile(fn)
	var tl *jpeg.ExifTooLargeError
	if !errors.As(err, &tl) {
		t.Fatalf("SaveToFile error is %v, want ExifTooLargeError", err)
	}

	got, err := os.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, orig) {
		t.Error("file changed")
	}
}

func TestSaveNotJPEG(t *testing.T) {
	fn := writeTemp(t, "a.jpg", []byte("GIF89a not a jpeg"))
	err := NewExifInformation().SaveToFile(fn)
	var fe *jpeg.FormatError
	if !errors.As(err, &fe) {
		t.Errorf("SaveToFile error is %v, want FormatError", err)
	}
}

func TestThumbnail(t *testing.T) {
	thumb := testutil.JPEG(t, 8, 8)

	x := exif.New()
	x.SetThumbnail(thumb)
	c, err := jpeg.Parse(testutil.JPEG(t, 64, 64))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetExif(x); err != nil {
		t.Fatal(err)
	}
	p, err := c.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	for _, tt := range []struct {
		name string
		typ  string
	}{
		{"a.jpg", "jpeg"},
		{"a.JPEG", "jpeg"},
		{"a.png", "png"},
		{"a.Gif", "gif"},
	} {
		uri := "file://" + writeTemp(t, tt.name, p)
		got, err := Thumbnail(uri)
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		pfx := "data:image/" + tt.typ + ";base64,"
		if !strings.HasPrefix(got, pfx) {
			t.Errorf("%s: thumbnail uri starts with %.30q", tt.name, got)
			continue
		}
		data, err := base64.StdEncoding.DecodeString(got[len(pfx):])
		if err != nil || !bytes.Equal(data, thumb) {
			t.Errorf("%s: thumbnail data differs (%v)", tt.name, err)
		}
	}

	if _, err := Thumbnail(writeTemp(t, "a.txt", p)); err == nil {
		t.Error("thumbnail of txt file")
	}
	if _, err := Thumbnail(writeTemp(t, "b.jpg", testutil.JPEG(t, 8, 8))); err == nil {
		t.Error("thumbnail of file without Exif")
	}

	// thumbnail survives attribute changes
	info, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	info.SetDeviceMaker("Maker")
	q, err := info.Apply(p)
	if err != nil {
		t.Fatal(err)
	}
	if got, err := ThumbnailBytes(q); err != nil || !bytes.Equal(got, thumb) {
		t.Errorf("thumbnail lost on save (%v)", err)
	}
}

func TestMediaFiles(t *testing.T) {
	for _, fn := range testutil.MediaFileNames(t) {
		p, err := os.ReadFile(fn)
		if err != nil {
			t.Error(err)
			continue
		}
		info, err := Load(p)
		if err != nil {
			t.Errorf("%s: %v", fn, err)
			continue
		}
		q, err := info.Apply(p)
		if err != nil {
			t.Errorf("%s: %v", fn, err)
			continue
		}
		got, err := Load(q)
		if err != nil {
			t.Errorf("%s: reload: %v", fn, err)
			continue
		}
		testInfoEqual(t, got, info)
	}
}
