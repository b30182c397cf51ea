package jpegexif

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tajtiattila/jpegexif/jpeg"
)

const uriPrefix = "file://"

// PathFromURI returns the file path for uri.
// Leading white space and a "file://" prefix are removed.
func PathFromURI(uri string) string {
	p := strings.TrimLeftFunc(uri, unicode.IsSpace)
	return strings.TrimPrefix(p, uriPrefix)
}

// writeFile is replaced in tests.
var writeFile = os.WriteFile

// LoadFile returns the attributes of the JPEG file at uri,
// with AttrURI set to uri.
func LoadFile(uri string) (*ExifInformation, error) {
	path := PathFromURI(uri)
	p, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}
	info, err := Load(p)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	info.SetURI(uri)
	return info, nil
}

// SaveToFile stores the attributes of info in the JPEG file at uri.
//
// If writing the file fails, its original content
// is written back before the error is returned.
func (info *ExifInformation) SaveToFile(uri string) error {
	return info.SaveToFileAs(uri, uri)
}

// SaveToFileAs stores the attributes of info in the JPEG file
// at srcURI, and writes the result to dstURI.
func (info *ExifInformation) SaveToFileAs(srcURI, dstURI string) error {
	src, dst := PathFromURI(srcURI), PathFromURI(dstURI)

	fi, err := os.Stat(src)
	if err != nil {
		return errors.Wrap(err, "stat")
	}
	orig, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrap(err, "read")
	}

	p, err := info.Apply(orig)
	if err != nil {
		return errors.Wrapf(err, "save %s", src)
	}

	if err := writeFile(dst, p, fi.Mode().Perm()); err != nil {
		if sameFile(src, dst) {
			if rerr := writeFile(src, orig, fi.Mode().Perm()); rerr != nil {
				log.Error().Err(rerr).Str("path", src).Msg("restoring original file failed")
			} else {
				log.Warn().Str("path", src).Msg("original file restored")
			}
		}
		return errors.Wrap(err, "write")
	}
	return nil
}

func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	fa, err := os.Stat(a)
	if err != nil {
		return false
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(fa, fb)
}

// thumbnailTypes maps file extensions to
// the image types of thumbnail data URIs.
var thumbnailTypes = map[string]string{
	"jpg":  "jpeg",
	"jpeg": "jpeg",
	"png":  "png",
	"gif":  "gif",
}

// ThumbnailBytes returns the Exif thumbnail of the JPEG file in p.
func ThumbnailBytes(p []byte) ([]byte, error) {
	c, err := jpeg.Parse(p)
	if err != nil {
		return nil, err
	}
	x := c.Exif()
	if x == nil || len(x.Thumb) == 0 {
		return nil, errors.New("file has no thumbnail")
	}
	return x.Thumb, nil
}

// Thumbnail returns the Exif thumbnail of the file at uri as a data URI.
//
// Only files with jpg, jpeg, png or gif extensions are accepted.
// The image type of the data URI follows the file extension.
func Thumbnail(uri string) (string, error) {
	path := PathFromURI(uri)

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	typ, ok := thumbnailTypes[ext]
	if !ok {
		return "", errors.Errorf("thumbnail: unsupported extension %q (jpeg/jpg/png/gif is supported)", ext)
	}

	p, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "thumbnail")
	}
	thumb, err := ThumbnailBytes(p)
	if err != nil {
		return "", errors.Wrapf(err, "thumbnail %s", path)
	}
	return "data:image/" + typ + ";base64," + base64.StdEncoding.EncodeToString(thumb), nil
}
