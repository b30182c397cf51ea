package jpeg

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tajtiattila/jpegexif/exif"
)

var jpegExifPfx = []byte("Exif\x00\x00")

// markerLookahead is the number of bytes searched
// for a marker after a 0xff byte.
const markerLookahead = 10

// Segment is a part of a JPEG file.
//
// Raw, Data and Image refer to the source bytes
// and must not be modified.
type Segment struct {
	Marker byte

	// Offset of Raw within the source, or -1 for segments
	// created by Container.SetExif.
	Offset int

	// Fill is the number of 0xff fill bytes before the marker.
	Fill int

	// Raw holds the fill bytes, the marker, the length
	// field and Data exactly as found in the source.
	Raw []byte

	// Data is the payload without marker and length.
	Data []byte

	// Image is the entropy coded data after a start of scan.
	Image []byte
}

// Container holds the segments of a JPEG file.
type Container struct {
	src      []byte
	segments []Segment
	padding  []byte

	exifIndex int // index of the Exif segment, or -1
	exif      *exif.Exif
	replaced  bool // exif must be encoded on output
}

// Parse scans the JPEG file in p into segments.
//
// APP1 segments that can't be decoded as Exif are kept as
// opaque data. Only the first Exif segment is used, the others
// are kept as opaque data as well.
//
// Bytes after the end of image marker are kept as padding.
// A file that ends without an end of image marker is accepted.
//
// The returned Container refers to p, which must not be
// modified while the Container is in use.
func Parse(p []byte) (*Container, error) {
	c := &Container{src: p, exifIndex: -1}

	offset := 0
	for offset < len(p) {
		seg, next, err := scanSegment(p, offset)
		if err != nil {
			return nil, err
		}
		if len(c.segments) == 0 && seg.Marker != SOI {
			return nil, &FormatError{Offset: offset, Msg: ErrNoSOI.Error(), Err: ErrNoSOI}
		}
		offset = next

		switch seg.Marker {
		case APP1:
			c.checkExif(seg, len(c.segments))

		case SOS:
			rest := p[offset:]
			if i := bytes.Index(rest, []byte{0xff, EOI}); i >= 0 {
				seg.Image = rest[:i]
			} else {
				log.Warn().Int("offset", offset).Msg("jpeg: image data has no end of image marker")
				seg.Image = rest
			}
			offset += len(seg.Image)
		}

		log.Debug().
			Str("marker", MarkerName(seg.Marker)).
			Int("offset", seg.Offset).
			Int("size", len(seg.Data)).
			Int("image", len(seg.Image)).
			Msg("jpeg: segment")

		c.segments = append(c.segments, seg)

		if seg.Marker == EOI {
			c.padding = p[offset:]
			if len(c.padding) != 0 {
				log.Debug().Int("offset", offset).Int("size", len(c.padding)).Msg("jpeg: padding after end of image")
			}
			break
		}
	}

	if len(c.segments) == 0 {
		return nil, &FormatError{Offset: 0, Msg: ErrNoSOI.Error(), Err: ErrNoSOI}
	}

	return c, nil
}

// scanSegment scans the segment starting at offset,
// and returns it with the offset of the following byte.
func scanSegment(p []byte, offset int) (seg Segment, next int, err error) {
	if p[offset] != 0xff {
		return seg, 0, formatError(offset, "expected marker, found %#02x", p[offset])
	}

	// skip fill bytes
	i := offset + 1
	for i < len(p) && p[i] == 0xff {
		i++
		if i-offset > markerLookahead {
			return seg, 0, formatError(offset, "no marker within %d bytes", markerLookahead)
		}
	}
	if i == len(p) {
		return seg, 0, formatError(offset, "truncated marker")
	}

	m := p[i]
	if m < 0xc0 {
		return seg, 0, formatError(i, "invalid marker %#02x", m)
	}

	seg = Segment{
		Marker: m,
		Offset: offset,
		Fill:   i - 1 - offset,
	}
	next = i + 1

	if hasLength(m) {
		if len(p) < next+2 {
			return seg, 0, formatError(next, "truncated %s length", MarkerName(m))
		}
		l := int(p[next])<<8 | int(p[next+1])
		if l < 2 {
			return seg, 0, formatError(next, "invalid %s length %d", MarkerName(m), l)
		}
		if len(p) < next+l {
			return seg, 0, formatError(next, "%s length %d exceeds file size %d", MarkerName(m), l, len(p))
		}
		seg.Data = p[next+2 : next+l]
		next += l
	}

	seg.Raw = p[offset:next]
	return seg, next, nil
}

func (c *Container) checkExif(seg Segment, index int) {
	if !bytes.HasPrefix(seg.Data, jpegExifPfx) {
		log.Debug().Int("offset", seg.Offset).Msg("jpeg: APP1 segment without Exif")
		return
	}

	x, err := exif.DecodeBytes(seg.Data[len(jpegExifPfx):])
	if err != nil {
		log.Warn().Err(err).Int("offset", seg.Offset).Msg("jpeg: keeping APP1 segment with corrupt Exif as is")
		return
	}

	if c.exifIndex != -1 {
		log.Warn().Int("offset", seg.Offset).Msg("jpeg: ignoring additional Exif segment")
		return
	}

	c.exifIndex = index
	c.exif = x
}

// Segments returns the segments of c.
func (c *Container) Segments() []Segment {
	return c.segments
}

// Padding returns the bytes found after the end of image marker.
func (c *Container) Padding() []byte {
	return c.padding
}

// Source returns the bytes c was parsed from.
func (c *Container) Source() []byte {
	return c.src
}

// Exif returns the Exif of c, or nil if c has no Exif.
func (c *Container) Exif() *exif.Exif {
	return c.exif
}

// SetExif sets the Exif of c.
//
// The Exif segment is replaced. If c has no Exif segment,
// a new one is inserted after the start of image.
// The Exif is encoded when c is written.
func (c *Container) SetExif(x *exif.Exif) error {
	if x == nil {
		return errors.New("jpeg: SetExif called with nil Exif")
	}

	if len(c.segments) == 0 || c.segments[0].Marker != SOI {
		return &FormatError{Offset: 0, Msg: "can't set Exif: " + ErrNoSOI.Error(), Err: ErrNoSOI}
	}

	if c.exifIndex == -1 {
		c.segments = append(c.segments, Segment{})
		copy(c.segments[2:], c.segments[1:])
		c.segments[1] = Segment{Marker: APP1, Offset: -1}
		c.exifIndex = 1
	}

	c.exif = x
	c.replaced = true
	return nil
}

// Bytes returns the file represented by c.
//
// All segments are copied from the source, except
// the Exif segment if it has been set with SetExif.
func (c *Container) Bytes() ([]byte, error) {
	var exifData []byte
	if c.replaced {
		var err error
		if exifData, err = encodeExif(c.exif); err != nil {
			return nil, err
		}
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(c.src)+len(exifData)))
	for i, seg := range c.segments {
		if i == c.exifIndex && c.replaced {
			buf.Write(seg.Raw[:seg.Fill])
			if err := WriteChunk(buf, APP1, exifData); err != nil {
				return nil, err
			}
			continue
		}
		buf.Write(seg.Raw)
		buf.Write(seg.Image)
	}
	buf.Write(c.padding)

	return buf.Bytes(), nil
}

// WriteTo writes the file represented by c to w.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	p, err := c.Bytes()
	if err != nil {
		return 0, err
	}
	ew := errw{w: w}
	ew.write(p)
	return ew.n, ew.err
}

// encodeExif returns the APP1 payload for x.
func encodeExif(x *exif.Exif) ([]byte, error) {
	raw, err := x.EncodeBytes()
	if err != nil {
		return nil, errors.Wrap(err, "jpeg: encode Exif")
	}

	n := len(jpegExifPfx) + len(raw)
	if n > MaxExifSize {
		return nil, &ExifTooLargeError{Size: n}
	}

	p := make([]byte, 0, n)
	p = append(p, jpegExifPfx...)
	return append(p, raw...), nil
}

// Fdump writes the segments of c to w.
func (c *Container) Fdump(w io.Writer) {
	fmt.Fprintf(w, "%d bytes, %d segments\n", len(c.Source()), len(c.segments))
	for i, seg := range c.segments {
		var note string
		if i == c.exifIndex {
			note = " Exif"
		}
		fmt.Fprintf(w, "%8d %-5s %6d%s\n", seg.Offset, MarkerName(seg.Marker), len(seg.Data), note)
		if seg.Image != nil {
			fmt.Fprintf(w, "%8s %-5s %6d\n", "", "data", len(seg.Image))
		}
	}
	if len(c.padding) != 0 {
		fmt.Fprintf(w, "%8s %-5s %6d\n", "", "pad", len(c.padding))
	}
}
