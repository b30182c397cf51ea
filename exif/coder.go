package exif

import (
	"encoding/binary"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// sub-IFD pointers
	ifd0exifSub    = 0x8769
	ifd0gpsSub     = 0x8825
	exifInteropSub = 0xa005

	// other data
	ifd1thumbOffset = 0x201
	ifd1thumbLength = 0x202

	// size of the Tiff header
	headerLen = 8

	// maximum number of chained IFDs decoded (IFD0 and IFD1)
	maxChain = 2
)

var (
	ErrCorruptHeader = errors.New("exif: corrupt header")
	ErrCorruptDir    = errors.New("exif: corrupt IFD")
	ErrCorruptTag    = errors.New("exif: corrupt IFD tag")

	// ErrTooLong is returned if the encoded Exif would not fit in a Tiff file.
	ErrTooLong = errors.New("exif: encoded length too long")
)

// DecodeBytes decodes the raw Exif data from p.
// The data starts with the Tiff header.
func DecodeBytes(p []byte) (*Exif, error) {
	if len(p) < headerLen {
		return nil, errors.Wrap(ErrCorruptHeader, "header too short")
	}

	var bo binary.ByteOrder
	switch {
	case p[0] == 'M' && p[1] == 'M':
		bo = binary.BigEndian
	case p[0] == 'I' && p[1] == 'I':
		bo = binary.LittleEndian
	default:
		return nil, errors.Wrapf(ErrCorruptHeader, "invalid byte order %q", p[:2])
	}

	if bo.Uint16(p[2:]) != 42 {
		return nil, errors.Wrap(ErrCorruptHeader, "invalid magic")
	}

	// location of IFD0 offset
	offset := 4

	var d []Dir
	for len(d) < maxChain {
		ptr := int64(bo.Uint32(p[offset:]))
		if ptr == 0 {
			break
		}
		var dir Dir
		var next int
		var err error
		if ptr < headerLen || int64(len(p)) < ptr {
			err = errors.Wrapf(ErrCorruptDir, "offset %d", ptr)
		} else {
			dir, next, err = decodeDir(bo, p, int(ptr))
		}
		if err != nil {
			if len(d) > 0 {
				// keep IFD0 if only the thumbnail IFD is broken
				log.Debug().Err(err).Msg("exif: dropping IFD1")
				break
			}
			return nil, errors.Wrapf(err, "IFD%d", len(d))
		}
		d = append(d, dir)
		offset = next
	}

	x := &Exif{ByteOrder: bo}
	if len(d) > 0 {
		x.IFD0 = d[0]
	}
	if len(d) > 1 {
		x.IFD1 = d[1]
	}

	var err error
	if x.Exif, err = decodeSub(bo, p, x.IFD0, ifd0exifSub); err != nil {
		log.Warn().Err(err).Msg("exif: dropping Exif IFD")
		x.Exif = nil
		x.IFD0.Remove(ifd0exifSub)
	}
	if x.GPS, err = decodeSub(bo, p, x.IFD0, ifd0gpsSub); err != nil {
		log.Warn().Err(err).Msg("exif: dropping GPS IFD")
		x.GPS = nil
		x.IFD0.Remove(ifd0gpsSub)
	}
	if x.Interop, err = decodeSub(bo, p, x.Exif, exifInteropSub); err != nil {
		// Interop is not used by this package
		log.Debug().Err(err).Msg("exif: dropping Interop IFD")
		x.Interop = nil
		x.Exif.Remove(exifInteropSub)
	}

	// Preserve raw thumb data
	tofs, tlen, ok := getOffsetLen(bo, x.IFD1, ifd1thumbOffset, ifd1thumbLength)
	if ok && 0 <= tofs && 0 <= tlen && tofs+tlen <= len(p) {
		x.Thumb = make([]byte, tlen)
		copy(x.Thumb, p[tofs:tofs+tlen])
	}

	return x, nil
}

// decodeSub decodes the sub-IFD referenced by tag within parent.
func decodeSub(bo binary.ByteOrder, p []byte, parent Dir, tag uint16) (Dir, error) {
	e := parent.Tag(tag)
	if e == nil {
		return nil, nil
	}
	if (e.Type != TypeLong && e.Type != TypeUndef) || len(e.Value) != 4 {
		// pointer must be a long
		return nil, errors.Wrapf(ErrCorruptTag, "pointer %#04x", tag)
	}
	ptr := int64(bo.Uint32(e.Value))
	if ptr < headerLen || int64(len(p)) < ptr {
		return nil, errors.Wrapf(ErrCorruptTag, "pointer %#04x to %d", tag, ptr)
	}
	d, _, err := decodeDir(bo, p, int(ptr))
	return d, err
}

// EncodeBytes encodes Exif data as a byte slice
// starting with the Tiff header.
//
// Sub-IFD pointers are added or removed according to
// the sub-IFDs present in x. IFD1 is written only if
// there is a thumbnail and IFD1 has the fields to locate it.
func (x *Exif) EncodeBytes() ([]byte, error) {
	bo := x.ByteOrder

	var magic [2]byte
	switch bo {
	case binary.BigEndian:
		magic = [2]byte{'M', 'M'}
	case binary.LittleEndian:
		magic = [2]byte{'I', 'I'}
	default:
		return nil, errors.Wrap(ErrCorruptHeader, "byte order not set")
	}

	interop := x.Interop
	exif := withPointer(x.Exif, exifInteropSub, len(interop) != 0)
	gps := x.GPS

	ifd0 := withPointer(x.IFD0, ifd0exifSub, len(exif) != 0)
	ifd0 = withPointer(ifd0, ifd0gpsSub, len(gps) != 0)

	// perpare thumb
	ifd1, thumb := x.IFD1.clone(), x.Thumb
	if len(thumb) == 0 || !putOffsetLen(bo, ifd1, ifd1thumbOffset, ifd1thumbLength, 0, 0) {
		// can't write thumb
		ifd1, thumb = nil, nil
	}

	// calculate layout
	offset := headerLen
	place := func(d Dir) int {
		if len(d) == 0 {
			return 0
		}
		o := offset
		offset += d.encodedLen()
		return o
	}
	ifd0ofs := offset
	offset += ifd0.encodedLen()
	ifd1ofs := place(ifd1)
	exifofs := place(exif)
	gpsofs := place(gps)
	interopofs := place(interop)
	thumbofs := offset
	offset += len(thumb)

	if offset > 1<<32-1 {
		return nil, ErrTooLong
	}

	// set pointers
	putFieldOfs(bo, ifd0.Tag(ifd0exifSub), exifofs)
	putFieldOfs(bo, ifd0.Tag(ifd0gpsSub), gpsofs)
	putFieldOfs(bo, exif.Tag(exifInteropSub), interopofs)
	if len(thumb) != 0 {
		putOffsetLen(bo, ifd1, ifd1thumbOffset, ifd1thumbLength, thumbofs, len(thumb))
	}

	p := make([]byte, offset)

	// write header
	copy(p, magic[:])
	bo.PutUint16(p[2:], 42)
	bo.PutUint32(p[4:], uint32(ifd0ofs))

	ifd0.encode(bo, p, ifd0ofs, ifd1ofs)
	for _, sub := range []struct {
		d   Dir
		ofs int
	}{
		{ifd1, ifd1ofs},
		{exif, exifofs},
		{gps, gpsofs},
		{interop, interopofs},
	} {
		if len(sub.d) != 0 {
			sub.d.encode(bo, p, sub.ofs, 0)
		}
	}

	copy(p[thumbofs:], thumb)

	return p, nil
}

// withPointer returns a copy of d with the sub-IFD pointer tag
// present or absent. The value of the pointer is set during encoding.
func withPointer(d Dir, tag uint16, present bool) Dir {
	d = d.clone()
	if !present {
		d.Remove(tag)
		return d
	}
	*d.EnsureTag(tag) = Entry{
		Tag:   tag,
		Type:  TypeLong,
		Count: 1,
		Value: make([]byte, 4),
	}
	return d
}

// Dir represents an Image File Directory (IFD) within Exif.
// It is a directory of raw tagged fields, also named entries.
type Dir []Entry

// decodeDir decodes the IFD at offset. It returns the offset
// of the next IFD pointer after the entries.
func decodeDir(bo binary.ByteOrder, p []byte, offset int) (Dir, int, error) {
	if len(p) < offset+2 {
		return nil, 0, errors.Wrapf(ErrCorruptDir, "entry count at %d", offset)
	}
	ntags := int(bo.Uint16(p[offset:]))
	offset += 2

	if len(p) < offset+12*ntags+4 {
		return nil, 0, errors.Wrapf(ErrCorruptDir, "%d entries at %d", ntags, offset)
	}

	var tags []Entry
	for i := 0; i < ntags; i++ {
		// decode entry header
		tag := bo.Uint16(p[offset:])
		typ := bo.Uint16(p[offset+2:])
		count := bo.Uint32(p[offset+4:])
		valuebits := p[offset+8 : offset+12]
		offset += 12

		nbytes := typeSize(typ, count)
		if nbytes < 0 {
			// unknown types should be skipped by readers
			log.Debug().Uint16("tag", tag).Uint16("type", typ).Msg("exif: skipping entry of unknown type")
			continue
		}

		// If value doesn't fit in tag header,
		// then it is an offset from the start
		// of the tiff header (EXIF 2.2 §4.6.2).
		if nbytes > 4 {
			valueoffset := int64(bo.Uint32(valuebits))
			if int64(len(p)) < valueoffset+int64(nbytes) {
				return nil, 0, errors.Wrapf(ErrCorruptTag, "tag %#04x value at %d", tag, valueoffset)
			}
			valuebits = p[valueoffset : valueoffset+int64(nbytes)]
		} else {
			valuebits = valuebits[:nbytes]
		}

		// make a copy of the value for the tag
		value := make([]byte, len(valuebits))
		copy(value, valuebits)

		tags = append(tags, Entry{
			Tag:   tag,
			Type:  typ,
			Count: count,
			Value: value,
		})
	}

	// Tags should appear sorted according to TIFF 6.0,
	// and it will help in searching as well.
	d := Dir(tags)
	d.Sort()

	return d, offset, nil
}

// encodedLen returns the length of d with its data,
// including the next IFD pointer.
func (d Dir) encodedLen() int {
	n := 2 + len(d)*12 + 4
	for _, t := range d {
		if len(t.Value) > 4 {
			n += wordAlign(len(t.Value))
		}
	}
	return n
}

// encode writes d at offset, followed by the data of its entries.
func (d Dir) encode(bo binary.ByteOrder, p []byte, offset, next int) {
	// offset for data outside tag header
	dataoffset := offset + 2 + len(d)*12 + 4

	bo.PutUint16(p[offset:], uint16(len(d)))
	offset += 2

	for _, t := range d {
		bo.PutUint16(p[offset:], t.Tag)
		bo.PutUint16(p[offset+2:], t.Type)
		bo.PutUint32(p[offset+4:], t.Count)
		if len(t.Value) <= 4 {
			copy(p[offset+8:offset+12], t.Value)
		} else {
			bo.PutUint32(p[offset+8:], uint32(dataoffset))
			copy(p[dataoffset:], t.Value)
			dataoffset += wordAlign(len(t.Value))
		}
		offset += 12
	}

	bo.PutUint32(p[offset:], uint32(next))
}

func wordAlign(n int) int {
	return (n + 1) &^ 1
}

func (d Dir) clone() Dir {
	if d == nil {
		return nil
	}
	c := make(Dir, len(d))
	for i, e := range d {
		e.Value = append([]byte(nil), e.Value...)
		c[i] = e
	}
	return c
}

// Sort sorts entries according to tag values, as needed by Tag() and Index().
//
// Tags should appear sorted according to TIFF 6.0, therefore
// the functions of this package keep Dirs always sorted.
func (d Dir) Sort() {
	sort.Stable(dirSort(d))
}

// Tag returns a pointer to the Entry with tag t, or nil if t does not exist.
func (d Dir) Tag(t uint16) *Entry {
	i := d.Index(t)
	if i != -1 {
		return &d[i]
	}
	return nil
}

// Index returns the index of tag t, or -1 if t does not exist in d.
func (d Dir) Index(t uint16) int {
	i := sort.Search(len(d), func(i int) bool {
		return t <= d[i].Tag
	})
	if i == len(d) || d[i].Tag != t {
		return -1
	}
	return i
}

// EnsureTag returns a pointer to the Entry with tag t.
//
// An empty Entry with no Type or Count is created if t does not exist in d.
func (d *Dir) EnsureTag(t uint16) *Entry {
	i := sort.Search(len(*d), func(i int) bool {
		return t <= (*d)[i].Tag
	})
	switch {
	case i == len(*d):
		*d = append(*d, Entry{Tag: t})
	case (*d)[i].Tag != t:
		*d = append(*d, Entry{})
		copy((*d)[i+1:], (*d)[i:])
		(*d)[i] = Entry{Tag: t}
	}
	return &(*d)[i]
}

// Remove removes t from d.
func (d *Dir) Remove(t uint16) {
	i := d.Index(t)
	if i == -1 {
		return
	}

	copy((*d)[i:], (*d)[i+1:])
	*d = (*d)[:len(*d)-1]
}

type dirSort []Entry

func (s dirSort) Len() int           { return len(s) }
func (s dirSort) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s dirSort) Less(i, j int) bool { return s[i].Tag < s[j].Tag }

func getOffsetLen(bo binary.ByteOrder, d Dir, ofst, lent uint16) (offset, length int, ok bool) {
	offset, ok = fieldOfs(bo, d.Tag(ofst))
	if !ok {
		return
	}
	length, ok = fieldOfs(bo, d.Tag(lent))
	return
}

func putOffsetLen(bo binary.ByteOrder, d Dir, ofst, lent uint16, offset, length int) (ok bool) {
	ok = putFieldOfs(bo, d.Tag(ofst), offset)
	ok = ok && putFieldOfs(bo, d.Tag(lent), length)
	return ok
}
