package target

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Wire format: little-endian, a version word and a record count, then per
// record the name, flags, base index, both feature sets and the extra
// feature string. Embedded in image files; the version word gates format
// evolution.
const codecVersion = 1

var (
	ErrBadBlob = errors.New("target: malformed target blob")
)

// EncodeList serializes a target list for embedding in an image.
func EncodeList(targets []Data) []byte {
	buf := binary.LittleEndian.AppendUint32(nil, codecVersion)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(targets)))
	for i := range targets {
		t := &targets[i]
		buf = appendString(buf, t.Name)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(t.Flags))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(t.Base))
		for _, w := range t.Enabled {
			buf = binary.LittleEndian.AppendUint32(buf, w)
		}
		for _, w := range t.Disabled {
			buf = binary.LittleEndian.AppendUint32(buf, w)
		}
		buf = appendString(buf, t.ExtFeatures)
	}
	return buf
}

// DecodeList parses a serialized target list.
func DecodeList(blob []byte) ([]Data, error) {
	d := decoder{buf: blob}
	if v := d.uint32(); v != codecVersion {
		if d.err != nil {
			return nil, d.err
		}
		return nil, fmt.Errorf("%w: version %d", ErrBadBlob, v)
	}
	count := d.uint32()
	if d.err != nil {
		return nil, d.err
	}
	if int(count) > len(blob) {
		return nil, fmt.Errorf("%w: implausible record count %d", ErrBadBlob, count)
	}
	out := make([]Data, 0, count)
	for i := uint32(0); i < count; i++ {
		var t Data
		t.Name = d.string()
		t.Flags = Flags(d.uint32())
		t.Base = int(d.uint32())
		for w := range t.Enabled {
			t.Enabled[w] = d.uint32()
		}
		for w := range t.Disabled {
			t.Disabled[w] = d.uint32()
		}
		t.ExtFeatures = d.string()
		if d.err != nil {
			return nil, d.err
		}
		out = append(out, t)
	}
	return out, nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

type decoder struct {
	buf []byte
	err error
}

func (d *decoder) uint32() uint32 {
	if d.err != nil {
		return 0
	}
	if len(d.buf) < 4 {
		d.err = fmt.Errorf("%w: truncated", ErrBadBlob)
		return 0
	}
	v := binary.LittleEndian.Uint32(d.buf)
	d.buf = d.buf[4:]
	return v
}

func (d *decoder) string() string {
	n := d.uint32()
	if d.err != nil {
		return ""
	}
	if uint32(len(d.buf)) < n {
		d.err = fmt.Errorf("%w: truncated string", ErrBadBlob)
		return ""
	}
	s := string(d.buf[:n])
	d.buf = d.buf[n:]
	return s
}
