package cvi

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
)

const writerPadBufSize = 4096

// Writer builds a CVI file. Space for the header is reserved up front and
// patched in Finalize.
type Writer struct {
	f        *os.File
	buildID  uuid.UUID
	sections []Section
	seen     map[SectionType]struct{}
	closed   bool

	padBuf []byte

	mu sync.Mutex
}

// NewWriter creates a writer targeting the given file. It truncates the
// file and reserves the header bytes.
func NewWriter(f *os.File, buildID uuid.UUID) (*Writer, error) {
	if f == nil {
		return nil, errors.New("cvi: nil file")
	}
	if err := f.Truncate(0); err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	w := &Writer{
		f:       f,
		buildID: buildID,
		seen:    make(map[SectionType]struct{}),
		padBuf:  make([]byte, writerPadBufSize),
	}
	if err := w.writeZeros(headerSize); err != nil {
		return nil, err
	}
	if err := w.alignTo(align); err != nil {
		return nil, err
	}
	return w, nil
}

// WriteSection writes a section payload and records it in the section
// table. Sections may be written in any order; a type only once.
func (w *Writer) WriteSection(typ SectionType, version uint32, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return errors.New("cvi: writer already finalized")
	}
	if _, ok := w.seen[typ]; ok {
		return errors.New("cvi: duplicate section type")
	}
	if err := w.alignTo(align); err != nil {
		return err
	}
	offset, err := w.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if len(data) > 0 {
		if err := writeFull(w.f, data); err != nil {
			return err
		}
	}
	w.sections = append(w.sections, Section{
		Type:    uint32(typ),
		Version: version,
		Offset:  uint64(offset),
		Size:    uint64(len(data)),
	})
	w.seen[typ] = struct{}{}
	return nil
}

// Finalize writes the section directory and the patched header. The writer
// is unusable afterwards; the caller still owns the file handle.
func (w *Writer) Finalize() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return errors.New("cvi: writer already finalized")
	}
	if len(w.sections) == 0 {
		return errors.New("cvi: no sections written")
	}
	if err := w.alignTo(align); err != nil {
		return err
	}
	dirOffset, err := w.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	for i := range w.sections {
		var buf [sectionSize]byte
		encodeSection(buf[:], &w.sections[i])
		if err := writeFull(w.f, buf[:]); err != nil {
			return err
		}
	}
	fileSize, err := w.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	header := Header{
		Major:            CurrentMajor,
		Minor:            CurrentMinor,
		HeaderSize:       headerSize,
		SectionCount:     uint32(len(w.sections)),
		SectionDirOffset: uint64(dirOffset),
		FileSize:         uint64(fileSize),
		BuildID:          w.buildID,
	}
	copy(header.Magic[:], Magic)

	var hdrBuf [headerSize]byte
	encodeHeader(hdrBuf[:], &header)
	if _, err := w.f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err := writeFull(w.f, hdrBuf[:]); err != nil {
		return err
	}
	w.closed = true
	return w.f.Sync()
}

func (w *Writer) writeZeros(n int) error {
	for n > 0 {
		chunk := n
		if chunk > len(w.padBuf) {
			chunk = len(w.padBuf)
		}
		if err := writeFull(w.f, w.padBuf[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

func (w *Writer) alignTo(n int64) error {
	pos, err := w.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if rem := pos % n; rem != 0 {
		return w.writeZeros(int(n - rem))
	}
	return nil
}

func writeFull(f *os.File, p []byte) error {
	for len(p) > 0 {
		n, err := f.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}
