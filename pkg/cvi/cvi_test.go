package cvi

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func writeImage(t *testing.T, meta *Meta, targets, variants []byte) (string, uuid.UUID) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "image.cvi")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer func() { _ = f.Close() }()

	id := uuid.New()
	w, err := NewWriter(f, id)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if meta != nil {
		meta.BuildID = id.String()
		raw, err := EncodeMeta(meta)
		if err != nil {
			t.Fatalf("encode meta: %v", err)
		}
		if err := w.WriteSection(SectionMeta, 1, raw); err != nil {
			t.Fatalf("write meta: %v", err)
		}
	}
	if err := w.WriteSection(SectionTargets, 1, targets); err != nil {
		t.Fatalf("write targets: %v", err)
	}
	if err := w.WriteSection(SectionVariants, 1, variants); err != nil {
		t.Fatalf("write variants: %v", err)
	}
	if err := w.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	return path, id
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	meta := &Meta{
		Name:       "sys",
		Arch:       "aarch64",
		TargetSpec: "generic;cortex-a72",
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	targets := []byte("target-blob")
	variants := []byte{0xde, 0xad, 0xbe, 0xef}
	path, id := writeImage(t, meta, targets, variants)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	defer func() { _ = f.Close() }()
	st, err := f.Stat()
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	img, err := OpenReaderAt(f, st.Size())
	if err != nil {
		t.Fatalf("open readerat: %v", err)
	}
	defer func() { _ = img.Close() }()

	if img.mmapped {
		t.Fatalf("OpenReaderAt should not mmap")
	}
	if img.BuildID() != id {
		t.Fatalf("build id = %s, want %s", img.BuildID(), id)
	}

	got, err := img.Targets()
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	if !bytes.Equal(got, targets) {
		t.Fatalf("targets = %q, want %q", got, targets)
	}

	m, err := img.Meta()
	if err != nil {
		t.Fatalf("meta: %v", err)
	}
	if m.Name != meta.Name || m.TargetSpec != meta.TargetSpec || m.BuildID != id.String() {
		t.Fatalf("meta = %+v", m)
	}

	vs := img.Section(SectionVariants)
	if vs == nil {
		t.Fatalf("missing variants section")
	}
	if !bytes.Equal(img.SectionData(vs), variants) {
		t.Fatalf("variants payload mismatch")
	}
}

func TestOpenMmapPath(t *testing.T) {
	t.Parallel()

	path, _ := writeImage(t, nil, []byte("blob"), []byte{1})
	img, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, err := img.Targets()
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	if !bytes.Equal(got, []byte("blob")) {
		t.Fatalf("targets = %q", got)
	}
	if err := img.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if img.Data != nil {
		t.Fatalf("data retained after close")
	}
}

func TestMetaMissing(t *testing.T) {
	t.Parallel()

	path, _ := writeImage(t, nil, []byte("blob"), []byte{1})
	img, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = img.Close() }()
	if _, err := img.Meta(); !errors.Is(err, ErrCorruptImage) {
		t.Fatalf("meta err = %v, want ErrCorruptImage", err)
	}
}

func TestOpenRejectsCorrupt(t *testing.T) {
	t.Parallel()

	path, _ := writeImage(t, nil, []byte("blob"), []byte{1})
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	t.Run("bad magic", func(t *testing.T) {
		t.Parallel()
		bad := append([]byte{}, raw...)
		copy(bad, "XXXX")
		if _, err := OpenReaderAt(bytes.NewReader(bad), int64(len(bad))); !errors.Is(err, ErrInvalidMagic) {
			t.Fatalf("err = %v, want ErrInvalidMagic", err)
		}
	})
	t.Run("bad major", func(t *testing.T) {
		t.Parallel()
		bad := append([]byte{}, raw...)
		bad[4] = 0xff
		if _, err := OpenReaderAt(bytes.NewReader(bad), int64(len(bad))); !errors.Is(err, ErrUnsupportedMajor) {
			t.Fatalf("err = %v, want ErrUnsupportedMajor", err)
		}
	})
	t.Run("truncated", func(t *testing.T) {
		t.Parallel()
		bad := raw[:len(raw)-4]
		if _, err := OpenReaderAt(bytes.NewReader(bad), int64(len(bad))); !errors.Is(err, ErrCorruptImage) {
			t.Fatalf("err = %v, want ErrCorruptImage", err)
		}
	})
	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		if _, err := OpenReaderAt(bytes.NewReader(nil), 0); !errors.Is(err, ErrCorruptImage) {
			t.Fatalf("err = %v, want ErrCorruptImage", err)
		}
	})
}

func TestWriterRejectsDuplicateSection(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "dup.cvi"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer func() { _ = f.Close() }()
	w, err := NewWriter(f, uuid.New())
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if err := w.WriteSection(SectionTargets, 1, []byte("a")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.WriteSection(SectionTargets, 1, []byte("b")); err == nil {
		t.Fatal("duplicate section accepted")
	}
}
