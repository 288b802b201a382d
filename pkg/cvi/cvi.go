// Package cvi implements the Calyx Variant Image format.
//
// CVI is a single-file, memory-mappable container for multiversioned
// machine code: a metadata section, the serialized target list describing
// each compiled variant, and the variant payloads themselves. It describes
// structure only; variant selection lives with the dispatch engine.
package cvi

// CVI global constants must never change.
const (
	// Magic is the file magic for all CVI containers.
	Magic = "CVI1"

	// Current Major Version: any change indicates a breaking format change.
	CurrentMajor uint16 = 1

	// Current Minor Version: versions may add new optional sections.
	CurrentMinor uint16 = 0
)

type SectionType uint32

const (
	// SectionMeta holds JSON build metadata.
	SectionMeta SectionType = 0x0001
	// SectionTargets holds the serialized target-data blob the dispatch
	// engine matches against.
	SectionTargets SectionType = 0x0002
	// SectionVariants holds the variant payloads, opaque to this package.
	SectionVariants SectionType = 0x0003
)

// Header is the fixed file header. BuildID is a UUID identifying one
// packaging run; runtime and plugin images built together share it.
type Header struct {
	Magic            [4]byte
	Major            uint16
	Minor            uint16
	HeaderSize       uint32
	SectionCount     uint32
	SectionDirOffset uint64
	FileSize         uint64
	BuildID          [16]byte
}

func (h *Header) Valid() bool {
	if string(h.Magic[:]) != Magic {
		return false
	}
	if h.HeaderSize < headerSize {
		return false
	}
	if h.SectionCount == 0 {
		return false
	}
	return true
}

func (h *Header) Compatible() bool {
	return h.Major == CurrentMajor
}

// Section is one entry of the section directory.
type Section struct {
	Type    uint32
	Version uint32
	Offset  uint64
	Size    uint64
}

func (s *Section) End() uint64 {
	return s.Offset + s.Size
}
