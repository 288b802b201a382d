package cvi

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Meta is the JSON build metadata embedded in SectionMeta.
type Meta struct {
	Name       string    `json:"name"`
	Arch       string    `json:"arch"`
	TargetSpec string    `json:"target_spec"`
	BuildID    string    `json:"build_id"`
	CreatedAt  time.Time `json:"created_at"`
	Tool       string    `json:"tool,omitempty"`
}

// EncodeMeta serializes metadata for SectionMeta.
func EncodeMeta(m *Meta) ([]byte, error) {
	return json.Marshal(m)
}

// Meta decodes the image's metadata section.
func (f *File) Meta() (*Meta, error) {
	s := f.Section(SectionMeta)
	if s == nil {
		return nil, fmt.Errorf("%w: missing meta section", ErrCorruptImage)
	}
	var m Meta
	if err := json.Unmarshal(f.SectionData(s), &m); err != nil {
		return nil, fmt.Errorf("%w: bad meta section: %v", ErrCorruptImage, err)
	}
	return &m, nil
}
