package isa

// FeatureName maps a feature's canonical backend name to its bit index.
type FeatureName struct {
	Name string
	Bit  uint32
}

// Dep is a pair dependency edge: Feature cannot be enabled without Requires.
// The edge list, read as a directed graph, must be acyclic; this is a
// data-integrity precondition of the tables, not a runtime check.
type Dep struct {
	Feature  uint32
	Requires uint32
}

// ImplyRule is an architecture-revision implication: when every bit of If is
// set, all bits of Then are set as well. Rules are listed highest revision
// first so a small number of closure passes settles the chain.
type ImplyRule struct {
	If   []uint32
	Then []uint32
}

// VectorStep maps a feature to the maximum vector register width (in bytes)
// its presence unlocks. Steps are listed widest first.
type VectorStep struct {
	Feature uint32
	Bytes   int
}

// TagRule emits backend target tags when every bit of If is set.
type TagRule struct {
	If   []uint32
	Tags []string
}

// CapDerivedBit maps a raw capability-word bit without a feature slot of
// its own to the synthetic feature it signals.
type CapDerivedBit struct {
	Word    int
	Bit     uint32
	Feature uint32
}

// VersionFloor is an architecture version/profile pair used to sanity-filter
// detected CPU models against what the running kernel reports.
type VersionFloor struct {
	Version int
	Class   byte // 'A', 'R', 'M' or 0 when unknown
}

// MClass reports whether the floor describes a microcontroller profile.
func (f VersionFloor) MClass() bool { return f.Class == 'M' }

// Arch describes one target architecture entirely as data: its feature
// names, dependency edges, revision implications and width rules. Adding an
// architecture revision is a table change, not a new code path.
type Arch struct {
	Name string

	// Features in declaration order; also defines the declared mask.
	Features []FeatureName

	// Aliases expand one spelled feature token into several concrete bits
	// (e.g. "crypto" on arm64).
	Aliases map[string][]uint32

	Deps    []Dep
	Implies []ImplyRule

	// Mask covers every declared feature; RealMask only those backed by a
	// hardware capability word.
	Mask     FeatureSet
	RealMask FeatureSet

	// Vector width model.
	VectorSteps   []VectorStep
	VectorDefault int

	// CapDerived lists capability-word bits folded into synthetic
	// features during detection.
	CapDerived []CapDerivedBit

	// VecCallPare lists feature bits unset from the executing target when
	// the matched image variant assumes a narrower vectorized-call ABI.
	VecCallPare []uint32

	// Version/profile model. Empty tables mean the architecture has a
	// single fixed floor (DefaultFloor).
	DefaultFloor VersionFloor
	VersionBits  []struct {
		Version int
		Bit     uint32
	}
	ClassBits []struct {
		Class byte
		Bit   uint32
	}

	// Backend feature-string tags appended after the per-bit +/- list.
	TagRules []TagRule
	BaseTags []string

	byName map[string]uint32
}

// FeatureBit resolves a feature name to its bit index.
func (a *Arch) FeatureBit(name string) (uint32, bool) {
	b, ok := a.byName[name]
	return b, ok
}

// FeatureString returns the canonical name of a bit, or "" for reserved bits.
func (a *Arch) FeatureString(bit uint32) string {
	for _, f := range a.Features {
		if f.Bit == bit {
			return f.Name
		}
	}
	return ""
}

// MaxVectorSize computes the widest vector register width (bytes) the
// feature set can safely assume.
func (a *Arch) MaxVectorSize(s FeatureSet) int {
	for _, st := range a.VectorSteps {
		if s.Test(st.Feature) {
			return st.Bytes
		}
	}
	return a.VectorDefault
}

// FeatureFloor derives the version/profile floor implied by a feature set.
func (a *Arch) FeatureFloor(s FeatureSet) VersionFloor {
	floor := a.DefaultFloor
	if len(a.VersionBits) == 0 {
		return floor
	}
	floor.Version = 0
	floor.Class = 0
	for _, vb := range a.VersionBits {
		if s.Test(vb.Bit) && vb.Version > floor.Version {
			floor.Version = vb.Version
		}
	}
	for _, cb := range a.ClassBits {
		if s.Test(cb.Bit) {
			floor.Class = cb.Class
			break
		}
	}
	if floor.Version == 0 {
		floor.Version = a.DefaultFloor.Version
	}
	return floor
}

// ApplyFloor sets the feature bits implied by a detected version/profile
// floor. A no-op for architectures without version bits.
func (a *Arch) ApplyFloor(s *FeatureSet, floor VersionFloor) {
	if floor.Version >= 7 {
		for _, cb := range a.ClassBits {
			if cb.Class == floor.Class {
				s.SetBit(cb.Bit, true)
			}
		}
	}
	for _, vb := range a.VersionBits {
		if floor.Version >= vb.Version {
			s.SetBit(vb.Bit, true)
		}
	}
}

// BackendTags returns the trailing backend tags for a feature set.
func (a *Arch) BackendTags(s FeatureSet) []string {
	var tags []string
	for _, r := range a.TagRules {
		hit := true
		for _, b := range r.If {
			if !s.Test(b) {
				hit = false
				break
			}
		}
		if hit {
			tags = append(tags, r.Tags...)
		}
	}
	tags = append(tags, a.BaseTags...)
	return tags
}

// finish computes the derived lookup structures of a hand-written table.
func (a *Arch) finish() *Arch {
	a.byName = make(map[string]uint32, len(a.Features))
	for _, f := range a.Features {
		a.byName[f.Name] = f.Bit
		a.Mask.SetBit(f.Bit, true)
	}
	// Word 2 holds synthetic bits with no capability-word backing.
	a.RealMask = a.Mask
	a.RealMask[2] = 0
	return a
}
