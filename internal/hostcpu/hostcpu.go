// Package hostcpu determines what the executing processor actually
// supports. Detection is best-effort and conservative: unreadable sources
// degrade to the architecture-generic baseline, an unrecognized core pulls
// the reconciled feature set toward the common subset, and nothing in this
// package can fail hard. The result is computed once per process and
// memoized.
package hostcpu

import (
	"strings"
	"sync"

	"github.com/calyx-lang/calyx/internal/cpudb"
	"github.com/calyx-lang/calyx/internal/isa"
)

// Inputs carries everything detection reads from the platform. Collected by
// the per-OS sources; tests inject their own.
type Inputs struct {
	// HWCap and HWCap2 are the OS capability vectors.
	HWCap  uint64
	HWCap2 uint64

	// Identities are the deduplicated per-core identification tuples.
	Identities []cpudb.Identity

	// Machine is the kernel's machine string (uname), used to derive the
	// architecture floor on 32-bit ARM.
	Machine string

	// ForcedName short-circuits detection to a known model; used on
	// platforms that expose a brand string instead of per-core registers.
	ForcedName string
}

// Resolve reconciles platform inputs into a single (model name, feature
// set) pair. Pure; never fails.
func Resolve(db *cpudb.DB, in Inputs) (string, isa.FeatureSet) {
	arch := db.Arch

	if in.ForcedName != "" {
		if spec := db.LookupName(in.ForcedName); spec != nil {
			features := spec.Features
			features.Mask(arch.Mask)
			return spec.Name, features
		}
	}

	var features isa.FeatureSet
	features[0] = uint32(in.HWCap)
	features[1] = uint32(in.HWCap2)
	for _, cd := range arch.CapDerived {
		word := in.HWCap
		if cd.Word == 1 {
			word = in.HWCap2
		}
		if word&(1<<cd.Bit) != 0 {
			features.SetBit(cd.Feature, true)
		}
	}

	floor := floorFor(arch, in.Machine)
	arch.ApplyFloor(&features, floor)

	// The capability words alone undersell newer cores (kernels lag the
	// silicon), so fold in what the catalog knows about each discovered
	// core. Heterogeneous pairings intersect down to the common subset,
	// and an unrecognized core empties the extra set entirely.
	type candidate struct {
		name string
		id   cpudb.Identity
	}
	var (
		list       []candidate
		seen       = map[string]bool{}
		extra      isa.FeatureSet
		extraValid bool
	)
	for _, id := range in.Identities {
		name := db.LookupIdentity(id)
		if name == "" {
			extra = isa.FeatureSet{}
			extraValid = true
			continue
		}
		if !db.CheckFloor(name, floor) {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		spec := db.LookupName(name)
		if extraValid {
			extra = extra.Intersect(spec.Features)
		} else {
			extra = spec.Features
			extraValid = true
		}
		list = append(list, candidate{name, id})
	}
	features = features.Union(extra)

	// big.LITTLE: when the surviving cores are all ranked, only the most
	// capable one drives code generation.
	maxRank := -1
	for _, c := range list {
		if r := db.Rank(c.name); r > maxRank {
			maxRank = r
		}
	}
	if maxRank >= 0 {
		kept := list[:0]
		for _, c := range list {
			if r := db.Rank(c.name); r == -1 || r >= maxRank {
				kept = append(kept, c)
			}
		}
		list = kept
	}

	var name string
	if len(list) == 0 {
		name = db.GenericFor(floor)
	} else {
		// More than one survivor means an unranked combination of known
		// cores; there is no principled winner, take the first.
		name = list[0].name
	}

	features.Mask(arch.Mask)
	return name, features
}

// floorFor derives the architecture floor from the kernel machine string.
func floorFor(arch *isa.Arch, machine string) isa.VersionFloor {
	if len(arch.VersionBits) == 0 {
		return arch.DefaultFloor
	}
	floor := arch.DefaultFloor
	switch {
	case machine == "armv6l":
		floor = isa.VersionFloor{Version: 6}
	case machine == "armv7l":
		floor = isa.VersionFloor{Version: 7}
	case machine == "armv7ml":
		floor = isa.VersionFloor{Version: 7, Class: 'M'}
	case machine == "armv8l" || strings.HasPrefix(machine, "aarch64"):
		floor = isa.VersionFloor{Version: 8}
	}
	return floor
}

// Host memoizes one process-wide detection result.
type Host struct {
	db *cpudb.DB

	once     sync.Once
	name     string
	features isa.FeatureSet
}

// New returns a lazy detector over the given catalog. Detection runs on
// first use; concurrent first callers block until the single computation
// finishes.
func New(db *cpudb.DB) *Host {
	return &Host{db: db}
}

// NewFromInputs returns a detector over fixed inputs instead of the live
// platform sources.
func NewFromInputs(db *cpudb.DB, in Inputs) *Host {
	h := &Host{db: db}
	h.once.Do(func() {
		h.name, h.features = Resolve(db, in)
	})
	return h
}

func (h *Host) detect() {
	h.name, h.features = Resolve(h.db, collect(h.db.Arch))
}

// CPU returns the detected model name and feature set.
func (h *Host) CPU() (string, isa.FeatureSet) {
	h.once.Do(h.detect)
	return h.name, h.features
}

// Name returns the detected model name.
func (h *Host) Name() string {
	name, _ := h.CPU()
	return name
}

// Features returns the detected feature set.
func (h *Host) Features() isa.FeatureSet {
	_, features := h.CPU()
	return features
}

// Supports reports whether the host has a named feature. The query surface
// the rest of the runtime gates feature-specific paths on.
func (h *Host) Supports(feature string) bool {
	bit, ok := h.db.Arch.FeatureBit(feature)
	if !ok {
		return false
	}
	return h.Features().Test(bit)
}
