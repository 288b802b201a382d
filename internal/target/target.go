// Package target models compilation targets: named processor baselines
// with explicit feature overrides, resolved against the catalog and the
// host, matched against precompiled image variants, and handed to the
// code-generation backend.
package target

import (
	"strings"

	"github.com/calyx-lang/calyx/internal/isa"
)

// Flags mark per-target compilation axes and bookkeeping state.
type Flags uint32

const (
	// CloneAll clones every function for this target; the per-group
	// policy is skipped.
	CloneAll Flags = 1 << iota
	// CloneLoop clones functions containing hot loops.
	CloneLoop
	// CloneCPU clones functions that branch on processor identity.
	CloneCPU
	// CloneFloat16 clones half-precision arithmetic.
	CloneFloat16
	// CloneMath clones math intrinsics.
	CloneMath
	// CloneSIMD clones vectorized code.
	CloneSIMD
	// VecCall marks a variant compiled with a vectorized-call ABI tied to
	// its vector width.
	VecCall
	// UnknownName records that the target name missed the catalog. Not an
	// error until the target is driven to the backend.
	UnknownName
	// OptSize and MinSize request size-oriented optimization.
	OptSize
	MinSize
)

// Data is one compilation target. Mutated only by Resolve; read-only once
// it lands in the engine's target list.
type Data struct {
	Name     string
	Enabled  isa.FeatureSet
	Disabled isa.FeatureSet

	// ExtFeatures are opaque backend feature strings forwarded verbatim.
	ExtFeatures string

	Flags Flags

	// Base indexes this target's inheritance base in the owning list.
	Base int
}

func (t *Data) String() string {
	var b strings.Builder
	b.WriteString(t.Name)
	if t.Flags&CloneAll != 0 {
		b.WriteString(",clone_all")
	}
	if t.Flags&OptSize != 0 {
		b.WriteString(",opt_size")
	}
	if t.Flags&MinSize != 0 {
		b.WriteString(",min_size")
	}
	return b.String()
}
