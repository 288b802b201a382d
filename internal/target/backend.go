package target

import (
	"fmt"
	"strings"

	"github.com/calyx-lang/calyx/internal/cpudb"
)

// BackendSpec is what the code-generation backend consumes per target: a
// processor name it accepts, an ordered feature string list, the clone
// flags and the base-target index.
type BackendSpec struct {
	CPU      string
	Features []string
	Flags    Flags
	Base     int
}

// BackendSpecs lowers a resolved target list for the backend. A target
// still flagged with an unknown name is a configuration error here; the
// flag was tolerated through resolution so that diagnostics could name the
// offender, but the backend cannot compile for a processor nobody knows.
func BackendSpecs(db *cpudb.DB, targets []Data) ([]BackendSpec, error) {
	arch := db.Arch
	out := make([]BackendSpec, 0, len(targets))
	for i := range targets {
		t := &targets[i]
		if t.Flags&UnknownName != 0 {
			return nil, fmt.Errorf("target %d: unknown processor name %q", i, t.Name)
		}
		cpu, spec := db.EmitName(t.Name)
		if spec != nil && spec.Generic {
			// The backend knows generic baselines only by their features.
			cpu = "generic"
		}

		var feats []string
		for _, f := range arch.Features {
			if !arch.RealMask.Test(f.Bit) {
				continue
			}
			if t.Enabled.Test(f.Bit) {
				feats = append(feats, "+"+f.Name)
			}
		}
		for _, f := range arch.Features {
			if !arch.RealMask.Test(f.Bit) {
				continue
			}
			if t.Disabled.Test(f.Bit) {
				feats = append(feats, "-"+f.Name)
			}
		}
		feats = append(feats, arch.BackendTags(t.Enabled)...)
		if t.ExtFeatures != "" {
			feats = append(feats, strings.Split(t.ExtFeatures, ",")...)
		}

		out = append(out, BackendSpec{CPU: cpu, Features: feats, Flags: t.Flags, Base: t.Base})
	}
	return out, nil
}
