package target

import (
	"github.com/calyx-lang/calyx/internal/cpudb"
	"github.com/calyx-lang/calyx/internal/isa"
)

// Resolve fills in a parsed target against the catalog and, when
// hostLock is set, restricts it to what the host supports. A name the
// catalog does not know flags the target rather than failing; the flag
// turns fatal only at the backend boundary.
func Resolve(db *cpudb.DB, hostName string, hostFeatures isa.FeatureSet, t *Data, hostLock bool) {
	arch := db.Arch

	baseline := false
	if t.Name == "native" {
		t.Name = hostName
		t.Enabled = t.Enabled.Union(hostFeatures)
		baseline = true
	} else if spec := db.LookupName(t.Name); spec != nil {
		t.Enabled = t.Enabled.Union(spec.Features)
		baseline = true
	} else {
		t.Flags |= UnknownName
	}

	arch.EnableDepends(&t.Enabled)
	t.Enabled = t.Enabled.AndNot(t.Disabled)
	if hostLock {
		// A requested feature the host lacks is dropped, not escalated;
		// the first target must be runnable here.
		t.Enabled = t.Enabled.Intersect(hostFeatures)
	}
	arch.DisableDepends(&t.Enabled)

	if baseline {
		// Keep enabled/disabled complementary for serialization.
		t.Disabled = arch.Mask.AndNot(t.Enabled)
	}
}

// ResolveList resolves a parsed target list in place. Only the first
// target is host-locked; later entries describe variants for other
// machines and may exceed the host.
func ResolveList(db *cpudb.DB, hostName string, hostFeatures isa.FeatureSet, targets []Data) {
	for i := range targets {
		Resolve(db, hostName, hostFeatures, &targets[i], i == 0)
	}
}
