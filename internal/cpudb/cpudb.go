// Package cpudb is the static processor catalog: named CPU models with
// their baseline feature sets, and the identification-register tables that
// map per-core hardware tuples back to model names. The matching and
// detection engines only query this data; they never depend on how many
// models are known.
package cpudb

import "github.com/calyx-lang/calyx/internal/isa"

// BackendVersion is the code-generation backend revision this runtime was
// built against. Catalog entries introduced by newer backends fall back to
// their nearest supported ancestor.
const BackendVersion uint32 = 150000

// never marks catalog entries the current backend can never emit directly.
const never = ^uint32(0)

// Spec describes one CPU model. Fallback names the model used for code
// generation when MinVersion exceeds the backend version; fallback chains
// always terminate at a generic entry.
type Spec struct {
	Name       string
	Fallback   string
	MinVersion uint32
	Features   isa.FeatureSet

	// Generic marks architecture-level entries (armv8.2-a and friends)
	// rather than concrete parts.
	Generic bool
}

// Identity is a per-core hardware identification tuple (MIDR fields on ARM).
type Identity struct {
	Implementer uint8
	Variant     uint8
	Part        uint16
}

// partEntry maps an identification tuple to a model name. Variant -1
// matches any variant; entries are scanned in order, so variant-specific
// rows must precede their catch-all.
type partEntry struct {
	implementer uint8
	part        uint16
	variant     int16
	name        string
}

// DB is one architecture's processor catalog.
type DB struct {
	Arch *isa.Arch

	specs   []Spec
	parts   []partEntry
	aliases map[string]string

	// rank orders core models least capable first; used to collapse
	// heterogeneous (big.LITTLE) systems to their most capable core.
	rank []string

	genericFor func(isa.VersionFloor) string

	byName map[string]*Spec
}

// LookupName returns the spec for a canonical model name, or nil.
func (db *DB) LookupName(name string) *Spec {
	return db.byName[name]
}

// Normalize maps marketing and internal codenames to catalog names.
// Unknown names pass through unchanged.
func (db *DB) Normalize(name string) string {
	if canonical, ok := db.aliases[name]; ok {
		return canonical
	}
	return name
}

// LookupIdentity maps a hardware identification tuple to a model name.
// Unrecognized tuples yield "", the unknown sentinel.
func (db *DB) LookupIdentity(id Identity) string {
	for _, e := range db.parts {
		if e.implementer != id.Implementer || e.part != id.Part {
			continue
		}
		if e.variant >= 0 && uint8(e.variant) != id.Variant {
			continue
		}
		return e.name
	}
	return ""
}

// GenericFor returns the architecture-generic model for a detected
// version/profile floor.
func (db *DB) GenericFor(floor isa.VersionFloor) string {
	if db.genericFor == nil {
		return "generic"
	}
	return db.genericFor(floor)
}

// IsGenericName reports whether name is an architecture-level entry.
func (db *DB) IsGenericName(name string) bool {
	if s := db.byName[name]; s != nil {
		return s.Generic
	}
	return false
}

// Rank returns a model's position in the big.LITTLE capability order, or -1
// when the model is not ranked.
func (db *DB) Rank(name string) int {
	for i, n := range db.rank {
		if n == name {
			return i
		}
	}
	return -1
}

// CheckFloor reports whether a model is plausible under a detected
// version/profile floor. A profile mismatch or a model older than the floor
// indicates a bogus identification and is discarded by the detector.
func (db *DB) CheckFloor(name string, floor isa.VersionFloor) bool {
	spec := db.LookupName(name)
	if spec == nil {
		return false
	}
	specFloor := db.Arch.FeatureFloor(spec.Features)
	if floor.MClass() != specFloor.MClass() {
		return false
	}
	return floor.Version <= specFloor.Version
}

// EmitName resolves the model name the backend should compile for, walking
// the fallback chain past entries newer than the backend version.
func (db *DB) EmitName(name string) (string, *Spec) {
	spec := db.LookupName(name)
	for spec != nil && spec.MinVersion > BackendVersion {
		next := db.LookupName(spec.Fallback)
		if next == nil || next == spec {
			break
		}
		spec = next
		name = spec.Name
	}
	return name, spec
}

// finish materializes dependency closure over every baseline so that table
// rows can stay minimal, and builds the name index.
func (db *DB) finish() *DB {
	db.byName = make(map[string]*Spec, len(db.specs))
	for i := range db.specs {
		s := &db.specs[i]
		db.Arch.EnableDepends(&s.Features)
		db.byName[s.Name] = s
	}
	return db
}
