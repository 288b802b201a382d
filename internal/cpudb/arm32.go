package cpudb

import "github.com/calyx-lang/calyx/internal/isa"

func a32(names ...string) isa.FeatureSet {
	var s isa.FeatureSet
	for _, n := range names {
		b, ok := isa.ARM32.FeatureBit(n)
		if !ok {
			panic("cpudb: unknown arm feature " + n)
		}
		s.SetBit(b, true)
	}
	return s
}

// ARM32 is the 32-bit ARM catalog.
var ARM32 = (&DB{
	Arch: isa.ARM32,
	specs: []Spec{
		{Name: "generic", Fallback: "generic", Generic: true},
		{Name: "armv7-a", Fallback: "generic", Generic: true,
			Features: a32("v7", "aclass")},
		{Name: "armv7-r", Fallback: "generic", Generic: true,
			Features: a32("v7", "rclass")},
		{Name: "armv7-m", Fallback: "generic", Generic: true,
			Features: a32("v7", "mclass", "hwdiv")},
		{Name: "armv8-a", Fallback: "generic", Generic: true,
			Features: a32("v8", "aclass")},
		{Name: "armv8-r", Fallback: "generic", Generic: true,
			Features: a32("v8", "rclass", "neon", "vfp3", "vfp4", "d32",
				"hwdiv", "hwdiv-arm")},
		{Name: "armv8-m.base", Fallback: "generic", Generic: true,
			Features: a32("v8", "mclass", "hwdiv")},
		{Name: "armv8-m.main", Fallback: "generic", Generic: true,
			Features: a32("v8.m.main", "hwdiv")},
		{Name: "armv8.1-a", Fallback: "generic", Generic: true,
			Features: a32("v8.1a")},
		{Name: "armv8.2-a", Fallback: "generic", Generic: true,
			Features: a32("v8.2a")},

		{Name: "cortex-a5", Fallback: "generic", Features: a32("v7", "aclass")},
		{Name: "cortex-a7", Fallback: "generic",
			Features: a32("v7", "aclass", "vfp3", "vfp4", "neon")},
		{Name: "cortex-a8", Fallback: "generic",
			Features: a32("v7", "aclass", "d32", "vfp3", "neon")},
		{Name: "cortex-a9", Fallback: "generic", Features: a32("v7", "aclass")},
		{Name: "cortex-a15", Fallback: "generic",
			Features: a32("v7", "aclass", "d32", "vfp3", "vfp4", "neon")},
		{Name: "cortex-a53", Fallback: "generic", Features: a32("v8", "aclass", "crc")},
		{Name: "cortex-a57", Fallback: "generic", Features: a32("v8", "aclass", "crc")},
		{Name: "cortex-a72", Fallback: "generic", Features: a32("v8", "aclass", "crc")},
		{Name: "krait", Fallback: "generic",
			Features: a32("v7", "aclass", "vfp3", "vfp4", "neon", "hwdiv", "hwdiv-arm")},
		{Name: "swift", Fallback: "generic",
			Features: a32("v7", "aclass", "d32", "vfp3", "vfp4", "neon",
				"hwdiv", "hwdiv-arm")},
	},
	aliases: map[string]string{},
	rank: []string{
		"cortex-a5", "cortex-a7", "cortex-a8", "cortex-a9", "cortex-a15",
		"cortex-a53", "cortex-a57", "cortex-a72",
	},
	parts: []partEntry{
		{0x41, 0xc05, -1, "cortex-a5"},
		{0x41, 0xc07, -1, "cortex-a7"},
		{0x41, 0xc08, -1, "cortex-a8"},
		{0x41, 0xc09, -1, "cortex-a9"},
		{0x41, 0xc0f, -1, "cortex-a15"},
		{0x41, 0xd03, -1, "cortex-a53"},
		{0x41, 0xd07, -1, "cortex-a57"},
		{0x41, 0xd08, -1, "cortex-a72"},
		{0x51, 0x04d, -1, "krait"},
		{0x51, 0x06f, -1, "krait"},
		{0x61, 0x000, -1, "swift"},
	},
	genericFor: func(floor isa.VersionFloor) string {
		switch {
		case floor.Version >= 8:
			switch floor.Class {
			case 'M':
				return "armv8-m.base"
			case 'R':
				return "armv8-r"
			default:
				return "armv8-a"
			}
		case floor.Version == 7:
			switch floor.Class {
			case 'M':
				return "armv7-m"
			case 'R':
				return "armv7-r"
			default:
				return "armv7-a"
			}
		default:
			return "generic"
		}
	},
}).finish()

// ForArch returns the catalog for a feature model.
func ForArch(arch *isa.Arch) *DB {
	switch arch {
	case isa.ARM32:
		return ARM32
	default:
		return AArch64
	}
}
