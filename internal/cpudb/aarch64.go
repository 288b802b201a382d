package cpudb

import "github.com/calyx-lang/calyx/internal/isa"

// a64 builds a baseline from feature names. Rows stay minimal; dependency
// closure is applied when the table is finished.
func a64(names ...string) isa.FeatureSet {
	var s isa.FeatureSet
	for _, n := range names {
		b, ok := isa.AArch64.FeatureBit(n)
		if !ok {
			panic("cpudb: unknown aarch64 feature " + n)
		}
		s.SetBit(b, true)
	}
	return s
}

// AArch64 is the 64-bit ARM catalog. A representative subset of the vendor
// space; rows are data, append freely.
var AArch64 = (&DB{
	Arch: isa.AArch64,
	specs: []Spec{
		{Name: "generic", Fallback: "generic", Generic: true},
		{Name: "armv8.1-a", Fallback: "generic", Generic: true, Features: a64("v8.1a")},
		{Name: "armv8.2-a", Fallback: "generic", Generic: true, Features: a64("v8.2a")},
		{Name: "armv8.3-a", Fallback: "generic", Generic: true, Features: a64("v8.3a")},
		{Name: "armv8.4-a", Fallback: "generic", Generic: true, Features: a64("v8.4a")},
		{Name: "armv8.5-a", Fallback: "generic", Generic: true, Features: a64("v8.5a")},
		{Name: "armv8.6-a", Fallback: "generic", Generic: true, Features: a64("v8.6a")},

		{Name: "cortex-a35", Fallback: "generic", Features: a64("crc")},
		{Name: "cortex-a53", Fallback: "generic", Features: a64("crc")},
		{Name: "cortex-a55", Fallback: "generic",
			Features: a64("v8.2a", "dotprod", "rcpc", "fullfp16", "ssbs")},
		{Name: "cortex-a57", Fallback: "generic", Features: a64("crc")},
		{Name: "cortex-a72", Fallback: "generic", Features: a64("crc")},
		{Name: "cortex-a73", Fallback: "generic", Features: a64("crc")},
		{Name: "cortex-a75", Fallback: "generic",
			Features: a64("v8.2a", "dotprod", "rcpc", "fullfp16")},
		{Name: "cortex-a76", Fallback: "generic",
			Features: a64("v8.2a", "dotprod", "rcpc", "fullfp16", "ssbs")},
		{Name: "cortex-a76ae", Fallback: "generic",
			Features: a64("v8.2a", "dotprod", "rcpc", "fullfp16", "ssbs")},
		{Name: "cortex-a77", Fallback: "cortex-a76", MinVersion: 110000,
			Features: a64("v8.2a", "dotprod", "rcpc", "fullfp16", "ssbs")},
		{Name: "cortex-a78", Fallback: "cortex-a77", MinVersion: 110000,
			Features: a64("v8.2a", "dotprod", "rcpc", "fullfp16", "ssbs")},
		{Name: "cortex-x1", Fallback: "cortex-a78", MinVersion: 110000,
			Features: a64("v8.2a", "dotprod", "rcpc", "fullfp16", "ssbs")},
		{Name: "neoverse-n1", Fallback: "cortex-a76", MinVersion: 100000,
			Features: a64("v8.2a", "dotprod", "rcpc", "fullfp16", "ssbs")},
		{Name: "neoverse-v1", Fallback: "neoverse-n1", MinVersion: never,
			Features: a64("v8.4a", "sve", "i8mm", "bf16", "fullfp16", "ssbs", "rand")},
		{Name: "neoverse-n2", Fallback: "neoverse-n1", MinVersion: never,
			Features: a64("v8.5a", "sve", "sve2", "sve2-bitperm", "i8mm", "bf16",
				"fullfp16", "rand", "mte")},

		{Name: "thunderx2t99", Fallback: "generic",
			Features: a64("v8.1a", "aes", "sha2")},
		{Name: "a64fx", Fallback: "generic", MinVersion: 110000,
			Features: a64("v8.2a", "sha2", "fullfp16", "sve", "complxnum")},
		{Name: "tsv110", Fallback: "generic",
			Features: a64("v8.2a", "aes", "sha2", "dotprod", "fullfp16")},
		{Name: "carmel", Fallback: "generic", MinVersion: 110000,
			Features: a64("v8.2a", "aes", "sha2", "fullfp16")},

		{Name: "exynos-m1", Fallback: "generic", MinVersion: never,
			Features: a64("crc", "aes", "sha2")},
		{Name: "exynos-m2", Fallback: "generic", MinVersion: never,
			Features: a64("crc", "aes", "sha2")},
		{Name: "exynos-m3", Fallback: "generic", Features: a64("crc", "aes", "sha2")},
		{Name: "exynos-m4", Fallback: "generic",
			Features: a64("v8.2a", "aes", "sha2", "dotprod", "fullfp16")},
		{Name: "exynos-m5", Fallback: "exynos-m4", MinVersion: 110000,
			Features: a64("v8.2a", "aes", "sha2", "dotprod", "fullfp16")},

		{Name: "apple-a7", Fallback: "generic", MinVersion: 100000,
			Features: a64("crc", "aes", "sha2")},
		{Name: "apple-a11", Fallback: "generic", MinVersion: 100000,
			Features: a64("v8.2a", "aes", "sha2", "fullfp16")},
		{Name: "apple-a12", Fallback: "generic", MinVersion: 100000,
			Features: a64("v8.3a", "aes", "sha2", "fullfp16")},
		{Name: "apple-a13", Fallback: "generic", MinVersion: 100000,
			Features: a64("v8.4a", "aes", "sha2", "fp16fml", "fullfp16", "sha3")},
		{Name: "apple-a14", Fallback: "apple-a13", MinVersion: 120000,
			Features: a64("v8.5a", "aes", "sha2", "dotprod", "fp16fml", "fullfp16", "sha3")},
		{Name: "apple-a15", Fallback: "apple-a14", MinVersion: 160000,
			Features: a64("v8.5a", "aes", "sha2", "dotprod", "fp16fml", "fullfp16", "sha3",
				"i8mm", "bf16")},
		{Name: "apple-a16", Fallback: "apple-a14", MinVersion: 160000,
			Features: a64("v8.5a", "aes", "sha2", "dotprod", "fp16fml", "fullfp16", "sha3",
				"i8mm", "bf16")},
		{Name: "apple-m1", Fallback: "apple-a14", MinVersion: 130000,
			Features: a64("v8.5a", "aes", "sha2", "dotprod", "fp16fml", "fullfp16", "sha3")},
		{Name: "apple-m2", Fallback: "apple-m1", MinVersion: 160000,
			Features: a64("v8.5a", "aes", "sha2", "dotprod", "fp16fml", "fullfp16", "sha3",
				"i8mm", "bf16")},
		{Name: "apple-m3", Fallback: "apple-m2", MinVersion: 180000,
			Features: a64("v8.5a", "aes", "sha2", "dotprod", "fp16fml", "fullfp16", "sha3",
				"i8mm", "bf16")},
		{Name: "apple-m4", Fallback: "apple-m3", MinVersion: 190000,
			Features: a64("v8.5a", "aes", "sha2", "dotprod", "fp16fml", "fullfp16", "sha3",
				"i8mm", "bf16")},
	},
	aliases: map[string]string{
		"ares":    "neoverse-n1",
		"zeus":    "neoverse-v1",
		"cyclone": "apple-a7",
	},
	rank: []string{
		"cortex-a35", "cortex-a53", "cortex-a55", "cortex-a57",
		"cortex-a72", "cortex-a73", "cortex-a75", "cortex-a76",
		"neoverse-n1", "neoverse-n2", "neoverse-v1", "carmel",
		"exynos-m1", "exynos-m2", "exynos-m3", "exynos-m4", "exynos-m5",
	},
	parts: []partEntry{
		// ARM
		{0x41, 0xd04, -1, "cortex-a35"},
		{0x41, 0xd03, -1, "cortex-a53"},
		{0x41, 0xd05, -1, "cortex-a55"},
		{0x41, 0xd07, -1, "cortex-a57"},
		{0x41, 0xd08, -1, "cortex-a72"},
		{0x41, 0xd09, -1, "cortex-a73"},
		{0x41, 0xd0a, -1, "cortex-a75"},
		{0x41, 0xd0b, -1, "cortex-a76"},
		{0x41, 0xd0c, -1, "neoverse-n1"},
		{0x41, 0xd0d, -1, "cortex-a77"},
		{0x41, 0xd0e, -1, "cortex-a76ae"},
		{0x41, 0xd40, -1, "neoverse-v1"},
		{0x41, 0xd41, -1, "cortex-a78"},
		{0x41, 0xd44, -1, "cortex-x1"},
		{0x41, 0xd49, -1, "neoverse-n2"},
		// Cavium
		{0x43, 0x0af, -1, "thunderx2t99"},
		// Fujitsu
		{0x46, 0x001, -1, "a64fx"},
		// HiSilicon (Kirin 980 pairs rebadged A76 cores)
		{0x48, 0xd01, -1, "tsv110"},
		{0x48, 0xd40, -1, "cortex-a76"},
		// NVIDIA
		{0x4e, 0x004, -1, "carmel"},
		// Qualcomm Kryo derivatives report the underlying ARM core
		{0x51, 0x800, -1, "cortex-a73"},
		{0x51, 0x801, -1, "cortex-a53"},
		{0x51, 0x802, -1, "cortex-a75"},
		{0x51, 0x803, -1, "cortex-a55"},
		{0x51, 0x804, -1, "cortex-a76"},
		{0x51, 0x805, -1, "cortex-a55"},
		// Samsung: part 1 variant 4 is the M2 respin of the M1
		{0x53, 0x001, 4, "exynos-m2"},
		{0x53, 0x001, -1, "exynos-m1"},
		{0x53, 0x002, 1, "exynos-m3"},
		{0x53, 0x003, 1, "exynos-m4"},
		{0x53, 0x004, 1, "exynos-m5"},
		// Apple (per-core ids; e- and p-cores of one SoC map to one model)
		{0x61, 0x001, -1, "apple-a7"},
		{0x61, 0x008, -1, "apple-a11"},
		{0x61, 0x009, -1, "apple-a11"},
		{0x61, 0x00b, -1, "apple-a12"},
		{0x61, 0x00c, -1, "apple-a12"},
		{0x61, 0x010, -1, "apple-a12"},
		{0x61, 0x011, -1, "apple-a12"},
		{0x61, 0x012, -1, "apple-a13"},
		{0x61, 0x013, -1, "apple-a13"},
		{0x61, 0x020, -1, "apple-a14"},
		{0x61, 0x021, -1, "apple-a14"},
		{0x61, 0x022, -1, "apple-m1"},
		{0x61, 0x023, -1, "apple-m1"},
		{0x61, 0x024, -1, "apple-m1"},
		{0x61, 0x025, -1, "apple-m1"},
		{0x61, 0x028, -1, "apple-m1"},
		{0x61, 0x029, -1, "apple-m1"},
		{0x61, 0x030, -1, "apple-a15"},
		{0x61, 0x031, -1, "apple-a15"},
		{0x61, 0x032, -1, "apple-m2"},
		{0x61, 0x033, -1, "apple-m2"},
		{0x61, 0x034, -1, "apple-m2"},
		{0x61, 0x035, -1, "apple-m2"},
		{0x61, 0x038, -1, "apple-m2"},
		{0x61, 0x039, -1, "apple-m2"},
		{0x61, 0x040, -1, "apple-a16"},
		{0x61, 0x041, -1, "apple-a16"},
		{0x61, 0x042, -1, "apple-m3"},
		{0x61, 0x043, -1, "apple-m3"},
		{0x61, 0x044, -1, "apple-m3"},
		{0x61, 0x045, -1, "apple-m3"},
		{0x61, 0x048, -1, "apple-m3"},
		{0x61, 0x049, -1, "apple-m3"},
		{0x61, 0x052, -1, "apple-m4"},
		{0x61, 0x053, -1, "apple-m4"},
		{0x61, 0x054, -1, "apple-m4"},
		{0x61, 0x055, -1, "apple-m4"},
		{0x61, 0x058, -1, "apple-m4"},
		{0x61, 0x059, -1, "apple-m4"},
	},
}).finish()
