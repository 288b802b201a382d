package isa

// AArch64 feature bits. Words 0 and 1 follow the Linux HWCAP/HWCAP2 layout
// so a capability vector loads straight into the set; word 2 is synthetic.
const (
	a64AES       = 3
	a64SHA2      = 6
	a64CRC       = 7
	a64LSE       = 8
	a64FullFP16  = 9
	a64RDM       = 12
	a64JSConv    = 13
	a64ComplxNum = 14
	a64RCpc      = 15
	a64CCPP      = 16
	a64SHA3      = 17
	a64SM4       = 19
	a64DotProd   = 20
	a64SHA512    = 21
	a64SVE       = 22
	a64FP16FML   = 23
	a64DIT       = 24
	a64RCpcImmo  = 26
	a64FlagM     = 27
	a64SSBS      = 28
	a64SB        = 29

	a64CCDP        = 32 + 0
	a64SVE2        = 32 + 1
	a64SVE2AES     = 32 + 2
	a64SVE2BitPerm = 32 + 4
	a64SVE2SHA3    = 32 + 5
	a64SVE2SM4     = 32 + 6
	a64AltNZCV     = 32 + 7
	a64FPToInt     = 32 + 8
	a64F32MM       = 32 + 10
	a64F64MM       = 32 + 11
	a64I8MM        = 32 + 13
	a64BF16        = 32 + 14
	a64Rand        = 32 + 16
	a64BTI         = 32 + 17
	a64MTE         = 32 + 18

	a64V8_1a = 64 + 0
	a64V8_2a = 64 + 1
	a64V8_3a = 64 + 2
	a64V8_4a = 64 + 3
	a64V8_5a = 64 + 4
	a64V8_6a = 64 + 5
	a64PAuth = 64 + 6
)

// AArch64 is the 64-bit ARM feature model.
var AArch64 = (&Arch{
	Name: "aarch64",
	Features: []FeatureName{
		{"aes", a64AES},
		{"sha2", a64SHA2},
		{"crc", a64CRC},
		{"lse", a64LSE},
		{"fullfp16", a64FullFP16},
		{"rdm", a64RDM},
		{"jsconv", a64JSConv},
		{"complxnum", a64ComplxNum},
		{"rcpc", a64RCpc},
		{"ccpp", a64CCPP},
		{"sha3", a64SHA3},
		{"sm4", a64SM4},
		{"dotprod", a64DotProd},
		{"sha512", a64SHA512},
		{"sve", a64SVE},
		{"fp16fml", a64FP16FML},
		{"dit", a64DIT},
		{"rcpc-immo", a64RCpcImmo},
		{"flagm", a64FlagM},
		{"ssbs", a64SSBS},
		{"sb", a64SB},
		{"ccdp", a64CCDP},
		{"sve2", a64SVE2},
		{"sve2-aes", a64SVE2AES},
		{"sve2-bitperm", a64SVE2BitPerm},
		{"sve2-sha3", a64SVE2SHA3},
		{"sve2-sm4", a64SVE2SM4},
		{"altnzcv", a64AltNZCV},
		{"fptoint", a64FPToInt},
		{"f32mm", a64F32MM},
		{"f64mm", a64F64MM},
		{"i8mm", a64I8MM},
		{"bf16", a64BF16},
		{"rand", a64Rand},
		{"bti", a64BTI},
		{"mte", a64MTE},
		{"v8.1a", a64V8_1a},
		{"v8.2a", a64V8_2a},
		{"v8.3a", a64V8_3a},
		{"v8.4a", a64V8_4a},
		{"v8.5a", a64V8_5a},
		{"v8.6a", a64V8_6a},
		{"pauth", a64PAuth},
	},
	Aliases: map[string][]uint32{
		// The backend treats crypto as aes+sha2.
		"crypto": {a64AES, a64SHA2},
	},
	Deps: []Dep{
		{a64RCpcImmo, a64RCpc},
		{a64SHA3, a64SHA2},
		{a64CCDP, a64CCPP},
		{a64SVE, a64FullFP16},
		{a64FP16FML, a64FullFP16},
		{a64AltNZCV, a64FlagM},
		{a64SVE2, a64SVE},
		{a64SVE2AES, a64SVE2},
		{a64SVE2AES, a64AES},
		{a64SVE2BitPerm, a64SVE2},
		{a64SVE2SHA3, a64SVE2},
		{a64SVE2SHA3, a64SHA3},
		{a64SVE2SM4, a64SVE2},
		{a64SVE2SM4, a64SM4},
		{a64F32MM, a64SVE},
		{a64F64MM, a64SVE},
	},
	Implies: []ImplyRule{
		{If: []uint32{a64V8_6a}, Then: []uint32{a64V8_5a, a64I8MM, a64BF16}},
		{If: []uint32{a64V8_5a}, Then: []uint32{a64V8_4a, a64SB, a64CCDP, a64AltNZCV, a64FPToInt}},
		{If: []uint32{a64V8_4a}, Then: []uint32{a64V8_3a, a64DIT, a64RCpcImmo, a64FlagM}},
		{If: []uint32{a64V8_3a}, Then: []uint32{a64V8_2a, a64JSConv, a64ComplxNum, a64RCpc}},
		{If: []uint32{a64V8_2a}, Then: []uint32{a64V8_1a, a64CCPP}},
		{If: []uint32{a64V8_1a}, Then: []uint32{a64CRC, a64LSE, a64RDM}},
	},
	VectorSteps: []VectorStep{
		{a64SVE2, 256},
		{a64SVE, 128},
	},
	VectorDefault: 16,
	// HWCAP bit 31 (PACG) signals pointer authentication without a
	// feature slot of its own.
	CapDerived: []CapDerivedBit{
		{Word: 0, Bit: 31, Feature: a64PAuth},
	},
	DefaultFloor: VersionFloor{Version: 8, Class: 'A'},
	TagRules: []TagRule{
		{If: []uint32{a64V8_6a}, Tags: []string{"+v8.6a"}},
		{If: []uint32{a64V8_5a}, Tags: []string{"+v8.5a"}},
		{If: []uint32{a64V8_4a}, Tags: []string{"+v8.4a"}},
		{If: []uint32{a64V8_3a}, Tags: []string{"+v8.3a"}},
		{If: []uint32{a64V8_2a}, Tags: []string{"+v8.2a"}},
		{If: []uint32{a64V8_1a}, Tags: []string{"+v8.1a"}},
	},
	BaseTags: []string{"+neon", "+fp-armv8"},
}).finish()
