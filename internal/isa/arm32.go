package isa

// AArch32 feature bits. Word 0 follows the 32-bit Linux HWCAP layout,
// word 1 HWCAP2, word 2 is synthetic (architecture revision and profile).
const (
	a32NEON     = 12
	a32VFP3     = 13
	a32VFP4     = 16
	a32HWDivARM = 17
	a32HWDiv    = 18
	a32D32      = 19

	a32Crypto = 32 + 0
	a32CRC    = 32 + 4

	a32V7       = 64 + 0
	a32V8       = 64 + 1
	a32AClass   = 64 + 2
	a32RClass   = 64 + 3
	a32MClass   = 64 + 4
	a32V8_1a    = 64 + 5
	a32V8_2a    = 64 + 6
	a32V8_3a    = 64 + 7
	a32V8_4a    = 64 + 8
	a32V8_5a    = 64 + 9
	a32V8_6a    = 64 + 10
	a32V8MMain  = 64 + 11
)

// ARM32 is the 32-bit ARM feature model.
var ARM32 = (&Arch{
	Name: "arm",
	Features: []FeatureName{
		{"neon", a32NEON},
		{"vfp3", a32VFP3},
		{"vfp4", a32VFP4},
		{"hwdiv-arm", a32HWDivARM},
		{"hwdiv", a32HWDiv},
		{"d32", a32D32},
		{"crypto", a32Crypto},
		{"crc", a32CRC},
		{"v7", a32V7},
		{"v8", a32V8},
		{"aclass", a32AClass},
		{"rclass", a32RClass},
		{"mclass", a32MClass},
		{"v8.1a", a32V8_1a},
		{"v8.2a", a32V8_2a},
		{"v8.3a", a32V8_3a},
		{"v8.4a", a32V8_4a},
		{"v8.5a", a32V8_5a},
		{"v8.6a", a32V8_6a},
		{"v8.m.main", a32V8MMain},
	},
	Deps: []Dep{
		{a32NEON, a32VFP3},
		{a32VFP4, a32VFP3},
		{a32Crypto, a32NEON},
	},
	Implies: []ImplyRule{
		{If: []uint32{a32V8_6a}, Then: []uint32{a32V8_5a}},
		{If: []uint32{a32V8_5a}, Then: []uint32{a32V8_4a}},
		{If: []uint32{a32V8_4a}, Then: []uint32{a32V8_3a}},
		{If: []uint32{a32V8_3a}, Then: []uint32{a32V8_2a}},
		{If: []uint32{a32V8_2a}, Then: []uint32{a32V8_1a}},
		{If: []uint32{a32V8_1a}, Then: []uint32{a32CRC, a32V8, a32AClass}},
		{If: []uint32{a32V8MMain}, Then: []uint32{a32V8, a32MClass}},
		{If: []uint32{a32V8}, Then: []uint32{a32V7}},
		{If: []uint32{a32V8, a32AClass}, Then: []uint32{
			a32NEON, a32VFP3, a32VFP4, a32HWDiv, a32HWDivARM, a32D32,
		}},
	},
	VectorSteps: []VectorStep{
		{a32NEON, 16},
	},
	VectorDefault: 8,
	VecCallPare:   []uint32{a32NEON},
	DefaultFloor:  VersionFloor{Version: 6},
	VersionBits: []struct {
		Version int
		Bit     uint32
	}{
		{8, a32V8},
		{7, a32V7},
	},
	ClassBits: []struct {
		Class byte
		Bit   uint32
	}{
		{'M', a32MClass},
		{'R', a32RClass},
		{'A', a32AClass},
	},
	TagRules: []TagRule{
		{If: []uint32{a32V8_6a}, Tags: []string{"+v8.6a"}},
		{If: []uint32{a32V8_5a}, Tags: []string{"+v8.5a"}},
		{If: []uint32{a32V8_4a}, Tags: []string{"+v8.4a"}},
		{If: []uint32{a32V8_3a}, Tags: []string{"+v8.3a"}},
		{If: []uint32{a32V8_2a}, Tags: []string{"+v8.2a"}},
		{If: []uint32{a32V8_1a}, Tags: []string{"+v8.1a"}},
		{If: []uint32{a32V8MMain}, Tags: []string{"+v8m.main", "+armv8-m.main"}},
		{If: []uint32{a32AClass}, Tags: []string{"+aclass"}},
		{If: []uint32{a32RClass}, Tags: []string{"+rclass"}},
		{If: []uint32{a32MClass}, Tags: []string{"+mclass"}},
		{If: []uint32{a32V8}, Tags: []string{"+v8"}},
		{If: []uint32{a32V8, a32AClass}, Tags: []string{"+armv8-a"}},
		{If: []uint32{a32V8, a32RClass}, Tags: []string{"+armv8-r"}},
		{If: []uint32{a32V8, a32MClass}, Tags: []string{"+v8m", "+armv8-m.base"}},
		{If: []uint32{a32V7}, Tags: []string{"+v7"}},
		{If: []uint32{a32V7, a32AClass}, Tags: []string{"+armv7-a"}},
		{If: []uint32{a32V7, a32RClass}, Tags: []string{"+armv7-r"}},
		{If: []uint32{a32V7, a32MClass}, Tags: []string{"+armv7-m"}},
	},
	BaseTags: []string{"+v6", "+vfp2"},
}).finish()
