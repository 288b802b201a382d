package hostcpu

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/calyx-lang/calyx/internal/cpudb"
	"github.com/calyx-lang/calyx/internal/isa"
)

func bit(t *testing.T, arch *isa.Arch, name string) uint32 {
	t.Helper()
	b, ok := arch.FeatureBit(name)
	if !ok {
		t.Fatalf("unknown feature %q", name)
	}
	return b
}

func TestResolveNoInputs(t *testing.T) {
	t.Parallel()
	name, features := Resolve(cpudb.AArch64, Inputs{})
	if name != "generic" {
		t.Fatalf("name = %q, want generic", name)
	}
	if !features.IsZero() {
		t.Fatalf("features = %v, want empty", features)
	}
}

func TestResolveCapWords(t *testing.T) {
	t.Parallel()
	in := Inputs{HWCap: 1<<3 | 1<<7} // aes, crc
	name, features := Resolve(cpudb.AArch64, in)
	if name != "generic" {
		t.Fatalf("name = %q, want generic", name)
	}
	for _, f := range []string{"aes", "crc"} {
		if !features.Test(bit(t, isa.AArch64, f)) {
			t.Fatalf("missing %s", f)
		}
	}
	if features.Test(bit(t, isa.AArch64, "sve")) {
		t.Fatal("sve set without capability bit")
	}
}

func TestResolveCapDerived(t *testing.T) {
	t.Parallel()
	in := Inputs{HWCap: 1 << 31} // PACA
	_, features := Resolve(cpudb.AArch64, in)
	if !features.Test(bit(t, isa.AArch64, "pauth")) {
		t.Fatal("pauth not derived from capability word")
	}
}

func TestResolveKnownCore(t *testing.T) {
	t.Parallel()
	in := Inputs{Identities: []cpudb.Identity{{Implementer: 0x41, Part: 0xd08}}}
	name, features := Resolve(cpudb.AArch64, in)
	if name != "cortex-a72" {
		t.Fatalf("name = %q, want cortex-a72", name)
	}
	if !features.Test(bit(t, isa.AArch64, "crc")) {
		t.Fatal("catalog baseline not folded in")
	}
}

// An unrecognized core must pull the extra feature set down to nothing,
// leaving only what the capability words vouch for.
func TestResolveUnknownCoreConservative(t *testing.T) {
	t.Parallel()
	in := Inputs{
		HWCap: 1 << 3, // aes
		Identities: []cpudb.Identity{
			{Implementer: 0x41, Part: 0xd08}, // cortex-a72
			{Implementer: 0xff, Part: 0xfff}, // not in the catalog
		},
	}
	name, features := Resolve(cpudb.AArch64, in)
	if name != "cortex-a72" {
		t.Fatalf("name = %q, want cortex-a72", name)
	}
	if !features.Test(bit(t, isa.AArch64, "aes")) {
		t.Fatal("capability-word feature lost")
	}
	if features.Test(bit(t, isa.AArch64, "crc")) {
		t.Fatal("catalog feature kept despite unrecognized core")
	}
}

func TestResolveBigLittle(t *testing.T) {
	t.Parallel()
	in := Inputs{Identities: []cpudb.Identity{
		{Implementer: 0x41, Part: 0xd03}, // cortex-a53
		{Implementer: 0x41, Part: 0xd0b}, // cortex-a76
	}}
	name, features := Resolve(cpudb.AArch64, in)
	if name != "cortex-a76" {
		t.Fatalf("name = %q, want cortex-a76", name)
	}
	// Features still come from the common subset of both clusters.
	if !features.Test(bit(t, isa.AArch64, "crc")) {
		t.Fatal("shared crc missing")
	}
	if features.Test(bit(t, isa.AArch64, "lse")) {
		t.Fatal("big-core lse leaked past the little core")
	}
}

func TestResolveForcedName(t *testing.T) {
	t.Parallel()
	name, features := Resolve(cpudb.AArch64, Inputs{ForcedName: "apple-m1"})
	if name != "apple-m1" {
		t.Fatalf("name = %q, want apple-m1", name)
	}
	if !features.Test(bit(t, isa.AArch64, "aes")) {
		t.Fatal("forced model baseline missing")
	}
}

func TestResolveMachineFloor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		machine string
		name    string
	}{
		{"armv6l", "generic"},
		{"armv7l", "armv7-a"},
		{"armv7ml", "armv7-m"},
		{"armv8l", "armv8-a"},
	}
	for _, tt := range tests {
		name, features := Resolve(cpudb.ARM32, Inputs{Machine: tt.machine})
		if name != tt.name {
			t.Fatalf("machine %q: name = %q, want %q", tt.machine, name, tt.name)
		}
		wantV7 := strings.Contains(tt.machine, "v7") || strings.Contains(tt.machine, "v8")
		if got := features.Test(bit(t, isa.ARM32, "v7")); got != wantV7 {
			t.Fatalf("machine %q: v7 bit = %v, want %v", tt.machine, got, wantV7)
		}
	}
}

// A 32-bit process on a v8 kernel must not resolve to a v7-only model.
func TestResolveFloorFiltersCores(t *testing.T) {
	t.Parallel()
	in := Inputs{
		Machine:    "armv8l",
		Identities: []cpudb.Identity{{Implementer: 0x41, Part: 0xc0f}}, // cortex-a15
	}
	name, _ := Resolve(cpudb.ARM32, in)
	if name != "armv8-a" {
		t.Fatalf("name = %q, want armv8-a", name)
	}
}

func auxvPair(tag, val uint64) []byte {
	if strconv.IntSize == 64 {
		return binary.NativeEndian.AppendUint64(
			binary.NativeEndian.AppendUint64(nil, tag), val)
	}
	return binary.NativeEndian.AppendUint32(
		binary.NativeEndian.AppendUint32(nil, uint32(tag)), uint32(val))
}

func TestParseAuxv(t *testing.T) {
	t.Parallel()
	data := auxvPair(atHWCap, 0x89) // aes|crc|fp
	data = append(data, auxvPair(atHWCap2, 0x2)...)
	data = append(data, auxvPair(0, 0)...)
	data = append(data, auxvPair(atHWCap, 0xffff)...) // past terminator, ignored
	hwcap, hwcap2 := parseAuxv(data)
	if hwcap != 0x89 || hwcap2 != 0x2 {
		t.Fatalf("parseAuxv = %#x, %#x", hwcap, hwcap2)
	}
}

func TestDecodeMIDR(t *testing.T) {
	t.Parallel()
	// Implementer 0x41, variant 0x1, part 0xd0c.
	id := decodeMIDR(0x411fd0c1)
	want := cpudb.Identity{Implementer: 0x41, Variant: 0x1, Part: 0xd0c}
	if id != want {
		t.Fatalf("decodeMIDR = %+v, want %+v", id, want)
	}
}

func TestIdentitiesFromSysfs(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	write := func(cpu, midr string) {
		dir := filepath.Join(root, cpu, "regs", "identification")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "midr_el1"), []byte(midr), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	write("cpu0", "0x410fd030\n")
	write("cpu1", "0x410fd030\n")
	write("cpu2", "0x410fd080\n")

	ids := identitiesFromSysfs(root)
	want := []cpudb.Identity{
		{Implementer: 0x41, Part: 0xd03},
		{Implementer: 0x41, Part: 0xd08},
	}
	if len(ids) != len(want) {
		t.Fatalf("got %d identities, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("identity %d = %+v, want %+v", i, ids[i], want[i])
		}
	}
}

func TestIdentitiesFromCPUInfo(t *testing.T) {
	t.Parallel()
	const cpuinfo = `processor	: 0
model name	: ARMv8 Processor rev 4 (v8l)
CPU implementer	: 0x41
CPU architecture: 8
CPU variant	: 0x0
CPU part	: 0xd03
CPU revision	: 4

processor	: 1
CPU implementer	: 0x41
CPU variant	: 0x0
CPU part	: 0xd03

processor	: 2
CPU implementer	: 0x41
CPU variant	: 0x1
CPU part	: 0xd08

processor	: 3
CPU architecture: 8
`
	ids := identitiesFromCPUInfo(strings.NewReader(cpuinfo))
	want := []cpudb.Identity{
		{Implementer: 0x41, Part: 0xd03},
		{Implementer: 0x41, Variant: 0x1, Part: 0xd08},
	}
	if len(ids) != len(want) {
		t.Fatalf("got %d identities, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("identity %d = %+v, want %+v", i, ids[i], want[i])
		}
	}
}

func TestHostMemoizes(t *testing.T) {
	t.Parallel()
	h := New(cpudb.AArch64)
	name1, feats1 := h.CPU()
	name2, feats2 := h.CPU()
	if name1 == "" {
		t.Fatal("empty model name")
	}
	if name1 != name2 || feats1 != feats2 {
		t.Fatal("detection result not stable")
	}
}

func TestHostSupportsUnknownFeature(t *testing.T) {
	t.Parallel()
	h := New(cpudb.AArch64)
	if h.Supports("no-such-feature") {
		t.Fatal("unknown feature reported as supported")
	}
}
