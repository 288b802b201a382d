package isa

import "testing"

func bit(t *testing.T, a *Arch, name string) uint32 {
	t.Helper()
	b, ok := a.FeatureBit(name)
	if !ok {
		t.Fatalf("unknown feature %q on %s", name, a.Name)
	}
	return b
}

func TestEnableDependsVersionChain(t *testing.T) {
	t.Parallel()

	s := Set(bit(t, AArch64, "v8.6a"))
	AArch64.EnableDepends(&s)

	for _, name := range []string{
		"v8.5a", "v8.4a", "v8.3a", "v8.2a", "v8.1a",
		"crc", "lse", "rdm", "ccpp", "rcpc", "jsconv", "complxnum",
		"dit", "flagm", "sb", "ccdp", "altnzcv", "fptoint", "i8mm", "bf16",
	} {
		if !s.Test(bit(t, AArch64, name)) {
			t.Fatalf("v8.6a closure missing %s", name)
		}
	}
}

func TestEnableDependsIdempotent(t *testing.T) {
	t.Parallel()

	for _, seed := range []FeatureSet{
		{},
		Set(bit(t, AArch64, "sve2-sm4")),
		Set(bit(t, AArch64, "v8.4a"), bit(t, AArch64, "fp16fml")),
		AArch64.Mask,
	} {
		once := seed
		AArch64.EnableDepends(&once)
		twice := once
		AArch64.EnableDepends(&twice)
		if once != twice {
			t.Fatalf("closure not idempotent for seed %v", seed)
		}
	}
}

func TestEnableDependsEdges(t *testing.T) {
	t.Parallel()

	// After closure every edge (f, p) with f set must have p set.
	s := Set(bit(t, AArch64, "sve2-aes"))
	AArch64.EnableDepends(&s)
	for _, d := range AArch64.Deps {
		if s.Test(d.Feature) && !s.Test(d.Requires) {
			t.Fatalf("feature %d missing prerequisite %d", d.Feature, d.Requires)
		}
	}
	for _, name := range []string{"sve2", "sve", "aes", "fullfp16"} {
		if !s.Test(bit(t, AArch64, name)) {
			t.Fatalf("sve2-aes closure missing %s", name)
		}
	}
}

func TestDisableDependsOnlyClears(t *testing.T) {
	t.Parallel()

	s := Set(
		bit(t, AArch64, "sve2"),
		bit(t, AArch64, "sve"),
		bit(t, AArch64, "crc"),
	)
	// fullfp16 is missing, so sve and transitively sve2 must fall away.
	before := s
	AArch64.DisableDepends(&s)

	if !s.SubsetOf(before) {
		t.Fatalf("disable closure set a bit: before %v after %v", before, s)
	}
	if s.Test(bit(t, AArch64, "sve")) || s.Test(bit(t, AArch64, "sve2")) {
		t.Fatalf("sve chain should be cleared without fullfp16: %v", s)
	}
	if !s.Test(bit(t, AArch64, "crc")) {
		t.Fatalf("crc has no prerequisite and must survive")
	}
}

func TestARM32ProfileImplications(t *testing.T) {
	t.Parallel()

	s := Set(bit(t, ARM32, "v8.1a"))
	ARM32.EnableDepends(&s)
	for _, name := range []string{
		"v8", "v7", "aclass", "crc",
		"neon", "vfp3", "vfp4", "hwdiv", "hwdiv-arm", "d32",
	} {
		if !s.Test(bit(t, ARM32, name)) {
			t.Fatalf("v8.1a closure missing %s", name)
		}
	}
}

func TestMaxVectorSize(t *testing.T) {
	t.Parallel()

	if got := AArch64.MaxVectorSize(FeatureSet{}); got != 16 {
		t.Fatalf("aarch64 default width: got %d want 16", got)
	}
	sve := Set(bit(t, AArch64, "sve"))
	if got := AArch64.MaxVectorSize(sve); got != 128 {
		t.Fatalf("sve width: got %d want 128", got)
	}
	sve2 := Set(bit(t, AArch64, "sve2"))
	if got := AArch64.MaxVectorSize(sve2); got != 256 {
		t.Fatalf("sve2 width: got %d want 256", got)
	}
	if got := ARM32.MaxVectorSize(FeatureSet{}); got != 8 {
		t.Fatalf("arm default width: got %d want 8", got)
	}
	if got := ARM32.MaxVectorSize(Set(bit(t, ARM32, "neon"))); got != 16 {
		t.Fatalf("neon width: got %d want 16", got)
	}
}

func TestFloorRoundTrip(t *testing.T) {
	t.Parallel()

	var s FeatureSet
	ARM32.ApplyFloor(&s, VersionFloor{Version: 8, Class: 'A'})
	floor := ARM32.FeatureFloor(s)
	if floor.Version != 8 || floor.Class != 'A' {
		t.Fatalf("floor mismatch: got %+v", floor)
	}

	// AArch64 has a fixed floor.
	if f := AArch64.FeatureFloor(FeatureSet{}); f.Version != 8 || f.Class != 'A' {
		t.Fatalf("aarch64 floor mismatch: got %+v", f)
	}
}
