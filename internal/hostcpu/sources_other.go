//go:build !linux && !darwin

package hostcpu

import "github.com/calyx-lang/calyx/internal/isa"

// collect has no platform sources here; detection degrades to the
// runtime's own capability flags and the generic baseline.
func collect(arch *isa.Arch) Inputs {
	var in Inputs
	in.HWCap, in.HWCap2 = capFallback(arch)
	return in
}
