//go:build linux

package hostcpu

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/calyx-lang/calyx/internal/isa"
)

const (
	sysfsCPURoot = "/sys/devices/system/cpu"
	cpuinfoPath  = "/proc/cpuinfo"
)

// collect gathers the Linux detection inputs: capability words from the
// auxiliary vector (falling back to the runtime's own flags if unreadable),
// per-core identification registers, and the kernel machine string.
func collect(arch *isa.Arch) Inputs {
	var in Inputs
	if data, err := os.ReadFile("/proc/self/auxv"); err == nil {
		in.HWCap, in.HWCap2 = parseAuxv(data)
	} else {
		in.HWCap, in.HWCap2 = capFallback(arch)
	}
	in.Identities = identities(sysfsCPURoot, cpuinfoPath)

	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		in.Machine = unix.ByteSliceToString(uts.Machine[:])
	}
	return in
}
