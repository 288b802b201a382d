//go:build darwin

package hostcpu

import (
	"strings"

	"golang.org/x/sys/unix"

	"github.com/calyx-lang/calyx/internal/isa"
)

// collect maps the Darwin brand string onto a catalog model. There are no
// per-core identification registers to read here; the brand string plus the
// runtime's capability flags are the whole story.
func collect(arch *isa.Arch) Inputs {
	var in Inputs
	in.HWCap, in.HWCap2 = capFallback(arch)
	if brand, err := unix.Sysctl("machdep.cpu.brand_string"); err == nil {
		in.ForcedName = modelFromBrand(brand)
	}
	return in
}

func modelFromBrand(brand string) string {
	brand = strings.ToLower(brand)
	for _, m := range []string{"m4", "m3", "m2", "m1"} {
		if strings.Contains(brand, m) {
			return "apple-" + m
		}
	}
	return ""
}
