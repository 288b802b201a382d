package hostcpu

import (
	"encoding/binary"
	"strconv"

	"golang.org/x/sys/cpu"

	"github.com/calyx-lang/calyx/internal/isa"
)

// ELF auxiliary vector tags for the hardware capability words.
const (
	atHWCap  = 16
	atHWCap2 = 26
)

// parseAuxv extracts AT_HWCAP and AT_HWCAP2 from a raw auxiliary vector
// (pairs of native-width words, zero tag terminated).
func parseAuxv(data []byte) (hwcap, hwcap2 uint64) {
	word := strconv.IntSize / 8
	for off := 0; off+2*word <= len(data); off += 2 * word {
		var tag, val uint64
		if word == 8 {
			tag = binary.NativeEndian.Uint64(data[off:])
			val = binary.NativeEndian.Uint64(data[off+8:])
		} else {
			tag = uint64(binary.NativeEndian.Uint32(data[off:]))
			val = uint64(binary.NativeEndian.Uint32(data[off+4:]))
		}
		switch tag {
		case 0:
			return hwcap, hwcap2
		case atHWCap:
			hwcap = val
		case atHWCap2:
			hwcap2 = val
		}
	}
	return hwcap, hwcap2
}

// capFallback reconstructs the capability words from the runtime's own
// feature flags when the auxiliary vector is unreadable. Coarser than the
// real words but always available.
func capFallback(arch *isa.Arch) (hwcap, hwcap2 uint64) {
	set := func(word *uint64, bit uint, on bool) {
		if on {
			*word |= 1 << bit
		}
	}
	switch arch {
	case isa.AArch64:
		set(&hwcap, 3, cpu.ARM64.HasAES)
		set(&hwcap, 6, cpu.ARM64.HasSHA2)
		set(&hwcap, 7, cpu.ARM64.HasCRC32)
		set(&hwcap, 8, cpu.ARM64.HasATOMICS)
		set(&hwcap, 9, cpu.ARM64.HasFPHP)
		set(&hwcap, 12, cpu.ARM64.HasASIMDRDM)
		set(&hwcap, 13, cpu.ARM64.HasJSCVT)
		set(&hwcap, 14, cpu.ARM64.HasFCMA)
		set(&hwcap, 15, cpu.ARM64.HasLRCPC)
		set(&hwcap, 16, cpu.ARM64.HasDCPOP)
		set(&hwcap, 17, cpu.ARM64.HasSHA3)
		set(&hwcap, 19, cpu.ARM64.HasSM4)
		set(&hwcap, 20, cpu.ARM64.HasASIMDDP)
		set(&hwcap, 21, cpu.ARM64.HasSHA512)
		set(&hwcap, 22, cpu.ARM64.HasSVE)
		set(&hwcap, 23, cpu.ARM64.HasASIMDFHM)
		set(&hwcap, 24, cpu.ARM64.HasDIT)
		set(&hwcap2, 1, cpu.ARM64.HasSVE2)
		set(&hwcap2, 13, cpu.ARM64.HasI8MM)
	case isa.ARM32:
		set(&hwcap, 12, cpu.ARM.HasNEON)
		set(&hwcap, 13, cpu.ARM.HasVFPv3)
		set(&hwcap, 16, cpu.ARM.HasVFPv4)
		set(&hwcap, 17, cpu.ARM.HasIDIVA)
		set(&hwcap, 18, cpu.ARM.HasIDIVT)
		set(&hwcap, 19, cpu.ARM.HasVFPD32)
		set(&hwcap2, 0, cpu.ARM.HasAES)
		set(&hwcap2, 4, cpu.ARM.HasCRC32)
	}
	return hwcap, hwcap2
}
