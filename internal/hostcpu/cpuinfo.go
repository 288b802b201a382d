package hostcpu

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/calyx-lang/calyx/internal/cpudb"
)

// identitiesFromSysfs walks root (normally /sys/devices/system/cpu) for
// per-core midr_el1 identification registers. Requires a 64-bit 4.7+
// kernel; absent files simply yield nothing.
func identitiesFromSysfs(root string) []cpudb.Identity {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}
	var (
		out  []cpudb.Identity
		seen = map[cpudb.Identity]bool{}
	)
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "cpu") {
			continue
		}
		path := filepath.Join(root, e.Name(), "regs", "identification", "midr_el1")
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		val, err := strconv.ParseUint(strings.TrimSpace(string(data)), 0, 64)
		if err != nil {
			continue
		}
		id := decodeMIDR(val)
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// decodeMIDR splits a MIDR_EL1 value into its identification fields.
func decodeMIDR(val uint64) cpudb.Identity {
	return cpudb.Identity{
		Implementer: uint8(val >> 24),
		Variant:     uint8((val >> 20) & 0xf),
		Part:        uint16((val >> 4) & 0xfff),
	}
}

// identitiesFromCPUInfo parses the flat /proc/cpuinfo format: one stanza
// per core separated by blank lines, with "CPU implementer", "CPU variant"
// and "CPU part" fields. Other labels are ignored; a stanza without both
// implementer and part is dropped.
func identitiesFromCPUInfo(r io.Reader) []cpudb.Identity {
	var (
		out  []cpudb.Identity
		seen = map[cpudb.Identity]bool{}

		cur                cpudb.Identity
		haveImpl, havePart bool
	)
	flush := func() {
		if haveImpl && havePart && !seen[cur] {
			seen[cur] = true
			out = append(out, cur)
		}
		cur = cpudb.Identity{}
		haveImpl = false
		havePart = false
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		switch key {
		case "CPU implementer":
			if v, err := strconv.ParseUint(val, 0, 8); err == nil {
				cur.Implementer = uint8(v)
				haveImpl = true
			}
		case "CPU variant":
			if v, err := strconv.ParseUint(val, 0, 8); err == nil {
				cur.Variant = uint8(v)
			}
		case "CPU part":
			if v, err := strconv.ParseUint(val, 0, 16); err == nil {
				cur.Part = uint16(v)
				havePart = true
			}
		}
	}
	flush()
	return out
}

// identities reads per-core identification tuples, preferring the sysfs
// register tree and falling back to the flat cpuinfo format.
func identities(sysfsRoot, cpuinfoPath string) []cpudb.Identity {
	if ids := identitiesFromSysfs(sysfsRoot); len(ids) > 0 {
		return ids
	}
	f, err := os.Open(cpuinfoPath)
	if err != nil {
		return nil
	}
	defer f.Close()
	return identitiesFromCPUInfo(f)
}
