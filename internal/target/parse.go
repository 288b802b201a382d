package target

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/calyx-lang/calyx/internal/cpudb"
	"github.com/calyx-lang/calyx/internal/isa"
)

// ParseList parses a target specification string into a target list.
// Descriptors are separated by ';', feature tokens by ','. A descriptor is
// a processor name followed by `+feature` / `-feature` / bare-name tokens,
// the special tokens `clone_all`, `opt_size`, `min_size` and `base(N)`,
// and `#`-prefixed opaque backend feature strings forwarded verbatim.
// Every descriptor after the first inherits from an earlier entry, index 0
// unless overridden with base(N).
func ParseList(db *cpudb.DB, spec string) ([]Data, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("target: empty specification")
	}
	var out []Data
	for i, desc := range strings.Split(spec, ";") {
		t, err := parseOne(db, desc, i)
		if err != nil {
			return nil, err
		}
		if t.Base >= i {
			return nil, fmt.Errorf("target %q: base(%d) must reference an earlier entry", t.Name, t.Base)
		}
		out = append(out, t)
	}
	return out, nil
}

func parseOne(db *cpudb.DB, desc string, index int) (Data, error) {
	arch := db.Arch
	tokens := strings.Split(desc, ",")
	name := strings.TrimSpace(tokens[0])
	if name == "" {
		return Data{}, fmt.Errorf("target %d: missing processor name", index)
	}
	t := Data{Name: db.Normalize(name)}

	var ext []string
	for _, tok := range tokens[1:] {
		tok = strings.TrimSpace(tok)
		switch {
		case tok == "":
			continue
		case tok == "clone_all":
			t.Flags |= CloneAll
		case tok == "opt_size":
			t.Flags |= OptSize
		case tok == "min_size":
			t.Flags |= MinSize
		case strings.HasPrefix(tok, "base(") && strings.HasSuffix(tok, ")"):
			n, err := strconv.Atoi(tok[len("base(") : len(tok)-1])
			if err != nil || n < 0 {
				return Data{}, fmt.Errorf("target %q: malformed %q", t.Name, tok)
			}
			if index == 0 {
				return Data{}, fmt.Errorf("target %q: first entry cannot declare a base", t.Name)
			}
			t.Base = n
		case strings.HasPrefix(tok, "#"):
			ext = append(ext, tok[1:])
		default:
			enable := true
			featName := tok
			switch tok[0] {
			case '+':
				featName = tok[1:]
			case '-':
				enable = false
				featName = tok[1:]
			}
			bits, ok := arch.Aliases[featName]
			if !ok {
				b, known := arch.FeatureBit(featName)
				if !known {
					return Data{}, fmt.Errorf("target %q: unknown feature %q", t.Name, featName)
				}
				bits = []uint32{b}
			}
			for _, b := range bits {
				if enable {
					t.Enabled.SetBit(b, true)
				} else {
					t.Disabled.SetBit(b, true)
				}
			}
		}
	}
	if conflict := t.Enabled.Intersect(t.Disabled); !conflict.IsZero() {
		bit, _ := conflict.FirstDiff(isa.FeatureSet{})
		return Data{}, fmt.Errorf("target %q: feature %q both enabled and disabled", t.Name, arch.FeatureString(bit))
	}
	if t.Flags&OptSize != 0 && t.Flags&MinSize != 0 {
		return Data{}, fmt.Errorf("target %q: opt_size and min_size are mutually exclusive", t.Name)
	}
	t.ExtFeatures = strings.Join(ext, ",")
	return t, nil
}
