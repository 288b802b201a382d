package target

import "github.com/calyx-lang/calyx/internal/isa"

// cloneGroup maps a feature group to the clone flag set when the group is
// entirely absent from the base target but partially present in the
// specialization.
type cloneGroup struct {
	flag     Flags
	features []string
}

func cloneGroups(arch *isa.Arch) []cloneGroup {
	switch arch {
	case isa.ARM32:
		return []cloneGroup{
			{CloneMath, []string{"vfp3", "vfp4", "neon"}},
			{CloneSIMD, []string{"neon"}},
		}
	default:
		return []cloneGroup{
			{CloneFloat16, []string{"fp16fml", "fullfp16"}},
		}
	}
}

// ApplyClonePolicy decides, per non-base target, which compilation axes
// the backend must recompile for that variant. Specialized targets always
// clone processor-identity branches and hot loops; the feature-group flags
// are added when the specialization gains a group its base lacks entirely.
// Targets marked CloneAll already clone everything and are left alone.
func ApplyClonePolicy(arch *isa.Arch, targets []Data) {
	groups := cloneGroups(arch)
	for i := 1; i < len(targets); i++ {
		t := &targets[i]
		if t.Flags&CloneAll != 0 {
			continue
		}
		t.Flags |= CloneCPU | CloneLoop
		base := &targets[t.Base]
		for _, g := range groups {
			baseHas := false
			targetHas := false
			for _, name := range g.features {
				b, ok := arch.FeatureBit(name)
				if !ok {
					continue
				}
				if base.Enabled.Test(b) {
					baseHas = true
				}
				if t.Enabled.Test(b) {
					targetHas = true
				}
			}
			if !baseHas && targetHas {
				t.Flags |= g.flag
			}
		}
	}
}
