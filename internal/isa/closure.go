package isa

// EnableDepends closes s over the architecture's implication rules and
// dependency edges: any feature that is set pulls in everything it requires.
// The pass iterates to a fixed point; the tables are small so this settles
// in at most a handful of rounds.
func (a *Arch) EnableDepends(s *FeatureSet) {
	for {
		changed := false
		for _, r := range a.Implies {
			hit := true
			for _, b := range r.If {
				if !s.Test(b) {
					hit = false
					break
				}
			}
			if !hit {
				continue
			}
			for _, b := range r.Then {
				if !s.Test(b) {
					s.SetBit(b, true)
					changed = true
				}
			}
		}
		for _, d := range a.Deps {
			if s.Test(d.Feature) && !s.Test(d.Requires) {
				s.SetBit(d.Requires, true)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// DisableDepends is the reverse closure: a feature whose prerequisite is
// clear cannot stay enabled. It only ever clears bits.
func (a *Arch) DisableDepends(s *FeatureSet) {
	for {
		changed := false
		for _, d := range a.Deps {
			if s.Test(d.Feature) && !s.Test(d.Requires) {
				s.SetBit(d.Feature, false)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}
