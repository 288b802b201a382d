package target

import (
	"fmt"

	"github.com/calyx-lang/calyx/internal/isa"
)

// Match identifies the selected image variant and the vector width it was
// compiled for.
type Match struct {
	Index    int
	VecWidth int
}

// NoMatchError explains why no image variant can run on the requested
// target: either the first blocking feature encountered, or a vector-width
// mismatch.
type NoMatchError struct {
	Feature   string
	WidthWant int
	WidthHave int
}

func (e *NoMatchError) Error() string {
	if e.Feature != "" {
		return fmt.Sprintf("no compatible image variant: host lacks feature %q", e.Feature)
	}
	return fmt.Sprintf("no compatible image variant: needs %d-byte vectors, host supports %d", e.WidthWant, e.WidthHave)
}

// MatchList picks the image variant to run. Candidates are authored in
// increasing-specialization order with variant 0 the generic baseline, so
// among satisfying candidates the last wins. A candidate satisfies when
// its enabled features are a subset of the request's and its vector width
// does not exceed the request's; the width re-check matters even after a
// feature match because a variant assuming wider vectors than the host can
// execute would corrupt register state.
func MatchList(arch *isa.Arch, request Data, candidates []Data) (Match, error) {
	reqWidth := arch.MaxVectorSize(request.Enabled)
	best := Match{Index: -1}
	var reason *NoMatchError
	for i, c := range candidates {
		if !c.Enabled.SubsetOf(request.Enabled) {
			if reason == nil {
				bit, _ := c.Enabled.FirstDiff(request.Enabled)
				reason = &NoMatchError{Feature: arch.FeatureString(bit)}
			}
			continue
		}
		w := arch.MaxVectorSize(c.Enabled)
		if w > reqWidth {
			if reason == nil {
				reason = &NoMatchError{WidthWant: w, WidthHave: reqWidth}
			}
			continue
		}
		best = Match{Index: i, VecWidth: w}
	}
	if best.Index < 0 {
		if reason == nil {
			reason = &NoMatchError{Feature: "unknown"}
		}
		return Match{}, reason
	}
	return best, nil
}

// PareVecCall reconciles the executing target with a matched variant that
// assumes a narrower vectorized-call ABI: the architecture's SIMD features
// are unset so later feature queries agree with the code actually running.
func PareVecCall(arch *isa.Arch, t *Data, m Match) {
	if t.Flags&VecCall == 0 {
		return
	}
	if m.VecWidth == arch.MaxVectorSize(t.Enabled) {
		return
	}
	for _, b := range arch.VecCallPare {
		t.Enabled.SetBit(b, false)
		t.Disabled.SetBit(b, true)
	}
	arch.DisableDepends(&t.Enabled)
}
