package api

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/calyx-lang/calyx/internal/isa"
	"github.com/calyx-lang/calyx/internal/target"
)

// HostResponse describes the detected host processor.
type HostResponse struct {
	CPU         string   `json:"cpu"`
	Arch        string   `json:"arch"`
	Features    []string `json:"features"`
	VectorWidth int      `json:"vector_width"`
}

// ResolveRequest asks for resolution of one target specification string.
type ResolveRequest struct {
	Spec string `json:"spec"`
}

// TargetInfo is the JSON rendering of one resolved target.
type TargetInfo struct {
	Name        string   `json:"name"`
	Enabled     []string `json:"enabled"`
	Disabled    int      `json:"disabled_count"`
	Flags       []string `json:"flags,omitempty"`
	Base        int      `json:"base"`
	ExtFeatures string   `json:"ext_features,omitempty"`
}

type ResolveResponse struct {
	Targets []TargetInfo `json:"targets"`
}

// MatchRequest carries a serialized target blob (base64 in JSON) and an
// optional requesting spec, defaulting to the native host target.
type MatchRequest struct {
	Blob []byte `json:"blob"`
	Spec string `json:"spec,omitempty"`
}

type MatchResponse struct {
	Index       int    `json:"index"`
	VecWidth    int    `json:"vec_width"`
	VariantName string `json:"variant_name"`
}

func (s *Server) handleHost(c *echo.Context) error {
	name, features := s.engine.Host().CPU()
	return c.JSON(http.StatusOK, HostResponse{
		CPU:         name,
		Arch:        s.db.Arch.Name,
		Features:    featureNames(s.db.Arch, features),
		VectorWidth: s.db.Arch.MaxVectorSize(features),
	})
}

func (s *Server) handleResolve(c *echo.Context) error {
	req, err := decodeJSON[ResolveRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	resolved, err := s.engine.ResolveSpec(req.Spec)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	resp := ResolveResponse{Targets: make([]TargetInfo, 0, len(resolved))}
	for i := range resolved {
		t := &resolved[i]
		resp.Targets = append(resp.Targets, TargetInfo{
			Name:        t.Name,
			Enabled:     featureNames(s.db.Arch, t.Enabled),
			Disabled:    t.Disabled.Count(),
			Flags:       flagNames(t.Flags),
			Base:        t.Base,
			ExtFeatures: t.ExtFeatures,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleMatch(c *echo.Context) error {
	req, err := decodeJSON[MatchRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	spec := req.Spec
	if spec == "" {
		spec = "native"
	}
	resolved, err := s.engine.ResolveSpec(spec)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	candidates, err := target.DecodeList(req.Blob)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	m, err := target.MatchList(s.db.Arch, resolved[0], candidates)
	if err != nil {
		return writeError(c, http.StatusUnprocessableEntity, "no_match_error", err.Error())
	}
	return c.JSON(http.StatusOK, MatchResponse{
		Index:       m.Index,
		VecWidth:    m.VecWidth,
		VariantName: candidates[m.Index].Name,
	})
}

func featureNames(arch *isa.Arch, s isa.FeatureSet) []string {
	names := make([]string, 0, s.Count())
	for _, f := range arch.Features {
		if s.Test(f.Bit) {
			names = append(names, f.Name)
		}
	}
	return names
}

var flagLabels = []struct {
	flag target.Flags
	name string
}{
	{target.CloneAll, "clone_all"},
	{target.CloneLoop, "clone_loop"},
	{target.CloneCPU, "clone_cpu"},
	{target.CloneFloat16, "clone_fp16"},
	{target.CloneMath, "clone_math"},
	{target.CloneSIMD, "clone_simd"},
	{target.VecCall, "vec_call"},
	{target.UnknownName, "unknown_name"},
	{target.OptSize, "opt_size"},
	{target.MinSize, "min_size"},
}

func flagNames(f target.Flags) []string {
	var names []string
	for _, l := range flagLabels {
		if f&l.flag != 0 {
			names = append(names, l.name)
		}
	}
	return names
}
