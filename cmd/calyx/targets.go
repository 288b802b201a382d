package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/calyx-lang/calyx/internal/dispatch"
	"github.com/calyx-lang/calyx/internal/target"
)

type targetReport struct {
	Name        string   `json:"name"`
	Enabled     []string `json:"enabled"`
	Flags       []string `json:"flags,omitempty"`
	Base        int      `json:"base"`
	BackendCPU  string   `json:"backend_cpu"`
	BackendArgs []string `json:"backend_features"`
}

func targetsCmd() *cli.Command {
	return &cli.Command{
		Name:  "targets",
		Usage: "Resolve a target specification and print the compilation plan",
		Flags: append(append(commonArchFlags(), outputFlags()...), loggingFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyConfig(cmd, LoadConfig())
			db := selectedDB()
			engine := dispatch.New(db, newLogger(nil))

			cs, err := engine.CloneTargets(targetSpec)
			if err != nil {
				return err
			}

			reports := make([]targetReport, 0, len(cs.Targets))
			for i := range cs.Targets {
				t := &cs.Targets[i]
				var enabled []string
				for _, f := range db.Arch.Features {
					if t.Enabled.Test(f.Bit) {
						enabled = append(enabled, f.Name)
					}
				}
				reports = append(reports, targetReport{
					Name:        t.Name,
					Enabled:     enabled,
					Flags:       flagStrings(t.Flags),
					Base:        t.Base,
					BackendCPU:  cs.Specs[i].CPU,
					BackendArgs: cs.Specs[i].Features,
				})
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(reports)
			}
			for i, r := range reports {
				fmt.Printf("[%d] %s (base %d)\n", i, r.Name, r.Base)
				if len(r.Flags) > 0 {
					fmt.Printf("    flags:    %s\n", strings.Join(r.Flags, " "))
				}
				fmt.Printf("    enabled:  %s\n", strings.Join(r.Enabled, " "))
				fmt.Printf("    backend:  %s [%s]\n", r.BackendCPU, strings.Join(r.BackendArgs, ","))
			}
			return nil
		},
	}
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

func flagStrings(f target.Flags) []string {
	var names []string
	for _, l := range flagLabels {
		if f&l.flag != 0 {
			names = append(names, l.name)
		}
	}
	return names
}
