package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/calyx-lang/calyx/internal/hostcpu"
)

type cpuReport struct {
	Arch        string   `json:"arch"`
	CPU         string   `json:"cpu"`
	Features    []string `json:"features"`
	VectorWidth int      `json:"vector_width"`
}

func cpuCmd() *cli.Command {
	return &cli.Command{
		Name:  "cpu",
		Usage: "Detect and print the host processor and its features",
		Flags: append(commonArchFlags(), outputFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyConfig(cmd, LoadConfig())
			db := selectedDB()
			host := hostcpu.New(db)
			name, features := host.CPU()

			report := cpuReport{
				Arch:        db.Arch.Name,
				CPU:         name,
				VectorWidth: db.Arch.MaxVectorSize(features),
			}
			for _, f := range db.Arch.Features {
				if features.Test(f.Bit) {
					report.Features = append(report.Features, f.Name)
				}
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			fmt.Printf("arch:         %s\n", report.Arch)
			fmt.Printf("cpu:          %s\n", report.CPU)
			fmt.Printf("vector width: %d bytes\n", report.VectorWidth)
			fmt.Printf("features:")
			for _, f := range report.Features {
				fmt.Printf(" %s", f)
			}
			fmt.Println()
			return nil
		},
	}
}
