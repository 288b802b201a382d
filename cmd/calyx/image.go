package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/calyx-lang/calyx/internal/dispatch"
	"github.com/calyx-lang/calyx/internal/target"
	"github.com/calyx-lang/calyx/pkg/cvi"
)

func imageCmd() *cli.Command {
	return &cli.Command{
		Name:  "image",
		Usage: "Build, inspect and match variant images",
		Commands: []*cli.Command{
			imagePackCmd(),
			imageInspectCmd(),
			imageMatchCmd(),
		},
	}
}

func imagePackCmd() *cli.Command {
	var (
		output string
		name   string
	)
	return &cli.Command{
		Name:  "pack",
		Usage: "Build a .cvi image skeleton from a target specification",
		Flags: append(append(commonArchFlags(), loggingFlags()...),
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output .cvi path",
				Value:       "image.cvi",
				Destination: &output,
			},
			&cli.StringFlag{
				Name:        "name",
				Usage:       "image name recorded in metadata",
				Value:       "sys",
				Destination: &name,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyConfig(cmd, LoadConfig())
			db := selectedDB()
			log := newLogger(nil)
			engine := dispatch.New(db, log)

			cs, err := engine.CloneTargets(targetSpec)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			id := uuid.New()
			w, err := cvi.NewWriter(f, id)
			if err != nil {
				return err
			}
			meta := &cvi.Meta{
				Name:       name,
				Arch:       db.Arch.Name,
				TargetSpec: targetSpec,
				BuildID:    id.String(),
				CreatedAt:  time.Now().UTC(),
				Tool:       "calyx",
			}
			metaRaw, err := cvi.EncodeMeta(meta)
			if err != nil {
				return err
			}
			if err := w.WriteSection(cvi.SectionMeta, 1, metaRaw); err != nil {
				return err
			}
			if err := w.WriteSection(cvi.SectionTargets, 1, cs.Blob); err != nil {
				return err
			}
			// No code generator here; the variants section carries the
			// per-target compilation plan for the backend to fill in.
			plan, err := json.Marshal(cs.Specs)
			if err != nil {
				return err
			}
			if err := w.WriteSection(cvi.SectionVariants, 1, plan); err != nil {
				return err
			}
			if err := w.Finalize(); err != nil {
				return err
			}

			log.Info("image written", "path", output, "targets", len(cs.Targets), "build_id", id)
			return nil
		},
	}
}

func imageInspectCmd() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print an image's metadata and embedded targets",
		ArgsUsage: "<image.cvi>",
		Flags:     outputFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("image path required")
			}
			img, err := cvi.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = img.Close() }()

			blob, err := img.Targets()
			if err != nil {
				return err
			}
			targets, err := target.DecodeList(blob)
			if err != nil {
				return err
			}

			if jsonOut {
				out := map[string]any{
					"build_id": img.BuildID().String(),
					"targets":  targets,
				}
				if meta, err := img.Meta(); err == nil {
					out["meta"] = meta
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Printf("build id: %s\n", img.BuildID())
			if meta, err := img.Meta(); err == nil {
				fmt.Printf("name:     %s\n", meta.Name)
				fmt.Printf("arch:     %s\n", meta.Arch)
				fmt.Printf("spec:     %s\n", meta.TargetSpec)
				fmt.Printf("created:  %s\n", meta.CreatedAt.Format(time.RFC3339))
			}
			for i := range targets {
				t := &targets[i]
				fmt.Printf("[%d] %s (base %d, flags %s)\n", i, t.Name, t.Base,
					strings.Join(flagStrings(t.Flags), " "))
			}
			return nil
		},
	}
}

func imageMatchCmd() *cli.Command {
	return &cli.Command{
		Name:      "match",
		Usage:     "Report which image variant the host would run",
		ArgsUsage: "<image.cvi>",
		Flags:     append(commonArchFlags(), loggingFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyConfig(cmd, LoadConfig())
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("image path required")
			}
			db := selectedDB()
			engine := dispatch.New(db, newLogger(nil))

			img, err := cvi.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = img.Close() }()

			blob, err := img.Targets()
			if err != nil {
				return err
			}
			m, err := engine.SelectRuntimeImage(blob, targetSpec)
			if err != nil {
				return err
			}
			candidates, err := target.DecodeList(blob)
			if err != nil {
				return err
			}
			fmt.Printf("variant %d (%s), vector width %d bytes\n",
				m.Index, candidates[m.Index].Name, m.VecWidth)
			return nil
		},
	}
}
