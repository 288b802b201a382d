package main

import (
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/urfave/cli/v3"

	"github.com/calyx-lang/calyx/internal/cpudb"
	"github.com/calyx-lang/calyx/internal/isa"
	"github.com/calyx-lang/calyx/internal/logger"
)

var (
	archName   string
	targetSpec string
	jsonOut    bool
	logLevel   string
	logFormat  string
)

func commonArchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "arch",
			Usage:       "feature model (aarch64, arm)",
			Destination: &archName,
		},
		&cli.StringFlag{
			Name:        "cpu-target",
			Aliases:     []string{"C"},
			Usage:       "target specification (native, or name[,+feat,-feat][;...])",
			Value:       "native",
			Destination: &targetSpec,
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "emit JSON instead of text",
			Destination: &jsonOut,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
	}
}

func selectedDB() *cpudb.DB {
	switch archName {
	case "arm", "arm32", "armv7":
		return cpudb.ARM32
	case "aarch64", "arm64":
		return cpudb.AArch64
	}
	if runtime.GOARCH == "arm" {
		return cpudb.ForArch(isa.ARM32)
	}
	return cpudb.ForArch(isa.AArch64)
}

func newLogger(w io.Writer) logger.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := logger.ParseLevel(logLevel)
	switch logFormat {
	case "json":
		return logger.JSON(w, level)
	case "text":
		return logger.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	default:
		return logger.Pretty(w, level)
	}
}
