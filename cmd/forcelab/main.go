// Package main provides the forcelab command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/forcelab-md/forcelab/array"
	"github.com/forcelab-md/forcelab/codec"
	"github.com/forcelab-md/forcelab/datafiles"
	"github.com/forcelab-md/forcelab/internal/config"
	"github.com/forcelab-md/forcelab/internal/observability"
	"github.com/forcelab-md/forcelab/scoped"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	os.Exit(run(os.Args[1], os.Args[2:]))
}

func usage() {
	fmt.Println("forcelab - utility toolkit for force-field data")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version                              Show version")
	fmt.Println("  inspect [-verify] <file>             Print frame header of an array file")
	fmt.Println("  convert -shape D1,D2,... <in> <out>  Wrap a raw payload into a frame file")
	fmt.Println("  convert -raw <in> <out>              Unwrap a frame file into a raw payload")
	fmt.Println("")
	fmt.Println("Global flags (per command): -config <path to TOML config>")
}

func run(cmd string, args []string) int {
	switch cmd {
	case "version":
		fmt.Printf("forcelab %s\n", version)
		return 0
	case "inspect":
		return cmdInspect(args)
	case "convert":
		return cmdConvert(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage()
		return 2
	}
}

// setup loads the optional config file and installs logging.
func setup(configPath string) (zerolog.Logger, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return zerolog.Nop(), err
		}
		cfg = loaded
	}

	logger := observability.InitLogger("forcelab").Level(observability.ParseLevel(cfg.LogLevel))
	scoped.SetLogger(logger)

	if cfg.DataDir != "" {
		if err := os.Setenv(datafiles.EnvDataDir, cfg.DataDir); err != nil {
			return logger, fmt.Errorf("failed to set %s: %w", datafiles.EnvDataDir, err)
		}
	}
	return logger, nil
}

func cmdInspect(args []string) int {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	configPath := fs.String("config", "", "path to TOML config")
	verify := fs.Bool("verify", false, "read the full frame and verify its checksum")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: forcelab inspect [-verify] <file>")
		return 2
	}
	logger, err := setup(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	path := fs.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		logger.Error().Err(err).Str("file", path).Msg("cannot open frame file")
		return 1
	}
	defer f.Close()

	info, err := codec.ReadFrameInfo(f)
	if err != nil {
		logger.Error().Err(err).Str("file", path).Msg("cannot parse frame header")
		return 1
	}

	fmt.Printf("file:     %s\n", path)
	fmt.Printf("version:  %d\n", info.Version)
	fmt.Printf("dtype:    %s\n", info.DType)
	fmt.Printf("shape:    %s\n", info.Shape)
	fmt.Printf("elements: %d\n", info.Shape.NumElements())
	fmt.Printf("payload:  %d bytes\n", info.PayloadSize)

	if *verify {
		if _, err := codec.ReadFile(path); err != nil {
			fmt.Printf("checksum: FAILED (%v)\n", err)
			return 1
		}
		fmt.Printf("checksum: ok\n")
	}
	return 0
}

func cmdConvert(args []string) int {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	configPath := fs.String("config", "", "path to TOML config")
	shapeSpec := fs.String("shape", "", "shape of the raw input, e.g. 2,3 (empty for a scalar)")
	toRaw := fs.Bool("raw", false, "convert frame to raw payload instead")
	_ = fs.Parse(args)

	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: forcelab convert [-shape D1,D2,... | -raw] <in> <out>")
		return 2
	}
	logger, err := setup(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	in, out := fs.Arg(0), fs.Arg(1)

	if *toRaw {
		a, err := codec.ReadFile(in)
		if err != nil {
			logger.Error().Err(err).Str("file", in).Msg("cannot read frame file")
			return 1
		}
		payload, shape := codec.Marshal(a)
		if err := os.WriteFile(out, payload, 0o644); err != nil {
			logger.Error().Err(err).Str("file", out).Msg("cannot write raw payload")
			return 1
		}
		// The raw format carries no shape; hand it to the caller.
		fmt.Printf("shape: %s\n", shape)
		return 0
	}

	shape, err := parseShape(*shapeSpec)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	payload, err := os.ReadFile(in)
	if err != nil {
		logger.Error().Err(err).Str("file", in).Msg("cannot read raw payload")
		return 1
	}
	a, err := codec.Unmarshal(payload, shape)
	if err != nil {
		logger.Error().Err(err).Str("file", in).Stringer("shape", shape).Msg("payload does not match shape")
		return 1
	}
	if err := codec.WriteFile(out, a); err != nil {
		logger.Error().Err(err).Str("file", out).Msg("cannot write frame file")
		return 1
	}
	return 0
}

// parseShape parses "2,3,4" into a shape. The empty string is a scalar.
func parseShape(spec string) (array.Shape, error) {
	if spec == "" {
		return array.Shape{}, nil
	}
	parts := strings.Split(spec, ",")
	shape := make(array.Shape, len(parts))
	for i, p := range parts {
		dim, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid shape %q: %w", spec, err)
		}
		shape[i] = dim
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape %q: %w", spec, err)
	}
	return shape, nil
}
