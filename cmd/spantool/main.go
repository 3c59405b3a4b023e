// Package main is the entry point for spantool, the batch interface to
// propertized text: it reads text, runs JSON or Lua scripts against it,
// and writes the resulting spans as JSON.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/dshills/textspan/internal/engine/buffer"
	"github.com/dshills/textspan/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	inPath     string
	outPath    string
	scriptPath string
	luaPath    string
	check      bool
	logLevel   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()
	log := newLogger(opts.logLevel)

	text, err := readInput(opts.inPath)
	if err != nil {
		log.Error().Err(err).Str("path", opts.inPath).Msg("read input")
		return 1
	}

	buf := buffer.NewFromString(text)
	log.Debug().Int("length", len(text)).Msg("buffer loaded")

	if opts.scriptPath != "" {
		data, err := os.ReadFile(opts.scriptPath)
		if err != nil {
			log.Error().Err(err).Str("path", opts.scriptPath).Msg("read script")
			return 1
		}
		if err := script.Apply(buf, data); err != nil {
			log.Error().Err(err).Str("path", opts.scriptPath).Msg("apply script")
			return 1
		}
		log.Debug().Str("path", opts.scriptPath).Msg("script applied")
	}

	if opts.luaPath != "" {
		e := script.NewLuaEngine(buf)
		defer e.Close()
		if err := e.RunFile(opts.luaPath); err != nil {
			log.Error().Err(err).Str("path", opts.luaPath).Msg("run lua script")
			return 1
		}
		log.Debug().Str("path", opts.luaPath).Msg("lua script finished")
	}

	if opts.check {
		if err := buf.CheckIntervals(); err != nil {
			log.Error().Err(err).Msg("interval check failed")
			return 1
		}
		log.Info().Int("spans", len(buf.Spans())).Msg("interval check passed")
	}

	out, err := script.Dump(buf)
	if err != nil {
		log.Error().Err(err).Msg("dump buffer")
		return 1
	}
	if err := writeOutput(opts.outPath, out); err != nil {
		log.Error().Err(err).Str("path", opts.outPath).Msg("write output")
		return 1
	}

	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.inPath, "in", "", "Input text file (default stdin)")
	flag.StringVar(&opts.inPath, "i", "", "Input text file (shorthand)")
	flag.StringVar(&opts.outPath, "out", "", "Output JSON file (default stdout)")
	flag.StringVar(&opts.outPath, "o", "", "Output JSON file (shorthand)")
	flag.StringVar(&opts.scriptPath, "script", "", "JSON edit script to apply")
	flag.StringVar(&opts.scriptPath, "s", "", "JSON edit script to apply (shorthand)")
	flag.StringVar(&opts.luaPath, "lua", "", "Lua script to run against the buffer")
	flag.BoolVar(&opts.check, "check", false, "Verify tree invariants after scripts run")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "spantool - propertized text processor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: spantool [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  spantool -i doc.txt -s marks.json        Apply a JSON script\n")
		fmt.Fprintf(os.Stderr, "  spantool -i doc.txt -lua rules.lua -check Run Lua rules, verify\n")
		fmt.Fprintf(os.Stderr, "  cat doc.txt | spantool -s marks.json      Read from stdin\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("spantool %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	return opts
}

func newLogger(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
