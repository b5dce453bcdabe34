package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/systemstart/bootstrap/pkg/api"
	"github.com/systemstart/bootstrap/pkg/logging"
	"github.com/systemstart/bootstrap/pkg/processing"
)

var version = "dev"

// Exit code 1 is reserved for a failed required step.
const (
	_ = iota
	exitRequiredStepFailed
	exitLoggingSetupFailed
	exitDotenvError
	exitWorkingDirectoryFailed
	exitLoadManifestFailed
	exitLoadContextFailed
	exitBuildStepsFailed
	exitInterrupted
)

var (
	manifestFile string
	contextFile  string
	envFile      string
	maxLevels    int
	loggingType  string
	logLevel     string
	noColor      bool
	showVersion  bool
)

func init() {
	flag.StringVar(
		&manifestFile,
		"manifest",
		"",
		"manifest to run (default: search for "+api.ManifestFilename+" upwards, then built-in steps)")
	flag.StringVar(
		&contextFile,
		"context-file",
		"",
		"global context YAML file")
	flag.StringVar(
		&envFile,
		"env-file",
		".env",
		"dotenv file loaded before the run")
	flag.IntVar(
		&maxLevels,
		"max-levels",
		-1,
		"max parent directories searched for the manifest (-1 = unlimited, 0 = current only)")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text or tint")
	flag.StringVar(
		&logLevel,
		"log-level",
		"warn",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&noColor,
		"no-color",
		false,
		"disable colored output")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if noColor {
		color.NoColor = true
	}

	if err := logging.Initialize(os.Stderr, loggingType, logLevel, color.NoColor); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitLoggingSetupFailed)
	}

	includeEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manifest := loadManifest()
	globalContext := loadGlobalContext()

	report, code, err := processing.RunManifest(ctx, manifest, globalContext, processing.Options{
		Output: os.Stdout,
		Logger: slog.Default(),
	})
	if err != nil {
		slog.Error("failed to build steps", "error", err)
		stop()
		os.Exit(exitBuildStepsFailed)
	}

	if ctx.Err() != nil {
		slog.Warn("interrupted", "run", report.ID(), "steps", report.Len())
		stop()
		os.Exit(exitInterrupted)
	}

	slog.Info("done", "run", report.ID(), "state", report.State(), "duration", report.Duration())
	stop()
	os.Exit(code)
}

func loadManifest() *api.Manifest {
	wd, err := os.Getwd()
	if err != nil {
		slog.Error("failed to determine working directory", "error", err)
		os.Exit(exitWorkingDirectoryFailed)
	}

	m, err := processing.ResolveManifest(manifestFile, wd, maxLevels)
	if err != nil {
		slog.Error("failed to load manifest", "filename", manifestFile, "error", err)
		os.Exit(exitLoadManifestFailed)
	}
	return m
}

func loadGlobalContext() map[string]any {
	if contextFile == "" {
		return nil
	}

	ctx, err := processing.LoadContextFile(contextFile)
	if err != nil {
		slog.Error("failed to load context file", "filename", contextFile, "error", err)
		os.Exit(exitLoadContextFailed)
	}
	return ctx
}

func includeEnv() {
	err := godotenv.Load(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Error("failed to load dotenv file", "filename", envFile, "error", err)
			os.Exit(exitDotenvError)
		}
		slog.Debug("no dotenv file found", "filename", envFile)
	} else {
		slog.Info("using dotenv file", "filename", envFile)
	}
}
