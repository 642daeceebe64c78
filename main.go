package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/mazrean/jsonagent/internal/closer"
	"github.com/mazrean/jsonagent/internal/config"
	mylog "github.com/mazrean/jsonagent/internal/pkg/log"
	"github.com/mazrean/jsonagent/log"
)

var (
	version  = "dev"
	revision = "none"
)

// Globals are the options shared by every command
type Globals struct {
	LogLevel string  `kong:"short='l',default='info',enum='debug,info,warn,error,silent',help='Log level',env='JSONAGENT_LOG_LEVEL'"`
	MaxDepth int     `kong:"default='512',help='Maximum nesting depth accepted when reading documents',env='JSONAGENT_MAX_DEPTH'"`
	Output   string  `kong:"short='o',help='Write output to this file instead of stdout. A .zst suffix compresses it.'"`
	Zstd     bool    `kong:"help='Compress output with zstd',env='JSONAGENT_ZSTD'"`
	Dev      DevFlag `kong:"group='dev',embed,prefix='dev.'"`

	Logger log.LevelLogger `kong:"-"`
}

// CLI represents command line options and configuration file values
var CLI struct {
	Globals

	Version kong.VersionFlag `kong:"short='v',help='Show version and exit.'"`
	Config  kong.ConfigFlag  `kong:"short='c',help='Load configuration from a file.'"`

	Fmt       FmtCmd       `kong:"cmd,help='Print a document in compact form.'"`
	Pretty    PrettyCmd    `kong:"cmd,help='Pretty print a document.'"`
	Normalise NormaliseCmd `kong:"cmd,help='Sort object members by name.'"`
	Diff      DiffCmd      `kong:"cmd,help='Print what the first object has that the second lacks.'"`
	SameItems SameItemsCmd `kong:"cmd,name='same-items',help='Report whether two objects have the same member names in the same order.'"`
	Get       GetCmd       `kong:"cmd,help='Print the value at a dot path.'"`
	Set       SetCmd       `kong:"cmd,help='Set the value at a dot path, creating missing containers.'"`
	Find      FindCmd      `kong:"cmd,help='Collect the values of members with a given name.'"`
	Convert   ConvertCmd   `kong:"cmd,help='Convert between jsonv, JSON, CBOR, YAML and protobuf.'"`
	Serve     ServeCmd     `kong:"cmd,help='Answer line-delimited requests on stdin and stdout.'"`
}

func main() {
	os.Exit(run())
}

func run() int {
	// Initialize default logger with info level
	logger := log.DefaultLogger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Load configuration
	kctx, err := config.Load(
		&CLI,
		config.Version{Version: version, Revision: revision},
		logger,
		os.Args[1:],
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err != nil {
		logger.Errorf("invalid configuration: %v", err)
		return 2
	}

	level, err := mylog.ParseLevel(CLI.LogLevel)
	if err != nil {
		logger.Warnf("invalid log level: %s. ignore and use default info level instead", CLI.LogLevel)
	}
	CLI.Logger = mylog.NewLogger(level)

	if err := CLI.Dev.StartProfiling(ctx, CLI.Logger); err != nil {
		CLI.Logger.Warnf("failed to start profiling: %v", err)
	}
	defer CLI.Dev.StopProfiling(CLI.Logger)

	CLI.Logger.Debugf("configuration: %+v", CLI.Globals)

	err = kctx.Run(&CLI.Globals)
	if closeErr := closer.Close(context.Background()); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "jsonagent %s: %v\n", kctx.Command(), err)
		return 1
	}

	return 0
}
