// Package config holds the kong wiring shared by the jsonagent commands.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/alecthomas/kong"
	"github.com/mazrean/jsonagent/bridge"
	"github.com/mazrean/jsonagent/jsonv"
	"github.com/mazrean/jsonagent/log"
	"github.com/tidwall/jsonc"
)

// FileName is the configuration file looked up in the working and home
// directories.
const FileName = ".jsonagent.json"

type Version struct {
	Version  string
	Revision string
}

func (v Version) String() string {
	return fmt.Sprintf("%s (%s)", v.Version, v.Revision)
}

// Paths returns the configuration files to read, the working directory first.
func Paths(logger log.Logger) []string {
	var configPaths []string

	wd, err := os.Getwd()
	if err == nil {
		configPaths = append(configPaths, filepath.Join(wd, FileName))
	} else {
		logger.Warnf("failed to get working directory. ignoring config file in working directory")
	}

	userHomeDir, err := os.UserHomeDir()
	if err == nil {
		configPaths = append(configPaths, filepath.Join(userHomeDir, FileName))
	} else {
		logger.Warnf("failed to get user home directory. ignoring config file in user home directory")
	}

	return configPaths
}

// Load parses args into cli, reading defaults from the configuration files.
func Load(cli any, version Version, logger log.Logger, args []string, options ...kong.Option) (*kong.Context, error) {
	options = append([]kong.Option{
		kong.Name("jsonagent"),
		kong.Description("Read, reshape and serve JSON documents"),
		kong.Configuration(JSONC, Paths(logger)...),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	}, options...)

	parser, err := kong.New(cli, options...)
	if err != nil {
		return nil, fmt.Errorf("create parser: %w", err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return ctx, nil
}

// JSONC is a kong.ConfigurationLoader for JSON files that may contain
// comments and trailing commas. A flag such as dev.cpu-prof is looked up as
// "dev.cpu-prof", "dev.cpu_prof" or "dev.cpuProf" and then through nested
// objects with the same spellings.
func JSONC(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	values := jsonv.NewObject()
	if text := jsonc.ToJSON(data); strings.TrimSpace(string(text)) != "" {
		values, err = jsonv.ParseObject(string(text))
		if err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := lookup(values, flag.Name)
		if !ok || v.IsNull() {
			return nil, nil
		}
		return bridge.ToAny(v), nil
	}

	return f, nil
}

func lookup(o *jsonv.Object, name string) (jsonv.Value, bool) {
	for _, candidate := range spellings(name) {
		if v, ok := o.Lookup(candidate); ok {
			return v, true
		}
	}

	head, rest, found := strings.Cut(name, ".")
	if !found {
		return jsonv.Value{}, false
	}
	for _, candidate := range spellings(head) {
		v, ok := o.Lookup(candidate)
		if !ok {
			continue
		}
		child, err := v.AsObject()
		if err != nil {
			return jsonv.Value{}, false
		}
		return lookup(child, rest)
	}

	return jsonv.Value{}, false
}

func spellings(name string) []string {
	return []string{name, strings.ReplaceAll(name, "-", "_"), camelCase(name)}
}

func camelCase(name string) string {
	parts := strings.Split(name, "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		r := []rune(parts[i])
		r[0] = unicode.ToUpper(r[0])
		parts[i] = string(r)
	}
	return strings.Join(parts, "")
}
