package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/config"
	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/filter"
	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/output"
	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/siteinfo"
	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/wikiconf"
)

// stdinArg names standard input as the siteinfo source.
const stdinArg = "-"

// LoadedConfig wraps a loaded configuration and provides helper methods
// for getting effective values that respect CLI overrides.
type LoadedConfig struct {
	cfg *config.Config
}

// LoadConfig loads the per-user config and then the nearest .mwconfrc.yaml,
// found by walking up from the working directory, unless noConfig is true.
// The project file is merged over the user file.
// Returns an error if a config file exists but is invalid.
func LoadConfig(noConfig bool) (*LoadedConfig, error) {
	if noConfig {
		return &LoadedConfig{cfg: &config.Config{}}, nil
	}

	cfg, err := config.LoadUser()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", config.UserConfigPath(), err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	project, err := config.FindAndLoad(wd)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg.Merge(project)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &LoadedConfig{cfg: cfg}, nil
}

// Config returns the underlying config for direct access.
func (lc *LoadedConfig) Config() *config.Config {
	return lc.cfg
}

// GetOutputFormat returns the effective stdout format.
// CLI overrides config; text is the fallback.
func (lc *LoadedConfig) GetOutputFormat(cliValue string) string {
	if cliValue != "" {
		return cliValue
	}
	if lc.cfg.Output.Format != "" {
		return lc.cfg.Output.Format
	}
	return string(output.FormatText)
}

// GetNamespaces returns the extra namespaces to extract.
// CLI values are added to those from the config file.
func (lc *LoadedConfig) GetNamespaces(cliValues []string) []string {
	namespaces := append([]string{}, lc.cfg.Namespaces...)
	return append(namespaces, cliValues...)
}

// FilterOptions holds the ignore flags shared by commands.
type FilterOptions struct {
	Values   []string // Exact values to ignore
	Patterns []string // Glob patterns to ignore
	Regex    []string // Regex patterns to ignore
}

// CreateFilterWithConfig builds a value filter using a pre-loaded config.
// CLI flags are merged additively with the config settings.
// Returns nil if no filter rules are defined.
func CreateFilterWithConfig(cfg *config.Config, opts FilterOptions) (*filter.Filter, error) {
	merged := &config.Config{Ignore: config.IgnoreConfig{
		Values:   slices.Clone(cfg.Ignore.Values),
		Patterns: slices.Clone(cfg.Ignore.Patterns),
		Regex:    slices.Clone(cfg.Ignore.Regex),
	}}
	merged.Merge(&config.Config{Ignore: config.IgnoreConfig{
		Values:   opts.Values,
		Patterns: opts.Patterns,
		Regex:    opts.Regex,
	}})

	if !merged.HasIgnoreRules() {
		return nil, nil
	}

	return filter.New(filter.Config{
		Values:        merged.Ignore.Values,
		GlobPatterns:  merged.Ignore.Patterns,
		RegexPatterns: merged.Ignore.Regex,
	})
}

// readSiteinfo reads the payload named by arg, or stdin for "" and "-".
// It returns the decoded query and the number of bytes read.
func readSiteinfo(arg string, stdin io.Reader) (*siteinfo.Query, int64, error) {
	var (
		data []byte
		err  error
	)
	if arg == "" || arg == stdinArg {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(arg)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("reading siteinfo: %w", err)
	}

	q, err := siteinfo.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	return q, int64(len(data)), nil
}

// sourceName returns the label used for the input in reports.
func sourceName(arg string) string {
	if arg == "" || arg == stdinArg {
		return "stdin"
	}
	return arg
}

// BuildReport assembles an output report from an extracted configuration.
func BuildReport(source string, cfg *wikiconf.Configuration, valueFilter *filter.Filter) *output.Report {
	report := &output.Report{
		GeneratedAt:   time.Now(),
		Source:        source,
		Configuration: cfg,
	}

	for _, ig := range valueFilter.Ignored() {
		report.Ignored = append(report.Ignored, output.IgnoredValue{
			Field:  ig.Field,
			Value:  ig.Value,
			Reason: ig.Type,
			Rule:   ig.Rule,
		})
	}

	return report
}

// CountValues returns the total number of values in the string sets of cfg.
func CountValues(cfg *wikiconf.Configuration) int {
	n := len(cfg.CategoryNamespaces) +
		len(cfg.ExtensionTags) +
		len(cfg.FileNamespaces) +
		len(cfg.MagicWords) +
		len(cfg.Protocols) +
		len(cfg.RedirectMagicWords)
	for _, names := range cfg.Namespaces {
		n += len(names)
	}
	return n
}

// exitOnError prints an error message and exits if err is not nil.
func exitOnError(err error, message string) {
	if err != nil {
		if message != "" {
			fmt.Fprintf(os.Stderr, "%s: %v\n", message, err)
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}
}
