package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/output"
	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/stats"
	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/wikiconf"
)

// Flag variables for the extract command.
var (
	outputFormat string
	outputFile   string
	namespaces   []string
	showStats    bool

	// Ignore flags.
	ignoreValues   []string
	ignorePatterns []string
	ignoreRegex    []string
	noConfig       bool
)

// extractCmd represents the extract command.
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract parser configuration from a siteinfo payload",
	Long: `Read a siteinfo JSON payload and print the wikitext parser configuration.

If no file is given, or the file is "-", the payload is read from stdin.
Both the full API response and its bare "query" object are accepted.

The Category and File namespaces are always extracted. Use --namespace to
add more by canonical name or glob pattern.

Exit codes:
  0 - Configuration extracted
  1 - Invalid input, unknown namespace, or an unsupported link trail

Examples:
  mwconf extract siteinfo.json                   # Styled summary
  mwconf extract siteinfo.json --format=json     # JSON to stdout
  mwconf extract --format=toml < siteinfo.json   # TOML from stdin
  mwconf extract siteinfo.json -o config.yaml    # Format inferred from extension
  mwconf extract siteinfo.json --namespace=Template --namespace='User*'
  mwconf extract siteinfo.json --stats           # Timing on stderr

Note: --format and --output are mutually exclusive.

Ignore rules:
  mwconf extract siteinfo.json --ignore-value=mailto:,gallery
  mwconf extract siteinfo.json --ignore-pattern="irc*"
  mwconf extract siteinfo.json --ignore-regex="^news:?$"

Config file (.mwconfrc.yaml):
  namespaces: [Template]
  ignore:
    values: [gallery]
    patterns: ["irc*"]
  output:
    format: json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	// Output options
	extractCmd.Flags().StringVarP(&outputFormat, "format", "f", "",
		"Output format for stdout: "+strings.Join(output.ValidFormats(), ", "))
	extractCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"Write configuration to file (format inferred from extension: .json, .yaml, .toml, .xml, .md, .html, .txt)")

	extractCmd.Flags().StringSliceVarP(&namespaces, "namespace", "n", nil,
		"Additional namespaces to extract by canonical name or glob (can be repeated)")
	extractCmd.Flags().BoolVar(&showStats, "stats", false,
		"Print performance statistics to stderr")

	// Ignore options
	extractCmd.Flags().StringSliceVar(&ignoreValues, "ignore-value", nil,
		"Values to drop from the output (can be repeated or comma-separated)")
	extractCmd.Flags().StringSliceVar(&ignorePatterns, "ignore-pattern", nil,
		"Glob patterns of values to drop (can be repeated)")
	extractCmd.Flags().StringSliceVar(&ignoreRegex, "ignore-regex", nil,
		"Regex patterns of values to drop (can be repeated)")
	extractCmd.Flags().BoolVar(&noConfig, "no-config", false,
		"Skip loading .mwconfrc.yaml config file")
}

// runExtract is the main entry point for the extract command.
func runExtract(cmd *cobra.Command, args []string) {
	exitOnError(validateExtractFlags(outputFormat, outputFile), "Invalid flags")

	lc, err := LoadConfig(noConfig)
	exitOnError(err, "Error loading config")

	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	perf := stats.New()
	report, err := extractReport(arg, cmd.InOrStdin(), lc, extractOptions{
		Namespaces: lc.GetNamespaces(namespaces),
		Filter: FilterOptions{
			Values:   ignoreValues,
			Patterns: ignorePatterns,
			Regex:    ignoreRegex,
		},
	}, perf)
	exitOnError(err, "Error extracting configuration")

	err = writeReport(cmd.OutOrStdout(), report, lc.GetOutputFormat(outputFormat), outputFile, perf)
	exitOnError(err, "Error writing output")

	if showStats {
		fmt.Fprint(cmd.ErrOrStderr(), perf.String())
	}
}

// extractOptions carries the per-run settings after config and CLI merge.
type extractOptions struct {
	Namespaces []string
	Filter     FilterOptions
}

// extractReport decodes the siteinfo named by arg and builds a report.
func extractReport(
	arg string, stdin io.Reader, lc *LoadedConfig, opts extractOptions, perf *stats.Stats,
) (*output.Report, error) {
	valueFilter, err := CreateFilterWithConfig(lc.Config(), opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("creating filter: %w", err)
	}
	perf.SetIgnoreRules(valueFilter.Stats())

	perf.StartDecode()
	q, size, err := readSiteinfo(arg, stdin)
	if err != nil {
		return nil, err
	}
	perf.EndDecode(size, len(q.Namespaces))
	slog.Debug("decoded siteinfo", "source", sourceName(arg), "bytes", size,
		"namespaces", len(q.Namespaces), "magic_words", len(q.MagicWords))

	perf.StartExtract()
	cfg, err := wikiconf.Build(q, wikiconf.Options{
		Namespaces: opts.Namespaces,
		Filter:     valueFilter,
	})
	if err != nil {
		return nil, err
	}
	perf.EndExtract(len(cfg.LinkTrail), CountValues(cfg), valueFilter.IgnoredCount())

	if n := valueFilter.IgnoredCount(); n > 0 {
		slog.Info("ignored values", "count", n)
	}

	return BuildReport(sourceName(arg), cfg, valueFilter), nil
}

// writeReport renders the report to file when outputFile is set,
// otherwise to w in the given format.
func writeReport(w io.Writer, report *output.Report, format, outputFile string, perf *stats.Stats) error {
	perf.StartRender()
	defer perf.EndRender()

	if outputFile != "" {
		if err := output.WriteToFile(report, outputFile); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "Wrote configuration to %s\n", outputFile)
		return err
	}

	data, err := output.FormatReport(report, output.Format(format))
	if err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// validateExtractFlags checks for invalid flag combinations.
func validateExtractFlags(format, file string) error {
	if format != "" && file != "" {
		return fmt.Errorf("--format and --output are mutually exclusive; " +
			"use --format for stdout output, or --output for file output")
	}

	if format != "" && !output.IsValidFormat(format) {
		return fmt.Errorf("invalid format %q; valid formats: %s",
			format, strings.Join(output.ValidFormats(), ", "))
	}

	return nil
}
