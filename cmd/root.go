package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/logging"
)

// version is set by main.go via SetVersion.
var version = "dev"

var (
	// verbose enables debug logging on stderr for every command.
	verbose bool
	// logFormat selects the slog handler: text or json.
	logFormat string
)

// SetVersion sets the version string (called from main).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "mwconf",
	Short:   "Extract wikitext parser configuration from MediaWiki siteinfo",
	Version: version,
	Long: `mwconf reads the siteinfo a MediaWiki site reports and derives the
configuration a wikitext parser needs: category and file namespace names,
extension tags, protocols, magic words, redirect magic words and the set of
characters the link trail absorbs.

The siteinfo is the JSON returned by
  api.php?action=query&meta=siteinfo&siprop=general|namespaces|namespacealiases|extensiontags|protocols|magicwords&formatversion=2

Examples:
  mwconf extract siteinfo.json
  curl -s "$API" | mwconf extract --format=json
  mwconf extract siteinfo.json --output=config.yaml
  mwconf linktrail '/^([a-z]+)(.*)$/sD'`,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log debug output, including link trail parse trees, to stderr")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.FormatText,
		"Log format: text, json")
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	logger, err := logging.NewWithFormat(cmd.ErrOrStderr(), logFormat, verbose)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1) //nolint:revive // deep-exit is acceptable for CLI entry points
	}
}
