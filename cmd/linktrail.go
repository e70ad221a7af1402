package cmd

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/extract"
	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/pcre"
	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/ui"
)

// showTree prints the parse tree of the pattern before the characters.
var showTree bool

// linkTrailCmd represents the linktrail command.
var linkTrailCmd = &cobra.Command{
	Use:   "linktrail <pattern>",
	Short: "Print the characters a link trail pattern absorbs",
	Long: `Derive the link trail character set from a single delimited pattern,
as found in the "linktrail" field of a site's general information.

Group 1 must be empty or a repetition of literals, character classes and
alternations of those. Characters are printed in code point order.

Examples:
  mwconf linktrail '/^([a-z]+)(.*)$/sD'
  mwconf linktrail '/^([äöüßa-z]+)(.*)$/sDu'
  mwconf linktrail --tree '/^(a|[b-d])*(.*)$/'`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runLinkTrail(cmd.OutOrStdout(), args[0], showTree), "")
	},
}

func init() {
	rootCmd.AddCommand(linkTrailCmd)

	linkTrailCmd.Flags().BoolVarP(&showTree, "tree", "t", false,
		"Also print the parse tree of the pattern")
}

// runLinkTrail writes the characters of pattern to w.
func runLinkTrail(w io.Writer, pattern string, tree bool) error {
	if tree {
		parsed, err := pcre.Parse(pattern)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, ui.MutedStyle.Render(pcre.Dump(parsed.Root)))
	}

	characters, err := extract.ParseLinkTrail(pattern)
	if err != nil {
		return err
	}

	trail := string(characters.Sorted())
	if trail == "" {
		fmt.Fprintln(w, ui.MutedStyle.Render("(empty)"))
		return nil
	}
	fmt.Fprintf(w, "%s %s\n", ui.SectionHeading("characters", utf8.RuneCountInString(trail)), trail)
	return nil
}
