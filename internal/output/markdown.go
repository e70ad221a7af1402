package output

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MarkdownFormatter formats reports as Markdown.
type MarkdownFormatter struct{}

// Format implements Formatter.
func (*MarkdownFormatter) Format(report *Report) ([]byte, error) {
	doc := newDocument(report)

	var b strings.Builder
	b.Grow(2048)

	// Header
	b.WriteString("# MediaWiki Configuration Report\n\n")
	b.WriteString(fmt.Sprintf("**Generated:** %s  \n", report.GeneratedAt.Format("2006-01-02 15:04:05")))
	if doc.Source != "" {
		b.WriteString(fmt.Sprintf("**Source:** %s  \n", escapeMarkdown(doc.Source)))
	}
	b.WriteString("\n")

	// Link trail
	b.WriteString("## Link Trail\n\n")
	if doc.LinkTrail == "" {
		b.WriteString("_No characters are absorbed into links._\n\n")
	} else {
		b.WriteString(fmt.Sprintf("%d characters: %s\n\n",
			utf8.RuneCountInString(doc.LinkTrail), escapeMarkdown(doc.LinkTrail)))
	}

	// Namespaces table
	b.WriteString("## Namespaces\n\n")
	b.WriteString("| Namespace | Names |\n")
	b.WriteString("|-----------|-------|\n")
	writeNamespaceRow(&b, "Category", doc.CategoryNamespaces)
	writeNamespaceRow(&b, "File", doc.FileNamespaces)
	for _, name := range report.Configuration.NamespaceNames() {
		writeNamespaceRow(&b, name, doc.Namespaces[name])
	}
	b.WriteString("\n")

	writeList(&b, "Extension Tags", doc.ExtensionTags)
	writeList(&b, "Protocols", doc.Protocols)
	writeList(&b, "Magic Words", doc.MagicWords)
	writeList(&b, "Redirect Magic Words", doc.RedirectMagicWords)

	// Ignored section
	if len(doc.Ignored) > 0 {
		b.WriteString(fmt.Sprintf("## Ignored Values (%d)\n\n", len(doc.Ignored)))
		b.WriteString("| Field | Value | Reason | Rule |\n")
		b.WriteString("|-------|-------|--------|------|\n")
		for _, ig := range doc.Ignored {
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				escapeMarkdown(ig.Field), escapeMarkdown(ig.Value), ig.Reason, escapeMarkdown(ig.Rule)))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	b.WriteString("*Generated by [mwconf](https://github.com/emmalexandria/fetch-mediawiki-configuration)*\n")

	return []byte(b.String()), nil
}

func writeNamespaceRow(b *strings.Builder, name string, names []string) {
	b.WriteString(fmt.Sprintf("| %s | %s |\n", escapeMarkdown(name), escapeMarkdown(strings.Join(names, ", "))))
}

func writeList(b *strings.Builder, title string, values []string) {
	b.WriteString(fmt.Sprintf("## %s (%d)\n\n", title, len(values)))
	if len(values) == 0 {
		b.WriteString("_None._\n\n")
		return
	}
	for _, v := range values {
		b.WriteString(fmt.Sprintf("- `%s`\n", strings.ReplaceAll(v, "`", "")))
	}
	b.WriteString("\n")
}

// escapeMarkdown escapes special markdown characters in a string.
func escapeMarkdown(s string) string {
	// Escape backslashes first so later escapes survive
	s = strings.ReplaceAll(s, `\`, `\\`)
	// Escape pipe characters which break tables
	s = strings.ReplaceAll(s, "|", "\\|")
	// Escape emphasis and code markers
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
