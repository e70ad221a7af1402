package output

import (
	"fmt"
	"strings"

	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/ui"
)

// TextFormatter formats reports as a styled terminal summary.
type TextFormatter struct{}

// Format implements Formatter.
func (*TextFormatter) Format(report *Report) ([]byte, error) {
	doc := newDocument(report)

	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("MediaWiki configuration"))
	b.WriteString("\n")
	if doc.Source != "" {
		b.WriteString(ui.MutedStyle.Render("source: " + doc.Source))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	trail := []string{}
	if doc.LinkTrail != "" {
		trail = append(trail, doc.LinkTrail)
	}
	writeTextSection(&b, "Link trail", len([]rune(doc.LinkTrail)), trail)
	writeTextSection(&b, "Category namespaces", len(doc.CategoryNamespaces), doc.CategoryNamespaces)
	writeTextSection(&b, "File namespaces", len(doc.FileNamespaces), doc.FileNamespaces)
	for _, name := range report.Configuration.NamespaceNames() {
		names := doc.Namespaces[name]
		writeTextSection(&b, name+" namespaces", len(names), names)
	}
	writeTextSection(&b, "Extension tags", len(doc.ExtensionTags), doc.ExtensionTags)
	writeTextSection(&b, "Protocols", len(doc.Protocols), doc.Protocols)
	writeTextSection(&b, "Magic words", len(doc.MagicWords), doc.MagicWords)
	writeTextSection(&b, "Redirect magic words", len(doc.RedirectMagicWords), doc.RedirectMagicWords)

	if len(doc.Ignored) > 0 {
		b.WriteString(ui.SectionHeading("Ignored", len(doc.Ignored)))
		b.WriteString("\n")
		for _, ig := range doc.Ignored {
			b.WriteString("  ")
			b.WriteString(ui.WarningStyle.Render(ig.Value))
			b.WriteString(ui.MutedStyle.Render(fmt.Sprintf(" (%s, %s: %s)", ig.Field, ig.Reason, ig.Rule)))
			b.WriteString("\n")
		}
	}

	return []byte(b.String()), nil
}

func writeTextSection(b *strings.Builder, title string, count int, values []string) {
	b.WriteString(ui.SectionHeading(title, count))
	b.WriteString("\n")
	if len(values) == 0 {
		b.WriteString(ui.MutedStyle.Render("  none"))
		b.WriteString("\n\n")
		return
	}
	b.WriteString("  ")
	b.WriteString(ui.NormalStyle.Render(strings.Join(values, " ")))
	b.WriteString("\n\n")
}
