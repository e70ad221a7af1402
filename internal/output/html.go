package output

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLFormatter renders the Markdown report to a standalone HTML page.
type HTMLFormatter struct{}

// markdownRenderer has the GFM table extension the report relies on.
var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.Table))

// Format implements Formatter.
func (*HTMLFormatter) Format(report *Report) ([]byte, error) {
	md, err := (&MarkdownFormatter{}).Format(report)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := markdownRenderer.Convert(md, &body); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	var b bytes.Buffer
	b.Grow(body.Len() + 256)
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>MediaWiki Configuration Report</title>\n</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")

	return b.Bytes(), nil
}
