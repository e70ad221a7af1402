// Package output provides formatting and file writing for extracted site configurations.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/wikiconf"
)

// Format represents an output format type.
type Format string

const (
	// FormatJSON outputs as JSON.
	FormatJSON Format = "json"
	// FormatYAML outputs as YAML.
	FormatYAML Format = "yaml"
	// FormatTOML outputs as TOML.
	FormatTOML Format = "toml"
	// FormatXML outputs as generic XML.
	FormatXML Format = "xml"
	// FormatMarkdown outputs as a Markdown report.
	FormatMarkdown Format = "markdown"
	// FormatHTML outputs the Markdown report rendered to HTML.
	FormatHTML Format = "html"
	// FormatText outputs a styled summary for terminals.
	FormatText Format = "text"
)

// ValidFormats returns all valid format strings.
func ValidFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTOML),
		string(FormatXML),
		string(FormatMarkdown),
		string(FormatHTML),
		string(FormatText),
	}
}

// IsValidFormat checks if a format string is valid.
func IsValidFormat(s string) bool {
	switch Format(strings.ToLower(s)) {
	case FormatJSON, FormatYAML, FormatTOML, FormatXML, FormatMarkdown, FormatHTML, FormatText:
		return true
	default:
		return false
	}
}

// IgnoredValue represents a value dropped by ignore rules.
type IgnoredValue struct {
	Field  string
	Value  string
	Reason string // "value", "pattern", or "regex"
	Rule   string // The rule that matched
}

// Report contains all data needed for output formatting.
type Report struct {
	GeneratedAt   time.Time
	Source        string // siteinfo file the configuration was extracted from
	Configuration *wikiconf.Configuration
	Ignored       []IgnoredValue
}

// Formatter is the interface that output formatters implement.
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// GetFormatter returns the appropriate formatter for a format.
func GetFormatter(format Format) (Formatter, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatTOML:
		return &TOMLFormatter{}, nil
	case FormatXML:
		return &XMLFormatter{}, nil
	case FormatMarkdown:
		return &MarkdownFormatter{}, nil
	case FormatHTML:
		return &HTMLFormatter{}, nil
	case FormatText:
		return &TextFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// FormatReport formats a report using the specified format.
func FormatReport(report *Report, format Format) ([]byte, error) {
	formatter, err := GetFormatter(format)
	if err != nil {
		return nil, err
	}
	return formatter.Format(report)
}

// InferFormat determines the output format from a filename extension.
func InferFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".xml":
		return FormatXML, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf(
			"cannot infer format from extension %q (supported: .json, .yaml, .yml, .toml, .xml, .md, .markdown, .html, .htm, .txt)",
			ext,
		)
	}
}

// WriteToFile writes a formatted report to a file.
func WriteToFile(report *Report, filename string) error {
	format, err := InferFormat(filename)
	if err != nil {
		return err
	}

	data, err := FormatReport(report, format)
	if err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}

// document is the serialized shape shared by the JSON, YAML and TOML formats.
type document struct {
	GeneratedAt        string              `json:"generated_at" yaml:"generated_at" toml:"generated_at"`
	Source             string              `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	LinkTrail          string              `json:"link_trail" yaml:"link_trail" toml:"link_trail"`
	CategoryNamespaces []string            `json:"category_namespaces" yaml:"category_namespaces" toml:"category_namespaces"`
	ExtensionTags      []string            `json:"extension_tags" yaml:"extension_tags" toml:"extension_tags"`
	FileNamespaces     []string            `json:"file_namespaces" yaml:"file_namespaces" toml:"file_namespaces"`
	MagicWords         []string            `json:"magic_words" yaml:"magic_words" toml:"magic_words"`
	Protocols          []string            `json:"protocols" yaml:"protocols" toml:"protocols"`
	RedirectMagicWords []string            `json:"redirect_magic_words" yaml:"redirect_magic_words" toml:"redirect_magic_words"`
	Namespaces         map[string][]string `json:"namespaces,omitempty" yaml:"namespaces,omitempty" toml:"namespaces,omitempty"`
	Ignored            []ignoredEntry      `json:"ignored,omitempty" yaml:"ignored,omitempty" toml:"ignored,omitempty"`
}

type ignoredEntry struct {
	Field  string `json:"field" yaml:"field" toml:"field"`
	Value  string `json:"value" yaml:"value" toml:"value"`
	Reason string `json:"reason" yaml:"reason" toml:"reason"`
	Rule   string `json:"rule" yaml:"rule" toml:"rule"`
}

func newDocument(report *Report) document {
	cfg := report.Configuration
	doc := document{
		GeneratedAt:        report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Source:             report.Source,
		LinkTrail:          cfg.LinkTrailString(),
		CategoryNamespaces: sorted(cfg.CategoryNamespaces),
		ExtensionTags:      sorted(cfg.ExtensionTags),
		FileNamespaces:     sorted(cfg.FileNamespaces),
		MagicWords:         sorted(cfg.MagicWords),
		Protocols:          sorted(cfg.Protocols),
		RedirectMagicWords: sorted(cfg.RedirectMagicWords),
	}

	if len(cfg.Namespaces) > 0 {
		doc.Namespaces = make(map[string][]string, len(cfg.Namespaces))
		for name, names := range cfg.Namespaces {
			doc.Namespaces[name] = sorted(names)
		}
	}

	for _, ig := range report.Ignored {
		doc.Ignored = append(doc.Ignored, ignoredEntry(ig))
	}

	return doc
}

// sorted returns the set's values in order, never nil.
func sorted(values map[string]struct{}) []string {
	out := make([]string, 0, len(values))
	for v := range values {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
