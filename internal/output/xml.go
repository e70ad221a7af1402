package output

import (
	"encoding/xml"
)

// XMLFormatter formats reports as generic XML.
type XMLFormatter struct{}

// xmlOutput is the XML structure for output.
type xmlOutput struct {
	XMLName            xml.Name       `xml:"configuration"`
	GeneratedAt        string         `xml:"generated_at,attr"`
	Source             string         `xml:"source,attr,omitempty"`
	LinkTrail          string         `xml:"link_trail"`
	CategoryNamespaces []string       `xml:"category_namespaces>name"`
	ExtensionTags      []string       `xml:"extension_tags>tag"`
	FileNamespaces     []string       `xml:"file_namespaces>name"`
	MagicWords         []string       `xml:"magic_words>word"`
	Protocols          []string       `xml:"protocols>protocol"`
	RedirectMagicWords []string       `xml:"redirect_magic_words>word"`
	Namespaces         []xmlNamespace `xml:"namespaces>namespace,omitempty"`
	Ignored            *xmlIgnored    `xml:"ignored,omitempty"`
}

type xmlNamespace struct {
	Canonical string   `xml:"canonical,attr"`
	Names     []string `xml:"name"`
}

type xmlIgnored struct {
	Items []xmlIgnoredItem `xml:"item"`
}

type xmlIgnoredItem struct {
	Field  string `xml:"field,attr"`
	Reason string `xml:"reason,attr"`
	Rule   string `xml:"rule,attr"`
	Value  string `xml:",chardata"`
}

// Format implements Formatter.
func (*XMLFormatter) Format(report *Report) ([]byte, error) {
	doc := newDocument(report)
	output := xmlOutput{
		GeneratedAt:        doc.GeneratedAt,
		Source:             doc.Source,
		LinkTrail:          doc.LinkTrail,
		CategoryNamespaces: doc.CategoryNamespaces,
		ExtensionTags:      doc.ExtensionTags,
		FileNamespaces:     doc.FileNamespaces,
		MagicWords:         doc.MagicWords,
		Protocols:          doc.Protocols,
		RedirectMagicWords: doc.RedirectMagicWords,
	}

	for _, name := range report.Configuration.NamespaceNames() {
		output.Namespaces = append(output.Namespaces, xmlNamespace{
			Canonical: name,
			Names:     doc.Namespaces[name],
		})
	}

	if len(doc.Ignored) > 0 {
		output.Ignored = &xmlIgnored{Items: make([]xmlIgnoredItem, 0, len(doc.Ignored))}
		for _, ig := range doc.Ignored {
			output.Ignored.Items = append(output.Ignored.Items, xmlIgnoredItem{
				Field:  ig.Field,
				Reason: ig.Reason,
				Rule:   ig.Rule,
				Value:  ig.Value,
			})
		}
	}

	data, err := xml.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), data...), nil
}
