// Package siteinfo models the MediaWiki siteinfo query payload.
//
// The types mirror the JSON returned by
// api.php?action=query&meta=siteinfo&siprop=general|namespaces|namespacealiases|extensiontags|protocols|magicwords&formatversion=2
// and only declare the fields this module reads.
package siteinfo

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Response is the top-level API response envelope.
type Response struct {
	Query Query `json:"query"`
}

// Query is the site information payload.
type Query struct {
	General          General              `json:"general"`
	Namespaces       map[string]Namespace `json:"namespaces"`
	NamespaceAliases []NamespaceAlias     `json:"namespacealiases"`
	ExtensionTags    []ExtensionTag       `json:"extensiontags"`
	Protocols        []Protocol           `json:"protocols"`
	MagicWords       []MagicWord          `json:"magicwords"`
}

// General holds the general site settings.
type General struct {
	// LinkTrail is the PCRE pattern, with delimiters and modifiers,
	// whose first group matches the characters absorbed after a link.
	LinkTrail string `json:"linktrail"`
}

// Namespace describes one namespace.
type Namespace struct {
	ID int `json:"id"`
	// Canonical is the locale-invariant name. The main namespace has none.
	Canonical *string `json:"canonical,omitempty"`
	// Name is the localized name.
	Name string `json:"name"`
}

// CanonicalName returns the canonical name and whether one is set.
func (n Namespace) CanonicalName() (string, bool) {
	if n.Canonical == nil {
		return "", false
	}
	return *n.Canonical, true
}

// NamespaceAlias maps an additional name to a namespace id.
type NamespaceAlias struct {
	ID    int    `json:"id"`
	Alias string `json:"alias"`
}

// ExtensionTag is a tag marker of the form "<name>".
type ExtensionTag string

// Protocol is a URL protocol prefix such as "https://" or "mailto:".
type Protocol string

// MagicWord is a reserved keyword with its aliases.
type MagicWord struct {
	Name          string   `json:"name"`
	Aliases       []string `json:"aliases"`
	CaseSensitive bool     `json:"case-sensitive"`
}

// Decode reads a siteinfo response from r.
// Both the full response envelope and a bare query object are accepted.
func Decode(r io.Reader) (*Query, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding siteinfo: %w", err)
	}

	body, ok := raw["query"]
	if !ok {
		// Bare query object: re-marshal what we already have.
		var err error
		body, err = json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding siteinfo: %w", err)
		}
	}

	q := &Query{}
	if err := json.Unmarshal(body, q); err != nil {
		return nil, fmt.Errorf("decoding siteinfo query: %w", err)
	}
	return q, nil
}

// LoadFile reads a siteinfo response from a file.
func LoadFile(path string) (*Query, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}
