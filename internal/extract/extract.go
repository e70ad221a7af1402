// Package extract derives normalized parser configuration from a
// MediaWiki siteinfo query.
//
// Every function only reads the query, so callers may run several
// extractions over the same query concurrently.
package extract

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/siteinfo"
)

// RedirectMagicWord is the canonical name of the redirect magic word.
const RedirectMagicWord = "redirect"

const (
	magicWordAffix      = "__"
	redirectAliasPrefix = "#"
)

// lower applies full Unicode lower-casing.
// A Caser is stateful, so each call gets its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Namespaces returns the names of the namespace with the given canonical
// name: the canonical name, the localized name and every alias.
func Namespaces(q *siteinfo.Query, canonical string) (StringSet, error) {
	var (
		namespace siteinfo.Namespace
		found     bool
	)
	for _, ns := range q.Namespaces {
		if name, ok := ns.CanonicalName(); ok && name == canonical {
			namespace, found = ns, true
			break
		}
	}
	if !found {
		return nil, &NamespaceNotFoundError{Name: canonical}
	}

	names := StringSet{}
	for _, na := range q.NamespaceAliases {
		if na.ID == namespace.ID {
			names.Add(lower(na.Alias))
		}
	}
	names.Add(lower(canonical))
	names.Add(lower(namespace.Name))
	return names, nil
}

// ExtensionTags returns the extension tag names without angle brackets.
// The first marker lacking either bracket fails the whole call.
func ExtensionTags(q *siteinfo.Query) (StringSet, error) {
	tags := StringSet{}
	for _, tag := range q.ExtensionTags {
		name, ok := strings.CutPrefix(string(tag), "<")
		if ok {
			name, ok = strings.CutSuffix(name, ">")
		}
		if !ok {
			return nil, &MalformedExtensionTagError{Tag: string(tag)}
		}
		tags.Add(lower(name))
	}
	return tags, nil
}

// Protocols returns the supported URL protocols.
func Protocols(q *siteinfo.Query) StringSet {
	protocols := StringSet{}
	for _, p := range q.Protocols {
		protocols.Add(lower(string(p)))
	}
	return protocols
}

// MagicWords returns the behavior switches, the names and aliases written
// as __NAME__, without the underscores. Other names are skipped.
func MagicWords(q *siteinfo.Query) StringSet {
	words := StringSet{}
	for _, mw := range q.MagicWords {
		for _, s := range slices.Concat(mw.Aliases, []string{mw.Name}) {
			word, ok := strings.CutPrefix(s, magicWordAffix)
			if !ok {
				continue
			}
			if word, ok = strings.CutSuffix(word, magicWordAffix); ok {
				words.Add(lower(word))
			}
		}
	}
	return words
}

// RedirectMagicWords returns the aliases of the redirect magic word without
// their leading "#", plus "redirect" itself.
func RedirectMagicWords(q *siteinfo.Query) StringSet {
	words := StringSet{}
	for _, mw := range q.MagicWords {
		if mw.Name != RedirectMagicWord {
			continue
		}
		for _, alias := range mw.Aliases {
			words.Add(lower(strings.TrimPrefix(alias, redirectAliasPrefix)))
		}
	}
	words.Add(RedirectMagicWord)
	return words
}
