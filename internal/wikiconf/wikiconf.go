// Package wikiconf assembles the wikitext parser configuration of one site.
package wikiconf

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/extract"
	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/filter"
	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/siteinfo"
)

// Canonical names of the namespaces every configuration carries.
const (
	CategoryNamespace = "Category"
	FileNamespace     = "File"
)

// Field names, used in error messages and ignore reports.
const (
	FieldCategoryNamespaces = "category_namespaces"
	FieldExtensionTags      = "extension_tags"
	FieldFileNamespaces     = "file_namespaces"
	FieldLinkTrail          = "link_trail"
	FieldMagicWords         = "magic_words"
	FieldProtocols          = "protocols"
	FieldRedirectMagicWords = "redirect_magic_words"
	FieldNamespaces         = "namespaces"
)

// Configuration is the set of site facts a wikitext parser needs.
type Configuration struct {
	CategoryNamespaces extract.StringSet
	ExtensionTags      extract.StringSet
	FileNamespaces     extract.StringSet
	LinkTrail          extract.CharSet
	MagicWords         extract.StringSet
	Protocols          extract.StringSet
	RedirectMagicWords extract.StringSet

	// Namespaces holds additionally requested namespaces by canonical name.
	Namespaces map[string]extract.StringSet
}

// LinkTrailString returns the link trail characters in ascending order.
func (c *Configuration) LinkTrailString() string {
	return string(c.LinkTrail.Sorted())
}

// NamespaceNames returns the canonical names in Namespaces, sorted.
func (c *Configuration) NamespaceNames() []string {
	names := make([]string, 0, len(c.Namespaces))
	for name := range c.Namespaces {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Options controls Build.
type Options struct {
	// Namespaces are extra canonical names or glob patterns to extract.
	// A plain name must exist on the site; a pattern may match nothing.
	Namespaces []string

	// Filter drops ignored values from the string sets. May be nil.
	Filter *filter.Filter
}

// Build extracts a Configuration from q.
// The extractions run concurrently; the first failure is returned.
func Build(q *siteinfo.Query, opts Options) (*Configuration, error) {
	extra, err := ResolveNamespaces(q, opts.Namespaces)
	if err != nil {
		return nil, err
	}

	cfg := &Configuration{Namespaces: make(map[string]extract.StringSet, len(extra))}
	extraSets := make([]extract.StringSet, len(extra))

	var g errgroup.Group
	g.Go(func() (err error) {
		cfg.CategoryNamespaces, err = extract.Namespaces(q, CategoryNamespace)
		return wrap(FieldCategoryNamespaces, err)
	})
	g.Go(func() (err error) {
		cfg.FileNamespaces, err = extract.Namespaces(q, FileNamespace)
		return wrap(FieldFileNamespaces, err)
	})
	g.Go(func() (err error) {
		cfg.ExtensionTags, err = extract.ExtensionTags(q)
		return wrap(FieldExtensionTags, err)
	})
	g.Go(func() (err error) {
		cfg.LinkTrail, err = extract.LinkTrail(q)
		return wrap(FieldLinkTrail, err)
	})
	g.Go(func() error {
		cfg.MagicWords = extract.MagicWords(q)
		cfg.Protocols = extract.Protocols(q)
		cfg.RedirectMagicWords = extract.RedirectMagicWords(q)
		return nil
	})
	for i, name := range extra {
		g.Go(func() (err error) {
			extraSets[i], err = extract.Namespaces(q, name)
			return wrap(FieldNamespaces, err)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, name := range extra {
		cfg.Namespaces[name] = extraSets[i]
	}

	if opts.Filter.HasRules() {
		opts.Filter.Apply(FieldCategoryNamespaces, cfg.CategoryNamespaces)
		opts.Filter.Apply(FieldExtensionTags, cfg.ExtensionTags)
		opts.Filter.Apply(FieldFileNamespaces, cfg.FileNamespaces)
		opts.Filter.Apply(FieldMagicWords, cfg.MagicWords)
		opts.Filter.Apply(FieldProtocols, cfg.Protocols)
		opts.Filter.Apply(FieldRedirectMagicWords, cfg.RedirectMagicWords)
		for _, name := range extra {
			opts.Filter.Apply(FieldNamespaces, cfg.Namespaces[name])
		}
	}

	return cfg, nil
}

func wrap(field string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

// ResolveNamespaces expands the requested names and patterns into canonical
// names, sorted and without duplicates. Patterns are matched against every
// canonical name on the site; plain names are kept as given.
func ResolveNamespaces(q *siteinfo.Query, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return nil, nil
	}

	canonical := make([]string, 0, len(q.Namespaces))
	for _, ns := range q.Namespaces {
		if name, ok := ns.CanonicalName(); ok {
			canonical = append(canonical, name)
		}
	}

	seen := map[string]bool{}
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, r := range requested {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if !isPattern(r) {
			add(r)
			continue
		}
		g, err := glob.Compile(r)
		if err != nil {
			return nil, fmt.Errorf("invalid namespace pattern %q: %w", r, err)
		}
		for _, name := range canonical {
			if g.Match(name) {
				add(name)
			}
		}
	}

	slices.Sort(names)
	return names, nil
}

// isPattern reports whether s uses glob syntax.
func isPattern(s string) bool {
	return strings.ContainsAny(s, `*?[{\`)
}
