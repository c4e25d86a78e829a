// Package i18n holds the flat per-language dictionaries and Accept-Language negotiation.
package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Dictionary maps message keys to copy for one language.
type Dictionary map[string]string

// Bundle is the set of published languages and their dictionaries.
type Bundle struct {
	fallback string
	langs    []string // matcher order, fallback first
	dicts    map[string]Dictionary
	matcher  language.Matcher
}

// Load reads <dir>/<lang>.json for every supported language. A missing file is tolerated
// for every language except the fallback, whose dictionary backs all lookups.
func Load(dir string, fallback string, supported []string) (*Bundle, error) {
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	if len(supported) == 0 {
		supported = []string{"en", "es"}
	}

	b := &Bundle{fallback: fallback, dicts: make(map[string]Dictionary, len(supported))}
	langs := []string{fallback}
	for _, l := range supported {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != fallback {
			langs = append(langs, l)
		}
	}

	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("i18n: language %q: %w", l, err)
		}
		dict, err := readDictionary(filepath.Join(dir, l+".json"))
		switch {
		case errors.Is(err, fs.ErrNotExist) && l != fallback:
		case err != nil:
			return nil, fmt.Errorf("i18n: %s: %w", l, err)
		default:
			b.dicts[l] = dict
		}
		tags = append(tags, tag)
	}
	b.langs = langs
	b.matcher = language.NewMatcher(tags)
	return b, nil
}

func readDictionary(path string) (Dictionary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Dictionary
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return d, nil
}

// Supported lists the published languages, sorted.
func (b *Bundle) Supported() []string {
	out := append([]string(nil), b.langs...)
	sort.Strings(out)
	return out
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// IsSupported reports whether lang is one of the published languages.
func (b *Bundle) IsSupported(lang string) bool {
	for _, l := range b.langs {
		if l == lang {
			return true
		}
	}
	return false
}

// T returns the copy for key in lang, then in the fallback language, then key itself.
func (b *Bundle) T(lang, key string) string {
	if v, ok := b.dicts[lang][key]; ok {
		return v
	}
	if v, ok := b.dicts[b.fallback][key]; ok {
		return v
	}
	return key
}

// Tf translates key and fills {name} placeholders from name/value pairs.
func (b *Bundle) Tf(lang, key string, pairs ...any) string {
	repl := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		repl = append(repl, "{"+fmt.Sprint(pairs[i])+"}", fmt.Sprint(pairs[i+1]))
	}
	return strings.NewReplacer(repl...).Replace(b.T(lang, key))
}

// Resolve picks the published language for an Accept-Language header. Preferences are
// tried in descending q order; a regional variant (es-MX) selects its base language, and
// q=0 entries are never chosen. Unparseable headers get the fallback.
func (b *Bundle) Resolve(acceptLang string) string {
	tags, weights, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil {
		return b.fallback
	}
	for i, tag := range tags {
		if weights[i] <= 0 {
			continue
		}
		if _, idx, conf := b.matcher.Match(tag); conf >= language.High {
			return b.langs[idx]
		}
	}
	return b.fallback
}
