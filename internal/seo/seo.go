// Package seo builds document metadata: OpenGraph, Twitter cards, alternates and JSON-LD.
package seo

import (
	"net/url"
	"strings"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

type Twitter struct {
	Card  string
	Image string
}

// Alternate is one hreflang link.
type Alternate struct {
	Href     string
	Hreflang string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []string
}

// Page describes what the metadata is built from.
type Page struct {
	SiteName    string
	BaseURL     string
	Path        string
	Lang        string
	Langs       []string
	Fallback    string
	Title       string
	Description string
	Image       string
}

// Build fills Meta for p. Relative image and page URLs are made absolute when BaseURL is set.
func Build(p Page) Meta {
	m := Meta{
		Title:       p.Title,
		Description: p.Description,
		Robots:      "index,follow",
		Canonical:   Absolute(p.BaseURL, withLang(p.Path, p.Lang)),
	}
	image := Absolute(p.BaseURL, p.Image)
	m.OG = OpenGraph{
		Title:       p.Title,
		Description: p.Description,
		Image:       image,
		Type:        "website",
		URL:         m.Canonical,
		SiteName:    p.SiteName,
		Locale:      ogLocale(p.Lang),
	}
	m.Twitter = Twitter{Card: "summary", Image: image}
	if image != "" {
		m.Twitter.Card = "summary_large_image"
	}
	for _, l := range p.Langs {
		m.Alternates = append(m.Alternates, Alternate{Href: Absolute(p.BaseURL, withLang(p.Path, l)), Hreflang: l})
	}
	if p.Fallback != "" && len(p.Langs) > 1 {
		m.Alternates = append(m.Alternates, Alternate{Href: Absolute(p.BaseURL, p.Path), Hreflang: "x-default"})
	}
	return m
}

// Absolute joins baseURL and ref unless ref is already absolute or baseURL is empty.
func Absolute(baseURL, ref string) string {
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref
	}
	if baseURL == "" {
		return ref
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(ref, "/")
}

func withLang(path, lang string) string {
	if path == "" {
		path = "/"
	}
	if lang == "" {
		return path
	}
	return path + "?hl=" + url.QueryEscape(lang)
}

func ogLocale(lang string) string {
	switch lang {
	case "es":
		return "es_MX"
	case "en":
		return "en_US"
	default:
		return lang
	}
}
