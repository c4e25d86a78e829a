// Package nav describes the in-page section links and the language switcher.
package nav

import (
	"net/url"
	"strings"
)

// Item represents a top-level navigation item.
type Item struct {
	Href     string // "#details" for in-page sections, "/gallery" for routes
	LabelKey string // i18n key, e.g. "nav.details"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// LangLink is one entry of the language switcher.
type LangLink struct {
	Lang     string
	Href     string
	LabelKey string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Href: "/", LabelKey: "nav.home"},
	{Href: "#details", LabelKey: "nav.details"},
	{Href: "/gallery", LabelKey: "site.gallery"},
	{Href: "#contact", LabelKey: "nav.contact"},
}

// Build renders navigation items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     it.Href,
			LabelKey: it.LabelKey,
			Active:   isActive(it.Href, currentPath),
		})
	}
	return items
}

// Languages builds switcher links that keep the current path and set ?hl=.
func Languages(currentPath, current string, supported []string) []LangLink {
	if currentPath == "" {
		currentPath = "/"
	}
	out := make([]LangLink, 0, len(supported))
	for _, l := range supported {
		q := url.Values{"hl": []string{l}}
		out = append(out, LangLink{
			Lang:     l,
			Href:     currentPath + "?" + q.Encode(),
			LabelKey: "lang." + l,
			Active:   l == current,
		})
	}
	return out
}

func isActive(itemHref, currentPath string) bool {
	if strings.HasPrefix(itemHref, "#") {
		return false
	}
	if itemHref == "/" {
		return currentPath == "/"
	}
	return currentPath == itemHref || strings.HasPrefix(currentPath, itemHref+"/")
}
