package seo

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// PlainText returns the visible text of an HTML fragment with whitespace collapsed.
func PlainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// Excerpt returns the first paragraph of fragment as plain text, cut at max runes on a word boundary.
func Excerpt(fragment string, max int) string {
	if i := strings.Index(fragment, "</p>"); i >= 0 {
		fragment = fragment[:i]
	}
	text := PlainText(fragment)
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:max])
	if sp := strings.LastIndexByte(cut, ' '); sp > 0 {
		cut = cut[:sp]
	}
	return strings.TrimRight(cut, ",;:. ") + "…"
}
