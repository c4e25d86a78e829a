// Package cms loads the localized property copy from markdown files with YAML front matter.
package cms

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when neither a file nor built-in copy exists for a slug.
var ErrNotFound = errors.New("cms: not found")

const (
	defaultContentDir = "content"
	propertyKind      = "property"
)

// Property is the localized description of the listed house.
type Property struct {
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Facts     []Fact
	Location  Location
	Body      string
	HTML      template.HTML
	UpdatedAt time.Time
	SEO       PropertySEO
}

// Fact is one label/value row of the "at a glance" list.
type Fact struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Location feeds the structured data address.
type Location struct {
	Street   string `yaml:"street"`
	Locality string `yaml:"locality"`
	Region   string `yaml:"region"`
	Country  string `yaml:"country"`
}

// PropertySEO holds optional metadata overrides.
type PropertySEO struct {
	Title       string
	Description string
	OGImage     string
}

type frontMatter struct {
	Title     string   `yaml:"title"`
	Summary   string   `yaml:"summary"`
	Lang      string   `yaml:"lang"`
	UpdatedAt string   `yaml:"updated_at"`
	Facts     []Fact   `yaml:"facts"`
	Location  Location `yaml:"location"`
	SEO       struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		OGImage     string `yaml:"og_image"`
	} `yaml:"seo"`
}

type cacheEntry struct {
	page    Property
	expires time.Time
}

// Client reads property copy from disk, renders it and caches the result.
type Client struct {
	dir      string
	fallback string
	ttl      time.Duration
	md       goldmark.Markdown
	policy   *bluemonday.Policy

	mu    sync.RWMutex
	items map[string]cacheEntry
	now   func() time.Time
}

// NewClient constructs a Client reading <dir>/property/<lang>/<slug>.md. fallback is the
// language tried when the requested one has no file.
func NewClient(dir, fallback string, ttl time.Duration) *Client {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Client{
		dir:      dir,
		fallback: normalizeLang(fallback),
		ttl:      ttl,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: newPropertyHTMLPolicy(),
		items:  map[string]cacheEntry{},
		now:    time.Now,
	}
}

// Dir returns the configured content directory.
func (c *Client) Dir() string { return c.dir }

// GetProperty returns the copy for slug in lang, trying the fallback language and then the
// built-in copy when no file exists.
func (c *Client) GetProperty(ctx context.Context, slug, lang string) (Property, error) {
	if err := ctx.Err(); err != nil {
		return Property{}, err
	}
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Property{}, ErrNotFound
	}
	lang = normalizeLang(lang)

	key := lang + "|" + slug
	if page, ok := c.cached(key); ok {
		return page, nil
	}
	page, err := c.load(slug, lang)
	if err != nil {
		return Property{}, err
	}
	c.store(key, page)
	return cloneProperty(page), nil
}

func (c *Client) load(slug, lang string) (Property, error) {
	priority := []string{lang}
	if c.fallback != "" && c.fallback != lang {
		priority = append(priority, c.fallback)
	}
	for _, candidate := range priority {
		page, err := c.readMarkdown(slug, candidate)
		if err == nil {
			return page, nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		// parse problems surface instead of silently showing other copy
		return Property{}, err
	}
	for _, candidate := range priority {
		if page, ok := builtinProperty(slug, candidate); ok {
			return c.render(page)
		}
	}
	return Property{}, ErrNotFound
}

func (c *Client) readMarkdown(slug, lang string) (Property, error) {
	file := filepath.Join(c.dir, propertyKind, lang, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Property{}, ErrNotFound
		}
		return Property{}, fmt.Errorf("cms: read %s: %w", file, err)
	}
	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Property{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	page := Property{
		Slug:      slug,
		Lang:      firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:     strings.TrimSpace(front.Title),
		Summary:   strings.TrimSpace(front.Summary),
		Facts:     front.Facts,
		Location:  front.Location,
		Body:      body,
		UpdatedAt: parseContentDate(front.UpdatedAt),
		SEO: PropertySEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
		},
	}
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return c.render(page)
}

func (c *Client) render(page Property) (Property, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(page.Body), &buf); err != nil {
		return Property{}, fmt.Errorf("cms: render %s/%s: %w", page.Lang, page.Slug, err)
	}
	page.HTML = template.HTML(c.policy.SanitizeBytes(buf.Bytes()))
	return page, nil
}

func newPropertyHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

func (c *Client) cached(key string) (Property, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		return Property{}, false
	}
	return cloneProperty(entry.page), true
}

func (c *Client) store(key string, page Property) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheEntry{
		page:    cloneProperty(page),
		expires: c.now().Add(c.ttl),
	}
}

func cloneProperty(src Property) Property {
	cp := src
	if src.Facts != nil {
		cp.Facts = append([]Fact(nil), src.Facts...)
	}
	return cp
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	return lang
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
