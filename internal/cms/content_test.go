package cms

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, lang, slug, body string) {
	t.Helper()
	p := filepath.Join(dir, propertyKind, lang)
	require.NoError(t, os.MkdirAll(p, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(p, slug+".md"), []byte(body), 0o644))
}

func TestGetPropertyParsesFrontMatterAndMarkdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePage(t, dir, "es", "casa", `---
title: Casa Azul
summary: Resumen
updated_at: 2026-01-02
facts:
  - label: Recámaras
    value: "3"
location:
  locality: Oaxaca de Juárez
seo:
  description: Descripción
---
Hola **mundo**.

<script>alert(1)</script>
`)

	c := NewClient(dir, "en", time.Minute)
	page, err := c.GetProperty(context.Background(), "casa", "es-MX")
	require.NoError(t, err)

	require.Equal(t, "Casa Azul", page.Title)
	require.Equal(t, "es", page.Lang)
	require.Equal(t, []Fact{{Label: "Recámaras", Value: "3"}}, page.Facts)
	require.Equal(t, "Oaxaca de Juárez", page.Location.Locality)
	require.Equal(t, "Descripción", page.SEO.Description)
	require.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), page.UpdatedAt)
	require.Contains(t, string(page.HTML), "<strong>mundo</strong>")
	require.NotContains(t, string(page.HTML), "<script>")
}

func TestGetPropertyFallsBackToFallbackLanguage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePage(t, dir, "en", "casa", "---\ntitle: House\n---\nBody")

	c := NewClient(dir, "en", time.Minute)
	page, err := c.GetProperty(context.Background(), "casa", "es")
	require.NoError(t, err)
	require.Equal(t, "House", page.Title)
	require.Equal(t, "en", page.Lang)
}

func TestGetPropertyUsesBuiltinCopy(t *testing.T) {
	t.Parallel()

	c := NewClient(t.TempDir(), "en", time.Minute)
	page, err := c.GetProperty(context.Background(), "casa-oaxaca", "es")
	require.NoError(t, err)
	require.Equal(t, "es", page.Lang)
	require.NotEmpty(t, page.Facts)
	require.True(t, strings.HasPrefix(strings.TrimSpace(string(page.HTML)), "<p>"))

	_, err = c.GetProperty(context.Background(), "unknown", "en")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetPropertyRejectsTraversal(t *testing.T) {
	t.Parallel()

	c := NewClient(t.TempDir(), "en", time.Minute)
	for _, slug := range []string{"", "../secret", "a/b", `a\b`} {
		_, err := c.GetProperty(context.Background(), slug, "en")
		require.ErrorIs(t, err, ErrNotFound, slug)
	}
}

func TestGetPropertyCachesUntilTTL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePage(t, dir, "en", "casa", "---\ntitle: First\n---\n")

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewClient(dir, "en", time.Minute)
	c.now = func() time.Time { return now }

	page, err := c.GetProperty(context.Background(), "casa", "en")
	require.NoError(t, err)
	require.Equal(t, "First", page.Title)

	writePage(t, dir, "en", "casa", "---\ntitle: Second\n---\n")
	page, err = c.GetProperty(context.Background(), "casa", "en")
	require.NoError(t, err)
	require.Equal(t, "First", page.Title)

	now = now.Add(2 * time.Minute)
	page, err = c.GetProperty(context.Background(), "casa", "en")
	require.NoError(t, err)
	require.Equal(t, "Second", page.Title)
}

func TestGetPropertyReportsBadFrontMatter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePage(t, dir, "en", "casa", "---\ntitle: [unclosed\n---\n")

	c := NewClient(dir, "en", time.Minute)
	_, err := c.GetProperty(context.Background(), "casa", "en")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestShippedContentLoads(t *testing.T) {
	t.Parallel()

	c := NewClient("../../content", "en", time.Minute)
	for _, lang := range []string{"en", "es"} {
		page, err := c.GetProperty(context.Background(), "casa-oaxaca", lang)
		require.NoError(t, err)
		require.Equal(t, lang, page.Lang)
		require.NotEmpty(t, page.Facts)
		require.Contains(t, string(page.HTML), "<h2")
	}
}
