package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/Insomnium-Eye/oaxacahouse/internal/assets"
	"github.com/Insomnium-Eye/oaxacahouse/internal/cms"
	"github.com/Insomnium-Eye/oaxacahouse/internal/config"
	"github.com/Insomnium-Eye/oaxacahouse/internal/gallery"
	"github.com/Insomnium-Eye/oaxacahouse/internal/i18n"
	mw "github.com/Insomnium-Eye/oaxacahouse/internal/middleware"
	"github.com/Insomnium-Eye/oaxacahouse/internal/observability"
)

// site holds everything handlers share. The image list is resolved once and read-only.
type site struct {
	cfg     *config.Config
	logger  *zap.Logger
	images  assets.List
	media   fs.FS
	static  fs.FS
	bundle  *i18n.Bundle
	content *cms.Client

	tmplDir   string
	devMode   bool
	tmplCache *template.Template

	// newTicker is swapped in tests to drive the slideshow stream deterministically.
	newTicker func(time.Duration) gallery.Ticker
	streams   metric.Int64UpDownCounter
	modals    *gallery.Store
}

func newSite(cfg *config.Config, logger *zap.Logger, media, static fs.FS) (*site, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	images, err := assets.NewResolver(media, cfg.Gallery.Pattern, assets.WithOrder(cfg.Order())).Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolving images: %w", err)
	}
	bundle, err := i18n.Load(cfg.Paths.Locales, cfg.I18n.Fallback, cfg.I18n.Supported)
	if err != nil {
		return nil, fmt.Errorf("loading locales: %w", err)
	}
	mw.ConfigureSessions(cfg.Session.SigningKey, cfg.IsProd())
	streams, err := otel.Meter("github.com/Insomnium-Eye/oaxacahouse/cmd/web").Int64UpDownCounter(
		"slideshow.streams.active",
		metric.WithDescription("Slideshow WebSocket streams currently playing"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream meter: %w", err)
	}

	s := &site{
		cfg:       cfg,
		logger:    logger,
		images:    images,
		media:     media,
		static:    static,
		bundle:    bundle,
		content:   cms.NewClient(cfg.Paths.Content, cfg.I18n.Fallback, cfg.Content.CacheTTL),
		tmplDir:   cfg.Paths.Templates,
		devMode:   cfg.Dev,
		newTicker: gallery.NewTicker,
		streams:   streams,
		modals:    gallery.NewStore(cfg.Gallery.StateCapacity, cfg.Gallery.StateTTL),
	}
	if !s.devMode {
		// Parse templates once in production
		tc, err := s.parseTemplates()
		if err != nil {
			return nil, fmt.Errorf("parse templates: %w", err)
		}
		s.tmplCache = tc
	}
	logger.Info("site ready",
		zap.Int("images", len(images)),
		zap.String("order", cfg.Order().String()),
		zap.Strings("langs", bundle.Supported()),
		zap.Bool("dev", s.devMode),
	)
	return s, nil
}

func (s *site) parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"t":    s.bundle.T,
		"tf":   s.bundle.Tf,
		"year": func() int { return time.Now().Year() },
		"jsonld": func(v string) template.JS {
			// produced by seo.JSON from our own data; encoding/json escapes <, > and &
			return template.JS(v)
		},
	}
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(s.tmplDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", s.tmplDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

func (s *site) templates() (*template.Template, error) {
	if s.devMode {
		return s.parseTemplates()
	}
	if s.tmplCache == nil {
		return nil, fmt.Errorf("template not initialized")
	}
	return s.tmplCache, nil
}

// renderPage executes the base layout. In dev mode, templates are reparsed on each request.
func (s *site) renderPage(w http.ResponseWriter, r *http.Request, data any) {
	s.renderTemplate(w, r, "base", data)
}

// renderTemplate executes a named template into a buffer so a failure never leaves a half
// written response.
func (s *site) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	t, err := s.templates()
	if err != nil {
		observability.FromContext(r.Context()).Error("template parse failed", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "template error")
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		observability.FromContext(r.Context()).Error("template exec failed", zap.String("template", name), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "template error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// executeTemplate renders name to a string for non-HTTP sinks such as the slideshow stream.
func (s *site) executeTemplate(name string, data any) ([]byte, error) {
	t, err := s.templates()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (s *site) i18nOrDefault(lang, key, def string) string {
	if v := s.bundle.T(lang, key); v != key {
		return v
	}
	return def
}
