package main

import (
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/Insomnium-Eye/oaxacahouse/internal/cms"
	handlersPkg "github.com/Insomnium-Eye/oaxacahouse/internal/handlers"
	mw "github.com/Insomnium-Eye/oaxacahouse/internal/middleware"
	"github.com/Insomnium-Eye/oaxacahouse/internal/nav"
	"github.com/Insomnium-Eye/oaxacahouse/internal/observability"
	"github.com/Insomnium-Eye/oaxacahouse/internal/seo"
)

const streamPath = "/slideshow/ws"

// HomeHandler renders the landing page.
func (s *site) HomeHandler(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, s.buildPage(r))
}

func (s *site) buildPage(r *http.Request) handlersPkg.PageData {
	lang := mw.Lang(r)
	token := mw.CSRFToken(r)
	prop := s.property(r, lang)

	vm := handlersPkg.PageData{
		Title:     prop.Title,
		Lang:      lang,
		SiteName:  s.cfg.Site.Name,
		Analytics: handlersPkg.Analytics{GA4MeasurementID: s.cfg.Site.GAMeasurement, Debug: s.cfg.Site.AnalyticsDebug},
		CSRFToken: token,
		Path:      r.URL.Path,
		Nav:       nav.Build(r.URL.Path),
		Languages: nav.Languages(r.URL.Path, lang, s.bundle.Supported()),
		Property:  prop,
		Modal:     s.modalData(r),
	}
	vm.SEO = s.pageMeta(lang, prop)
	vm.Slideshow = handlersPkg.NewSlideshowData(s.images, lang, streamURL(lang), s.cfg.Gallery.Interval.Milliseconds())
	vm.Slideshow.CSRFToken = token
	return vm
}

// property loads the copy; a failure degrades to the site name rather than an error page.
func (s *site) property(r *http.Request, lang string) cms.Property {
	prop, err := s.content.GetProperty(r.Context(), s.cfg.Site.PropertySlug, lang)
	if err != nil {
		observability.FromContext(r.Context()).Warn("property copy unavailable",
			zap.String("slug", s.cfg.Site.PropertySlug), zap.String("lang", lang), zap.Error(err))
		return cms.Property{Title: s.cfg.Site.Name, Lang: lang}
	}
	return prop
}

func (s *site) pageMeta(lang string, prop cms.Property) seo.Meta {
	title := firstNonEmpty(prop.SEO.Title, s.i18nOrDefault(lang, "site.title", s.cfg.Site.Name))
	desc := firstNonEmpty(
		prop.SEO.Description,
		prop.Summary,
		seo.Excerpt(string(prop.HTML), 160),
		s.i18nOrDefault(lang, "site.description", ""),
	)
	var image string
	if len(s.images) > 0 {
		image = s.images[0].Src
	}
	image = firstNonEmpty(prop.SEO.OGImage, image)

	meta := seo.Build(seo.Page{
		SiteName:    s.cfg.Site.Name,
		BaseURL:     s.cfg.Site.BaseURL,
		Path:        "/",
		Lang:        lang,
		Langs:       s.bundle.Supported(),
		Fallback:    s.bundle.Fallback(),
		Title:       title,
		Description: desc,
		Image:       image,
	})

	imageURLs := make([]string, 0, len(s.images))
	for _, img := range s.images {
		imageURLs = append(imageURLs, seo.Absolute(s.cfg.Site.BaseURL, img.Src))
	}
	listing := seo.Listing{
		Name:        firstNonEmpty(prop.Title, s.cfg.Site.Name),
		Description: desc,
		URL:         meta.Canonical,
		Images:      imageURLs,
		Address: seo.Address{
			Street:   prop.Location.Street,
			Locality: prop.Location.Locality,
			Region:   prop.Location.Region,
			Country:  prop.Location.Country,
		},
	}
	meta.JSONLD = []string{
		seo.JSON(seo.WebSite(s.cfg.Site.Name, seo.Absolute(s.cfg.Site.BaseURL, "/"), lang)),
		seo.JSON(seo.Accommodation(listing)),
	}
	return meta
}

func streamURL(lang string) string {
	if lang == "" {
		return streamPath
	}
	return streamPath + "?" + url.Values{"hl": []string{lang}}.Encode()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
