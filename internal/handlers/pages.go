package handlers

import (
	"github.com/Insomnium-Eye/oaxacahouse/internal/assets"
	"github.com/Insomnium-Eye/oaxacahouse/internal/cms"
	"github.com/Insomnium-Eye/oaxacahouse/internal/gallery"
	"github.com/Insomnium-Eye/oaxacahouse/internal/nav"
	"github.com/Insomnium-Eye/oaxacahouse/internal/seo"
)

// PageData is the view model for the single page layout.
type PageData struct {
	Title     string
	Lang      string
	SiteName  string
	SEO       seo.Meta
	Analytics Analytics
	CSRFToken string

	Path      string
	Nav       []nav.RenderedItem
	Languages []nav.LangLink

	Slideshow SlideshowData
	Property  cms.Property
	Modal     ModalData
}

// SlideshowData drives the hero slideshow. Present is false for an empty image list,
// in which case nothing about the slideshow is rendered.
type SlideshowData struct {
	Present    bool
	Frame      gallery.Frame
	StreamURL  string
	IntervalMs int64
	Lang       string
	CSRFToken  string
	// OOB marks frames pushed over the stream as htmx out-of-band swaps.
	OOB bool
}

// ModalData is the lightbox fragment view model.
type ModalData struct {
	gallery.View
	Lang      string
	CSRFToken string
}

// NewSlideshowData builds the initial (mount) frame for images.
func NewSlideshowData(images assets.List, lang, streamURL string, intervalMs int64) SlideshowData {
	frame, ok := gallery.FrameAt(images, 0)
	if !ok {
		return SlideshowData{Lang: lang}
	}
	return FrameData(frame, lang, streamURL, intervalMs)
}

// FrameData wraps an already computed frame.
func FrameData(frame gallery.Frame, lang, streamURL string, intervalMs int64) SlideshowData {
	return SlideshowData{
		Present:    true,
		Frame:      frame,
		StreamURL:  streamURL,
		IntervalMs: intervalMs,
		Lang:       lang,
	}
}
