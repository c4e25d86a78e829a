package main

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/Insomnium-Eye/oaxacahouse/internal/assets"
	"github.com/Insomnium-Eye/oaxacahouse/internal/gallery"
	handlersPkg "github.com/Insomnium-Eye/oaxacahouse/internal/handlers"
	mw "github.com/Insomnium-Eye/oaxacahouse/internal/middleware"
	"github.com/Insomnium-Eye/oaxacahouse/internal/observability"
)

// GalleryHandler renders the lightbox. htmx requests get the fragment; a direct visit gets the
// whole page with the modal open, opening it first when it was closed.
func (s *site) GalleryHandler(w http.ResponseWriter, r *http.Request) {
	s.applyGallery(r, func(m *gallery.Modal, _ assets.List) bool {
		if m.IsOpen {
			return false
		}
		m.Open()
		return true
	})
	if mw.IsHTMX(r.Context()) {
		s.renderTemplate(w, r, "gallery_modal", s.modalData(r))
		return
	}
	s.renderPage(w, r, s.buildPage(r))
}

// GalleryOpen opens the modal on the first image. An open modal is reset as well.
func (s *site) GalleryOpen(w http.ResponseWriter, r *http.Request) {
	s.updateGallery(w, r, func(m *gallery.Modal, _ assets.List) bool {
		m.Open()
		return true
	})
}

func (s *site) GalleryClose(w http.ResponseWriter, r *http.Request) {
	s.updateGallery(w, r, func(m *gallery.Modal, _ assets.List) bool {
		return m.Close()
	})
}

func (s *site) GalleryPrev(w http.ResponseWriter, r *http.Request) {
	s.updateGallery(w, r, func(m *gallery.Modal, images assets.List) bool {
		return m.Prev(len(images))
	})
}

func (s *site) GalleryNext(w http.ResponseWriter, r *http.Request) {
	s.updateGallery(w, r, func(m *gallery.Modal, images assets.List) bool {
		return m.Next(len(images))
	})
}

// GallerySelect jumps to ?i=<index>, the thumbnail that was clicked.
func (s *site) GallerySelect(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(r.FormValue("i"))
	if err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid image index")
		return
	}
	s.updateGallery(w, r, func(m *gallery.Modal, images assets.List) bool {
		return m.Select(i, len(images))
	})
}

// GalleryKey applies ?key= (ArrowLeft, ArrowRight, Escape). Keys are ignored while closed.
func (s *site) GalleryKey(w http.ResponseWriter, r *http.Request) {
	key := r.FormValue("key")
	s.updateGallery(w, r, func(m *gallery.Modal, images assets.List) bool {
		return m.HandleKey(key, len(images))
	})
}

// GalleryFailed records that ?src= failed to load, in the viewer or (thumb=1) the strip.
// A viewer report carries ?rev= of the fragment that rendered the image; when the modal has
// changed since, the report only marks the thumbnail.
func (s *site) GalleryFailed(w http.ResponseWriter, r *http.Request) {
	src := r.FormValue("src")
	thumb := r.FormValue("thumb") != ""
	rev, hasRev := parseRev(r.FormValue("rev"))
	s.updateGallery(w, r, func(m *gallery.Modal, images assets.List) bool {
		stale := hasRev && rev != m.Rev
		var changed bool
		if thumb || stale {
			changed = m.ReportThumbFailure(src, images)
		} else {
			changed = m.ReportFailure(src, images)
		}
		if changed {
			observability.FromContext(r.Context()).Warn("image failed to load",
				zap.String("src", src), zap.Bool("thumb", thumb), zap.Bool("stale", stale))
		}
		return changed
	})
}

func parseRev(v string) (uint64, bool) {
	if v == "" {
		return 0, false
	}
	rev, err := strconv.ParseUint(v, 10, 64)
	return rev, err == nil
}

// updateGallery applies fn to the visitor's modal and answers with the fragment for htmx,
// or a redirect back to the page for plain form posts.
func (s *site) updateGallery(w http.ResponseWriter, r *http.Request, fn func(*gallery.Modal, assets.List) bool) {
	m := s.applyGallery(r, fn)
	if mw.IsHTMX(r.Context()) {
		s.renderTemplate(w, r, "gallery_modal", s.modalData(r))
		return
	}
	target := "/"
	if m.IsOpen {
		target = "/gallery"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// applyGallery runs fn against the stored modal for this session and mirrors the result
// into the session cookie.
func (s *site) applyGallery(r *http.Request, fn func(*gallery.Modal, assets.List) bool) gallery.Modal {
	sess := mw.GetSession(r)
	m, _ := s.modals.Update(sess.ID, sess.Gallery, func(m *gallery.Modal) bool {
		return fn(m, s.images)
	})
	if m.Rev != sess.Gallery.Rev {
		sess.Gallery = m
		sess.MarkDirty()
	}
	return m
}

func (s *site) modalData(r *http.Request) handlersPkg.ModalData {
	sess := mw.GetSession(r)
	return handlersPkg.ModalData{
		View:      s.modals.Load(sess.ID, sess.Gallery).View(s.images),
		Lang:      mw.Lang(r),
		CSRFToken: mw.CSRFToken(r),
	}
}
