package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	mw "github.com/Insomnium-Eye/oaxacahouse/internal/middleware"
)

func (s *site) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(s.logger))
	r.Use(middleware.Recoverer)

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Autoplay stream; a long-lived hijacked connection, so no compression, timeout or session.
	r.Get("/slideshow/ws", s.SlideshowStream)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5))
		r.Use(middleware.Timeout(30 * time.Second))

		r.Handle("/assets/*", mw.AssetsWithCache(s.static, "/assets"))
		r.Handle("/media/*", mw.AssetsWithCache(s.media, "/media"))

		r.Group(func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: s.cfg.CORS.AllowedOrigins,
				AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
				AllowedHeaders: []string{"Accept"},
				MaxAge:         300,
			}))
			r.Get("/api/images", s.ImagesAPI)
			// preflight is answered by the cors middleware; the route only has to exist
			r.Options("/api/images", func(w http.ResponseWriter, r *http.Request) {})
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.HTMX)
			r.Use(mw.Session)
			r.Use(mw.Locale(s.bundle))
			r.Use(mw.CSRF)

			r.Get("/", s.HomeHandler)
			r.Get("/gallery", s.GalleryHandler)
			r.Post("/gallery/open", s.GalleryOpen)
			r.Post("/gallery/close", s.GalleryClose)
			r.Post("/gallery/prev", s.GalleryPrev)
			r.Post("/gallery/next", s.GalleryNext)
			r.Post("/gallery/select", s.GallerySelect)
			r.Post("/gallery/key", s.GalleryKey)
			r.Post("/gallery/failed", s.GalleryFailed)
		})
	})
	return r
}
