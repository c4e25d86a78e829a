package middleware

import (
	"context"
	"net/http"
)

// HTMX records the htmx request headers in context. The same URL answers with either a
// fragment or a full page, so responses vary on HX-Request.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "HX-Request")
		if h, ok := htmxHeaders(r); ok {
			r = r.WithContext(context.WithValue(r.Context(), htmxKey, h))
		}
		next.ServeHTTP(w, r)
	})
}

func htmxHeaders(r *http.Request) (HTMXRequest, bool) {
	if r.Header.Get("HX-Request") != "true" {
		return HTMXRequest{}, false
	}
	return HTMXRequest{
		Target:  r.Header.Get("HX-Target"),
		Trigger: r.Header.Get("HX-Trigger"),
		Boosted: r.Header.Get("HX-Boosted") == "true",
	}, true
}
