package main

import (
	"encoding/json"
	"net/http"

	"github.com/Insomnium-Eye/oaxacahouse/internal/assets"
)

type imagesResponse struct {
	Order  string         `json:"order"`
	Count  int            `json:"count"`
	Images []assets.Image `json:"images"`
}

// ImagesAPI returns the resolved image list in display order.
func (s *site) ImagesAPI(w http.ResponseWriter, r *http.Request) {
	images := s.images
	if images == nil {
		images = assets.List{}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_ = json.NewEncoder(w).Encode(imagesResponse{
		Order:  s.cfg.Order().String(),
		Count:  len(images),
		Images: images,
	})
}
