package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url, lang string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if lang != "" {
		m["inLanguage"] = lang
	}
	return m
}

// Address maps to schema.org PostalAddress.
type Address struct {
	Street   string
	Locality string
	Region   string
	Country  string
}

// Listing describes the house for the Accommodation schema.
type Listing struct {
	Name        string
	Description string
	URL         string
	Images      []string
	Address     Address
	Rooms       string
}

// Accommodation returns a schema.org Accommodation payload with every image URL.
func Accommodation(l Listing) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Accommodation",
		"name":     l.Name,
	}
	if l.Description != "" {
		m["description"] = l.Description
	}
	if l.URL != "" {
		m["url"] = l.URL
	}
	if len(l.Images) > 0 {
		m["image"] = l.Images
	}
	if l.Rooms != "" {
		m["numberOfRooms"] = l.Rooms
	}
	addr := map[string]any{"@type": "PostalAddress"}
	if l.Address.Street != "" {
		addr["streetAddress"] = l.Address.Street
	}
	if l.Address.Locality != "" {
		addr["addressLocality"] = l.Address.Locality
	}
	if l.Address.Region != "" {
		addr["addressRegion"] = l.Address.Region
	}
	if l.Address.Country != "" {
		addr["addressCountry"] = l.Address.Country
	}
	if len(addr) > 1 {
		m["address"] = addr
	}
	return m
}
