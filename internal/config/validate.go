package config

import (
	"fmt"
	"strings"

	"github.com/Insomnium-Eye/oaxacahouse/internal/assets"
)

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Validate checks that the configuration can start a server.
func (c *Config) Validate() error {
	var bad []string
	if strings.TrimSpace(c.Server.Addr) == "" {
		bad = append(bad, "server.addr")
	}
	if c.Gallery.Interval <= 0 {
		bad = append(bad, "gallery.interval")
	}
	if _, err := assets.ParseOrder(c.Gallery.Order); err != nil {
		bad = append(bad, "gallery.order")
	}
	if strings.TrimSpace(c.I18n.Fallback) == "" {
		bad = append(bad, "i18n.fallback")
	} else if !contains(c.I18n.Supported, c.I18n.Fallback) {
		bad = append(bad, "i18n.supported")
	}
	if c.IsProd() && strings.TrimSpace(c.Session.SigningKey) == "" {
		bad = append(bad, "session.signing_key")
	}
	if len(bad) > 0 {
		return &ValidationError{fields: bad}
	}
	return nil
}

// IsProd reports whether cookies should be marked secure and secrets are mandatory.
func (c *Config) IsProd() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "prod")
}

// Order returns the parsed gallery order. Validate guarantees it parses.
func (c *Config) Order() assets.Order {
	o, err := assets.ParseOrder(c.Gallery.Order)
	if err != nil {
		return assets.OrderAscending
	}
	return o
}

func (c *Config) normalize() {
	c.I18n.Fallback = strings.ToLower(strings.TrimSpace(c.I18n.Fallback))
	c.I18n.Supported = splitList(c.I18n.Supported)
	for i, l := range c.I18n.Supported {
		c.I18n.Supported[i] = strings.ToLower(l)
	}
	c.CORS.AllowedOrigins = splitList(c.CORS.AllowedOrigins)
	c.Site.BaseURL = strings.TrimRight(strings.TrimSpace(c.Site.BaseURL), "/")
}

// splitList flattens comma separated entries that arrive as one value from the environment.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
