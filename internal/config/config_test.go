package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Insomnium-Eye/oaxacahouse/internal/assets"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, 3*time.Second, cfg.Gallery.Interval)
	require.Equal(t, 12*time.Hour, cfg.Gallery.StateTTL)
	require.Equal(t, 10000, cfg.Gallery.StateCapacity)
	require.Equal(t, assets.OrderAscending, cfg.Order())
	require.Equal(t, assets.DefaultPattern, cfg.Gallery.Pattern)
	require.Equal(t, "en", cfg.I18n.Fallback)
	require.Equal(t, []string{"en", "es"}, cfg.I18n.Supported)
	require.False(t, cfg.IsProd())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oaxaca.yml")
	yml := `
server:
  addr: ":9090"
  read_timeout: 5s
site:
  base_url: "https://casa.example.com/"
gallery:
  order: desc
  interval: 4s
cors:
  allowed_origins: ["https://agent.example.com"]
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	t.Setenv("OAXACA_GALLERY__INTERVAL", "1500ms")
	t.Setenv("OAXACA_I18N__SUPPORTED", "en,es,fr")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, "https://casa.example.com", cfg.Site.BaseURL)
	require.Equal(t, assets.OrderDescending, cfg.Order())
	require.Equal(t, 1500*time.Millisecond, cfg.Gallery.Interval)
	require.Equal(t, []string{"en", "es", "fr"}, cfg.I18n.Supported)
	require.Equal(t, []string{"https://agent.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestValidateReportsFields(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Gallery.Order = "shuffle"
	cfg.Gallery.Interval = 0
	cfg.Env = "prod"
	cfg.I18n.Fallback = "de"

	err := cfg.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.ElementsMatch(t, []string{"gallery.interval", "gallery.order", "i18n.supported", "session.signing_key"}, verr.Fields())
}

func TestLoadRejectsInvalidOrder(t *testing.T) {
	t.Setenv("OAXACA_GALLERY__ORDER", "random")
	_, err := Load("")
	require.Error(t, err)
}
