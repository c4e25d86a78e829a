package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildAbsoluteURLsAndAlternates(t *testing.T) {
	t.Parallel()

	m := Build(Page{
		SiteName:    "Casa Oaxaca",
		BaseURL:     "https://casa.example.com",
		Path:        "/",
		Lang:        "es",
		Langs:       []string{"en", "es"},
		Fallback:    "en",
		Title:       "Casa",
		Description: "Desc",
		Image:       "/media/img/OaxacaPicture_1.svg",
	})

	require.Equal(t, "https://casa.example.com/?hl=es", m.Canonical)
	require.Equal(t, "https://casa.example.com/media/img/OaxacaPicture_1.svg", m.OG.Image)
	require.Equal(t, "website", m.OG.Type)
	require.Equal(t, "es_MX", m.OG.Locale)
	require.Equal(t, "summary_large_image", m.Twitter.Card)
	require.Equal(t, []Alternate{
		{Href: "https://casa.example.com/?hl=en", Hreflang: "en"},
		{Href: "https://casa.example.com/?hl=es", Hreflang: "es"},
		{Href: "https://casa.example.com/", Hreflang: "x-default"},
	}, m.Alternates)
}

func TestBuildWithoutImageOrBase(t *testing.T) {
	t.Parallel()

	m := Build(Page{Path: "/", Lang: "en", Title: "T"})
	require.Equal(t, "/?hl=en", m.Canonical)
	require.Empty(t, m.OG.Image)
	require.Equal(t, "summary", m.Twitter.Card)
	require.Empty(t, m.Alternates)
}

func TestAccommodationIncludesImages(t *testing.T) {
	t.Parallel()

	raw := JSON(Accommodation(Listing{
		Name:    "Casa Oaxaca",
		Images:  []string{"https://x/1.jpg", "https://x/2.jpg"},
		Address: Address{Locality: "Oaxaca de Juárez", Country: "MX"},
	}))
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	require.Equal(t, "Accommodation", got["@type"])
	require.Len(t, got["image"], 2)
	addr := got["address"].(map[string]any)
	require.Equal(t, "Oaxaca de Juárez", addr["addressLocality"])
	require.NotContains(t, addr, "addressRegion")

	bare := Accommodation(Listing{Name: "x"})
	require.NotContains(t, bare, "address")
	require.NotContains(t, bare, "image")
}

func TestPlainTextAndExcerpt(t *testing.T) {
	t.Parallel()

	frag := "<p>Thick <strong>adobe</strong>\n walls &amp; a courtyard.</p><script>x()</script><p>Second.</p>"
	require.Equal(t, "Thick adobe walls & a courtyard. Second.", PlainText(frag))
	require.Equal(t, "Thick adobe walls & a courtyard.", Excerpt(frag, 0))
	require.Equal(t, "Thick adobe…", Excerpt(frag, 14))
}
