package main

import (
	"encoding/json"
	"net/http"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/Insomnium-Eye/oaxacahouse/internal/config"
	"github.com/Insomnium-Eye/oaxacahouse/internal/testutil"
	"github.com/Insomnium-Eye/oaxacahouse/public"
)

type imagesPayload struct {
	Order  string `json:"order"`
	Count  int    `json:"count"`
	Images []struct {
		Name string `json:"name"`
		Src  string `json:"src"`
	} `json:"images"`
}

func fetchImages(t *testing.T, b *testutil.Browser) imagesPayload {
	t.Helper()
	resp, body := b.Get("/api/images", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	var out imagesPayload
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestImagesAPIListsDisplayOrder(t *testing.T) {
	b := testutil.NewBrowser(t, newTestServer(t, newTestSite(t, public.Media())))

	got := fetchImages(t, b)
	require.Equal(t, "asc", got.Order)
	require.Equal(t, 12, got.Count)
	require.Len(t, got.Images, 12)
	require.Equal(t, "OaxacaPicture_1.svg", got.Images[0].Name)
	require.Equal(t, "OaxacaPicture_2.svg", got.Images[1].Name)
	require.Equal(t, "OaxacaPicture_10.svg", got.Images[9].Name)
	require.Equal(t, "/media/img/OaxacaPicture_12.svg", got.Images[11].Src)
}

func TestImagesAPIDescendingAndEmpty(t *testing.T) {
	desc := newTestSite(t, public.Media(), func(c *config.Config) { c.Gallery.Order = "desc" })
	got := fetchImages(t, testutil.NewBrowser(t, newTestServer(t, desc)))
	require.Equal(t, "desc", got.Order)
	require.Equal(t, "OaxacaPicture_12.svg", got.Images[0].Name)

	empty := newTestSite(t, fstest.MapFS{})
	got = fetchImages(t, testutil.NewBrowser(t, newTestServer(t, empty)))
	require.Equal(t, 0, got.Count)
	require.NotNil(t, got.Images)
}

func TestImagesAPICORS(t *testing.T) {
	s := newTestSite(t, public.Media(), func(c *config.Config) {
		c.CORS.AllowedOrigins = []string{"https://agent.example.com"}
	})
	ts := newTestServer(t, s)
	b := testutil.NewBrowser(t, ts)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/images", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://agent.example.com")
	resp, _ := b.Do(req)
	require.Equal(t, "https://agent.example.com", resp.Header.Get("Access-Control-Allow-Origin"))

	req, err = http.NewRequest(http.MethodGet, ts.URL+"/api/images", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://elsewhere.example.com")
	resp, _ = b.Do(req)
	require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
