package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Insomnium-Eye/oaxacahouse/internal/assets"
)

func TestNewSlideshowData(t *testing.T) {
	t.Parallel()

	images := assets.List{
		{Src: "/media/img/a1.jpg", Name: "a1.jpg"},
		{Src: "/media/img/a2.jpg", Name: "a2.jpg"},
	}
	d := NewSlideshowData(images, "es", "/slideshow/ws?hl=es", 3000)
	require.True(t, d.Present)
	require.Equal(t, 0, d.Frame.Index)
	require.Equal(t, "a1.jpg", d.Frame.Image.Name)
	require.NotNil(t, d.Frame.Preload)
	require.Equal(t, "a2.jpg", d.Frame.Preload.Name)
	require.Equal(t, int64(3000), d.IntervalMs)
	require.False(t, d.OOB)

	single := NewSlideshowData(images[:1], "en", "", 3000)
	require.True(t, single.Present)
	require.Nil(t, single.Frame.Preload)

	empty := NewSlideshowData(nil, "en", "/slideshow/ws", 3000)
	require.False(t, empty.Present)
	require.Equal(t, "en", empty.Lang)
}

func TestAnalyticsEnabled(t *testing.T) {
	t.Parallel()

	require.False(t, Analytics{}.Enabled())
	require.True(t, Analytics{GA4MeasurementID: "G-TEST123"}.Enabled())
}
