package main

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/Insomnium-Eye/oaxacahouse/internal/config"
	"github.com/Insomnium-Eye/oaxacahouse/internal/gallery"
	"github.com/Insomnium-Eye/oaxacahouse/internal/testutil"
	"github.com/Insomnium-Eye/oaxacahouse/public"
)

// manualTicker fires only when the test sends on c.
type manualTicker struct {
	c       chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func newManualTicker() *manualTicker {
	return &manualTicker{c: make(chan time.Time), stopped: make(chan struct{})}
}

func (m *manualTicker) C() <-chan time.Time { return m.c }
func (m *manualTicker) Stop()               { m.once.Do(func() { close(m.stopped) }) }

func dialStream(t *testing.T, ts string, query string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(ts, "http") + streamPath + query
	conn, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	return conn
}

type streamFrame struct {
	index   int
	src     string
	key     string
	preload string
	alt     string
	oob     string
}

func readFrame(t *testing.T, conn *websocket.Conn) streamFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	kind, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.TextMessage, kind)

	doc := testutil.ParseHTML(t, msg)
	frame := doc.Find("#slideshow-frame")
	require.Equal(t, 1, frame.Length(), string(msg))
	idx, err := strconv.Atoi(frame.AttrOr("data-index", ""))
	require.NoError(t, err)
	return streamFrame{
		index:   idx,
		src:     frame.Find("img.slide").AttrOr("src", ""),
		key:     frame.Find("img.slide").AttrOr("data-key", ""),
		alt:     frame.Find("img.slide").AttrOr("alt", ""),
		preload: frame.Find(`link[rel="preload"]`).AttrOr("href", ""),
		oob:     frame.AttrOr("hx-swap-oob", ""),
	}
}

func TestSlideshowStreamAdvancesAndWraps(t *testing.T) {
	s := newTestSite(t, public.Media(), func(c *config.Config) {
		c.Gallery.Interval = 1500 * time.Millisecond
	})
	ticker := newManualTicker()
	periods := make(chan time.Duration, 1)
	s.newTicker = func(d time.Duration) gallery.Ticker {
		periods <- d
		return ticker
	}
	ts := newTestServer(t, s)

	conn := dialStream(t, ts.URL, "?hl=es")
	defer conn.Close()

	first := readFrame(t, conn)
	require.Equal(t, 0, first.index)
	require.Equal(t, "true", first.oob)
	require.Equal(t, "/media/img/OaxacaPicture_1.svg", first.src)
	require.Equal(t, "OaxacaPicture_1.svg", first.alt)
	require.Equal(t, "/media/img/OaxacaPicture_2.svg", first.preload)
	require.Equal(t, 1500*time.Millisecond, <-periods)

	// one frame per tick, wrapping after the last image
	for i := 1; i <= 12; i++ {
		ticker.c <- time.Now()
		f := readFrame(t, conn)
		require.Equal(t, i%12, f.index)
		require.Equal(t, "/media/img/OaxacaPicture_"+strconv.Itoa(i%12+1)+".svg", f.src)
		require.Equal(t, f.src, f.key)
		require.Equal(t, "/media/img/OaxacaPicture_"+strconv.Itoa((i+1)%12+1)+".svg", f.preload)
	}
}

func TestSlideshowStreamStopsTimerOnDisconnect(t *testing.T) {
	s := newTestSite(t, public.Media())
	ticker := newManualTicker()
	s.newTicker = func(time.Duration) gallery.Ticker { return ticker }
	ts := newTestServer(t, s)

	conn := dialStream(t, ts.URL, "")
	readFrame(t, conn)
	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	require.NoError(t, conn.Close())

	select {
	case <-ticker.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("slideshow timer still live after the viewer left")
	}
}

func TestSlideshowStreamWithoutImagesCloses(t *testing.T) {
	s := newTestSite(t, fstest.MapFS{})
	started := make(chan struct{}, 1)
	s.newTicker = func(d time.Duration) gallery.Ticker {
		started <- struct{}{}
		return gallery.NewTicker(d)
	}
	ts := newTestServer(t, s)

	conn := dialStream(t, ts.URL, "")
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), err.Error())
	require.Empty(t, started, "no timer for an empty list")
}
