package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/Insomnium-Eye/oaxacahouse/internal/gallery"
	handlersPkg "github.com/Insomnium-Eye/oaxacahouse/internal/handlers"
	"github.com/Insomnium-Eye/oaxacahouse/internal/observability"
)

const (
	streamWriteWait = 10 * time.Second
	streamPongWait  = 60 * time.Second
	streamPingEvery = streamPongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// SlideshowStream drives one autoplaying slideshow per connection. Connecting mounts the
// slideshow and disconnecting tears it down; no frame is sent after the socket closes.
// Each frame is an htmx out-of-band swap of #slideshow-frame.
func (s *site) SlideshowStream(w http.ResponseWriter, r *http.Request) {
	streamID := ulid.Make().String()
	logger := observability.FromContext(r.Context()).With(zap.String("stream_id", streamID))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("slideshow upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	lang := strings.ToLower(r.URL.Query().Get("hl"))
	if !s.bundle.IsSupported(lang) {
		lang = s.bundle.Fallback()
	}

	frames := make(chan gallery.Frame, 1)
	show := gallery.NewSlideshow(
		gallery.WithInterval(s.cfg.Gallery.Interval),
		gallery.WithTicker(s.newTicker),
		gallery.OnFrame(func(f gallery.Frame) {
			// keep only the latest frame when the client is slow
			select {
			case frames <- f:
			default:
				select {
				case <-frames:
				default:
				}
				select {
				case frames <- f:
				default:
				}
			}
		}),
	)
	show.Start(s.images)
	defer show.Stop()

	if show.State() != gallery.Running {
		// nothing to play
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "no images"),
			time.Now().Add(streamWriteWait))
		return
	}
	logger.Debug("slideshow stream started", zap.Int("images", len(s.images)))
	s.streams.Add(r.Context(), 1)
	defer s.streams.Add(context.Background(), -1)

	// the reader notices the client going away and answers pings
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(streamPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Debug("slideshow stream read", zap.Error(err))
				}
				return
			}
		}
	}()

	ping := time.NewTicker(streamPingEvery)
	defer ping.Stop()
	for {
		select {
		case <-closed:
			logger.Debug("slideshow stream closed")
			return
		case f := <-frames:
			data := handlersPkg.FrameData(f, lang, "", s.cfg.Gallery.Interval.Milliseconds())
			data.OOB = true
			body, err := s.executeTemplate("slideshow_frame", data)
			if err != nil {
				logger.Error("slideshow frame render failed", zap.Error(err))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		}
	}
}
