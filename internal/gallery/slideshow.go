// Package gallery holds the viewer state of the site: the autoplaying slideshow and the
// lightbox modal. Neither type knows about HTTP; the server binds them to WebSocket streams
// and htmx fragments.
package gallery

import (
	"sync"
	"time"

	"github.com/Insomnium-Eye/oaxacahouse/internal/assets"
)

// DefaultInterval is the autoplay period.
const DefaultInterval = 3 * time.Second

// Frame is what a slideshow viewer paints after a transition.
type Frame struct {
	Index   int
	Total   int
	Image   assets.Image
	Preload *assets.Image
}

// FrameAt builds the frame for index i. The preload target is the following image and is
// omitted for lists shorter than two.
func FrameAt(images assets.List, i int) (Frame, bool) {
	n := len(images)
	if n == 0 {
		return Frame{}, false
	}
	i = wrap(i, n)
	f := Frame{Index: i, Total: n, Image: images[i]}
	if n >= 2 {
		next := images[(i+1)%n]
		f.Preload = &next
	}
	return f, true
}

// State is the lifecycle of a Slideshow.
type State int

const (
	// Idle has no live timer.
	Idle State = iota
	// Running has exactly one live timer.
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Ticker is the subset of time.Ticker the slideshow needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewTicker wraps time.NewTicker.
func NewTicker(d time.Duration) Ticker { return realTicker{t: time.NewTicker(d)} }

// Slideshow advances through a list on a fixed period.
//
// Start moves Idle -> Running when the list is non-empty and replaces any timer that was
// live. Stop moves back to Idle and returns only after the timer goroutine has exited, so no
// frame callback runs once Stop has returned. Callbacks must not call Stop or Start.
type Slideshow struct {
	period    time.Duration
	newTicker func(time.Duration) Ticker
	onFrame   func(Frame)

	// life serialises Start and Stop; mu guards the fields below.
	life   sync.Mutex
	mu     sync.Mutex
	state  State
	images assets.List
	index  int
	stop   chan struct{}
	done   chan struct{}
}

// SlideshowOption customises a Slideshow.
type SlideshowOption func(*Slideshow)

// WithInterval sets the autoplay period. Non-positive values keep the default.
func WithInterval(d time.Duration) SlideshowOption {
	return func(s *Slideshow) {
		if d > 0 {
			s.period = d
		}
	}
}

// WithTicker replaces the time source.
func WithTicker(fn func(time.Duration) Ticker) SlideshowOption {
	return func(s *Slideshow) {
		if fn != nil {
			s.newTicker = fn
		}
	}
}

// OnFrame registers the callback invoked on start and after every transition.
func OnFrame(fn func(Frame)) SlideshowOption {
	return func(s *Slideshow) { s.onFrame = fn }
}

// NewSlideshow returns an idle slideshow.
func NewSlideshow(opts ...SlideshowOption) *Slideshow {
	s := &Slideshow{
		period:    DefaultInterval,
		newTicker: NewTicker,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start shows the first image of images and begins autoplay. An empty list leaves the
// slideshow idle with nothing to show.
func (s *Slideshow) Start(images assets.List) {
	s.life.Lock()
	defer s.life.Unlock()
	s.teardown()

	s.mu.Lock()
	s.images = images
	s.index = 0
	if len(images) == 0 {
		s.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	s.stop, s.done = stop, done
	s.state = Running
	ticker := s.newTicker(s.period)
	first, _ := FrameAt(images, 0)
	s.mu.Unlock()

	if s.onFrame != nil {
		s.onFrame(first)
	}
	go s.run(ticker, stop, done)
}

// Stop cancels the timer and waits for it to finish. Safe to call repeatedly.
func (s *Slideshow) Stop() {
	s.life.Lock()
	defer s.life.Unlock()
	s.teardown()
}

func (s *Slideshow) teardown() {
	s.mu.Lock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.state = Idle
	done := s.done
	s.mu.Unlock()

	if done != nil {
		<-done
	}
}

// State reports whether a timer is live.
func (s *Slideshow) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the frame on screen, false when there is nothing to show.
func (s *Slideshow) Current() (Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FrameAt(s.images, s.index)
}

func (s *Slideshow) run(t Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C():
			select {
			case <-stop:
				return
			default:
			}
			frame, ok := s.advance()
			if ok && s.onFrame != nil {
				s.onFrame(frame)
			}
		}
	}
}

func (s *Slideshow) advance() (Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running || len(s.images) == 0 {
		return Frame{}, false
	}
	s.index = (s.index + 1) % len(s.images)
	return FrameAt(s.images, s.index)
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
