package gallery

import (
	"sort"

	"github.com/Insomnium-Eye/oaxacahouse/internal/assets"
)

// Keyboard keys understood by the modal.
const (
	KeyPrev  = "ArrowLeft"
	KeyNext  = "ArrowRight"
	KeyClose = "Escape"
)

// Modal is the lightbox state for one visitor. It is small enough to live in the session
// cookie between requests.
//
// LoadError belongs to the main viewer and is cleared by every navigation. Failed collects
// the sources that failed to load during the current open session so thumbnails can show
// them de-emphasised independently of the viewer.
//
// Rev counts applied changes. Store bumps it so a report rendered against an older state
// can be told apart from one about the image on screen.
type Modal struct {
	Rev       uint64   `json:"rev,omitempty"`
	IsOpen    bool     `json:"open,omitempty"`
	Selected  int      `json:"sel,omitempty"`
	LoadError bool     `json:"err,omitempty"`
	Failed    []string `json:"failed,omitempty"`
}

// Open shows the modal with the first image selected and no known failures.
func (m *Modal) Open() {
	m.IsOpen = true
	m.Selected = 0
	m.LoadError = false
	m.Failed = nil
}

// Close hides the modal. Selection is kept until the next Open resets it.
func (m *Modal) Close() bool {
	if !m.IsOpen {
		return false
	}
	m.IsOpen = false
	m.LoadError = false
	return true
}

// Prev selects the previous image, wrapping to the last.
func (m *Modal) Prev(n int) bool {
	if !m.IsOpen || n <= 0 {
		return false
	}
	return m.navigate((m.normalized(n)-1+n)%n, n)
}

// Next selects the following image, wrapping to the first.
func (m *Modal) Next(n int) bool {
	if !m.IsOpen || n <= 0 {
		return false
	}
	return m.navigate((m.normalized(n)+1)%n, n)
}

// Select jumps to image i. Out of range indexes are ignored.
func (m *Modal) Select(i, n int) bool {
	if !m.IsOpen || i < 0 || i >= n {
		return false
	}
	return m.navigate(i, n)
}

// HandleKey applies a keyboard key. Keys are ignored while the modal is closed.
func (m *Modal) HandleKey(key string, n int) bool {
	if !m.IsOpen {
		return false
	}
	switch key {
	case KeyPrev, "Left":
		return m.Prev(n)
	case KeyNext, "Right":
		return m.Next(n)
	case KeyClose, "Esc":
		return m.Close()
	}
	return false
}

// ReportFailure records that src failed to load in the viewer. Reports for an image other
// than the selected one arrive late and only mark the thumbnail. Unknown sources are ignored.
func (m *Modal) ReportFailure(src string, images assets.List) bool {
	if !m.IsOpen || images.Index(src) < 0 {
		return false
	}
	changed := m.markFailed(src)
	if cur, ok := images.At(m.normalized(len(images))); ok && cur.Src == src && !m.LoadError {
		m.LoadError = true
		changed = true
	}
	return changed
}

// ReportThumbFailure records a failed thumbnail load without touching the viewer.
func (m *Modal) ReportThumbFailure(src string, images assets.List) bool {
	if !m.IsOpen || images.Index(src) < 0 {
		return false
	}
	return m.markFailed(src)
}

// HasFailed reports whether src failed during the current open session.
func (m Modal) HasFailed(src string) bool {
	i := sort.SearchStrings(m.Failed, src)
	return i < len(m.Failed) && m.Failed[i] == src
}

func (m Modal) clone() Modal {
	if m.Failed != nil {
		m.Failed = append([]string(nil), m.Failed...)
	}
	return m
}

// Normalize clamps Selected into the list bounds.
func (m *Modal) Normalize(n int) {
	m.Selected = m.normalized(n)
}

func (m *Modal) navigate(i, n int) bool {
	changed := m.Selected != i || m.LoadError
	m.Selected = i
	m.LoadError = false
	m.Normalize(n)
	return changed
}

func (m *Modal) markFailed(src string) bool {
	i := sort.SearchStrings(m.Failed, src)
	if i < len(m.Failed) && m.Failed[i] == src {
		return false
	}
	m.Failed = append(m.Failed, "")
	copy(m.Failed[i+1:], m.Failed[i:])
	m.Failed[i] = src
	return true
}

func (m Modal) normalized(n int) int {
	if n <= 0 || m.Selected < 0 {
		return 0
	}
	if m.Selected >= n {
		return n - 1
	}
	return m.Selected
}
