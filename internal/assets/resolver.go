// Package assets turns a fixed directory of image files into the ordered list shown by the
// slideshow and the gallery modal.
package assets

import (
	"fmt"
	"io/fs"
	"math"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches the image formats the site ships with.
const DefaultPattern = "img/*.{jpg,jpeg,png,webp,svg}"

// DefaultURLPrefix is where the HTTP server mounts the media filesystem.
const DefaultURLPrefix = "/media"

// Image pairs a display name with a loadable URL. Src is never empty for entries of a List.
type Image struct {
	Src  string `json:"src"`
	Name string `json:"name"`
}

// List is the display and navigation order of the site's images.
type List []Image

// Len is nil-safe.
func (l List) Len() int { return len(l) }

// At returns the image at i and whether i was in range.
func (l List) At(i int) (Image, bool) {
	if i < 0 || i >= len(l) {
		return Image{}, false
	}
	return l[i], true
}

// Index returns the position of the image served from src, or -1.
func (l List) Index(src string) int {
	for i, img := range l {
		if img.Src == src {
			return i
		}
	}
	return -1
}

// Names lists the display names in order.
func (l List) Names() []string {
	out := make([]string, 0, len(l))
	for _, img := range l {
		out = append(out, img.Name)
	}
	return out
}

// Entry is a resolved image together with the facts the resolver used to place it.
type Entry struct {
	Image
	Path string
	Size int64
	Key  int
}

// Resolver enumerates a filesystem and produces a deterministic List.
type Resolver struct {
	fsys    fs.FS
	pattern string
	order   Order
	prefix  string
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithOrder selects the ordering policy. The default is OrderAscending.
func WithOrder(o Order) Option {
	return func(r *Resolver) { r.order = o }
}

// WithURLPrefix changes the URL path under which image sources are built.
func WithURLPrefix(prefix string) Option {
	return func(r *Resolver) { r.prefix = prefix }
}

// NewResolver builds a resolver for files in fsys matching the doublestar pattern.
func NewResolver(fsys fs.FS, pattern string, opts ...Option) *Resolver {
	r := &Resolver{
		fsys:    fsys,
		pattern: strings.TrimSpace(pattern),
		order:   OrderAscending,
		prefix:  DefaultURLPrefix,
	}
	if r.pattern == "" {
		r.pattern = DefaultPattern
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the ordered image list. Files that cannot be resolved are skipped.
func (r *Resolver) Resolve() (List, error) {
	entries, err := r.Entries()
	if err != nil {
		return nil, err
	}
	list := make(List, 0, len(entries))
	for _, e := range entries {
		list = append(list, e.Image)
	}
	return list, nil
}

// Entries is Resolve with the path, size and sort key of each image.
func (r *Resolver) Entries() ([]Entry, error) {
	if !doublestar.ValidatePattern(r.pattern) {
		return nil, fmt.Errorf("assets: invalid pattern %q", r.pattern)
	}
	if r.fsys == nil {
		return nil, nil
	}
	matches, err := doublestar.Glob(r.fsys, r.pattern)
	if err != nil {
		return nil, fmt.Errorf("assets: glob %q: %w", r.pattern, err)
	}
	entries := make([]Entry, 0, len(matches))
	for _, p := range matches {
		info, err := fs.Stat(r.fsys, p)
		if err != nil || info.IsDir() {
			continue
		}
		src := r.sourceURL(p)
		if src == "" {
			continue
		}
		name := path.Base(p)
		entries = append(entries, Entry{
			Image: Image{Src: src, Name: name},
			Path:  p,
			Size:  info.Size(),
			Key:   Key(name),
		})
	}
	sortEntries(entries, r.order)
	return entries, nil
}

func (r *Resolver) sourceURL(p string) string {
	p = strings.Trim(p, "/")
	if p == "" || p == "." {
		return ""
	}
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	prefix := strings.TrimRight(r.prefix, "/")
	return prefix + "/" + strings.Join(segs, "/")
}

// Key extracts the first run of ASCII digits in name. Names without digits sort as 0.
func Key(name string) int {
	start := -1
	end := len(name)
	for i := 0; i < len(name); i++ {
		isDigit := name[i] >= '0' && name[i] <= '9'
		if start < 0 && isDigit {
			start = i
			continue
		}
		if start >= 0 && !isDigit {
			end = i
			break
		}
	}
	if start < 0 {
		return 0
	}
	n, err := strconv.ParseInt(name[start:end], 10, 64)
	if err != nil {
		// only overflow reaches here
		return math.MaxInt
	}
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

func sortEntries(entries []Entry, order Order) {
	switch order {
	case OrderAscending:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	case OrderDescending:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Key > entries[j].Key })
	}
}
