package public

import (
	"embed"
	"io/fs"
)

//go:embed img
var media embed.FS

//go:embed assets
var static embed.FS

// Media returns the gallery images. The root holds only img/, so nothing else is reachable
// under /media/.
func Media() fs.FS {
	return media
}

// Assets returns the stylesheet and script bundle served under /assets/.
func Assets() (fs.FS, error) {
	return fs.Sub(static, "assets")
}
