package gallery

import "github.com/Insomnium-Eye/oaxacahouse/internal/assets"

// View is the render model of the modal for one request.
type View struct {
	Rev       uint64
	Open      bool
	Empty     bool
	Index     int
	Position  int
	Total     int
	Current   assets.Image
	LoadError bool
	Thumbs    []Thumb
}

// Thumb is one entry of the thumbnail strip.
type Thumb struct {
	Index    int
	Position int
	Image    assets.Image
	Active   bool
	Failed   bool
}

// View projects the modal onto images. A closed modal yields the zero View.
func (m Modal) View(images assets.List) View {
	if !m.IsOpen {
		return View{}
	}
	n := len(images)
	if n == 0 {
		return View{Rev: m.Rev, Open: true, Empty: true}
	}
	sel := m.normalized(n)
	v := View{
		Rev:       m.Rev,
		Open:      true,
		Index:     sel,
		Position:  sel + 1,
		Total:     n,
		Current:   images[sel],
		LoadError: m.LoadError,
		Thumbs:    make([]Thumb, 0, n),
	}
	for i, img := range images {
		v.Thumbs = append(v.Thumbs, Thumb{
			Index:    i,
			Position: i + 1,
			Image:    img,
			Active:   i == sel,
			Failed:   m.HasFailed(img.Src),
		})
	}
	return v
}
