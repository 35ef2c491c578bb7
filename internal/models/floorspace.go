package models

import "fmt"

type ShapeKind string

const (
	Rectangle ShapeKind = "rectangle"
	Polygon   ShapeKind = "polygon"
)

// Coordinates is the stored representation of a floor space region, in
// source-image pixel space. Invariant: MinX <= MaxX, MinY <= MaxY.
type Coordinates struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

func (c Coordinates) Width() float64 {
	return c.MaxX - c.MinX
}

func (c Coordinates) Height() float64 {
	return c.MaxY - c.MinY
}

// Attachment is a file the user attached to a floor space, read fully into
// memory at upload time.
type Attachment struct {
	Name string `json:"name"`
	Data []byte `json:"-"`
}

// FloorSpace represents one annotated region on a floor plan. The ID is
// assigned by the annotation surface and is opaque to the backend.
type FloorSpace struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"desc"`
	Coordinates Coordinates  `json:"coordinates"`
	Shape       ShapeKind    `json:"shape"`
	Color       string       `json:"color"`
	Attachments []Attachment `json:"attachments"`
}

// SpacePatch carries the fields of an update; nil fields are left untouched.
type SpacePatch struct {
	Name        *string
	Description *string
	Coordinates *Coordinates
	Color       *string
	Attachments []Attachment
}

// AssetFileNames returns the attachment file names as they appear in an
// exported archive, in attachment order. Duplicate names within the same
// space get an index suffix before the extension (plan.pdf, plan-2.pdf, ...)
// so that every attachment survives into the archive. The packager and the
// site generator both use this so embedded links always match archive entries.
func (s FloorSpace) AssetFileNames() []string {
	names := make([]string, 0, len(s.Attachments))
	used := make(map[string]bool, len(s.Attachments))

	for _, att := range s.Attachments {
		name := att.Name
		if used[name] {
			base, ext := splitExt(att.Name)
			for n := 2; used[name]; n++ {
				name = fmt.Sprintf("%s-%d%s", base, n, ext)
			}
		}
		used[name] = true
		names = append(names, name)
	}
	return names
}

func splitExt(name string) (string, string) {
	for i := len(name) - 1; i > 0; i-- {
		if name[i] == '.' {
			return name[:i], name[i:]
		}
	}
	return name, ""
}
