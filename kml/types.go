package kml

// Coordinate is a single lon/lat pair. KML orders coordinates
// longitude-first; any elevation component is dropped upstream.
type Coordinate struct {
	Lon float64
	Lat float64
}

// Geometry is a point or a path. Exactly one of the fields is set.
type Geometry struct {
	Point *Coordinate
	Path  []Coordinate
}

// NewPoint creates a point geometry.
func NewPoint(lon, lat float64) *Geometry {
	return &Geometry{Point: &Coordinate{Lon: lon, Lat: lat}}
}

// NewPath creates a path geometry from ordered coordinate pairs.
func NewPath(coords []Coordinate) *Geometry {
	return &Geometry{Path: coords}
}

// Style is one entry of the document's style catalog. Color is an aabbggrr
// KML color applied to both the icon and the line style.
type Style struct {
	ID        string
	Color     string
	IconHref  string
	LineWidth int
}

// Placemark is one rendered map entity. Description carries raw HTML and
// is serialized inside a CDATA section, never entity-escaped. A nil
// Geometry produces a metadata-only placemark.
type Placemark struct {
	Name        string
	Description string
	StyleID     string
	Geometry    *Geometry
}

// Folder is a named, ordered group of placemarks and sub-folders.
type Folder struct {
	Name       string
	Folders    []Folder
	Placemarks []Placemark
}

// Document is the root container: global metadata, the style catalog, and
// the ordered folder tree.
type Document struct {
	Name        string
	Description string
	Styles      []Style
	Folders     []Folder
}

// CountPlacemarks returns the number of placemarks in the folder tree.
func (d *Document) CountPlacemarks() int {
	n := 0
	for _, f := range d.Folders {
		n += f.CountPlacemarks()
	}
	return n
}

// CountPlacemarks returns the number of placemarks in this folder and all
// of its sub-folders.
func (f Folder) CountPlacemarks() int {
	n := len(f.Placemarks)
	for _, sub := range f.Folders {
		n += sub.CountPlacemarks()
	}
	return n
}
