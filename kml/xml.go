package kml

import (
	"strconv"
	"strings"
)

const indentStep = "  "

// Serialize renders the document tree as an indented KML 2.2 file.
// Names and hrefs go through standard XML escaping; placemark
// descriptions are emitted as CDATA so embedded HTML survives verbatim.
func Serialize(d *Document) []byte {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<kml xmlns=\"http://www.opengis.net/kml/2.2\">\n")
	openElem(&b, 1, "Document")
	writeTextElem(&b, 2, "name", d.Name)
	writeTextElem(&b, 2, "description", d.Description)
	for _, s := range d.Styles {
		writeStyleXML(&b, 2, s)
	}
	for _, f := range d.Folders {
		writeFolderXML(&b, 2, f)
	}
	closeElem(&b, 1, "Document")
	b.WriteString("</kml>\n")
	return []byte(b.String())
}

func writeStyleXML(b *strings.Builder, depth int, s Style) {
	indent(b, depth)
	b.WriteString("<Style id=\"")
	b.WriteString(xmlEscape(s.ID))
	b.WriteString("\">\n")
	openElem(b, depth+1, "IconStyle")
	writeTextElem(b, depth+2, "color", s.Color)
	openElem(b, depth+2, "Icon")
	writeTextElem(b, depth+3, "href", s.IconHref)
	closeElem(b, depth+2, "Icon")
	closeElem(b, depth+1, "IconStyle")
	openElem(b, depth+1, "LineStyle")
	writeTextElem(b, depth+2, "color", s.Color)
	writeTextElem(b, depth+2, "width", strconv.Itoa(s.LineWidth))
	closeElem(b, depth+1, "LineStyle")
	closeElem(b, depth, "Style")
}

func writeFolderXML(b *strings.Builder, depth int, f Folder) {
	openElem(b, depth, "Folder")
	writeTextElem(b, depth+1, "name", f.Name)
	for _, sub := range f.Folders {
		writeFolderXML(b, depth+1, sub)
	}
	for _, p := range f.Placemarks {
		writePlacemarkXML(b, depth+1, p)
	}
	closeElem(b, depth, "Folder")
}

func writePlacemarkXML(b *strings.Builder, depth int, p Placemark) {
	openElem(b, depth, "Placemark")
	writeTextElem(b, depth+1, "name", p.Name)
	if p.Description != "" {
		indent(b, depth+1)
		b.WriteString("<description><![CDATA[")
		b.WriteString(cdataEscape(p.Description))
		b.WriteString("]]></description>\n")
	}
	if p.StyleID != "" {
		writeTextElem(b, depth+1, "styleUrl", "#"+p.StyleID)
	}
	writeGeometryXML(b, depth+1, p.Geometry)
	closeElem(b, depth, "Placemark")
}

func writeGeometryXML(b *strings.Builder, depth int, g *Geometry) {
	if g == nil {
		return
	}
	if g.Point != nil {
		openElem(b, depth, "Point")
		writeTextElem(b, depth+1, "coordinates", formatCoordinate(*g.Point))
		closeElem(b, depth, "Point")
		return
	}
	if len(g.Path) == 0 {
		return
	}
	openElem(b, depth, "LineString")
	writeTextElem(b, depth+1, "tessellate", "1")
	parts := make([]string, len(g.Path))
	for i, c := range g.Path {
		parts[i] = formatCoordinate(c)
	}
	writeTextElem(b, depth+1, "coordinates", strings.Join(parts, " "))
	closeElem(b, depth, "LineString")
}

// formatCoordinate renders a lon,lat,0 triplet. Altitude is always zero.
func formatCoordinate(c Coordinate) string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Lat, 'f', -1, 64) + ",0"
}

func openElem(b *strings.Builder, depth int, tag string) {
	indent(b, depth)
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(">\n")
}

func closeElem(b *strings.Builder, depth int, tag string) {
	indent(b, depth)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">\n")
}

func writeTextElem(b *strings.Builder, depth int, tag, text string) {
	indent(b, depth)
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(">")
	b.WriteString(xmlEscape(text))
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">\n")
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(indentStep)
	}
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return escaper.Replace(s)
}

// cdataEscape splits any "]]>" in s across two CDATA sections so upstream
// free text cannot terminate the enclosing block early.
func cdataEscape(s string) string {
	return strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
}
