// Package kml defines the KML 2.2 document model and its serializer.
//
// The model is a value tree: a Document holds a style catalog and an
// ordered list of Folders, each holding Placemarks. Trees are assembled
// fully formed and never mutated after serialization.
//
// Serialization is done manually for precise control over element order,
// indentation, and the CDATA blocks that carry placemark detail bodies.
package kml
