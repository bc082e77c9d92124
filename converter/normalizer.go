package converter

import (
	"regexp"
	"strings"

	"github.com/bcroads/drivebc-kml/drivebc"
	"github.com/bcroads/drivebc-kml/kml"
)

// Central fallback table for absent record fields. Each literal is part of
// the rendered output contract and covered by tests.
const (
	fallbackUnknown      = "Unknown"
	fallbackNoLocation   = "No description"
	fallbackNoLandmark   = "Not specified"
	fallbackNoNextUpdate = "No scheduled update"
	fallbackNoFullText   = "No description available"
	fallbackNumeric      = "N/A"
	fallbackTrafficTitle = "Traffic Event"
	fallbackFerryTitle   = "Ferry Route"
)

// htmlTagRe matches any <...> sequence. Used to sanitize ferry schedule
// free text, which upstream pads with markup of its own.
var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// ExtractGeometry derives a geometry from the record's GeoJSON-style
// location field. A Point needs at least lon and lat; a LineString keeps
// all valid pairs in order, dropping elevation components. A LineString
// that yields a single usable pair degrades to a Point. Anything else,
// including a missing or malformed location, yields nil.
//
// Coordinates are passed through without range validation.
func ExtractGeometry(rec drivebc.Record) *kml.Geometry {
	loc := rec.Map("location")
	if loc == nil {
		return nil
	}
	coords := loc.List("coordinates")
	switch loc.Str("type") {
	case "Point":
		if c, ok := coordinateFrom(coords); ok {
			return kml.NewPoint(c.Lon, c.Lat)
		}
	case "LineString":
		pairs := make([]kml.Coordinate, 0, len(coords))
		for _, raw := range coords {
			pair, ok := raw.([]any)
			if !ok {
				continue
			}
			if c, ok := coordinateFrom(pair); ok {
				pairs = append(pairs, c)
			}
		}
		if len(pairs) == 1 {
			return kml.NewPoint(pairs[0].Lon, pairs[0].Lat)
		}
		if len(pairs) >= 2 {
			return kml.NewPath(pairs)
		}
	}
	return nil
}

// coordinateFrom reads the first two numeric members of a coordinate
// array as lon and lat. Extra members (elevation) are discarded.
func coordinateFrom(pair []any) (kml.Coordinate, bool) {
	if len(pair) < 2 {
		return kml.Coordinate{}, false
	}
	lon, okLon := pair[0].(float64)
	lat, okLat := pair[1].(float64)
	if !okLon || !okLat {
		return kml.Coordinate{}, false
	}
	return kml.Coordinate{Lon: lon, Lat: lat}, true
}

// TrafficTitle derives a placemark title for a traffic event, preferring
// "[id] route - location" and falling through route, location, and the
// raw description. The result is never truncated.
func TrafficTitle(rec drivebc.Record) string {
	route := rec.Str("route_at")
	location := rec.Str("location_description")

	var name string
	switch {
	case route != "" && location != "":
		name = route + " - " + location
	case route != "":
		name = route
	case location != "":
		name = location
	default:
		name = rec.StrOr("description", fallbackTrafficTitle)
	}

	if id := rec.Str("id"); id != "" {
		name = "[" + id + "] " + name
	}
	return name
}

// FerryTitle derives a placemark title for a ferry route.
func FerryTitle(rec drivebc.Record) string {
	return rec.StrOr("route_name", fallbackFerryTitle)
}

func ferryRouteName(rec drivebc.Record) string {
	return rec.Str("route_name")
}

// trafficDescription formats the detail body for a traffic event. The
// result is raw HTML destined for a CDATA block; it must not be escaped.
func trafficDescription(rec drivebc.Record) string {
	var b strings.Builder
	b.WriteString("<h3>Traffic Event Details</h3>")
	writeField(&b, "Event ID", rec.StrOr("id", fallbackUnknown))
	writeField(&b, "Event Type", rec.StrOr("event_type", fallbackUnknown))
	writeField(&b, "Sub Type", rec.StrOr("event_sub_type", fallbackUnknown))
	writeField(&b, "Severity/Incident Level", rec.StrOr("severity", fallbackUnknown))
	writeField(&b, "Status", rec.StrOr("status", fallbackUnknown))
	writeField(&b, "Direction", rec.StrOr("direction", fallbackUnknown))
	writeField(&b, "Route", rec.StrOr("route_at", fallbackUnknown))
	writeField(&b, "Location", rec.StrOr("location_description", fallbackNoLocation))
	writeField(&b, "Closest Landmark", rec.StrOr("closest_landmark", fallbackNoLandmark))
	writeField(&b, "Start Time", rec.StrOr("start", fallbackUnknown))
	writeField(&b, "End Time", rec.StrOr("end", fallbackUnknown))
	writeField(&b, "Last Updated", rec.StrOr("last_updated", fallbackUnknown))
	writeField(&b, "Next Update", rec.StrOr("next_update", fallbackNoNextUpdate))
	writeField(&b, "Closed", yesNo(rec.Bool("closed")))
	b.WriteString("<hr/><b>Full Description:</b><br/>")
	b.WriteString(rec.StrOr("description", fallbackNoFullText))
	return b.String()
}

// ferryDescription formats the detail body for a ferry route, including
// vessel details, contact info, and webcam links. Only the vessel schedule
// free text is HTML-stripped; every other field passes through as-is.
func ferryDescription(rec drivebc.Record) string {
	var b strings.Builder
	b.WriteString("<h3>Ferry Route Details</h3>")
	writeField(&b, "Route", rec.StrOr("route_name", fallbackFerryTitle))
	writeField(&b, "Status", rec.StrOr("status", fallbackUnknown))
	writeField(&b, "Location", rec.StrOr("location_description", fallbackNoLocation))
	writeField(&b, "Last Updated", rec.StrOr("last_updated", fallbackUnknown))

	if vessels := rec.Records("vessels"); len(vessels) > 0 {
		b.WriteString("<hr/><b>Vessels:</b><br/>")
		for _, v := range vessels {
			writeField(&b, "Name", v.StrOr("name", fallbackUnknown))
			writeField(&b, "Schedule Type", v.StrOr("schedule_type", fallbackUnknown))
			writeField(&b, "Vehicle Capacity", v.NumOr("vehicle_capacity", fallbackNumeric))
			writeField(&b, "Passenger Capacity", v.NumOr("passenger_capacity", fallbackNumeric))
			writeField(&b, "Crossing Time (minutes)", v.NumOr("crossing_time_min", fallbackNumeric))
			if schedule := strings.TrimSpace(stripHTML(v.Str("schedule_detail"))); schedule != "" {
				writeField(&b, "Schedule", schedule)
			}
		}
	}

	if contact := rec.Map("contact"); contact != nil {
		b.WriteString("<hr/><b>Contact:</b><br/>")
		writeField(&b, "Organization", contact.StrOr("organization", fallbackUnknown))
		writeField(&b, "Phone", contact.StrOr("phone", fallbackUnknown))
		writeField(&b, "Email", contact.StrOr("email", fallbackUnknown))
	}

	if webcams := rec.Strings("webcams"); len(webcams) > 0 {
		b.WriteString("<hr/><b>Webcams:</b><br/>")
		for _, url := range webcams {
			b.WriteString("<a href=\"")
			b.WriteString(url)
			b.WriteString("\">")
			b.WriteString(url)
			b.WriteString("</a><br/>")
		}
	}

	b.WriteString("<hr/><b>Full Description:</b><br/>")
	b.WriteString(rec.StrOr("description", fallbackNoFullText))
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString("<b>")
	b.WriteString(label)
	b.WriteString(":</b> ")
	b.WriteString(value)
	b.WriteString("<br/>")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// stripHTML removes all <...> sequences from upstream free text.
func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	return htmlTagRe.ReplaceAllString(s, "")
}
