package converter

import (
	"strings"

	"github.com/bcroads/drivebc-kml/drivebc"
	"github.com/bcroads/drivebc-kml/kml"
)

// StyleKey is the categorical tag controlling a placemark's presentation.
type StyleKey string

const (
	StyleConstruction  StyleKey = "CONSTRUCTION"
	StyleIncident      StyleKey = "INCIDENT"
	StyleRoadCondition StyleKey = "ROAD_CONDITION"
	StyleWeather       StyleKey = "WEATHER"
	StyleDefault       StyleKey = "DEFAULT"

	StyleFerryCable     StyleKey = "FERRY_CABLE"
	StyleFerryScheduled StyleKey = "FERRY_SCHEDULED"
	StyleFerryOnDemand  StyleKey = "FERRY_ON_DEMAND"
	StyleFerryDefault   StyleKey = "FERRY_DEFAULT"
)

// styleTable is the complete catalog, in document emission order.
// Colors are KML aabbggrr. Every StyleKey resolvable by the normalizer has
// an entry here, so styleUrl references can never dangle.
var styleTable = []struct {
	key   StyleKey
	color string
	icon  string
}{
	{StyleConstruction, "ff0000ff", "http://maps.google.com/mapfiles/kml/paddle/red-circle.png"},
	{StyleIncident, "ff00ffff", "http://maps.google.com/mapfiles/kml/paddle/ylw-circle.png"},
	{StyleRoadCondition, "ff00ff00", "http://maps.google.com/mapfiles/kml/paddle/grn-circle.png"},
	{StyleWeather, "ffff0000", "http://maps.google.com/mapfiles/kml/paddle/blu-circle.png"},
	{StyleDefault, "ff888888", "http://maps.google.com/mapfiles/kml/paddle/wht-circle.png"},
	{StyleFerryCable, "ffff00ff", "http://maps.google.com/mapfiles/kml/shapes/ferry.png"},
	{StyleFerryScheduled, "ffffff00", "http://maps.google.com/mapfiles/kml/shapes/ferry.png"},
	{StyleFerryOnDemand, "ff00a5ff", "http://maps.google.com/mapfiles/kml/shapes/ferry.png"},
	{StyleFerryDefault, "ffcccccc", "http://maps.google.com/mapfiles/kml/shapes/marina.png"},
}

// StyleCatalog builds the full, input-independent style catalog.
func StyleCatalog() []kml.Style {
	styles := make([]kml.Style, 0, len(styleTable))
	for _, def := range styleTable {
		styles = append(styles, kml.Style{
			ID:        StyleID(def.key),
			Color:     def.color,
			IconHref:  def.icon,
			LineWidth: 3,
		})
	}
	return styles
}

// StyleID returns the document-level style identifier for a key.
func StyleID(key StyleKey) string {
	return "style_" + string(key)
}

// ResolveTrafficStyle maps a traffic event to its style: the event_type
// verbatim when it names a known style, DEFAULT otherwise.
func ResolveTrafficStyle(rec drivebc.Record) StyleKey {
	switch key := StyleKey(rec.Str("event_type")); key {
	case StyleConstruction, StyleIncident, StyleRoadCondition, StyleWeather:
		return key
	default:
		return StyleDefault
	}
}

// ResolveFerryStyle maps a ferry route to its style. Precedence: a route
// name containing "cable" wins; otherwise the first vessel's schedule type
// decides. Additional vessels are ignored.
func ResolveFerryStyle(rec drivebc.Record) StyleKey {
	if strings.Contains(strings.ToLower(ferryRouteName(rec)), "cable") {
		return StyleFerryCable
	}
	if vessels := rec.Records("vessels"); len(vessels) > 0 {
		schedule := strings.ToLower(vessels[0].Str("schedule_type"))
		if strings.Contains(schedule, "scheduled") {
			return StyleFerryScheduled
		}
		if strings.Contains(schedule, "demand") {
			return StyleFerryOnDemand
		}
	}
	return StyleFerryDefault
}

// ferryFolderName maps a ferry style to its fixed folder category.
func ferryFolderName(key StyleKey) string {
	switch key {
	case StyleFerryCable:
		return "Cable Ferries"
	case StyleFerryScheduled:
		return "Scheduled Ferries"
	case StyleFerryOnDemand:
		return "On-Demand Ferries"
	default:
		return "Other Ferries"
	}
}
