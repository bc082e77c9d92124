package converter

import (
	"github.com/jonboulle/clockwork"

	"github.com/bcroads/drivebc-kml/drivebc"
	"github.com/bcroads/drivebc-kml/kml"
)

// Geometry policies for records without usable coordinates.
const (
	// GeometryPolicyDrop skips the placemark entirely.
	GeometryPolicyDrop = "drop"
	// GeometryPolicyMetadataOnly keeps a placemark without geometry.
	GeometryPolicyMetadataOnly = "metadataOnly"
)

// Options control document assembly.
type Options struct {
	// IncludeFerries adds the "Ferry Routes" folder tree when ferry
	// records are supplied.
	IncludeFerries bool
	// GeometryPolicy decides the fate of records with no usable
	// coordinates: GeometryPolicyDrop or GeometryPolicyMetadataOnly.
	GeometryPolicy string
	// Live switches document metadata to the fixed-filename live-update
	// wording instead of the one-off export wording.
	Live bool
}

// Converter assembles KML documents from normalized DriveBC records.
type Converter struct {
	opts  Options
	clock clockwork.Clock
}

// New creates a converter using the real clock.
func New(opts Options) *Converter {
	return &Converter{opts: opts, clock: clockwork.NewRealClock()}
}

// SetClock swaps the time source used for document timestamps. Pass nil
// to reset to the real clock. Tests inject a fake for deterministic output.
func (c *Converter) SetClock(clk clockwork.Clock) {
	if clk == nil {
		c.clock = clockwork.NewRealClock()
		return
	}
	c.clock = clk
}

// AssembleDocument builds the full document tree: root metadata stamped
// with the assembly wall-clock time, the complete style catalog, and one
// top-level folder per non-empty source. Empty inputs produce a valid
// document with no folders.
func (c *Converter) AssembleDocument(events, ferries []drivebc.Record) *kml.Document {
	now := c.clock.Now().UTC()

	doc := &kml.Document{Styles: StyleCatalog()}
	if c.opts.Live {
		doc.Name = "DriveBC Traffic Events (Live)"
		doc.Description = "Live traffic events from DriveBC API - Last updated: " +
			now.Format("2006-01-02 15:04:05") + " UTC"
	} else {
		doc.Name = "DriveBC Traffic Events"
		doc.Description = "Traffic events from DriveBC API - Generated on " +
			now.Format("2006-01-02 15:04:05")
	}

	if folder, ok := c.buildTrafficFolder(events); ok {
		doc.Folders = append(doc.Folders, folder)
	}
	if c.opts.IncludeFerries {
		if folder, ok := c.buildFerryFolder(ferries); ok {
			doc.Folders = append(doc.Folders, folder)
		}
	}
	return doc
}

func (c *Converter) buildTrafficFolder(events []drivebc.Record) (kml.Folder, bool) {
	top := kml.Folder{Name: "Traffic Events"}
	for _, g := range groupRecords(events, trafficGroupKey) {
		sub := kml.Folder{Name: titleCaseEventType(g.key) + " Events"}
		for _, rec := range g.records {
			if pm, ok := c.placemark(rec, kindTraffic); ok {
				sub.Placemarks = append(sub.Placemarks, pm)
			}
		}
		if len(sub.Placemarks) > 0 {
			top.Folders = append(top.Folders, sub)
		}
	}
	return top, len(top.Folders) > 0
}

func (c *Converter) buildFerryFolder(ferries []drivebc.Record) (kml.Folder, bool) {
	top := kml.Folder{Name: "Ferry Routes"}
	for _, g := range groupRecords(ferries, ferryGroupKey) {
		sub := kml.Folder{Name: g.key}
		for _, rec := range g.records {
			if pm, ok := c.placemark(rec, kindFerry); ok {
				sub.Placemarks = append(sub.Placemarks, pm)
			}
		}
		if len(sub.Placemarks) > 0 {
			top.Folders = append(top.Folders, sub)
		}
	}
	return top, len(top.Folders) > 0
}

type recordKind int

const (
	kindTraffic recordKind = iota
	kindFerry
)

// placemark normalizes one record. The second return is false when the
// record has no usable geometry and the policy says to drop it.
func (c *Converter) placemark(rec drivebc.Record, kind recordKind) (kml.Placemark, bool) {
	geom := ExtractGeometry(rec)
	if geom == nil && c.opts.GeometryPolicy != GeometryPolicyMetadataOnly {
		return kml.Placemark{}, false
	}

	pm := kml.Placemark{Geometry: geom}
	if kind == kindFerry {
		pm.Name = FerryTitle(rec)
		pm.Description = ferryDescription(rec)
		pm.StyleID = StyleID(ResolveFerryStyle(rec))
	} else {
		pm.Name = TrafficTitle(rec)
		pm.Description = trafficDescription(rec)
		pm.StyleID = StyleID(ResolveTrafficStyle(rec))
	}
	return pm, true
}

func trafficGroupKey(rec drivebc.Record) string {
	return rec.StrOr("event_type", "OTHER")
}

func ferryGroupKey(rec drivebc.Record) string {
	return ferryFolderName(ResolveFerryStyle(rec))
}
