package converter

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/bcroads/drivebc-kml/drivebc"
	"github.com/bcroads/drivebc-kml/kml"
)

func pointRecord(id, eventType string, lon, lat float64) drivebc.Record {
	return drivebc.Record{
		"id":         id,
		"event_type": eventType,
		"location": map[string]any{
			"type":        "Point",
			"coordinates": []any{lon, lat},
		},
	}
}

func newTestConverter(opts Options) *Converter {
	c := New(opts)
	c.SetClock(clockwork.NewFakeClockAt(time.Date(2025, 8, 19, 6, 30, 0, 0, time.UTC)))
	return c
}

func TestAssembleDocumentSingleEvent(t *testing.T) {
	c := newTestConverter(Options{GeometryPolicy: GeometryPolicyDrop})
	doc := c.AssembleDocument([]drivebc.Record{
		pointRecord("X1", "CONSTRUCTION", -123.1, 49.2),
	}, nil)

	if doc.Name != "DriveBC Traffic Events" {
		t.Errorf("unexpected document name %q", doc.Name)
	}
	if !strings.Contains(doc.Description, "Generated on 2025-08-19 06:30:00") {
		t.Errorf("description missing assembly timestamp: %q", doc.Description)
	}
	if len(doc.Folders) != 1 || doc.Folders[0].Name != "Traffic Events" {
		t.Fatalf("expected one Traffic Events folder, got %+v", doc.Folders)
	}
	sub := doc.Folders[0].Folders
	if len(sub) != 1 || sub[0].Name != "Construction Events" {
		t.Fatalf("expected Construction Events sub-folder, got %+v", sub)
	}
	if len(sub[0].Placemarks) != 1 {
		t.Fatalf("expected one placemark, got %d", len(sub[0].Placemarks))
	}
	pm := sub[0].Placemarks[0]
	if pm.StyleID != "style_CONSTRUCTION" {
		t.Errorf("unexpected style %q", pm.StyleID)
	}
	if !strings.Contains(pm.Name, "X1") {
		t.Errorf("title should contain the record id, got %q", pm.Name)
	}
	if pm.Geometry == nil || pm.Geometry.Point == nil ||
		pm.Geometry.Point.Lon != -123.1 || pm.Geometry.Point.Lat != 49.2 {
		t.Errorf("unexpected geometry %+v", pm.Geometry)
	}
}

func TestAssembleDocumentStableGrouping(t *testing.T) {
	c := newTestConverter(Options{GeometryPolicy: GeometryPolicyDrop})
	doc := c.AssembleDocument([]drivebc.Record{
		pointRecord("1", "INCIDENT", -123.0, 49.0),
		pointRecord("2", "CONSTRUCTION", -123.1, 49.1),
		pointRecord("3", "INCIDENT", -123.2, 49.2),
		pointRecord("4", "WEATHER", -123.3, 49.3),
	}, nil)

	sub := doc.Folders[0].Folders
	wantNames := []string{"Incident Events", "Construction Events", "Weather Events"}
	if len(sub) != len(wantNames) {
		t.Fatalf("expected %d sub-folders, got %d", len(wantNames), len(sub))
	}
	for i, want := range wantNames {
		if sub[i].Name != want {
			t.Errorf("folder %d: expected %q, got %q", i, want, sub[i].Name)
		}
	}
	if len(sub[0].Placemarks) != 2 {
		t.Errorf("Incident Events should hold 2 placemarks, got %d", len(sub[0].Placemarks))
	}
	// Relative record order survives within the group.
	if !strings.Contains(sub[0].Placemarks[0].Name, "[1]") ||
		!strings.Contains(sub[0].Placemarks[1].Name, "[3]") {
		t.Errorf("incident placemarks out of order: %q, %q",
			sub[0].Placemarks[0].Name, sub[0].Placemarks[1].Name)
	}
}

func TestAssembleDocumentMissingEventType(t *testing.T) {
	c := newTestConverter(Options{GeometryPolicy: GeometryPolicyDrop})
	doc := c.AssembleDocument([]drivebc.Record{
		pointRecord("1", "", -123.0, 49.0),
	}, nil)

	sub := doc.Folders[0].Folders
	if len(sub) != 1 || sub[0].Name != "Other Events" {
		t.Fatalf("expected Other Events folder for absent event_type, got %+v", sub)
	}
	if sub[0].Placemarks[0].StyleID != "style_DEFAULT" {
		t.Errorf("expected DEFAULT style, got %q", sub[0].Placemarks[0].StyleID)
	}
}

func TestAssembleDocumentGeometryPolicy(t *testing.T) {
	noGeometry := drivebc.Record{"id": "NG-1", "event_type": "INCIDENT"}

	t.Run("drop", func(t *testing.T) {
		c := newTestConverter(Options{GeometryPolicy: GeometryPolicyDrop})
		doc := c.AssembleDocument([]drivebc.Record{noGeometry}, nil)
		if len(doc.Folders) != 0 {
			t.Errorf("expected no folders when all records drop, got %+v", doc.Folders)
		}
	})

	t.Run("metadataOnly", func(t *testing.T) {
		c := newTestConverter(Options{GeometryPolicy: GeometryPolicyMetadataOnly})
		doc := c.AssembleDocument([]drivebc.Record{noGeometry}, nil)
		if doc.CountPlacemarks() != 1 {
			t.Fatalf("expected one metadata-only placemark, got %d", doc.CountPlacemarks())
		}
		pm := doc.Folders[0].Folders[0].Placemarks[0]
		if pm.Geometry != nil {
			t.Errorf("expected nil geometry, got %+v", pm.Geometry)
		}
		if !strings.Contains(pm.Name, "NG-1") {
			t.Errorf("metadata-only placemark should keep its title, got %q", pm.Name)
		}
	})
}

func TestAssembleDocumentFerries(t *testing.T) {
	ferry := func(name, schedule string) drivebc.Record {
		return drivebc.Record{
			"route_name": name,
			"vessels":    []any{map[string]any{"schedule_type": schedule}},
			"location": map[string]any{
				"type": "LineString",
				"coordinates": []any{
					[]any{-125.5, 50.1},
					[]any{-125.4, 50.15},
				},
			},
		}
	}

	c := newTestConverter(Options{IncludeFerries: true, GeometryPolicy: GeometryPolicyDrop})
	doc := c.AssembleDocument(nil, []drivebc.Record{
		ferry("Adams Lake Cable Ferry", ""),
		ferry("Francois Lake Ferry", "Scheduled"),
		ferry("Glade Ferry", "On demand"),
		ferry("Barnston Island Ferry", ""),
	})

	if len(doc.Folders) != 1 || doc.Folders[0].Name != "Ferry Routes" {
		t.Fatalf("expected a single Ferry Routes folder, got %+v", doc.Folders)
	}
	sub := doc.Folders[0].Folders
	wantNames := []string{"Cable Ferries", "Scheduled Ferries", "On-Demand Ferries", "Other Ferries"}
	if len(sub) != len(wantNames) {
		t.Fatalf("expected %d categories, got %d", len(wantNames), len(sub))
	}
	for i, want := range wantNames {
		if sub[i].Name != want {
			t.Errorf("category %d: expected %q, got %q", i, want, sub[i].Name)
		}
	}
	if pm := sub[1].Placemarks[0]; pm.Geometry == nil || len(pm.Geometry.Path) != 2 {
		t.Errorf("expected 2-pair ferry path, got %+v", sub[1].Placemarks[0].Geometry)
	}
}

func TestAssembleDocumentFerriesExcluded(t *testing.T) {
	c := newTestConverter(Options{IncludeFerries: false, GeometryPolicy: GeometryPolicyDrop})
	doc := c.AssembleDocument(nil, []drivebc.Record{
		{"route_name": "Glade Ferry", "location": map[string]any{
			"type":        "Point",
			"coordinates": []any{-117.5, 49.4},
		}},
	})
	if len(doc.Folders) != 0 {
		t.Errorf("ferries disabled: expected no folders, got %+v", doc.Folders)
	}
}

func TestAssembleDocumentEmptyInputs(t *testing.T) {
	c := newTestConverter(Options{IncludeFerries: true, GeometryPolicy: GeometryPolicyDrop})
	doc := c.AssembleDocument(nil, nil)

	if len(doc.Folders) != 0 {
		t.Errorf("expected no folders for empty inputs, got %+v", doc.Folders)
	}
	if len(doc.Styles) == 0 {
		t.Error("style catalog must be present even for an empty document")
	}
}

func TestAssembleDocumentLiveMetadata(t *testing.T) {
	c := newTestConverter(Options{Live: true, GeometryPolicy: GeometryPolicyDrop})
	doc := c.AssembleDocument(nil, nil)

	if doc.Name != "DriveBC Traffic Events (Live)" {
		t.Errorf("unexpected live document name %q", doc.Name)
	}
	if !strings.Contains(doc.Description, "Last updated: 2025-08-19 06:30:00 UTC") {
		t.Errorf("unexpected live description %q", doc.Description)
	}
}

// Every styleUrl emitted by assembly must resolve inside the catalog.
func TestAssembleDocumentStyleInvariant(t *testing.T) {
	c := newTestConverter(Options{IncludeFerries: true, GeometryPolicy: GeometryPolicyDrop})
	doc := c.AssembleDocument(
		[]drivebc.Record{
			pointRecord("1", "CONSTRUCTION", -123.0, 49.0),
			pointRecord("2", "MYSTERY_TYPE", -123.1, 49.1),
		},
		[]drivebc.Record{
			{"route_name": "Glade Ferry", "location": map[string]any{
				"type":        "Point",
				"coordinates": []any{-117.5, 49.4},
			}},
		},
	)

	known := make(map[string]bool, len(doc.Styles))
	for _, s := range doc.Styles {
		known[s.ID] = true
	}
	var check func(f kml.Folder)
	check = func(f kml.Folder) {
		for _, pm := range f.Placemarks {
			if !known[pm.StyleID] {
				t.Errorf("placemark %q references undeclared style %q", pm.Name, pm.StyleID)
			}
		}
		for _, sub := range f.Folders {
			check(sub)
		}
	}
	for _, f := range doc.Folders {
		check(f)
	}
}
