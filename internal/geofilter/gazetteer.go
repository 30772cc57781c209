package geofilter

import (
	"fmt"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	geom "github.com/twpayne/go-geom"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// area is one gazetteer entry. Matching uses the lowercased name and
// aliases; filtering uses ZIP prefixes first and falls back to the
// bounding box when a record carries coordinates.
type area struct {
	name        string
	kind        string
	aliases     []string
	zipPrefixes []string
	bounds      *geom.Bounds
}

// Gazetteer resolves city and region names with a hand-seeded table that
// can be extended from a boundary shapefile.
type Gazetteer struct {
	areas []area
}

// seedAreas covers the metros present in the pre-computed datasets.
// Shapefile loading extends this table; it never replaces it.
var seedAreas = []area{
	{name: "New York", kind: "city", aliases: []string{"nyc", "new york city"}, zipPrefixes: []string{"100", "101", "102", "103", "104", "110", "111", "112", "113", "114", "116"}},
	{name: "Brooklyn", kind: "city", zipPrefixes: []string{"112"}},
	{name: "Queens", kind: "city", zipPrefixes: []string{"110", "111", "113", "114", "116"}},
	{name: "Manhattan", kind: "city", zipPrefixes: []string{"100", "101", "102"}},
	{name: "Bronx", kind: "city", aliases: []string{"the bronx"}, zipPrefixes: []string{"104"}},
	{name: "Philadelphia", kind: "city", aliases: []string{"philly"}, zipPrefixes: []string{"190", "191", "192"}},
	{name: "Chicago", kind: "city", zipPrefixes: []string{"606", "607", "608"}},
	{name: "Los Angeles", kind: "city", aliases: []string{"la"}, zipPrefixes: []string{"900", "901", "902", "903", "904", "905"}},
	{name: "San Francisco", kind: "city", aliases: []string{"sf", "bay area"}, zipPrefixes: []string{"941"}},
	{name: "Boston", kind: "city", zipPrefixes: []string{"021", "022"}},
	{name: "Miami", kind: "city", zipPrefixes: []string{"331", "332"}},
	{name: "Seattle", kind: "city", zipPrefixes: []string{"981"}},
	{name: "Atlanta", kind: "city", zipPrefixes: []string{"303", "311"}},
	{name: "Dallas", kind: "city", zipPrefixes: []string{"752", "753"}},
	{name: "Houston", kind: "city", zipPrefixes: []string{"770", "772"}},
	{name: "Northeast", kind: "region", zipPrefixes: []string{"0", "1", "2"}},
	{name: "Midwest", kind: "region", zipPrefixes: []string{"4", "5", "6"}},
	{name: "West Coast", kind: "region", aliases: []string{"pacific coast"}, zipPrefixes: []string{"9"}},
}

// NewGazetteer returns a Gazetteer with the built-in seed table.
func NewGazetteer() *Gazetteer {
	areas := make([]area, len(seedAreas))
	copy(areas, seedAreas)
	return &Gazetteer{areas: areas}
}

// LoadShapefile extends the gazetteer from a boundary shapefile. Each
// shape contributes its NAME attribute and bounding box. Missing NAME
// fields skip the shape.
func (g *Gazetteer) LoadShapefile(path string) error {
	reader, err := shp.Open(path)
	if err != nil {
		return eris.Wrapf(err, "geofilter: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	nameIdx := -1
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(string(f.Name[:]), "\x00"), "NAME") {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return eris.New("geofilter: shapefile has no NAME field")
	}

	titler := cases.Title(language.AmericanEnglish)
	var loaded int
	for reader.Next() {
		_, shape := reader.Shape()
		if shape == nil {
			continue
		}
		name := strings.TrimSpace(reader.Attribute(nameIdx))
		if name == "" {
			continue
		}

		box := shape.BBox()
		bounds := geom.NewBounds(geom.XY)
		bounds.Set(box.MinX, box.MinY, box.MaxX, box.MaxY)

		g.areas = append(g.areas, area{
			name:   titler.String(strings.ToLower(name)),
			kind:   "city",
			bounds: bounds,
		})
		loaded++
	}

	zap.L().Info("geofilter: gazetteer extended from shapefile",
		zap.String("path", path),
		zap.Int("areas", loaded),
	)
	return nil
}

// Resolve implements Resolver. Entities are the gazetteer areas whose name
// or alias appears in the query; records are kept when they match any
// resolved entity. A query naming no known geography returns the input
// unfiltered.
func (g *Gazetteer) Resolve(query string, records []map[string]any) (*Resolution, error) {
	lower := strings.ToLower(query)

	var matched []area
	for _, a := range g.areas {
		if containsName(lower, a.name) || matchesAlias(lower, a.aliases) {
			matched = append(matched, a)
		}
	}

	res := &Resolution{Stats: Stats{Total: len(records)}}
	for _, a := range matched {
		res.Entities = append(res.Entities, Entity{Name: a.name, Kind: a.kind, ZIPPrefixes: a.zipPrefixes})
	}

	if len(matched) == 0 {
		res.Filtered = records
		res.Stats.Matched = len(records)
		return res, nil
	}

	for _, rec := range records {
		if recordMatchesAny(rec, matched) {
			res.Filtered = append(res.Filtered, rec)
		}
	}
	res.Stats.Matched = len(res.Filtered)

	zap.L().Debug("geofilter: resolved",
		zap.Int("entities", len(res.Entities)),
		zap.Int("total", res.Stats.Total),
		zap.Int("matched", res.Stats.Matched),
	)
	return res, nil
}

func containsName(lowerQuery, name string) bool {
	return strings.Contains(lowerQuery, strings.ToLower(name))
}

func matchesAlias(lowerQuery string, aliases []string) bool {
	for _, a := range aliases {
		// Aliases are short ("la", "sf"), so require word boundaries via
		// space padding to avoid matching inside other words.
		padded := " " + lowerQuery + " "
		if strings.Contains(padded, " "+a+" ") {
			return true
		}
	}
	return false
}

// recordMatchesAny checks a raw record against resolved areas using, in
// order: area name embedded in the record's label, ZIP prefix on the
// record id, bounding-box containment of the record's centroid.
func recordMatchesAny(rec map[string]any, areas []area) bool {
	label := strings.ToLower(recordLabel(rec))
	id := recordID(rec)
	lon, lat, hasCoords := recordCoords(rec)

	for _, a := range areas {
		if label != "" && strings.Contains(label, strings.ToLower(a.name)) {
			return true
		}
		for _, prefix := range a.zipPrefixes {
			if strings.HasPrefix(id, prefix) {
				return true
			}
		}
		if hasCoords && a.bounds != nil {
			if lon >= a.bounds.Min(0) && lon <= a.bounds.Max(0) &&
				lat >= a.bounds.Min(1) && lat <= a.bounds.Max(1) {
				return true
			}
		}
	}
	return false
}

// recordLabel probes the label fields raw datasets use for area names.
func recordLabel(rec map[string]any) string {
	for _, f := range []string{"area_name", "DESCRIPTION", "NAME", "value_DESCRIPTION"} {
		if v, ok := rec[f]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

// recordID probes the id fields raw datasets use, in precedence order.
func recordID(rec map[string]any) string {
	for _, f := range []string{"area_id", "ID", "GEOID", "OBJECTID", "zip", "zipcode"} {
		v, ok := rec[f]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			return t
		case float64:
			return fmt.Sprintf("%.0f", t)
		case int:
			return fmt.Sprintf("%d", t)
		}
	}
	return ""
}

// recordCoords probes for a [lon, lat] centroid.
func recordCoords(rec map[string]any) (lon, lat float64, ok bool) {
	v, exists := rec["coordinates"]
	if !exists {
		return 0, 0, false
	}
	arr, isArr := v.([]any)
	if !isArr || len(arr) != 2 {
		return 0, 0, false
	}
	lonF, ok1 := arr[0].(float64)
	latF, ok2 := arr[1].(float64)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return lonF, latF, true
}
