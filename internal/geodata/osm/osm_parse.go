package osm

import (
	"encoding/json"
	"strconv"
	"strings"

	"collie/internal/core"
)

// nominatimResult is the slice element shape of a Nominatim search
// response; coordinates arrive as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func parseGeocode(body []byte) (lat, lon float64, found bool, err error) {
	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return 0, 0, false, err
	}
	if len(results) == 0 {
		return 0, 0, false, nil
	}

	lat, err = strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, false, err
	}
	lon, err = strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, false, err
	}
	return lat, lon, true, nil
}

// parsePlaces converts an Overpass response into classified places.
// Elements without a usable name or coordinates are skipped; ways and
// relations use their computed center. The result is deduplicated and
// annotated with the haversine distance from the reference center.
func parsePlaces(body []byte, centerLat, centerLon float64) ([]core.Place, error) {
	var resp overpassResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	places := make([]core.Place, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		name := strings.TrimSpace(el.Tags["name"])
		if name == "" {
			name = strings.TrimSpace(el.Tags["brand"])
		}
		if name == "" {
			continue
		}

		lat, lon := el.Lat, el.Lon
		if el.Type != "node" {
			if el.Center == nil {
				continue
			}
			lat, lon = el.Center.Lat, el.Center.Lon
		}

		places = append(places, core.Place{
			Name:                name,
			Lat:                 lat,
			Lon:                 lon,
			Category:            core.CategoryFromTags(el.Tags),
			OSMType:             el.Type,
			IsChain:             core.IsChainName(name, el.Tags["brand"]),
			IsTouristAttraction: core.IsTouristTags(el.Tags),
		})
	}

	places = core.DedupePlaces(places)
	for i := range places {
		places[i].DistanceFromCenter = core.HaversineKM(centerLat, centerLon, places[i].Lat, places[i].Lon)
	}
	return places, nil
}
